package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig  = fmt.Errorf("configuration not found")
	ErrInvalidConfig  = fmt.Errorf("invalid configuration")
	ErrUnknownBackend = fmt.Errorf("unknown storage backend")

	// Board errors
	ErrInvalidSnapshot = fmt.Errorf("invalid board snapshot")
	ErrCardNotFound    = fmt.Errorf("card not found")
	ErrColumnNotFound  = fmt.Errorf("column not found")

	// Storage errors
	ErrStorageUnavailable = fmt.Errorf("storage unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
