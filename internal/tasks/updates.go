package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	ExportBoard Phase = iota
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case ExportBoard:
		return "export_board"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func exportCompletedUpdate(step, total int, res FormatResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportBoard,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exported %s", res.Format),
		Data:    res,
	}
}

func exportFailedUpdate(step, total int, res FormatResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportBoard,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Failed to export %s: %v", res.Format, res.Error),
		Data:    res,
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Wrote manifest %s", path),
	}
}

// sendProgress delivers u without blocking; updates are dropped when nobody is listening.
func sendProgress(prog chan<- ProgressUpdate, u ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- u:
	default:
	}
}
