package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/kanban/internal/models"
	"github.com/desertthunder/kanban/internal/shared"
)

// ErrNotFound is returned by [Store.Get] when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a key-value storage area for snapshots.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)     // Get returns the value for key or [ErrNotFound]
	Put(ctx context.Context, key string, value []byte) error // Put overwrites the value for key
	Close() error                                            // Close releases backend resources
}

// EncodeSnapshot serializes the column list as a JSON array.
func EncodeSnapshot(columns []models.Column) ([]byte, error) {
	if columns == nil {
		columns = []models.Column{}
	}
	data, err := json.Marshal(columns)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a JSON column list.
//
// Only unparsable input, a non-array value and an empty list are rejected. Duplicate ids are left
// for [models.NormalizeColumns]. Snapshots without column roles get the default source/sink roles.
func DecodeSnapshot(data []byte) ([]models.Column, error) {
	var columns []models.Column
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidSnapshot, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", shared.ErrInvalidSnapshot)
	}

	for i := range columns {
		if columns[i].Cards == nil {
			columns[i].Cards = []models.Card{}
		}
	}

	models.AssignDefaultRoles(columns)
	return columns, nil
}

// LoadSnapshot reads and decodes the snapshot stored under key.
func LoadSnapshot(ctx context.Context, s Store, key string) ([]models.Column, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return DecodeSnapshot(data)
}

// SaveSnapshot encodes and writes columns under key.
func SaveSnapshot(ctx context.Context, s Store, key string, columns []models.Column) error {
	data, err := EncodeSnapshot(columns)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, data)
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty key", shared.ErrInvalidArgument)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: key %q contains a path separator", shared.ErrInvalidArgument, key)
	}
	return nil
}
