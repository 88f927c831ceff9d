// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
)

// ErrStoreDown is returned by every [FailingStore] operation.
var ErrStoreDown = errors.New("store unavailable")

// FailingStore is a [store.Store] whose writes always fail. Reads fail unless Data is set.
type FailingStore struct {
	Data  []byte
	Calls int
}

func (f *FailingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.Data != nil {
		return f.Data, nil
	}
	return nil, ErrStoreDown
}

func (f *FailingStore) Put(ctx context.Context, key string, value []byte) error {
	f.Calls++
	return ErrStoreDown
}

func (f *FailingStore) Close() error { return nil }

// Counter returns an id generator yielding "card-1", "card-2", ...
func Counter() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("card-%d", n)
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
