package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/kanban/internal/shared"
	"github.com/desertthunder/kanban/internal/store"
	tu "github.com/desertthunder/kanban/internal/testing"
)

// run executes args against a fresh command tree bound to r.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	return newApp(r).Run(context.Background(), append([]string{"kanban"}, args...))
}

func newTestRunner(s store.Store) (*Runner, *bytes.Buffer) {
	output := &bytes.Buffer{}
	return NewRunner(RunnerOpts{
		Store:  s,
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
		IDFunc: tu.Counter(),
	}), output
}

// writeConfig writes a config file selecting backend, with file and sqlite paths under dir.
func writeConfig(t *testing.T, dir, backend string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	content := `[board]
key = "trello-columns"

[storage]
backend = "` + backend + `"

[storage.file]
dir = "` + filepath.Join(dir, "boards") + `"

[storage.sqlite]
path = "` + filepath.Join(dir, "kanban.db") + `"

[log]
level = "debug"
file = "` + filepath.Join(dir, "kanban.log") + `"
`
	tu.MustWriteFile(t, path, content)
	return path
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			s := store.NewMemoryStore()

			runner := NewRunner(RunnerOpts{
				Config: config,
				Store:  s,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.store != s {
				t.Error("expected store to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Fatal("expected default config to be set")
			}
			if runner.config.Board.Key != "trello-columns" {
				t.Errorf("expected default key, got %q", runner.config.Board.Key)
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			runner, output := newTestRunner(nil)

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := "{\n  \"key\": \"value\"\n}\n"
			if output.String() != want {
				t.Errorf("expected %q, got %q", want, output.String())
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			runner, output := newTestRunner(nil)

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if output.String() != "{\"key\":\"value\"}\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner, _ := newTestRunner(nil)

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			runner, output := newTestRunner(nil)

			if err := runner.writePlain("Hello %s %d\n", "World", 42); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if output.String() != "Hello World 42\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writePlain("test"); err == nil {
				t.Error("expected error")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner, _ := newTestRunner(nil)
		commands := runner.register()

		names := map[string]bool{}
		for _, cmd := range commands {
			names[cmd.Name] = true
		}

		for _, want := range []string{"board", "export", "setup", "tui"} {
			if !names[want] {
				t.Errorf("expected %q command to be registered", want)
			}
		}
	})

	t.Run("Configure", func(t *testing.T) {
		t.Run("loads config file and applies log level", func(t *testing.T) {
			dir := t.TempDir()
			path := writeConfig(t, dir, shared.BackendSQLite)
			runner, _ := newTestRunner(store.NewMemoryStore())

			if err := run(t, runner, "--config", path, "board", "show"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if runner.config.Storage.Backend != shared.BackendSQLite {
				t.Errorf("expected sqlite backend, got %q", runner.config.Storage.Backend)
			}
			if runner.logger.GetLevel().String() != "debug" {
				t.Errorf("expected debug level, got %v", runner.logger.GetLevel())
			}
		})

		t.Run("explicit missing config is an error", func(t *testing.T) {
			runner, _ := newTestRunner(store.NewMemoryStore())

			err := run(t, runner, "--config", filepath.Join(t.TempDir(), "nope.toml"), "board", "show")
			if !errors.Is(err, shared.ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}
		})

		t.Run("invalid config is rejected", func(t *testing.T) {
			dir := t.TempDir()
			path := writeConfig(t, dir, "floppy")
			runner, _ := newTestRunner(store.NewMemoryStore())

			err := run(t, runner, "--config", path, "board", "show")
			if !errors.Is(err, shared.ErrUnknownBackend) {
				t.Errorf("expected ErrUnknownBackend, got %v", err)
			}
		})

		t.Run("ephemeral selects the memory backend", func(t *testing.T) {
			runner, output := newTestRunner(nil)

			if err := run(t, runner, "--ephemeral", "board", "add", "Scratch"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if runner.config.Storage.Backend != shared.BackendMemory {
				t.Errorf("expected memory backend, got %q", runner.config.Storage.Backend)
			}
			if !strings.Contains(output.String(), "Scratch") {
				t.Errorf("unexpected output %q", output.String())
			}
		})
	})
}

func TestSetup(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		runner, output := newTestRunner(nil)
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := run(t, runner, "setup", "config", "--path", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tu.AssertFileExists(t, path)
		if !strings.Contains(output.String(), path) {
			t.Errorf("expected path in output, got %q", output.String())
		}

		if _, err := shared.LoadConfig(path); err != nil {
			t.Errorf("written config should load: %v", err)
		}

		if err := run(t, runner, "setup", "config", "--path", path); err == nil {
			t.Error("expected error when config already exists")
		}
	})

	t.Run("database, status and rollback", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, shared.BackendSQLite)
		runner, output := newTestRunner(nil)

		if err := run(t, runner, "--config", path, "setup", "database"); err != nil {
			t.Fatalf("setup database: %v", err)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "kanban.db"))

		output.Reset()
		if err := run(t, runner, "--config", path, "setup", "status"); err != nil {
			t.Fatalf("setup status: %v", err)
		}
		if strings.Count(output.String(), "[✓]") != 2 {
			t.Errorf("expected both migrations applied:\n%s", output.String())
		}

		if err := run(t, runner, "--config", path, "setup", "rollback"); err != nil {
			t.Fatalf("setup rollback: %v", err)
		}

		output.Reset()
		if err := run(t, runner, "--config", path, "setup", "status"); err != nil {
			t.Fatalf("setup status: %v", err)
		}
		if !strings.Contains(output.String(), "[ ] 0001 snapshot_history") {
			t.Errorf("expected history migration rolled back:\n%s", output.String())
		}
	})
}
