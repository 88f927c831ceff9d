package tasks

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/desertthunder/kanban/internal/formatter"
	"github.com/desertthunder/kanban/internal/models"
	th "github.com/desertthunder/kanban/internal/testing"
	"github.com/google/go-cmp/cmp"
)

func TestBulkExport(t *testing.T) {
	t.Run("writes every format and a manifest", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		prog := make(chan ProgressUpdate, 16)

		res, err := BulkExport(context.Background(), prog, models.DefaultColumns(), BulkExportOpts{OutputDir: dir})
		if err != nil {
			t.Fatalf("BulkExport() error = %v", err)
		}
		close(prog)

		if res.Successful != len(formatter.Formats) || res.Failed != 0 {
			t.Errorf("successful = %d, failed = %d", res.Successful, res.Failed)
		}
		if res.Columns != 2 || res.Cards != 4 {
			t.Errorf("columns = %d, cards = %d", res.Columns, res.Cards)
		}

		var files []string
		for _, r := range res.Results {
			files = append(files, filepath.Base(r.File))
			th.AssertFileExists(t, r.File)
		}
		sort.Strings(files)
		want := []string{"board.csv", "board.json", "board.md", "board.txt", "board.yaml"}
		if diff := cmp.Diff(want, files); diff != "" {
			t.Errorf("files mismatch (-want +got):\n%s", diff)
		}

		th.AssertFileExists(t, res.ManifestPath)
		var manifest BulkExportResult
		if err := json.Unmarshal([]byte(th.MustReadFile(t, res.ManifestPath)), &manifest); err != nil {
			t.Fatalf("invalid manifest: %v", err)
		}
		if manifest.Successful != res.Successful || len(manifest.Results) != len(res.Results) {
			t.Errorf("manifest does not match result: %+v", manifest)
		}

		var phases []Phase
		for u := range prog {
			phases = append(phases, u.Phase)
		}
		if len(phases) != len(formatter.Formats)+1 || phases[len(phases)-1] != WriteManifest {
			t.Errorf("unexpected progress phases %v", phases)
		}
	})

	t.Run("unknown formats are reported, not fatal", func(t *testing.T) {
		dir := t.TempDir()

		res, err := BulkExport(context.Background(), nil, models.DefaultColumns(), BulkExportOpts{
			Formats:    []string{formatter.FormatJSON, "xml"},
			OutputDir:  dir,
			NumWorkers: 8,
		})
		if err != nil {
			t.Fatalf("BulkExport() error = %v", err)
		}

		if res.Successful != 1 || res.Failed != 1 {
			t.Errorf("successful = %d, failed = %d", res.Successful, res.Failed)
		}

		manifest := th.MustReadFile(t, res.ManifestPath)
		if !strings.Contains(manifest, "unsupported format") {
			t.Errorf("manifest should record the failure:\n%s", manifest)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := BulkExport(ctx, nil, models.DefaultColumns(), BulkExportOpts{OutputDir: t.TempDir()})
		if err == nil {
			t.Error("expected context error")
		}
	})
}

func TestPhase(t *testing.T) {
	if ExportBoard.String() != "export_board" || WriteManifest.String() != "write_manifest" {
		t.Error("unexpected phase names")
	}
	if Phase(99).String() != "" {
		t.Error("unknown phase should be empty")
	}
}
