package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/kanban/internal/formatter"
	"github.com/desertthunder/kanban/internal/models"
)

// ManifestName is the file written alongside the exports.
const ManifestName = "export_manifest.json"

// BulkExportOpts contains configuration for bulk board exports.
type BulkExportOpts struct {
	Formats    []string // Formats to render (default: all of [formatter.Formats])
	OutputDir  string   // Output directory (default: board_export_{epoch})
	NumWorkers int      // Concurrent workers (default: 3)
}

// FormatResult is the outcome of rendering one format.
type FormatResult struct {
	Format string `json:"format"`
	File   string `json:"file,omitempty"`
	Bytes  int    `json:"bytes"`
	Error  error  `json:"-"`
	Reason string `json:"error,omitempty"`
}

// BulkExportResult summarizes a [BulkExport] run.
type BulkExportResult struct {
	OutputDirectory string         `json:"output_directory"`
	Columns         int            `json:"columns"`
	Cards           int            `json:"cards"`
	Successful      int            `json:"successful"`
	Failed          int            `json:"failed"`
	Results         []FormatResult `json:"results"`
	ManifestPath    string         `json:"-"`
	CompletedAt     time.Time      `json:"completed_at"`
}

// BulkExport writes columns in every requested format concurrently and records the outcome in a manifest.
//
// Individual format failures are reported in the result; only setup and manifest errors are returned.
func BulkExport(ctx context.Context, prog chan<- ProgressUpdate, columns []models.Column, opts BulkExportOpts) (*BulkExportResult, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = formatter.Formats
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("board_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > len(opts.Formats) {
		opts.NumWorkers = len(opts.Formats)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		OutputDirectory: opts.OutputDir,
		Columns:         len(columns),
		Results:         make([]FormatResult, 0, len(opts.Formats)),
	}
	for _, col := range columns {
		result.Cards += col.CardCount()
	}

	jobs := make(chan string, len(opts.Formats))
	results := make(chan FormatResult, len(opts.Formats))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go exportWorker(ctx, &wg, columns, opts.OutputDir, jobs, results)
	}

	for _, f := range opts.Formats {
		jobs <- f
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		if res.Error != nil {
			res.Reason = res.Error.Error()
			result.Failed++
			sendProgress(prog, exportFailedUpdate(completed, len(opts.Formats), res))
		} else {
			result.Successful++
			sendProgress(prog, exportCompletedUpdate(completed, len(opts.Formats), res))
		}
		result.Results = append(result.Results, res)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	result.CompletedAt = time.Now().UTC()
	manifestPath := filepath.Join(opts.OutputDir, ManifestName)
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	sendProgress(prog, manifestUpdate(manifestPath))

	return result, nil
}

// exportWorker renders formats from the jobs channel until it is drained or ctx is done.
func exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	columns []models.Column,
	dir string,
	jobs <-chan string,
	results chan<- FormatResult,
) {
	defer wg.Done()

	for format := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- exportFormat(columns, dir, format)
	}
}

// exportFormat renders a single format to "<dir>/board.<ext>".
func exportFormat(columns []models.Column, dir, format string) FormatResult {
	res := FormatResult{Format: format}

	data, err := formatter.Export(columns, format)
	if err != nil {
		res.Error = err
		return res
	}

	path := filepath.Join(dir, "board."+formatter.Extension(format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		res.Error = fmt.Errorf("failed to write %s: %w", path, err)
		return res
	}

	res.File = path
	res.Bytes = len(data)
	return res
}

func writeManifest(result *BulkExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
