package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/kanban/internal/formatter"
	"github.com/desertthunder/kanban/internal/models"
	"github.com/desertthunder/kanban/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export renders the board in the requested format to stdout or a file.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")

	mgr, closeFn, err := r.openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if cmd.Bool("all") {
		return r.exportAll(ctx, mgr.Columns(), cmd.String("dir"))
	}

	if output != "" {
		if err := formatter.WriteExport(mgr.Columns(), format, output); err != nil {
			return err
		}
		r.logger.Info("board exported", "format", format, "path", output)
		return r.writePlain("✓ Exported to %s\n", output)
	}

	data, err := formatter.Export(mgr.Columns(), format)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// exportAll writes every format concurrently and prints progress as it arrives.
func (r *Runner) exportAll(ctx context.Context, columns []models.Column, dir string) error {
	prog := make(chan tasks.ProgressUpdate, len(formatter.Formats)+1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for u := range prog {
			r.logger.Debug("export progress", "phase", u.Phase, "step", u.Step, "total", u.Total)
			r.writePlain("[%d/%d] %s\n", u.Step, u.Total, u.Message)
		}
	}()

	res, err := tasks.BulkExport(ctx, prog, columns, tasks.BulkExportOpts{OutputDir: dir})
	close(prog)
	<-done

	if err != nil {
		return err
	}

	r.logger.Info("bulk export finished", "dir", res.OutputDirectory, "ok", res.Successful, "failed", res.Failed)
	return r.writePlain("✓ Exported %d of %d formats to %s\n", res.Successful, len(res.Results), res.OutputDirectory)
}
