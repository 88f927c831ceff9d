package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/kanban/internal/shared"
	"github.com/desertthunder/kanban/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive board.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger := shared.NewLogger(io.Discard)
	if r.config.Log.File != "" {
		l, err := shared.NewFileLogger(r.config.Log.File)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		fileLogger = l
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	mgr, closeFn, err := r.openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	model := ui.NewModel(ctx, mgr, r.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
