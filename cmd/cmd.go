// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/kanban/internal/formatter"
	"github.com/urfave/cli/v3"
)

// boardCommand handles scripted board edits
func boardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "Inspect and edit the board",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the board",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.BoardShow,
			},
			{
				Name:  "add",
				Usage: "Add a card to the source column",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "label"},
				},
				Action: r.BoardAdd,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a card from the sink column",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "card-id"},
				},
				Action: r.BoardDelete,
			},
			{
				Name:  "move",
				Usage: "Move a card to the end of another column",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "card-id"},
					&cli.StringArg{Name: "column-id"},
				},
				Action: r.BoardMove,
			},
			{
				Name:   "reset",
				Usage:  "Replace the board with the default columns",
				Action: r.BoardReset,
			},
			{
				Name:  "history",
				Usage: "List replaced snapshots (sqlite backend only)",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to list",
						Value: 10,
					},
				},
				Action: r.BoardHistory,
			},
		},
	}
}

// exportCommand writes the board in a document format
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the board",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (" + strings.Join(formatter.Formats, ", ") + ")",
				Value:   formatter.FormatText,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default stdout)",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Write every format into --dir with a manifest",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Output directory for --all (default board_export_{epoch})",
			},
		},
		Action: r.Export,
	}
}

// setupCommand handles config and database initialization
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Destination path",
						Value: "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Create the sqlite database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.SetupRollback,
			},
			{
				Name:   "status",
				Usage:  "List migrations and whether they are applied",
				Action: r.SetupStatus,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive board.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Launch the interactive board",
		Action:  r.TUI,
	}
}
