package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/kanban/internal/board"
	"github.com/desertthunder/kanban/internal/shared"
	"github.com/desertthunder/kanban/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	store  store.Store
	logger *log.Logger
	output io.Writer
	newID  func() string
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Store  store.Store // used instead of the configured backend when set
	Logger *log.Logger
	Output io.Writer
	IDFunc func() string // card id generator, defaults to [shared.GenerateID]
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		store:  opts.Store,
		logger: opts.Logger,
		output: opts.Output,
		newID:  opts.IDFunc,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		boardCommand, exportCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Configure loads the config file named by --config and applies the log level.
//
// A missing file is only an error when the flag was given explicitly.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")

	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
	} else if cmd.IsSet("config") {
		return ctx, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
	}

	if cmd.Bool("ephemeral") {
		r.config.Storage.Backend = shared.BackendMemory
	}

	if err := r.config.Validate(); err != nil {
		return ctx, err
	}

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, level)

	return ctx, nil
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// openStore returns the injected store, or opens the configured backend.
//
// The returned close func only closes stores the runner opened itself.
func (r *Runner) openStore(ctx context.Context) (store.Store, func(), error) {
	if r.store != nil {
		return r.store, func() {}, nil
	}

	s, err := store.Open(ctx, r.config.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", r.config.Storage.Backend, err)
	}

	return s, func() {
		if err := s.Close(); err != nil {
			r.logger.Warn("failed to close store", "error", err)
		}
	}, nil
}

// openBoard opens the store and loads the board from it.
func (r *Runner) openBoard(ctx context.Context) (*board.Manager, func(), error) {
	s, closeFn, err := r.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	mgr := board.Open(ctx, board.Options{
		Store:   s,
		Key:     r.config.Board.Key,
		Logger:  r.logger,
		IDFunc:  r.newID,
		Timeout: r.config.Storage.Timeout(),
	})
	return mgr, closeFn, nil
}

// saved reports the manager's last persistence failure as a command error.
func saved(mgr *board.Manager) error {
	if err := mgr.Err(); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// requireArg returns the named positional argument, or an error when it is blank.
func requireArg(cmd *cli.Command, name string) (string, error) {
	v := cmd.StringArg(name)
	if v == "" {
		return "", fmt.Errorf("%w: <%s>", shared.ErrMissingArgument, name)
	}
	return v, nil
}

var errHistoryUnsupported = errors.New("board history requires the sqlite backend")
