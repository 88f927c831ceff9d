package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/kanban/internal/formatter"
	"github.com/desertthunder/kanban/internal/models"
	"github.com/desertthunder/kanban/internal/shared"
	"github.com/desertthunder/kanban/internal/store"
	"github.com/urfave/cli/v3"
)

// BoardShow prints the board as text or JSON.
func (r *Runner) BoardShow(ctx context.Context, cmd *cli.Command) error {
	mgr, closeFn, err := r.openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if cmd.Bool("json") {
		return r.writeJSON(mgr.Columns(), cmd.Bool("pretty"))
	}

	text, err := formatter.ExportToText(mgr.Columns())
	if err != nil {
		return err
	}
	return r.writePlain("%s", text)
}

// BoardAdd appends a card to the source column.
func (r *Runner) BoardAdd(ctx context.Context, cmd *cli.Command) error {
	label, err := requireArg(cmd, "label")
	if err != nil {
		return err
	}

	mgr, closeFn, err := r.openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if res := mgr.AddCard(ctx, label); !res.Changed {
		return fmt.Errorf("%w: label is blank", shared.ErrInvalidArgument)
	}
	if err := saved(mgr); err != nil {
		return err
	}

	col, _ := mgr.Column(mgr.SourceColumnID())
	card := col.Cards[len(col.Cards)-1]
	r.logger.Debug("card added", "id", card.ID, "column", col.ColumnID)

	return r.writePlain("✓ Added %q to %s [%s]\n", card.Label, col.Name, card.ID)
}

// BoardDelete removes a card from the sink column.
func (r *Runner) BoardDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "card-id")
	if err != nil {
		return err
	}

	mgr, closeFn, err := r.openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	card, ok := mgr.Card(id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrCardNotFound, id)
	}

	if res := mgr.DeleteCard(ctx, id); !res.Changed {
		return fmt.Errorf("%w: %s is not in the %s column", shared.ErrInvalidArgument, id, mgr.SinkColumnID())
	}
	if err := saved(mgr); err != nil {
		return err
	}

	return r.writePlain("✓ Deleted %q\n", card.Label)
}

// BoardMove moves a card to the end of a column through a full drag lifecycle.
func (r *Runner) BoardMove(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "card-id")
	if err != nil {
		return err
	}
	target, err := requireArg(cmd, "column-id")
	if err != nil {
		return err
	}

	mgr, closeFn, err := r.openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	card, ok := mgr.Card(id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrCardNotFound, id)
	}
	col, ok := mgr.Column(target)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrColumnNotFound, target)
	}

	mgr.BeginDrag(ctx, card.ID, card.Label, models.Pointer{})
	res := mgr.EnterColumn(ctx, target)
	mgr.EndDrag(ctx)

	if !res.Changed {
		return r.writePlain("%q is already in %s\n", card.Label, col.Name)
	}
	if err := saved(mgr); err != nil {
		return err
	}

	return r.writePlain("✓ Moved %q to %s\n", card.Label, col.Name)
}

// BoardReset overwrites the stored board with the default columns.
func (r *Runner) BoardReset(ctx context.Context, cmd *cli.Command) error {
	mgr, closeFn, err := r.openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	mgr.Replace(ctx, models.DefaultColumns())
	if err := saved(mgr); err != nil {
		return err
	}

	r.logger.Info("board reset", "key", mgr.Key())
	return r.writePlain("✓ Board reset\n")
}

// BoardHistory lists snapshots replaced by later saves.
func (r *Runner) BoardHistory(ctx context.Context, cmd *cli.Command) error {
	s, closeFn, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	sq, ok := s.(*store.SQLiteStore)
	if !ok {
		return fmt.Errorf("%w: %s", errHistoryUnsupported, r.config.Storage.Backend)
	}

	entries, err := sq.History(ctx, r.config.Board.Key, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return r.writePlain("No history for %s\n", r.config.Board.Key)
	}

	r.writePlainHeader(fmt.Sprintf("History: %s", r.config.Board.Key))
	for _, e := range entries {
		cards := "?"
		if cols, err := store.DecodeSnapshot(e.Value); err == nil {
			cards = fmt.Sprint(countCards(cols))
		}
		r.writePlain("%d  %s  %s cards\n", e.ID, e.ReplacedAt.Format("2006-01-02 15:04:05"), cards)
	}

	return nil
}

func countCards(columns []models.Column) int {
	n := 0
	for _, col := range columns {
		n += col.CardCount()
	}
	return n
}
