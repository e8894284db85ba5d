package store

import (
	"context"
	"fmt"

	"github.com/nhle/todo/internal/model"
)

// EnsureSchema creates the items table if it does not exist yet.
// It is safe to call on every start.
func (g *Gateway) EnsureSchema(ctx context.Context) error {
	if err := g.engine.Exec(ctx, createItemsTable); err != nil {
		return fmt.Errorf("creating items table: %w", err)
	}
	return nil
}

// ListByStatus returns the tasks whose done flag matches done, in storage
// order. It returns an empty slice, never nil, when nothing matches.
func (g *Gateway) ListByStatus(ctx context.Context, done bool) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := g.engine.Select(ctx, &tasks, selectItemsByDone, model.DoneFlag(done)); err != nil {
		return nil, fmt.Errorf("listing tasks (done=%t): %w", done, err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// ListAll returns every stored task regardless of status.
func (g *Gateway) ListAll(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := g.engine.Select(ctx, &tasks, selectAllItems); err != nil {
		return nil, fmt.Errorf("listing all tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// InsertTask stores a new pending task. An empty value is ignored.
func (g *Gateway) InsertTask(ctx context.Context, value string) error {
	if value == "" {
		return nil
	}
	if err := g.engine.Exec(ctx, insertItem, value); err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// MarkDone sets done for the task with the given id. Unknown ids and
// tasks that are already done are left as they are.
func (g *Gateway) MarkDone(ctx context.Context, id int64) error {
	if err := g.engine.Exec(ctx, markItemDone, id); err != nil {
		return fmt.Errorf("marking task %d done: %w", id, err)
	}
	return nil
}

// DeleteTask removes the task with the given id, if any.
func (g *Gateway) DeleteTask(ctx context.Context, id int64) error {
	if err := g.engine.Exec(ctx, deleteItem, id); err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	return nil
}
