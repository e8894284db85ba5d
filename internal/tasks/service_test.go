package tasks

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/tests/testutil"
)

// failingGateway returns err from every mutation.
type failingGateway struct {
	err error
}

func (g failingGateway) ListByStatus(context.Context, bool) ([]model.Task, error) {
	return nil, g.err
}
func (g failingGateway) ListAll(context.Context) ([]model.Task, error) { return nil, g.err }
func (g failingGateway) InsertTask(context.Context, string) error { return g.err }
func (g failingGateway) MarkDone(context.Context, int64) error { return g.err }
func (g failingGateway) DeleteTask(context.Context, int64) error { return g.err }
func (g failingGateway) Supported() bool { return true }

func TestMutationsPublishIncreasingRevisions(t *testing.T) {
	svc := New(testutil.NewTestGateway(t))
	defer svc.Close()
	sub := svc.Subscribe()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "Buy milk"))
	added := <-sub.C()
	assert.Equal(t, Change{Revision: 1, Kind: KindAdded}, added)

	pending, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	id := pending[0].ID

	require.NoError(t, svc.Complete(ctx, id))
	assert.Equal(t, Change{Revision: 2, Kind: KindCompleted, ID: id}, <-sub.C())

	require.NoError(t, svc.Remove(ctx, id))
	assert.Equal(t, Change{Revision: 3, Kind: KindRemoved, ID: id}, <-sub.C())

	svc.Refresh()
	assert.Equal(t, Change{Revision: 4, Kind: KindRefreshed}, <-sub.C())
	assert.Equal(t, 4, svc.Revision())
}

func TestChangeIsPublishedAfterPersisting(t *testing.T) {
	svc := New(testutil.NewTestGateway(t))
	sub := svc.Subscribe()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "read book"))
	<-sub.C()

	// The subscriber re-queries on the change and must see the new row.
	pending, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "read book", pending[0].Value)
}

func TestEmptyAddPublishesNothing(t *testing.T) {
	svc := New(testutil.NewTestGateway(t))
	sub := svc.Subscribe()

	require.NoError(t, svc.Add(context.Background(), ""))

	assert.Equal(t, 0, svc.Revision())
	assert.Len(t, sub.C(), 0)
}

func TestUnknownIDStillPublishes(t *testing.T) {
	svc := New(testutil.NewTestGateway(t))
	sub := svc.Subscribe()
	ctx := context.Background()

	require.NoError(t, svc.Complete(ctx, 404))
	require.NoError(t, svc.Remove(ctx, 404))

	assert.Equal(t, KindCompleted, (<-sub.C()).Kind)
	assert.Equal(t, KindRemoved, (<-sub.C()).Kind)
}

func TestFailedMutationPublishesNothing(t *testing.T) {
	boom := errors.New("disk gone")
	svc := New(failingGateway{err: boom})
	sub := svc.Subscribe()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Add(ctx, "x"), boom)
	assert.ErrorIs(t, svc.Complete(ctx, 1), boom)
	assert.ErrorIs(t, svc.Remove(ctx, 1), boom)

	assert.Equal(t, 0, svc.Revision())
	assert.Len(t, sub.C(), 0)
}

func TestDebugLogsRowsAfterInsert(t *testing.T) {
	var buf bytes.Buffer
	svc := New(
		testutil.NewTestGateway(t),
		WithDebug(true),
		WithLogger(log.New(&buf, "", 0)),
	)

	require.NoError(t, svc.Add(context.Background(), "Buy milk"))

	out := buf.String()
	assert.Contains(t, out, `items: [{id:1 done:0 value:"Buy milk"}]`)
	assert.Contains(t, out, "task change: rev=1 kind=added")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "added", KindAdded.String())
	assert.Equal(t, "completed", KindCompleted.String())
	assert.Equal(t, "removed", KindRemoved.String())
	assert.Equal(t, "refreshed", KindRefreshed.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestFormatTasks(t *testing.T) {
	assert.Equal(t, "[]", formatTasks(nil))
	assert.Equal(t,
		`[{id:1 done:0 value:"Buy milk"}, {id:2 done:1 value:"Call mom"}]`,
		formatTasks([]model.Task{
			{ID: 1, Value: "Buy milk"},
			{ID: 2, Done: true, Value: "Call mom"},
		}),
	)
}
