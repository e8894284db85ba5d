package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo/internal/store"
	"github.com/nhle/todo/internal/tasks"
)

type harness struct {
	t      *testing.T
	dir    string
	db     string
	config string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TODO_STORAGE_DRIVER", "")
	t.Setenv("TODO_STORAGE_PATH", "")
	t.Setenv("TODO_LOG_FILE", "")
	t.Setenv("TODO_LOG_DEBUG", "")
	return &harness{
		t:      t,
		dir:    dir,
		db:     filepath.Join(dir, "data", "db.db"),
		config: filepath.Join(dir, "config.yaml"),
	}
}

// run executes one invocation against the harness database.
func (h *harness) run(opts []Option, args ...string) (string, string, error) {
	h.t.Helper()
	root := NewRootCommand(opts...)

	var out, errOut bytes.Buffer
	root.SetOutput(&out, &errOut)
	root.SetArgs(append([]string{"--config", h.config, "--db", h.db}, args...))

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, _, err := h.run(nil, args...)
	require.NoError(h.t, err)
	return out
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "Buy", "milk")
	assert.Equal(t, "Added: Buy milk\n", out)

	out = h.mustRun("list")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "   1  Buy milk")

	assert.Equal(t, "", h.mustRun("list", "--done"))
}

func TestListEmptyPrintsNothing(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "", h.mustRun("list"))
	assert.Equal(t, "", h.mustRun("list", "--all"))
}

func TestBuyMilkLifecycle(t *testing.T) {
	h := newHarness(t)

	h.mustRun("add", "Buy milk")
	h.mustRun("done", "1")

	assert.Equal(t, "", h.mustRun("list"))
	out := h.mustRun("list", "--done")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "Buy milk")

	// Marking done twice is harmless.
	h.mustRun("done", "1")

	h.mustRun("rm", "1")
	assert.Equal(t, "", h.mustRun("list", "--all"))
}

func TestListAllShowsBothSections(t *testing.T) {
	h := newHarness(t)

	h.mustRun("add", "Buy milk")
	h.mustRun("add", "Call mom")
	h.mustRun("done", "2")

	out := h.mustRun("list", "--all")
	pendingAt := strings.Index(out, "Pending")
	completedAt := strings.Index(out, "Completed")
	require.GreaterOrEqual(t, pendingAt, 0)
	require.Greater(t, completedAt, pendingAt)
	assert.Contains(t, out[pendingAt:completedAt], "Buy milk")
	assert.Contains(t, out[completedAt:], "Call mom")
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	h := newHarness(t)

	h.mustRun("add", "Buy milk")
	h.mustRun("rm", "42")
	assert.Contains(t, h.mustRun("list"), "Buy milk")
}

func TestInvalidID(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(nil, "done", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid task id "abc"`)

	_, _, err = h.run(nil, "rm")
	assert.Error(t, err)
}

func TestAddPromptsWithoutArgs(t *testing.T) {
	h := newHarness(t)

	prompt := WithPrompt(func() (string, error) { return "Call mom", nil })
	out, _, err := h.run([]Option{prompt}, "add")
	require.NoError(t, err)
	assert.Equal(t, "Added: Call mom\n", out)
	assert.Contains(t, h.mustRun("list"), "Call mom")
}

func TestAddEmptyPromptAddsNothing(t *testing.T) {
	h := newHarness(t)

	prompt := WithPrompt(func() (string, error) { return "", nil })
	out, _, err := h.run([]Option{prompt}, "add")
	require.NoError(t, err)
	assert.Equal(t, "", out)
	assert.Equal(t, "", h.mustRun("list"))
}

func TestRootRunsInterface(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "Buy milk")

	var seen *tasks.Service
	ui := WithUIRunner(func(svc *tasks.Service) error {
		seen = svc
		return nil
	})
	_, _, err := h.run([]Option{ui})
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.True(t, seen.Supported())
}

func TestDisabledDriverPrintsNotice(t *testing.T) {
	h := newHarness(t)
	t.Setenv("TODO_STORAGE_DRIVER", store.DriverDisabled)

	out, errOut, err := h.run(nil, "add", "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, "", out)
	assert.Equal(t, UnsupportedNotice+"\n", errOut)

	_, err = os.Stat(h.db)
	assert.True(t, os.IsNotExist(err))
}

func TestUnknownDriver(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.config, []byte("storage:\n  driver: postgres\n"), 0o644))

	_, _, err := h.run(nil, "list")
	assert.ErrorIs(t, err, store.ErrUnknownDriver)
}

func TestDebugWritesLogFile(t *testing.T) {
	h := newHarness(t)
	logPath := filepath.Join(h.dir, "logs", "todo.log")
	t.Setenv("TODO_LOG_FILE", logPath)

	h.mustRun("--debug", "add", "Buy milk")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `items: [{id:1 done:0 value:"Buy milk"}]`)
	assert.Contains(t, string(data), "task change: rev=1 kind=added")
}

func TestRemovePendingTaskIsNoop(t *testing.T) {
	h := newHarness(t)

	h.mustRun("add", "Buy milk")
	h.mustRun("rm", "1")
	assert.Contains(t, h.mustRun("list"), "Buy milk")

	h.mustRun("done", "1")
	h.mustRun("rm", "1")
	assert.Equal(t, "", h.mustRun("list", "--all"))
}

func TestHelpAndCompletionDoNotOpenStorage(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("help")
	assert.Contains(t, out, "todo add")

	out = h.mustRun("completion", "bash")
	assert.NotEmpty(t, out)

	_, err := os.Stat(filepath.Dir(h.db))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigInitWritesDefaults(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("config", "init")
	assert.Equal(t, "Wrote "+h.config+"\n", out)

	data, err := os.ReadFile(h.config)
	require.NoError(t, err)
	assert.Contains(t, string(data), "driver: sqlite")

	_, _, err = h.run(nil, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	h.mustRun("config", "init", "--force")

	_, err = os.Stat(filepath.Dir(h.db))
	assert.True(t, os.IsNotExist(err))
}
