package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/todo/internal/app"
	"github.com/nhle/todo/internal/config"
	"github.com/nhle/todo/internal/store"
	"github.com/nhle/todo/internal/tasks"
	"github.com/nhle/todo/internal/ui/taskform"
)

// UnsupportedNotice is printed instead of running a command when no
// embedded database is available.
const UnsupportedNotice = "SQLite is not supported on this platform!"

// annotationNoStorage marks commands that run without opening storage.
const annotationNoStorage = "todo/no-storage"

// RootCommand is the todo command tree. It owns the storage gateway for
// the lifetime of one invocation.
type RootCommand struct {
	cmd     *cobra.Command
	cfg     *config.AppConfig
	gw      *store.Gateway
	svc     *tasks.Service
	logFile *os.File

	runUI  func(svc *tasks.Service) error
	prompt func() (string, error)
}

// Option customises a RootCommand.
type Option func(*RootCommand)

// WithUIRunner replaces the function that runs the terminal UI.
func WithUIRunner(fn func(svc *tasks.Service) error) Option {
	return func(r *RootCommand) {
		r.runUI = fn
	}
}

// WithPrompt replaces the interactive prompt `todo add` uses when it is
// given no text.
func WithPrompt(fn func() (string, error)) Option {
	return func(r *RootCommand) {
		r.prompt = fn
	}
}

// NewRootCommand creates the root cobra command with global flags and all
// subcommands.
func NewRootCommand(opts ...Option) *RootCommand {
	root := &RootCommand{
		runUI:  runProgram,
		prompt: promptTask,
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A local to-do list backed by SQLite",
		Long: `todo keeps a to-do list in a local SQLite database.

Run without a subcommand to open the interactive screen: type a task and
press enter to save it. In the Pending list enter marks a task done; in the
Completed list enter deletes it.

EXAMPLES:
  todo                       # Open the interactive screen
  todo add "Buy milk"        # Add a pending task
  todo add                   # Prompt for a task
  todo list                  # Show pending tasks
  todo list --done           # Show completed tasks
  todo done 1                # Mark task 1 done
  todo rm 1                  # Delete task 1

CONFIGURATION:
  Priority order: command-line flags > environment variables > config file > defaults

    TODO_STORAGE_DRIVER        sqlite or disabled (default: sqlite)
    TODO_STORAGE_PATH          Database file (default: ~/.local/share/todo/db.db)
    TODO_LOG_FILE              Log file (default: ~/.local/state/todo/todo.log with --debug)
    TODO_LOG_DEBUG             Log every change and the table after inserts

  A .env file in the working directory is loaded first.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runUI(root.svc)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the command tree and releases storage afterwards.
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext is Execute with a caller supplied context.
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args[1:].
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects standard and error output of every command.
func (r *RootCommand) SetOutput(out, errOut io.Writer) {
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (default: ~/.config/todo/config.yaml)")
	flags.String("db", "", "Database file (overrides TODO_STORAGE_PATH)")
	flags.Bool("debug", false, "Log every change to the log file (overrides TODO_LOG_DEBUG)")
}

// setup loads configuration, applies flag overrides, starts logging and
// opens storage.
func (r *RootCommand) setup(cmd *cobra.Command) error {
	if !needsStorage(cmd) {
		return nil
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	flags := r.cmd.PersistentFlags()
	cfg, err := config.LoadConfig(r.configPath())
	if err != nil {
		return err
	}
	if db, _ := flags.GetString("db"); db != "" {
		cfg.Storage.Path = db
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Log.Debug = true
	}
	r.cfg = cfg

	if err := r.setupLogging(); err != nil {
		return err
	}

	if cfg.Storage.Driver != store.DriverDisabled {
		if err := config.EnsureDir(cfg.Storage.Path); err != nil {
			return err
		}
	}

	gw, err := store.Open(cmd.Context(), cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	r.gw = gw
	r.svc = tasks.New(gw, tasks.WithDebug(cfg.Log.Debug))

	log.Printf("storage opened: driver=%s path=%s supported=%t",
		cfg.Storage.Driver, cfg.Storage.Path, gw.Supported())
	return nil
}

// configPath returns the --config flag, or the default location.
func (r *RootCommand) configPath() string {
	if path, _ := r.cmd.PersistentFlags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}

// needsStorage reports whether cmd works on tasks. Help, shell completion
// and config commands do not, and must not create the database.
func needsStorage(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
		if _, ok := c.Annotations[annotationNoStorage]; ok {
			return false
		}
	}
	return true
}

// setupLogging sends the standard logger to the configured file. The
// terminal belongs to the UI, so without a file logs are discarded.
func (r *RootCommand) setupLogging() error {
	file := r.cfg.LogFile()
	if file == "" {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := config.EnsureDir(file); err != nil {
		return err
	}
	f, err := tea.LogToFile(file, "todo")
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", file, err)
	}
	r.logFile = f
	return nil
}

func (r *RootCommand) close() {
	if r.svc != nil {
		r.svc.Close()
		r.svc = nil
	}
	if r.gw != nil {
		if err := r.gw.Close(); err != nil {
			log.Printf("closing storage: %v", err)
		}
		r.gw = nil
	}
	if r.logFile != nil {
		log.SetOutput(io.Discard)
		r.logFile.Close()
		r.logFile = nil
	}
}

// requireStorage prints the unsupported notice when no database backs the
// service. Commands then exit successfully without doing anything.
func (r *RootCommand) requireStorage(cmd *cobra.Command) bool {
	if r.svc.Supported() {
		return true
	}
	fmt.Fprintln(cmd.ErrOrStderr(), UnsupportedNotice)
	return false
}

func runProgram(svc *tasks.Service) error {
	p := tea.NewProgram(app.New(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

func promptTask() (string, error) {
	return taskform.Prompt(taskform.Options{})
}
