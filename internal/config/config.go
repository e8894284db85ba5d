package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/nhle/todo/internal/store"
)

// envPrefix namespaces environment overrides, e.g. TODO_STORAGE_PATH.
const envPrefix = "TODO"

// StorageConfig selects the storage engine and database location.
type StorageConfig struct {
	// Driver is "sqlite" or "disabled".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the SQLite database file. A leading "~/" is expanded.
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls where log output goes.
type LogConfig struct {
	// File receives log output. Empty means DefaultLogPath when Debug is
	// set, and no logging otherwise.
	File string `mapstructure:"file" yaml:"file"`

	// Debug logs every task change and the table contents after inserts.
	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// StoreOptions converts the storage section into gateway options.
func (c *AppConfig) StoreOptions() store.Options {
	return store.Options{
		Driver: c.Storage.Driver,
		Path:   c.Storage.Path,
	}
}

// LogFile returns the file log output should go to, or "" to discard it.
func (c *AppConfig) LogFile() string {
	if c.Log.File != "" {
		return expandHome(c.Log.File)
	}
	if c.Log.Debug {
		return DefaultLogPath()
	}
	return ""
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/todo/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "todo", "config.yaml")
}

// DefaultDBPath returns ~/.local/share/todo/db.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "db.db")
	}
	return filepath.Join(home, ".local", "share", "todo", "db.db")
}

// DefaultLogPath returns ~/.local/state/todo/todo.log.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "todo.log")
	}
	return filepath.Join(home, ".local", "state", "todo", "todo.log")
}

// DefaultAppConfig returns the configuration used when no file or
// environment override is present.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Driver: store.DriverSQLite,
			Path:   DefaultDBPath(),
		},
	}
}

// LoadDotEnv loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads configuration from the given YAML file path using Viper,
// then applies TODO_* environment overrides. A missing file leaves the
// defaults in place.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values and so that
	// AutomaticEnv knows every key.
	defaults := DefaultAppConfig()
	v.SetDefault("storage.driver", defaults.Storage.Driver)
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("log.file", "")
	v.SetDefault("log.debug", false)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = store.DriverSQLite
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultDBPath()
	}
	cfg.Storage.Path = expandHome(cfg.Storage.Path)

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", map[string]any{
		"driver": cfg.Storage.Driver,
		"path":   cfg.Storage.Path,
	})
	v.Set("log", map[string]any{
		"file":  cfg.Log.File,
		"debug": cfg.Log.Debug,
	})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// EnsureDir creates the parent directory of a file path.
func EnsureDir(file string) error {
	if file == "" || file == ":memory:" {
		return nil
	}
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
