package store

import (
	"context"
	"errors"
	"fmt"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverDisabled = "disabled"
)

// ErrUnknownDriver is returned by Open for an unrecognised driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Engine is the capability the gateway needs from a storage backend:
// execute a statement, or run a query and scan the rows into dest.
//
// Two variants exist. The SQLite engine talks to a real database file; the
// disabled engine stands in on targets without an embedded database so the
// UI still starts and shows an empty, unsupported state.
type Engine interface {
	Exec(ctx context.Context, query string, args ...any) error
	Select(ctx context.Context, dest any, query string, args ...any) error
	Supported() bool
	Close() error
}

// Options selects and configures the storage engine.
type Options struct {
	// Driver is DriverSQLite or DriverDisabled. Empty means DriverSQLite.
	Driver string

	// Path is the SQLite database file, or ":memory:".
	Path string
}

// Gateway owns the single storage connection and exposes the task
// operations. Every operation is one independent statement.
type Gateway struct {
	engine Engine
}

// New wraps an already opened engine. Most callers want Open.
func New(engine Engine) *Gateway {
	return &Gateway{engine: engine}
}

// Open selects the engine for opts once, creates the items table when
// missing and returns the gateway. The caller owns the returned gateway
// and must Close it.
func Open(ctx context.Context, opts Options) (*Gateway, error) {
	var (
		engine Engine
		err    error
	)

	switch opts.Driver {
	case "", DriverSQLite:
		engine, err = openEngine(opts.Path)
		if err != nil {
			return nil, err
		}
	case DriverDisabled:
		engine = Disabled()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}

	g := New(engine)
	if err := g.EnsureSchema(ctx); err != nil {
		engine.Close()
		return nil, err
	}
	return g, nil
}

// Supported reports whether a real database backs the gateway.
func (g *Gateway) Supported() bool {
	return g.engine.Supported()
}

// Close releases the underlying connection.
func (g *Gateway) Close() error {
	return g.engine.Close()
}
