package store

import "context"

// disabledEngine accepts every statement and stores nothing.
type disabledEngine struct{}

// Disabled returns the no-op engine used where no embedded database exists.
func Disabled() Engine {
	return disabledEngine{}
}

func (disabledEngine) Exec(context.Context, string, ...any) error { return nil }

func (disabledEngine) Select(context.Context, any, string, ...any) error { return nil }

func (disabledEngine) Supported() bool { return false }

func (disabledEngine) Close() error { return nil }
