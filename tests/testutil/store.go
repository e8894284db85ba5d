package testutil

import (
	"context"
	"testing"

	"github.com/nhle/todo/internal/store"
)

// NewTestGateway opens an in-memory SQLite gateway with the items table in
// place. It automatically closes the gateway when the test completes.
func NewTestGateway(t *testing.T) *store.Gateway {
	t.Helper()

	g, err := store.Open(context.Background(), store.Options{
		Driver: store.DriverSQLite,
		Path:   ":memory:",
	})
	if err != nil {
		t.Fatalf("creating test gateway: %v", err)
	}

	t.Cleanup(func() {
		if err := g.Close(); err != nil {
			t.Errorf("closing test gateway: %v", err)
		}
	})

	return g
}
