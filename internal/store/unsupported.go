//go:build js || wasip1

package store

// openEngine falls back to the disabled engine: the embedded SQLite driver
// is not available on this target.
func openEngine(string) (Engine, error) {
	return Disabled(), nil
}
