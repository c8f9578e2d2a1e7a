package history

import (
	"errors"
	"fmt"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown history backend")

// Options selects and configures a Store backend.
type Options struct {
	Backend    string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Open builds the Store described by o. An empty backend yields a
// MemoryStore.
func Open(o Options) (Store, error) {
	switch o.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "jsonl":
		return NewJSONLStore(o.Path)
	case "jsonl_rotating":
		return NewRotatingJSONLStore(o.Path, o.MaxSizeMB, o.MaxBackups, o.MaxAgeDays)
	case "sqlite":
		return NewSQLiteStore(o.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, o.Backend)
	}
}
