// Package file implements a local filesystem datasource.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local opens files from the local disk.
type Local struct{ path string }

// NewLocal returns a Local source bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Path returns the bound filesystem path.
func (l *Local) Path() string { return l.path }

// Open opens the configured path for reading. A canceled context returns the
// context error without touching the filesystem; filesystem errors are
// wrapped with the path while keeping errors.Is(err, os.ErrNotExist) usable
// for the caller's fatal-vs-recoverable decision.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
