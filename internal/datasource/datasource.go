// Package datasource abstracts where raw bytes come from. The pipeline core
// only ever sees an opened reader; whether it is a local file or a completed
// HTTP download is decided by the command wiring before transformation
// begins.
package datasource

import (
	"context"
	"io"
)

// Source yields a readable byte stream on demand.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
