// Package parser defines the contract shared by the raw-table parsers.
//
// A Parser turns a byte stream into positional rows: each row is a slice of
// cell strings addressed by column index. Field meaning is assigned later by
// the per-source importers through fixed column-index constants, so parsers
// stay format-specific but source-agnostic.
package parser

import "io"

// Parser extracts positional rows from a raw source document. It returns the
// rows, the number of rows skipped by soft-fail handling, and a fatal error
// for structural problems (unreadable document, missing sheet/table).
type Parser interface {
	Parse(r io.Reader) (rows [][]string, skipped int, err error)
}
