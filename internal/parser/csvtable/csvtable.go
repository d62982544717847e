// Package csvtable reads the pipeline's CSV surfaces: the auxiliary lookup
// files (small two/three-column tables with one header row) and the canonical
// database CSV written by the build step and read back by the summarizer.
//
// Row handling is soft-fail: malformed rows and width mismatches are skipped
// and counted rather than aborting the read, with per-file log volume capped.
package csvtable

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
)

// utf8BOM is stripped from the first cell of the first row if present.
const utf8BOM = "\ufeff"

// logLimit caps how many skipped rows are logged per read.
const logLimit = 50

// Options configures the CSV reader.
type Options struct {
	// HasHeader discards the first row.
	HasHeader bool

	// Comma is the field delimiter; ',' when zero.
	Comma rune

	// TrimSpace trims leading/trailing spaces from every cell.
	TrimSpace bool

	// ExpectedFields, when > 0, skips (and counts) rows of any other width.
	ExpectedFields int
}

// Parser reads CSV input into positional rows according to Options.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse reads all rows from r. It returns the rows, the count of soft-skipped
// rows, and a fatal error only for an unreadable header.
func (p *Parser) Parse(r io.Reader) ([][]string, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	first := true
	if p.opt.HasHeader {
		if _, err := cr.Read(); err != nil {
			if err == io.EOF {
				return nil, 0, nil
			}
			return nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		first = false
	}

	var rows [][]string
	var skipped int
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < logLimit {
				log.Printf("csvtable: skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}
		if first {
			row[0] = strings.TrimPrefix(row[0], utf8BOM)
			first = false
		}
		if p.opt.ExpectedFields > 0 && len(row) != p.opt.ExpectedFields {
			if skipped < logLimit {
				log.Printf("csvtable: skipping row %d: got %d fields, want %d",
					line, len(row), p.opt.ExpectedFields)
			}
			skipped++
			continue
		}
		if p.opt.TrimSpace {
			for i := range row {
				row[i] = strings.TrimSpace(row[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}
