// Package xlsx parses fixed-layout spreadsheet tables.
//
// The primary national sources arrive as .xlsx workbooks with one relevant
// sheet and a known first data row; everything above the offset is headers
// and titling to be skipped. A missing sheet is a structural error: the run
// must abort rather than emit a partial dataset.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Options configures the spreadsheet parser.
type Options struct {
	// Sheet is the worksheet name holding the table. Required; a workbook
	// without it is a structural error.
	Sheet string

	// StartRow is the 0-based index of the first data row. Rows above it are
	// discarded.
	StartRow int

	// MinColumns, when > 0, right-pads shorter rows with empty cells so that
	// fixed column indexes are always addressable.
	MinColumns int
}

// Parser reads one sheet of an xlsx workbook into positional rows.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse loads the workbook from r and returns the data rows of the
// configured sheet. The skipped count is always zero for spreadsheets; cells
// arrive pre-split, so there are no row-level parse failures at this layer.
func (p *Parser) Parse(r io.Reader) ([][]string, int, error) {
	if p.opt.Sheet == "" {
		return nil, 0, fmt.Errorf("xlsx: sheet name required")
	}

	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("xlsx: open workbook: %w", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(p.opt.Sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("xlsx: sheet %q: %w", p.opt.Sheet, err)
	}

	if p.opt.StartRow >= len(rows) {
		return nil, 0, nil
	}
	rows = rows[p.opt.StartRow:]

	if p.opt.MinColumns > 0 {
		for i, row := range rows {
			for len(row) < p.opt.MinColumns {
				row = append(row, "")
			}
			rows[i] = row
		}
	}
	return rows, 0, nil
}
