// Package numparse parses numeric cells from raw source tables.
//
// Source files disagree on digit grouping and decimal marks: the Argentinian
// spreadsheet uses plain '.'-decimal values, the Brazilian HTML listing uses
// the pt-BR convention ("1.234,56"). Parsing is best-effort by design: a
// malformed cell is an error for the caller to downgrade to a zero
// contribution, never a reason to abort a row or a file.
package numparse

import (
	"fmt"
	"strconv"
	"strings"
)

// Convention selects the digit-grouping and decimal-mark convention of a
// source.
type Convention int

const (
	// DotDecimal is the plain convention: '.' is the decimal mark, ','
	// (if present) groups digits. Example: "1,234.56".
	DotDecimal Convention = iota

	// CommaDecimal is the pt-BR / es-AR convention: ',' is the decimal mark,
	// '.' groups digits. Example: "1.234,56".
	CommaDecimal
)

// Float parses cell under the given convention. Leading/trailing whitespace
// is ignored. An empty cell is an error (the caller decides whether empty
// means zero or absent).
func Float(cell string, conv Convention) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, fmt.Errorf("empty numeric cell")
	}
	switch conv {
	case CommaDecimal:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	default:
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", cell, err)
	}
	return f, nil
}

// Unit conversion factors for the raw sources. Capacity arrives in kW,
// generation in MWh; canonical units are MW and GWh.
const (
	KWToMW   = 0.001
	MWhToGWh = 0.001
)
