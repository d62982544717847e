// Package htmltable extracts positional rows from fixed-layout HTML tables.
//
// This is deliberately not a general HTML parser. The national listings it
// targets are machine-generated documents with a known table position and a
// fixed number of header and footer rows; simple, predictable string
// scanning over tag boundaries is cheap to apply and easy to reason about.
// Tags inside cells (font, anchors) are stripped and whitespace is collapsed
// so a cell's value is its visible text.
package htmltable

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// Options configures table extraction.
type Options struct {
	// TableIndex selects which <table> of the document to read (0-based).
	TableIndex int

	// HeaderRows is the number of leading rows to discard.
	HeaderRows int

	// FooterRows is the number of trailing rows to discard.
	FooterRows int
}

// Parser extracts one table of an HTML document into positional rows.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse reads the whole document from r and returns the selected table's data
// rows. A document without the configured table is a structural error. Rows
// without any <td> cells are skipped and counted.
func (p *Parser) Parse(r io.Reader) ([][]string, int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("htmltable: read document: %w", err)
	}
	doc := string(raw)

	table, ok := nthElement(doc, "table", p.opt.TableIndex)
	if !ok {
		return nil, 0, fmt.Errorf("htmltable: table %d not found", p.opt.TableIndex)
	}

	var rows [][]string
	var skipped int
	for _, tr := range elements(table, "tr") {
		cells := elements(tr, "td")
		if len(cells) == 0 {
			skipped++
			continue
		}
		row := make([]string, len(cells))
		for i, cell := range cells {
			row[i] = cellText(cell)
		}
		rows = append(rows, row)
	}

	if p.opt.HeaderRows > 0 {
		if p.opt.HeaderRows >= len(rows) {
			return nil, skipped, nil
		}
		rows = rows[p.opt.HeaderRows:]
	}
	if p.opt.FooterRows > 0 {
		if p.opt.FooterRows >= len(rows) {
			return nil, skipped, nil
		}
		rows = rows[:len(rows)-p.opt.FooterRows]
	}
	return rows, skipped, nil
}

// nthElement returns the inner content of the n-th (0-based) occurrence of
// <name ...>...</name> in doc, matching case-insensitively.
func nthElement(doc, name string, n int) (string, bool) {
	rest := doc
	for i := 0; ; i++ {
		inner, tail, ok := nextElement(rest, name)
		if !ok {
			return "", false
		}
		if i == n {
			return inner, true
		}
		rest = tail
	}
}

// elements returns the inner content of every <name ...>...</name> in s, in
// document order. Unclosed trailing elements extend to the end of s.
func elements(s, name string) []string {
	var out []string
	rest := s
	for {
		inner, tail, ok := nextElement(rest, name)
		if !ok {
			return out
		}
		out = append(out, inner)
		rest = tail
	}
}

// nextElement finds the first <name ...> in s and returns its inner content
// and the remainder of s after the element. Machine-generated listings
// sometimes omit close tags (</td> in particular); the element then runs to
// the next open tag of the same name or to the end of s.
func nextElement(s, name string) (inner, tail string, ok bool) {
	lower := strings.ToLower(s)
	open := "<" + name
	start := -1
	from := 0
	for {
		i := strings.Index(lower[from:], open)
		if i < 0 {
			return "", "", false
		}
		i += from
		// Require a delimiter so "<td" does not match "<tdata".
		after := i + len(open)
		if after < len(lower) && lower[after] != '>' && lower[after] != ' ' &&
			lower[after] != '\t' && lower[after] != '\n' && lower[after] != '\r' {
			from = after
			continue
		}
		start = i
		break
	}

	gt := strings.IndexByte(lower[start:], '>')
	if gt < 0 {
		return "", "", false
	}
	contentFrom := start + gt + 1

	closeTag := "</" + name
	end := strings.Index(lower[contentFrom:], closeTag)
	nextOpen := strings.Index(lower[contentFrom:], open)
	switch {
	case end >= 0 && (nextOpen < 0 || end <= nextOpen):
		inner = s[contentFrom : contentFrom+end]
		afterClose := contentFrom + end + len(closeTag)
		if gt2 := strings.IndexByte(lower[afterClose:], '>'); gt2 >= 0 {
			tail = s[afterClose+gt2+1:]
		}
		return inner, tail, true
	case nextOpen >= 0:
		// Missing close tag; the sibling open tag ends this element.
		inner = s[contentFrom : contentFrom+nextOpen]
		tail = s[contentFrom+nextOpen:]
		return inner, tail, true
	default:
		return s[contentFrom:], "", true
	}
}

// cellText reduces a cell's markup to its visible text: tags dropped,
// entities decoded, whitespace runs collapsed.
func cellText(cell string) string {
	var b strings.Builder
	b.Grow(len(cell))
	inTag := false
	for _, r := range cell {
		switch r {
		case '<':
			inTag = true
		case '>':
			inTag = false
		default:
			if !inTag {
				b.WriteRune(r)
			}
		}
	}
	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}
