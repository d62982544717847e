// Package lookup loads auxiliary side tables and joins them onto canonical
// plant records.
//
// The primary national sources lack coordinates and commissioning years;
// those live in curated side files (key, value[, value]) with one header row.
// A table is loaded fully before any enrichment lookup begins. Matching is
// exact on the normalized key — no fuzzy distance matching. Records that miss
// keep their absent values and are reported, never dropped.
package lookup

import (
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/deekonger/powerwatch/internal/parser/csvtable"
	"github.com/deekonger/powerwatch/internal/pwdata"
	"github.com/deekonger/powerwatch/internal/textnorm"
)

// KeyFunc normalizes a raw key cell into its canonical join form.
type KeyFunc func(string) string

// Table is a read-only mapping from normalized key to auxiliary values.
type Table struct {
	name    string
	entries map[string][]string
}

// Load reads a complete side table from r. valueCols is the expected number
// of value columns per key (1 for commissioning years, 2 for coordinates).
// keyFn normalizes keys; nil means textnorm.Key, which must match the
// normalization applied to the records being enriched. Later duplicate keys
// win, matching last-write semantics of a curated file.
func Load(r io.Reader, name string, valueCols int, keyFn KeyFunc) (*Table, error) {
	if keyFn == nil {
		keyFn = textnorm.Key
	}
	p := csvtable.NewParser(csvtable.Options{
		HasHeader:      true,
		TrimSpace:      true,
		ExpectedFields: 1 + valueCols,
	})
	rows, skipped, err := p.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", name, err)
	}
	if skipped > 0 {
		log.Printf("lookup %s: skipped %d malformed rows", name, skipped)
	}

	t := &Table{name: name, entries: make(map[string][]string, len(rows))}
	for _, row := range rows {
		key := keyFn(row[0])
		if key == "" {
			continue
		}
		t.entries[key] = row[1:]
	}
	return t, nil
}

// Get returns the values for key, if present.
func (t *Table) Get(key string) ([]string, bool) {
	vals, ok := t.entries[key]
	return vals, ok
}

// Len returns the number of keys in the table.
func (t *Table) Len() int { return len(t.entries) }

// Name returns the table's diagnostic name.
func (t *Table) Name() string { return t.name }

// Locations populates Location on every plant whose normalized name is a key
// of t (columns: latitude, longitude). It returns the plants that missed.
// Running it again with the same table changes nothing.
func Locations(plants []*pwdata.PowerPlant, t *Table) (notFound []*pwdata.PowerPlant) {
	for _, p := range plants {
		vals, ok := t.Get(textnorm.Key(p.Name))
		if !ok {
			notFound = append(notFound, p)
			continue
		}
		lat, errLat := strconv.ParseFloat(vals[0], 64)
		lon, errLon := strconv.ParseFloat(vals[1], 64)
		if errLat != nil || errLon != nil {
			log.Printf("lookup %s: bad coordinates for %q: %v %v", t.name, p.Name, errLat, errLon)
			notFound = append(notFound, p)
			continue
		}
		p.Location = &pwdata.Location{Latitude: lat, Longitude: lon}
	}
	return notFound
}

// CommissioningYears populates CommissioningYear on every plant whose
// normalized name is a key of t (column: year). It returns the plants that
// missed. Independent of Locations: a record may hit in one table and miss in
// the other.
func CommissioningYears(plants []*pwdata.PowerPlant, t *Table) (notFound []*pwdata.PowerPlant) {
	for _, p := range plants {
		vals, ok := t.Get(textnorm.Key(p.Name))
		if !ok {
			notFound = append(notFound, p)
			continue
		}
		year, err := strconv.Atoi(vals[0])
		if err != nil {
			log.Printf("lookup %s: bad year for %q: %v", t.name, p.Name, err)
			notFound = append(notFound, p)
			continue
		}
		p.CommissioningYear = &year
	}
	return notFound
}
