// Package pwdata defines the canonical power-plant record model shared by the
// importers, the enrichment stage, the storage backends, and the summarizer.
//
// Optional fields are represented as pointers (nil = no data). Magic sentinel
// strings or numbers are never stored in a record; "no data" is expressed in
// the type system and rendered as an empty CSV cell on output.
package pwdata

import (
	"fmt"
	"sort"
	"time"
)

// Fuel is one of the fixed canonical fuel categories. Every source-specific
// fuel label is mapped onto one of these by the fuel thesaurus.
type Fuel string

const (
	FuelCoal         Fuel = "Coal"
	FuelGas          Fuel = "Gas"
	FuelOil          Fuel = "Oil"
	FuelPetcoke      Fuel = "Petcoke"
	FuelHydro        Fuel = "Hydro"
	FuelNuclear      Fuel = "Nuclear"
	FuelWind         Fuel = "Wind"
	FuelSolar        Fuel = "Solar"
	FuelGeothermal   Fuel = "Geothermal"
	FuelBiomass      Fuel = "Biomass"
	FuelCogeneration Fuel = "Cogeneration"
	FuelWaste        Fuel = "Waste"
	FuelWaveAndTidal Fuel = "Wave and Tidal"
	FuelOther        Fuel = "Other"
)

// Fuels lists all canonical categories in the stable order used by the
// summary output columns.
var Fuels = []Fuel{
	FuelCoal, FuelGas, FuelOil, FuelPetcoke, FuelHydro, FuelNuclear,
	FuelWind, FuelSolar, FuelGeothermal, FuelBiomass, FuelCogeneration,
	FuelWaste, FuelWaveAndTidal, FuelOther,
}

// FuelSet is a set of canonical fuel categories. A plant can burn several
// fuels at once; multi-row plants accumulate fuels via union.
type FuelSet map[Fuel]struct{}

// NewFuelSet returns a set containing the given fuels.
func NewFuelSet(fuels ...Fuel) FuelSet {
	s := make(FuelSet, len(fuels))
	for _, f := range fuels {
		s[f] = struct{}{}
	}
	return s
}

// Add inserts f into the set.
func (s FuelSet) Add(f Fuel) { s[f] = struct{}{} }

// Union inserts every fuel of other into the set.
func (s FuelSet) Union(other FuelSet) {
	for f := range other {
		s[f] = struct{}{}
	}
}

// Contains reports whether f is in the set.
func (s FuelSet) Contains(f Fuel) bool {
	_, ok := s[f]
	return ok
}

// Sorted returns the fuels in deterministic (alphabetical) order.
func (s FuelSet) Sorted() []Fuel {
	out := make([]Fuel, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Generation is one annual-generation observation: the generated energy in
// GWh over a reporting period, attributed to a source.
type Generation struct {
	GWh    float64
	Start  time.Time
	End    time.Time
	Source string
}

// Year returns the reporting year of the observation (the year the period
// ends in).
func (g Generation) Year() int { return g.End.Year() }

// Location is a geographic position with an optional free-text description
// and the source the coordinates came from.
type Location struct {
	Description string
	Latitude    float64
	Longitude   float64
}

// PowerPlant is the canonical, deduplicated plant record. It is immutable
// once assembled except for the two enrichment-only fields (Location and
// CommissioningYear), which the enrichment stage may populate exactly once.
type PowerPlant struct {
	ID      string // source code + zero-padded sequence, e.g. ARG0000001
	Name    string
	Owner   *string
	Fuel    FuelSet
	Country string

	CapacityMW   *float64
	CapacityYear *int

	Source    string
	SourceURL string

	// Generation holds per-year observations; at most one entry per year.
	Generation []Generation

	// Enrichment-only fields.
	Location          *Location
	CommissioningYear *int
}

// GenerationFor returns the observation for the given year, if any.
func (p *PowerPlant) GenerationFor(year int) (Generation, bool) {
	for _, g := range p.Generation {
		if g.Year() == year {
			return g, true
		}
	}
	return Generation{}, false
}

// MakeID builds a source-scoped identifier from a source code and a sequence
// number. Sequence numbers are zero-padded so identifiers sort lexically in
// assignment order.
func MakeID(sourceCode string, n int) string {
	return fmt.Sprintf("%s%07d", sourceCode, n)
}
