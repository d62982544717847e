// Package grouping folds ordered raw source rows into canonical plant
// records.
//
// A logical plant may span several consecutive rows (one per generating
// unit) in the raw table. Presence of a name field marks the start of a new
// plant; rows without a name are additional units of the currently open
// plant, contributing their capacity and generation to the running sums and
// their fuel labels to the fuel-set union. A row without a fuel field acts as
// an end-of-table marker. Rows flagged as islanded (not grid-connected) are
// discarded before any boundary evaluation.
//
// The fold is an explicit two-state machine (Empty, Open) owned by the
// Accumulator type; Finalize emits the immutable record and resets to Empty.
package grouping

import (
	"log"
	"time"

	"github.com/deekonger/powerwatch/internal/fuel"
	"github.com/deekonger/powerwatch/internal/numparse"
	"github.com/deekonger/powerwatch/internal/pwdata"
	"github.com/deekonger/powerwatch/internal/textnorm"
)

// Row is one raw source row reduced to the fields the fold cares about. The
// importer maps source column indexes onto these fields; values are the raw
// cell strings.
type Row struct {
	Name       string
	Owner      string
	Fuel       string
	Grid       string
	Capacity   string
	Generation string
}

// Config carries the per-source constants of a grouping run.
type Config struct {
	// SourceCode prefixes assigned identifiers (e.g. "ARG").
	SourceCode string

	// Country, SourceName, SourceURL and CapacityYear are stamped onto every
	// emitted record.
	Country      string
	SourceName   string
	SourceURL    string
	CapacityYear int

	// DataYear is the reporting year of the generation figures; the emitted
	// observation covers that calendar year.
	DataYear int

	// CapacityFactor converts raw capacity values to MW (kW source: 0.001).
	CapacityFactor float64

	// GenerationFactor converts raw generation values to GWh (MWh source: 0.001).
	GenerationFactor float64

	// Convention selects the numeric format of the source.
	Convention numparse.Convention

	// IslandedMarker is the normalized grid-category value whose rows are
	// discarded unconditionally (e.g. "AISLADO"). Empty disables the check.
	IslandedMarker string
}

// Diagnostics counts the soft failures of one grouping run.
type Diagnostics struct {
	// ParseErrors counts numeric cells that failed to parse and contributed
	// zero instead.
	ParseErrors int

	// UnmatchedFuels lists raw fuel labels that fell back to the Other
	// category.
	UnmatchedFuels []string

	// OrphanRows counts unit rows encountered with no open accumulator and
	// nameless groups dropped at finalization.
	OrphanRows int

	// IslandedRows counts rows discarded by the islanded-grid check.
	IslandedRows int
}

// rowClass is the boundary classification of a single row.
type rowClass int

const (
	classIslanded  rowClass = iota // discard before boundary evaluation
	classTableEnd                  // fuel absent: finalize and reset
	classNewPlant                  // fuel and name present: start a group
	classUnit                      // fuel present, name absent: fold into group
)

// Engine runs the grouping fold for one source table.
type Engine struct {
	cfg  Config
	acc  Accumulator
	out  []*pwdata.PowerPlant
	diag Diagnostics
}

// NewEngine returns an Engine ready to consume rows for one source run. The
// identifier counter starts at 1 and only successful finalizations consume a
// value.
func NewEngine(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	e.acc.init(cfg, &e.diag)
	return e
}

// classify normalizes the boundary-relevant fields and buckets the row.
func (e *Engine) classify(row Row) rowClass {
	if e.cfg.IslandedMarker != "" && textnorm.Format(row.Grid) == e.cfg.IslandedMarker {
		return classIslanded
	}
	if textnorm.Format(row.Fuel) == "" {
		return classTableEnd
	}
	if textnorm.Format(row.Name) == "" {
		return classUnit
	}
	return classNewPlant
}

// Feed folds one row into the engine.
func (e *Engine) Feed(row Row) {
	switch e.classify(row) {
	case classIslanded:
		e.diag.IslandedRows++
	case classTableEnd:
		e.emit()
	case classNewPlant:
		e.emit()
		e.acc.open(row)
	case classUnit:
		e.acc.fold(row)
	}
}

// Finish finalizes any still-open accumulator and returns the emitted records
// in assignment order along with the run diagnostics. A run over zero
// plant-definition rows yields zero records.
func (e *Engine) Finish() ([]*pwdata.PowerPlant, Diagnostics) {
	e.emit()
	return e.out, e.diag
}

// Run is the convenience fold over a complete row sequence.
func (e *Engine) Run(rows []Row) ([]*pwdata.PowerPlant, Diagnostics) {
	for _, row := range rows {
		e.Feed(row)
	}
	return e.Finish()
}

func (e *Engine) emit() {
	if p, ok := e.acc.Finalize(); ok {
		e.out = append(e.out, p)
	}
}

// Accumulator is the mutable in-progress state of the plant currently being
// assembled. Exactly one accumulator exists per engine; its open flag is the
// machine state (Empty / Open).
type Accumulator struct {
	cfg  Config
	diag *Diagnostics

	open_         bool
	name          string
	owner         string
	fuels         pwdata.FuelSet
	capacitySum   float64
	generationSum float64
	nextSeq       int
}

func (a *Accumulator) init(cfg Config, diag *Diagnostics) {
	a.cfg = cfg
	a.diag = diag
	a.nextSeq = 1
	a.reset()
}

func (a *Accumulator) reset() {
	a.open_ = false
	a.name = ""
	a.owner = ""
	a.fuels = pwdata.NewFuelSet()
	a.capacitySum = 0
	a.generationSum = 0
}

// open seeds the accumulator from a name-bearing row, becoming the Open state.
func (a *Accumulator) open(row Row) {
	a.open_ = true
	a.name = textnorm.Format(row.Name)
	a.owner = textnorm.Format(row.Owner)
	a.fuels = a.standardize(row.Fuel)
	a.capacitySum = a.convert(row.Capacity, a.cfg.CapacityFactor, "capacity")
	a.generationSum = a.convert(row.Generation, a.cfg.GenerationFactor, "generation")
}

// fold adds an additional unit row to the open accumulator. Sums are
// monotonically non-decreasing; a conversion error contributes zero for that
// field only.
func (a *Accumulator) fold(row Row) {
	if !a.open_ {
		// Unit row with no plant to attach to; nothing to mutate.
		a.diag.OrphanRows++
		return
	}
	a.capacitySum += a.convert(row.Capacity, a.cfg.CapacityFactor, "capacity")
	a.generationSum += a.convert(row.Generation, a.cfg.GenerationFactor, "generation")
	a.fuels.Union(a.standardize(row.Fuel))
}

// Finalize emits the accumulated plant as an immutable record and resets the
// accumulator to Empty. It returns ok=false when there is nothing to emit
// (Empty state, or a group that never carried a name). Only ok results
// consume an identifier.
func (a *Accumulator) Finalize() (*pwdata.PowerPlant, bool) {
	if !a.open_ {
		return nil, false
	}
	if a.name == "" {
		a.diag.OrphanRows++
		a.reset()
		return nil, false
	}

	capacity := a.capacitySum
	p := &pwdata.PowerPlant{
		ID:           pwdata.MakeID(a.cfg.SourceCode, a.nextSeq),
		Name:         a.name,
		Fuel:         a.fuels,
		Country:      a.cfg.Country,
		CapacityMW:   &capacity,
		CapacityYear: intPtr(a.cfg.CapacityYear),
		Source:       a.cfg.SourceName,
		SourceURL:    a.cfg.SourceURL,
		Generation: []pwdata.Generation{{
			GWh:    a.generationSum,
			Start:  time.Date(a.cfg.DataYear, 1, 1, 0, 0, 0, 0, time.UTC),
			End:    time.Date(a.cfg.DataYear, 12, 31, 0, 0, 0, 0, time.UTC),
			Source: a.cfg.SourceName,
		}},
	}
	if a.owner != "" {
		owner := a.owner
		p.Owner = &owner
	}
	a.nextSeq++
	a.reset()
	return p, true
}

func (a *Accumulator) standardize(raw string) pwdata.FuelSet {
	set, unmatched := fuel.StandardizeSet(raw)
	for _, label := range unmatched {
		a.diag.UnmatchedFuels = append(a.diag.UnmatchedFuels, label)
		log.Printf("grouping: unrecognized fuel label %q for plant %q; using Other", label, a.name)
	}
	return set
}

// convert parses a raw numeric cell and applies the unit factor. A parse
// failure contributes zero and is logged; it never aborts the row.
func (a *Accumulator) convert(cell string, factor float64, field string) float64 {
	v, err := numparse.Float(cell, a.cfg.Convention)
	if err != nil {
		log.Printf("grouping: cannot read %s for plant %q: %v", field, a.name, err)
		a.diag.ParseErrors++
		return 0
	}
	return v * factor
}

func intPtr(n int) *int { return &n }
