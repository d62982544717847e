// Package importer defines the per-source import contract and the registry
// the build command selects importers from.
//
// Each country dataset is processed independently: an importer reads its raw
// file and side tables, produces canonical records, and reports its
// diagnostics. Cross-source merge is a plain union keyed by the synthetic
// identifier, whose source-code prefix keeps sources disjoint.
package importer

import (
	"context"
	"fmt"

	"github.com/deekonger/powerwatch/internal/countries"
	"github.com/deekonger/powerwatch/internal/datasource"
	"github.com/deekonger/powerwatch/internal/grouping"
	"github.com/deekonger/powerwatch/internal/pwdata"
)

// Paths locates the input file trees for a run.
type Paths struct {
	// RawDir holds downloaded primary source files, one subdirectory per
	// source code (raw/ARG/..., raw/BRA/...).
	RawDir string

	// ResourceDir holds the curated side tables, same layout.
	ResourceDir string
}

// Result is one importer run's output.
type Result struct {
	// Plants in assignment order, identifiers unique within the run.
	Plants []*pwdata.PowerPlant

	// LocationsNotFound and YearsNotFound list records that missed the
	// respective side table. They are reporting output; the records above
	// still carry their sentinel values.
	LocationsNotFound []*pwdata.PowerPlant
	YearsNotFound     []*pwdata.PowerPlant

	// SkippedRows counts raw rows dropped by the parser layer.
	SkippedRows int

	// Grouping carries fold diagnostics for grouped sources (zero value for
	// flat sources).
	Grouping grouping.Diagnostics
}

// Importer builds one country's canonical records.
type Importer interface {
	// Country identifies the dataset.
	Country() countries.Country

	// Downloads lists the raw files to fetch when the run requests download;
	// side tables are curated locally and never downloaded.
	Downloads(paths Paths) []datasource.Request

	// Run reads inputs under paths and produces the country's records.
	// Structural problems (missing file, missing sheet/table) are returned
	// as errors and abort the run.
	Run(ctx context.Context, paths Paths) (*Result, error)
}

var importers = map[string]func() Importer{}

// Register installs an importer constructor for an ISO code. Importer
// packages call this from init; the command side imports the "all" package
// for the side effect.
func Register(iso string, fn func() Importer) { importers[iso] = fn }

// For returns the importer for a country.
func For(c countries.Country) (Importer, error) {
	fn, ok := importers[c.ISO]
	if !ok {
		return nil, fmt.Errorf("no importer registered for %s", c.ISO)
	}
	return fn(), nil
}
