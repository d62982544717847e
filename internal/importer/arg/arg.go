// Package arg imports the Argentinian generation dataset.
//
// Source: Ministerio de Energía y Minería, annual capacity/generation/fuel
// spreadsheet per plant ("A1.POT_GEN_COMB_POR_CENTRAL"). A logical plant
// spans several consecutive rows (one per unit); only name-bearing rows start
// a plant, and rows on the AISLADO (islanded) grid are not grid-connected and
// are dropped. The primary file has no coordinates or commissioning years;
// both come from curated side tables joined by normalized plant name.
package arg

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/deekonger/powerwatch/internal/countries"
	"github.com/deekonger/powerwatch/internal/datasource"
	"github.com/deekonger/powerwatch/internal/datasource/file"
	"github.com/deekonger/powerwatch/internal/grouping"
	"github.com/deekonger/powerwatch/internal/importer"
	"github.com/deekonger/powerwatch/internal/lookup"
	"github.com/deekonger/powerwatch/internal/numparse"
	"github.com/deekonger/powerwatch/internal/parser/xlsx"
)

const (
	saveCode   = "ARG"
	sourceName = "Ministerio de Energía y Minería"
	sourceURL  = "http://energia3.mecon.gov.ar/contenidos/archivos/Reorganizacion/informacion_del_mercado/publicaciones/mercado_electrico/estadisticosectorelectrico/2015/A1.POT_GEN_COMB_POR_CENTRAL_2015.xlsx"

	rawFileName    = "A1.POT_GEN_COMB_POR_CENTRAL_2015.xlsx"
	locationsFile  = "locations_ARG.csv"
	commYearsFile  = "commissioning_years_ARG.csv"
	sheetName      = "POT_GEN"
	startRow       = 8
	dataYear       = 2015
	islandedMarker = "AISLADO"
)

// Fixed column layout of the POT_GEN sheet.
const (
	colOwner      = 1
	colName       = 2
	colFuel       = 3
	colGrid       = 4
	colCapacity   = 6
	colGeneration = 7
	minColumns    = 8
)

func init() {
	importer.Register(saveCode, func() importer.Importer { return Importer{} })
}

// Importer implements importer.Importer for Argentina.
type Importer struct{}

// Country identifies the dataset.
func (Importer) Country() countries.Country {
	return countries.Country{Name: "Argentina", ISO: saveCode}
}

// Downloads lists the single raw spreadsheet.
func (Importer) Downloads(paths importer.Paths) []datasource.Request {
	return []datasource.Request{{
		Name: "Argentina",
		URL:  sourceURL,
		Dest: filepath.Join(paths.RawDir, saveCode, rawFileName),
	}}
}

// Run builds the Argentinian records: sheet rows through the grouping fold,
// then name-keyed enrichment from the two side tables.
func (Importer) Run(ctx context.Context, paths importer.Paths) (*importer.Result, error) {
	locations, err := loadTable(ctx, paths, locationsFile, 2)
	if err != nil {
		return nil, err
	}
	years, err := loadTable(ctx, paths, commYearsFile, 1)
	if err != nil {
		return nil, err
	}

	raw, err := file.NewLocal(filepath.Join(paths.RawDir, saveCode, rawFileName)).Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("arg: %w", err)
	}
	defer raw.Close()

	rows, skipped, err := xlsx.NewParser(xlsx.Options{
		Sheet:      sheetName,
		StartRow:   startRow,
		MinColumns: minColumns,
	}).Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("arg: %w", err)
	}

	engine := grouping.NewEngine(grouping.Config{
		SourceCode:       saveCode,
		Country:          "Argentina",
		SourceName:       sourceName,
		SourceURL:        sourceURL,
		CapacityYear:     dataYear,
		DataYear:         dataYear,
		CapacityFactor:   numparse.KWToMW,
		GenerationFactor: numparse.MWhToGWh,
		Convention:       numparse.DotDecimal,
		IslandedMarker:   islandedMarker,
	})
	for _, row := range rows {
		engine.Feed(grouping.Row{
			Name:       row[colName],
			Owner:      row[colOwner],
			Fuel:       row[colFuel],
			Grid:       row[colGrid],
			Capacity:   row[colCapacity],
			Generation: row[colGeneration],
		})
	}
	plants, diag := engine.Finish()
	log.Printf("arg: read %d plants (%d parse errors, %d islanded rows)",
		len(plants), diag.ParseErrors, diag.IslandedRows)

	res := &importer.Result{
		Plants:      plants,
		SkippedRows: skipped,
		Grouping:    diag,
	}
	res.LocationsNotFound = lookup.Locations(plants, locations)
	res.YearsNotFound = lookup.CommissioningYears(plants, years)
	return res, nil
}

func loadTable(ctx context.Context, paths importer.Paths, name string, valueCols int) (*lookup.Table, error) {
	r, err := file.NewLocal(filepath.Join(paths.ResourceDir, saveCode, name)).Open(ctx)
	if err != nil {
		// Side tables are required inputs; missing means the run aborts.
		return nil, fmt.Errorf("arg: %w", err)
	}
	defer r.Close()
	return lookup.Load(r, name, valueCols, nil)
}
