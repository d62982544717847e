// Package bra imports the Brazilian generation dataset.
//
// Source: ANEEL's "Banco de Informações de Geração" capacity listing, an
// HTML document whose second table carries one row per plant. The CEG code in
// the first cell encodes both the fuel class (3-letter prefix) and the plant
// number; its 16-character prefix keys the curated coordinates table.
// Capacity cells use the pt-BR number convention. Owners reported as
// "não identificado" are the no-data sentinel.
package bra

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/deekonger/powerwatch/internal/countries"
	"github.com/deekonger/powerwatch/internal/datasource"
	"github.com/deekonger/powerwatch/internal/datasource/file"
	"github.com/deekonger/powerwatch/internal/fuel"
	"github.com/deekonger/powerwatch/internal/grouping"
	"github.com/deekonger/powerwatch/internal/importer"
	"github.com/deekonger/powerwatch/internal/lookup"
	"github.com/deekonger/powerwatch/internal/numparse"
	"github.com/deekonger/powerwatch/internal/parser/htmltable"
	"github.com/deekonger/powerwatch/internal/pwdata"
	"github.com/deekonger/powerwatch/internal/textnorm"
)

const (
	saveCode   = "BRA"
	sourceName = "Agência Nacional de Energia Elétrica (Brazil)"
	sourceURL  = "http://www2.aneel.gov.br/aplicacoes/capacidadebrasil/capacidadebrasil.cfm"

	// The portal serves the full listing only in response to a form POST.
	downloadURL = "http://www2.aneel.gov.br/aplicacoes/capacidadebrasil/GeracaoTipoFase.asp"

	rawFileName     = "BRA_data.html"
	coordinatesFile = "coordinates_BRA.csv"
	sourceYear      = 2017

	// The listing is the second table of the document, with two header rows
	// and one footer row.
	tableIndex = 1
	headerRows = 2
	footerRows = 1

	// CEG prefix length used as the coordinates join key.
	cegKeyLen = 16

	unidentifiedOwner = "não identificado"
)

// Fixed cell layout of a listing row.
const (
	cellCEG      = 0
	cellName     = 1
	cellOpDate   = 2
	cellCapacity = 4
	cellOwner    = 6
	minCells     = 7
)

// cegFuels maps the CEG class prefix to a canonical category. UTE (generic
// thermal) is absent on purpose: it goes through the thesaurus fallback so
// the unmatched label is reported.
var cegFuels = map[string]pwdata.Fuel{
	"CGH": pwdata.FuelHydro,
	"CGU": pwdata.FuelWaveAndTidal,
	"EOL": pwdata.FuelWind,
	"PCH": pwdata.FuelHydro,
	"UFV": pwdata.FuelSolar,
	"UHE": pwdata.FuelHydro,
	"UTN": pwdata.FuelNuclear,
}

func init() {
	importer.Register(saveCode, func() importer.Importer { return Importer{} })
}

// Importer implements importer.Importer for Brazil.
type Importer struct{}

// Country identifies the dataset.
func (Importer) Country() countries.Country {
	return countries.Country{Name: "Brazil", ISO: saveCode}
}

// Downloads lists the single raw listing, fetched via form POST.
func (Importer) Downloads(paths importer.Paths) []datasource.Request {
	return []datasource.Request{{
		Name: "ANEEL B.I.G.",
		URL:  downloadURL,
		Form: url.Values{"tipo": {"0"}, "fase": {"3"}},
		Dest: filepath.Join(paths.RawDir, saveCode, rawFileName),
	}}
}

// Run builds the Brazilian records: one record per listing row, coordinates
// joined by CEG prefix. There is no row grouping in this source.
func (Importer) Run(ctx context.Context, paths importer.Paths) (*importer.Result, error) {
	coordPath := filepath.Join(paths.ResourceDir, saveCode, coordinatesFile)
	coordReader, err := file.NewLocal(coordPath).Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("bra: %w", err)
	}
	coords, err := lookup.Load(coordReader, coordinatesFile, 2, strings.TrimSpace)
	coordReader.Close()
	if err != nil {
		return nil, fmt.Errorf("bra: %w", err)
	}

	raw, err := file.NewLocal(filepath.Join(paths.RawDir, saveCode, rawFileName)).Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("bra: %w", err)
	}
	defer raw.Close()

	rows, skipped, err := htmltable.NewParser(htmltable.Options{
		TableIndex: tableIndex,
		HeaderRows: headerRows,
		FooterRows: footerRows,
	}).Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("bra: %w", err)
	}

	res := &importer.Result{SkippedRows: skipped}
	for _, row := range rows {
		if len(row) < minCells {
			res.SkippedRows++
			continue
		}
		p, ok := buildPlant(row, coords, &res.Grouping)
		if !ok {
			res.SkippedRows++
			continue
		}
		if p.Location == nil {
			res.LocationsNotFound = append(res.LocationsNotFound, p)
		}
		if p.CommissioningYear == nil {
			res.YearsNotFound = append(res.YearsNotFound, p)
		}
		res.Plants = append(res.Plants, p)
	}
	log.Printf("bra: read %d plants, coordinates for %d",
		len(res.Plants), len(res.Plants)-len(res.LocationsNotFound))
	return res, nil
}

func buildPlant(row []string, coords *lookup.Table, diag *grouping.Diagnostics) (*pwdata.PowerPlant, bool) {
	ceg := strings.TrimSpace(row[cellCEG])
	plantID, ok := cegPlantNumber(ceg)
	if !ok {
		log.Printf("bra: cannot read plant number from CEG code %q", ceg)
		return nil, false
	}

	name := textnorm.Format(row[cellName])
	if name == "" {
		return nil, false
	}

	fuels, unmatched := cegFuelSet(ceg)
	for _, label := range unmatched {
		diag.UnmatchedFuels = append(diag.UnmatchedFuels, label)
		log.Printf("bra: unrecognized fuel class %q for plant %q; using Other", label, name)
	}

	p := &pwdata.PowerPlant{
		ID:           pwdata.MakeID(saveCode, plantID),
		Name:         name,
		Fuel:         fuels,
		Country:      "Brazil",
		CapacityYear: intPtr(sourceYear),
		Source:       sourceName,
		SourceURL:    sourceURL,
	}

	if mw, err := numparse.Float(row[cellCapacity], numparse.CommaDecimal); err != nil {
		log.Printf("bra: cannot read capacity for plant %q: %v", name, err)
		diag.ParseErrors++
		zero := 0.0
		p.CapacityMW = &zero
	} else {
		mw *= numparse.KWToMW
		p.CapacityMW = &mw
	}

	if owner := textnorm.Format(row[cellOwner]); owner != "" &&
		!strings.Contains(strings.ToLower(row[cellOwner]), unidentifiedOwner) {
		p.Owner = &owner
	}

	if year, ok := operationYear(row[cellOpDate]); ok {
		p.CommissioningYear = &year
	}

	if len(ceg) >= cegKeyLen {
		if vals, ok := coords.Get(ceg[:cegKeyLen]); ok {
			lat, errLat := strconv.ParseFloat(vals[0], 64)
			lon, errLon := strconv.ParseFloat(vals[1], 64)
			if errLat == nil && errLon == nil {
				p.Location = &pwdata.Location{Latitude: lat, Longitude: lon}
			}
		}
	}
	return p, true
}

// cegPlantNumber extracts the 6-digit plant number from a CEG code such as
// "UHE.PH.RS.002999-2.01": the digits immediately before the check-digit
// suffix ("-2.01", a fixed 5-character tail).
func cegPlantNumber(ceg string) (int, bool) {
	if len(ceg) < 11 {
		return 0, false
	}
	n, err := strconv.Atoi(ceg[len(ceg)-11 : len(ceg)-5])
	if err != nil {
		return 0, false
	}
	return n, true
}

// cegFuelSet resolves the fuel class prefix of a CEG code. Classes outside
// the fixed map (UTE in particular) go through the thesaurus fallback.
func cegFuelSet(ceg string) (pwdata.FuelSet, []string) {
	if len(ceg) < 3 {
		return pwdata.NewFuelSet(pwdata.FuelOther), []string{ceg}
	}
	class := strings.ToUpper(ceg[:3])
	if f, ok := cegFuels[class]; ok {
		return pwdata.NewFuelSet(f), nil
	}
	return fuel.StandardizeSet(class)
}

// operationYear parses the listing's dd/mm/yyyy operation date into a
// commissioning year.
func operationYear(cell string) (int, bool) {
	t, err := time.Parse("02/01/2006", strings.TrimSpace(cell))
	if err != nil {
		return 0, false
	}
	return t.Year(), true
}

func intPtr(n int) *int { return &n }
