package bra

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deekonger/powerwatch/internal/grouping"
	"github.com/deekonger/powerwatch/internal/importer"
	"github.com/deekonger/powerwatch/internal/lookup"
	"github.com/deekonger/powerwatch/internal/pwdata"
)

func TestCegPlantNumber(t *testing.T) {
	tests := []struct {
		ceg    string
		want   int
		wantOK bool
	}{
		{"UHE.PH.RS.002999-2.01", 2999, true},
		{"EOL.CV.CE.000123-4.01", 123, true},
		{"short", 0, false},
		{"UHE.PH.RS.0029XX-2.01", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := cegPlantNumber(tt.ceg)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("cegPlantNumber(%q) = (%d, %v), want (%d, %v)",
				tt.ceg, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCegFuelSet(t *testing.T) {
	tests := []struct {
		ceg  string
		want pwdata.Fuel
	}{
		{"UHE.PH.RS.002999-2.01", pwdata.FuelHydro},
		{"PCH.PH.MG.000001-1.01", pwdata.FuelHydro},
		{"EOL.CV.CE.000123-4.01", pwdata.FuelWind},
		{"UFV.RS.BA.000007-0.01", pwdata.FuelSolar},
		{"UTN.NC.RJ.000001-9.01", pwdata.FuelNuclear},
		{"CGU.MC.CE.000001-3.01", pwdata.FuelWaveAndTidal},
	}
	for _, tt := range tests {
		set, unmatched := cegFuelSet(tt.ceg)
		if !set.Contains(tt.want) {
			t.Fatalf("cegFuelSet(%q) = %v, want %v", tt.ceg, set.Sorted(), tt.want)
		}
		if len(unmatched) != 0 {
			t.Fatalf("cegFuelSet(%q) unmatched = %v", tt.ceg, unmatched)
		}
	}
}

func TestCegFuelSetUnknownClass(t *testing.T) {
	// Generic thermal has no fixed mapping; it goes through the thesaurus
	// fallback and is reported.
	set, unmatched := cegFuelSet("UTE.PE.SP.000321-5.01")
	if !set.Contains(pwdata.FuelOther) {
		t.Fatalf("set = %v, want Other", set.Sorted())
	}
	if len(unmatched) != 1 {
		t.Fatalf("unmatched = %v, want one entry", unmatched)
	}
}

func TestOperationYear(t *testing.T) {
	if y, ok := operationYear("14/05/1984"); !ok || y != 1984 {
		t.Fatalf("operationYear = (%d, %v), want (1984, true)", y, ok)
	}
	if _, ok := operationYear("em construção"); ok {
		t.Fatal("operationYear accepted a non-date cell")
	}
	if _, ok := operationYear(""); ok {
		t.Fatal("operationYear accepted an empty cell")
	}
}

func coordTable(t *testing.T, body string) *lookup.Table {
	t.Helper()
	table, err := lookup.Load(strings.NewReader(body), "coordinates", 2, strings.TrimSpace)
	if err != nil {
		t.Fatalf("load coordinates: %v", err)
	}
	return table
}

func TestBuildPlant(t *testing.T) {
	coords := coordTable(t, "ceg,lat,lng\nUHE.PH.RS.002999,-29.44,-53.21\n")
	var diag grouping.Diagnostics

	row := []string{
		"UHE.PH.RS.002999-2.01",
		"Dona Francisca",
		"01/02/2001",
		"fase",
		"125.000",
		"destino",
		"Companhia Exemplo",
	}
	p, ok := buildPlant(row, coords, &diag)
	if !ok {
		t.Fatal("buildPlant rejected a valid row")
	}
	if p.ID != "BRA0002999" {
		t.Fatalf("id = %q, want BRA0002999", p.ID)
	}
	if p.Name != "DONA FRANCISCA" {
		t.Fatalf("name = %q", p.Name)
	}
	if !p.Fuel.Contains(pwdata.FuelHydro) {
		t.Fatalf("fuel = %v", p.Fuel.Sorted())
	}
	// pt-BR "125.000" kW is 125 MW.
	if p.CapacityMW == nil || *p.CapacityMW != 125 {
		t.Fatalf("capacity = %v, want 125", p.CapacityMW)
	}
	if p.Owner == nil || *p.Owner != "COMPANHIA EXEMPLO" {
		t.Fatalf("owner = %v", p.Owner)
	}
	if p.CommissioningYear == nil || *p.CommissioningYear != 2001 {
		t.Fatalf("commissioning year = %v", p.CommissioningYear)
	}
	if p.Location == nil || p.Location.Latitude != -29.44 || p.Location.Longitude != -53.21 {
		t.Fatalf("location = %+v", p.Location)
	}
	if diag.ParseErrors != 0 {
		t.Fatalf("diagnostics = %+v", diag)
	}
}

func TestBuildPlantUnidentifiedOwner(t *testing.T) {
	coords := coordTable(t, "ceg,lat,lng\n")
	var diag grouping.Diagnostics
	row := []string{
		"UHE.PH.RS.002999-2.01", "Usina", "01/02/2001", "fase",
		"125.000", "destino", "Não Identificado",
	}
	p, ok := buildPlant(row, coords, &diag)
	if !ok {
		t.Fatal("buildPlant rejected row")
	}
	if p.Owner != nil {
		t.Fatalf("owner = %q, want absent for the no-data sentinel", *p.Owner)
	}
}

func TestBuildPlantBadCapacity(t *testing.T) {
	coords := coordTable(t, "ceg,lat,lng\n")
	var diag grouping.Diagnostics
	row := []string{
		"UHE.PH.RS.002999-2.01", "Usina", "01/02/2001", "fase",
		"n/d", "destino", "Dona",
	}
	p, ok := buildPlant(row, coords, &diag)
	if !ok {
		t.Fatal("buildPlant rejected row")
	}
	if p.CapacityMW == nil || *p.CapacityMW != 0 {
		t.Fatalf("capacity = %v, want zero contribution", p.CapacityMW)
	}
	if diag.ParseErrors != 1 {
		t.Fatalf("parse errors = %d, want 1", diag.ParseErrors)
	}
}

func TestBuildPlantBadCEG(t *testing.T) {
	coords := coordTable(t, "ceg,lat,lng\n")
	var diag grouping.Diagnostics
	if _, ok := buildPlant([]string{"bogus", "Usina", "", "", "1", "", ""}, coords, &diag); ok {
		t.Fatal("buildPlant accepted an unreadable CEG code")
	}
}

const listingDoc = `<html><body>
<table><tr><td>menu</td></tr></table>
<table>
<tr><td>CEG</td><td>Usina</td><td>Data</td><td>Fase</td><td>Pot&ecirc;ncia (kW)</td><td>Destino</td><td>Propriet&aacute;rio</td></tr>
<tr><td colspan="7">listagem</td></tr>
<tr><td>UHE.PH.RS.002999-2.01</td><td>Dona Francisca</td><td>01/02/2001</td><td>O</td><td>125.000</td><td>PIE</td><td>Companhia Exemplo</td></tr>
<tr><td>EOL.CV.CE.000123-4.01</td><td>Parque E&oacute;lico</td><td>15/10/2009</td><td>O</td><td>10.500</td><td>PIE</td><td>n&atilde;o identificado</td></tr>
<tr><td colspan="7">Total: 2</td></tr>
</table>
</body></html>`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	rawDir := filepath.Join(dir, "raw")
	resDir := filepath.Join(dir, "resources")

	mustWrite(t, filepath.Join(rawDir, "BRA", rawFileName), listingDoc)
	mustWrite(t, filepath.Join(resDir, "BRA", coordinatesFile),
		"ceg,lat,lng\nUHE.PH.RS.002999,-29.44,-53.21\n")

	res, err := Importer{}.Run(context.Background(), importer.Paths{
		RawDir:      rawDir,
		ResourceDir: resDir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Plants) != 2 {
		t.Fatalf("plants = %d, want 2", len(res.Plants))
	}
	first := res.Plants[0]
	if first.ID != "BRA0002999" || first.Location == nil {
		t.Fatalf("first plant = %+v", first)
	}
	second := res.Plants[1]
	if second.Location != nil {
		t.Fatalf("second plant location = %+v, want nil", second.Location)
	}
	if second.Owner != nil {
		t.Fatalf("second plant owner = %v, want absent", second.Owner)
	}
	if len(res.LocationsNotFound) != 1 {
		t.Fatalf("locations not found = %d, want 1", len(res.LocationsNotFound))
	}
}

func TestRunMissingRawFile(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "resources", "BRA", coordinatesFile), "ceg,lat,lng\n")
	_, err := Importer{}.Run(context.Background(), importer.Paths{
		RawDir:      filepath.Join(dir, "raw"),
		ResourceDir: filepath.Join(dir, "resources"),
	})
	if err == nil {
		t.Fatal("Run succeeded without the raw listing")
	}
}

func mustWrite(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}
