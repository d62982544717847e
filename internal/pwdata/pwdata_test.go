package pwdata

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestMakeID(t *testing.T) {
	tests := []struct {
		code string
		n    int
		want string
	}{
		{"ARG", 1, "ARG0000001"},
		{"ARG", 123, "ARG0000123"},
		{"BRA", 2999, "BRA0002999"},
		{"GBR", 9999999, "GBR9999999"},
	}
	for _, tt := range tests {
		if got := MakeID(tt.code, tt.n); got != tt.want {
			t.Fatalf("MakeID(%q, %d) = %q, want %q", tt.code, tt.n, got, tt.want)
		}
	}
}

func TestMakeIDSortsInAssignmentOrder(t *testing.T) {
	prev := MakeID("ARG", 1)
	for n := 2; n < 30; n++ {
		id := MakeID("ARG", n)
		if !(prev < id) {
			t.Fatalf("MakeID(%d) = %q not lexically after %q", n, id, prev)
		}
		prev = id
	}
}

func TestFuelSet(t *testing.T) {
	s := NewFuelSet(FuelGas)
	s.Add(FuelOil)
	s.Union(NewFuelSet(FuelGas, FuelHydro))

	want := []Fuel{FuelGas, FuelHydro, FuelOil}
	if got := s.Sorted(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Sorted() = %v, want %v", got, want)
	}
	if !s.Contains(FuelHydro) || s.Contains(FuelCoal) {
		t.Fatalf("Contains wrong: %v", s.Sorted())
	}
}

func TestGenerationFor(t *testing.T) {
	p := &PowerPlant{
		Generation: []Generation{{
			GWh:   42.5,
			Start: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2015, 12, 31, 0, 0, 0, 0, time.UTC),
		}},
	}
	g, ok := p.GenerationFor(2015)
	if !ok || g.GWh != 42.5 {
		t.Fatalf("GenerationFor(2015) = (%v, %v), want (42.5, true)", g.GWh, ok)
	}
	if _, ok := p.GenerationFor(2014); ok {
		t.Fatalf("GenerationFor(2014) = true, want false")
	}
}

func TestColumns(t *testing.T) {
	cols := Columns()
	if got, want := len(cols), 11+MaxFuelColumns+len(GenerationYears()); got != want {
		t.Fatalf("len(Columns()) = %d, want %d", got, want)
	}
	if cols[0] != "name" || cols[1] != "pw_idnr" {
		t.Fatalf("columns start with %v", cols[:2])
	}
	if last := cols[len(cols)-1]; last != "generation_gwh_2016" {
		t.Fatalf("last column = %q, want generation_gwh_2016", last)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	owner := "ENARSA"
	capacity := 745.0
	capYear := 2015
	commYear := 1994
	p := &PowerPlant{
		ID:           "ARG0000007",
		Name:         "CENTRAL PUERTO",
		Owner:        &owner,
		Fuel:         NewFuelSet(FuelGas, FuelOil),
		Country:      "Argentina",
		CapacityMW:   &capacity,
		CapacityYear: &capYear,
		Source:       "Ministerio de Energía y Minería",
		SourceURL:    "http://example.org/source",
		Generation: []Generation{{
			GWh:    1203.25,
			Start:  time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
			End:    time.Date(2015, 12, 31, 0, 0, 0, 0, time.UTC),
			Source: "Ministerio de Energía y Minería",
		}},
		Location:          &Location{Latitude: -34.6, Longitude: -58.37},
		CommissioningYear: &commYear,
	}

	row := EncodeRow(p)
	if got, want := len(row), len(Columns()); got != want {
		t.Fatalf("len(EncodeRow) = %d, want %d", got, want)
	}

	got, err := DecodeRow(row)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if got.ID != p.ID || got.Name != p.Name || got.Country != p.Country {
		t.Fatalf("identity fields mismatched: %+v", got)
	}
	if got.Owner == nil || *got.Owner != owner {
		t.Fatalf("owner = %v, want %q", got.Owner, owner)
	}
	if !reflect.DeepEqual(got.Fuel, p.Fuel) {
		t.Fatalf("fuel = %v, want %v", got.Fuel.Sorted(), p.Fuel.Sorted())
	}
	if got.CapacityMW == nil || *got.CapacityMW != capacity {
		t.Fatalf("capacity = %v, want %v", got.CapacityMW, capacity)
	}
	if got.Location == nil || got.Location.Latitude != -34.6 || got.Location.Longitude != -58.37 {
		t.Fatalf("location = %+v", got.Location)
	}
	if got.CommissioningYear == nil || *got.CommissioningYear != commYear {
		t.Fatalf("commissioning year = %v, want %d", got.CommissioningYear, commYear)
	}
	g, ok := got.GenerationFor(2015)
	if !ok || g.GWh != 1203.25 {
		t.Fatalf("generation 2015 = (%v, %v), want (1203.25, true)", g.GWh, ok)
	}
}

func TestEncodeRowAbsentValues(t *testing.T) {
	p := &PowerPlant{
		ID:      "BRA0000001",
		Name:    "ITAIPU",
		Fuel:    NewFuelSet(FuelHydro),
		Country: "Brazil",
		Source:  "ANEEL",
	}
	row := EncodeRow(p)

	// capacity_mw, year_of_capacity_data, owner, latitude, longitude,
	// commissioning_year all render as empty cells.
	for _, idx := range []int{2, 3, 5, 8, 9, 10} {
		if row[idx] != "" {
			t.Fatalf("column %q = %q, want empty", Columns()[idx], row[idx])
		}
	}
	if row[11] != "Hydro" || row[12] != "" {
		t.Fatalf("fuel columns = %v", row[11:11+MaxFuelColumns])
	}
	for i := range GenerationYears() {
		if cell := row[11+MaxFuelColumns+i]; cell != "" {
			t.Fatalf("generation cell %d = %q, want empty", i, cell)
		}
	}
}

func TestDecodeRowWrongWidth(t *testing.T) {
	if _, err := DecodeRow([]string{"too", "short"}); err == nil {
		t.Fatal("DecodeRow accepted short row")
	}
	long := make([]string, len(Columns())+1)
	if _, err := DecodeRow(long); err == nil {
		t.Fatal("DecodeRow accepted long row")
	}
}

func TestDecodeRowBadNumeric(t *testing.T) {
	row := make([]string, len(Columns()))
	row[2] = "not-a-number"
	_, err := DecodeRow(row)
	if err == nil || !strings.Contains(err.Error(), "capacity_mw") {
		t.Fatalf("err = %v, want capacity_mw parse failure", err)
	}
}
