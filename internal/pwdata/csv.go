package pwdata

import (
	"fmt"
	"strconv"
	"time"
)

// Generation reporting window on the canonical output. Years outside the
// window are carried in memory but not rendered.
const (
	GenerationYearFirst = 2012
	GenerationYearLast  = 2016
)

// GenerationYears returns the fixed output window in ascending order.
func GenerationYears() []int {
	years := make([]int, 0, GenerationYearLast-GenerationYearFirst+1)
	for y := GenerationYearFirst; y <= GenerationYearLast; y++ {
		years = append(years, y)
	}
	return years
}

// MaxFuelColumns bounds how many fuels are rendered per record (fuel1..fuel4).
const MaxFuelColumns = 4

// Columns returns the canonical output column order. This order is stable
// and documented; storage backends and the CSV writer all use it.
func Columns() []string {
	cols := []string{
		"name",
		"pw_idnr",
		"capacity_mw",
		"year_of_capacity_data",
		"country",
		"owner",
		"source",
		"url",
		"latitude",
		"longitude",
		"commissioning_year",
	}
	for i := 1; i <= MaxFuelColumns; i++ {
		cols = append(cols, fmt.Sprintf("fuel%d", i))
	}
	for _, y := range GenerationYears() {
		cols = append(cols, fmt.Sprintf("generation_gwh_%d", y))
	}
	return cols
}

// EncodeRow renders p as one canonical CSV row in Columns() order. Absent
// values become empty cells.
func EncodeRow(p *PowerPlant) []string {
	row := make([]string, 0, len(Columns()))
	row = append(row, p.Name, p.ID)
	row = append(row, formatFloat(p.CapacityMW))
	row = append(row, formatInt(p.CapacityYear))
	row = append(row, p.Country)
	row = append(row, formatStr(p.Owner))
	row = append(row, p.Source, p.SourceURL)
	if p.Location != nil {
		row = append(row,
			strconv.FormatFloat(p.Location.Latitude, 'f', -1, 64),
			strconv.FormatFloat(p.Location.Longitude, 'f', -1, 64))
	} else {
		row = append(row, "", "")
	}
	row = append(row, formatInt(p.CommissioningYear))

	fuels := p.Fuel.Sorted()
	for i := 0; i < MaxFuelColumns; i++ {
		if i < len(fuels) {
			row = append(row, string(fuels[i]))
		} else {
			row = append(row, "")
		}
	}
	for _, y := range GenerationYears() {
		if g, ok := p.GenerationFor(y); ok {
			row = append(row, strconv.FormatFloat(g.GWh, 'f', -1, 64))
		} else {
			row = append(row, "")
		}
	}
	return row
}

// DecodeRow parses one canonical CSV row (Columns() order) back into a
// PowerPlant. It is the inverse of EncodeRow up to float formatting.
func DecodeRow(row []string) (*PowerPlant, error) {
	want := len(Columns())
	if len(row) != want {
		return nil, fmt.Errorf("decode row: got %d cells, want %d", len(row), want)
	}

	p := &PowerPlant{
		Name:      row[0],
		ID:        row[1],
		Country:   row[4],
		Source:    row[6],
		SourceURL: row[7],
		Fuel:      NewFuelSet(),
	}

	var err error
	if p.CapacityMW, err = parseFloat(row[2]); err != nil {
		return nil, fmt.Errorf("capacity_mw: %w", err)
	}
	if p.CapacityYear, err = parseInt(row[3]); err != nil {
		return nil, fmt.Errorf("year_of_capacity_data: %w", err)
	}
	if row[5] != "" {
		owner := row[5]
		p.Owner = &owner
	}

	lat, err := parseFloat(row[8])
	if err != nil {
		return nil, fmt.Errorf("latitude: %w", err)
	}
	lon, err := parseFloat(row[9])
	if err != nil {
		return nil, fmt.Errorf("longitude: %w", err)
	}
	if lat != nil && lon != nil {
		p.Location = &Location{Latitude: *lat, Longitude: *lon}
	}
	if p.CommissioningYear, err = parseInt(row[10]); err != nil {
		return nil, fmt.Errorf("commissioning_year: %w", err)
	}

	for i := 0; i < MaxFuelColumns; i++ {
		if cell := row[11+i]; cell != "" {
			p.Fuel.Add(Fuel(cell))
		}
	}

	base := 11 + MaxFuelColumns
	for i, y := range GenerationYears() {
		cell := row[base+i]
		if cell == "" {
			continue
		}
		gwh, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("generation_gwh_%d: %w", y, err)
		}
		p.Generation = append(p.Generation, Generation{
			GWh:    gwh,
			Start:  time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC),
			End:    time.Date(y, 12, 31, 0, 0, 0, 0, time.UTC),
			Source: p.Source,
		})
	}
	return p, nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func parseFloat(cell string) (*float64, error) {
	if cell == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func parseInt(cell string) (*int, error) {
	if cell == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
