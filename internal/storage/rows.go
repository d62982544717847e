package storage

import (
	"github.com/deekonger/powerwatch/internal/pwdata"
)

// PlantRow converts one canonical record into a database row aligned to
// pwdata.Columns(). Absent optional fields become nil so every backend
// stores SQL NULL rather than a sentinel.
func PlantRow(p *pwdata.PowerPlant) []any {
	row := make([]any, 0, len(pwdata.Columns()))
	row = append(row, p.Name, p.ID)

	if p.CapacityMW != nil {
		row = append(row, *p.CapacityMW)
	} else {
		row = append(row, nil)
	}
	if p.CapacityYear != nil {
		row = append(row, int64(*p.CapacityYear))
	} else {
		row = append(row, nil)
	}

	row = append(row, p.Country)
	if p.Owner != nil {
		row = append(row, *p.Owner)
	} else {
		row = append(row, nil)
	}
	row = append(row, p.Source, p.SourceURL)

	if p.Location != nil {
		row = append(row, p.Location.Latitude, p.Location.Longitude)
	} else {
		row = append(row, nil, nil)
	}
	if p.CommissioningYear != nil {
		row = append(row, int64(*p.CommissioningYear))
	} else {
		row = append(row, nil)
	}

	fuels := p.Fuel.Sorted()
	for i := 0; i < pwdata.MaxFuelColumns; i++ {
		if i < len(fuels) {
			row = append(row, string(fuels[i]))
		} else {
			row = append(row, nil)
		}
	}

	for _, year := range pwdata.GenerationYears() {
		if g, ok := p.GenerationFor(year); ok {
			row = append(row, g.GWh)
		} else {
			row = append(row, nil)
		}
	}
	return row
}

// PlantRows converts a collection in order.
func PlantRows(plants []*pwdata.PowerPlant) [][]any {
	rows := make([][]any, 0, len(plants))
	for _, p := range plants {
		rows = append(rows, PlantRow(p))
	}
	return rows
}
