// Package summary computes per-country statistical rollups over the
// canonical record collection.
//
// The aggregation is a typed in-memory group-by (country, then fuel
// category); counts and sums are computed directly off the records rather
// than through generated query text. A requested country with zero matching
// records short-circuits to a minimal row — identifying fields plus a zero
// count, all other aggregates absent — and is never an error.
package summary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deekonger/powerwatch/internal/countries"
	"github.com/deekonger/powerwatch/internal/pwdata"
)

// NullCountFields is the fixed list of record fields whose per-country null
// occurrences are reported, in output order.
var NullCountFields = []string{
	"name",
	"pw_idnr",
	"capacity_mw",
	"year_of_capacity_data",
	"owner",
	"source",
	"url",
	"latitude",
	"longitude",
}

// Fieldnames returns the summary output column order; equivalently the CSV
// header.
func Fieldnames() []string {
	cols := []string{
		"country",
		"iso_code",
		"count",
		"total_capacity_gw",
		"max_capacity_mw",
		"count_distinct_fuel",
		"count_distinct_name",
		"count_distinct_owner",
		"count_distinct_source",
	}
	for _, f := range pwdata.Fuels {
		cols = append(cols,
			"count_fuel_"+fuelColumn(f),
			"capacity_gw_fuel_"+fuelColumn(f))
	}
	for _, f := range NullCountFields {
		cols = append(cols, "count_null_"+f)
	}
	cols = append(cols, "count_null_fuel", "count_null_generation_gwh_all")
	for _, y := range pwdata.GenerationYears() {
		cols = append(cols, fmt.Sprintf("count_generation_gwh_%d", y))
	}
	return cols
}

func fuelColumn(f pwdata.Fuel) string {
	return strings.ReplaceAll(strings.ToLower(string(f)), " ", "_")
}

// CountrySummary holds the aggregates for one country. Pointer fields are
// absent for a zero-record country.
type CountrySummary struct {
	Country string
	ISO     string
	Count   int

	TotalCapacityGW *float64
	MaxCapacityMW   *float64

	DistinctFuel   *int
	DistinctName   *int
	DistinctOwner  *int
	DistinctSource *int

	FuelCount      map[pwdata.Fuel]int
	FuelCapacityGW map[pwdata.Fuel]float64

	NullCount         map[string]int
	NullFuel          *int
	NullGenerationAll *int
	GenerationCount   map[int]int
}

// Summarize aggregates the records belonging to one country.
func Summarize(plants []*pwdata.PowerPlant, c countries.Country) CountrySummary {
	s := CountrySummary{Country: c.Name, ISO: c.ISO}

	var group []*pwdata.PowerPlant
	for _, p := range plants {
		if p.Country == c.Name {
			group = append(group, p)
		}
	}
	s.Count = len(group)
	if s.Count == 0 {
		return s
	}

	var (
		totalMW float64
		maxMW   float64
		haveMax bool

		fuels   = map[pwdata.Fuel]struct{}{}
		names   = map[string]struct{}{}
		owners  = map[string]struct{}{}
		sources = map[string]struct{}{}
	)
	s.FuelCount = make(map[pwdata.Fuel]int, len(pwdata.Fuels))
	s.FuelCapacityGW = make(map[pwdata.Fuel]float64, len(pwdata.Fuels))
	s.NullCount = make(map[string]int, len(NullCountFields))
	s.GenerationCount = make(map[int]int, len(pwdata.GenerationYears()))
	nullFuel := 0
	nullGenAll := 0

	for _, p := range group {
		if p.CapacityMW != nil {
			totalMW += *p.CapacityMW
			if !haveMax || *p.CapacityMW > maxMW {
				maxMW = *p.CapacityMW
				haveMax = true
			}
		}
		for f := range p.Fuel {
			fuels[f] = struct{}{}
		}
		if p.Name != "" {
			names[p.Name] = struct{}{}
		}
		if p.Owner != nil {
			owners[*p.Owner] = struct{}{}
		}
		if p.Source != "" {
			sources[p.Source] = struct{}{}
		}

		for _, f := range pwdata.Fuels {
			if !p.Fuel.Contains(f) {
				continue
			}
			s.FuelCount[f]++
			if p.CapacityMW != nil {
				s.FuelCapacityGW[f] += *p.CapacityMW / 1000
			}
		}
		if len(p.Fuel) == 0 {
			nullFuel++
		}

		countNulls(p, s.NullCount)

		any := false
		for _, y := range pwdata.GenerationYears() {
			if _, ok := p.GenerationFor(y); ok {
				s.GenerationCount[y]++
				any = true
			}
		}
		if !any {
			nullGenAll++
		}
	}

	totalGW := totalMW / 1000
	s.TotalCapacityGW = &totalGW
	if haveMax {
		s.MaxCapacityMW = &maxMW
	}
	s.DistinctFuel = intPtr(len(fuels))
	s.DistinctName = intPtr(len(names))
	s.DistinctOwner = intPtr(len(owners))
	s.DistinctSource = intPtr(len(sources))
	s.NullFuel = &nullFuel
	s.NullGenerationAll = &nullGenAll
	return s
}

func countNulls(p *pwdata.PowerPlant, counts map[string]int) {
	if p.Name == "" {
		counts["name"]++
	}
	if p.ID == "" {
		counts["pw_idnr"]++
	}
	if p.CapacityMW == nil {
		counts["capacity_mw"]++
	}
	if p.CapacityYear == nil {
		counts["year_of_capacity_data"]++
	}
	if p.Owner == nil {
		counts["owner"]++
	}
	if p.Source == "" {
		counts["source"]++
	}
	if p.SourceURL == "" {
		counts["url"]++
	}
	if p.Location == nil {
		counts["latitude"]++
		counts["longitude"]++
	}
}

// Encode renders the summary as one CSV row in Fieldnames order. Absent
// aggregates are empty cells; a zero-record country yields only country,
// iso_code, and count.
func (s CountrySummary) Encode() []string {
	row := make([]string, 0, len(Fieldnames()))
	row = append(row, s.Country, s.ISO, strconv.Itoa(s.Count))
	row = append(row, encodeFloat(s.TotalCapacityGW), encodeFloat(s.MaxCapacityMW))
	row = append(row, encodeInt(s.DistinctFuel), encodeInt(s.DistinctName),
		encodeInt(s.DistinctOwner), encodeInt(s.DistinctSource))

	for _, f := range pwdata.Fuels {
		if s.Count == 0 {
			row = append(row, "", "")
			continue
		}
		row = append(row, strconv.Itoa(s.FuelCount[f]),
			strconv.FormatFloat(s.FuelCapacityGW[f], 'f', -1, 64))
	}
	for _, f := range NullCountFields {
		if s.Count == 0 {
			row = append(row, "")
			continue
		}
		row = append(row, strconv.Itoa(s.NullCount[f]))
	}
	row = append(row, encodeInt(s.NullFuel), encodeInt(s.NullGenerationAll))
	for _, y := range pwdata.GenerationYears() {
		if s.Count == 0 {
			row = append(row, "")
			continue
		}
		row = append(row, strconv.Itoa(s.GenerationCount[y]))
	}
	return row
}

func encodeFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func encodeInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func intPtr(n int) *int { return &n }
