// Package fuel maps raw source fuel labels onto the canonical fuel
// categories.
//
// The thesaurus is a closed mapping: every key is a normalized label, every
// value is one canonical pwdata.Fuel, and anything not present falls back to
// pwdata.FuelOther. Lookups never fail; unrecognized labels are reported
// through the ok flag so callers can log them.
package fuel

import (
	"strings"

	"github.com/deekonger/powerwatch/internal/pwdata"
	"github.com/deekonger/powerwatch/internal/textnorm"
)

// thesaurus keys are textnorm.Format-normalized source labels. Spanish labels
// come from the Argentinian generation spreadsheet, Portuguese from the
// Brazilian BIG listing, plus English passthroughs of the canonical names.
var thesaurus = map[string]pwdata.Fuel{
	// Canonical names map to themselves.
	"COAL":           pwdata.FuelCoal,
	"GAS":            pwdata.FuelGas,
	"OIL":            pwdata.FuelOil,
	"PETCOKE":        pwdata.FuelPetcoke,
	"HYDRO":          pwdata.FuelHydro,
	"NUCLEAR":        pwdata.FuelNuclear,
	"WIND":           pwdata.FuelWind,
	"SOLAR":          pwdata.FuelSolar,
	"GEOTHERMAL":     pwdata.FuelGeothermal,
	"BIOMASS":        pwdata.FuelBiomass,
	"COGENERATION":   pwdata.FuelCogeneration,
	"WASTE":          pwdata.FuelWaste,
	"WAVE AND TIDAL": pwdata.FuelWaveAndTidal,
	"OTHER":          pwdata.FuelOther,

	// Spanish (Argentina).
	"CARBON":        pwdata.FuelCoal,
	"CARBON MINERAL": pwdata.FuelCoal,
	"GAS NATURAL":   pwdata.FuelGas,
	"GN":            pwdata.FuelGas,
	"FUEL OIL":      pwdata.FuelOil,
	"FO":            pwdata.FuelOil,
	"GAS OIL":       pwdata.FuelOil,
	"GO":            pwdata.FuelOil,
	"DIESEL":        pwdata.FuelOil,
	"DIESEL OIL":    pwdata.FuelOil,
	"HIDRAULICA":    pwdata.FuelHydro,
	"HIDRO":         pwdata.FuelHydro,
	"EOLICA":        pwdata.FuelWind,
	"EOLICO":        pwdata.FuelWind,
	"FOTOVOLTAICO":  pwdata.FuelSolar,
	"BIOMASA":       pwdata.FuelBiomass,
	"BIOGAS":        pwdata.FuelBiomass,
	"BG":            pwdata.FuelBiomass,
	"BD":            pwdata.FuelBiomass,

	// Portuguese (Brazil).
	"HIDRELETRICA":  pwdata.FuelHydro,
	"EOLIETRICA":    pwdata.FuelWind,
	"FOTOVOLTAICA":  pwdata.FuelSolar,
	"TERMELETRICA":  pwdata.FuelGas,
	"TERMONUCLEAR":  pwdata.FuelNuclear,
	"MAREMOTRIZ":    pwdata.FuelWaveAndTidal,
}

// Standardize maps one raw fuel label to its canonical category. The ok
// result is false when the label was not in the thesaurus and the Other
// fallback was applied; empty labels return ("", false) with no category.
func Standardize(raw string) (pwdata.Fuel, bool) {
	key := textnorm.Format(raw)
	if key == "" {
		return "", false
	}
	if f, ok := thesaurus[key]; ok {
		return f, true
	}
	return pwdata.FuelOther, false
}

// StandardizeSet maps a raw fuel field, which may carry several labels
// separated by '/', ',' or '+', to a set of canonical categories. Unrecognized
// non-empty labels land in Other; the unmatched slice reports them for
// diagnostics.
func StandardizeSet(raw string) (set pwdata.FuelSet, unmatched []string) {
	set = pwdata.NewFuelSet()
	for _, part := range splitLabels(raw) {
		f, ok := Standardize(part)
		if f == "" {
			continue
		}
		if !ok {
			unmatched = append(unmatched, part)
		}
		set.Add(f)
	}
	return set, unmatched
}

func splitLabels(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == ',' || r == '+' || r == ';'
	})
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
