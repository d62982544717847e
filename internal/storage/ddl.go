package storage

import "github.com/deekonger/powerwatch/internal/pwdata"

// ColumnType classifies a canonical column so each backend can render its
// own DDL type names.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeReal
	TypeInteger
)

// KeyColumn is the canonical column that uniquely identifies a record.
const KeyColumn = "pw_idnr"

// PlantColumnTypes returns the type class of every canonical column, aligned
// to pwdata.Columns().
func PlantColumnTypes() []ColumnType {
	types := []ColumnType{
		TypeText,    // name
		TypeText,    // pw_idnr
		TypeReal,    // capacity_mw
		TypeInteger, // year_of_capacity_data
		TypeText,    // country
		TypeText,    // owner
		TypeText,    // source
		TypeText,    // url
		TypeReal,    // latitude
		TypeReal,    // longitude
		TypeInteger, // commissioning_year
	}
	for i := 0; i < pwdata.MaxFuelColumns; i++ {
		types = append(types, TypeText)
	}
	for range pwdata.GenerationYears() {
		types = append(types, TypeReal)
	}
	return types
}
