// Package countries is the registry of countries the pipeline knows how to
// process. "All known countries" in the command surface means this list; a
// requested ISO code outside it is a fatal input error.
package countries

import (
	"fmt"
	"sort"
	"strings"
)

// Country identifies one national dataset.
type Country struct {
	// Name is the standard country name used in canonical records.
	Name string

	// ISO is the 3-letter code, which doubles as the source save-code prefix.
	ISO string
}

var registry = map[string]Country{
	"ARG": {Name: "Argentina", ISO: "ARG"},
	"BRA": {Name: "Brazil", ISO: "BRA"},
}

// All returns every known country sorted by country name.
func All() []Country {
	out := make([]Country, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByISO resolves one ISO-3 code (case-insensitive).
func ByISO(code string) (Country, error) {
	c, ok := registry[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Country{}, fmt.Errorf("iso code %q is invalid", code)
	}
	return c, nil
}

// Resolve expands a requested code list into countries. An empty request
// means all known countries. Any invalid code fails the whole request before
// any work starts.
func Resolve(codes []string) ([]Country, error) {
	if len(codes) == 0 {
		return All(), nil
	}
	out := make([]Country, 0, len(codes))
	for _, code := range codes {
		c, err := ByISO(code)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
