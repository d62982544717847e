package textnorm

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"plain upper", "yacyreta", "YACYRETA"},
		{"collapse runs", "  Central   Costanera\t", "CENTRAL COSTANERA"},
		{"fold diacritics", "Central Térmica São Paulo", "CENTRAL TERMICA SAO PAULO"},
		{"mixed case accents", "EZEIZA - CENTRAL TÉRMICA", "EZEIZA - CENTRAL TERMICA"},
		{"ene folds", "AÑO NUEVO", "ANO NUEVO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.in); got != tt.want {
				t.Fatalf("Format(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	in := "  Salto  Grande  (Área Térmica) "
	once := Format(in)
	if twice := Format(once); twice != once {
		t.Fatalf("Format not idempotent: %q then %q", once, twice)
	}
}

func TestKeyEqualsFormat(t *testing.T) {
	in := "Usina Hidrelétrica"
	if Key(in) != Format(in) {
		t.Fatalf("Key(%q) = %q, Format = %q", in, Key(in), Format(in))
	}
}

func TestFormatFoldedNamesMatch(t *testing.T) {
	// A record name and a lookup key that differ only in case, accents, and
	// spacing must produce the same join key.
	a := Format("central  térmica GÜEMES")
	b := Format("CENTRAL TERMICA GUEMES")
	if a != b {
		t.Fatalf("keys differ: %q vs %q", a, b)
	}
}
