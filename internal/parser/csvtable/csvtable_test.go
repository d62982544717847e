package csvtable

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseBasic(t *testing.T) {
	in := "a,b\n1,2\n3,4\n"
	rows, skipped, err := NewParser(Options{HasHeader: true}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := [][]string{{"1", "2"}, {"3", "4"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
}

func TestParseNoHeader(t *testing.T) {
	rows, _, err := NewParser(Options{}).Parse(strings.NewReader("1,2\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "1" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestParseStripsBOM(t *testing.T) {
	in := "\ufeffplanta,1990\n"
	rows, _, err := NewParser(Options{}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rows[0][0] != "planta" {
		t.Fatalf("first cell = %q, want BOM stripped", rows[0][0])
	}
}

func TestParseSkipsWrongWidth(t *testing.T) {
	in := "h1,h2\nok,1\nshort\nlong,1,2\nok,2\n"
	rows, skipped, err := NewParser(Options{HasHeader: true, ExpectedFields: 2}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %v, want 2 surviving rows", rows)
	}
	if skipped != 2 {
		t.Fatalf("skipped = %d, want 2", skipped)
	}
}

func TestParseTrimSpace(t *testing.T) {
	rows, _, err := NewParser(Options{TrimSpace: true}).Parse(strings.NewReader(" a , b \n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rows[0][0] != "a" || rows[0][1] != "b" {
		t.Fatalf("rows = %v, want trimmed cells", rows)
	}
}

func TestParseCustomComma(t *testing.T) {
	rows, _, err := NewParser(Options{Comma: ';'}).Parse(strings.NewReader("a;b\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows[0]) != 2 {
		t.Fatalf("rows = %v, want 2 cells", rows)
	}
}

func TestParseEmptyInput(t *testing.T) {
	rows, skipped, err := NewParser(Options{HasHeader: true}).Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rows != nil || skipped != 0 {
		t.Fatalf("rows = %v skipped = %d, want none", rows, skipped)
	}
}
