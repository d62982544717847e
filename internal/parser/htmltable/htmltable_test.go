package htmltable

import (
	"reflect"
	"strings"
	"testing"
)

const doc = `<html><body>
<table><tr><td>navigation</td></tr></table>
<TABLE border="1">
 <tr><td>CEG</td><td>Nome</td></tr>
 <tr><td colspan="2">subtitle row</td></tr>
 <tr><td><font size="1">UHE.PH.RS.002999-2.01</font></td><td>Usina &Aacute;gua</td></tr>
 <tr><td>EOL.CV.CE.000123-4.01</td><td>Parque E&oacute;lico</td></tr>
 <tr><td colspan="2">Total: 2</td></tr>
</TABLE>
</body></html>`

func TestParseSelectsTableAndTrims(t *testing.T) {
	rows, _, err := NewParser(Options{TableIndex: 1, HeaderRows: 2, FooterRows: 1}).
		Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := [][]string{
		{"UHE.PH.RS.002999-2.01", "Usina Água"},
		{"EOL.CV.CE.000123-4.01", "Parque Eólico"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
}

func TestParseFirstTable(t *testing.T) {
	rows, _, err := NewParser(Options{TableIndex: 0}).Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "navigation" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestParseMissingTable(t *testing.T) {
	_, _, err := NewParser(Options{TableIndex: 5}).Parse(strings.NewReader(doc))
	if err == nil {
		t.Fatal("Parse accepted missing table index")
	}
}

func TestParseMissingCloseTags(t *testing.T) {
	// Machine-generated listings often omit </td> and </tr>.
	sloppy := `<table><tr><td>one<td>two<tr><td>three<td>four</table>`
	rows, _, err := NewParser(Options{}).Parse(strings.NewReader(sloppy))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := [][]string{{"one", "two"}, {"three", "four"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
}

func TestParseSkipsCelllessRows(t *testing.T) {
	in := `<table><tr><th>header only</th></tr><tr><td>data</td></tr></table>`
	rows, skipped, err := NewParser(Options{}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 1 || skipped != 1 {
		t.Fatalf("rows = %v skipped = %d, want 1 row 1 skipped", rows, skipped)
	}
}

func TestParseHeaderTrimLargerThanTable(t *testing.T) {
	in := `<table><tr><td>only</td></tr></table>`
	rows, _, err := NewParser(Options{HeaderRows: 5}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %v, want none", rows)
	}
}

func TestCellText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"<font size='1'>wrapped</font>", "wrapped"},
		{"a &amp; b", "a & b"},
		{"  spaced \n out ", "spaced out"},
		{"<a href='x'>linked</a> text", "linked text"},
	}
	for _, tt := range tests {
		if got := cellText(tt.in); got != tt.want {
			t.Fatalf("cellText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
