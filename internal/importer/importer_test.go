package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/deekonger/powerwatch/internal/countries"
	"github.com/deekonger/powerwatch/internal/datasource"
)

type stubImporter struct{ iso string }

func (s stubImporter) Country() countries.Country {
	return countries.Country{Name: "Testland", ISO: s.iso}
}

func (stubImporter) Downloads(Paths) []datasource.Request { return nil }

func (stubImporter) Run(context.Context, Paths) (*Result, error) {
	return &Result{}, nil
}

func TestRegisterAndFor(t *testing.T) {
	Register("TST", func() Importer { return stubImporter{iso: "TST"} })

	imp, err := For(countries.Country{Name: "Testland", ISO: "TST"})
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if got := imp.Country().ISO; got != "TST" {
		t.Fatalf("Country().ISO = %q, want TST", got)
	}
}

func TestForUnknown(t *testing.T) {
	_, err := For(countries.Country{Name: "Nowhere", ISO: "XXX"})
	if err == nil {
		t.Fatal("For succeeded for an unregistered country")
	}
	if !strings.Contains(err.Error(), "XXX") {
		t.Fatalf("error %q does not name the country code", err)
	}
}
