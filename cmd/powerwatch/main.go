// Command powerwatch builds the canonical power plant database. It runs the
// registered country importers, merges their output, writes the canonical
// CSV, and optionally mirrors the collection into a database.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deekonger/powerwatch/internal/config"
	"github.com/deekonger/powerwatch/internal/countries"
	"github.com/deekonger/powerwatch/internal/datasource"
	"github.com/deekonger/powerwatch/internal/datasource/httpds"
	"github.com/deekonger/powerwatch/internal/importer"
	"github.com/deekonger/powerwatch/internal/metrics"
	"github.com/deekonger/powerwatch/internal/metrics/datadog"
	"github.com/deekonger/powerwatch/internal/metrics/prompush"
	"github.com/deekonger/powerwatch/internal/pwdata"
	"github.com/deekonger/powerwatch/internal/storage"

	// register all country importers and storage backends.
	_ "github.com/deekonger/powerwatch/internal/importer/all"
	_ "github.com/deekonger/powerwatch/internal/storage/all"
)

func main() {
	var (
		cfgPath        string
		countryList    string
		rawDir         string
		resourceDir    string
		output         string
		download       bool
		storageKind    string
		storageDSN     string
		metricsBackend string
		pushgatewayURL string
		dogstatsdAddr  string
		validate       bool
	)

	flag.StringVar(&cfgPath, "config", "", "run config JSON path (flags override file values)")
	flag.StringVar(&countryList, "country", "", "comma-separated ISO codes to process (default: all)")
	flag.StringVar(&rawDir, "raw-dir", "", "directory for downloaded source files")
	flag.StringVar(&resourceDir, "resource-dir", "", "directory with curated side tables")
	flag.StringVar(&output, "output", "", "canonical CSV output path")
	flag.BoolVar(&download, "download", false, "fetch fresh source files before building")
	flag.StringVar(&storageKind, "storage", "", "database backend (sqlite, postgres, mssql); empty disables")
	flag.StringVar(&storageDSN, "dsn", "", "database connection string")
	flag.StringVar(&metricsBackend, "metrics-backend", "", "metrics backend (prompush, datadog); empty disables")
	flag.StringVar(&pushgatewayURL, "pushgateway-url", "", "Pushgateway base URL for the prompush backend")
	flag.StringVar(&dogstatsdAddr, "dogstatsd-addr", "", "DogStatsD address for the datadog backend")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	run := config.Default()
	if cfgPath != "" {
		var err error
		run, err = config.Load(cfgPath)
		if err != nil {
			fatalf("%v", err)
		}
	}

	// Flags override file values.
	if countryList != "" {
		run.Countries = splitCodes(countryList)
	}
	if rawDir != "" {
		run.RawDir = rawDir
	}
	if resourceDir != "" {
		run.ResourceDir = resourceDir
	}
	if output != "" {
		run.Output = output
	}
	if download {
		run.Download = true
	}
	if storageKind != "" {
		run.Storage.Kind = storageKind
	}
	if storageDSN != "" {
		run.Storage.DSN = storageDSN
	}
	if metricsBackend != "" {
		run.Metrics.Backend = metricsBackend
	}
	if pushgatewayURL != "" {
		run.Metrics.PushgatewayURL = pushgatewayURL
	}
	if dogstatsdAddr != "" {
		run.Metrics.DogstatsdAddr = dogstatsdAddr
	}

	issues := config.Validate(run)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("configuration is invalid")
		os.Exit(1)
	}
	if validate {
		log.Printf("configuration is valid")
		os.Exit(0)
	}

	setupMetrics(run.Metrics, *verbose)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	ctx := context.Background()
	start := time.Now()

	if err := build(ctx, run, *verbose); err != nil {
		log.Fatalf("%v", err)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

// build runs the whole pipeline for the configured countries.
func build(ctx context.Context, run config.Run, verbose bool) error {
	targets, err := countries.Resolve(run.Countries)
	if err != nil {
		return err
	}

	paths := importer.Paths{RawDir: run.RawDir, ResourceDir: run.ResourceDir}

	imps := make([]importer.Importer, 0, len(targets))
	for _, c := range targets {
		imp, err := importer.For(c)
		if err != nil {
			return err
		}
		imps = append(imps, imp)
	}

	if run.Download {
		if err := fetchSources(ctx, run, imps, paths); err != nil {
			return err
		}
	}

	var plants []*pwdata.PowerPlant
	for _, imp := range imps {
		iso := imp.Country().ISO
		stepStart := time.Now()
		res, err := imp.Run(ctx, paths)
		metrics.RecordStep(iso, "import", err, time.Since(stepStart))
		if err != nil {
			return fmt.Errorf("import %s: %w", iso, err)
		}
		report(iso, res, verbose)
		plants = append(plants, res.Plants...)
	}

	log.Printf("built %d plants from %d countries", len(plants), len(targets))

	if err := writeCSV(run.Output, plants); err != nil {
		return err
	}
	log.Printf("wrote %s", run.Output)

	if run.Storage.Kind != "" {
		if err := writeStorage(ctx, run.Storage, plants); err != nil {
			return err
		}
	}
	return nil
}

// fetchSources downloads every importer's raw files up front so
// transformation never interleaves with network I/O.
func fetchSources(ctx context.Context, run config.Run, imps []importer.Importer, paths importer.Paths) error {
	var reqs []datasource.Request
	for _, imp := range imps {
		reqs = append(reqs, imp.Downloads(paths)...)
	}
	if len(reqs) == 0 {
		return nil
	}

	client := httpds.NewClient(httpds.Config{
		Timeout:    time.Duration(run.HTTP.TimeoutSeconds) * time.Second,
		MaxRetries: run.HTTP.MaxRetries,
	})
	stepStart := time.Now()
	err := datasource.FetchAll(ctx, client, reqs)
	metrics.RecordStep("powerwatch", "download", err, time.Since(stepStart))
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	return nil
}

// report logs one importer's diagnostics and forwards them to metrics.
func report(iso string, res *importer.Result, verbose bool) {
	log.Printf("%s: %d plants (%d rows skipped, %d parse errors, %d unmatched fuels, %d orphan rows, %d islanded rows)",
		iso, len(res.Plants), res.SkippedRows, res.Grouping.ParseErrors,
		len(res.Grouping.UnmatchedFuels), res.Grouping.OrphanRows, res.Grouping.IslandedRows)
	if len(res.LocationsNotFound) > 0 {
		log.Printf("%s: %d plants without coordinates", iso, len(res.LocationsNotFound))
	}
	if len(res.YearsNotFound) > 0 {
		log.Printf("%s: %d plants without commissioning year", iso, len(res.YearsNotFound))
	}
	if verbose {
		for _, p := range res.LocationsNotFound {
			log.Printf("%s: no coordinates for %q", iso, p.Name)
		}
		for _, p := range res.YearsNotFound {
			log.Printf("%s: no commissioning year for %q", iso, p.Name)
		}
	}

	metrics.RecordRow(iso, "plants", int64(len(res.Plants)))
	metrics.RecordRow(iso, "skipped_rows", int64(res.SkippedRows))
	metrics.RecordRow(iso, "parse_errors", int64(res.Grouping.ParseErrors))
	metrics.RecordRow(iso, "unmatched_fuels", int64(len(res.Grouping.UnmatchedFuels)))
	metrics.RecordRow(iso, "locations_not_found", int64(len(res.LocationsNotFound)))
	metrics.RecordRow(iso, "years_not_found", int64(len(res.YearsNotFound)))
}

// writeCSV renders the canonical collection in stable column order.
func writeCSV(path string, plants []*pwdata.PowerPlant) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(pwdata.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range plants {
		if err := w.Write(pwdata.EncodeRow(p)); err != nil {
			return fmt.Errorf("write row %s: %w", p.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return f.Close()
}

// writeStorage mirrors the collection into the configured database backend.
func writeStorage(ctx context.Context, cfg config.Storage, plants []*pwdata.PowerPlant) error {
	repo, err := storage.New(ctx, storage.Config{
		Kind:  cfg.Kind,
		DSN:   cfg.DSN,
		Table: cfg.Table,
	})
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.EnsureTable(ctx); err != nil {
		return err
	}

	stepStart := time.Now()
	n, err := repo.CopyFrom(ctx, pwdata.Columns(), storage.PlantRows(plants))
	metrics.RecordStep("powerwatch", "store", err, time.Since(stepStart))
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	metrics.RecordRow("powerwatch", "inserted", n)
	log.Printf("stored %d rows in %s", n, cfg.Kind)
	return nil
}

// setupMetrics installs the configured backend; the no-op backend stays in
// place on any failure so instrumentation calls remain safe.
func setupMetrics(cfg config.Metrics, verbose bool) {
	switch strings.ToLower(cfg.Backend) {
	case "prompush":
		b, err := prompush.NewBackend("powerwatch", cfg.PushgatewayURL)
		if err != nil {
			log.Printf("metrics: failed to init prompush backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: backend=prompush url=%s", cfg.PushgatewayURL)
		metrics.SetBackend(b)

	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:      cfg.DogstatsdAddr,
			Namespace: "powerwatch.",
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: backend=datadog addr=%s", cfg.DogstatsdAddr)
		metrics.SetBackend(b)

	case "":
		if verbose {
			log.Printf("metrics: disabled")
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", cfg.Backend)
	}
}

func splitCodes(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
