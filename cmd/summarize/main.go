// Command summarize reads the canonical power plant database and writes the
// per-country summary CSV used for coverage review.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deekonger/powerwatch/internal/countries"
	"github.com/deekonger/powerwatch/internal/metrics"
	"github.com/deekonger/powerwatch/internal/metrics/datadog"
	"github.com/deekonger/powerwatch/internal/metrics/prompush"
	"github.com/deekonger/powerwatch/internal/pwdata"
	"github.com/deekonger/powerwatch/internal/summary"
)

func main() {
	var (
		input          string
		output         string
		countryList    string
		metricsBackend string
		pushgatewayURL string
		dogstatsdAddr  string
	)

	flag.StringVar(&input, "input", "output_database/powerplant_database.csv", "canonical database CSV path")
	flag.StringVar(&output, "output", "output_database/powerplant_summary.csv", "summary CSV output path")
	flag.StringVar(&countryList, "country", "", "comma-separated ISO codes to summarize (default: all)")
	flag.StringVar(&metricsBackend, "metrics-backend", "", "metrics backend (prompush, datadog); empty disables")
	flag.StringVar(&pushgatewayURL, "pushgateway-url", "", "Pushgateway base URL for the prompush backend")
	flag.StringVar(&dogstatsdAddr, "dogstatsd-addr", "", "DogStatsD address for the datadog backend")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	setupMetrics(metricsBackend, pushgatewayURL, dogstatsdAddr, *verbose)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	start := time.Now()

	targets, err := countries.Resolve(splitCodes(countryList))
	if err != nil {
		log.Fatalf("%v", err)
	}

	plants, err := readDatabase(input)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *verbose {
		log.Printf("read %d plants from %s", len(plants), input)
	}

	stepStart := time.Now()
	err = writeSummary(output, plants, targets)
	metrics.RecordStep("summarize", "summarize", err, time.Since(stepStart))
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("wrote %s (%d countries)", output, len(targets))

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

// readDatabase decodes the canonical CSV back into records. A malformed row
// is a structural error: the database is machine-written, so damage means
// the wrong file was given.
func readDatabase(path string) ([]*pwdata.PowerPlant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(pwdata.Columns()) {
		return nil, fmt.Errorf("unexpected header width %d, want %d", len(header), len(pwdata.Columns()))
	}

	var plants []*pwdata.PowerPlant
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		p, err := pwdata.DecodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode line %d: %w", line, err)
		}
		plants = append(plants, p)
	}
	return plants, nil
}

// writeSummary renders one summary row per requested country, in registry
// order.
func writeSummary(path string, plants []*pwdata.PowerPlant, targets []countries.Country) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(summary.Fieldnames()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, c := range targets {
		s := summary.Summarize(plants, c)
		if err := w.Write(s.Encode()); err != nil {
			return fmt.Errorf("write %s: %w", c.ISO, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush summary: %w", err)
	}
	return f.Close()
}

func setupMetrics(backend, pushgatewayURL, dogstatsdAddr string, verbose bool) {
	switch strings.ToLower(backend) {
	case "prompush":
		b, err := prompush.NewBackend("summarize", pushgatewayURL)
		if err != nil {
			log.Printf("metrics: failed to init prompush backend: %v; using nop", err)
			return
		}
		metrics.SetBackend(b)

	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{Addr: dogstatsdAddr, Namespace: "powerwatch."})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return
		}
		metrics.SetBackend(b)

	case "":
		if verbose {
			log.Printf("metrics: disabled")
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backend)
	}
}

func splitCodes(list string) []string {
	if list == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
