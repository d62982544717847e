// Package config defines the canonical, JSON-serializable configuration
// model for the plant database build. It is intentionally small and explicit
// so that a run can be loaded from disk and passed through the program
// without additional glue code; decoding is performed by the standard
// library.
//
// Example (trimmed):
//
//	{
//	  "countries":    ["ARG", "BRA"],
//	  "raw_dir":      "raw_plant_data",
//	  "resource_dir": "resources",
//	  "output":       "output_database/powerplant_database.csv",
//	  "download":     true,
//	  "storage":      { "kind": "sqlite", "dsn": "powerwatch.db" },
//	  "metrics":      { "backend": "prompush", "pushgateway_url": "http://pushgateway:9091" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Run describes one end-to-end build: which countries to process, where the
// inputs and outputs live, and which optional backends are attached.
type Run struct {
	// Countries lists ISO 3166-1 alpha-3 codes to process. Empty means all
	// registered countries.
	Countries []string `json:"countries"`

	// RawDir is where downloaded source files are cached.
	RawDir string `json:"raw_dir"`

	// ResourceDir holds static lookup files (coordinates, commissioning years).
	ResourceDir string `json:"resource_dir"`

	// Output is the path of the canonical CSV the build writes.
	Output string `json:"output"`

	// Download fetches fresh source files before building; when false, the
	// build reads whatever is already in RawDir.
	Download bool `json:"download"`

	// Storage optionally mirrors the canonical output into a database.
	Storage Storage `json:"storage"`

	// Metrics optionally attaches a metrics backend to the run.
	Metrics Metrics `json:"metrics"`

	// HTTP tunes the download client.
	HTTP HTTP `json:"http"`
}

// Storage selects a database backend for the canonical output. An empty Kind
// disables database output.
type Storage struct {
	// Kind selects the backend: "sqlite", "postgres", or "mssql".
	Kind string `json:"kind"`

	// DSN is the backend-specific connection string.
	DSN string `json:"dsn"`

	// Table overrides the destination table name.
	Table string `json:"table"`
}

// Metrics selects a metrics backend. An empty Backend leaves the no-op
// backend installed.
type Metrics struct {
	// Backend selects the implementation: "prompush" or "datadog".
	Backend string `json:"backend"`

	// PushgatewayURL is required for the "prompush" backend.
	PushgatewayURL string `json:"pushgateway_url"`

	// DogstatsdAddr is required for the "datadog" backend.
	DogstatsdAddr string `json:"dogstatsd_addr"`
}

// HTTP tunes the download client. Zero values fall back to the client
// defaults.
type HTTP struct {
	TimeoutSeconds int `json:"timeout_seconds"`
	MaxRetries     int `json:"max_retries"`
}

// Default returns the Run used when no config file is given.
func Default() Run {
	return Run{
		RawDir:      "raw_plant_data",
		ResourceDir: "resources",
		Output:      "output_database/powerplant_database.csv",
	}
}

// Load decodes a Run from a JSON file, applying Default values for fields
// the file omits.
func Load(path string) (Run, error) {
	run := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return run, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &run); err != nil {
		return run, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return run, nil
}
