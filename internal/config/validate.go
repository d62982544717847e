// This file adds a lightweight linter/validator for Run values. It performs
// static checks over a decoded Run and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"

	"github.com/deekonger/powerwatch/internal/countries"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Run.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "countries[1]"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue carries SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

var storageKinds = map[string]bool{"sqlite": true, "postgres": true, "mssql": true}

// Validate performs static validation of a Run. It does not mutate the Run;
// callers decide whether to treat warnings as fatal.
func Validate(run Run) []Issue {
	var issues []Issue

	for i, code := range run.Countries {
		if _, err := countries.ByISO(code); err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("countries[%d]", i),
				Message:  err.Error(),
			})
		}
	}

	if strings.TrimSpace(run.RawDir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "raw_dir",
			Message:  "raw_dir must not be empty",
		})
	}
	if strings.TrimSpace(run.ResourceDir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "resource_dir",
			Message:  "resource_dir must not be empty",
		})
	}
	if strings.TrimSpace(run.Output) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output",
			Message:  "output must not be empty",
		})
	}

	if run.Storage.Kind != "" {
		if !storageKinds[strings.ToLower(run.Storage.Kind)] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.kind",
				Message:  fmt.Sprintf("unknown storage kind %q", run.Storage.Kind),
			})
		}
		if strings.TrimSpace(run.Storage.DSN) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.dsn",
				Message:  "dsn is required when storage.kind is set",
			})
		}
	} else if run.Storage.DSN != "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.dsn",
			Message:  "dsn is set but storage.kind is empty; database output is disabled",
		})
	}

	switch strings.ToLower(run.Metrics.Backend) {
	case "":
		// metrics disabled
	case "prompush":
		if strings.TrimSpace(run.Metrics.PushgatewayURL) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "pushgateway_url is required for the prompush backend",
			})
		}
	case "datadog":
		if strings.TrimSpace(run.Metrics.DogstatsdAddr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.dogstatsd_addr",
				Message:  "dogstatsd_addr is required for the datadog backend",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q", run.Metrics.Backend),
		})
	}

	if run.HTTP.TimeoutSeconds < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "http.timeout_seconds",
			Message:  "timeout_seconds must not be negative",
		})
	}
	if run.HTTP.MaxRetries < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "http.max_retries",
			Message:  "max_retries must not be negative",
		})
	}

	return issues
}
