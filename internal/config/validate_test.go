package config

import (
	"strings"
	"testing"
)

func validRun() Run {
	run := Default()
	run.Countries = []string{"ARG"}
	return run
}

func findIssue(issues []Issue, path string) (Issue, bool) {
	for _, iss := range issues {
		if iss.Path == path {
			return iss, true
		}
	}
	return Issue{}, false
}

func TestValidateCleanRun(t *testing.T) {
	if issues := Validate(validRun()); len(issues) != 0 {
		t.Fatalf("issues = %v, want none", issues)
	}
}

func TestValidateInvalidCountry(t *testing.T) {
	run := validRun()
	run.Countries = []string{"ARG", "XXX"}
	issues := Validate(run)
	iss, ok := findIssue(issues, "countries[1]")
	if !ok || iss.Severity != SeverityError {
		t.Fatalf("issues = %v, want error at countries[1]", issues)
	}
}

func TestValidateEmptyPaths(t *testing.T) {
	run := validRun()
	run.RawDir = ""
	run.Output = "  "
	issues := Validate(run)
	if _, ok := findIssue(issues, "raw_dir"); !ok {
		t.Fatalf("issues = %v, want raw_dir error", issues)
	}
	if _, ok := findIssue(issues, "output"); !ok {
		t.Fatalf("issues = %v, want output error", issues)
	}
}

func TestValidateStorage(t *testing.T) {
	run := validRun()
	run.Storage.Kind = "oracle"
	issues := Validate(run)
	if iss, ok := findIssue(issues, "storage.kind"); !ok || iss.Severity != SeverityError {
		t.Fatalf("issues = %v, want storage.kind error", issues)
	}

	run = validRun()
	run.Storage.Kind = "sqlite"
	issues = Validate(run)
	if _, ok := findIssue(issues, "storage.dsn"); !ok {
		t.Fatalf("issues = %v, want storage.dsn error when kind set without dsn", issues)
	}

	run = validRun()
	run.Storage.DSN = "orphan.db"
	issues = Validate(run)
	iss, ok := findIssue(issues, "storage.dsn")
	if !ok || iss.Severity != SeverityWarning {
		t.Fatalf("issues = %v, want storage.dsn warning", issues)
	}
}

func TestValidateMetrics(t *testing.T) {
	run := validRun()
	run.Metrics.Backend = "prompush"
	issues := Validate(run)
	if _, ok := findIssue(issues, "metrics.pushgateway_url"); !ok {
		t.Fatalf("issues = %v, want pushgateway_url error", issues)
	}

	run = validRun()
	run.Metrics.Backend = "datadog"
	issues = Validate(run)
	if _, ok := findIssue(issues, "metrics.dogstatsd_addr"); !ok {
		t.Fatalf("issues = %v, want dogstatsd_addr error", issues)
	}

	run = validRun()
	run.Metrics.Backend = "graphite"
	issues = Validate(run)
	if iss, ok := findIssue(issues, "metrics.backend"); !ok ||
		!strings.Contains(iss.Message, "graphite") {
		t.Fatalf("issues = %v, want unknown backend error", issues)
	}
}

func TestValidateHTTP(t *testing.T) {
	run := validRun()
	run.HTTP.TimeoutSeconds = -1
	run.HTTP.MaxRetries = -2
	issues := Validate(run)
	if _, ok := findIssue(issues, "http.timeout_seconds"); !ok {
		t.Fatalf("issues = %v, want timeout error", issues)
	}
	if _, ok := findIssue(issues, "http.max_retries"); !ok {
		t.Fatalf("issues = %v, want retries error", issues)
	}
}

func TestIssueError(t *testing.T) {
	iss := Issue{Severity: SeverityError, Path: "output", Message: "must not be empty"}
	want := "error at output: must not be empty"
	if got := iss.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestHasErrors(t *testing.T) {
	warn := []Issue{{Severity: SeverityWarning}}
	if HasErrors(warn) {
		t.Fatal("HasErrors(warnings) = true")
	}
	if !HasErrors(append(warn, Issue{Severity: SeverityError})) {
		t.Fatal("HasErrors(with error) = false")
	}
}
