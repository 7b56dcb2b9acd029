package config

import (
	"fmt"
	"net/url"
	"strings"

	"salesmart/internal/locale"
	"salesmart/internal/source"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config, e.g. "storage.dsn".
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

var knownStorage = map[string]struct{}{"postgres": {}, "mssql": {}, "sqlite": {}}

// Validate performs static checks. It does not connect to anything.
// dryRun relaxes the storage checks, since nothing is persisted.
func Validate(c *Config, dryRun bool) []Issue {
	var issues []Issue
	add := func(sev IssueSeverity, path, format string, a ...any) {
		issues = append(issues, Issue{Severity: sev, Path: path, Message: fmt.Sprintf(format, a...)})
	}

	if strings.TrimSpace(c.Job) == "" {
		add(SeverityError, "job", "job must not be empty; it labels metrics and logs")
	}
	if _, err := locale.For(c.Locale); err != nil {
		add(SeverityError, "locale", "%v", err)
	}

	switch c.Source.Kind {
	case "sqlserver", "mssql", "sqlite":
	case "":
		add(SeverityError, "source.kind", "source.kind must not be empty")
	default:
		add(SeverityError, "source.kind", "unknown source kind %q (want sqlserver or sqlite)", c.Source.Kind)
	}
	if strings.TrimSpace(c.Source.DSN) == "" {
		add(SeverityError, "source.dsn", "source DSN is required (SALESMART_SOURCE_DSN)")
	}
	for k, q := range c.Source.Queries {
		path := "source.queries." + k
		if _, err := source.ParseEntity(k); err != nil {
			add(SeverityError, path, "%v", err)
		} else if strings.TrimSpace(q) == "" {
			add(SeverityWarning, path, "empty query; the default is used")
		}
	}
	if c.Source.Kind == "sqlite" {
		for _, e := range source.Entities {
			if strings.TrimSpace(c.Source.Queries[string(e)]) == "" {
				add(SeverityWarning, "source.queries."+string(e), "sqlite source without a query override uses the SQL Server default")
			}
		}
	}

	if !dryRun {
		if _, ok := knownStorage[c.Storage.Kind]; !ok {
			add(SeverityError, "storage.kind", "unknown storage kind %q (want postgres, mssql or sqlite)", c.Storage.Kind)
		}
		if strings.TrimSpace(c.Storage.DSN) == "" {
			add(SeverityError, "storage.dsn", "storage DSN is required (SALESMART_STORAGE_DSN)")
		}
	}
	if c.Storage.BatchSize <= 0 {
		add(SeverityWarning, "storage.batch_size", "batch_size %d is not positive; the default is used", c.Storage.BatchSize)
	}

	switch c.Metrics.Backend {
	case "", "none":
	case "pushgateway":
		if u, err := url.Parse(c.Metrics.PushgatewayURL); err != nil || u.Scheme == "" || u.Host == "" {
			add(SeverityError, "metrics.pushgateway_url", "invalid Pushgateway URL %q", c.Metrics.PushgatewayURL)
		}
	case "datadog":
		if strings.TrimSpace(c.Metrics.DatadogAddr) == "" {
			add(SeverityError, "metrics.datadog_addr", "datadog backend requires an agent address")
		}
	default:
		add(SeverityWarning, "metrics.backend", "unknown metrics backend %q; metrics disabled", c.Metrics.Backend)
	}
	return issues
}
