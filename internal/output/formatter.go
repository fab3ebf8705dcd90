// Package output renders analysis reports for non-interactive use.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/sahanamn290/github-analysis/internal/model"
	"github.com/sahanamn290/github-analysis/internal/stats"
)

// Format represents the output format
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name. An empty name selects the table.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatMarkdown:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (expected table, json or markdown)", s)
}

// Report is the full result of analyzing one user.
type Report struct {
	User         *model.User          `json:"user"`
	Repositories []model.Repository   `json:"repositories"`
	Languages    []model.LanguageStat `json:"languages"`
	Totals       stats.Summary        `json:"totals"`
	Persona      string               `json:"persona,omitempty"`
	GeneratedAt  time.Time            `json:"generatedAt"`
}

// NewReport builds a report, computing language and total statistics.
func NewReport(user *model.User, repos []model.Repository, persona string) *Report {
	return &Report{
		User:         user,
		Repositories: repos,
		Languages:    stats.Languages(repos),
		Totals:       stats.Summarize(repos),
		Persona:      persona,
		GeneratedAt:  time.Now(),
	}
}

// Formatter defines the interface for output formatters
type Formatter interface {
	Format(report *Report, w io.Writer) error
	FormatSuggestions(suggestions []model.Suggestion, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}
