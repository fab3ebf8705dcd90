package output

import (
	"encoding/json"
	"io"

	"github.com/sahanamn290/github-analysis/internal/model"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

func (f *JSONFormatter) encoder(w io.Writer) *json.Encoder {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder
}

// Format outputs the report as JSON
func (f *JSONFormatter) Format(report *Report, w io.Writer) error {
	if report.Repositories == nil {
		report.Repositories = []model.Repository{}
	}
	return f.encoder(w).Encode(report)
}

// FormatSuggestions outputs suggestions as a JSON array
func (f *JSONFormatter) FormatSuggestions(suggestions []model.Suggestion, w io.Writer) error {
	if suggestions == nil {
		suggestions = []model.Suggestion{}
	}
	return f.encoder(w).Encode(suggestions)
}
