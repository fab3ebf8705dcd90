package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/sahanamn290/github-analysis/internal/model"
	"github.com/sahanamn290/github-analysis/internal/stats"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct{}

// Format outputs the report as Markdown
func (f *MarkdownFormatter) Format(report *Report, w io.Writer) error {
	u := report.User
	if u == nil {
		fmt.Fprintln(w, "No profile loaded.")
		return nil
	}

	fmt.Fprintf(w, "# %s", u.DisplayName())
	if u.Name != "" && u.Name != u.Login {
		fmt.Fprintf(w, " (@%s)", u.Login)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\n*Generated: %s*\n\n", report.GeneratedAt.Format("2006-01-02 15:04"))

	if u.Bio != "" {
		fmt.Fprintf(w, "> %s\n\n", u.Bio)
	}

	fmt.Fprintln(w, "| Followers | Following | Public repos | Stars | Forks |")
	fmt.Fprintln(w, "|---|---|---|---|---|")
	fmt.Fprintf(w, "| %d | %d | %d | %d | %d |\n\n",
		u.Followers, u.Following, u.PublicRepos, report.Totals.Stars, report.Totals.Forks)

	if len(report.Languages) > 0 {
		fmt.Fprintln(w, "## Languages")
		fmt.Fprintln(w)
		for _, l := range report.Languages {
			fmt.Fprintf(w, "- **%s**: %d (%.1f%%)\n", l.Name, l.Count, l.Percentage)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "## Repositories (%d)\n\n", len(report.Repositories))
	if len(report.Repositories) == 0 {
		fmt.Fprintln(w, "No repositories found.")
	}
	for _, r := range report.Repositories {
		f.formatRepo(r, w)
	}

	if report.Persona != "" {
		fmt.Fprintln(w, "## Developer Persona")
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.TrimSpace(report.Persona))
	}

	return nil
}

func (f *MarkdownFormatter) formatRepo(r model.Repository, w io.Writer) {
	lang := r.Language
	if lang == "" {
		lang = stats.UnknownLanguage
	}

	if r.HTMLURL != "" {
		fmt.Fprintf(w, "- [%s](%s)", escapeMarkdown(r.Name), r.HTMLURL)
	} else {
		fmt.Fprintf(w, "- %s", escapeMarkdown(r.Name))
	}
	fmt.Fprintf(w, " `%s` ★%d ⑂%d", lang, r.Stars, r.Forks)
	if r.Description != "" {
		fmt.Fprintf(w, " - %s", escapeMarkdown(r.Description))
	}
	fmt.Fprintln(w)
}

// FormatSuggestions outputs suggestions as a Markdown list
func (f *MarkdownFormatter) FormatSuggestions(suggestions []model.Suggestion, w io.Writer) error {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "No matching users.")
		return nil
	}
	for _, s := range suggestions {
		fmt.Fprintf(w, "- [%s](https://github.com/%s)\n", escapeMarkdown(s.Login), s.Login)
	}
	return nil
}

// escapeMarkdown escapes characters that would break inline Markdown.
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"[", "\\[",
		"]", "\\]",
		"*", "\\*",
		"_", "\\_",
	)
	return replacer.Replace(s)
}
