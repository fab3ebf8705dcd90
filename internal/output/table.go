package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sahanamn290/github-analysis/internal/constants"
	"github.com/sahanamn290/github-analysis/internal/format"
	"github.com/sahanamn290/github-analysis/internal/model"
	"github.com/sahanamn290/github-analysis/internal/stats"
	"golang.org/x/term"
)

// TableFormatter formats output as a terminal table
type TableFormatter struct {
	// Now overrides the clock used for relative ages.
	Now func() time.Time
}

// hyperlink creates a clickable terminal hyperlink using OSC 8
func hyperlink(text, url string) string {
	if url == "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

func (f *TableFormatter) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// Format outputs the report as a profile header, language chart and
// repository table.
func (f *TableFormatter) Format(report *Report, w io.Writer) error {
	u := report.User
	if u == nil {
		fmt.Fprintln(w, "No profile loaded.")
		return nil
	}

	f.printHeader(report, w)
	f.printLanguages(report.Languages, w)
	f.printRepos(report.Repositories, w)

	if report.Persona != "" {
		fmt.Fprintln(w)
		color.New(color.Bold).Fprintln(w, "Developer Persona")
		fmt.Fprintln(w, strings.Repeat("-", 17))
		fmt.Fprintln(w, strings.TrimSpace(report.Persona))
	}
	return nil
}

func (f *TableFormatter) printHeader(report *Report, w io.Writer) {
	u := report.User

	name := color.New(color.Bold).Sprint(u.DisplayName())
	fmt.Fprintf(w, "%s %s\n", hyperlink(name, u.HTMLURL), color.HiBlackString("@"+u.Login))
	if u.Bio != "" {
		fmt.Fprintln(w, u.Bio)
	}

	var details []string
	for _, d := range []string{u.Company, u.Location, u.Blog, format.FormatJoined(u.CreatedAt)} {
		if d != "" {
			details = append(details, d)
		}
	}
	if len(details) > 0 {
		fmt.Fprintln(w, color.HiBlackString(strings.Join(details, " · ")))
	}

	fmt.Fprintf(w, "\n%s followers  %s following  %s repos  %s stars  %s forks\n\n",
		color.CyanString(format.FormatCount(u.Followers)),
		color.CyanString(format.FormatCount(u.Following)),
		color.CyanString(format.FormatCount(report.Totals.Repositories)),
		color.YellowString(format.FormatCount(report.Totals.Stars)),
		color.CyanString(format.FormatCount(report.Totals.Forks)),
	)
}

func (f *TableFormatter) printLanguages(langs []model.LanguageStat, w io.Writer) {
	if len(langs) == 0 {
		return
	}

	langs = stats.TopLanguages(langs, constants.TopLanguages)

	const barWidth = 30
	nameWidth := 0
	for _, l := range langs {
		nameWidth = max(nameWidth, format.DisplayWidth(l.Name))
	}

	color.New(color.Bold).Fprintln(w, "Languages")
	for _, l := range langs {
		filled := int(l.Percentage/100*barWidth + 0.5)
		if filled == 0 && l.Count > 0 {
			filled = 1
		}
		bar := color.GreenString(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)
		fmt.Fprintf(w, "  %s  %s %5.1f%%  (%d)\n",
			format.PadRight(l.Name, format.DisplayWidth(l.Name), nameWidth),
			bar, l.Percentage, l.Count)
	}
	fmt.Fprintln(w)
}

func (f *TableFormatter) printRepos(repos []model.Repository, w io.Writer) {
	if len(repos) == 0 {
		fmt.Fprintln(w, "No repositories found.")
		return
	}

	fmt.Fprintf(w, "%-*s  %-*s  %*s  %*s  %-*s  %s\n",
		constants.ColName, "Repository",
		constants.ColLanguage, "Language",
		constants.ColStars, "Stars",
		constants.ColForks, "Forks",
		constants.ColUpdated, "Updated",
		"Description")
	fmt.Fprintln(w, strings.Repeat("-", constants.ColName+constants.ColLanguage+constants.ColStars+
		constants.ColForks+constants.ColUpdated+constants.ColDesc+10))

	now := f.now()
	for _, r := range repos {
		name, nameWidth := format.TruncateToWidth(r.Name, constants.ColName)
		name = format.PadRight(hyperlink(name, r.HTMLURL), nameWidth, constants.ColName)

		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		lang = format.Fit(lang, constants.ColLanguage)

		desc := format.Truncate(r.Description, constants.ColDesc)

		fmt.Fprintf(w, "%s  %s  %*s  %*s  %-*s  %s\n",
			name,
			color.BlueString(lang),
			constants.ColStars, format.FormatCount(r.Stars),
			constants.ColForks, format.FormatCount(r.Forks),
			constants.ColUpdated, format.FormatSince(r.UpdatedAt, now),
			desc,
		)
	}

	fmt.Fprintf(w, "\n%d repositories\n", len(repos))
}

// FormatSuggestions outputs suggestions one login per line
func (f *TableFormatter) FormatSuggestions(suggestions []model.Suggestion, w io.Writer) error {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "No matching users.")
		return nil
	}
	for _, s := range suggestions {
		fmt.Fprintf(w, "%s  %s\n", s.Login, color.HiBlackString("https://github.com/"+s.Login))
	}
	return nil
}
