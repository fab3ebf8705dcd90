package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahanamn290/github-analysis/internal/constants"
	"github.com/sahanamn290/github-analysis/internal/format"
	"github.com/sahanamn290/github-analysis/internal/model"
	"github.com/sahanamn290/github-analysis/internal/session"
	"github.com/sahanamn290/github-analysis/internal/stats"
)

// cardLines is the height of one repository card including its spacer.
const cardLines = 3

// renderHome renders the search screen.
func renderHome(m AppModel, st session.State) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  GitHub Profile Analyzer"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("  Visualize a developer's languages, projects and persona"))
	b.WriteString("\n\n")

	b.WriteString(indent(inputBoxStyle.Render(m.input.View()), 2))
	b.WriteString("\n")

	if m.showDropdown && len(m.suggestions) > 0 {
		b.WriteString(indent(renderDropdown(m.suggestions, m.suggestCursor), 2))
		b.WriteString("\n")
	}

	if st.Loading {
		b.WriteString(fmt.Sprintf("\n  %s Fetching %s...\n", m.spinner.View(), userStyle.Render(st.Query)))
	}

	if st.Err != "" {
		b.WriteString("\n  ")
		b.WriteString(errorBannerStyle.Render(st.Err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  enter: search   ↑/↓: suggestions   esc: close/quit"))
	return b.String()
}

// renderDropdown renders the suggestion list with the cursor highlighted.
func renderDropdown(suggestions []model.Suggestion, cursor int) string {
	width := 0
	for _, s := range suggestions {
		width = max(width, format.DisplayWidth(s.Login))
	}

	lines := make([]string, 0, len(suggestions))
	for i, s := range suggestions {
		label := format.PadRight(s.Login, format.DisplayWidth(s.Login), width)
		if i == cursor {
			lines = append(lines, dropdownSelectedStyle.Render(label))
		} else {
			lines = append(lines, dropdownItemStyle.Render(label))
		}
	}
	return dropdownStyle.Render(strings.Join(lines, "\n"))
}

// renderResults renders the profile header, tab bar and active tab.
func renderResults(m AppModel, st session.State) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderProfileHeader(st.User, st.Repos))
	b.WriteString("\n\n")
	b.WriteString(renderTabBar(st.Tab, len(st.Repos)))
	b.WriteString("\n\n")

	if st.Tab == session.TabProjects {
		b.WriteString(renderProjects(m, st))
	} else {
		b.WriteString(renderOverview(m, st))
	}

	b.WriteString("\n\n")
	b.WriteString(renderResultsHelp(st.Tab, m.filterFocused))

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("  " + m.statusMsg))
	}
	return b.String()
}

// renderProfileHeader renders name, bio, details and headline counts.
func renderProfileHeader(u *model.User, repos []model.Repository) string {
	var b strings.Builder

	b.WriteString("  " + nameStyle.Render(u.DisplayName()))
	if u.Name != "" {
		b.WriteString(" " + loginStyle.Render("@"+u.Login))
	}
	b.WriteString("\n")

	if bio := strings.TrimSpace(u.Bio); bio != "" {
		b.WriteString("  " + format.Truncate(bio, 100) + "\n")
	}

	var details []string
	for _, d := range []string{u.Company, u.Location, u.Blog, format.FormatJoined(u.CreatedAt)} {
		if d != "" {
			details = append(details, d)
		}
	}
	if len(details) > 0 {
		b.WriteString("  " + dimStyle.Render(strings.Join(details, " · ")) + "\n")
	}

	totals := stats.Summarize(repos)
	b.WriteString(fmt.Sprintf("\n  %s followers   %s following   %s repos   %s stars",
		statNumberStyle.Render(format.FormatCount(u.Followers)),
		statNumberStyle.Render(format.FormatCount(u.Following)),
		statNumberStyle.Render(format.FormatCount(u.PublicRepos)),
		starStyle.Render(format.FormatCount(totals.Stars)),
	))
	return b.String()
}

// renderTabBar renders the tab bar.
func renderTabBar(active session.Tab, repoCount int) string {
	overview := "[ 1: Overview ]"
	projects := fmt.Sprintf("[ 2: Projects (%d) ]", repoCount)

	if active == session.TabProjects {
		return "  " + tabInactiveStyle.Render(overview) + "    " + tabActiveStyle.Render(projects)
	}
	return "  " + tabActiveStyle.Render(overview) + "    " + tabInactiveStyle.Render(projects)
}

// renderOverview renders the language chart, statistics and persona panel.
func renderOverview(m AppModel, st session.State) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("  Languages"))
	b.WriteString("\n")
	langs := stats.TopLanguages(stats.Languages(st.Repos), constants.TopLanguages)
	barWidth := m.windowWidth - 40
	for _, line := range renderBars(languageEntries(langs), barWidth) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	totals := stats.Summarize(st.Repos)
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Stats"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s original repos   %s stars   %s forks   %s languages\n",
		statNumberStyle.Render(fmt.Sprint(totals.Repositories)),
		starStyle.Render(format.FormatCount(totals.Stars)),
		statNumberStyle.Render(format.FormatCount(totals.Forks)),
		statNumberStyle.Render(fmt.Sprint(totals.Languages)),
	))

	if top := stats.TopStarred(st.Repos, 3); len(top) > 0 && top[0].Stars > 0 {
		b.WriteString(dimStyle.Render("  Most starred: "))
		names := make([]string, 0, len(top))
		for _, r := range top {
			names = append(names, fmt.Sprintf("%s %s", repoNameStyle.Render(r.Name), starStyle.Render("★"+format.FormatCount(r.Stars))))
		}
		b.WriteString(strings.Join(names, dimStyle.Render(" · ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderPersonaPanel(m, st))
	return b.String()
}

// renderPersonaPanel renders the AI persona section.
func renderPersonaPanel(m AppModel, st session.State) string {
	width := max(min(m.windowWidth-6, 100), 30)

	var body string
	switch {
	case st.Generating:
		body = fmt.Sprintf("%s Generating developer persona...", m.spinner.View())
	case st.Insight != "":
		body = renderMarkdown(st.Insight, width-4)
	case len(st.Repos) == 0:
		body = dimStyle.Render("No repositories to analyze.")
	default:
		body = dimStyle.Render("Press a to generate an AI developer persona.")
	}

	title := sectionStyle.Render("AI Persona")
	return indent(panelStyle.Width(width).Render(title+"\n\n"+body), 2)
}

// renderMarkdown renders generated Markdown with headings and list items
// styled, wrapping paragraphs to width.
func renderMarkdown(md string, width int) string {
	var lines []string
	for _, l := range format.ParseLines(md) {
		switch l.Kind {
		case format.LineHeading:
			lines = append(lines, headingStyle.Render(l.Text))
		case format.LineListItem:
			lines = append(lines, bulletStyle.Render("• ")+lipgloss.NewStyle().Width(width-2).Render(l.Text))
		case format.LineBlank:
			lines = append(lines, "")
		default:
			lines = append(lines, lipgloss.NewStyle().Width(width).Render(l.Text))
		}
	}
	return strings.Join(lines, "\n")
}

// renderProjects renders the filter input and the scrollable repository cards.
func renderProjects(m AppModel, st session.State) string {
	var b strings.Builder

	if m.filterFocused || st.Filter != "" {
		b.WriteString("  " + m.filter.View())
		b.WriteString("\n\n")
	}

	repos := st.FilteredRepos()
	if len(repos) == 0 {
		if st.Filter != "" {
			b.WriteString(dimStyle.Italic(true).Render(fmt.Sprintf("  No repositories match %q.", st.Filter)))
		} else {
			b.WriteString(dimStyle.Italic(true).Render("  No original repositories."))
		}
		return b.String()
	}

	available := m.windowHeight - constants.HeaderLines - constants.FooterLines - 4
	visible := max(available/cardLines, 1)
	cursor := min(m.repoCursor, len(repos)-1)
	start, end := calculateScrollWindow(cursor, len(repos), visible)

	now := time.Now()
	for i := start; i < end; i++ {
		b.WriteString(renderRepoCard(repos[i], i == cursor, m.windowWidth, now))
		b.WriteString("\n")
	}

	if len(repos) > visible {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(repos))))
	}
	return b.String()
}

// renderRepoCard renders one repository as a two-line card.
func renderRepoCard(r model.Repository, selected bool, width int, now time.Time) string {
	lang := r.Language
	if lang == "" {
		lang = stats.UnknownLanguage
	}

	top := fmt.Sprintf("%s  %s  %s  %s  %s",
		repoNameStyle.Render(r.Name),
		languageStyle(lang).Render("● "+lang),
		starStyle.Render("★ "+format.FormatCount(r.Stars)),
		dimStyle.Render("⑂ "+format.FormatCount(r.Forks)),
		dimStyle.Render("updated "+format.FormatSince(r.UpdatedAt, now)),
	)
	for _, t := range r.Topics {
		top += " " + topicStyle.Render(t)
	}

	desc := r.Description
	if desc == "" {
		desc = "No description"
	}
	desc = dimStyle.Render(format.Truncate(desc, max(width-8, 20)))

	card := top + "\n" + desc + "\n"
	if selected {
		return cardSelectedStyle.Render(card)
	}
	return cardStyle.Render(card)
}

// calculateScrollWindow determines which items to show based on cursor position
func calculateScrollWindow(cursor, total, viewHeight int) (start, end int) {
	if total <= viewHeight {
		return 0, total
	}

	start = max(cursor-viewHeight/2, 0)
	end = start + viewHeight
	if end > total {
		end = total
		start = max(end-viewHeight, 0)
	}
	return start, end
}

// renderResultsHelp renders the key hints for the results screen.
func renderResultsHelp(tab session.Tab, filtering bool) string {
	switch {
	case filtering:
		return helpStyle.Render("  type to filter   enter/esc: done")
	case tab == session.TabProjects:
		return helpStyle.Render("  tab/1-2: tabs   j/k: nav   /: filter   o: open   n: new search   q: quit")
	}
	return helpStyle.Render("  tab/1-2: tabs   a: AI persona   o: open profile   n: new search   q: quit")
}

// indent prefixes every line of s with n spaces.
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
