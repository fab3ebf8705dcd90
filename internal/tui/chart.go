package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahanamn290/github-analysis/internal/format"
	"github.com/sahanamn290/github-analysis/internal/model"
)

// barEntry represents a single row of a horizontal bar chart.
type barEntry struct {
	Label   string
	Count   int
	Percent float64
	Style   lipgloss.Style
}

// Partial block characters for sub-character resolution (1/8 to 8/8).
var partialBlocks = []string{"▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"}

// maxBarChars caps bar length on wide terminals.
const maxBarChars = 40

// languageEntries converts a language distribution into chart rows.
func languageEntries(langs []model.LanguageStat) []barEntry {
	entries := make([]barEntry, 0, len(langs))
	for _, l := range langs {
		entries = append(entries, barEntry{
			Label:   l.Name,
			Count:   l.Count,
			Percent: l.Percentage,
			Style:   languageStyle(l.Name),
		})
	}
	return entries
}

// renderBars renders one bar per line, scaled to the largest count so all
// bars start at the same column.
//
// Format per line:
//
//	{label padded}  {colored bar}  {percent} ({count})
func renderBars(entries []barEntry, barWidth int) []string {
	if len(entries) == 0 {
		return []string{dimStyle.Render("  ─")}
	}

	maxCount := 0
	maxLabel := 0
	for _, e := range entries {
		maxCount = max(maxCount, e.Count)
		maxLabel = max(maxLabel, format.DisplayWidth(e.Label))
	}
	if maxCount == 0 {
		return []string{dimStyle.Render("  ─")}
	}

	bw := min(barWidth, maxBarChars)
	bw = max(bw, 4)

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		fracWidth := float64(e.Count) / float64(maxCount) * float64(bw)
		fullBlocks := int(fracWidth)
		remainder := fracWidth - float64(fullBlocks)

		bar := strings.Repeat("█", fullBlocks)
		if remainder >= 0.125 {
			bar += partialBlocks[min(int(remainder*8), 7)]
		}
		if bar == "" {
			bar = partialBlocks[0]
		}
		pad := strings.Repeat(" ", max(bw-len([]rune(bar)), 0))

		label := format.PadRight(e.Label, format.DisplayWidth(e.Label), maxLabel)
		lines = append(lines, fmt.Sprintf("  %s  %s%s %5.1f%% %s",
			label, e.Style.Render(bar), pad, e.Percent, dimStyle.Render(fmt.Sprintf("(%d)", e.Count))))
	}
	return lines
}
