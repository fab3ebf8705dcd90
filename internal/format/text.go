// Package format provides shared text formatting utilities for terminal output.
package format

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ansiRegex matches SGR escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const (
	ellipsis = "..."
	reset    = "\033[0m"
)

// StripAnsi removes ANSI escape sequences from a string.
func StripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// DisplayWidth returns the visible width of s in terminal columns.
// Escape sequences are ignored and an emoji followed by U+FE0F counts as two columns.
func DisplayWidth(s string) int {
	width := 0
	runes := []rune(StripAnsi(s))
	for i := 0; i < len(runes); i++ {
		switch {
		case i+1 < len(runes) && runes[i+1] == '\uFE0F':
			width += 2
			i++
		case runes[i] == '\uFE0F':
		default:
			width += runewidth.RuneWidth(runes[i])
		}
	}
	return width
}

// TruncateToWidth shortens s to at most maxWidth columns, appending "..."
// when anything was cut. Escape sequences are copied through untouched and
// a reset is appended after a cut so colors never bleed.
// It returns the result and its visible width.
func TruncateToWidth(s string, maxWidth int) (string, int) {
	if w := DisplayWidth(s); w <= maxWidth {
		return s, w
	}
	if maxWidth <= len(ellipsis) {
		return ellipsis[:max(maxWidth, 0)], max(maxWidth, 0)
	}

	budget := maxWidth - len(ellipsis)
	escapes := ansiRegex.FindAllStringIndex(s, -1)

	var sb strings.Builder
	used := 0
	for pos := 0; pos < len(s); {
		if len(escapes) > 0 && pos == escapes[0][0] {
			sb.WriteString(s[escapes[0][0]:escapes[0][1]])
			pos = escapes[0][1]
			escapes = escapes[1:]
			continue
		}

		r, size := utf8.DecodeRuneInString(s[pos:])
		rw := runewidth.RuneWidth(r)
		end := pos + size
		if next, nsize := utf8.DecodeRuneInString(s[end:]); next == '\uFE0F' {
			rw = 2
			end += nsize
		}
		if used+rw > budget {
			break
		}
		sb.WriteString(s[pos:end])
		used += rw
		pos = end
	}

	sb.WriteString(ellipsis)
	if strings.Contains(s, "\x1b[") {
		sb.WriteString(reset)
	}
	return sb.String(), used + len(ellipsis)
}

// Truncate is TruncateToWidth without the width.
func Truncate(s string, maxWidth int) string {
	out, _ := TruncateToWidth(s, maxWidth)
	return out
}

// PadRight pads a string with spaces to reach the target visible width.
func PadRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}

// Fit truncates or pads s so it occupies exactly width columns.
func Fit(s string, width int) string {
	out, w := TruncateToWidth(s, width)
	return PadRight(out, w, width)
}
