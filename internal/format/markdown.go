package format

import "strings"

// LineKind classifies a line of generated Markdown.
type LineKind int

const (
	LineParagraph LineKind = iota
	LineHeading
	LineListItem
	LineBlank
)

// String returns the kind name.
func (k LineKind) String() string {
	switch k {
	case LineHeading:
		return "heading"
	case LineListItem:
		return "list-item"
	case LineBlank:
		return "blank"
	default:
		return "paragraph"
	}
}

// Line is a classified Markdown line with its marker removed.
type Line struct {
	Kind LineKind
	Text string
}

var listMarkers = []string{"- ", "* ", "• "}

// ClassifyLine determines the kind of a single line. Leading whitespace is
// ignored and anything unrecognized is a paragraph.
func ClassifyLine(line string) LineKind {
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case strings.TrimSpace(trimmed) == "":
		return LineBlank
	case strings.HasPrefix(trimmed, "#"):
		return LineHeading
	case listMarker(trimmed) != "":
		return LineListItem
	}
	return LineParagraph
}

func listMarker(s string) string {
	for _, m := range listMarkers {
		if strings.HasPrefix(s, m) {
			return m
		}
	}
	return ""
}

// ParseLines splits text into classified lines. Heading hashes and list
// markers are stripped from Text.
func ParseLines(md string) []Line {
	raw := strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		kind := ClassifyLine(l)
		text := strings.TrimLeft(l, " \t")
		switch kind {
		case LineHeading:
			text = strings.TrimLeft(text, "#")
		case LineListItem:
			text = text[len(listMarker(text)):]
		}
		lines = append(lines, Line{Kind: kind, Text: strings.TrimSpace(text)})
	}
	return lines
}
