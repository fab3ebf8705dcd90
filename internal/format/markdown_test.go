package format

import "testing"

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want LineKind
	}{
		{"# Title", LineHeading},
		{"### Deep", LineHeading},
		{"  ## indented", LineHeading},
		{"- dash item", LineListItem},
		{"* star item", LineListItem},
		{"• bullet item", LineListItem},
		{"   - nested", LineListItem},
		{"", LineBlank},
		{"   \t", LineBlank},
		{"Plain sentence.", LineParagraph},
		{"**bold** lead", LineParagraph},
		{"-no space", LineParagraph},
		{"1. numbered", LineParagraph},
	}
	for _, tt := range tests {
		if got := ClassifyLine(tt.line); got != tt.want {
			t.Errorf("ClassifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseLines(t *testing.T) {
	md := "## The Pragmatic Builder\r\n\nShips tools.\n- Go\n* Rust\n• C"
	got := ParseLines(md)

	want := []Line{
		{LineHeading, "The Pragmatic Builder"},
		{LineBlank, ""},
		{LineParagraph, "Ships tools."},
		{LineListItem, "Go"},
		{LineListItem, "Rust"},
		{LineListItem, "C"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestLineKindString(t *testing.T) {
	if LineHeading.String() != "heading" || LineParagraph.String() != "paragraph" {
		t.Error("unexpected kind names")
	}
}
