package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sahanamn290/github-analysis/internal/tui"
)

// progressFlag is the pflag.Value behind --tui. Unset means auto-detect.
type progressFlag struct {
	mode **bool
}

func newProgressFlag(opts *Options) *progressFlag {
	return &progressFlag{mode: &opts.TUI}
}

func (f *progressFlag) String() string {
	if *f.mode == nil {
		return "auto"
	}
	return strconv.FormatBool(**f.mode)
}

// Set accepts auto, yes/no and anything strconv.ParseBool understands.
func (f *progressFlag) Set(s string) error {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "auto", "":
		*f.mode = nil
		return nil
	case "yes":
		s = "true"
	case "no":
		s = "false"
	}
	on, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid value %q for --tui: want true, false or auto", s)
	}
	*f.mode = &on
	return nil
}

func (f *progressFlag) Type() string { return "bool" }

// IsBoolFlag lets a bare --tui force the display on.
func (f *progressFlag) IsBoolFlag() bool { return true }

// shouldUseTUI reports whether the progress display should own the
// terminal. Any -v wins so log lines stay readable.
func shouldUseTUI(opts *Options) bool {
	switch {
	case opts.Verbosity > 0:
		return false
	case opts.TUI != nil:
		return *opts.TUI
	default:
		return tui.ShouldUseTUI()
	}
}
