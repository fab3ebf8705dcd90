package cmd

import (
	"fmt"
	"strings"

	"github.com/sahanamn290/github-analysis/internal/constants"
	"github.com/sahanamn290/github-analysis/internal/output"
	"github.com/sahanamn290/github-analysis/internal/suggest"
	"github.com/spf13/cobra"
)

// NewCmdSearch creates the search command.
func NewCmdSearch() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Suggest GitHub usernames matching a prefix",
		Long: fmt.Sprintf(`Search GitHub users whose login or name matches query.

The query must be at least %d characters. Search failures print no
suggestions rather than an error.`, constants.SuggestMinQueryLength),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts *Options) error {
	f := false
	opts.TUI = &f
	setupRuntime(opts)

	if !suggest.Eligible(query) {
		return fmt.Errorf("query %q is too short: need at least %d characters", strings.TrimSpace(query), constants.SuggestMinQueryLength)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := resolveFormat(opts, cfg)
	if err != nil {
		return err
	}

	client, err := newClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	suggestions := suggest.Search(cmd.Context(), client, query)
	return output.NewFormatter(format).FormatSuggestions(suggestions, cmd.OutOrStdout())
}
