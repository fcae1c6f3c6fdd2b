package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/factoriogen/pkg/version"
)

// versionCommand creates the version command group.
func (c *CLI) versionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Work with mod version strings",
	}
	cmd.AddCommand(c.versionCompareCommand())
	return cmd
}

// versionCompareCommand creates the "version compare" subcommand. It prints
// -1, 0 or 1 like the comparator it wraps.
func (c *CLI) versionCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two version strings",
		Long: `Compare two version strings and print -1, 0 or 1.

Numeric parts are compared left to right, missing parts count as 0, and a
pre-release ("1.0.0-beta") sorts before its release. Build metadata after
"+" is ignored.`,
		Example: `  factoriogen version compare 1.10.0 1.9.0   # 1
  factoriogen version compare 1.0 1.0.0      # 0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, version.Compare(args[0], args[1]))
			return nil
		},
	}
}
