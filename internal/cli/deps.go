package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/factoriogen/pkg/dependency"
	"github.com/matzehuels/factoriogen/pkg/validate"
)

// errInvalidDependencies is returned when a deps subcommand found errors.
var errInvalidDependencies = errors.New("dependency check failed")

// depsCommand creates the deps command group.
func (c *CLI) depsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Inspect and check dependency strings",
		Long: `Inspect and check info.json dependency strings.

A dependency has the form "[RELATION ]NAME[ OPERATOR VERSION]":
  base                  required, any version
  ? flib >= 0.14.0      optional, at least 0.14.0
  (?) debug-mod         optional, hidden in the mod list
  ~ helper-mod          required, does not affect load order
  ! bad-mod             incompatible`,
	}

	cmd.AddCommand(c.depsParseCommand())
	cmd.AddCommand(c.depsCheckCommand())

	return cmd
}

// depsParseCommand creates the "deps parse" subcommand.
func (c *CLI) depsParseCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <dependency>...",
		Short: "Decode dependency strings without contacting the mod portal",
		Example: `  factoriogen deps parse "? flib >= 0.14.0" base
  factoriogen deps parse --json "! old-mod"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, res := validate.Decode(args)
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				if err := enc.Encode(depViews(deps)); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			} else {
				for _, d := range deps {
					printDependency(d)
				}
			}
			printFindings(res)
			if res.HasErrors() {
				return errInvalidDependencies
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print decoded dependencies as JSON")
	return cmd
}

// depsCheckCommand creates the "deps check" subcommand.
func (c *CLI) depsCheckCommand() *cobra.Command {
	var (
		sequential bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "check <dependency>...",
		Short: "Check dependency strings against the mod portal",
		Example: `  factoriogen deps check "flib >= 0.14.0" "? some-mod"
  factoriogen deps check --sequential base quality "space-age"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.validateOptions()
			if cmd.Flags().Changed("sequential") {
				opts.Sequential = sequential
			}
			if cmd.Flags().Changed("strict") {
				opts.Strict = strict
			}

			printInfo("Checking %d dependencies against %s", len(args), StyleHighlight.Render(c.Config.RegistryURL))
			prog := newProgress(loggerFromContext(ctx))
			res := c.newValidator().ValidateStrings(ctx, args, opts)
			if err := ctx.Err(); err != nil {
				return err
			}
			prog.done("check finished",
				"errors", len(res.Errors),
				"warnings", len(res.Warnings))

			printFindings(res)
			switch {
			case res.HasErrors():
				return errInvalidDependencies
			case res.HasWarnings() || res.Skipped:
				printSuccess("No errors (with warnings)")
			default:
				printSuccess("All dependencies are available")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sequential, "sequential", false, "look up dependencies one at a time")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat mod portal warnings as errors")
	return cmd
}

// depView is the structured JSON form printed by "deps parse --json".
type depView struct {
	Raw      string `json:"raw"`
	Name     string `json:"name"`
	Relation string `json:"relation,omitempty"`
	Compare  string `json:"compare,omitempty"`
	Version  string `json:"version,omitempty"`
	Optional bool   `json:"optional"`
}

func depViews(deps []dependency.Dependency) []depView {
	out := make([]depView, len(deps))
	for i, d := range deps {
		out[i] = depView{
			Raw:      d.String(),
			Name:     d.Name,
			Relation: string(d.Relation),
			Compare:  string(d.Compare),
			Optional: d.IsOptional(),
		}
		if d.Version != nil {
			out[i].Version = d.Version.String()
		}
	}
	return out
}

// printDependency prints the decoded fields of d.
func printDependency(d dependency.Dependency) {
	printSuccess("%s", StyleHighlight.Render(d.String()))
	printKeyValue("  name", d.Name)
	printKeyValue("  relation", relationLabel(d.Relation))
	if d.HasConstraint() {
		printKeyValue("  version", fmt.Sprintf("%s %s", d.Compare, d.Version))
	}
}

func relationLabel(r dependency.Relation) string {
	switch r {
	case dependency.Incompatible:
		return "incompatible (!)"
	case dependency.Optional:
		return "optional (?)"
	case dependency.HiddenOptional:
		return "hidden optional ((?))"
	case dependency.Unordered:
		return "no load order (~)"
	}
	return "required"
}
