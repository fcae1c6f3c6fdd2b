package cli

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/factoriogen/pkg/pipeline"
)

// errGenerateFailed is returned when a run ends with error status. The
// individual findings have already been printed.
var errGenerateFailed = errors.New("info.json was not generated")

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	input      string
	output     string
	validate   bool
	noValidate bool
	sequential bool
	strict     bool
	timeout    time.Duration
}

// pipelineOptions merges flags, positional args and config into run options.
// Flags win over positional args, which win over defaults.
func (o *generateOpts) pipelineOptions(cmd *cobra.Command, args []string, cfg Config) pipeline.Options {
	opts := pipeline.Options{
		Input:          o.input,
		Output:         o.output,
		SkipValidation: !cfg.ValidateDependencies,
		Sequential:     !cfg.Parallel,
		Strict:         cfg.Strict,
		Timeout:        cfg.ValidationTimeout.Duration,
	}
	if opts.Input == "" && len(args) > 0 {
		opts.Input = args[0]
	}
	if opts.Output == "" && len(args) > 1 {
		opts.Output = args[1]
	}

	flags := cmd.Flags()
	if flags.Changed("validate-dependencies") {
		opts.SkipValidation = !o.validate
	}
	if flags.Changed("no-validate-dependencies") {
		opts.SkipValidation = o.noValidate
	}
	if flags.Changed("sequential") {
		opts.Sequential = o.sequential
	}
	if flags.Changed("strict") {
		opts.Strict = o.strict
	}
	if flags.Changed("timeout") {
		opts.Timeout = o.timeout
	}
	return opts
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [input] [output]",
		Short: "Generate info.json from package.json",
		Long: `Generate a Factorio info.json from the package.json of a mod project.

The manifest is checked offline first. Fields the game would reject are
errors; fields the mod portal would reject are warnings. Dependencies are
then looked up on the mod portal unless disabled. The output is written
unless an error was found.

Examples:
  factoriogen generate                              # package.json -> info.json
  factoriogen generate my-package.json              # my-package.json -> info.json
  factoriogen generate package.json mod-info.json
  factoriogen generate -i package.json -o dist/info.json --no-validate-dependencies`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runOpts := opts.pipelineOptions(cmd, args, c.Config)
			return c.runGenerate(cmd, runOpts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "input package.json file (default: package.json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output info.json file (default: info.json)")
	cmd.Flags().BoolVar(&opts.validate, "validate-dependencies", true, "validate dependencies against the mod portal")
	cmd.Flags().BoolVar(&opts.noValidate, "no-validate-dependencies", false, "skip dependency validation")
	cmd.Flags().BoolVar(&opts.sequential, "sequential", false, "look up dependencies one at a time")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat mod portal warnings as errors")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", pipeline.DefaultTimeout, "time budget for dependency validation")
	cmd.MarkFlagsMutuallyExclusive("validate-dependencies", "no-validate-dependencies")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts pipeline.Options) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if opts.Input == "" {
		opts.Input = pipeline.DefaultInput
	}
	if abs, err := filepath.Abs(opts.Input); err == nil {
		opts.Input = abs
	}
	printInfo("Reading %s", StyleHighlight.Render(opts.Input))

	prog := newProgress(logger)
	result, err := c.newRunner().Generate(ctx, opts)
	if err != nil {
		return err
	}

	printReport(result.Manifest)
	printFindings(result.Dependencies)

	switch result.Status {
	case pipeline.StatusError:
		return errGenerateFailed
	case pipeline.StatusWarning:
		printSuccess("Generated info.json (with warnings)")
	default:
		printSuccess("Generated info.json")
	}
	printFile(result.Written)
	prog.done("generation finished", "run", result.RunID, "status", result.Status)
	return nil
}
