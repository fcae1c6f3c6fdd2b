// Package cli implements the factoriogen command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/factoriogen/pkg/buildinfo"
	"github.com/matzehuels/factoriogen/pkg/integrations/modportal"
	"github.com/matzehuels/factoriogen/pkg/pipeline"
	"github.com/matzehuels/factoriogen/pkg/validate"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "factoriogen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger and default config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Generate and check Factorio mod info.json files",
		Long: `factoriogen builds a Factorio info.json from the package.json of a mod
project and checks its dependencies against the Factorio mod portal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			if cfg.path != "" {
				c.Logger.Debug("loaded config", "path", cfg.path)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./"+configFileName+" or $XDG_CONFIG_HOME/"+appName+"/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// newValidator creates a portal-backed validator from the current config.
func (c *CLI) newValidator() *validate.Validator {
	client := modportal.NewClient(modportal.Options{
		BaseURL: c.Config.RegistryURL,
		Timeout: c.Config.RequestTimeout.Duration,
	})
	return validate.New(client, c.Config.BuiltinMods...)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.newValidator(), c.Logger)
}

// validateOptions maps config onto batch validation options.
func (c *CLI) validateOptions() validate.Options {
	return validate.Options{
		Sequential: !c.Config.Parallel,
		Timeout:    c.Config.ValidationTimeout.Duration,
		Strict:     c.Config.Strict,
		Logger:     c.Logger,
	}
}
