// Package commands implements the docbundle subcommands.
package commands

import (
	"errors"
	"log/slog"

	"github.com/leapstack-labs/docbundle/internal/cli/config"
	"github.com/leapstack-labs/docbundle/internal/cli/output"
	"github.com/spf13/cobra"
)

// ErrStopPipeline signals a deliberate non-zero exit after the command
// already rendered its own output: a finished bundle (the host pipeline
// must not continue to a full site build) or an aborted validation.
var ErrStopPipeline = errors.New("pipeline stopped")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the per-command dependencies from the
// command context populated by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetCurrentConfig()
	if cfg == nil {
		cfg = &config.Config{
			Enabled:                true,
			Archive:                true,
			ArchiveStopOnViolation: true,
			OutputFormat:           config.DefaultOutput,
		}
	}
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// siteConfigArg resolves the generator config path from the positional
// argument, falling back to leapdocs.yml in the working directory.
func siteConfigArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.FindSiteConfig()
}
