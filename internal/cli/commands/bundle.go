package commands

import (
	"fmt"

	"github.com/leapstack-labs/docbundle/internal/bundler"
	"github.com/spf13/cobra"
)

// BundleOptions holds flag values for the bundle command.
type BundleOptions struct {
	Serve bool
	Label string
}

// NewBundleCommand creates the bundle command.
func NewBundleCommand(version string) *cobra.Command {
	opts := &BundleOptions{}
	cmd := &cobra.Command{
		Use:   "bundle [config-file]",
		Short: "Validate the project and create a reproduction archive",
		Long: `Collect every file the site generator reads, validate that the file
set is self-contained, and package it into a single archive together
with environment metadata, ready to attach to a bug report.

The run aborts with remediation guidance when project paths escape the
working directory, when the installed version is stale, or when theme
overrides or hooks are active. After a successful bundle the command
exits with a non-zero status on purpose: the host pipeline must not
proceed to a full site build.`,
		Example: `  # Bundle the project described by ./leapdocs.yml
  docbundle bundle

  # Bundle a specific config, naming the archive non-interactively
  docbundle bundle docs/leapdocs.yml --label "broken nav on mobile"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBundle(cmd, args, opts, version)
		},
	}

	cmd.Flags().BoolVar(&opts.Serve, "serve", false, "Mark this run as invoked from interactive preview mode")
	cmd.Flags().StringVar(&opts.Label, "label", "", "Archive label (skips the interactive prompt)")

	return cmd
}

func runBundle(cmd *cobra.Command, args []string, opts *BundleOptions, version string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	configFile := siteConfigArg(args)
	if configFile == "" {
		return fmt.Errorf("no generator config found; pass a config file or create leapdocs.yml")
	}

	b := bundler.New(bundler.Options{
		ConfigFile:      configFile,
		Serve:           opts.Serve,
		Enabled:         cfg.Enabled,
		EnabledOnServe:  cfg.EnabledOnServe,
		Archive:         cfg.Archive,
		StopOnViolation: cfg.ArchiveStopOnViolation,
		RootDir:         cfg.RootDir,
		Version:         version,
		ReleasesURL:     cfg.ReleasesURL,
		Label:           opts.Label,
	}, cmdCtx.Logger, cmdCtx.Renderer)

	outcome, err := b.Run(cmd.Context())
	if err != nil {
		return err
	}

	switch outcome {
	case bundler.OutcomeSkipped:
		cmdCtx.Logger.Debug("bundler disabled, nothing to do")
		return nil
	default:
		// Bundled, checked and aborted runs all terminate the host
		// pipeline; the bundler already rendered its output.
		return ErrStopPipeline
	}
}
