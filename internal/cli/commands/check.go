package commands

import (
	"fmt"

	"github.com/leapstack-labs/docbundle/internal/bundler"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command: the validation stages of
// the pipeline without archive creation.
func NewCheckCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "check [config-file]",
		Short: "Validate the project layout without creating an archive",
		Long: `Run the containment validation and version checks that precede
bundling, reporting every violation with remediation guidance. No
archive is produced and a clean project exits with status zero.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			cfg := cmdCtx.Cfg

			configFile := siteConfigArg(args)
			if configFile == "" {
				return fmt.Errorf("no generator config found; pass a config file or create leapdocs.yml")
			}

			b := bundler.New(bundler.Options{
				ConfigFile:      configFile,
				Enabled:         true,
				Archive:         false,
				StopOnViolation: true,
				RootDir:         cfg.RootDir,
				Version:         version,
				ReleasesURL:     cfg.ReleasesURL,
			}, cmdCtx.Logger, cmdCtx.Renderer)

			outcome, err := b.Run(cmd.Context())
			if err != nil {
				return err
			}
			if outcome != bundler.OutcomeChecked {
				return ErrStopPipeline
			}
			cmdCtx.Renderer.Success("Project layout is valid")
			return nil
		},
	}
}
