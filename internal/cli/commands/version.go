package commands

import (
	"fmt"

	"github.com/leapstack-labs/docbundle/internal/release"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the docbundle version, optionally comparing it with the latest published release.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "docbundle v%s\n", version)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Reproduction bundler for LeapDocs sites")
			if !check {
				return nil
			}

			latest, err := release.NewClient().Latest(cmd.Context(), release.LatestURL)
			if err != nil {
				return fmt.Errorf("resolve latest release: %w", err)
			}
			if release.IsCurrent(version, latest) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Up to date")
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Update available: %s\n", latest)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Compare with the latest published release")
	return cmd
}
