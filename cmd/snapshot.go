package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/apimockgen/pkg/action/snapshot"
	"github.com/cmmoran/apimockgen/pkg/render"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var manifestPath string

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "inspect recorded fixture snapshots",
		Long: `Fixtures generated with --snapshot-version are recorded in a manifest together
with the seed that produced them. The snapshot commands list and compare them.`,
	}
	snapshotCmd.PersistentFlags().StringVar(&manifestPath, "manifest", defaultManifest, "snapshot manifest")

	var listFormat string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := render.ParseFormat(listFormat)
			if err != nil {
				return err
			}
			if format == render.FormatGo {
				return fmt.Errorf("%w: %q is not supported for listing", render.ErrUnknownFormat, listFormat)
			}
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}
			return render.Render(c.OutOrStdout(), m, render.Options{Format: format})
		},
	}
	listCmd.Flags().StringVar(&listFormat, "format", string(render.FormatYAML), "output format (json, yaml)")

	diffCmd := &cobra.Command{
		Use:   "diff <name>",
		Short: "compare the latest snapshot of a fixture with the previous one",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			diff, err := snapshot.Diff(manifestPath, args[0])
			if err != nil {
				return err
			}
			if diff == "" {
				_, err = fmt.Fprintln(c.OutOrStdout(), "no differences")
				return err
			}
			_, err = fmt.Fprint(c.OutOrStdout(), diff)
			return err
		},
	}

	snapshotCmd.AddCommand(listCmd, diffCmd)
	return snapshotCmd
}
