package apply

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/frain-dev/hypertable/internal/pkg/cli"
	"github.com/frain-dev/hypertable/manifest"
)

func AddApplyCommand(a *cli.App) *cobra.Command {
	var file string
	var dryRun bool
	var writeMigration bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create every hypertable listed in a manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("a manifest file is required, use -f")
			}

			mode, err := cli.ModeFromFlags(dryRun, writeMigration)
			if err != nil {
				return err
			}

			mf, err := manifest.Load(file)
			if err != nil {
				return err
			}

			return a.Run(cmd.Context(), mf, mode, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Manifest file listing the hypertables")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the statements instead of running them")
	cmd.Flags().BoolVar(&writeMigration, "write-migration", false, "Write the statements to a new migration file")

	return cmd
}
