package rowcount

import (
	"github.com/spf13/cobra"

	"github.com/frain-dev/hypertable/internal/pkg/cli"
)

func AddRowCountCommand(a *cli.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rowcount <relation>",
		Short: "Print the approximate number of rows of a hypertable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.OpenDB()
			if err != nil {
				return err
			}

			defer db.Close()

			n, err := db.ApproximateRowCount(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cmd.Println(n)
			return nil
		},
	}

	return cmd
}
