package version

import (
	"github.com/spf13/cobra"
)

func AddVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "version",
		Short:             "Print the version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(cmd.Root().Version)
			return nil
		},
	}

	return cmd
}
