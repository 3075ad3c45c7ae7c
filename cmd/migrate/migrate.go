package migrate

import (
	"github.com/spf13/cobra"

	"github.com/frain-dev/hypertable/internal/pkg/cli"
	"github.com/frain-dev/hypertable/internal/pkg/migrator"
	"github.com/frain-dev/hypertable/pkg/log"
)

func AddMigrateCommand(a *cli.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Hypertable migrations",
	}

	cmd.AddCommand(addUpCommand(a))
	cmd.AddCommand(addDownCommand(a))
	cmd.AddCommand(addCreateCommand(a))

	return cmd
}

func addUpCommand(a *cli.App) *cobra.Command {
	var maxUp int

	cmd := &cobra.Command{
		Use:     "up",
		Aliases: []string{"migrate-up"},
		Short:   "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.OpenDB()
			if err != nil {
				return err
			}

			defer db.Close()

			m := migrator.New(db, a.Config.Migrations.Dir, a.Config.Migrations.Table)
			n, err := m.Up(maxUp)
			if err != nil {
				a.Log().WithError(err).Error("migration up failed")
				return err
			}

			a.Log().WithFields(log.Fields{"count": n}).Info("migration up succeeded")
			return nil
		},
	}

	cmd.Flags().IntVar(&maxUp, "max", 0, "The maximum number of migrations to apply, 0 applies all")

	return cmd
}

func addDownCommand(a *cli.App) *cobra.Command {
	var maxDown int

	cmd := &cobra.Command{
		Use:     "down",
		Aliases: []string{"migrate-down"},
		Short:   "Rollback migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.OpenDB()
			if err != nil {
				return err
			}

			defer db.Close()

			m := migrator.New(db, a.Config.Migrations.Dir, a.Config.Migrations.Table)
			n, err := m.Down(maxDown)
			if err != nil {
				a.Log().WithError(err).Error("migration down failed")
				return err
			}

			a.Log().WithFields(log.Fields{"count": n}).Info("migration down succeeded")
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDown, "max", 1, "The maximum number of migrations to rollback")

	return cmd
}

func addCreateCommand(a *cli.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"migrate-create"},
		Short:   "creates a new migration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := migrator.Create(a.Config.Migrations.Dir)
			if err != nil {
				return err
			}

			a.Log().WithFields(log.Fields{"path": path}).Info("migration created")
			cmd.Println(path)
			return nil
		},
	}

	return cmd
}
