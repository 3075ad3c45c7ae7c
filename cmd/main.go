package main

import (
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/frain-dev/hypertable/cmd/apply"
	"github.com/frain-dev/hypertable/cmd/create"
	"github.com/frain-dev/hypertable/cmd/migrate"
	"github.com/frain-dev/hypertable/cmd/rowcount"
	"github.com/frain-dev/hypertable/cmd/version"
	"github.com/frain-dev/hypertable/config"
	"github.com/frain-dev/hypertable/internal/pkg/cli"
	"github.com/frain-dev/hypertable/pkg/log"
)

// Version is set at build time.
var Version = "dev"

func main() {
	err := os.Setenv("TZ", "") // Use UTC by default :)
	if err != nil {
		log.Fatal("failed to set env - ", err)
	}

	app := &cli.App{Version: Version}
	c := cli.NewCli(app)

	var configFile string
	var logLevel string

	c.Flags().StringVar(&configFile, "config", config.DefaultConfigFile, "Configuration file for hypertable")
	c.Flags().StringVar(&logLevel, "log-level", "", "Log level, overrides the configuration file")

	c.PersistentPreRunE(preRun(app, &configFile, &logLevel))

	c.AddCommand(version.AddVersionCommand())
	c.AddCommand(create.AddCreateCommand(app))
	c.AddCommand(create.AddCreateDistributedCommand(app))
	c.AddCommand(apply.AddApplyCommand(app))
	c.AddCommand(migrate.AddMigrateCommand(app))
	c.AddCommand(rowcount.AddRowCountCommand(app))

	if err := c.Execute(); err != nil {
		log.Fatal(err)
	}
}

func preRun(app *cli.App, configFile, logLevel *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.LoadConfig(*configFile)
		if err != nil {
			return err
		}

		cfg, err := config.Get()
		if err != nil {
			return err
		}

		if *logLevel != "" {
			cfg.Logger.Level = *logLevel
		}

		lvl, err := log.ParseLevel(cfg.Logger.Level)
		if err != nil {
			return err
		}

		lo := log.NewTextLogger(os.Stderr)
		lo.SetLevel(lvl)

		app.Config = cfg
		app.Logger = lo

		return nil
	}
}
