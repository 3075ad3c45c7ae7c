package cli

import (
	"context"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/frain-dev/hypertable/config"
	"github.com/frain-dev/hypertable/database/postgres"
	"github.com/frain-dev/hypertable/pkg/log"
)

// App is the core dependency of the entire binary.
type App struct {
	Version string
	Config  config.Configuration
	Logger  *log.Logger
}

// OpenDB connects to the configured database. Commands that only render SQL
// never call it.
func (a *App) OpenDB() (*postgres.Postgres, error) {
	return postgres.NewDB(a.Config)
}

// Log returns the logger configured for the run, or the default logger
// before the configuration is loaded.
func (a *App) Log() log.StdLogger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.FromContext(context.Background())
}

type HypertableCli struct {
	cmd *cobra.Command
}

func NewCli(app *App) *HypertableCli {
	cmd := &cobra.Command{
		Use:           "hypertable",
		Version:       app.Version,
		Short:         "Convert tables into TimescaleDB hypertables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return &HypertableCli{cmd: cmd}
}

func (c *HypertableCli) Flags() *flag.FlagSet {
	return c.cmd.PersistentFlags()
}

func (c *HypertableCli) PersistentPreRunE(fn func(*cobra.Command, []string) error) {
	c.cmd.PersistentPreRunE = fn
}

func (c *HypertableCli) AddCommand(subCmd *cobra.Command) {
	c.cmd.AddCommand(subCmd)
}

func (c *HypertableCli) Command() *cobra.Command {
	return c.cmd
}

func (c *HypertableCli) Execute() error {
	return c.cmd.Execute()
}
