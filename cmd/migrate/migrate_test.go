package migrate

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frain-dev/hypertable/internal/pkg/cli"
	"github.com/frain-dev/hypertable/pkg/log"
)

func TestCreateCommand_LogsThroughAppLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		wantLog bool
	}{
		{name: "should log at info level", level: log.InfoLevel, wantLog: true},
		{name: "should stay quiet at error level", level: log.ErrorLevel, wantLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := &bytes.Buffer{}
			lo := log.NewLogger(logs)
			lo.SetLevel(tt.level)

			a := &cli.App{Logger: lo}
			a.Config.Migrations.Dir = t.TempDir()

			cmd := AddMigrateCommand(a)
			out := &bytes.Buffer{}
			cmd.SetOut(out)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs([]string{"create"})

			require.NoError(t, cmd.Execute())

			path := strings.TrimSpace(out.String())
			_, err := os.Stat(path)
			require.NoError(t, err)

			if tt.wantLog {
				require.Contains(t, logs.String(), "migration created")
				require.Contains(t, logs.String(), path)
			} else {
				require.Empty(t, logs.String())
			}
		})
	}
}
