package apply

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frain-dev/hypertable/internal/pkg/cli"
)

const testManifest = `hypertables:
  - relation: conditions
    time_column: time
    options:
      chunk_time_interval: 1 day
`

func writeManifest(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hypertables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0o644))
	return path
}

func TestApplyCommand(t *testing.T) {
	cmd := AddApplyCommand(&cli.App{})

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"-f", writeManifest(t), "--dry-run"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "SELECT * FROM create_hyper_table('conditions', 'time', if_not_exists => false, associated_schema_name => '_timescaledb_internal', associated_table_prefix => '_hyper', migrate_data => false, chunk_time_interval => INTERVAL '1 day');\n", out.String())
}

func TestApplyCommand_WriteMigration(t *testing.T) {
	a := &cli.App{}
	a.Config.Migrations.Dir = t.TempDir()
	cmd := AddApplyCommand(a)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"-f", writeManifest(t), "--write-migration"})

	require.NoError(t, cmd.Execute())

	b, err := os.ReadFile(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.Contains(t, string(b), "create_hyper_table('conditions', 'time'")
}

func TestApplyCommand_MissingFile(t *testing.T) {
	cmd := AddApplyCommand(&cli.App{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dry-run"})

	require.Error(t, cmd.Execute())
}
