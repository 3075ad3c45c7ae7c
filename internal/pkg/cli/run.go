package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/oklog/ulid/v2"

	"github.com/frain-dev/hypertable/database/dryrun"
	"github.com/frain-dev/hypertable/internal/pkg/migrator"
	"github.com/frain-dev/hypertable/manifest"
	"github.com/frain-dev/hypertable/pkg/log"
	"github.com/frain-dev/hypertable/schema"
)

type Mode int

const (
	// ExecuteMode runs the statements against the configured database.
	ExecuteMode Mode = iota
	// DryRunMode prints the statements without connecting.
	DryRunMode
	// WriteMigrationMode writes the statements as a sql-migrate file.
	WriteMigrationMode
)

func ModeFromFlags(dryRun, writeMigration bool) (Mode, error) {
	switch {
	case dryRun && writeMigration:
		return 0, fmt.Errorf("--dry-run and --write-migration cannot be used together")
	case dryRun:
		return DryRunMode, nil
	case writeMigration:
		return WriteMigrationMode, nil
	}
	return ExecuteMode, nil
}

// Run applies every hypertable in mf according to mode, writing statements,
// file paths or results to out.
func (a *App) Run(ctx context.Context, mf *manifest.Manifest, mode Mode, out io.Writer) error {
	ctx = log.NewContext(ctx, a.Log(), log.Fields{"run_id": ulid.Make().String()})

	switch mode {
	case DryRunMode:
		r := dryrun.New()
		if err := mf.Apply(ctx, schema.NewMigration(r, r)); err != nil {
			return err
		}

		for _, s := range r.Statements() {
			if _, err := fmt.Fprintln(out, s+";"); err != nil {
				return err
			}
		}
		return nil

	case WriteMigrationMode:
		r := dryrun.New()
		if err := mf.Apply(ctx, schema.NewMigration(r, r)); err != nil {
			return err
		}

		path, err := migrator.WriteFile(a.Config.Migrations.Dir, r.Statements(), downStatements(mf))
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(out, path)
		return err
	}

	db, err := a.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec := &resultRecorder{Executor: db}
	if err = mf.Apply(ctx, schema.NewMigration(rec, db)); err != nil {
		return err
	}

	for _, row := range rec.rows {
		if _, err = fmt.Fprintln(out, formatRow(row)); err != nil {
			return err
		}
	}

	return nil
}

// downStatements drops, in reverse order, the tables the manifest creates.
// Converting an existing table into a hypertable cannot be reverted.
func downStatements(mf *manifest.Manifest) []string {
	var down []string
	for i := len(mf.Hypertables) - 1; i >= 0; i-- {
		h := mf.Hypertables[i]
		if len(h.Columns) > 0 {
			down = append(down, schema.DropTableStatement(h.Relation))
		}
	}
	return down
}

type resultRecorder struct {
	schema.Executor
	rows []schema.Row
}

func (r *resultRecorder) Execute(ctx context.Context, statement string) ([]schema.Row, error) {
	rows, err := r.Executor.Execute(ctx, statement)
	r.rows = append(r.rows, rows...)
	return rows, err
}

func formatRow(row schema.Row) string {
	return fmt.Sprintf("hypertable_id=%v schema_name=%v table_name=%v created=%v",
		row["hypertable_id"], row["schema_name"], row["table_name"], row["created"])
}
