package migrator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
	migrate "github.com/rubenv/sql-migrate"

	"github.com/frain-dev/hypertable/database"
)

const dialect = "postgres"

type Migrator struct {
	dbx *sqlx.DB
	src migrate.MigrationSource
	set migrate.MigrationSet
}

// New returns a Migrator applying the sql-migrate files found in dir and
// tracking them in table.
func New(d database.Database, dir, table string) *Migrator {
	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	return &Migrator{
		dbx: d.GetDB(),
		src: migrations,
		set: migrate.MigrationSet{TableName: table},
	}
}

// Up applies at most max pending migrations, all of them when max is 0.
func (m *Migrator) Up(max int) (int, error) {
	return m.set.ExecMax(m.dbx.DB, dialect, m.src, migrate.Up, max)
}

// Down rolls back at most max applied migrations.
func (m *Migrator) Down(max int) (int, error) {
	return m.set.ExecMax(m.dbx.DB, dialect, m.src, migrate.Down, max)
}

// WriteFile writes up and down as a new sql-migrate file in dir and returns
// its path. The file is parsed back before it is written so a malformed
// migration never lands on disk.
func WriteFile(dir string, up, down []string) (string, error) {
	if len(up) == 0 {
		return "", fmt.Errorf("migration has no up statements")
	}

	var buf bytes.Buffer
	buf.WriteString("-- +migrate Up\n")
	writeStatements(&buf, up)
	buf.WriteString("\n-- +migrate Down\n")
	writeStatements(&buf, down)

	name := fileName()

	if _, err := migrate.ParseMigration(name, bytes.NewReader(buf.Bytes())); err != nil {
		return "", fmt.Errorf("generated migration is invalid: %v", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}

	return path, nil
}

// Create writes an empty migration file, ready to be filled in by hand.
func Create(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fileName())
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	lines := []string{"-- +migrate Up", "-- +migrate Down"}
	for _, line := range lines {
		if _, err = f.WriteString(line + "\n\n"); err != nil {
			return "", err
		}
	}

	return path, nil
}

// fileName sorts by creation time and stays unique within the same second.
func fileName() string {
	return fmt.Sprintf("%d_%s.sql", time.Now().Unix(), strings.ToLower(ulid.Make().String()))
}

func writeStatements(buf *bytes.Buffer, statements []string) {
	for _, s := range statements {
		s = strings.TrimSpace(s)
		if !strings.HasSuffix(s, ";") {
			s += ";"
		}
		buf.WriteString(s + "\n")
	}
}
