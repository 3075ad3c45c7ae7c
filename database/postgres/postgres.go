package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/frain-dev/hypertable/config"
	"github.com/frain-dev/hypertable/database"
	"github.com/frain-dev/hypertable/pkg/log"
	"github.com/frain-dev/hypertable/schema"
)

const pkgName = "postgres"

var (
	_ database.Database   = &Postgres{}
	_ schema.Executor     = &Postgres{}
	_ schema.TableBuilder = &Postgres{}
)

var ErrEmptyDsn = errors.New("database dsn cannot be empty")

type Postgres struct {
	dbx *sqlx.DB
}

func NewDB(cfg config.Configuration) (*Postgres, error) {
	dbConfig := cfg.Database

	dsn := dbConfig.BuildDsn()
	if dsn == "" {
		return nil, ErrEmptyDsn
	}

	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "[%s]: failed to open database", pkgName)
	}

	db.SetMaxOpenConns(dbConfig.SetMaxOpenConnections)
	db.SetMaxIdleConns(dbConfig.SetMaxIdleConnections)
	db.SetConnMaxLifetime(time.Duration(dbConfig.SetConnMaxLifetime) * time.Second)

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "[%s]: failed to ping database", pkgName)
	}

	return &Postgres{dbx: db}, nil
}

// New wraps an existing connection.
func New(db *sqlx.DB) *Postgres {
	return &Postgres{dbx: db}
}

func (p *Postgres) GetDB() *sqlx.DB {
	return p.dbx
}

func (p *Postgres) Close() error {
	return p.dbx.Close()
}

// Execute runs statement and scans every returned row into a map keyed by
// column name.
func (p *Postgres) Execute(ctx context.Context, statement string) ([]schema.Row, error) {
	rows, err := p.dbx.QueryxContext(ctx, statement)
	if err != nil {
		return nil, err
	}
	defer closeWithError(rows)

	var result []schema.Row
	for rows.Next() {
		row := map[string]interface{}{}
		if err = rows.MapScan(row); err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// CreateTable creates relation and its indexes from block in a single
// transaction.
func (p *Postgres) CreateTable(ctx context.Context, relation string, args schema.Options, block schema.TableBlock) error {
	opts, err := schema.NewTableOptions(args)
	if err != nil {
		return err
	}

	tx, err := p.dbx.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer rollbackTx(tx)

	for _, statement := range schema.Define(block).ToSQL(relation, opts) {
		log.FromContext(ctx).Debug(statement)

		if _, err = tx.ExecContext(ctx, statement); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ApproximateRowCount estimates the number of rows in table from catalog
// statistics. It works for plain tables, hypertables and distributed
// hypertables.
func (p *Postgres) ApproximateRowCount(ctx context.Context, table string) (int64, error) {
	var count int64
	err := p.dbx.GetContext(ctx, &count, schema.ApproximateRowCountQuery, table)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func rollbackTx(tx *sqlx.Tx) {
	err := tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.WithError(err).Error("failed to rollback tx")
	}
}

func closeWithError(rows *sqlx.Rows) {
	if err := rows.Close(); err != nil {
		log.WithError(err).Error("failed to close rows")
	}
}
