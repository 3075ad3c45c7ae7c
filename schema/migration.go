package schema

import (
	"context"

	"github.com/frain-dev/hypertable/pkg/log"
)

// Migration converts relations into hypertables during a migration run.
type Migration struct {
	Executor Executor
	Builder  TableBuilder
}

func NewMigration(executor Executor, builder TableBuilder) *Migration {
	return &Migration{Executor: executor, Builder: builder}
}

// CreateHyperTable converts relation into a hypertable partitioned on
// timeColumn. When block is not nil the relation is created first from the
// columns it defines, otherwise relation must already exist.
//
//	m.CreateHyperTable(ctx, "check_ins", "checked_in_at", schema.Options{"id": false}, func(t *schema.TableDefinition) {
//		t.References("user")
//		t.Datetime("checked_in_at", schema.NotNull(), schema.WithIndex())
//		t.Timestamps()
//	})
//
// Errors from the table builder or the executor are returned as is.
func (m *Migration) CreateHyperTable(ctx context.Context, relation, timeColumn string, opts Options, block TableBlock) ([]Row, error) {
	if relation == "" {
		return nil, ErrEmptyRelation
	}

	h, err := NewHypertableOptions(timeColumn, opts)
	if err != nil {
		return nil, err
	}

	logger := log.FromContext(ctx).WithFields(log.Fields{
		"relation":    relation,
		"time_column": h.TimeColumn(),
	})

	if block != nil {
		if err = m.Builder.CreateTable(ctx, relation, h.Args(), block); err != nil {
			logger.WithError(err).Error("failed to create table")
			return nil, err
		}
	}

	statement := h.Statement(relation)
	logger.Debug(statement)

	rows, err := m.Executor.Execute(ctx, statement)
	if err != nil {
		logger.WithError(err).Error("failed to create hypertable")
	}

	return rows, err
}

// CreateDistributedHyperTable is CreateHyperTable with distributed forced to
// true, whatever the caller passed for it.
func (m *Migration) CreateDistributedHyperTable(ctx context.Context, relation, timeColumn string, opts Options, block TableBlock) ([]Row, error) {
	o := opts.Copy()
	o[DistributedKey] = true
	return m.CreateHyperTable(ctx, relation, timeColumn, o, block)
}
