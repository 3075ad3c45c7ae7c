// Package schema compiles hypertable partitioning options into the
// administrative statement TimescaleDB expects, and drives the optional table
// creation step that precedes it.
//
// Values rendered as quoted strings (schema names, prefixes, function names,
// partitioning columns) are interpolated verbatim. They are expected to come
// from migration authors, never from end users: no escaping of embedded quotes
// is performed.
package schema

import (
	"context"
	"errors"
)

// Options are the caller supplied named options for a hypertable. Keys not
// recognized as hypertable attributes are handed to the table builder only.
type Options map[string]interface{}

// Row is a single result row returned by an Executor.
type Row map[string]interface{}

// Executor runs a single SQL statement.
type Executor interface {
	Execute(ctx context.Context, statement string) ([]Row, error)
}

// TableBuilder creates a relation from a column definition block.
type TableBuilder interface {
	CreateTable(ctx context.Context, relation string, args Options, block TableBlock) error
}

// TableBlock defines the columns of a relation being created.
type TableBlock func(t *TableDefinition)

const (
	PartitioningColumnKey    = "partitioning_column"
	NumberPartitionsKey      = "number_partitions"
	ChunkTimeIntervalKey     = "chunk_time_interval"
	CreateDefaultIndexesKey  = "create_default_indexes"
	IfNotExistsKey           = "if_not_exists"
	PartitioningFuncKey      = "partitioning_func"
	AssociatedSchemaNameKey  = "associated_schema_name"
	AssociatedTablePrefixKey = "associated_table_prefix"
	MigrateDataKey           = "migrate_data"
	TimePartitioningFuncKey  = "time_partitioning_func"
	ReplicationFactorKey     = "replication_factor"
	DataNodesKey             = "data_nodes"
	DistributedKey           = "distributed"
)

const (
	DefaultTimeColumn            = "created_at"
	DefaultChunkTimeInterval     = "7 days"
	DefaultAssociatedSchemaName  = "_timescaledb_internal"
	DefaultAssociatedTablePrefix = "_hyper"
)

var (
	ErrEmptyRelation     = errors.New("relation name cannot be empty")
	ErrInvalidOptionType = errors.New("invalid hypertable option type")
)

// Copy returns a shallow copy of o.
func (o Options) Copy() Options {
	c := make(Options, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}
