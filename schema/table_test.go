package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableDefinition_ToSQL(t *testing.T) {
	tests := []struct {
		name     string
		relation string
		args     Options
		block    TableBlock
		want     []string
	}{
		{
			name:     "should create table with id column",
			relation: "check_ins",
			args:     Options{},
			block: func(t *TableDefinition) {
				t.String("name", NotNull())
			},
			want: []string{
				`CREATE TABLE "check_ins" ("id" bigserial PRIMARY KEY, "name" character varying NOT NULL)`,
			},
		},
		{
			name:     "should skip id column and add indexes",
			relation: "check_ins",
			args:     Options{"id": false},
			block: func(t *TableDefinition) {
				t.References("user")
				t.Datetime("checked_in_at", NotNull(), WithIndex())
				t.Timestamps()
			},
			want: []string{
				`CREATE TABLE "check_ins" ("user_id" bigint, "checked_in_at" timestamp(6) without time zone NOT NULL, "created_at" timestamp(6) without time zone NOT NULL, "updated_at" timestamp(6) without time zone NOT NULL)`,
				`CREATE INDEX "index_check_ins_on_user_id" ON "check_ins" ("user_id")`,
				`CREATE INDEX "index_check_ins_on_checked_in_at" ON "check_ins" ("checked_in_at")`,
			},
		},
		{
			name:     "should honour if_not_exists and composite keys",
			relation: "public.conditions",
			args:     Options{"id": false, IfNotExistsKey: true, PartitioningColumnKey: "location"},
			block: func(t *TableDefinition) {
				t.Timestamptz("time", NotNull(), PrimaryKey())
				t.Text("location", NotNull(), PrimaryKey())
				t.Float("temperature", Default("0"))
				t.Index("location", "time")
			},
			want: []string{
				`CREATE TABLE IF NOT EXISTS "public"."conditions" ("time" timestamp with time zone NOT NULL, "location" text NOT NULL, "temperature" double precision DEFAULT 0, PRIMARY KEY ("time", "location"))`,
				`CREATE INDEX IF NOT EXISTS "index_public_conditions_on_location_and_time" ON "public"."conditions" ("location", "time")`,
			},
		},
		{
			name:     "should rename primary key and create temporary table",
			relation: "events",
			args:     Options{"primary_key": "event_id", "temporary": true},
			block: func(t *TableDefinition) {
				t.JSONB("payload")
				t.Boolean("processed", Default("false"))
			},
			want: []string{
				`CREATE TEMPORARY TABLE "events" ("event_id" bigserial PRIMARY KEY, "payload" jsonb, "processed" boolean DEFAULT false)`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := NewTableOptions(tt.args)
			require.NoError(t, err)

			require.Equal(t, tt.want, Define(tt.block).ToSQL(tt.relation, opts))
		})
	}
}

func TestNewTableOptions(t *testing.T) {
	opts, err := NewTableOptions(nil)
	require.NoError(t, err)
	require.Equal(t, TableOptions{ID: true, PrimaryKey: "id"}, opts)

	_, err = NewTableOptions(Options{"id": "nope"})
	require.Error(t, err)
}

func TestTableDefinition_Columns(t *testing.T) {
	def := Define(func(t *TableDefinition) {
		t.Integer("count")
		t.BigInt("total", NotNull())
	})

	cols := def.Columns()
	require.Len(t, cols, 2)
	require.Equal(t, Column{Name: "total", Type: "bigint", NotNull: true}, cols[1])

	cols[0].Name = "changed"
	require.Equal(t, "count", def.Columns()[0].Name)
}

func TestAggregates(t *testing.T) {
	require.Equal(t, `first("temperature", "time")`, First("temperature", "time"))
	require.Equal(t, `last("temperature", "time")`, Last("temperature", "time"))
	require.Equal(t, `histogram("temperature", 0, 100, 5)`, Histogram("temperature", 0, 100, 5))
}

func TestDropTableStatement(t *testing.T) {
	require.Equal(t, `DROP TABLE IF EXISTS "check_ins"`, DropTableStatement("check_ins"))
	require.Equal(t, `DROP TABLE IF EXISTS "metrics"."check_ins"`, DropTableStatement("metrics.check_ins"))
}
