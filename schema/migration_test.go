package schema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/frain-dev/hypertable/mocks"
	"github.com/frain-dev/hypertable/schema"
)

const (
	checkInsStatement = "SELECT * FROM create_hyper_table('check_ins', 'checked_in_at', if_not_exists => false, associated_schema_name => '_timescaledb_internal', associated_table_prefix => '_hyper', migrate_data => false, chunk_time_interval => INTERVAL '7 days')"

	distributedCheckInsStatement = "SELECT * FROM create_hyper_table('check_ins', 'checked_in_at', if_not_exists => false, associated_schema_name => '_timescaledb_internal', associated_table_prefix => '_hyper', migrate_data => false, distributed => true, chunk_time_interval => INTERVAL '7 days')"
)

func provideMigration(ctrl *gomock.Controller) *schema.Migration {
	return schema.NewMigration(mocks.NewMockExecutor(ctrl), mocks.NewMockTableBuilder(ctrl))
}

func checkInsBlock(t *schema.TableDefinition) {
	t.Datetime("checked_in_at", schema.NotNull(), schema.WithIndex())
	t.Timestamps()
}

func TestMigration_CreateHyperTable(t *testing.T) {
	ctx := context.Background()
	errTableExists := errors.New(`relation "check_ins" already exists`)
	errNotEmpty := errors.New("table \"check_ins\" is not empty")

	type args struct {
		relation   string
		timeColumn string
		opts       schema.Options
		block      schema.TableBlock
	}

	tests := []struct {
		name     string
		args     args
		dbFn     func(m *schema.Migration)
		wantRows []schema.Row
		wantErr  error
	}{
		{
			name: "should only run the statement when no block is given",
			args: args{relation: "check_ins", timeColumn: "checked_in_at"},
			dbFn: func(m *schema.Migration) {
				b, _ := m.Builder.(*mocks.MockTableBuilder)
				b.EXPECT().CreateTable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

				e, _ := m.Executor.(*mocks.MockExecutor)
				e.EXPECT().Execute(gomock.Any(), checkInsStatement).
					Times(1).
					Return([]schema.Row{{"hypertable_id": int64(1), "created": true}}, nil)
			},
			wantRows: []schema.Row{{"hypertable_id": int64(1), "created": true}},
		},
		{
			name: "should create the table before the statement when a block is given",
			args: args{
				relation:   "check_ins",
				timeColumn: "checked_in_at",
				opts:       schema.Options{"id": false},
				block:      checkInsBlock,
			},
			dbFn: func(m *schema.Migration) {
				b, _ := m.Builder.(*mocks.MockTableBuilder)
				e, _ := m.Executor.(*mocks.MockExecutor)

				gomock.InOrder(
					b.EXPECT().CreateTable(gomock.Any(), "check_ins", gomock.Any(), gomock.Any()).
						Times(1).
						DoAndReturn(func(_ context.Context, _ string, args schema.Options, block schema.TableBlock) error {
							require.Equal(t, false, args["id"])
							require.Equal(t, schema.DefaultAssociatedSchemaName, args[schema.AssociatedSchemaNameKey])
							require.Len(t, schema.Define(block).Columns(), 3)
							return nil
						}),
					e.EXPECT().Execute(gomock.Any(), checkInsStatement).Times(1).Return(nil, nil),
				)
			},
		},
		{
			name: "should default the time column",
			args: args{relation: "check_ins"},
			dbFn: func(m *schema.Migration) {
				e, _ := m.Executor.(*mocks.MockExecutor)
				e.EXPECT().Execute(gomock.Any(), "SELECT * FROM create_hyper_table('check_ins', 'created_at', if_not_exists => false, associated_schema_name => '_timescaledb_internal', associated_table_prefix => '_hyper', migrate_data => false, chunk_time_interval => INTERVAL '7 days')").
					Times(1).
					Return(nil, nil)
			},
		},
		{
			name: "should not run the statement when table creation fails",
			args: args{relation: "check_ins", timeColumn: "checked_in_at", block: checkInsBlock},
			dbFn: func(m *schema.Migration) {
				b, _ := m.Builder.(*mocks.MockTableBuilder)
				b.EXPECT().CreateTable(gomock.Any(), "check_ins", gomock.Any(), gomock.Any()).
					Times(1).
					Return(errTableExists)

				e, _ := m.Executor.(*mocks.MockExecutor)
				e.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: errTableExists,
		},
		{
			name: "should return the executor error unmodified",
			args: args{relation: "check_ins", timeColumn: "checked_in_at"},
			dbFn: func(m *schema.Migration) {
				e, _ := m.Executor.(*mocks.MockExecutor)
				e.EXPECT().Execute(gomock.Any(), checkInsStatement).Times(1).Return(nil, errNotEmpty)
			},
			wantErr: errNotEmpty,
		},
		{
			name:    "should reject an empty relation",
			args:    args{timeColumn: "checked_in_at"},
			wantErr: schema.ErrEmptyRelation,
		},
		{
			name:    "should reject invalid option types before touching the database",
			args:    args{relation: "check_ins", opts: schema.Options{schema.NumberPartitionsKey: "two"}, block: checkInsBlock},
			wantErr: schema.ErrInvalidOptionType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := provideMigration(ctrl)
			if tt.dbFn != nil {
				tt.dbFn(m)
			}

			rows, err := m.CreateHyperTable(ctx, tt.args.relation, tt.args.timeColumn, tt.args.opts, tt.args.block)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantRows, rows)
		})
	}
}

func TestMigration_CreateHyperTable_ExactErrorIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	errRejected := errors.New("rejected")
	m := provideMigration(ctrl)
	m.Executor.(*mocks.MockExecutor).EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, errRejected)

	_, err := m.CreateHyperTable(context.Background(), "check_ins", "checked_in_at", nil, nil)
	require.True(t, err == errRejected)
}

func TestMigration_CreateDistributedHyperTable(t *testing.T) {
	tests := []struct {
		name string
		opts schema.Options
	}{
		{name: "should force distributed when omitted", opts: nil},
		{name: "should override an explicit false", opts: schema.Options{schema.DistributedKey: false}},
		{name: "should override an explicit null", opts: schema.Options{schema.DistributedKey: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := provideMigration(ctrl)
			m.Executor.(*mocks.MockExecutor).EXPECT().
				Execute(gomock.Any(), distributedCheckInsStatement).
				Times(1).
				Return(nil, nil)

			_, err := m.CreateDistributedHyperTable(context.Background(), "check_ins", "checked_in_at", tt.opts, nil)
			require.NoError(t, err)
		})
	}
}

func TestMigration_CreateDistributedHyperTable_DoesNotMutateOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := provideMigration(ctrl)
	m.Executor.(*mocks.MockExecutor).EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, nil)

	opts := schema.Options{schema.DistributedKey: false}
	_, err := m.CreateDistributedHyperTable(context.Background(), "check_ins", "checked_in_at", opts, nil)
	require.NoError(t, err)
	require.Equal(t, false, opts[schema.DistributedKey])
}
