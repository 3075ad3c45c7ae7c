package schema

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mitchellh/mapstructure"
)

// Column is a single column of a TableDefinition.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	Default    string
	Index      bool
	PrimaryKey bool
}

type ColumnOption func(c *Column)

func NotNull() ColumnOption {
	return func(c *Column) { c.NotNull = true }
}

// Default sets the column default. expr is written as is, so string defaults
// must carry their own quotes.
func Default(expr string) ColumnOption {
	return func(c *Column) { c.Default = expr }
}

// WithIndex adds a single column index on the column.
func WithIndex() ColumnOption {
	return func(c *Column) { c.Index = true }
}

// PrimaryKey makes the column part of the table's primary key.
func PrimaryKey() ColumnOption {
	return func(c *Column) { c.PrimaryKey = true }
}

// TableDefinition collects the columns defined by a TableBlock.
type TableDefinition struct {
	columns []Column
	indexes [][]string
}

func (t *TableDefinition) Column(name, typ string, opts ...ColumnOption) {
	c := Column{Name: name, Type: typ}
	for _, opt := range opts {
		opt(&c)
	}
	t.columns = append(t.columns, c)
}

func (t *TableDefinition) String(name string, opts ...ColumnOption) {
	t.Column(name, "character varying", opts...)
}

func (t *TableDefinition) Text(name string, opts ...ColumnOption) {
	t.Column(name, "text", opts...)
}

func (t *TableDefinition) Integer(name string, opts ...ColumnOption) {
	t.Column(name, "integer", opts...)
}

func (t *TableDefinition) BigInt(name string, opts ...ColumnOption) {
	t.Column(name, "bigint", opts...)
}

func (t *TableDefinition) Float(name string, opts ...ColumnOption) {
	t.Column(name, "double precision", opts...)
}

func (t *TableDefinition) Boolean(name string, opts ...ColumnOption) {
	t.Column(name, "boolean", opts...)
}

func (t *TableDefinition) Datetime(name string, opts ...ColumnOption) {
	t.Column(name, "timestamp(6) without time zone", opts...)
}

func (t *TableDefinition) Timestamptz(name string, opts ...ColumnOption) {
	t.Column(name, "timestamp with time zone", opts...)
}

func (t *TableDefinition) JSONB(name string, opts ...ColumnOption) {
	t.Column(name, "jsonb", opts...)
}

// References adds an indexed <name>_id bigint column.
func (t *TableDefinition) References(name string, opts ...ColumnOption) {
	t.BigInt(name+"_id", append([]ColumnOption{WithIndex()}, opts...)...)
}

// Timestamps adds non null created_at and updated_at columns.
func (t *TableDefinition) Timestamps() {
	t.Datetime("created_at", NotNull())
	t.Datetime("updated_at", NotNull())
}

// Index adds an index over columns.
func (t *TableDefinition) Index(columns ...string) {
	if len(columns) == 0 {
		return
	}
	t.indexes = append(t.indexes, append([]string{}, columns...))
}

func (t *TableDefinition) Columns() []Column {
	return append([]Column{}, t.columns...)
}

// TableOptions are the table level options read from the table creation
// args. Hypertable attributes in the args are ignored, except if_not_exists
// which applies to both.
type TableOptions struct {
	ID          bool   `mapstructure:"id"`
	PrimaryKey  string `mapstructure:"primary_key"`
	IfNotExists bool   `mapstructure:"if_not_exists"`
	Temporary   bool   `mapstructure:"temporary"`
}

func NewTableOptions(args Options) (TableOptions, error) {
	opts := TableOptions{ID: true, PrimaryKey: "id"}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &opts,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return opts, err
	}

	if err = decoder.Decode(map[string]interface{}(args)); err != nil {
		return opts, fmt.Errorf("invalid table options: %w", err)
	}

	return opts, nil
}

// Define runs block against a fresh TableDefinition.
func Define(block TableBlock) *TableDefinition {
	t := &TableDefinition{}
	if block != nil {
		block(t)
	}
	return t
}

// ToSQL renders the CREATE TABLE statement for relation followed by one
// CREATE INDEX statement per index.
func (t *TableDefinition) ToSQL(relation string, opts TableOptions) []string {
	var defs []string
	var pk []string

	if opts.ID {
		name := opts.PrimaryKey
		if name == "" {
			name = "id"
		}
		defs = append(defs, pq.QuoteIdentifier(name)+" bigserial PRIMARY KEY")
	}

	for _, c := range t.columns {
		def := pq.QuoteIdentifier(c.Name) + " " + c.Type
		if c.NotNull {
			def += " NOT NULL"
		}
		if c.Default != "" {
			def += " DEFAULT " + c.Default
		}
		defs = append(defs, def)

		if c.PrimaryKey {
			pk = append(pk, pq.QuoteIdentifier(c.Name))
		}
	}

	if len(pk) > 0 {
		defs = append(defs, "PRIMARY KEY ("+strings.Join(pk, ", ")+")")
	}

	var b strings.Builder
	b.WriteString("CREATE ")
	if opts.Temporary {
		b.WriteString("TEMPORARY ")
	}
	b.WriteString("TABLE ")
	if opts.IfNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(quoteQualified(relation))
	b.WriteString(" (" + strings.Join(defs, ", ") + ")")

	statements := []string{b.String()}

	var indexes [][]string
	for _, c := range t.columns {
		if c.Index {
			indexes = append(indexes, []string{c.Name})
		}
	}
	indexes = append(indexes, t.indexes...)

	for _, columns := range indexes {
		statements = append(statements, indexStatement(relation, columns, opts.IfNotExists))
	}

	return statements
}

func indexStatement(relation string, columns []string, ifNotExists bool) string {
	name := fmt.Sprintf("index_%s_on_%s", strings.ReplaceAll(relation, ".", "_"), strings.Join(columns, "_and_"))

	quoted := make([]string, 0, len(columns))
	for _, c := range columns {
		quoted = append(quoted, pq.QuoteIdentifier(c))
	}

	stmt := "CREATE INDEX "
	if ifNotExists {
		stmt += "IF NOT EXISTS "
	}

	return stmt + pq.QuoteIdentifier(name) + " ON " + quoteQualified(relation) + " (" + strings.Join(quoted, ", ") + ")"
}

// quoteQualified quotes each dot separated part of a possibly schema
// qualified name.
func quoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// DropTableStatement reverts the CREATE TABLE rendered by ToSQL.
func DropTableStatement(relation string) string {
	return "DROP TABLE IF EXISTS " + quoteQualified(relation)
}
