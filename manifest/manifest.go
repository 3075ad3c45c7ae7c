// Package manifest loads hypertable definitions from a YAML file and applies
// them in file order.
package manifest

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/frain-dev/hypertable/pkg/log"
	"github.com/frain-dev/hypertable/schema"
	"github.com/frain-dev/hypertable/util"
)

type Manifest struct {
	Hypertables []Hypertable `json:"hypertables"`
}

type Hypertable struct {
	Relation    string         `json:"relation" valid:"required"`
	TimeColumn  string         `json:"time_column"`
	Distributed bool           `json:"distributed"`
	Options     schema.Options `json:"options" valid:"-"`
	Columns     []Column       `json:"columns"`
	Indexes     [][]string     `json:"indexes" valid:"-"`
}

type Column struct {
	Name       string `json:"name" valid:"required"`
	Type       string `json:"type" valid:"required"`
	Null       *bool  `json:"null"`
	Default    string `json:"default"`
	Index      bool   `json:"index"`
	PrimaryKey bool   `json:"primary_key"`
}

var typeAliases = map[string]string{
	"string":      "character varying",
	"text":        "text",
	"integer":     "integer",
	"bigint":      "bigint",
	"float":       "double precision",
	"boolean":     "boolean",
	"datetime":    "timestamp(6) without time zone",
	"timestamptz": "timestamp with time zone",
	"jsonb":       "jsonb",
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(b)
}

func Parse(b []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %v", err)
	}

	if err := util.Validate(m); err != nil {
		return nil, err
	}

	return m, nil
}

// Apply creates every hypertable in order and stops at the first failure.
func (m *Manifest) Apply(ctx context.Context, migration *schema.Migration) error {
	for _, h := range m.Hypertables {
		var err error
		if h.Distributed {
			_, err = migration.CreateDistributedHyperTable(ctx, h.Relation, h.TimeColumn, h.Options, h.Block())
		} else {
			_, err = migration.CreateHyperTable(ctx, h.Relation, h.TimeColumn, h.Options, h.Block())
		}

		if err != nil {
			return fmt.Errorf("%s: %w", h.Relation, err)
		}

		log.FromContext(ctx).WithFields(log.Fields{"relation": h.Relation}).Info("hypertable created")
	}

	return nil
}

// Block returns the column definition block for the hypertable, or nil when
// no columns are listed and the relation is expected to exist.
func (h Hypertable) Block() schema.TableBlock {
	if len(h.Columns) == 0 {
		return nil
	}

	return func(t *schema.TableDefinition) {
		for _, c := range h.Columns {
			var opts []schema.ColumnOption
			if c.Null != nil && !*c.Null {
				opts = append(opts, schema.NotNull())
			}
			if c.Default != "" {
				opts = append(opts, schema.Default(c.Default))
			}
			if c.Index {
				opts = append(opts, schema.WithIndex())
			}
			if c.PrimaryKey {
				opts = append(opts, schema.PrimaryKey())
			}

			t.Column(c.Name, columnType(c.Type), opts...)
		}

		for _, columns := range h.Indexes {
			t.Index(columns...)
		}
	}
}

func columnType(typ string) string {
	if sqlType, ok := typeAliases[strings.ToLower(typ)]; ok {
		return sqlType
	}
	return typ
}

// ParseColumn parses a column written as name:type[:flag...] where flags are
// not_null, index, primary_key and default=<expr>. default must come last,
// its expression runs to the end of the string and may contain colons.
func ParseColumn(raw string) (Column, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Column{}, fmt.Errorf("invalid column %q, expected name:type[:flag...]", raw)
	}

	c := Column{Name: parts[0], Type: parts[1]}
	if len(parts) < 3 {
		return c, nil
	}

	rest := parts[2]
	for rest != "" {
		if strings.HasPrefix(rest, "default=") {
			c.Default = strings.TrimPrefix(rest, "default=")
			break
		}

		flag := rest
		if i := strings.Index(rest, ":"); i >= 0 {
			flag, rest = rest[:i], rest[i+1:]
		} else {
			rest = ""
		}

		switch flag {
		case "not_null":
			notNull := false
			c.Null = &notNull
		case "index":
			c.Index = true
		case "primary_key", "pk":
			c.PrimaryKey = true
		default:
			return Column{}, fmt.Errorf("invalid column %q: unknown flag %q", raw, flag)
		}
	}

	return c, nil
}
