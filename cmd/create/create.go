package create

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/frain-dev/hypertable/internal/pkg/cli"
	"github.com/frain-dev/hypertable/manifest"
	"github.com/frain-dev/hypertable/schema"
)

type optionKind int

const (
	stringOption optionKind = iota
	intOption
	boolOption
	listOption
	intervalOption
)

// optionFlags maps each hypertable attribute flag to its option key. Only
// flags set on the command line end up in the options, the rest fall back to
// the hypertable defaults.
var optionFlags = []struct {
	name  string
	key   string
	kind  optionKind
	usage string
}{
	{"partitioning-column", schema.PartitioningColumnKey, stringOption, "Column used for space partitioning"},
	{"number-partitions", schema.NumberPartitionsKey, intOption, "Number of hash partitions for the partitioning column"},
	{"chunk-time-interval", schema.ChunkTimeIntervalKey, intervalOption, "Chunk interval, an interval literal or an integer"},
	{"create-default-indexes", schema.CreateDefaultIndexesKey, boolOption, "Create the default indexes on the time column"},
	{"if-not-exists", schema.IfNotExistsKey, boolOption, "Do not fail when the relation already is a hypertable"},
	{"partitioning-func", schema.PartitioningFuncKey, stringOption, "Function used to partition the partitioning column"},
	{"associated-schema-name", schema.AssociatedSchemaNameKey, stringOption, "Schema of the chunk tables"},
	{"associated-table-prefix", schema.AssociatedTablePrefixKey, stringOption, "Prefix of the chunk table names"},
	{"migrate-data", schema.MigrateDataKey, boolOption, "Move existing rows into chunks"},
	{"time-partitioning-func", schema.TimePartitioningFuncKey, stringOption, "Function converting the time column to a partitioning value"},
	{"replication-factor", schema.ReplicationFactorKey, intOption, "Number of data nodes each chunk is replicated to"},
	{"data-nodes", schema.DataNodesKey, listOption, "Data nodes chunks are placed on"},
	{"distributed", schema.DistributedKey, boolOption, "Create a distributed hypertable"},
}

type createOptions struct {
	timeColumn     string
	columns        []string
	indexes        []string
	noID           bool
	dryRun         bool
	writeMigration bool
}

func AddCreateCommand(a *cli.App) *cobra.Command {
	return newCommand(a, "create <relation>", "Convert a table into a hypertable", false)
}

func AddCreateDistributedCommand(a *cli.App) *cobra.Command {
	return newCommand(a, "create-distributed <relation>", "Convert a table into a distributed hypertable", true)
}

func newCommand(a *cli.App, use, short string, distributed bool) *cobra.Command {
	o := &createOptions{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := cli.ModeFromFlags(o.dryRun, o.writeMigration)
			if err != nil {
				return err
			}

			h, err := o.hypertable(args[0], cmd.Flags())
			if err != nil {
				return err
			}
			h.Distributed = distributed

			return a.Run(cmd.Context(), &manifest.Manifest{Hypertables: []manifest.Hypertable{h}}, mode, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&o.timeColumn, "time-column", schema.DefaultTimeColumn, "Column holding the time values")
	cmd.Flags().StringArrayVar(&o.columns, "column", nil, "Create the table with this column, as name:type[:not_null|index|pk|default=expr]")
	cmd.Flags().StringArrayVar(&o.indexes, "index", nil, "Comma separated columns of an extra index on the created table")
	cmd.Flags().BoolVar(&o.noID, "no-id", false, "Do not add a bigserial id column to the created table")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "Print the statements instead of running them")
	cmd.Flags().BoolVar(&o.writeMigration, "write-migration", false, "Write the statements to a new migration file")

	for _, f := range optionFlags {
		if distributed && f.key == schema.DistributedKey {
			continue
		}

		switch f.kind {
		case stringOption, intervalOption:
			cmd.Flags().String(f.name, "", f.usage)
		case intOption:
			cmd.Flags().Int(f.name, 0, f.usage)
		case boolOption:
			cmd.Flags().Bool(f.name, false, f.usage)
		case listOption:
			cmd.Flags().StringSlice(f.name, nil, f.usage)
		}
	}

	return cmd
}

func (o *createOptions) hypertable(relation string, fs *flag.FlagSet) (manifest.Hypertable, error) {
	opts, err := optionsFromFlags(fs)
	if err != nil {
		return manifest.Hypertable{}, err
	}

	h := manifest.Hypertable{
		Relation:   relation,
		TimeColumn: o.timeColumn,
		Options:    opts,
	}

	for _, raw := range o.columns {
		c, err := manifest.ParseColumn(raw)
		if err != nil {
			return manifest.Hypertable{}, err
		}
		h.Columns = append(h.Columns, c)
	}

	if len(h.Columns) > 0 {
		for _, idx := range o.indexes {
			h.Indexes = append(h.Indexes, splitColumns(idx))
		}

		if o.noID {
			h.Options["id"] = false
		}
	}

	return h, nil
}

func optionsFromFlags(fs *flag.FlagSet) (schema.Options, error) {
	opts := schema.Options{}

	for _, f := range optionFlags {
		if fs.Lookup(f.name) == nil || !fs.Changed(f.name) {
			continue
		}

		var v interface{}
		var err error

		switch f.kind {
		case stringOption:
			v, err = fs.GetString(f.name)
		case intOption:
			v, err = fs.GetInt(f.name)
		case boolOption:
			v, err = fs.GetBool(f.name)
		case listOption:
			v, err = fs.GetStringSlice(f.name)
		case intervalOption:
			var s string
			s, err = fs.GetString(f.name)
			v = s
			if n, perr := strconv.ParseInt(s, 10, 64); perr == nil {
				v = n
			}
		}

		if err != nil {
			return nil, err
		}

		opts[f.key] = v
	}

	return opts, nil
}

func splitColumns(s string) []string {
	var columns []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			columns = append(columns, c)
		}
	}
	return columns
}
