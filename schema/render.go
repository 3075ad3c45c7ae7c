package schema

import (
	"fmt"
	"strconv"
	"strings"
)

const statementTemplate = "SELECT * FROM create_hyper_table('%s', '%s', %s)"

// Statement wraps a rendered argument list into the create_hyper_table call.
func Statement(relation, timeColumn, args string) string {
	return fmt.Sprintf(statementTemplate, relation, timeColumn, args)
}

// Statement renders the full administrative statement for relation.
func (h *HypertableOptions) Statement(relation string) string {
	return Statement(relation, h.timeColumn, h.ToSQL())
}

// ToSQL renders the named argument list of create_hyper_table. Optional
// attributes are left out while absent, so the database applies its own
// defaults. The order of the arguments is fixed.
func (h *HypertableOptions) ToSQL() string {
	c := h.cfg
	var args []string

	if c.PartitioningColumn.Valid {
		args = append(args, namedArg(PartitioningColumnKey, quote(c.PartitioningColumn.String)))
	}

	if c.NumberPartitions.Valid {
		args = append(args, namedArg(NumberPartitionsKey, strconv.FormatInt(c.NumberPartitions.Int64, 10)))
	}

	args = append(args, namedArg(IfNotExistsKey, strconv.FormatBool(c.IfNotExists)))

	if c.PartitioningFunc.Valid {
		args = append(args, namedArg(PartitioningFuncKey, quote(c.PartitioningFunc.String)))
	}

	args = append(args,
		namedArg(AssociatedSchemaNameKey, quote(c.AssociatedSchemaName)),
		namedArg(AssociatedTablePrefixKey, quote(c.AssociatedTablePrefix)),
		namedArg(MigrateDataKey, strconv.FormatBool(c.MigrateData)),
	)

	if c.TimePartitioningFunc.Valid {
		args = append(args, namedArg(TimePartitioningFuncKey, quote(c.TimePartitioningFunc.String)))
	}

	if c.ReplicationFactor.Valid {
		args = append(args, namedArg(ReplicationFactorKey, strconv.FormatInt(c.ReplicationFactor.Int64, 10)))
	}

	if len(c.DataNodes) > 0 {
		// elements are not quoted individually
		args = append(args, namedArg(DataNodesKey, quote("{ "+strings.Join(c.DataNodes, ", ")+" }")))
	}

	if c.Distributed.Valid {
		args = append(args, namedArg(DistributedKey, strconv.FormatBool(c.Distributed.Bool)))
	}

	args = append(args, namedArg(ChunkTimeIntervalKey, c.ChunkTimeInterval.SQL()))

	return strings.Join(args, ", ")
}

func namedArg(name, value string) string {
	return name + " => " + value
}

func quote(s string) string {
	return "'" + s + "'"
}
