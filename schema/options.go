package schema

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/guregu/null.v4"
)

type hypertableConfig struct {
	PartitioningColumn    null.String `mapstructure:"partitioning_column" structs:"partitioning_column,omitnested"`
	NumberPartitions      null.Int    `mapstructure:"number_partitions" structs:"number_partitions,omitnested"`
	ChunkTimeInterval     Interval    `mapstructure:"chunk_time_interval" structs:"chunk_time_interval,omitnested"`
	CreateDefaultIndexes  bool        `mapstructure:"create_default_indexes" structs:"create_default_indexes"`
	IfNotExists           bool        `mapstructure:"if_not_exists" structs:"if_not_exists"`
	PartitioningFunc      null.String `mapstructure:"partitioning_func" structs:"partitioning_func,omitnested"`
	AssociatedSchemaName  string      `mapstructure:"associated_schema_name" structs:"associated_schema_name"`
	AssociatedTablePrefix string      `mapstructure:"associated_table_prefix" structs:"associated_table_prefix"`
	MigrateData           bool        `mapstructure:"migrate_data" structs:"migrate_data"`
	TimePartitioningFunc  null.String `mapstructure:"time_partitioning_func" structs:"time_partitioning_func,omitnested"`
	ReplicationFactor     null.Int    `mapstructure:"replication_factor" structs:"replication_factor,omitnested"`
	DataNodes             []string    `mapstructure:"data_nodes" structs:"data_nodes"`
	Distributed           null.Bool   `mapstructure:"distributed" structs:"distributed,omitnested"`
}

func defaultHypertableConfig() hypertableConfig {
	return hypertableConfig{
		ChunkTimeInterval:     IntervalOf(DefaultChunkTimeInterval),
		CreateDefaultIndexes:  true,
		AssociatedSchemaName:  DefaultAssociatedSchemaName,
		AssociatedTablePrefix: DefaultAssociatedTablePrefix,
	}
}

// HypertableOptions is the normalized partition configuration of a single
// create_hyper_table call. It cannot be modified once built.
type HypertableOptions struct {
	timeColumn string
	cfg        hypertableConfig
	other      Options
}

// NewHypertableOptions splits opts into hypertable attributes and other
// options, applying defaults for every attribute that was not supplied. A nil
// value counts as not supplied. Only value types are checked; ranges are left
// to the database.
func NewHypertableOptions(timeColumn string, opts Options) (*HypertableOptions, error) {
	if timeColumn == "" {
		timeColumn = DefaultTimeColumn
	}

	cfg := defaultHypertableConfig()
	var md mapstructure.Metadata

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: optionDecodeHook,
		Metadata:   &md,
		Result:     &cfg,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return nil, err
	}

	if err = decoder.Decode(map[string]interface{}(opts)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOptionType, err.Error())
	}

	other := make(Options, len(md.Unused))
	for _, k := range md.Unused {
		other[k] = opts[k]
	}

	if cfg.DataNodes != nil {
		cfg.DataNodes = append([]string(nil), cfg.DataNodes...)
	}

	return &HypertableOptions{timeColumn: timeColumn, cfg: cfg, other: other}, nil
}

func (h *HypertableOptions) TimeColumn() string              { return h.timeColumn }
func (h *HypertableOptions) PartitioningColumn() null.String { return h.cfg.PartitioningColumn }
func (h *HypertableOptions) NumberPartitions() null.Int      { return h.cfg.NumberPartitions }
func (h *HypertableOptions) ChunkTimeInterval() Interval     { return h.cfg.ChunkTimeInterval }
func (h *HypertableOptions) CreateDefaultIndexes() bool      { return h.cfg.CreateDefaultIndexes }
func (h *HypertableOptions) IfNotExists() bool               { return h.cfg.IfNotExists }
func (h *HypertableOptions) PartitioningFunc() null.String   { return h.cfg.PartitioningFunc }
func (h *HypertableOptions) AssociatedSchemaName() string    { return h.cfg.AssociatedSchemaName }
func (h *HypertableOptions) AssociatedTablePrefix() string   { return h.cfg.AssociatedTablePrefix }
func (h *HypertableOptions) MigrateData() bool               { return h.cfg.MigrateData }
func (h *HypertableOptions) TimePartitioningFunc() null.String {
	return h.cfg.TimePartitioningFunc
}
func (h *HypertableOptions) ReplicationFactor() null.Int { return h.cfg.ReplicationFactor }
func (h *HypertableOptions) Distributed() null.Bool      { return h.cfg.Distributed }

func (h *HypertableOptions) DataNodes() []string {
	return append([]string{}, h.cfg.DataNodes...)
}

// Other returns the options that are not hypertable attributes.
func (h *HypertableOptions) Other() Options {
	return h.other.Copy()
}

// Args returns the options handed to the table builder: the other options
// merged with every hypertable attribute. Absent attributes are nil.
func (h *HypertableOptions) Args() Options {
	args := h.other.Copy()

	for k, v := range structs.Map(h.cfg) {
		switch value := v.(type) {
		case Interval:
			args[k] = value.Value()
		case []string:
			args[k] = append([]string{}, value...)
		case driver.Valuer:
			dv, err := value.Value()
			if err != nil {
				dv = nil
			}
			args[k] = dv
		default:
			args[k] = value
		}
	}

	return args
}

var (
	nullStringType = reflect.TypeOf(null.String{})
	nullIntType    = reflect.TypeOf(null.Int{})
	nullBoolType   = reflect.TypeOf(null.Bool{})
	intervalType   = reflect.TypeOf(Interval{})
)

func optionDecodeHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	// typed nil pointers are dropped as absent before the hook runs
	if v := reflect.ValueOf(data); v.Kind() == reflect.Ptr && !v.IsNil() {
		data = v.Elem().Interface()
	}

	switch to {
	case nullStringType:
		switch v := data.(type) {
		case null.String:
			return v, nil
		case string:
			return null.StringFrom(v), nil
		}
		return nil, fmt.Errorf("expected string, got %T", data)

	case nullIntType:
		if v, ok := data.(null.Int); ok {
			return v, nil
		}
		n, ok := toInt64(data)
		if !ok {
			return nil, fmt.Errorf("expected integer, got %T", data)
		}
		return null.IntFrom(n), nil

	case nullBoolType:
		switch v := data.(type) {
		case null.Bool:
			return v, nil
		case bool:
			return null.BoolFrom(v), nil
		}
		return nil, fmt.Errorf("expected boolean, got %T", data)

	case intervalType:
		switch v := data.(type) {
		case Interval:
			return v, nil
		case string:
			return IntervalOf(v), nil
		case time.Duration:
			return IntervalDuration(v), nil
		}
		n, ok := toInt64(data)
		if !ok {
			return nil, fmt.Errorf("expected interval string or integer, got %T", data)
		}
		return IntervalUnits(n), nil
	}

	return data, nil
}

// toInt64 accepts Go integers and the integral floats produced by JSON and
// YAML decoding.
func toInt64(data interface{}) (int64, bool) {
	switch v := data.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
