package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"

	"github.com/frain-dev/hypertable/util"
)

var cfgSingleton atomic.Value

type DatabaseProvider string

const (
	PostgresDatabaseProvider DatabaseProvider = "postgres"
)

const (
	DefaultConfigFile     = "./hypertable.json"
	DefaultMigrationsDir  = "migrations"
	DefaultMigrationTable = "hypertable_migrations"
)

var DefaultConfiguration = Configuration{
	Database: DatabaseConfiguration{
		Type:                  PostgresDatabaseProvider,
		Scheme:                "postgres",
		Host:                  "localhost",
		Username:              "postgres",
		Password:              "postgres",
		Database:              "postgres",
		Options:               "sslmode=disable",
		Port:                  5432,
		SetMaxOpenConnections: 10,
		SetMaxIdleConnections: 2,
		SetConnMaxLifetime:    3600,
	},
	Logger: LoggerConfiguration{
		Level: "info",
	},
	Migrations: MigrationConfiguration{
		Dir:   DefaultMigrationsDir,
		Table: DefaultMigrationTable,
	},
}

type DatabaseConfiguration struct {
	Type DatabaseProvider `json:"type" envconfig:"HYPERTABLE_DB_TYPE" valid:"supported_database"`

	Dsn      string `json:"dsn" envconfig:"HYPERTABLE_DB_DSN"`
	Scheme   string `json:"scheme" envconfig:"HYPERTABLE_DB_SCHEME"`
	Host     string `json:"host" envconfig:"HYPERTABLE_DB_HOST"`
	Username string `json:"username" envconfig:"HYPERTABLE_DB_USERNAME"`
	Password string `json:"password" envconfig:"HYPERTABLE_DB_PASSWORD"`
	Database string `json:"database" envconfig:"HYPERTABLE_DB_DATABASE"`
	Options  string `json:"options" envconfig:"HYPERTABLE_DB_OPTIONS"`
	Port     int    `json:"port" envconfig:"HYPERTABLE_DB_PORT"`

	SetMaxOpenConnections int `json:"max_open_conn" envconfig:"HYPERTABLE_DB_MAX_OPEN_CONN"`
	SetMaxIdleConnections int `json:"max_idle_conn" envconfig:"HYPERTABLE_DB_MAX_IDLE_CONN"`
	// seconds
	SetConnMaxLifetime int `json:"conn_max_lifetime" envconfig:"HYPERTABLE_DB_CONN_MAX_LIFETIME"`
}

// BuildDsn returns Dsn when set, otherwise a connection url assembled from
// the individual fields. It returns an empty string when there is no host.
func (dc DatabaseConfiguration) BuildDsn() string {
	if dc.Dsn != "" {
		return dc.Dsn
	}

	if dc.Host == "" {
		return ""
	}

	u := url.URL{
		Scheme:   dc.Scheme,
		Host:     dc.Host,
		Path:     "/" + dc.Database,
		RawQuery: dc.Options,
	}

	if dc.Port != 0 {
		u.Host = dc.Host + ":" + strconv.Itoa(dc.Port)
	}

	if dc.Username != "" {
		if dc.Password != "" {
			u.User = url.UserPassword(dc.Username, dc.Password)
		} else {
			u.User = url.User(dc.Username)
		}
	}

	return u.String()
}

type LoggerConfiguration struct {
	Level string `json:"level" envconfig:"HYPERTABLE_LOG_LEVEL" valid:"in(fatal|error|warn|warning|info|debug)"`
}

type MigrationConfiguration struct {
	Dir   string `json:"dir" envconfig:"HYPERTABLE_MIGRATIONS_DIR" valid:"required"`
	Table string `json:"table" envconfig:"HYPERTABLE_MIGRATIONS_TABLE" valid:"required"`
}

type Configuration struct {
	Database   DatabaseConfiguration  `json:"database"`
	Logger     LoggerConfiguration    `json:"logger"`
	Migrations MigrationConfiguration `json:"migrations"`
}

// LoadConfig reads the configuration file at p on top of
// DefaultConfiguration and applies environment overrides. A missing file is
// not an error, the defaults and environment are used instead.
func LoadConfig(p string) error {
	c := DefaultConfiguration

	if p != "" {
		f, err := os.Open(p)
		switch {
		case err == nil:
			defer f.Close()

			if err = json.NewDecoder(f).Decode(&c); err != nil {
				return fmt.Errorf("failed to decode config file %s: %v", p, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return err
		}
	}

	if err := overrideConfigWithEnvVars(&c); err != nil {
		return err
	}

	if err := util.Validate(c); err != nil {
		return err
	}

	cfgSingleton.Store(&c)
	return nil
}

func overrideConfigWithEnvVars(c *Configuration) error {
	for _, spec := range []interface{}{&c.Database, &c.Logger, &c.Migrations} {
		if err := envconfig.Process("", spec); err != nil {
			return err
		}
	}

	return nil
}

// Get fetches the application configuration. LoadConfig must have been called
// previously for this to work.
func Get() (Configuration, error) {
	c, ok := cfgSingleton.Load().(*Configuration)
	if !ok {
		return Configuration{}, errors.New("call Load before this function")
	}

	return *c, nil
}

// Override replaces the loaded configuration, used by tests and flags.
func Override(c *Configuration) {
	cfgSingleton.Store(c)
}
