package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
)

// Data source kinds.
const (
	SourceFile       = "file"
	SourceMongo      = "mongo"
	SourceClickHouse = "clickhouse"
	SourceMySQL      = "mysql"
	SourcePostgres   = "postgres"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPPort     string `env:"HTTP_PORT" envDefault:":8080"`
	AppMode      string `env:"APP_MODE" envDefault:"dev"`
	FiberPrefork bool   `env:"FIBER_PREFORK" envDefault:"false"`
	CORSOrigins  string `env:"CORS_ORIGINS" envDefault:"*"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
	LogFile   string `env:"LOG_FILE"`

	DataSource string `env:"DATA_SOURCE" envDefault:"file" validate:"oneof=file mongo clickhouse mysql postgres"`
	DataDir    string `env:"DATA_DIR" envDefault:"./data"`

	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"marketplace"`

	ClickHouseAddr     []string `env:"CLICKHOUSE_ADDR" envSeparator:","`
	ClickHouseDatabase string   `env:"CLICKHOUSE_DATABASE" envDefault:"default"`
	ClickHouseUsername string   `env:"CLICKHOUSE_USERNAME" envDefault:"default"`
	ClickHousePassword string   `env:"CLICKHOUSE_PASSWORD"`

	// SQLDSN is a MySQL/MariaDB DSN or URL, or a PostgreSQL URL.
	SQLDSN            string        `env:"SQL_DSN"`
	DBMaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"50" validate:"gt=0"`
	DBMinConns        int32         `env:"DB_MIN_CONNS" envDefault:"2" validate:"gte=0,ltefield=DBMaxConns"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	RunMigrations     bool          `env:"RUN_MIGRATIONS" envDefault:"false"`

	FetchTimeout      time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	ForecastModel     string        `env:"FORECAST_MODEL" envDefault:"trend" validate:"oneof=trend sampled"`
	LowStockThreshold int           `env:"LOW_STOCK_THRESHOLD" envDefault:"10" validate:"gte=0"`
	ChurnWindowDays   int           `env:"CHURN_WINDOW_DAYS" envDefault:"90" validate:"gt=0"`
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.AppMode = strings.ToLower(cfg.AppMode)
	cfg.DataSource = strings.ToLower(strings.TrimSpace(cfg.DataSource))
	if cfg.DataSource == "" {
		cfg.DataSource = SourceFile
	}
	cfg.ForecastModel = strings.ToLower(strings.TrimSpace(cfg.ForecastModel))
	if cfg.ForecastModel == "" {
		cfg.ForecastModel = "trend"
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and the settings required by the selected
// data source.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.DataSource {
	case SourceFile:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for data source %q", c.DataSource)
		}
	case SourceMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for data source %q", c.DataSource)
		}
	case SourceClickHouse:
		if len(c.ClickHouseAddr) == 0 {
			return fmt.Errorf("CLICKHOUSE_ADDR is required for data source %q", c.DataSource)
		}
	case SourceMySQL, SourcePostgres:
		if c.SQLDSN == "" {
			return fmt.Errorf("SQL_DSN is required for data source %q", c.DataSource)
		}
	}
	return nil
}

// IsBenchmark reports whether verbose pool diagnostics should be logged.
func (c *Config) IsBenchmark() bool {
	return c.AppMode == "benchmark"
}
