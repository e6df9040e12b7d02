package db

import (
	"context"
	"fmt"

	"marketplace-analytics/internal/config"
)

// Execer runs a single DDL statement. The ClickHouse connection satisfies it.
type Execer interface {
	Exec(ctx context.Context, query string, args ...any) error
}

// ExecFunc adapts drivers whose Exec returns a result alongside the error.
type ExecFunc func(ctx context.Context, query string, args ...any) error

func (f ExecFunc) Exec(ctx context.Context, query string, args ...any) error {
	return f(ctx, query, args...)
}

var clickhouseSchema = []string{
	`CREATE TABLE IF NOT EXISTS users
(
	id            String,
	name          String DEFAULT '',
	email         String DEFAULT '',
	created_at    DateTime64(3, 'UTC'),
	last_login_at Nullable(DateTime64(3, 'UTC')),
	is_active     Bool DEFAULT true
)
ENGINE = ReplacingMergeTree
ORDER BY id`,
	`CREATE TABLE IF NOT EXISTS products
(
	id             String,
	name           String DEFAULT '',
	category       LowCardinality(String),
	price          Float64,
	discount_price Nullable(Float64),
	stock          Int32,
	sales_count    Int32,
	rating         Float64
)
ENGINE = ReplacingMergeTree
ORDER BY id`,
	`CREATE TABLE IF NOT EXISTS orders
(
	id              String,
	user_id         String,
	total           Float64,
	status          LowCardinality(String),
	payment_method  LowCardinality(String) DEFAULT '',
	shipping_method LowCardinality(String) DEFAULT '',
	city            String DEFAULT '',
	region          String DEFAULT '',
	country         LowCardinality(String) DEFAULT '',
	created_at      DateTime64(3, 'UTC')
)
ENGINE = ReplacingMergeTree
PARTITION BY toYYYYMM(created_at)
ORDER BY (created_at, id)`,
	`CREATE TABLE IF NOT EXISTS order_items
(
	order_id   String,
	position   UInt16,
	product_id String,
	name       String DEFAULT '',
	price      Float64,
	quantity   UInt32
)
ENGINE = ReplacingMergeTree
ORDER BY (order_id, position)`,
}

// relationalSchema is shared by MySQL and PostgreSQL; only the column types
// named by the dialect differ.
func relationalSchema(timestamp, boolean string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255),
	email VARCHAR(255),
	created_at %[1]s NOT NULL,
	last_login_at %[1]s NULL,
	is_active %[2]s NOT NULL DEFAULT TRUE
)`, timestamp, boolean),
		`CREATE TABLE IF NOT EXISTS products (
	id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255),
	category VARCHAR(128) NOT NULL,
	price DOUBLE PRECISION NOT NULL,
	discount_price DOUBLE PRECISION NULL,
	stock INTEGER NOT NULL DEFAULT 0,
	sales_count INTEGER NOT NULL DEFAULT 0,
	rating DOUBLE PRECISION NOT NULL DEFAULT 0
)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS orders (
	id VARCHAR(64) PRIMARY KEY,
	user_id VARCHAR(64) NOT NULL,
	total DOUBLE PRECISION NOT NULL,
	status VARCHAR(32) NOT NULL,
	payment_method VARCHAR(64),
	shipping_method VARCHAR(64),
	city VARCHAR(128),
	region VARCHAR(128),
	country VARCHAR(64),
	created_at %s NOT NULL
)`, timestamp),
		`CREATE TABLE IF NOT EXISTS order_items (
	order_id VARCHAR(64) NOT NULL,
	position INTEGER NOT NULL,
	product_id VARCHAR(64) NOT NULL,
	name VARCHAR(255),
	price DOUBLE PRECISION NOT NULL,
	quantity INTEGER NOT NULL,
	PRIMARY KEY (order_id, position)
)`,
	}
}

// Schema returns the DDL statements for a data source kind.
func Schema(source string) ([]string, error) {
	switch source {
	case config.SourceClickHouse:
		return clickhouseSchema, nil
	case config.SourceMySQL:
		return relationalSchema("DATETIME(3)", "BOOLEAN"), nil
	case config.SourcePostgres:
		return relationalSchema("TIMESTAMPTZ", "BOOLEAN"), nil
	default:
		return nil, fmt.Errorf("no schema for data source %q", source)
	}
}

// RunMigrations ensures required tables exist. This keeps the service
// self-contained without an external migration step.
func RunMigrations(ctx context.Context, conn Execer, source string) error {
	statements, err := Schema(source)
	if err != nil {
		return err
	}
	for _, stmt := range statements {
		if err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
