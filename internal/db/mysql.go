package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"marketplace-analytics/internal/config"
)

// OpenMySQL opens a MySQL/MariaDB handle. cfg.SQLDSN may be a driver DSN or a
// mysql:// or mariadb:// URL.
func OpenMySQL(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	dsn, err := toMySQLDSN(cfg.SQLDSN)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(int(cfg.DBMaxConns))
	db.SetMaxIdleConns(int(cfg.DBMinConns))
	db.SetConnMaxLifetime(cfg.DBMaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.DBMaxConnIdleTime)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// toMySQLDSN converts URL-style DSNs to the driver format and forces UTC time
// parsing on every DSN.
func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		mc := mysql.NewConfig()
		if u.User != nil {
			mc.User = u.User.Username()
			mc.Passwd, _ = u.User.Password()
		}
		mc.Net = "tcp"
		mc.Addr = u.Host
		mc.DBName = strings.TrimPrefix(u.Path, "/")
		if mc.User == "" || mc.Addr == "" || mc.DBName == "" {
			return "", fmt.Errorf("incomplete dsn: user, host and database are required")
		}
		mc.ParseTime = true
		mc.Loc = time.UTC
		return mc.FormatDSN(), nil
	}

	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	mc.ParseTime = true
	mc.Loc = time.UTC
	return mc.FormatDSN(), nil
}
