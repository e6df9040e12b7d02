package db

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"marketplace-analytics/internal/config"
	"marketplace-analytics/internal/repository"
)

// Open connects the data source selected by cfg.DataSource. The returned
// close function releases the underlying connection.
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (repository.DataSource, func() error, error) {
	noop := func() error { return nil }

	switch cfg.DataSource {
	case config.SourceFile:
		log.WithField("dir", cfg.DataDir).Info("using JSON file data source")
		return repository.NewFileRepository(cfg.DataDir), noop, nil

	case config.SourceMongo:
		client, err := NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("database", cfg.MongoDatabase).Info("connected to MongoDB")
		closeFn := func() error { return client.Disconnect(context.Background()) }
		return repository.NewMongoRepository(client.Database(cfg.MongoDatabase)), closeFn, nil

	case config.SourceClickHouse:
		conn, err := NewConnection(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if cfg.RunMigrations {
			if err := RunMigrations(ctx, conn, cfg.DataSource); err != nil {
				conn.Close()
				return nil, nil, err
			}
		}
		log.WithField("addr", cfg.ClickHouseAddr).Info("connected to ClickHouse")
		return repository.NewClickHouseRepository(conn), conn.Close, nil

	case config.SourceMySQL:
		sqlDB, err := OpenMySQL(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if cfg.RunMigrations {
			exec := ExecFunc(func(ctx context.Context, query string, args ...any) error {
				_, err := sqlDB.ExecContext(ctx, query, args...)
				return err
			})
			if err := RunMigrations(ctx, exec, cfg.DataSource); err != nil {
				sqlDB.Close()
				return nil, nil, err
			}
		}
		log.Info("connected to MySQL")
		return repository.NewSQLRepository(sqlDB), sqlDB.Close, nil

	case config.SourcePostgres:
		pool, err := NewPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		if cfg.RunMigrations {
			exec := ExecFunc(func(ctx context.Context, query string, args ...any) error {
				_, err := pool.Exec(ctx, query, args...)
				return err
			})
			if err := RunMigrations(ctx, exec, cfg.DataSource); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		log.Info("connected to PostgreSQL")
		return repository.NewPostgresRepository(pool), func() error { pool.Close(); return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported data source %q", cfg.DataSource)
	}
}
