package db

import (
	"context"
	"fmt"
	"io"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ecomarket/storefront/pkg/config"
)

// Client wraps the shared GORM connection used by the SQL-backed storage surface.
type Client struct {
	conn *gorm.DB
}

// New boots a GORM client for the configured storage driver.
func New(ctx context.Context, cfg config.StorageConfig) (*Client, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.StorageDriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case config.StorageDriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("storage driver %q is not SQL-backed", cfg.Driver)
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening storage connection: %w", err)
	}

	return &Client{conn: conn}, nil
}

// DB returns the underlying GORM connection.
func (c *Client) DB() *gorm.DB {
	return c.conn
}

// Ping verifies the datasource is reachable.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts down the pooled connections.
func (c *Client) Close() error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
