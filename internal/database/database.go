package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oliweira/back-mrg/internal/config"
	"github.com/oliweira/back-mrg/internal/models"
)

// Dialector picks the gorm dialector for the configured driver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	dsn := cfg.DSN()
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("driver %q has no SQL dialector", cfg.DBDriver)
	}
}

// Open connects to the database, sizes the connection pool and pings it once.
// The caller owns the returned handle and must Close it.
func Open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	return OpenWith(ctx, dialector, cfg.DBPoolSize, cfg.DBAutoMigrate)
}

// OpenWith is Open for an explicit dialector.
func OpenWith(ctx context.Context, dialector gorm.Dialector, poolSize int, autoMigrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(poolSize)
	sqlDB.SetMaxIdleConns(poolSize)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if autoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(&models.Product{}); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to migrate products table: %w", err)
		}
	}

	log.Printf("Database connection pool ready (max %d connections).", poolSize)
	return db, nil
}

// Ping checks that the pool can still reach the database.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases every pooled connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
