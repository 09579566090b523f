package database

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Drivers supported by Connect.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Connect opens the journal database and verifies it with a ping.
// For sqlite the parent directory of the database file is created.
func Connect(cfg Config) (*gorm.DB, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	// Suppress GORM logging; failures surface as errors in the main logger
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.Driver == DriverMySQL {
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetMaxOpenConns(4)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Dialector returns the gorm dialector for the configured driver.
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", DriverSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite journal path is empty")
		}
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create journal directory: %w", err)
			}
		}
		return sqlite.Open(cfg.Path), nil
	case DriverMySQL:
		return mysql.Open(MySQLDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// MySQLDSN builds the go-sql-driver DSN. The password is URL-encoded so
// special characters do not break parsing.
func MySQLDSN(cfg Config) string {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	userInfo := url.UserPassword(cfg.User, cfg.Password).String()

	return fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)
}
