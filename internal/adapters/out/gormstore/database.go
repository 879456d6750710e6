package gormstore

import (
	"fmt"
	"strings"

	"production/internal/adapters/out/gormstore/historyrepo"
	"production/internal/adapters/out/gormstore/orderrepo"
	"production/internal/adapters/out/gormstore/userrepo"
	"production/internal/pkg/errs"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects and addresses the database.
type Config struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// DSN builds the connection string for the configured driver.
func (c Config) DSN() (string, error) {
	switch strings.ToLower(c.Driver) {
	case DriverPostgres:
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, sslMode), nil
	case DriverSQLite:
		if c.SQLitePath == "" {
			return "", errs.NewValueIsRequiredError("sqlite path")
		}
		return c.SQLitePath, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("driver", fmt.Errorf("unsupported driver %q", c.Driver))
	}
}

// Open connects to the configured database. SQLite is limited to a single
// connection so that transactions serialize instead of failing with
// "database is locked".
func Open(cfg Config) (*gorm.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var dialector gorm.Dialector
	if strings.ToLower(cfg.Driver) == DriverSQLite {
		dialector = sqlite.Open(dsn)
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	if strings.ToLower(cfg.Driver) == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates every table this package owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.WorkOrderDTO{},
		&orderrepo.StageDTO{},
		&historyrepo.RecordDTO{},
		&userrepo.PrincipalDTO{},
	)
}
