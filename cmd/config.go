package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"production/internal/adapters/out/gormstore"
	"production/internal/core/domain/services"
	"production/internal/jobs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort             string
	DBDriver             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	SQLitePath           string
	StageCatalogFile     string
	ReportExportSchedule string
	ReportExportDir      string
	ReportIdealMinutes   int
	ReportTimezone       string
	SeedAdminUsername    string
	SeedAdminPassword    string
	BcryptCost           int
	LogLevel             string
}

// LoadConfig reads the environment, after loading envFile if it exists.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	idealMinutes, err := intVariable("REPORT_IDEAL_MINUTES", services.DefaultIdealMinutes)
	if err != nil {
		return Config{}, err
	}
	bcryptCost, err := intVariable("BCRYPT_COST", 0)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:             variable("HTTP_PORT", "8080"),
		DBDriver:             variable("DB_DRIVER", gormstore.DriverPostgres),
		DBHost:               variable("DB_HOST", "localhost"),
		DBPort:               variable("DB_PORT", "5432"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               variable("DB_NAME", "production"),
		DBSslMode:            variable("DB_SSLMODE", "disable"),
		SQLitePath:           variable("SQLITE_PATH", "production.db"),
		StageCatalogFile:     os.Getenv("STAGE_CATALOG_FILE"),
		ReportExportSchedule: variable("REPORT_EXPORT_SCHEDULE", jobs.DefaultReportSchedule),
		ReportExportDir:      variable("REPORT_EXPORT_DIR", "reports"),
		ReportIdealMinutes:   idealMinutes,
		ReportTimezone:       variable("REPORT_TIMEZONE", "UTC"),
		SeedAdminUsername:    variable("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword:    os.Getenv("SEED_ADMIN_PASSWORD"),
		BcryptCost:           bcryptCost,
		LogLevel:             variable("LOG_LEVEL", "info"),
	}, nil
}

// Database returns the connection settings for gormstore.Open.
func (c Config) Database() gormstore.Config {
	return gormstore.Config{
		Driver:     c.DBDriver,
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUser,
		Password:   c.DBPassword,
		Name:       c.DBName,
		SSLMode:    c.DBSslMode,
		SQLitePath: c.SQLitePath,
	}
}

// Location resolves ReportTimezone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.ReportTimezone)
}

func variable(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intVariable(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
