package db

import (
	"fmt"
	"strings"

	"vitalmonitor/confs"
	"vitalmonitor/entities"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres connection described by the config and
// migrates the schema.
func Connect(cfg *confs.Config) (Database, error) {
	var dsn string

	if cfg.DBURL != "" {
		dsn = cfg.DBURL

		// Hosted databases require SSL; add it when the URL omits it.
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
	} else {
		if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBPassword == "" || cfg.DBName == "" {
			return nil, fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
		}

		sslMode := "require"
		if cfg.DBHost == "localhost" || cfg.DBHost == "127.0.0.1" {
			sslMode = "disable"
		}

		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, sslMode)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(gormDB); err != nil {
		return nil, err
	}

	return &GormDatabase{DB: gormDB}, nil
}

// Migrate creates or updates the tables for all entities.
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(&entities.User{}, &entities.Device{}, &entities.Reading{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
