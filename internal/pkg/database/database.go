package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskhub/internal/model"
	"taskhub/internal/pkg/config"
	pkglogger "taskhub/internal/pkg/logger"
)

var DB *gorm.DB

// Init opens the database connection and migrates the schema.
func Init(cfg *config.DatabaseConfig) error {
	var err error

	logLevel := getLogLevel(cfg.LogLevel)

	gormConfig := &gorm.Config{
		Logger: logger.New(pkglogger.GetWriter(), logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logLevel,
			Colorful:      true,
		}).LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	switch cfg.Driver {
	case "mysql":
		DB, err = gorm.Open(mysql.Open(cfg.GetDSN()), gormConfig)
	default:
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
				return fmt.Errorf("create database directory: %w", mkErr)
			}
		}
		DB, err = gorm.Open(sqlite.Open(cfg.Path), gormConfig)
	}
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	return Migrate(DB)
}

// Migrate creates or updates the entity tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.ProjectMember{},
		&model.Task{},
		&model.TaskComment{},
		&model.TaskAttachment{},
		&model.ChatMessage{},
		&model.Report{},
		&model.ReportComment{},
		&model.ReportFile{},
	)
}

// Close closes the database connection.
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// GetDB returns the database handle.
func GetDB() *gorm.DB {
	return DB
}

func getLogLevel(level string) logger.LogLevel {
	switch level {
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Silent
	}
}
