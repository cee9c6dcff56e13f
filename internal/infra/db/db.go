// Package db opens the relational store. DATABASE_URL values starting with
// "sqlite:" select an embedded SQLite database, anything else is handed to Postgres.
package db

import (
	"strings"

	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/infra/migrate"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

func IsSQLite(dsn string) bool {
	return strings.HasPrefix(dsn, sqlitePrefix)
}

func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
	if IsSQLite(dsn) {
		return gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix)), cfg)
	}
	return gorm.Open(postgres.Open(dsn), cfg)
}

// Migrate brings the schema up to date: versioned SQL migrations on Postgres,
// AutoMigrate on SQLite.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info("auto-migrating sqlite schema")
		return db.AutoMigrate(&model.User{}, &model.Tag{})
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	log.Info("applying postgres migrations")
	return migrate.Up(sqlDB)
}
