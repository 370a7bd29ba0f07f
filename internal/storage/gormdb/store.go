// Package gormdb implements the persistence ports on GORM/PostgreSQL.
package gormdb

import (
	"strings"
	"time"

	"github.com/warehub/warehub/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database described by cfg. TranslateError is enabled
// so unique-index violations surface as gorm.ErrDuplicatedKey and can be
// mapped to the conflict error class.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConn)
	sqlDB.SetMaxIdleConns(cfg.IdleConn)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// orderBy resolves an API sort field against a whitelist of columns to keep
// user input out of the SQL. Unknown fields fall back to def.
func orderBy(allowed map[string]string, sortBy, sortOrder, def string) string {
	col, ok := allowed[sortBy]
	if !ok || col == "" {
		return def
	}
	dir := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		dir = "DESC"
	}
	return col + " " + dir
}

func pageBounds(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 10
	}
	return (page - 1) * pageSize, pageSize
}
