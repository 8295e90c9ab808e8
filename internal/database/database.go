package database

import (
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Connect opens PostgreSQL for postgres:// URLs and SQLite for anything else.
// SQLite gets a single connection so that transactions serialize the same
// way row locks do on PostgreSQL.
func Connect(dsn string, log *zap.Logger, gormLog gormlogger.Interface) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if gormLog == nil {
		gormLog = gormlogger.Default.LogMode(gormlogger.Warn)
	}
	cfg := &gorm.Config{Logger: gormLog}

	if IsPostgresDSN(dsn) {
		log.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Info("using SQLite for local development", zap.String("dsn", dsn))

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	return db, nil
}

func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func Dialect(db *gorm.DB) string {
	return db.Dialector.Name()
}
