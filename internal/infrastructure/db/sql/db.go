package sql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultTimeout = 10 * time.Second
	slowQuery      = 200 * time.Millisecond
)

// Config captures the settings required to open the relational store.
type Config struct {
	// DSN is either a postgres URL / key=value string or a SQLite file path.
	DSN     string
	Debug   bool
	Timeout time.Duration
}

// Connect opens the database selected by cfg.DSN and verifies connectivity
// with a ping.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*gorm.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	level, writer := gormlogger.Warn, gormWriter{log: log, level: zerolog.WarnLevel}
	if cfg.Debug {
		level, writer.level = gormlogger.Info, zerolog.DebugLevel
	}

	db, err := gorm.Open(dialector(cfg.DSN), &gorm.Config{
		Logger: gormlogger.New(writer, gormlogger.Config{
			SlowThreshold:             slowQuery,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	return db, nil
}

// Driver reports which gorm dialect Connect would pick for dsn.
func Driver(dsn string) string {
	return dialector(dsn).Name()
}

func dialector(dsn string) gorm.Dialector {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.HasPrefix(lower, "host=") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// gormWriter forwards gorm's printf-style output to zerolog at a fixed level.
type gormWriter struct {
	log   zerolog.Logger
	level zerolog.Level
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.WithLevel(w.level).Str("component", "gorm").Msgf(format, args...)
}
