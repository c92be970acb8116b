package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/iiTONELOC/web-app-auth-server/logger"
)

// parseLogLevel converts the configured string level to GORM's LogLevel.
// Unknown values fall back to Info so misconfiguration is loud, not silent.
func parseLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	default:
		return gormlogger.Info
	}
}

// queryLogger routes GORM's logging through the application logger so SQL
// statements carry the same component tags and format as everything else.
type queryLogger struct {
	log           *logger.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(log *logger.Logger, slowThreshold time.Duration, level gormlogger.LogLevel) gormlogger.Interface {
	return &queryLogger{
		log:           log.WithComponent("gorm"),
		level:         level,
		slowThreshold: slowThreshold,
	}
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *queryLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *queryLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *queryLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Error(fmt.Sprintf(msg, data...))
	}
}

// Trace logs each executed statement. Record-not-found is an expected
// outcome of lookups, not a query error, so it only surfaces as a normal
// statement line.
func (l *queryLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := logger.Fields(
		"sql", sql,
		"rows", rows,
		logger.FieldDuration, elapsed.Milliseconds(),
	)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		fields[logger.FieldError] = err.Error()
		l.log.Error("Statement failed", fields)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		fields["threshold"] = l.slowThreshold.String()
		l.log.Warn("Slow statement", fields)
	case l.level >= gormlogger.Info:
		l.log.Debug("Statement executed", fields)
	}
}
