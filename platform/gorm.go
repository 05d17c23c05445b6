package platform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// gormLogger routes GORM's trace output into logrus.
type gormLogger struct {
	log           *logrus.Logger
	slowThreshold time.Duration
}

// NewGormLogger returns a logger.Interface backed by the given logrus logger.
func NewGormLogger(log *logrus.Logger) logger.Interface {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &gormLogger{log: log, slowThreshold: defaultSlowThreshold}
}

// LogMode is a no-op, levels come from logrus.
func (l *gormLogger) LogMode(logger.LogLevel) logger.Interface {
	return l
}

func (l *gormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	l.log.Infof(msg, data...)
}

func (l *gormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	l.log.Warnf(msg, data...)
}

func (l *gormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	l.log.Errorf(msg, data...)
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	line := fmt.Sprintf("[%.3fms] [rows:%d] %s", float64(elapsed.Nanoseconds())/1e6, rows, sql)

	switch {
	case err != nil && errors.Is(err, gorm.ErrRecordNotFound):
		l.log.Debugf("database query, no records found %s", line)
	case err != nil:
		l.log.Errorf("database query failed: %s %s", err, line)
	case elapsed > l.slowThreshold:
		l.log.Warnf("slow query (>%v) %s", l.slowThreshold, line)
	default:
		l.log.Debugf("database query %s", line)
	}
}
