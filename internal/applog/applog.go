// Package applog builds the process-wide logrus logger.
package applog

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"pageserver/internal/config"
)

// New returns a logger writing to w. JSON output carries the timestamp under "ts"
// so lines match the {"ts","level","msg",...} shape used across the service.
func New(cfg config.LogConfig, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	var inner logrus.Formatter
	if cfg.Format == "text" {
		inner = &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339Nano}
	} else {
		inner = &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
			},
		}
	}
	logger.SetFormatter(&zoneFormatter{inner: inner, loc: Location(cfg.Timezone)})

	return logger
}

// Location resolves an IANA zone name, falling back to UTC.
func Location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// zoneFormatter renders entry timestamps in a fixed location.
type zoneFormatter struct {
	inner logrus.Formatter
	loc   *time.Location
}

func (f *zoneFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.In(f.loc)
	return f.inner.Format(e)
}
