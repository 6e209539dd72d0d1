// Package logging configures the application logger. The terminal belongs to
// the UI, so log output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const DefaultLevel = "info"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing to path at the given level. An empty path
// discards all output. The returned Closer releases the log file.
func New(path, level string) (*logrus.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if strings.TrimSpace(path) == "" {
		log.SetOutput(io.Discard)
		return log, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(file)
	return log, file, nil
}

// ParseLevel accepts logrus level names; empty means DefaultLevel.
func ParseLevel(level string) (logrus.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(level))
	if trimmed == "" {
		trimmed = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(trimmed)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return lvl, nil
}

// Levels lists the accepted level names.
func Levels() []string {
	names := make([]string, 0, len(logrus.AllLevels))
	for _, lvl := range logrus.AllLevels {
		names = append(names, lvl.String())
	}
	return names
}
