// Package logging wires the application logger to a file in the data
// directory. The TUI owns the terminal while it runs, so warnings and
// errors go to tracker.log instead of stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileName is the log file kept alongside the data file.
const FileName = "tracker.log"

// Open returns a logger appending to <dataDir>/tracker.log and a closer
// for the underlying file. If the file cannot be opened the logger
// discards everything; logging failures never block the app.
func Open(dataDir string) (*logrus.Logger, io.Closer) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}
	}

	path := filepath.Join(dataDir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}
	}

	logger.SetOutput(f)
	return logger, f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
