// Package logging builds the program logger. The terminal belongs to the UI,
// so logs go to a file or nowhere.
package logging

import (
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/pkg/errors"
)

// Setup returns a logger writing to path at the given verbosity, and a
// func closing the file. An empty path discards logs.
func Setup(path string, verbosity int) (logr.Logger, func() error, error) {
	if path == "" {
		return logr.Discard(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logr.Discard(), nil, errors.Wrap(err, "open log file")
	}
	stdLogger := log.New(f, "", log.LstdFlags)
	logger := stdr.NewWithOptions(stdLogger, stdr.Options{LogCaller: stdr.Error}).WithName("polymap")
	stdr.SetVerbosity(verbosity)
	return logger, f.Close, nil
}
