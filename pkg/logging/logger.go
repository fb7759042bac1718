// Package logging defines the minimal interface that loggers must support to be used by ansible-bender.
package logging

import (
	"io"
)

// Logger defines behavior required by a logging package used by ansible-bender libraries
type Logger interface {
	Debug(msg string)
	Debugf(fmt string, v ...interface{})

	Info(msg string)
	Infof(fmt string, v ...interface{})

	Warn(msg string)
	Warnf(fmt string, v ...interface{})

	Error(msg string)
	Errorf(fmt string, v ...interface{})

	Writer() io.Writer

	IsVerbose() bool
}

type isSelectableWriter interface {
	WriterForLevel(level Level) io.Writer
}

// GetWriterForLevel retrieves the appropriate Writer for the log level provided.
//
// See isSelectableWriter
func GetWriterForLevel(logger Logger, level Level) io.Writer {
	if w, ok := logger.(isSelectableWriter); ok {
		return w.WriterForLevel(level)
	}

	return logger.Writer()
}

// Level represents log level for the output
type Level int

// Log levels
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)
