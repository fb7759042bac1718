package logging

import (
	"fmt"
	"io"

	"github.com/apex/log"
)

type simpleLogger struct {
	log.Logger
	w io.Writer
}

// NewSimpleLogger creates a logger without any decoration. Useful for tests
// and for embedding into other tools.
func NewSimpleLogger(w io.Writer) Logger {
	sl := &simpleLogger{
		w: w,
	}
	sl.Logger.Handler = sl
	sl.Logger.Level = log.DebugLevel
	return sl
}

func (sl *simpleLogger) HandleLog(e *log.Entry) error {
	switch e.Level {
	case log.WarnLevel:
		_, _ = fmt.Fprintf(sl.w, "Warning: %s\n", e.Message)
	case log.ErrorLevel, log.FatalLevel:
		_, _ = fmt.Fprintf(sl.w, "ERROR: %s\n", e.Message)
	default:
		_, _ = fmt.Fprintln(sl.w, e.Message)
	}

	return nil
}

func (sl *simpleLogger) Writer() io.Writer {
	return sl.w
}

func (sl *simpleLogger) IsVerbose() bool {
	return true
}
