package logging

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/apex/log"

	"github.com/hroncok/ansible-bender/internal/style"
)

const (
	errorLevelText = "ERROR: "
	warnLevelText  = "Warning: "
	lineFeed       = '\n'

	// time format the out logging uses
	timeFmt = "2006/01/02 15:04:05.000000"
)

// LogWithWriters is a logger used with the ansible-bender CLI. It conforms
// to the Logger interface and writes to the provided stdout/stderr writers
// through an apex/log handler.
type LogWithWriters struct {
	sync.Mutex
	log.Logger
	wantTime bool
	clock    func() time.Time
	out      io.Writer
	errOut   io.Writer
}

// NewLogWithWriters creates a logger to be used with the CLI.
func NewLogWithWriters(stdout, stderr io.Writer, opts ...func(*LogWithWriters)) *LogWithWriters {
	lw := &LogWithWriters{
		Logger: log.Logger{
			Level: log.InfoLevel,
		},
		wantTime: false,
		clock:    time.Now,
		out:      stdout,
		errOut:   stderr,
	}
	lw.Logger.Handler = lw

	for _, opt := range opts {
		opt(lw)
	}

	return lw
}

// WithClock is an option used to initialize a LogWithWriters with a given clock function
func WithClock(clock func() time.Time) func(writers *LogWithWriters) {
	return func(logger *LogWithWriters) {
		logger.clock = clock
	}
}

// WithVerbose is an option used to initialize a LogWithWriters with verbose logging
func WithVerbose() func(writers *LogWithWriters) {
	return func(logger *LogWithWriters) {
		logger.Level = log.DebugLevel
	}
}

// HandleLog handles log events, printing entries appropriately
func (lw *LogWithWriters) HandleLog(e *log.Entry) error {
	lw.Lock()
	defer lw.Unlock()

	writer := lw.WriterForLevel(Level(e.Level))

	prefix := ""
	if lw.wantTime {
		prefix = fmt.Sprintf("%s ", lw.clock().Format(timeFmt))
	}

	_, err := fmt.Fprint(writer, appendMissingLineFeed(fmt.Sprintf("%s%s", prefix, label(e))))

	return err
}

// WriterForLevel returns a Writer for the given Level
func (lw *LogWithWriters) WriterForLevel(level Level) io.Writer {
	if lw.Level > log.Level(level) {
		return io.Discard
	}

	if level == ErrorLevel {
		return lw.errOut
	}

	return lw.out
}

// Writer returns the base Writer used by the LogWithWriters
func (lw *LogWithWriters) Writer() io.Writer {
	return lw.out
}

// WantTime turns timestamps in output on or off
func (lw *LogWithWriters) WantTime(f bool) {
	lw.wantTime = f
}

// WantQuiet reduces the logging level if set to true
func (lw *LogWithWriters) WantQuiet(f bool) {
	if f {
		lw.Level = log.WarnLevel
	}
}

// WantVerbose increases the logging level if set to true
func (lw *LogWithWriters) WantVerbose(f bool) {
	if f {
		lw.Level = log.DebugLevel
	}
}

// IsVerbose returns whether verbose logging is on
func (lw *LogWithWriters) IsVerbose() bool {
	return lw.Level == log.DebugLevel
}

func label(e *log.Entry) string {
	switch e.Level {
	case log.WarnLevel:
		return style.Warn(warnLevelText) + e.Message
	case log.ErrorLevel, log.FatalLevel:
		return style.Error(errorLevelText) + e.Message
	default:
		return e.Message
	}
}

func appendMissingLineFeed(msg string) string {
	buff := []byte(msg)
	if len(buff) == 0 || buff[len(buff)-1] != lineFeed {
		buff = append(buff, lineFeed)
	}
	return string(buff)
}
