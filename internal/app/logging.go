package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/glyph/internal/config"
)

// LogLevel is the severity of a log line.
type LogLevel int32

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name. Unknown names give LogLevelInfo.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToUpper(s)
	if s == "WARNING" {
		return LogLevelWarn
	}
	for i, name := range levelNames {
		if s == name {
			return LogLevel(i)
		}
	}
	return LogLevelInfo
}

// sink is the destination shared by a logger and the loggers derived
// from it, so redirecting or muting one affects the whole family.
type sink struct {
	mu       sync.Mutex
	w        io.Writer
	disabled bool
	level    atomic.Int32
}

// Logger writes leveled lines with a prefix and sorted key=value fields.
// The frame loop logs from one goroutine; the config watcher and signal
// handler may log concurrently.
type Logger struct {
	sink   *sink
	prefix string
	fields map[string]any
	suffix string // fields rendered once, " {a=1, b=2}"
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	Level LogLevel
	// Output defaults to io.Discard: the terminal belongs to the frame loop.
	Output io.Writer
	Prefix string
	// Session, when set, is attached to every line as the session field.
	Session string
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: io.Discard,
		Prefix: "glyph",
	}
}

// NewSessionID returns a fresh identifier for one run of the program.
func NewSessionID() string {
	return uuid.NewString()
}

// NewLogger creates a logger.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = io.Discard
	}
	s := &sink{w: cfg.Output}
	s.level.Store(int32(cfg.Level))

	fields := map[string]any{}
	if cfg.Session != "" {
		fields["session"] = cfg.Session
	}
	return newLogger(s, cfg.Prefix, fields)
}

func newLogger(s *sink, prefix string, fields map[string]any) *Logger {
	l := &Logger{sink: s, prefix: prefix, fields: fields}
	if len(fields) == 0 {
		return l
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(" {")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, fields[k])
	}
	b.WriteByte('}')
	l.suffix = b.String()
	return l
}

// OpenLogger creates the logger described by cfg. Lines are appended to
// cfg.File; without a file they are discarded. The returned closer closes
// the file and is never nil.
func OpenLogger(cfg config.LogConfig, session string) (*Logger, io.Closer, error) {
	lc := DefaultLoggerConfig()
	lc.Level = ParseLogLevel(cfg.Level)
	lc.Session = session
	if cfg.File == "" {
		return NewLogger(lc), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, &FileError{Op: "open log", Path: cfg.File, Err: err}
	}
	lc.Output = f
	return NewLogger(lc), f, nil
}

// WithField returns a logger that adds key=value to every line.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a logger that adds fields to every line. The
// receiver is unchanged; both keep writing to the same output.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return newLogger(l.sink, l.prefix, merged)
}

// WithComponent returns a logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

func (l *Logger) SetLevel(level LogLevel) {
	l.sink.level.Store(int32(level))
}

func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.w = w
}

func (l *Logger) Disable() {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.disabled = true
}

func (l *Logger) Enable() {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.disabled = false
}

// Enabled reports whether lines of level would be written. Callers on the
// frame path use it to skip building arguments.
func (l *Logger) Enabled(level LogLevel) bool {
	if level < LogLevel(l.sink.level.Load()) {
		return false
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return !l.sink.disabled
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LogLevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LogLevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LogLevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(LogLevelError, msg, args) }

func (l *Logger) log(level LogLevel, msg string, args []any) {
	if level < LogLevel(l.sink.level.Load()) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05.000"))
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("] ")
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	b.WriteString(msg)
	b.WriteString(l.suffix)
	b.WriteByte('\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if !l.sink.disabled {
		_, _ = io.WriteString(l.sink.w, b.String())
	}
}

// NullLogger discards everything.
var NullLogger = func() *Logger {
	l := NewLogger(LoggerConfig{Level: LogLevelError + 1})
	l.sink.disabled = true
	return l
}()

var (
	appLoggerMu sync.Mutex
	appLogger   *Logger
)

// GetLogger returns the process-wide logger, creating a discarding one on
// first use.
func GetLogger() *Logger {
	appLoggerMu.Lock()
	defer appLoggerMu.Unlock()
	if appLogger == nil {
		appLogger = NewLogger(DefaultLoggerConfig())
	}
	return appLogger
}

// SetLogger replaces the process-wide logger. cmd/glyph sets it once the
// log file is open.
func SetLogger(l *Logger) {
	appLoggerMu.Lock()
	defer appLoggerMu.Unlock()
	appLogger = l
}
