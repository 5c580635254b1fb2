// Package log provides structured logging for the timer.
// Entries carry a level, a category and key=value fields. Logging is off
// unless a file is opened with Open: the --debug flag, debug = true under
// [log] in the config file, or POMODORO_LOG_DEBUG=true.
package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN", "warning":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Category groups related log messages.
type Category string

const (
	CatEngine Category = "engine" // Countdown loop and interval transitions
	CatConfig Category = "config" // Configuration loading/saving
	CatCLI    Category = "cli"    // Command dispatch and exit handling
	CatUI     Category = "ui"     // Display sinks and the bubbletea program
	CatTrace  Category = "trace"  // Tracing provider lifecycle
)

// Logger writes structured entries to a writer.
// A nil *Logger is valid and discards everything.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	minLevel Level
	now      func() time.Time
}

// New creates a logger writing entries at or above minLevel to w.
func New(w io.Writer, minLevel Level) *Logger {
	return &Logger{
		writer:   w,
		minLevel: minLevel,
		now:      time.Now,
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return nil
}

// Open opens (or appends to) the log file at path through tea.LogToFile, so
// bubbletea's own diagnostics land in the same file. The returned cleanup
// closes the file.
func Open(path string, minLevel Level) (*Logger, func(), error) {
	f, err := tea.LogToFile(path, "pomodoro")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, minLevel), func() { _ = f.Close() }, nil
}

// Debug logs at debug level.
func (l *Logger) Debug(cat Category, msg string, fields ...any) {
	l.log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func (l *Logger) Info(cat Category, msg string, fields ...any) {
	l.log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func (l *Logger) Warn(cat Category, msg string, fields ...any) {
	l.log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func (l *Logger) Error(cat Category, msg string, fields ...any) {
	l.log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func (l *Logger) ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	l.log(LevelError, cat, msg, fields...)
}

func (l *Logger) log(level Level, cat Category, msg string, fields ...any) {
	if l == nil || l.writer == nil || level < l.minLevel {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Format: 2025-12-06T10:45:00 [INFO] [engine] message key=value key2=value2
	entry := fmt.Sprintf("%s [%s] [%s] %s", l.now().Format("2006-01-02T15:04:05"), level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}
	entry += "\n"

	_, _ = l.writer.Write([]byte(entry))
}
