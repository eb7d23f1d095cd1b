package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/viewer.txt"

// MaxLines caps the in-memory history shown by the console; older lines are dropped.
// The log file keeps everything.
const MaxLines = 500

// Level tags a log line.
type Level string

const (
	Info  Level = "INFO"
	Warn  Level = "WARN"
	Error Level = "ERROR"
)

// Logger stores lines in memory for the console overlay and appends them to a file on disk.
// An optional mirror (e.g. os.Stderr for the CLI) receives every line too.
type Logger struct {
	mu     sync.Mutex
	path   string
	lines  []string
	mirror io.Writer
	now    func() time.Time
}

// New returns a Logger writing to LogFilePath.
func New() *Logger {
	return NewAt(LogFilePath)
}

// NewAt returns a Logger writing to path and ensures its directory exists.
// An empty path keeps lines in memory only.
func NewAt(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, lines: make([]string, 0), now: time.Now}
}

// SetMirror sets a writer that receives every stamped line.
func (l *Logger) SetMirror(w io.Writer) {
	l.mu.Lock()
	l.mirror = w
	l.mu.Unlock()
}

// Log appends an INFO line. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	l.write(Info, line)
}

// Infof, Warnf and Errorf format and append a line at their level.
func (l *Logger) Infof(format string, args ...any) { l.write(Info, fmt.Sprintf(format, args...)) }

func (l *Logger) Warnf(format string, args ...any) { l.write(Warn, fmt.Sprintf(format, args...)) }

func (l *Logger) Errorf(format string, args ...any) { l.write(Error, fmt.Sprintf(format, args...)) }

func (l *Logger) write(level Level, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + string(level) + " " + line

	l.lines = append(l.lines, stamped)
	if over := len(l.lines) - MaxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	if l.mirror != nil {
		_, _ = io.WriteString(l.mirror, stamped+"\n")
	}
	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
