package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	NONE
)

var (
	level     = INFO
	stdLogger = log.New(os.Stderr, "[ghostchat] ", log.LstdFlags)
	warned    sync.Map
)

var (
	stderr  io.Writer = os.Stderr
	logFile *os.File
)

// ParseLevel maps a level name to a LogLevel. Unknown names fall back to INFO.
func ParseLevel(levelStr string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "none", "off":
		return NONE
	default:
		return INFO
	}
}

func Init(logfilePath string, levelStr string) error {
	level = ParseLevel(levelStr)

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	if logfilePath == "" {
		stdLogger.SetOutput(stderr)
		return nil
	}

	dir := filepath.Dir(logfilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(logfilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logFile = f
	stdLogger.SetOutput(io.MultiWriter(stderr, f))
	return nil
}

// SetOutput redirects log output until the next Init.
func SetOutput(w io.Writer) {
	stdLogger.SetOutput(w)
}

// DetachStderr keeps stderr free for a full-screen UI: output goes to the
// log file only, or nowhere without one, until restore is called.
func DetachStderr() (restore func()) {
	prev := stdLogger.Writer()
	if logFile != nil {
		stdLogger.SetOutput(logFile)
	} else {
		stdLogger.SetOutput(io.Discard)
	}
	return func() { stdLogger.SetOutput(prev) }
}

func Debug(msg string, args ...any) {
	if level <= DEBUG {
		stdLogger.Printf("[DEBUG] "+msg, args...)
	}
}

func Info(msg string, args ...any) {
	if level <= INFO {
		stdLogger.Printf("[INFO] "+msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if level <= WARN {
		stdLogger.Printf("[WARN] "+msg, args...)
	}
}

func Error(msg string, args ...any) {
	if level <= ERROR {
		stdLogger.Printf("[ERROR] "+msg, args...)
	}
}

// WarnOnce logs msg at WARN level the first time it is seen for key.
func WarnOnce(key string, msg string, args ...any) {
	if _, loaded := warned.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	Warn(msg, args...)
}
