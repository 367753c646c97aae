package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		" warn ":  WARN,
		"warning": WARN,
		"error":   ERROR,
		"none":    NONE,
		"bogus":   INFO,
		"":        INFO,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := Init("", "warn"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	SetOutput(&buf)
	defer Init("", "info")

	Info("hidden %d", 1)
	Warn("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 2") {
		t.Errorf("expected warn message, got %q", out)
	}
}

func TestWarnOnce(t *testing.T) {
	var buf bytes.Buffer
	level = WARN
	SetOutput(&buf)
	defer Init("", "info")

	WarnOnce("k", "first")
	WarnOnce("k", "second")

	if n := strings.Count(buf.String(), "[WARN]"); n != 1 {
		t.Errorf("expected a single warning, got %d: %q", n, buf.String())
	}
}

func TestInitWithFile(t *testing.T) {
	var buf bytes.Buffer
	stderr = &buf
	defer func() { stderr = os.Stderr }()

	path := filepath.Join(t.TempDir(), "logs", "ghostchat.log")
	if err := Init(path, "debug"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Init("", "info")

	Debug("to both")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "to both") || !strings.Contains(buf.String(), "to both") {
		t.Errorf("expected the line in file and stderr, file=%q stderr=%q", data, buf.String())
	}
}

func TestDetachStderr(t *testing.T) {
	var buf bytes.Buffer
	stderr = &buf
	defer func() { stderr = os.Stderr }()

	path := filepath.Join(t.TempDir(), "ghostchat.log")
	if err := Init(path, "info"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Init("", "info")

	restore := DetachStderr()
	Warn("while detached")
	restore()
	Warn("after restore")

	if strings.Contains(buf.String(), "while detached") {
		t.Errorf("stderr received a line while detached: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "after restore") {
		t.Errorf("stderr output was not restored: %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "while detached") {
		t.Errorf("log file missed the detached line: %q", data)
	}

	// Without a file, detached output is dropped.
	if err := Init("", "info"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	buf.Reset()
	restore = DetachStderr()
	Warn("dropped")
	restore()
	if buf.Len() != 0 {
		t.Errorf("expected nothing on stderr, got %q", buf.String())
	}
}
