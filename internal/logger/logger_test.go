package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden message")

	if buf.Len() > 0 {
		t.Error("expected no output when verbose is disabled")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	output := buf.String()
	if !strings.Contains(output, "[DEBUG] test message arg") {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestInfo(t *testing.T) {
	defer SetOutput(os.Stderr)

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("added %d rows", 4)

	output := buf.String()
	if !strings.Contains(output, "[INFO] added 4 rows") {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestError(t *testing.T) {
	defer SetOutput(os.Stderr)

	var buf bytes.Buffer
	SetOutput(&buf)

	Error("cycle failed: %s", "boom")

	output := buf.String()
	if !strings.Contains(output, "[ERROR] cycle failed: boom") {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestInitFile(t *testing.T) {
	defer SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "runsheet.log")
	if err := InitFile(path); err != nil {
		t.Fatalf("InitFile: %v", err)
	}

	Info("file sink works")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "file sink works") {
		t.Errorf("log file missing message, got: %q", string(data))
	}
}
