package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDefaultLoggerRoutesByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger(&out, &errOut, false)
	l.SetLevel(DebugLevel)

	l.Debug("dbg", Fields{"n": 3})
	l.Info("info")
	l.Warn("careful")
	l.Error(errors.New("boom"), "failed", Fields{"param": "radius"})

	if !strings.Contains(out.String(), "[DEBUG] dbg n=3") || !strings.Contains(out.String(), "[INFO] info") {
		t.Fatalf("stdout = %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[WARN] careful") {
		t.Fatalf("stderr missing warning: %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "[ERROR] failed: boom param=radius") {
		t.Fatalf("stderr missing error: %q", errOut.String())
	}
}

func TestDefaultLoggerLevelFilter(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger(&out, &errOut, false)
	l.Debug("hidden")
	if out.Len() != 0 {
		t.Fatalf("debug written at info level: %q", out.String())
	}
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	var out bytes.Buffer
	parent := NewWriterLogger(&out, &out, false)
	child := parent.WithFields(Fields{"component": "arraysim"})
	child.Info("child", Fields{"mics": 4})
	parent.Info("parent")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.Contains(lines[0], "component=arraysim mics=4") {
		t.Fatalf("child fields missing: %q", lines[0])
	}
	if strings.Contains(lines[1], "component") {
		t.Fatalf("parent picked up child fields: %q", lines[1])
	}
}

func TestSetGlobalLoggerNil(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	SetGlobalLogger(nil)
	if _, ok := GetGlobalLogger().(*NoOpLogger); !ok {
		t.Fatalf("nil logger should install NoOpLogger, got %T", GetGlobalLogger())
	}
	Info("dropped")
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != DebugLevel || ParseLevel("error") != ErrorLevel || ParseLevel("x") != InfoLevel {
		t.Fatalf("ParseLevel mismatch")
	}
}
