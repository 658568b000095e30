package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.Debugf("d %d", 1)
	l.Infof("i %d", 2)
	l.Warnf("w %d", 3)
	l.Errorf("e %d", 4)
	out := buf.String()
	if strings.Contains(out, "DEBUG") || strings.Contains(out, "INFO") {
		t.Fatalf("low-level lines leaked:\n%s", out)
	}
	if !strings.Contains(out, "WARN: w 3") || !strings.Contains(out, "ERROR: e 4") {
		t.Fatalf("missing lines:\n%s", out)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelNone)
	l.Errorf("hidden")
	if buf.Len() != 0 {
		t.Fatalf("LevelNone wrote %q", buf.String())
	}
	l.SetLevel(LevelDebug)
	l.Debugf("shown")
	if !strings.Contains(buf.String(), "DEBUG: shown") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestLogger_NilIsSafe(t *testing.T) {
	var l *Logger
	l.Infof("nothing")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" Info ":  LevelInfo,
		"warning": LevelWarn,
		"WARN":    LevelWarn,
		"error":   LevelError,
		"none":    LevelNone,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v, want %v", in, got, want)
		}
	}
}
