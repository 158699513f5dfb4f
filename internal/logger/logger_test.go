package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/op/go-logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  logging.Level
	}{
		{input: "", want: logging.INFO},
		{input: "debug", want: logging.DEBUG},
		{input: "WARN", want: logging.WARNING},
		{input: "warning", want: logging.WARNING},
		{input: "error", want: logging.ERROR},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("parse %q: expected %v, got %v", tt.input, tt.want, got)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, logging.WARNING)
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}, logging.INFO) })

	Infof("hidden %d", 1)
	Warningf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden 1") {
		t.Fatalf("info message should be filtered, got %q", out)
	}
	if !strings.Contains(out, "WARNING - shown 2") {
		t.Fatalf("expected warning message, got %q", out)
	}
}
