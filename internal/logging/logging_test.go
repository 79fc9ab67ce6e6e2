package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{" WARN ", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"chatty", log.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := New(Options{Level: "warn", Output: &buf, Prefix: "web"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("hidden")
	l.Warn("shown", "k", "v")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "web") || !strings.Contains(out, "k=v") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestOpenFile_Appends(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "logs", "todo.log")
	l, c, err := OpenFile(p, Options{Level: "info"})
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	l.Info("first")
	_ = c.Close()

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "first") {
		t.Fatalf("log file missing entry: %q", string(b))
	}
}
