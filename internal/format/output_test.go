package format

import (
	"bytes"
	"testing"
)

type greeting struct {
	Name string `json:"name"`
}

func (g greeting) Text() string { return "hello " + g.Name + "\n" }

func TestWrite_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		v      any
		pretty bool
		want   string
	}{
		{"json", greeting{Name: "ada"}, false, "{\"name\":\"ada\"}\n"},
		{"", map[string]int{"n": 1}, true, "{\n  \"n\": 1\n}\n"},
		{"text", greeting{Name: "ada"}, false, "hello ada\n"},
		{"TEXT", map[string]int{"n": 1}, false, "{\n  \"n\": 1\n}\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Write(&buf, tt.v, tt.format, tt.pretty); err != nil {
			t.Fatalf("Write(%q): %v", tt.format, err)
		}
		if buf.String() != tt.want {
			t.Fatalf("Write(%q) = %q, want %q", tt.format, buf.String(), tt.want)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, 1, "edn", false); err == nil {
		t.Fatalf("expected error")
	}
	if Valid("yaml") || !Valid("text") {
		t.Fatalf("Valid mismatch")
	}
}
