package publish

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo-cli/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "task-a", Text: "buy milk", Completed: false},
		{ID: "task-b", Text: "call mom", Completed: true},
	}
}

func TestRenderMarkdown_Checklist(t *testing.T) {
	t.Parallel()

	md := RenderMarkdown(sampleTasks(), RenderOptions{Subtitle: "Showing: All"})
	want := "# Todos\n\n_Showing: All_\n\n- [ ] buy milk\n- [x] call mom\n"
	if md != want {
		t.Fatalf("markdown mismatch\n got: %q\nwant: %q", md, want)
	}
}

func TestRenderMarkdown_EmptyAndMultiline(t *testing.T) {
	t.Parallel()

	if md := RenderMarkdown(nil, RenderOptions{Title: "Inbox"}); !strings.Contains(md, "# Inbox") || !strings.Contains(md, "(no tasks)") {
		t.Fatalf("unexpected empty render:\n%s", md)
	}
	md := RenderMarkdown([]model.Task{{ID: "task-x", Text: "one\ntwo"}}, RenderOptions{})
	if !strings.Contains(md, "- [ ] one two\n") {
		t.Fatalf("expected newline flattened, got:\n%s", md)
	}
}

func TestWritePDF_ProducesPDF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleTasks(), RenderOptions{Title: "Todos"}); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected pdf header, got %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"Markdown", FormatMarkdown, false},
		{"pdf", FormatPDF, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestWriteFile_RespectsOverwrite(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "out", "todos.md")
	if err := WriteFile(p, []byte("one"), false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(p, []byte("two"), false); err == nil {
		t.Fatalf("expected error when file exists")
	}
	if err := WriteFile(p, []byte("two"), true); err != nil {
		t.Fatalf("WriteFile overwrite: %v", err)
	}
	b, _ := os.ReadFile(p)
	if string(b) != "two" {
		t.Fatalf("content = %q", string(b))
	}
}
