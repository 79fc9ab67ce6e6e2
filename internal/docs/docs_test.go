package docs

import (
	"strings"
	"testing"
)

func TestTopics_ListsEmbeddedContent(t *testing.T) {
	t.Parallel()

	got := strings.Join(Topics(), ",")
	if got != "export,keys,storage,web" {
		t.Fatalf("Topics() = %q", got)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	md, ok := Get(" Keys ")
	if !ok || !strings.Contains(md, "# Keys") {
		t.Fatalf("Get(keys) = %q, %v", md, ok)
	}
	for _, bad := range []string{"", "nope", "../docs", "keys.md"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("Get(%q) should fail", bad)
		}
	}
}

func TestRender_StylesMarkdown(t *testing.T) {
	t.Parallel()

	md, _ := Get("keys")
	for _, dark := range []bool{false, true} {
		out := Render(md, 80, dark)
		if !strings.Contains(out, "Keys") || strings.Contains(out, "| --- |") {
			t.Fatalf("Render(dark=%v) did not render markdown:\n%s", dark, out)
		}
	}
	if Render("   ", 80, false) != "" {
		t.Fatalf("blank input should render empty")
	}
}

func TestExportTopic_NotesPDFCharset(t *testing.T) {
	t.Parallel()

	md, ok := Get("export")
	if !ok || !strings.Contains(md, "cp1252") || !strings.Contains(md, "print as `?`") {
		t.Fatalf("export topic should document the PDF character limit:\n%s", md)
	}
}
