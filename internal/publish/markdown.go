package publish

import (
	"strings"

	"todo-cli/internal/model"
)

type RenderOptions struct {
	// Title defaults to "Todos".
	Title string
	// Subtitle is an optional line under the title (e.g. the active filter).
	Subtitle string
}

func (o RenderOptions) title() string {
	if t := strings.TrimSpace(o.Title); t != "" {
		return t
	}
	return "Todos"
}

// RenderMarkdown renders tasks as a GitHub-style checklist.
func RenderMarkdown(tasks []model.Task, opt RenderOptions) string {
	var b strings.Builder
	writeLn := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
	}

	writeLn("# " + opt.title())
	writeLn("")
	if s := strings.TrimSpace(opt.Subtitle); s != "" {
		writeLn("_" + s + "_")
		writeLn("")
	}
	if len(tasks) == 0 {
		writeLn("(no tasks)")
		return b.String()
	}
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		writeLn("- " + box + " " + escapeLine(t.Text))
	}
	return b.String()
}

// escapeLine keeps a task on one list line.
func escapeLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
