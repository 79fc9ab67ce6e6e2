// Package publish exports task lists as Markdown or PDF.
package publish

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"todo-cli/internal/model"
)

type Format string

const (
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected md|pdf)", s)
	}
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/markdown; charset=utf-8"
}

func (f Format) Ext() string { return "." + string(f) }

// Render returns the document bytes for f.
func Render(f Format, tasks []model.Task, opt RenderOptions) ([]byte, error) {
	switch f {
	case FormatPDF:
		var buf bytes.Buffer
		if err := WritePDF(&buf, tasks, opt); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatMarkdown:
		return []byte(RenderMarkdown(tasks, opt)), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", string(f))
	}
}

// WriteFile writes b to path, creating parent dirs. Existing files are kept unless overwrite is set.
func WriteFile(path string, b []byte, overwrite bool) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("missing output path")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0o644)
}
