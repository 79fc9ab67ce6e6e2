package docs

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

var (
	rendererMu sync.Mutex
	// Keyed by style + wrap width. Fixed styles avoid WithAutoStyle's terminal queries.
	renderers = map[string]*glamour.TermRenderer{}
)

// Render renders markdown for a terminal. On renderer errors the source is returned as-is.
func Render(md string, width int, dark bool) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	style := "light"
	if dark {
		style = "dark"
	}
	key := style + ":" + strconv.Itoa(width)

	rendererMu.Lock()
	r := renderers[key]
	rendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(styleConfig(style)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		rendererMu.Lock()
		if existing := renderers[key]; existing != nil {
			r = existing
		} else {
			renderers[key] = rr
			r = rr
		}
		rendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func styleConfig(name string) ansi.StyleConfig {
	if name == "light" {
		return styles.LightStyleConfig
	}
	return styles.DarkStyleConfig
}
