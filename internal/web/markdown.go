package web

import (
	"bytes"
	"html/template"
	"path"
	"strings"

	"todo-cli/internal/docs"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// docsMarkdown renders the embedded help topics. Headings get ids so topics can link
// to sections, and links between topic files point at their /docs pages.
var docsMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithASTTransformers(util.Prioritized(topicLinkRewriter{}, 100)),
	),
	// Raw HTML stays off (no html.WithUnsafe()).
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// topicLinkRewriter turns relative "storage.md#frag" links into "/docs/storage#frag".
// Links to anything that isn't an embedded topic are left alone.
type topicLinkRewriter struct{}

func (topicLinkRewriter) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			if dest, ok := topicHref(string(link.Destination)); ok {
				link.Destination = []byte(dest)
			}
		}
		return ast.WalkContinue, nil
	})
}

func topicHref(dest string) (string, bool) {
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "/") {
		return "", false
	}
	file, frag, _ := strings.Cut(dest, "#")
	if path.Ext(file) != ".md" || strings.Contains(file, "/") {
		return "", false
	}
	topic := strings.TrimSuffix(file, ".md")
	if _, ok := docs.Get(topic); !ok {
		return "", false
	}
	href := "/docs/" + topic
	if frag != "" {
		href += "#" + frag
	}
	return href, true
}

func renderMarkdownHTML(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return template.HTML("")
	}
	var b bytes.Buffer
	if err := docsMarkdown.Convert([]byte(src), &b); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(b.String())
}
