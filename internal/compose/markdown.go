package compose

import (
	"bytes"
	"log"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/sitewright/sitewright/internal/project"
)

// md converts markdown project files into previewable markup. Configured
// once; goldmark.Markdown is safe for concurrent use.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// renderMarkdownPage converts a markdown file into an article-wrapped HTML
// fragment. The composer's skeleton pass turns it into a full page.
func renderMarkdownPage(f project.File) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(f.Content), &buf); err != nil {
		log.Printf("compose: rendering markdown %s: %v", f.Path, err)
		return "<pre>" + f.Content + "</pre>"
	}
	return `<article style="max-width:46rem;margin:2rem auto;font-family:sans-serif;line-height:1.6">` +
		"\n" + buf.String() + "</article>"
}
