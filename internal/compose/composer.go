// Package compose assembles a project file set into one self-contained
// preview document: target markup, inlined styles and scripts, detected
// third-party resources, and the navigation shim. Composition is a pure
// function of its inputs; identical set and target produce byte-identical
// output, which the navigation loop relies on.
package compose

import (
	"strings"

	"github.com/sitewright/sitewright/internal/libdetect"
	"github.com/sitewright/sitewright/internal/project"
)

// Result is a composed preview document. An empty Document with ok Pages
// means the set had no previewable target; that is a defined degraded
// state, not an error.
type Result struct {
	Document string
	Target   string
	Pages    []string
}

// Empty reports whether composition found no previewable content.
func (r Result) Empty() bool { return r.Document == "" }

// Composer builds preview documents. Safe for concurrent use.
type Composer struct {
	detector libdetect.Detector
}

// New creates a Composer with the default signature detector.
func New() *Composer {
	return &Composer{detector: libdetect.New()}
}

// NewWithDetector creates a Composer using the given detector.
func NewWithDetector(d libdetect.Detector) *Composer {
	return &Composer{detector: d}
}

// Compose builds the preview document for the given target path. An empty
// target selects the entry file (first markup file in priority order).
func (c *Composer) Compose(fs *project.FileSet, target string) Result {
	arranged := arrangedCopy(fs)
	pages := arranged.Pages()

	tf, ok := selectTarget(arranged, target)
	if !ok {
		return Result{Pages: pages}
	}

	doc := tf.Content
	if tf.Kind == project.KindText {
		doc = renderMarkdownPage(tf)
	}
	doc = ensureSkeleton(doc, pageTitle(tf.Path))

	// Styles: drop local stylesheet references (their content is inlined
	// below), keep remote ones, then inject the concatenated block at the
	// end of the head.
	doc = stripLocalStylesheets(doc)
	if styles := concatContents(arranged.ByKind(project.KindStyle)); styles != "" {
		doc = insertBeforeHeadClose(doc, "<style>\n"+styles+"\n</style>")
	}

	// Third-party resources inferred from the content so far.
	for _, res := range c.detector.Detect(doc) {
		switch res.Placement {
		case libdetect.PlacementHead:
			doc = insertBeforeHeadClose(doc, res.HTML())
		default:
			doc = insertBeforeBodyClose(doc, res.HTML())
		}
	}

	// Scripts: same treatment as styles, injected at the end of the body
	// so libraries inserted above load first.
	doc = stripLocalScripts(doc)
	if scripts := concatContents(arranged.ByKind(project.KindScript)); scripts != "" {
		doc = insertBeforeBodyClose(doc, "<script>\n"+scripts+"\n</script>")
	}

	// Navigation shim goes last.
	doc = insertBeforeBodyClose(doc, navShim)

	return Result{Document: doc, Target: tf.Path, Pages: pages}
}

// arrangedCopy returns an arranged copy so composition never mutates the
// caller's set and does not depend on its incoming order.
func arrangedCopy(fs *project.FileSet) *project.FileSet {
	cp := &project.FileSet{Files: append([]project.File(nil), fs.Files...)}
	project.Arrange(cp)
	return cp
}

// selectTarget picks the file to compose: an exact-path markup (or
// markdown) match when target is given, otherwise the first markup file,
// otherwise the first markdown file.
func selectTarget(fs *project.FileSet, target string) (project.File, bool) {
	if target != "" {
		if f, ok := fs.Get(target); ok && (f.Kind == project.KindMarkup || f.Kind == project.KindText) {
			return f, true
		}
	}
	for _, f := range fs.Files {
		if f.Kind == project.KindMarkup {
			return f, true
		}
	}
	for _, f := range fs.Files {
		if f.Kind == project.KindText && strings.HasSuffix(strings.ToLower(f.Path), ".md") {
			return f, true
		}
	}
	return project.File{}, false
}

func concatContents(files []project.File) string {
	var parts []string
	for _, f := range files {
		content := strings.TrimRight(f.Content, "\n")
		if strings.TrimSpace(content) == "" {
			continue
		}
		parts = append(parts, content)
	}
	return strings.Join(parts, "\n")
}

func pageTitle(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i != -1 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

// indexCI returns the index of the first case-insensitive occurrence of
// marker in s.
func indexCI(s, marker string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(marker))
}

// ensureSkeleton guarantees the document has head and body sections to
// inject into. Fragments are wrapped in a full page.
func ensureSkeleton(doc, title string) string {
	lower := strings.ToLower(doc)

	if !strings.Contains(lower, "<body") {
		return "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n" +
			"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n" +
			"<title>" + title + "</title>\n</head>\n<body>\n" + doc + "\n</body>\n</html>"
	}

	if !strings.Contains(lower, "<head") {
		if i := indexCI(doc, "<body"); i != -1 {
			doc = doc[:i] + "<head>\n<meta charset=\"utf-8\">\n<title>" + title + "</title>\n</head>\n" + doc[i:]
		}
	} else if !strings.Contains(lower, "</head>") {
		if i := indexCI(doc, "<body"); i != -1 {
			doc = doc[:i] + "</head>\n" + doc[i:]
		}
	}

	if !strings.Contains(strings.ToLower(doc), "</body>") {
		if i := indexCI(doc, "</html>"); i != -1 {
			doc = doc[:i] + "</body>\n" + doc[i:]
		} else {
			doc += "\n</body>\n</html>"
		}
	}
	return doc
}

func insertBeforeHeadClose(doc, block string) string {
	if i := indexCI(doc, "</head>"); i != -1 {
		return doc[:i] + block + "\n" + doc[i:]
	}
	// ensureSkeleton ran first, so this only happens for pathological
	// inputs; fall back to prepending.
	return block + "\n" + doc
}

func insertBeforeBodyClose(doc, block string) string {
	if i := indexCI(doc, "</body>"); i != -1 {
		return doc[:i] + block + "\n" + doc[i:]
	}
	return doc + "\n" + block
}

// stripLocalStylesheets removes <link rel="stylesheet"> tags whose href is
// a project-local path. Remote stylesheet references are preserved.
func stripLocalStylesheets(doc string) string {
	return stripTags(doc, "<link", ">", func(tag string) bool {
		if !strings.Contains(strings.ToLower(tag), "stylesheet") {
			return false
		}
		href := attrValue(tag, "href")
		return href != "" && !isRemote(href)
	})
}

// stripLocalScripts removes <script src="..."></script> tags with
// project-local sources. Inline scripts and remote sources are preserved.
func stripLocalScripts(doc string) string {
	out := doc
	for {
		start := indexCI(out, "<script")
		found := false
		for start != -1 {
			end := strings.IndexByte(out[start:], '>')
			if end == -1 {
				break
			}
			end += start
			tag := out[start : end+1]
			src := attrValue(tag, "src")
			if src != "" && !isRemote(src) {
				rest := out[end+1:]
				if close := indexCI(rest, "</script>"); close != -1 && strings.TrimSpace(rest[:close]) == "" {
					out = out[:start] + rest[close+len("</script>"):]
				} else {
					out = out[:start] + rest
				}
				found = true
				break
			}
			next := indexCI(out[start+1:], "<script")
			if next == -1 {
				break
			}
			start = next + start + 1
		}
		if !found {
			return out
		}
	}
}

// stripTags removes every occurrence of a tag for which shouldStrip
// returns true. Used for self-closing/void tags.
func stripTags(doc, open, close string, shouldStrip func(tag string) bool) string {
	var b strings.Builder
	rest := doc
	for {
		i := indexCI(rest, open)
		if i == -1 {
			b.WriteString(rest)
			return b.String()
		}
		j := strings.Index(rest[i:], close)
		if j == -1 {
			b.WriteString(rest)
			return b.String()
		}
		j += i
		tag := rest[i : j+len(close)]
		b.WriteString(rest[:i])
		if !shouldStrip(tag) {
			b.WriteString(tag)
		}
		rest = rest[j+len(close):]
	}
}

// attrValue extracts a quoted attribute value from a tag string. The
// attribute name must stand alone, so "src" does not match "data-src".
func attrValue(tag, name string) string {
	lower := strings.ToLower(tag)
	i := -1
	for from := 0; ; {
		idx := strings.Index(lower[from:], name+"=")
		if idx == -1 {
			return ""
		}
		idx += from
		if idx == 0 || lower[idx-1] == ' ' || lower[idx-1] == '\t' || lower[idx-1] == '\n' {
			i = idx
			break
		}
		from = idx + 1
	}
	rest := tag[i+len(name)+1:]
	if rest == "" {
		return ""
	}
	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return ""
	}
	rest = rest[1:]
	if j := strings.IndexByte(rest, quote); j != -1 {
		return rest[:j]
	}
	return ""
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "data:")
}
