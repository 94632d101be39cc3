// Package extract recovers a structured file list from a raw model
// response. Model output is frequently truncated mid-stream, wrapped in
// markdown fences, or inconsistently escaped; extraction tries a cascade of
// increasingly tolerant strategies and always produces a usable, non-empty
// file set. It never returns an error to the caller.
package extract

import (
	"errors"
	"log"
	"strings"

	"github.com/sitewright/sitewright/internal/project"
)

// Internal strategy outcomes. These never propagate out of the package;
// they only decide which recovery step runs next.
var (
	errMalformed     = errors.New("structurally invalid response")
	errNoFiles       = errors.New("no file entries in payload")
	errNoRecoverable = errors.New("no recoverable content")
)

// filePayload is one {path, content} pair recovered from the response,
// before classification.
type filePayload struct {
	Path    string
	Content string
}

// Extract converts a raw model response into an ordered FileSet. The set is
// never empty: if nothing file-shaped can be recovered a synthetic
// placeholder page is emitted. A cross-check pass scans the original raw
// text for asset references missing from the recovered set and synthesizes
// placeholders for them, so a partial recovery still composes into a
// non-broken document.
func Extract(raw string) *project.FileSet {
	payloads, err := extractPayloads(raw)

	set := project.NewFileSet()
	for _, p := range payloads {
		path := cleanPath(p.Path)
		if path == "" {
			continue
		}
		set.Add(project.NewFile(path, p.Content))
	}

	if set.Empty() {
		if err == nil {
			err = errNoRecoverable
		}
		log.Printf("extract: falling back to placeholder page: %v", err)
		set.Add(placeholderPage())
	}

	if added := crossCheck(raw, set); added > 0 {
		log.Printf("extract: synthesized %d placeholder file(s) for unresolved references", added)
	}

	// A set with files but no page is not previewable; give it an entry
	// page that lists what was recovered.
	if set.Degenerate() {
		set.Add(placeholderPage())
	}

	project.Arrange(set)
	return set
}

// extractPayloads runs the strategy cascade. Each strategy receives the
// candidate text with all prior normalizations applied; the first one to
// yield at least one file wins. Parse failures inside a strategy are
// swallowed and treated as "strategy failed".
func extractPayloads(raw string) ([]filePayload, error) {
	candidate := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
	if candidate == "" {
		return nil, errNoRecoverable
	}

	// 1. Direct structured parse.
	if files, err := parsePayload(candidate); err == nil {
		return files, nil
	}

	// 2. Fence stripping.
	candidate = stripFences(candidate)
	if files, err := parsePayload(candidate); err == nil {
		return files, nil
	}

	// Normalizations feeding the remaining strategies.
	candidate = removeTrailingCommas(candidate)

	// 3. Delimiter completion: append the closers a length-limited
	// response lost.
	if completed, n := completeDelimiters(candidate); n > 0 {
		if files, err := parsePayload(completed); err == nil {
			return files, nil
		}
	}

	// 4. Partial-object completion: keep only the prefix up to the last
	// balanced object and close what remains open.
	if prefix, ok := lastBalancedPrefix(candidate); ok {
		if files, err := parsePayload(prefix); err == nil {
			return files, nil
		}
	}

	// 5. Pattern-based salvage over the fence-stripped text.
	if files := salvageFiles(candidate); len(files) > 0 {
		return files, nil
	}

	return nil, errNoRecoverable
}

// cleanPath normalizes a model-supplied path into a safe project-relative
// slash path. Traversal segments and absolute prefixes are stripped rather
// than rejected; extraction never errors on a single bad path.
func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.Trim(p, `"'`)
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")

	var segs []string
	for _, seg := range strings.Split(p, "/") {
		seg = strings.TrimSpace(seg)
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		segs = append(segs, seg)
	}
	return strings.Join(segs, "/")
}

// placeholderPage is the synthetic markup file emitted when no previewable
// content was recovered.
func placeholderPage() project.File {
	const content = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Generated Site</title>
</head>
<body>
<main style="font-family:sans-serif;max-width:40rem;margin:4rem auto;text-align:center">
<h1>Nothing to preview yet</h1>
<p>The model response did not contain any readable page. Try generating again or refining the prompt.</p>
</main>
</body>
</html>
`
	return project.NewFile("index.html", content)
}
