package extract

import (
	"regexp"
	"strings"

	"github.com/sitewright/sitewright/internal/project"
)

// assetRefPattern matches src/href attribute values anywhere in the raw
// response text. Quotes may appear JSON-escaped because the scan runs over
// the original response, not the recovered file contents.
var assetRefPattern = regexp.MustCompile(`(?i)(?:src|href)\s*=\s*\\?["']([^"'\\]+)\\?["']`)

// crossCheck scans the original raw text for local asset references missing
// from the recovered set and synthesizes placeholder files for them, so a
// plausible-but-incomplete extraction still composes into a working
// document. Returns the number of files added.
func crossCheck(raw string, set *project.FileSet) int {
	added := 0
	for _, m := range assetRefPattern.FindAllStringSubmatch(raw, -1) {
		ref := strings.TrimSpace(m[1])
		if isRemoteRef(ref) {
			continue
		}
		path := cleanPath(stripRefSuffix(ref))
		if path == "" {
			continue
		}
		kind := project.Classify(path)
		if kind != project.KindStyle && kind != project.KindScript && kind != project.KindMarkup && kind != project.KindData {
			continue
		}
		if _, ok := set.Get(path); ok {
			continue
		}
		if set.Add(placeholderFor(path, kind)) {
			added++
		}
	}
	return added
}

// isRemoteRef reports whether the reference points outside the project:
// absolute URLs, protocol-relative URLs, data URIs, and pure fragments.
func isRemoteRef(ref string) bool {
	lower := strings.ToLower(ref)
	return ref == "" ||
		strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(ref, "#")
}

// stripRefSuffix removes a query string or fragment from a reference.
func stripRefSuffix(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i != -1 {
		ref = ref[:i]
	}
	return ref
}

// placeholderFor builds a minimal valid file of the given kind for a
// referenced-but-missing path.
func placeholderFor(path string, kind project.Kind) project.File {
	var content string
	switch kind {
	case project.KindStyle:
		content = "/* " + path + " */\n"
	case project.KindScript:
		content = "// " + path + "\n"
	case project.KindData:
		content = "{}\n"
	case project.KindMarkup:
		content = "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>" + path + "</title>\n</head>\n<body>\n</body>\n</html>\n"
	}
	return project.NewFile(path, content)
}
