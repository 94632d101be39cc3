package project

import (
	"path/filepath"
	"strings"
)

// extensionKinds maps file extensions to their semantic kind.
var extensionKinds = map[string]Kind{
	// Markup
	".html": KindMarkup,
	".htm":  KindMarkup,
	".xhtml": KindMarkup,
	// Styles
	".css": KindStyle,
	// Scripts
	".js":  KindScript,
	".mjs": KindScript,
	".cjs": KindScript,
	".jsx": KindScript,
	// Data
	".json":    KindData,
	".webmanifest": KindData,
	// Text
	".md":       KindText,
	".markdown": KindText,
	".txt":      KindText,
}

// Classify maps a file path to its kind by extension. Unknown extensions
// classify as KindOther; there is no failure mode.
func Classify(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := extensionKinds[ext]; ok {
		return kind
	}
	return KindOther
}
