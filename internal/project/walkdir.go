package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory/file patterns skipped when importing an
// existing folder of static files.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	"vendor",
	"dist",
	"build",
	".idea",
	".vscode",
	".DS_Store",
	"*.min.js.map",
	"*.lock",
}

// maxImportFileSize caps individual imported files. Generated sites are
// small; anything larger is almost certainly a binary asset.
const maxImportFileSize = 2 << 20

// WalkDir imports all files under root into a FileSet, applying the given
// exclude globs on top of DefaultExcludes. Binary-looking and oversized
// files are skipped. The returned set is arranged.
func WalkDir(root string, excludes []string) (*FileSet, error) {
	patterns := append([]string{}, DefaultExcludes...)
	patterns = append(patterns, excludes...)

	set := NewFileSet()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if matchesAny(rel, patterns) {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesAny(rel, patterns) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() > maxImportFileSize {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		if !isText(content) {
			return nil
		}

		set.Add(NewFile(rel, string(content)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	Arrange(set)
	return set, nil
}

// matchesAny checks rel against the glob patterns, matching both the full
// relative path and the basename so bare names like "node_modules" work.
func matchesAny(rel string, patterns []string) bool {
	base := filepath.Base(rel)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
		if strings.EqualFold(base, pattern) {
			return true
		}
	}
	return false
}

// isText reports whether content looks like text rather than a binary blob.
func isText(content []byte) bool {
	limit := len(content)
	if limit > 512 {
		limit = 512
	}
	for _, b := range content[:limit] {
		if b == 0 {
			return false
		}
	}
	return true
}
