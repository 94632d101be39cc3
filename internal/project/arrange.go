package project

import (
	"sort"
	"strings"
)

// Arrange sorts the file set into its deterministic priority order: files
// whose basename begins with "index." (case-insensitive) sort first within
// their folder, all other entries alphabetically. The rule applies at every
// folder level; folders have no precedence over files. Sorting is stable and
// idempotent.
func Arrange(fs *FileSet) {
	sort.SliceStable(fs.Files, func(i, j int) bool {
		return Less(fs.Files[i].Path, fs.Files[j].Path)
	})
}

// Less reports whether path a orders before path b under the arrangement
// rule.
func Less(a, b string) bool {
	segsA := strings.Split(a, "/")
	segsB := strings.Split(b, "/")

	for i := 0; i < len(segsA) && i < len(segsB); i++ {
		sa, sb := segsA[i], segsB[i]
		if sa == sb {
			continue
		}
		// The index-first rule applies to file entries, i.e. the final
		// segment of a path. Folder names sort plainly.
		ra := segmentRank(sa, i == len(segsA)-1)
		rb := segmentRank(sb, i == len(segsB)-1)
		if ra != rb {
			return ra < rb
		}
		return sa < sb
	}
	return len(segsA) < len(segsB)
}

func segmentRank(seg string, isFile bool) int {
	if isFile && strings.HasPrefix(strings.ToLower(seg), "index.") {
		return 0
	}
	return 1
}
