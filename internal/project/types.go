package project

// Kind is the semantic type of a project file, always derived from the file
// path extension. Model-supplied type strings are never trusted.
type Kind string

const (
	KindMarkup Kind = "markup"
	KindStyle  Kind = "style"
	KindScript Kind = "script"
	KindData   Kind = "data"
	KindText   Kind = "text"
	KindOther  Kind = "other"
)

// File is a single generated project file.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Kind    Kind   `json:"kind"`
	Size    int    `json:"size"`
}

// NewFile builds a File with its kind classified from the path and its size
// computed from the content.
func NewFile(path, content string) File {
	return File{
		Path:    path,
		Content: content,
		Kind:    Classify(path),
		Size:    len(content),
	}
}

// FileSet is an ordered collection of project files. Insertion order is
// priority order once Arrange has been applied: entry files first, then
// lexicographic. Paths are unique within a set.
type FileSet struct {
	Files []File
}

// NewFileSet creates a FileSet from the given files, dropping duplicates.
func NewFileSet(files ...File) *FileSet {
	fs := &FileSet{}
	for _, f := range files {
		fs.Add(f)
	}
	return fs
}

// Add appends a file to the set. If a file with the same path already
// exists, the later addition is ignored: the first occurrence wins.
func (fs *FileSet) Add(f File) bool {
	if _, ok := fs.Get(f.Path); ok {
		return false
	}
	fs.Files = append(fs.Files, f)
	return true
}

// Get returns the file at the given path.
func (fs *FileSet) Get(path string) (File, bool) {
	for _, f := range fs.Files {
		if f.Path == path {
			return f, true
		}
	}
	return File{}, false
}

// Len returns the number of files in the set.
func (fs *FileSet) Len() int { return len(fs.Files) }

// Empty reports whether the set contains no files.
func (fs *FileSet) Empty() bool { return len(fs.Files) == 0 }

// ByKind returns the files of the given kind, in set order.
func (fs *FileSet) ByKind(kind Kind) []File {
	var out []File
	for _, f := range fs.Files {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// Pages returns the paths of all markup files, in set order. These are the
// navigable pages of the project.
func (fs *FileSet) Pages() []string {
	var pages []string
	for _, f := range fs.Files {
		if f.Kind == KindMarkup {
			pages = append(pages, f.Path)
		}
	}
	return pages
}

// Paths returns all file paths in set order.
func (fs *FileSet) Paths() []string {
	paths := make([]string, len(fs.Files))
	for i, f := range fs.Files {
		paths[i] = f.Path
	}
	return paths
}

// Degenerate reports whether the set has no markup file and therefore
// nothing previewable.
func (fs *FileSet) Degenerate() bool {
	for _, f := range fs.Files {
		if f.Kind == KindMarkup {
			return false
		}
	}
	return true
}
