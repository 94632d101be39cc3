package project

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"index.html", KindMarkup},
		{"pages/about.htm", KindMarkup},
		{"styles/main.css", KindStyle},
		{"app.js", KindScript},
		{"lib/util.mjs", KindScript},
		{"components/nav.jsx", KindScript},
		{"data/config.json", KindData},
		{"README.md", KindText},
		{"notes.txt", KindText},
		{"logo.png", KindOther},
		{"Makefile", KindOther},
		{"INDEX.HTML", KindMarkup},
	}

	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNewFileSizeAndKind(t *testing.T) {
	f := NewFile("index.html", "<html></html>")
	if f.Kind != KindMarkup {
		t.Errorf("kind = %q, want markup", f.Kind)
	}
	if f.Size != len("<html></html>") {
		t.Errorf("size = %d, want %d", f.Size, len("<html></html>"))
	}
}

func TestFileSetAddDuplicate(t *testing.T) {
	fs := NewFileSet(
		NewFile("index.html", "first"),
		NewFile("index.html", "second"),
	)
	if fs.Len() != 1 {
		t.Fatalf("len = %d, want 1", fs.Len())
	}
	f, _ := fs.Get("index.html")
	if f.Content != "first" {
		t.Errorf("content = %q, want first occurrence to win", f.Content)
	}
}

func TestFileSetPages(t *testing.T) {
	fs := NewFileSet(
		NewFile("index.html", ""),
		NewFile("style.css", ""),
		NewFile("about.html", ""),
	)
	want := []string{"index.html", "about.html"}
	if got := fs.Pages(); !reflect.DeepEqual(got, want) {
		t.Errorf("Pages() = %v, want %v", got, want)
	}
}

func TestFileSetDegenerate(t *testing.T) {
	fs := NewFileSet(NewFile("style.css", "body{}"))
	if !fs.Degenerate() {
		t.Error("set without markup should be degenerate")
	}
	fs.Add(NewFile("index.html", "<html></html>"))
	if fs.Degenerate() {
		t.Error("set with markup should not be degenerate")
	}
}

func TestArrangeIndexFirst(t *testing.T) {
	fs := NewFileSet(
		NewFile("b.html", ""),
		NewFile("index.html", ""),
		NewFile("a.css", ""),
	)
	Arrange(fs)
	want := []string{"index.html", "a.css", "b.html"}
	if got := fs.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Arrange = %v, want %v", got, want)
	}
}

func TestArrangeNestedFolders(t *testing.T) {
	fs := NewFileSet(
		NewFile("pages/contact.html", ""),
		NewFile("pages/index.html", ""),
		NewFile("index.html", ""),
		NewFile("assets/app.js", ""),
		NewFile("about.html", ""),
	)
	Arrange(fs)
	want := []string{
		"index.html",
		"about.html",
		"assets/app.js",
		"pages/index.html",
		"pages/contact.html",
	}
	if got := fs.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Arrange = %v, want %v", got, want)
	}
}

func TestArrangeCaseInsensitiveIndex(t *testing.T) {
	fs := NewFileSet(
		NewFile("About.html", ""),
		NewFile("Index.html", ""),
	)
	Arrange(fs)
	if fs.Files[0].Path != "Index.html" {
		t.Errorf("first = %q, want Index.html", fs.Files[0].Path)
	}
}

func TestArrangeIdempotent(t *testing.T) {
	fs := NewFileSet(
		NewFile("z.html", ""),
		NewFile("index.html", ""),
		NewFile("a/b.css", ""),
	)
	Arrange(fs)
	first := fs.Paths()
	Arrange(fs)
	if !reflect.DeepEqual(first, fs.Paths()) {
		t.Errorf("re-arranging changed order: %v -> %v", first, fs.Paths())
	}
}

func TestWalkDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<html></html>")
	writeFile(t, dir, "css/style.css", "body{}")
	writeFile(t, dir, "node_modules/pkg/index.js", "ignored")
	writeFile(t, dir, ".git/HEAD", "ignored")

	fs, err := WalkDir(dir, nil)
	if err != nil {
		t.Fatalf("WalkDir: %v", err)
	}

	want := []string{"index.html", "css/style.css"}
	if got := fs.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestWalkDirCustomExclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<html></html>")
	writeFile(t, dir, "drafts/old.html", "<html></html>")

	fs, err := WalkDir(dir, []string{"drafts/**"})
	if err != nil {
		t.Fatalf("WalkDir: %v", err)
	}
	if _, ok := fs.Get("drafts/old.html"); ok {
		t.Error("excluded file was imported")
	}
	if fs.Len() != 1 {
		t.Errorf("len = %d, want 1", fs.Len())
	}
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
