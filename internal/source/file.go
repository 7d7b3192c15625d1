package source

import (
	"path/filepath"
	"sort"
	"strings"
)

// FileID indexes a File inside its FileSet.
type FileID uint32

// File is one question-bank file as read from disk: BOM stripped and CRLF
// folded to LF. Content is never mutated after loading.
type File struct {
	ID      FileID
	Path    string // slash-separated, cleaned
	Content []byte
	Hash    [32]byte // sha256 of Content, the extraction cache key
	newline []uint32
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Position converts a byte offset into a line/column pair.
func (f *File) Position(off uint32) LineCol {
	// количество переводов строки строго до off и есть номер строки с нуля
	line := sort.Search(len(f.newline), func(i int) bool { return f.newline[i] >= off })
	var lineStart uint32
	if line > 0 {
		lineStart = f.newline[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - lineStart + 1}
}

// DisplayPath returns the path relative to baseDir, the way issues report it.
// A file outside baseDir keeps its absolute path.
func (f *File) DisplayPath(baseDir string) string {
	if baseDir == "" {
		return f.Path
	}
	absPath, err := filepath.Abs(f.Path)
	if err != nil {
		return f.Path
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return f.Path
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return f.Path
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return cleanPath(absPath)
	}
	return cleanPath(rel)
}

// BaseName returns the file name used in per-file issue subjects.
func BaseName(path string) string {
	return filepath.Base(path)
}

func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
