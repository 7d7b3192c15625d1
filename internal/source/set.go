package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileSet owns every file read during one audit run. Loading happens on the
// discovery goroutine; scanners only read through Get.
type FileSet struct {
	files []File
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{}
}

// Load reads path, strips a UTF-8 BOM, folds CRLF to LF and registers the result.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path comes from the course directory walk
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content = bytes.TrimPrefix(content, utf8BOM)
	return fs.add(path, foldCRLF(content)), nil
}

// AddVirtual registers in-memory content under name. Tests and the fuzzers
// use it; the content is taken as is.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.add(name, content)
}

// Get returns the file registered under id.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

func (fs *FileSet) add(path string, content []byte) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("%s: file too large: %w", path, err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    cleanPath(path),
		Content: content,
		Hash:    sha256.Sum256(content),
		newline: newlineOffsets(content),
	})
	return id
}

// foldCRLF replaces \r\n with \n. A lone \r is kept.
func foldCRLF(content []byte) []byte {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
}

func newlineOffsets(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}
