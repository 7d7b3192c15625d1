package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ErrNoCourses means none of the requested course directories exists.
// It is the only condition that aborts a run.
var ErrNoCourses = errors.New("no course directories found")

// CourseFiles is the candidate file list of one course directory.
type CourseFiles struct {
	Course string
	Dir    string
	Files  []string // sorted, depth-first
}

// DiscoverOptions controls course directory discovery.
type DiscoverOptions struct {
	Root            string
	Courses         []string
	Extensions      []string
	ExcludeSuffixes []string
	Logger          *zap.Logger
}

// Discover lists candidate files per course. A missing course directory is
// logged and skipped; ErrNoCourses is returned only when every course is missing.
func Discover(opts DiscoverOptions) ([]CourseFiles, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.Courses) == 0 {
		return nil, fmt.Errorf("%w: no courses requested", ErrNoCourses)
	}

	out := make([]CourseFiles, 0, len(opts.Courses))
	for _, course := range opts.Courses {
		dir := filepath.Join(opts.Root, course)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			logger.Warn("course directory missing, skipping", zap.String("course", course), zap.String("dir", dir))
			continue
		}
		files, err := listCandidates(dir, opts.Extensions, opts.ExcludeSuffixes, logger)
		if err != nil {
			logger.Warn("failed to walk course directory", zap.String("course", course), zap.Error(err))
			continue
		}
		out = append(out, CourseFiles{Course: course, Dir: dir, Files: files})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w under %s (courses: %s)", ErrNoCourses, opts.Root, strings.Join(opts.Courses, ", "))
	}
	return out, nil
}

// listCandidates возвращает отсортированный список файлов с нужными расширениями.
func listCandidates(dir string, exts, excludes []string, logger *zap.Logger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable subtree: skip it, keep walking
			logger.Warn("skipping unreadable path", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if IsCandidate(d.Name(), exts, excludes) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// IsCandidate checks the file name against the extension list and the
// excluded suffixes (index.ts, .d.ts by default).
func IsCandidate(name string, exts, excludes []string) bool {
	for _, suf := range excludes {
		if strings.HasSuffix(name, suf) {
			return false
		}
	}
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
