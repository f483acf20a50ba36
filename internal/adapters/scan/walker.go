package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charlpcronje/fxd-coordinator/internal/domain"
)

// Walker applies the scanner across a directory tree.
type Walker struct {
	scanner    *Scanner
	extensions map[string]struct{}
	skip       []string
}

func NewWalker(scanner *Scanner, extensions, skip []string) *Walker {
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[ext] = struct{}{}
	}

	return &Walker{scanner: scanner, extensions: extSet, skip: skip}
}

// RebuildIndex walks root and scans every matching source file. The result is
// a complete replacement index: prior annotations for a file are discarded
// wholesale, and files with zero annotations are omitted. Paths containing a
// skip marker (dependency caches, build output, version control) are pruned.
func (w *Walker) RebuildIndex(root string) (domain.AnnotationIndex, error) {
	index := domain.AnnotationIndex{}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(w.scanner.Warn, "warning: walk %s: %v\n", path, err)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if w.skipped(path) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			return nil
		}

		if _, ok := w.extensions[filepath.Ext(path)]; !ok {
			return nil
		}

		if annotations := w.scanner.ScanFile(path); len(annotations) > 0 {
			index[path] = annotations
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return index, nil
}

func (w *Walker) skipped(path string) bool {
	for _, marker := range w.skip {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}
