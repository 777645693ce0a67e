package importer

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// File is one entry of an import: a slash-separated relative path and a way
// to read its content.
type File struct {
	Path string
	Read func() ([]byte, error)
}

// Name returns the final path segment.
func (f File) Name() string {
	return path.Base(f.Path)
}

func diskFile(abs, rel string) File {
	return File{
		Path: rel,
		Read: func() ([]byte, error) { return os.ReadFile(abs) },
	}
}

// FilesFromDir walks root applying include/exclude globs to paths relative
// to root. The returned paths are prefixed with root's base name, the way a
// directory picker reports them, and sorted.
func FilesFromDir(root string, include, exclude []string) ([]File, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}
	return walkFiles(os.DirFS(absRoot), filepath.Base(absRoot), include, exclude)
}

// walkFiles collects the files of fsys under base. A directory that cannot
// be read fails the walk.
func walkFiles(fsys fs.FS, base string, include, exclude []string) ([]File, error) {
	var files []File
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path.Join(base, p), err)
		}
		if p == "." {
			return nil
		}

		for _, pattern := range exclude {
			if matched, _ := doublestar.Match(pattern, p); matched {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		if len(include) > 0 {
			matched := false
			for _, pattern := range include {
				if m, _ := doublestar.Match(pattern, p); m {
					matched = true
					break
				}
			}
			if !matched {
				return nil
			}
		}

		files = append(files, File{
			Path: base + "/" + p,
			Read: func() ([]byte, error) { return fs.ReadFile(fsys, p) },
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// FilesFromPaths wraps individually chosen files, keeping the given order.
func FilesFromPaths(paths []string) []File {
	files := make([]File, len(paths))
	for i, p := range paths {
		files[i] = diskFile(p, filepath.ToSlash(p))
	}
	return files
}
