package static

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound covers every reason a path can't be served: traversal attempts, missing
	// entries, directories without an index file and special files.
	ErrNotFound = errors.New("not found")
	// ErrTraversal is reported alongside ErrNotFound for paths with a parent reference.
	ErrTraversal = errors.New("path contains a parent reference")
)

// File is a path that passed resolution, together with its size at the moment of it.
type File struct {
	// Path is relative to the working directory (or Root), as stat-ed.
	Path string
	Size int64
}

type Resolver struct {
	// Root is prepended to every path. Use "." to resolve against the working directory.
	Root string
	// Index is looked up when a path names a directory.
	Index string
}

func NewResolver(root, index string) Resolver {
	return Resolver{
		Root:  root,
		Index: index,
	}
}

// Resolve classifies the path. Regular files are servable as is, directories are servable
// only when they contain a regular index file. The lookup into the directory happens once,
// so an index that is a directory itself isn't followed further.
//
// Any path containing ".." is rejected outright, without looking at the filesystem. That
// is a purely textual check: symlinks beneath the root pointing outside are still followed.
func (r Resolver) Resolve(path string) (File, error) {
	if strings.Contains(path, "..") {
		return File{}, errors.Join(ErrNotFound, ErrTraversal)
	}

	path = r.join(path)

	info, err := os.Stat(path)
	if err != nil {
		return File{}, errors.Join(ErrNotFound, err)
	}

	switch mode := info.Mode(); {
	case mode.IsRegular():
		return File{Path: path, Size: info.Size()}, nil
	case mode.IsDir():
		return r.index(path)
	default:
		return File{}, ErrNotFound
	}
}

func (r Resolver) index(dir string) (File, error) {
	path := filepath.Join(dir, r.Index)

	info, err := os.Stat(path)
	if err != nil {
		return File{}, errors.Join(ErrNotFound, err)
	}

	if !info.Mode().IsRegular() {
		return File{}, ErrNotFound
	}

	return File{Path: path, Size: info.Size()}, nil
}

func (r Resolver) join(path string) string {
	path = filepath.FromSlash(path)
	if len(r.Root) == 0 {
		return path
	}

	// filepath.Join would clean away a trailing slash, which must make stat fail for
	// anything but a directory
	return r.Root + string(filepath.Separator) + path
}
