// Package fs provides file-based page discovery, reading and report staging.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/seoaudit"
)

// skipDirs are never descended into, wherever they appear in the tree.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// IsHTMLFile reports whether name has an .html or .htm extension,
// ignoring case.
func IsHTMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".html" || ext == ".htm"
}

// Ensure Walker implements seoaudit.PageSource at compile time.
var _ seoaudit.PageSource = (*Walker)(nil)

// Walker discovers HTML files in a directory tree.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Discover returns the sorted paths of all HTML files under root.
// Unreadable subdirectories are skipped.
func (w *Walker) Discover(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, seoaudit.Errorf(seoaudit.ENOTFOUND, "root %q not found", root)
	} else if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, seoaudit.Errorf(seoaudit.EINVALID, "root %q is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if IsHTMLFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}
