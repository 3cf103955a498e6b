// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"strings"
)

// FindFilesByExtension recursively searches root inside fsys for all regular
// files whose name ends with extension, ignoring case. It returns their
// slash-separated paths relative to fsys.
func FindFilesByExtension(fsys fs.FS, root string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}
	extension = strings.ToLower(extension)

	var files []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}
