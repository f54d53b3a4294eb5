// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// ManifestName is the file that marks a directory as a publishable package.
const ManifestName = "package.json"

// FindManifests recursively searches the given root path for package manifest
// files and returns their full paths. Vendored dependency trees under
// node_modules and hidden directories are never descended into, so a
// dependency's own manifest can not masquerade as a workspace package.
func FindManifests(rootPath string) ([]string, error) {
	var manifests []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name == "node_modules" || (strings.HasPrefix(name, ".") && path != rootPath) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == ManifestName {
			manifests = append(manifests, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return manifests, nil
}
