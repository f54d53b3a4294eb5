// Package catalog loads the set of publishable packages from a workspace
// root. Each directory holding a package.json becomes one Package record;
// the catalog is the sole data source for graph construction.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/shipwave/internal/ctxlog"
	"github.com/vk/shipwave/internal/fsutil"
)

// ErrLoad marks any failure to read or parse the package catalog. Callers
// match it with errors.Is.
var ErrLoad = errors.New("catalog load error")

func loadErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrLoad, fmt.Sprintf(format, args...))
}

// manifest mirrors the subset of package.json the loader cares about.
// Dev dependencies are decoded only to be ignored explicitly: they do not
// gate publish ordering.
type manifest struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Private              bool              `json:"private"`
	Dependencies         map[string]string `json:"dependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
}

// Load scans rootPath for package manifests and returns the catalog.
// Private packages and manifests without a name or version are skipped with
// a debug log; an unreadable root, an unparseable manifest, or two packages
// claiming the same name are load errors.
func Load(ctx context.Context, rootPath string) (Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scanning workspace for package manifests.", "root", rootPath)

	paths, err := fsutil.FindManifests(rootPath)
	if err != nil {
		return nil, loadErrorf("scanning %s: %v", rootPath, err)
	}
	logger.Debug("Manifest scan complete.", "manifest_count", len(paths))

	cat := make(Catalog, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, loadErrorf("reading %s: %v", path, err)
		}

		var m manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, loadErrorf("parsing %s: %v", path, err)
		}

		if m.Private {
			logger.Debug("Skipping private package.", "manifest", path)
			continue
		}
		if m.Name == "" || m.Version == "" {
			logger.Debug("Skipping manifest without name or version.", "manifest", path)
			continue
		}
		if existing, ok := cat[m.Name]; ok {
			return nil, loadErrorf("package %q declared in both %s and %s", m.Name, existing.Dir, filepath.Dir(path))
		}

		cat[m.Name] = &Package{
			Name:         m.Name,
			Version:      m.Version,
			Dir:          filepath.Dir(path),
			Dependencies: unionDependencies(&m),
		}
	}

	logger.Debug("Catalog loaded.", "package_count", len(cat))
	return cat, nil
}

// unionDependencies merges production, optional and peer dependency names.
// Missing maps are treated as empty.
func unionDependencies(m *manifest) map[string]struct{} {
	deps := make(map[string]struct{})
	for _, group := range []map[string]string{m.Dependencies, m.OptionalDependencies, m.PeerDependencies} {
		for name := range group {
			deps[name] = struct{}{}
		}
	}
	return deps
}
