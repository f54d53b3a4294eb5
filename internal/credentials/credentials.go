// Package credentials manages the transient .npmrc auth file a publish
// subprocess reads its token from. Acquire writes it, Release removes it;
// the dispatcher defers Release so the file is gone on every exit path.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const fileName = ".npmrc"

// Scoped is an acquired credential file. The zero value (no path) is a
// released or empty-token resource; Release on it is a no-op.
type Scoped struct {
	path string
}

// Acquire writes a .npmrc with the registry auth token into dir. An empty
// token yields a no-op resource so runs against open registries need no
// credentials. A pre-existing .npmrc is never clobbered.
func Acquire(dir, registryURL, token string) (*Scoped, error) {
	if token == "" {
		return &Scoped{}, nil
	}

	scope, err := authScope(registryURL)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, fileName)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("credential file already exists: %s", path)
	}

	line := fmt.Sprintf("%s:_authToken=%s\n", scope, token)
	if err := os.WriteFile(path, []byte(line), 0o600); err != nil {
		return nil, fmt.Errorf("writing credential file: %w", err)
	}

	return &Scoped{path: path}, nil
}

// Release removes the credential file. It is idempotent, and a file already
// gone is not an error.
func (s *Scoped) Release() error {
	if s == nil || s.path == "" {
		return nil
	}
	err := os.Remove(s.path)
	s.path = ""
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing credential file: %w", err)
	}
	return nil
}

// Path returns the credential file location, or empty for a no-op resource.
func (s *Scoped) Path() string {
	return s.path
}

// authScope converts a registry URL into the scheme-less //host/path form
// npm expects in front of :_authToken.
func authScope(registryURL string) (string, error) {
	u, err := url.Parse(registryURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid registry URL %q", registryURL)
	}
	return "//" + u.Host + strings.TrimRight(u.Path, "/") + "/", nil
}
