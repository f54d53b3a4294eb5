package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeManifest creates <root>/<dir>/package.json with the given content.
func writeManifest(t *testing.T, root, dir, content string) {
	t.Helper()
	pkgDir := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(content), 0o600))
}

func TestLoad(t *testing.T) {
	t.Run("unions prod, optional and peer dependencies", func(t *testing.T) {
		root := t.TempDir()
		writeManifest(t, root, "pkg-a", `{
			"name": "pkg-a",
			"version": "1.2.3",
			"dependencies": {"left": "^1.0.0"},
			"optionalDependencies": {"middle": "~2.0.0"},
			"peerDependencies": {"right": ">=3"},
			"devDependencies": {"jest": "^29.0.0"}
		}`)

		cat, err := Load(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, cat, 1)

		pkg := cat["pkg-a"]
		require.NotNil(t, pkg)
		assert.Equal(t, "1.2.3", pkg.Version)
		assert.Equal(t, filepath.Join(root, "pkg-a"), pkg.Dir)
		assert.Equal(t, []string{"left", "middle", "right"}, pkg.DependencyNames())
		assert.NotContains(t, pkg.Dependencies, "jest", "dev dependencies must not gate ordering")
	})

	t.Run("missing dependency maps default to empty", func(t *testing.T) {
		root := t.TempDir()
		writeManifest(t, root, "bare", `{"name": "bare", "version": "0.1.0"}`)

		cat, err := Load(context.Background(), root)
		require.NoError(t, err)
		require.Contains(t, cat, "bare")
		assert.Empty(t, cat["bare"].Dependencies)
	})

	t.Run("private packages are skipped", func(t *testing.T) {
		root := t.TempDir()
		writeManifest(t, root, "internal-tools", `{"name": "internal-tools", "version": "1.0.0", "private": true}`)
		writeManifest(t, root, "public", `{"name": "public", "version": "1.0.0"}`)

		cat, err := Load(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, []string{"public"}, cat.Names())
	})

	t.Run("manifests without name or version are skipped", func(t *testing.T) {
		root := t.TempDir()
		writeManifest(t, root, "anonymous", `{"version": "1.0.0"}`)
		writeManifest(t, root, "unversioned", `{"name": "unversioned"}`)

		cat, err := Load(context.Background(), root)
		require.NoError(t, err)
		assert.Empty(t, cat)
	})

	t.Run("duplicate package names are rejected", func(t *testing.T) {
		root := t.TempDir()
		writeManifest(t, root, "first", `{"name": "dup", "version": "1.0.0"}`)
		writeManifest(t, root, "second", `{"name": "dup", "version": "2.0.0"}`)

		_, err := Load(context.Background(), root)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLoad)
		assert.ErrorContains(t, err, `"dup"`)
	})

	t.Run("malformed manifest fails the load", func(t *testing.T) {
		root := t.TempDir()
		writeManifest(t, root, "broken", `{"name": "broken", "version":`)

		_, err := Load(context.Background(), root)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLoad)
	})

	t.Run("unreadable root fails the load", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLoad)
	})

	t.Run("vendored manifests are ignored", func(t *testing.T) {
		root := t.TempDir()
		writeManifest(t, root, "app", `{"name": "app", "version": "1.0.0"}`)
		writeManifest(t, root, filepath.Join("app", "node_modules", "lodash"), `{"name": "lodash", "version": "4.17.21"}`)

		cat, err := Load(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, []string{"app"}, cat.Names())
	})
}
