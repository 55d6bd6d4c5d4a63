package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("package x\n"), 0o644))
}

func TestIsSourceFile(t *testing.T) {
	assert.True(t, IsSourceFile("user.go"))
	assert.False(t, IsSourceFile("user_test.go"))
	assert.False(t, IsSourceFile("user.go.txt"))
}

func TestHasGoFiles(t *testing.T) {
	dir := t.TempDir()

	ok, err := HasGoFiles(dir)
	require.NoError(t, err)
	assert.False(t, ok)

	touch(t, filepath.Join(dir, "only_test.go"))
	ok, err = HasGoFiles(dir)
	require.NoError(t, err)
	assert.False(t, ok)

	touch(t, filepath.Join(dir, "model.go"))
	ok, err = HasGoFiles(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = HasGoFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestScanDirectoriesWithGoFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "root.go"))
	touch(t, filepath.Join(root, "model", "user.go"))
	touch(t, filepath.Join(root, "model", "order", "order.go"))
	touch(t, filepath.Join(root, "docs", "README.md"))
	touch(t, filepath.Join(root, "vendor", "dep", "dep.go"))
	touch(t, filepath.Join(root, "testdata", "fixture.go"))
	touch(t, filepath.Join(root, ".git", "hooks.go"))
	touch(t, filepath.Join(root, "_examples", "demo.go"))

	dirs, err := ScanDirectoriesWithGoFiles(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		root,
		filepath.Join(root, "model"),
		filepath.Join(root, "model", "order"),
	}, dirs)
}
