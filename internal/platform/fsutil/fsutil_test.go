package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tempTree creates a tree of empty files and dirs according to the relative paths that it should contain.
func tempTree(t *testing.T, paths []string) string {
	root := t.TempDir()

	for _, path := range paths {
		path = root + "/" + path
		parents, filename := filepath.Split(path)

		if parents != "" {
			require.NoError(t, os.MkdirAll(parents, os.ModePerm))
		}

		if filename != "" {
			require.NoError(t, WriteFile(path, nil))
		}
	}

	return root
}

func TestIsFileAndIsDir(t *testing.T) {
	root := tempTree(t, []string{"a/b.mjs", "c/"})

	assert.True(t, IsFile(filepath.Join(root, "a", "b.mjs")))
	assert.False(t, IsFile(filepath.Join(root, "a")))
	assert.False(t, IsFile(filepath.Join(root, "missing.mjs")))

	assert.True(t, IsDir(filepath.Join(root, "c")))
	assert.False(t, IsDir(filepath.Join(root, "a", "b.mjs")))
}

func TestWriteFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "deep", "nested", "x.mjs")

	require.NoError(t, WriteFile(path, []byte("export default {};\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export default {};\n", string(data))

	require.NoError(t, WriteFile(path, []byte("overwritten")))
	data, _ = os.ReadFile(path)
	assert.Equal(t, "overwritten", string(data))
}

func TestFindFiles(t *testing.T) {
	t.Run("nested and sorted", func(t *testing.T) {
		root := tempTree(t, []string{
			"z.mjs",
			"a/b.mjs",
			"a/c.js",
			"a/d/e.mjs",
			"readme.md",
		})

		files, err := FindFiles(root, ".mjs")
		require.NoError(t, err)

		var rel []string
		for _, f := range files {
			r, _ := filepath.Rel(root, f)
			rel = append(rel, filepath.ToSlash(r))
		}
		assert.Equal(t, []string{"a/b.mjs", "a/d/e.mjs", "z.mjs"}, rel)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := FindFiles(filepath.Join(t.TempDir(), "nope"), ".mjs")
		require.ErrorIs(t, err, fs.ErrNotExist)
	})
}
