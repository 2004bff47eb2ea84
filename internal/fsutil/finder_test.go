package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"b.hcl",
		"a.hcl",
		"notes.txt",
		"nested/deeper/c.hcl",
		"nested/d.arch",
		".git/e.hcl",
	} {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, nil, 0644))
	}

	files, err := FindFiles(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "deeper", "c.hcl"),
	}, files)

	files, err = FindFiles(root, ".hcl", ".arch")
	require.NoError(t, err)
	assert.Len(t, files, 4)
	assert.Contains(t, files, filepath.Join(root, "nested", "d.arch"))
}

func TestFindFiles_Errors(t *testing.T) {
	_, err := FindFiles(filepath.Join(t.TempDir(), "missing"), ".hcl")
	require.Error(t, err)

	assert.Panics(t, func() { _, _ = FindFiles(t.TempDir()) })
}
