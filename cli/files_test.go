package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCollectSQLFiles(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", ".hidden"), 0o755))

	for _, name := range []string{
		"a.sql",
		"b.SQL",
		"notes.txt",
		filepath.Join("sub", "c.sql"),
		filepath.Join("sub", ".hidden", "d.sql"),
	} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1\n"), 0o644))
	}

	files, err := collectSQLFiles([]string{dir})
	assert.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.sql"),
		filepath.Join(dir, "b.SQL"),
		filepath.Join(dir, "sub", "c.sql"),
	}, files)
}

func TestCollectSQLFilesExplicitAndDeduplicated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.sql")
	assert.NoError(t, os.WriteFile(path, []byte("SELECT 1\n"), 0o644))

	files, err := collectSQLFiles([]string{path, path, dir})
	assert.NoError(t, err)
	assert.Equal(t, []string{path}, files)

	_, err = collectSQLFiles([]string{filepath.Join(dir, "missing.sql")})
	assert.Error(t, err)
}
