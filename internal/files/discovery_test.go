package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestFindCSVFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.csv")
	touch(t, dir, "a.csv")
	touch(t, dir, "UPPER.CSV")
	touch(t, dir, "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	d := NewDiscovery(dir)
	found, err := d.FindCSVFiles(dir)
	require.NoError(t, err)

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.Name
	}
	// Sorted by name, directories and other extensions excluded.
	assert.Equal(t, []string{"UPPER.CSV", "a.csv", "b.csv"}, names)
}

func TestFindDataFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "x.csv")
	touch(t, dir, "y.xlsx")
	touch(t, dir, "z.xls")

	d := NewDiscovery(dir)

	t.Run("csv only", func(t *testing.T) {
		found, err := d.FindDataFiles(dir, "csv")
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("excel only", func(t *testing.T) {
		found, err := d.FindDataFiles(dir, "xlsx")
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("auto accepts both", func(t *testing.T) {
		found, err := d.FindDataFiles(dir, "auto")
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := d.FindDataFiles(dir, "parquet")
		assert.Error(t, err)
	})
}

func TestFindRelativeToBasePath(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "stocks"), 0o755))
	touch(t, filepath.Join(base, "stocks"), "AAPL.csv")

	d := NewDiscovery(base)
	found, err := d.FindCSVFiles("stocks")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(base, "stocks", "AAPL.csv"), found[0].Path)
}

func TestMissingDirectory(t *testing.T) {
	d := NewDiscovery(t.TempDir())
	_, err := d.FindCSVFiles("does-not-exist")
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	infos := []FileInfo{{Path: "/a/b.csv"}, {Path: "/a/c.csv"}}
	assert.Equal(t, []string{"/a/b.csv", "/a/c.csv"}, Paths(infos))
}
