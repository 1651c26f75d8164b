package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func appendTo(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestOpenMappedReadsFile(t *testing.T) {
	path := writeTemp(t, "hello\nworld\n")

	m, err := OpenMapped(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, int64(12), m.Size())
	assert.Equal(t, path, m.Path())

	buf := make([]byte, 5)
	n, err := m.ReadAt(buf, 6)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "world", string(buf))
}

func TestReadRangeCapsAtSize(t *testing.T) {
	path := writeTemp(t, "abcdef")

	m, err := OpenMapped(path)
	require.NoError(t, err)
	defer m.Close()

	got, err := m.ReadRange(3, 100)
	require.NoError(t, err)
	assert.Equal(t, "def", string(got))

	got, err = m.ReadRange(6, 10)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRefreshDetectsGrowth(t *testing.T) {
	path := writeTemp(t, "one\n")

	m, err := OpenMapped(path)
	require.NoError(t, err)
	defer m.Close()

	grown, oldSize, err := m.Refresh()
	require.NoError(t, err)
	assert.False(t, grown)
	assert.Equal(t, int64(4), oldSize)

	appendTo(t, path, "two\n")

	grown, oldSize, err = m.Refresh()
	require.NoError(t, err)
	assert.True(t, grown)
	assert.Equal(t, int64(4), oldSize)
	assert.Equal(t, int64(8), m.Size())

	got, err := m.ReadRange(4, 8)
	require.NoError(t, err)
	assert.Equal(t, "two\n", string(got))
}
