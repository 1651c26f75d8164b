package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	riffleio "github.com/TimelordUK/riffle/internal/io"
)

func indexOver(t *testing.T, content string) (*LineIndex, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	file, err := riffleio.OpenMapped(path)
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	idx, err := BuildLineIndex(file)
	require.NoError(t, err)
	return idx, path
}

func grow(t *testing.T, idx *LineIndex, path, content string) int64 {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	grown, oldSize, err := idx.file.Refresh()
	require.NoError(t, err)
	require.True(t, grown)
	return oldSize
}

func lineText(t *testing.T, idx *LineIndex, n int) string {
	t.Helper()
	line, err := idx.GetLine(n)
	require.NoError(t, err)
	return string(line)
}

func TestBuildIndexCountsLines(t *testing.T) {
	idx, _ := indexOver(t, "alpha\nbeta\ngamma\n")

	assert.Equal(t, 3, idx.LineCount())
	assert.Equal(t, "alpha", lineText(t, idx, 0))
	assert.Equal(t, "beta", lineText(t, idx, 1))
	assert.Equal(t, "gamma", lineText(t, idx, 2))
}

func TestBuildIndexWithoutTrailingNewline(t *testing.T) {
	idx, _ := indexOver(t, "alpha\nbeta")

	assert.Equal(t, 2, idx.LineCount())
	assert.Equal(t, "beta", lineText(t, idx, 1))
}

func TestBuildIndexEmptyFile(t *testing.T) {
	idx, _ := indexOver(t, "")

	assert.Equal(t, 1, idx.LineCount())
	assert.Equal(t, "", lineText(t, idx, 0))
}

func TestGetLineTrimsCarriageReturn(t *testing.T) {
	idx, _ := indexOver(t, "dos line\r\nnext\r\n")

	assert.Equal(t, "dos line", lineText(t, idx, 0))
	assert.Equal(t, "next", lineText(t, idx, 1))
}

func TestGetLineOutOfRange(t *testing.T) {
	idx, _ := indexOver(t, "only\n")

	line, err := idx.GetLine(5)
	require.NoError(t, err)
	assert.Nil(t, line)

	assert.Equal(t, int64(-1), idx.ByteOffset(5))
}

func TestGetLinesClampsRange(t *testing.T) {
	idx, _ := indexOver(t, "a\nb\nc\n")

	lines, err := idx.GetLines(1, 10)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "b", string(lines[0]))
	assert.Equal(t, "c", string(lines[1]))
}

func TestByteOffset(t *testing.T) {
	idx, _ := indexOver(t, "ab\ncdef\ng\n")

	assert.Equal(t, int64(0), idx.ByteOffset(0))
	assert.Equal(t, int64(3), idx.ByteOffset(1))
	assert.Equal(t, int64(8), idx.ByteOffset(2))
}

func TestAppendFromIndexesNewLines(t *testing.T) {
	idx, path := indexOver(t, "one\ntwo\n")
	require.Equal(t, 2, idx.LineCount())

	oldSize := grow(t, idx, path, "three\nfour\n")
	require.NoError(t, idx.AppendFrom(oldSize))

	assert.Equal(t, 4, idx.LineCount())
	assert.Equal(t, "three", lineText(t, idx, 2))
	assert.Equal(t, "four", lineText(t, idx, 3))
}

func TestAppendFromBoundaryNewline(t *testing.T) {
	// The trailing newline was the last byte at build time, so it had
	// not started a line yet. Growth past it must index exactly one
	// new line, with no duplicate at the boundary.
	idx, path := indexOver(t, "one\ntwo\n")

	oldSize := grow(t, idx, path, "three")
	require.NoError(t, idx.AppendFrom(oldSize))

	assert.Equal(t, 3, idx.LineCount())
	assert.Equal(t, "two", lineText(t, idx, 1))
	assert.Equal(t, "three", lineText(t, idx, 2))
}

func TestAppendFromContinuesPartialLine(t *testing.T) {
	idx, path := indexOver(t, "one\ntw")
	require.Equal(t, 2, idx.LineCount())

	oldSize := grow(t, idx, path, "o\nthree\n")
	require.NoError(t, idx.AppendFrom(oldSize))

	assert.Equal(t, 3, idx.LineCount())
	assert.Equal(t, "two", lineText(t, idx, 1))
	assert.Equal(t, "three", lineText(t, idx, 2))
}

func TestAppendFromMatchesFullRebuild(t *testing.T) {
	idx, path := indexOver(t, "a\nbb\nccc")

	oldSize := grow(t, idx, path, "\ndddd\nee\nf")
	require.NoError(t, idx.AppendFrom(oldSize))

	fresh, err := BuildLineIndex(idx.file)
	require.NoError(t, err)

	require.Equal(t, fresh.LineCount(), idx.LineCount())
	for i := 0; i < fresh.LineCount(); i++ {
		assert.Equal(t, fresh.ByteOffset(i), idx.ByteOffset(i), "line %d", i)
	}
}
