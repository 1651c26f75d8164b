package index

import (
	"bytes"

	riffleio "github.com/TimelordUK/riffle/internal/io"
)

// LineIndex stores the byte offset of every line start in a file
type LineIndex struct {
	offsets []int64
	file    *riffleio.MappedFile
}

// BuildLineIndex scans the file and builds a line offset index. An
// empty file indexes as a single empty line.
func BuildLineIndex(file *riffleio.MappedFile) (*LineIndex, error) {
	// Assume ~100 bytes per line for the initial capacity
	estimated := int(file.Size()/100) + 1
	idx := &LineIndex{
		offsets: append(make([]int64, 0, estimated), 0),
		file:    file,
	}
	if err := idx.scan(0); err != nil {
		return nil, err
	}
	return idx, nil
}

// scan reads file bytes [from, size) in chunks and appends the offset
// of every line start it finds. A newline begins a new line only when
// more content follows it, so a trailing newline adds no empty line.
func (idx *LineIndex) scan(from int64) error {
	size := idx.file.Size()
	const chunkSize = 64 * 1024
	buf := make([]byte, chunkSize)

	pos := from
	for pos < size {
		readSize := chunkSize
		if pos+int64(readSize) > size {
			readSize = int(size - pos)
		}

		n, err := idx.file.ReadAt(buf[:readSize], pos)
		if err != nil {
			return err
		}

		chunk := buf[:n]
		offset := 0
		for {
			i := bytes.IndexByte(chunk[offset:], '\n')
			if i == -1 {
				break
			}
			lineStart := pos + int64(offset) + int64(i) + 1
			if lineStart < size {
				idx.offsets = append(idx.offsets, lineStart)
			}
			offset += i + 1
		}

		pos += int64(n)
	}
	return nil
}

// AppendFrom indexes lines added after the file grew past oldSize.
// The byte just before the boundary is rescanned: a newline there
// started no line while it was the last byte, but does once content
// follows it. Offsets found this way are always new, since every
// offset from the previous scan is below oldSize.
func (idx *LineIndex) AppendFrom(oldSize int64) error {
	from := oldSize - 1
	if from < 0 {
		from = 0
	}
	return idx.scan(from)
}

// LineCount returns the total number of lines
func (idx *LineIndex) LineCount() int {
	return len(idx.offsets)
}

// GetLine returns the content of the line at lineNum (0-based) with
// the trailing newline trimmed
func (idx *LineIndex) GetLine(lineNum int) ([]byte, error) {
	if lineNum < 0 || lineNum >= len(idx.offsets) {
		return nil, nil
	}

	start := idx.offsets[lineNum]
	end := idx.file.Size()
	if lineNum+1 < len(idx.offsets) {
		end = idx.offsets[lineNum+1]
	}

	content, err := idx.file.ReadRange(start, end)
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(content, "\r\n"), nil
}

// GetLines returns up to count lines starting at start
func (idx *LineIndex) GetLines(start, count int) ([][]byte, error) {
	if start < 0 {
		start = 0
	}
	if start >= len(idx.offsets) {
		return nil, nil
	}
	if start+count > len(idx.offsets) {
		count = len(idx.offsets) - start
	}

	lines := make([][]byte, count)
	for i := 0; i < count; i++ {
		line, err := idx.GetLine(start + i)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return lines, nil
}

// ByteOffset returns the byte offset of a line start, or -1 when
// lineNum is out of range
func (idx *LineIndex) ByteOffset(lineNum int) int64 {
	if lineNum < 0 || lineNum >= len(idx.offsets) {
		return -1
	}
	return idx.offsets[lineNum]
}
