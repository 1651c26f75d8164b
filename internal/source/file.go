package source

import (
	"github.com/TimelordUK/riffle/internal/index"
	riffleio "github.com/TimelordUK/riffle/internal/io"
)

// FileSource serves lines from a memory-mapped file. Refresh picks up
// lines appended to the file after it was opened.
type FileSource struct {
	file      *riffleio.MappedFile
	lineIndex *index.LineIndex
	path      string
}

var _ LineSource = (*FileSource)(nil)

// NewFileSource maps the file at path and indexes its lines
func NewFileSource(path string) (*FileSource, error) {
	file, err := riffleio.OpenMapped(path)
	if err != nil {
		return nil, err
	}

	lineIndex, err := index.BuildLineIndex(file)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &FileSource{
		file:      file,
		lineIndex: lineIndex,
		path:      path,
	}, nil
}

// LineCount returns the number of lines currently indexed
func (s *FileSource) LineCount() int {
	return s.lineIndex.LineCount()
}

// Line returns the line at n (0-based)
func (s *FileSource) Line(n int) ([]byte, error) {
	return s.lineIndex.GetLine(n)
}

// Lines returns up to count lines starting at start
func (s *FileSource) Lines(start, count int) ([][]byte, error) {
	return s.lineIndex.GetLines(start, count)
}

// Path returns the file path
func (s *FileSource) Path() string {
	return s.path
}

// EndsWithNewline reports whether the mapped content currently ends
// with a line terminator. When it does not, the last indexed line is
// still being written.
func (s *FileSource) EndsWithNewline() bool {
	size := s.file.Size()
	if size == 0 {
		return false
	}
	b, err := s.file.ReadRange(size-1, size)
	return err == nil && len(b) == 1 && b[0] == '\n'
}

// Close unmaps the file
func (s *FileSource) Close() error {
	return s.file.Close()
}

// Refresh indexes lines appended to the file since it was opened or
// last refreshed and returns how many lines were added
func (s *FileSource) Refresh() (int, error) {
	before := s.lineIndex.LineCount()

	grown, oldSize, err := s.file.Refresh()
	if err != nil {
		return 0, err
	}
	if !grown {
		return 0, nil
	}

	if err := s.lineIndex.AppendFrom(oldSize); err != nil {
		return 0, err
	}
	return s.lineIndex.LineCount() - before, nil
}
