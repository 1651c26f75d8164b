package io

import (
	"os"

	"golang.org/x/exp/mmap"
)

// MappedFile provides memory-mapped read access to a file
type MappedFile struct {
	reader *mmap.ReaderAt
	size   int64
	path   string
}

// OpenMapped memory-maps the file at path for reading
func OpenMapped(path string) (*MappedFile, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		reader.Close()
		return nil, err
	}

	return &MappedFile{
		reader: reader,
		size:   info.Size(),
		path:   path,
	}, nil
}

// ReadAt reads len(p) bytes starting at byte offset off
func (m *MappedFile) ReadAt(p []byte, off int64) (int, error) {
	return m.reader.ReadAt(p, off)
}

// Size returns the mapped size of the file
func (m *MappedFile) Size() int64 {
	return m.size
}

// Path returns the file path
func (m *MappedFile) Path() string {
	return m.path
}

// Close unmaps the file
func (m *MappedFile) Close() error {
	return m.reader.Close()
}

// Refresh remaps the file if it has grown since it was opened or last
// refreshed. It reports whether the mapping changed along with the size
// before the refresh, so callers can index just the new bytes.
func (m *MappedFile) Refresh() (grown bool, oldSize int64, err error) {
	oldSize = m.size

	info, err := os.Stat(m.path)
	if err != nil {
		return false, oldSize, err
	}
	if info.Size() <= m.size {
		return false, oldSize, nil
	}

	reader, err := mmap.Open(m.path)
	if err != nil {
		return false, oldSize, err
	}

	m.reader.Close()
	m.reader = reader
	m.size = info.Size()
	return true, oldSize, nil
}

// ReadRange reads bytes [start, end), capping end at the mapped size
func (m *MappedFile) ReadRange(start, end int64) ([]byte, error) {
	if end > m.size {
		end = m.size
	}
	if start >= end {
		return nil, nil
	}

	buf := make([]byte, end-start)
	if _, err := m.reader.ReadAt(buf, start); err != nil {
		return nil, err
	}
	return buf, nil
}
