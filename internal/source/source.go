// Package source holds the immutable byte buffer for a single compiled
// file and produces source locations from byte offsets.
package source

import "fmt"

// Location identifies a single point in a source file.
type Location struct {
	Path   string
	Line   int
	Column int
	Offset int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Column)
}

// Buffer is one file's bytes plus its path, and is the sole owner of
// both for the lifetime of the compilation of that file.
type Buffer struct {
	Path  string
	Bytes []byte

	// lineStarts[i] is the byte offset of the first byte of line i+1.
	lineStarts []int
}

// New creates a Buffer over the given bytes and precomputes line-start
// offsets so Location is O(log n) rather than re-scanning per call.
func New(path string, data []byte) *Buffer {
	b := &Buffer{Path: path, Bytes: data}
	b.lineStarts = append(b.lineStarts, 0)
	for i, c := range data {
		if c == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	return b
}

// Location converts a byte offset into a full Location.
func (b *Buffer) Location(offset int) Location {
	line := b.lineForOffset(offset)
	col := offset - b.lineStarts[line] + 1
	return Location{Path: b.Path, Line: line + 1, Column: col, Offset: offset}
}

func (b *Buffer) lineForOffset(offset int) int {
	lo, hi := 0, len(b.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.Bytes) }
