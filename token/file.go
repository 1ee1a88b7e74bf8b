package token

import (
	"errors"
	"fmt"
)

// Pos is a byte offset into a File's backing buffer.
//
type Pos int

// IsValid returns true if p is a valid position (i.e. p >= 0).
//
func (p Pos) IsValid() bool {
	return p >= 0
}

// ErrLine is the panic value of AddLine when fed an out-of-order line.
var ErrLine = errors.New("invalid line number")

// ErrBounds is returned by File.Text for a range outside the buffer.
var ErrBounds = errors.New("span out of bounds")

// Position describes an arbitrary source position including the file,
// line, and column location.
//
type Position struct {
	Filename string
	Line     int // 1-based line number
	Column   int // 1-based column number (byte index)
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// A File pairs a named backing buffer with its line table. It owns the
// bytes that every Text span derived from it points into, and it is
// the one place where span bounds are verified: spans handed out by
// Text remain valid for as long as the File itself is alive.
//
type File struct {
	name  string
	src   []byte
	lines []Pos // 0-based line/Pos information
}

// NewFile returns a new File backed by src. The File keeps a reference
// to src; callers must not modify or shrink it while spans derived
// from the File are in use.
//
func NewFile(name string, src []byte) *File {
	return &File{
		name: name,
		src:  src,
	}
}

// Name returns the file name.
//
func (f *File) Name() string {
	return f.name
}

// Bytes returns the backing buffer.
//
func (f *File) Bytes() []byte {
	return f.src
}

// Size returns the length of the backing buffer in bytes.
//
func (f *File) Size() int {
	return len(f.src)
}

// Text returns a span covering the buffer bytes in [start, end). It
// returns ErrBounds if the range does not fit the buffer. This is the
// verification boundary for span creation; MakeText is the unchecked
// fast path for callers that have already established their range.
//
func (f *File) Text(start, end Pos) (Text, error) {
	if start < 0 || end < start || int(end) > len(f.src) {
		return Text{}, fmt.Errorf("%w: [%d, %d) in buffer of %d bytes", ErrBounds, start, end, len(f.src))
	}
	return Text{b: f.src[start:end]}, nil
}

// AddLine adds a new line at the given offset.
//
// line is the 1-based line index. Adding a line at or before the last
// known line offset is a no-op; a line number other than the last
// known line plus one panics with ErrLine.
//
func (f *File) AddLine(pos Pos, line int) {
	l := len(f.lines)
	if l > 0 && f.lines[l-1] >= pos {
		// line already known
		return
	}
	if l+1 != line {
		panic(ErrLine)
	}
	f.lines = append(f.lines, pos)
}

// Position returns the 1-based line and column for a given pos. The
// returned column is a byte offset, not a rune offset.
//
func (f *File) Position(pos Pos) Position {
	i, j := 0, len(f.lines)
	for i < j {
		h := int(uint(i+j) >> 1)
		if !(f.lines[h] > pos) {
			i = h + 1
		} else {
			j = h
		}
	}
	return Position{f.name, i, int(pos - f.lines[i-1] + 1)}
}

// LinePos returns the file offset of the given line.
//
func (f *File) LinePos(line int) Pos {
	if line < 1 || line > len(f.lines) {
		return -1
	}
	return f.lines[line-1]
}

// Line returns the source line containing pos, without its trailing
// newline, or nil if pos has no known line.
//
func (f *File) Line(pos Pos) []byte {
	lp := f.LinePos(f.Position(pos).Line)
	if !lp.IsValid() {
		return nil
	}
	end := int(lp)
	for end < len(f.src) && f.src[end] != '\n' {
		end++
	}
	return f.src[lp:end]
}
