package token

// Text is a read-only view of a contiguous run of bytes inside a
// longer-lived backing buffer. It never copies or owns the bytes it
// covers: the slice header carries the start address and length, and
// ownership stays with whoever owns the buffer. The zero value is an
// empty span.
//
type Text struct {
	b []byte
}

// MakeText returns a Text covering b. No validation is performed: b
// must be a subslice of a backing buffer that outlives the span.
// File.Text is the bounds-checked way to create spans.
//
func MakeText(b []byte) Text {
	return Text{b: b}
}

// Bytes returns the bytes covered by the span. The returned slice
// aliases the backing buffer; callers must not write through it.
//
func (t Text) Bytes() []byte {
	return t.b
}

// Len returns the number of bytes covered by the span.
//
func (t Text) Len() int {
	return len(t.b)
}

// Empty reports whether the span covers no bytes.
//
func (t Text) Empty() bool {
	return len(t.b) == 0
}

// String returns a copy of the span contents. Unlike Bytes, the
// result does not alias the backing buffer.
//
func (t Text) String() string {
	return string(t.b)
}
