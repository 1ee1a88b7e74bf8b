// Package scanner implements a zero-copy scanner for XML-ish text.
//
// The scanner walks a token.File and produces Items whose spans point
// straight into the file's backing buffer; token text is never copied.
// It is byte oriented: markup structure is ASCII and anything else is
// carried opaquely inside character data and quoted literals.
//
// The implementation uses state functions in the manner of
// https://golang.org/src/text/template/parse/lex.go, with tokens
// emitted through a FIFO queue rather than a channel.
//
package scanner

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/HankG/Bag/token"
)

// Token types produced by the scanner. The enumeration starts above
// token.None so that a zero-value token can never pass for a scanned
// one.
//
const (
	EOF          token.Type = iota + 1 // end of input
	Err                                // invalid input -- Item.Err carries the description
	OpenBracket                        // <
	CloseBracket                       // >
	Slash                              // /
	Equals                             // =
	Question                           // ?
	Bang                               // !
	Ident                              // element or attribute name
	Literal                            // quoted attribute value, span excludes the quotes
	Body                               // character data between tags
	Space                              // whitespace inside markup
	Comment                            // <!-- --> comment, span includes the delimiters
)

var typeNames = [...]string{
	token.None:   "None",
	EOF:          "EOF",
	Err:          "Error",
	OpenBracket:  "OpenBracket",
	CloseBracket: "CloseBracket",
	Slash:        "Slash",
	Equals:       "Equals",
	Question:     "Question",
	Bang:         "Bang",
	Ident:        "Ident",
	Literal:      "Literal",
	Body:         "Body",
	Space:        "Space",
	Comment:      "Comment",
}

// TypeString returns the name of a scanner token type.
//
func TypeString(t token.Type) string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// Item is one scanned token together with its start offset in the
// file. For Literal items the offset is that of the opening quote even
// though the span excludes the quotes. Err is set only on Err items,
// whose span covers the offending input.
//
type Item struct {
	token.Token
	Pos token.Pos
	Err error
}

// String returns a string representation of the item. This should be
// used only for debugging purposes as the output format is not
// guaranteed to be stable.
//
func (i *Item) String() string {
	if i.Err != nil {
		return fmt.Sprintf("%s %q: %s", TypeString(i.Type()), i.Text().Bytes(), i.Err)
	}
	return fmt.Sprintf("%s %q", TypeString(i.Type()), i.Text().Bytes())
}

// queue is a FIFO queue.
//
type queue struct {
	items []Item
	head  int
	tail  int
	count int
}

func (q *queue) push(i Item) {
	if q.head == q.tail && q.count > 0 {
		items := make([]Item, len(q.items)*2)
		copy(items, q.items[q.head:])
		copy(items[len(q.items)-q.head:], q.items[:q.head])
		q.head = 0
		q.tail = len(q.items)
		q.items = items
	}
	q.items[q.tail] = i
	q.tail = (q.tail + 1) % len(q.items)
	q.count++
}

// pop pops the first item from the queue. Callers must check that
// q.count > 0 beforehand.
//
func (q *queue) pop() Item {
	i := q.head
	q.head = (q.head + 1) % len(q.items)
	q.count--
	return q.items[i]
}

// A stateFn is both state and action: it scans some input and returns
// the next state.
//
type stateFn func(s *Scanner) stateFn

// eof is the return value of next at the end of the buffer.
const eof = -1

// A Scanner holds the scanning state for one file. A new Scanner must
// be created for every file to be scanned.
//
type Scanner struct {
	f     *token.File
	b     []byte
	s     token.Pos // token start
	n     token.Pos // next byte to read
	line  int
	q     queue
	state stateFn
}

// New returns a scanner positioned at the start of f's buffer.
//
func New(f *token.File) *Scanner {
	s := &Scanner{
		f:    f,
		b:    f.Bytes(),
		line: 1,
		// initial queue size must be a power of 2
		q:     queue{items: make([]Item, 2)},
		state: scanContent,
	}
	f.AddLine(0, 1)
	return s
}

// File returns the token.File being scanned.
//
func (s *Scanner) File() *token.File {
	return s.f
}

// Scan returns the next item. Once EOF has been returned, further
// calls keep returning the EOF item.
//
func (s *Scanner) Scan() Item {
	for s.q.count == 0 {
		s.state = s.state(s)
	}
	return s.q.pop()
}

// next returns the next byte in the buffer, or eof.
//
func (s *Scanner) next() int {
	if int(s.n) >= len(s.b) {
		return eof
	}
	c := s.b[s.n]
	s.n++
	if c == '\n' {
		s.line++
		s.f.AddLine(s.n, s.line)
	}
	return int(c)
}

// backup reverts the last call to next. It must not be called at the
// start of the buffer or after next returned eof.
//
func (s *Scanner) backup() {
	s.n--
	if s.b[s.n] == '\n' {
		s.line--
	}
}

// lookingAt reports whether the unread input starts with prefix.
//
func (s *Scanner) lookingAt(prefix string) bool {
	return bytes.HasPrefix(s.b[s.n:], []byte(prefix))
}

// emitRange emits a token of type t spanning [start, end) and resets
// the token start to the read position.
//
func (s *Scanner) emitRange(t token.Type, start, end token.Pos) {
	text, err := s.f.Text(start, end)
	if err != nil {
		panic(err) // scanner cursor out of bounds
	}
	s.q.push(Item{Token: token.New(text, t), Pos: s.s})
	s.s = s.n
}

// emit emits a token of type t covering everything read since the
// previous emit.
//
func (s *Scanner) emit(t token.Type) {
	s.emitRange(t, s.s, s.n)
}

// errorf emits an Err item whose span covers everything read since the
// previous emit.
//
func (s *Scanner) errorf(format string, args ...interface{}) {
	text, err := s.f.Text(s.s, s.n)
	if err != nil {
		panic(err)
	}
	s.q.push(Item{Token: token.New(text, Err), Pos: s.s, Err: fmt.Errorf(format, args...)})
	s.s = s.n
}

// scanContent scans character data up to the next markup delimiter.
//
func scanContent(s *Scanner) stateFn {
	for {
		switch c := s.next(); c {
		case eof:
			if s.n > s.s {
				s.emit(Body)
			}
			return scanEOF
		case '<':
			if s.n-1 > s.s {
				s.backup()
				s.emit(Body)
				s.next()
			}
			if s.lookingAt("!--") {
				return scanComment
			}
			s.emit(OpenBracket)
			return scanMarkup
		}
	}
}

// scanComment scans a <!-- --> comment. The emitted span covers the
// whole comment, delimiters included. The opening < has already been
// consumed.
//
func scanComment(s *Scanner) stateFn {
	s.n += 3 // consume !--
	for {
		c := s.next()
		if c == eof {
			s.errorf("unterminated comment")
			return scanEOF
		}
		if c == '-' && s.lookingAt("->") {
			s.n += 2
			s.emit(Comment)
			return scanContent
		}
	}
}

// scanMarkup scans the inside of a tag, one token per step.
//
func scanMarkup(s *Scanner) stateFn {
	c := s.next()
	switch {
	case c == eof:
		s.errorf("unterminated markup")
		return scanEOF
	case c == '>':
		s.emit(CloseBracket)
		return scanContent
	case c == '/':
		s.emit(Slash)
	case c == '=':
		s.emit(Equals)
	case c == '?':
		s.emit(Question)
	case c == '!':
		s.emit(Bang)
	case c == '"' || c == '\'':
		return scanLiteral(byte(c))
	case isSpace(c):
		return scanSpace
	case isIdentStart(c):
		return scanIdent
	default:
		s.errorf("illegal character %s in markup", strconv.QuoteRune(rune(c)))
	}
	return scanMarkup
}

// scanSpace scans a run of whitespace inside markup.
//
func scanSpace(s *Scanner) stateFn {
	for {
		c := s.next()
		if c == eof {
			s.emit(Space)
			return scanMarkup
		}
		if !isSpace(c) {
			s.backup()
			s.emit(Space)
			return scanMarkup
		}
	}
}

// scanIdent scans an element or attribute name. The first character
// has already been consumed.
//
func scanIdent(s *Scanner) stateFn {
	for {
		c := s.next()
		if c == eof {
			s.emit(Ident)
			return scanMarkup
		}
		if !isIdent(c) {
			s.backup()
			s.emit(Ident)
			return scanMarkup
		}
	}
}

// scanLiteral returns a stateFn scanning a quoted attribute value. The
// opening quote has already been consumed; the emitted span covers the
// value without its quotes.
//
func scanLiteral(quote byte) stateFn {
	return func(s *Scanner) stateFn {
		start := s.n
		for {
			c := s.next()
			if c == eof {
				s.errorf("unterminated %c-quoted literal", quote)
				return scanMarkup
			}
			if c == int(quote) {
				s.emitRange(Literal, start, s.n-1)
				return scanMarkup
			}
		}
	}
}

// scanEOF emits the EOF item. It never transitions away, so Scan keeps
// returning EOF once the input is exhausted.
//
func scanEOF(s *Scanner) stateFn {
	s.s = s.n
	s.emit(EOF)
	return scanEOF
}

func isSpace(c int) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c int) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdent(c int) bool {
	return isIdentStart(c) || c >= '0' && c <= '9' || c == '.' || c == '-' || c == ':'
}
