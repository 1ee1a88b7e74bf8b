// Package token defines the text span and token types shared by the
// scanner and its consumers.
//
// A Text is a non-owning view into a backing buffer, and a Token is a
// Text tagged with a lexical category. Neither copies the bytes it
// covers, so the backing buffer must remain valid and unmodified for
// as long as any span derived from it is alive, and no consumer may
// write through a span. Both are caller contracts: the accessors do no
// checking of their own. Bounds are verified once, where a span is
// carved out of a File.
//
package token

// Type identifies a token's lexical category. The category set is
// owned by whatever scanner produces the tokens; this package only
// reserves None as the zero value. Values are not validated here, an
// unknown Type is for downstream consumers to reject.
//
type Type uint16

// None is the type reported by a zero-value Token. Scanners must
// assign their categories values above None.
//
const None Type = 0

// A Token pairs a Text span with its lexical category. The zero value
// is a placeholder with an empty span and type None; it carries no
// meaning until SetText and SetType have been called.
//
// A Token is a flat record with no synchronization of its own. Once
// fully constructed and no longer mutated it is safe for concurrent
// reads; concurrent mutation must be serialized by the caller.
//
type Token struct {
	text Text
	typ  Type
}

// New returns a fully specified token in a single step.
//
func New(text Text, typ Type) Token {
	return Token{text: text, typ: typ}
}

// SetText replaces the token's span. The type is left untouched.
//
func (t *Token) SetText(text Text) {
	t.text = text
}

// Text returns the token's span. The returned value is a copy:
// mutating the token afterwards does not change it.
//
func (t Token) Text() Text {
	return t.text
}

// SetType replaces the token's category. The span is left untouched.
//
func (t *Token) SetType(typ Type) {
	t.typ = typ
}

// Type returns the token's category.
//
func (t Token) Type() Type {
	return t.typ
}
