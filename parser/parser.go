// Package parser builds an element tree from the scanner's token
// stream.
//
// The parser is the reference consumer of the token core: it branches
// on token types, reads spans without ever writing through them, and
// copies text out of the backing buffer only at the point where a
// value is stored into the tree. Tree values therefore stay valid
// after the parsed buffer is gone.
//
package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/HankG/Bag/scanner"
	"github.com/HankG/Bag/token"
)

// Attr is a single name="value" attribute.
//
type Attr struct {
	Name  string
	Value string
}

// Element is one node of a parsed document tree.
//
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string // character data directly inside the element, whitespace-trimmed
}

// Attr returns the value of the named attribute and whether it is
// present.
//
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the first direct child with the given name, or nil.
//
func (e *Element) Find(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type parser struct {
	f  *token.File
	s  *scanner.Scanner
	it scanner.Item
}

// Parse scans f and returns the root element of the document it
// holds. The XML declaration, doctype, comments and whitespace-only
// character data outside the document element are skipped.
//
func Parse(f *token.File) (*Element, error) {
	p := &parser{f: f, s: scanner.New(f)}
	p.next()

	var root *Element
	for root == nil {
		switch p.it.Type() {
		case scanner.Body:
			if len(bytes.TrimSpace(p.it.Text().Bytes())) != 0 {
				return nil, p.errorf("character data outside of any element")
			}
			p.next()
		case scanner.OpenBracket:
			p.next()
			switch p.it.Type() {
			case scanner.Question, scanner.Bang:
				if err := p.skipDecl(); err != nil {
					return nil, err
				}
			default:
				el, err := p.element()
				if err != nil {
					return nil, err
				}
				root = el
			}
		case scanner.EOF:
			return nil, p.errorf("empty document")
		case scanner.Err:
			return nil, p.errorf("%v", p.it.Err)
		default:
			return nil, p.errorf("unexpected %s before document element", scanner.TypeString(p.it.Type()))
		}
	}

	for {
		switch p.it.Type() {
		case scanner.Body:
			if len(bytes.TrimSpace(p.it.Text().Bytes())) != 0 {
				return nil, p.errorf("character data after document element")
			}
			p.next()
		case scanner.EOF:
			return root, nil
		case scanner.Err:
			return nil, p.errorf("%v", p.it.Err)
		default:
			return nil, p.errorf("unexpected %s after document element", scanner.TypeString(p.it.Type()))
		}
	}
}

// next advances to the next significant item, skipping whitespace and
// comments.
//
func (p *parser) next() {
	for {
		p.it = p.s.Scan()
		if t := p.it.Type(); t != scanner.Space && t != scanner.Comment {
			return
		}
	}
}

// errorf returns an error prefixed with the position of the current
// item.
//
func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s", p.f.Position(p.it.Pos), fmt.Sprintf(format, args...))
}

// expect consumes and returns the current item if it has type t, and
// fails with a positioned error otherwise.
//
func (p *parser) expect(t token.Type, what string) (scanner.Item, error) {
	it := p.it
	if it.Type() == scanner.Err {
		return it, p.errorf("%v", it.Err)
	}
	if it.Type() != t {
		return it, p.errorf("expected %s, got %s", what, scanner.TypeString(it.Type()))
	}
	p.next()
	return it, nil
}

// skipDecl consumes a <?...?> or <!...> declaration up to its closing
// bracket. The opening bracket has been consumed and the current item
// is the Question or Bang. Doctype internal subsets are not supported;
// the scanner rejects their brackets as illegal markup.
//
func (p *parser) skipDecl() error {
	for {
		switch p.it.Type() {
		case scanner.CloseBracket:
			p.next()
			return nil
		case scanner.EOF:
			return p.errorf("unterminated declaration")
		case scanner.Err:
			return p.errorf("%v", p.it.Err)
		}
		p.next()
	}
}

// element parses one element. The opening bracket has been consumed
// and the current item is the element name.
//
func (p *parser) element() (*Element, error) {
	name, err := p.expect(scanner.Ident, "element name")
	if err != nil {
		return nil, err
	}
	e := &Element{Name: name.Text().String()}

	for p.it.Type() == scanner.Ident {
		if err := p.attr(e); err != nil {
			return nil, err
		}
	}

	if p.it.Type() == scanner.Slash {
		p.next()
		if _, err := p.expect(scanner.CloseBracket, "'>'"); err != nil {
			return nil, err
		}
		return e, nil
	}
	if _, err := p.expect(scanner.CloseBracket, "'>'"); err != nil {
		return nil, err
	}
	return e, p.content(e)
}

// attr parses one name="value" attribute of e.
//
func (p *parser) attr(e *Element) error {
	name, err := p.expect(scanner.Ident, "attribute name")
	if err != nil {
		return err
	}
	if _, err := p.expect(scanner.Equals, "'='"); err != nil {
		return err
	}
	val, err := p.expect(scanner.Literal, "quoted value")
	if err != nil {
		return err
	}
	e.Attrs = append(e.Attrs, Attr{Name: name.Text().String(), Value: val.Text().String()})
	return nil
}

// content parses child elements and character data up to and including
// the matching end tag.
//
func (p *parser) content(e *Element) error {
	var text strings.Builder
	for {
		switch p.it.Type() {
		case scanner.Body:
			text.Write(p.it.Text().Bytes())
			p.next()
		case scanner.OpenBracket:
			p.next()
			if p.it.Type() == scanner.Slash {
				p.next()
				name, err := p.expect(scanner.Ident, "element name")
				if err != nil {
					return err
				}
				if got := name.Text().String(); got != e.Name {
					return p.errorf("mismatched end tag </%s> for <%s>", got, e.Name)
				}
				if _, err := p.expect(scanner.CloseBracket, "'>'"); err != nil {
					return err
				}
				e.Text = strings.TrimSpace(text.String())
				return nil
			}
			child, err := p.element()
			if err != nil {
				return err
			}
			e.Children = append(e.Children, child)
		case scanner.EOF:
			return p.errorf("unexpected end of input inside <%s>", e.Name)
		case scanner.Err:
			return p.errorf("%v", p.it.Err)
		default:
			return p.errorf("unexpected %s inside <%s>", scanner.TypeString(p.it.Type()), e.Name)
		}
	}
}
