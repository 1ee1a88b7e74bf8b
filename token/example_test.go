package token_test

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/HankG/Bag/scanner"
	"github.com/HankG/Bag/token"
)

// This example shows how File.Line and File.Position combine into a
// caret-style error report for scan errors.
//
func ExampleFile_Line() {
	src := []byte(`<note a="世界" 4x="y"/>`)
	f := token.NewFile("INPUT", src)
	s := scanner.New(f)
	for {
		it := s.Scan()
		if it.Type() == scanner.EOF {
			break
		}
		if it.Type() == scanner.Err {
			reportError(f, it.Pos, it.Err.Error())
		}
	}

	// The following output will display correctly only with monospaced
	// fonts and a UTF-8 locale.

	// Output:
	// INPUT:1:18: error: illegal character '4' in markup
	// |<note a="世界" 4x="y"/>
	// |               ^
}

// reportError reports a scan error in the form:
//
//	file:line:col: error: description
//	followed by the source line and a caret at the error position.
//
func reportError(f *token.File, p token.Pos, msg string) {
	pos := f.Position(p)
	fmt.Printf("%s: error: %s\n", pos, msg)
	l := f.Line(p)
	if l == nil {
		return
	}
	b := pos.Column - 1
	if b > len(l) {
		b = len(l)
	}
	fmt.Printf("|%s\n", l)
	fmt.Printf("|%*c^\n", cellWidth(l[:b]), ' ')
}

// cellWidth computes the width in text cells of a given byte slice
// (supposing rendering with a UTF-8 locale and monospaced font).
//
func cellWidth(l []byte) int {
	w := 0
	for i := 0; i < len(l); {
		r, s := utf8.DecodeRune(l[i:])
		i += s
		if !unicode.IsGraphic(r) {
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide:
			w += 2
		default:
			w += 1
		}
	}
	return w
}
