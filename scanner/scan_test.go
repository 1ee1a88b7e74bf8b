package scanner_test

import (
	"fmt"
	"testing"

	"github.com/HankG/Bag/scanner"
	"github.com/HankG/Bag/token"
)

func itemString(f *token.File, it *scanner.Item) string {
	p := f.Position(it.Pos)
	return fmt.Sprintf("%d:%d: %s", p.Line, p.Column, it)
}

func TestScanner_Scan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{
			`1:1: EOF ""`,
		}},
		{"element", "<a>hi</a>", []string{
			`1:1: OpenBracket "<"`,
			`1:2: Ident "a"`,
			`1:3: CloseBracket ">"`,
			`1:4: Body "hi"`,
			`1:6: OpenBracket "<"`,
			`1:7: Slash "/"`,
			`1:8: Ident "a"`,
			`1:9: CloseBracket ">"`,
			`1:10: EOF ""`,
		}},
		{"attributes", `<a href='x' id="y"/>`, []string{
			`1:1: OpenBracket "<"`,
			`1:2: Ident "a"`,
			`1:3: Space " "`,
			`1:4: Ident "href"`,
			`1:8: Equals "="`,
			`1:9: Literal "x"`,
			`1:12: Space " "`,
			`1:13: Ident "id"`,
			`1:15: Equals "="`,
			`1:16: Literal "y"`,
			`1:19: Slash "/"`,
			`1:20: CloseBracket ">"`,
			`1:21: EOF ""`,
		}},
		{"comment", "a<!--b-->c", []string{
			`1:1: Body "a"`,
			`1:2: Comment "<!--b-->"`,
			`1:10: Body "c"`,
			`1:11: EOF ""`,
		}},
		{"multiline_with_error", "<a>\n <b 5/>\n</a>", []string{
			`1:1: OpenBracket "<"`,
			`1:2: Ident "a"`,
			`1:3: CloseBracket ">"`,
			`1:4: Body "\n "`,
			`2:2: OpenBracket "<"`,
			`2:3: Ident "b"`,
			`2:4: Space " "`,
			`2:5: Error "5": illegal character '5' in markup`,
			`2:6: Slash "/"`,
			`2:7: CloseBracket ">"`,
			`2:8: Body "\n"`,
			`3:1: OpenBracket "<"`,
			`3:2: Slash "/"`,
			`3:3: Ident "a"`,
			`3:4: CloseBracket ">"`,
			`3:5: EOF ""`,
		}},
		{"unterminated_literal", `<a b="x`, []string{
			`1:1: OpenBracket "<"`,
			`1:2: Ident "a"`,
			`1:3: Space " "`,
			`1:4: Ident "b"`,
			`1:5: Equals "="`,
			`1:6: Error "\"x": unterminated "-quoted literal`,
			`1:8: Error "": unterminated markup`,
			`1:8: EOF ""`,
		}},
		{"unterminated_comment", "<!--x", []string{
			`1:1: Error "<!--x": unterminated comment`,
			`1:6: EOF ""`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := token.NewFile("", []byte(tt.input))
			s := scanner.New(f)
			var i int
			for i = 0; i < len(tt.want); i++ {
				it := s.Scan()
				if got := itemString(f, &it); got != tt.want[i] {
					t.Errorf("Got:\n\t%s\nWant:\n\t%s", got, tt.want[i])
				}
				if it.Type() == scanner.EOF {
					i++
					break
				}
			}
			if i < len(tt.want) {
				t.Errorf("Missing token:\n\t%s", tt.want[i])
			}
		})
	}
}

// Spans must point into the scanned file's buffer, not copies of it.
func TestScanZeroCopy(t *testing.T) {
	src := []byte("<tag>")
	f := token.NewFile("", src)
	s := scanner.New(f)

	s.Scan() // <
	it := s.Scan()
	if got := it.Text().String(); got != "tag" {
		t.Fatalf("Text() = %q, want %q", got, "tag")
	}
	b := it.Text().Bytes()
	if &b[0] != &src[1] {
		t.Error("token span does not alias the backing buffer")
	}
}

// Once the input is exhausted, Scan keeps returning the EOF item.
func TestScanEOFSticky(t *testing.T) {
	f := token.NewFile("", []byte("x"))
	s := scanner.New(f)
	for it := s.Scan(); it.Type() != scanner.EOF; it = s.Scan() {
	}
	for i := 0; i < 3; i++ {
		it := s.Scan()
		if it.Type() != scanner.EOF {
			t.Fatalf("Scan after EOF returned %s", scanner.TypeString(it.Type()))
		}
		if it.Pos != 1 {
			t.Fatalf("EOF at pos %d, want 1", it.Pos)
		}
	}
}

func TestTypeString(t *testing.T) {
	if got := scanner.TypeString(scanner.Ident); got != "Ident" {
		t.Errorf("TypeString(Ident) = %q", got)
	}
	if got := scanner.TypeString(token.None); got != "None" {
		t.Errorf("TypeString(None) = %q", got)
	}
	if got := scanner.TypeString(token.Type(999)); got != "Type(999)" {
		t.Errorf("TypeString(999) = %q", got)
	}
}
