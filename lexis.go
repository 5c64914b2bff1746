package xpathast

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/speedata/xpathast/ast"
	"golang.org/x/text/unicode/rangetable"
)

// ncNameStartChar is the XML 1.0 NameStartChar production without ':'.
var ncNameStartChar = rangetable.Merge(&unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 'A', Hi: 'Z', Stride: 1},
		{Lo: '_', Hi: '_', Stride: 1},
		{Lo: 'a', Hi: 'z', Stride: 1},
		{Lo: 0xC0, Hi: 0xD6, Stride: 1},
		{Lo: 0xD8, Hi: 0xF6, Stride: 1},
		{Lo: 0xF8, Hi: 0x2FF, Stride: 1},
		{Lo: 0x370, Hi: 0x37D, Stride: 1},
		{Lo: 0x37F, Hi: 0x1FFF, Stride: 1},
		{Lo: 0x200C, Hi: 0x200D, Stride: 1},
		{Lo: 0x2070, Hi: 0x218F, Stride: 1},
		{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
		{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
		{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0xEFFFF, Stride: 1},
	},
})

// ncNameChar is the XML 1.0 NameChar production without ':'.
var ncNameChar = rangetable.Merge(ncNameStartChar, rangetable.New('-', '.', 0xB7), &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: '0', Hi: '9', Stride: 1},
		{Lo: 0x300, Hi: 0x36F, Stride: 1},
		{Lo: 0x203F, Hi: 0x2040, Stride: 1},
	},
})

// xmlChar is the XML 1.0 Char production.
var xmlChar = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x9, Hi: 0xA, Stride: 1},
		{Lo: 0xD, Hi: 0xD, Stride: 1},
		{Lo: 0x20, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xE000, Hi: 0xFFFD, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0x10FFFF, Stride: 1},
	},
}

func isNCNameStartChar(r rune) bool {
	return unicode.Is(ncNameStartChar, r)
}

func isNCNameChar(r rune) bool {
	return unicode.Is(ncNameChar, r)
}

func isXMLSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// parser holds the state of one parse: the input, the cursor and the
// furthest failure seen so far. Rules are methods on parser; a rule that
// fails leaves the cursor where it found it.
type parser struct {
	input    string
	pos      int
	furthest int
	expected map[string]bool
	tracer   Tracer
	depth    int
}

func newParser(input string, tracer Tracer) *parser {
	return &parser{input: input, tracer: tracer, expected: map[string]bool{}}
}

// expect records that label was tried and did not match at the current
// position.
func (p *parser) expect(label string) {
	switch {
	case p.pos > p.furthest:
		p.furthest = p.pos
		p.expected = map[string]bool{label: true}
	case p.pos == p.furthest:
		p.expected[label] = true
	}
}

// expectLit records the quoted literal s. The label is only built when it
// can still become part of the error.
func (p *parser) expectLit(s string) {
	if p.pos >= p.furthest {
		p.expect(`"` + s + `"`)
	}
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.input)
}

// peek returns the rune at the cursor, or utf8.RuneError and 0 at the end
// of the input.
func (p *parser) peek() (rune, int) {
	if p.atEnd() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(p.input[p.pos:])
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

// lit matches the literal s.
func (p *parser) lit(s string) bool {
	if p.hasPrefix(s) {
		p.pos += len(s)
		return true
	}
	p.expectLit(s)
	return false
}

// litWS matches the literal s and skips the whitespace after it.
func (p *parser) litWS(s string) bool {
	if !p.lit(s) {
		return false
	}
	p.ws()
	return true
}

// keyword matches the word s when it is not followed by a name character,
// so that "or" does not match the start of "order". Trailing whitespace is
// skipped.
func (p *parser) keyword(s string) bool {
	if p.hasPrefix(s) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos+len(s):])
		if size == 0 || !isNCNameChar(r) {
			p.pos += len(s)
			p.ws()
			return true
		}
	}
	p.expectLit(s)
	return false
}

// firstLit is an ordered choice over literals. The first one that matches
// wins, so a literal must come before its own prefixes.
func (p *parser) firstLit(alternatives ...string) (string, bool) {
	for _, s := range alternatives {
		if p.lit(s) {
			return s, true
		}
	}
	return "", false
}

// firstKeyword is firstLit for keywords.
func (p *parser) firstKeyword(alternatives ...string) (string, bool) {
	for _, s := range alternatives {
		if p.keyword(s) {
			return s, true
		}
	}
	return "", false
}

// ws skips any mix of whitespace and comments. It always succeeds.
func (p *parser) ws() {
	for {
		r, size := p.peek()
		switch {
		case size > 0 && isXMLSpace(r):
			p.pos += size
		case p.hasPrefix("(:"):
			if !p.comment() {
				return
			}
		default:
			return
		}
	}
}

// [77] Comment ::= "(:" (CommentContents | Comment)* ":)"
// [82] CommentContents ::= (Char+ - (Char* ('(:' | ':)') Char*))
func (p *parser) comment() bool {
	start := p.pos
	if !p.lit("(:") {
		return false
	}
	depth := 1
	for depth > 0 {
		switch {
		case p.hasPrefix("(:"):
			p.pos += 2
			depth++
		case p.hasPrefix(":)"):
			p.pos += 2
			depth--
		default:
			r, size := p.peek()
			if size == 0 || !unicode.Is(xmlChar, r) {
				p.expect(`":)"`)
				p.pos = start
				return false
			}
			p.pos += size
		}
	}
	return true
}

// [79] NCName, without trailing whitespace.
func (p *parser) ncname() (string, bool) {
	start := p.pos
	r, size := p.peek()
	if size == 0 || !isNCNameStartChar(r) {
		p.expect("NCName")
		return "", false
	}
	p.pos += size
	for {
		r, size = p.peek()
		if size == 0 || !isNCNameChar(r) {
			break
		}
		p.pos += size
	}
	return p.input[start:p.pos], true
}

// [78] QName ::= PrefixedName | UnprefixedName
//
// Whitespace after the name is skipped, but not around the colon.
func (p *parser) qname() (ast.QNameW, bool) {
	start := p.pos
	first, ok := p.ncname()
	if !ok {
		return ast.QNameW{}, false
	}
	if p.hasPrefix(":") {
		p.pos++
		if local, ok := p.ncname(); ok {
			p.ws()
			return ast.PrefixedName(first, local), true
		}
		p.pos = start + len(first)
	}
	p.ws()
	return ast.Name(first), true
}

// [81] Digits ::= [0-9]+
func (p *parser) digits() (string, bool) {
	start := p.pos
	for !p.atEnd() && isDigit(rune(p.input[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		p.expect("digit")
		return "", false
	}
	return p.input[start:p.pos], true
}

// optionalDigits is [0-9]*.
func (p *parser) optionalDigits() string {
	start := p.pos
	for !p.atEnd() && isDigit(rune(p.input[p.pos])) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// [74] StringLiteral ::= ('"' (EscapeQuot | [^"])* '"') | ("'" (EscapeApos | [^'])* "'")
// [75] EscapeQuot ::= '""'
// [76] EscapeApos ::= "''"
func (p *parser) stringLiteral() (*ast.StringLiteral, bool) {
	start := p.pos
	delim, ok := p.firstLit(`"`, "'")
	if !ok {
		return nil, false
	}
	var sb strings.Builder
	for {
		if p.atEnd() {
			p.expect("end of string literal")
			p.pos = start
			return nil, false
		}
		if p.hasPrefix(delim + delim) {
			sb.WriteString(delim)
			p.pos += 2
			continue
		}
		if p.hasPrefix(delim) {
			p.pos++
			break
		}
		_, size := p.peek()
		sb.WriteString(p.input[p.pos : p.pos+size])
		p.pos += size
	}
	p.ws()
	return ast.NewStringLiteral(sb.String()), true
}
