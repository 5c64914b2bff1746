package xpathast

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is matched by every error Parse returns for malformed input.
var ErrSyntax = errors.New("xpath syntax error")

// SyntaxError describes why an expression could not be parsed. Offset is
// the byte offset of the furthest position the parser reached; Line and
// Column are 1-based and count runes.
type SyntaxError struct {
	XPath    string
	Offset   int
	Line     int
	Column   int
	Expected []string
}

func newSyntaxError(p *parser) *SyntaxError {
	line, col := 1, 1
	for _, r := range p.input[:min(p.furthest, len(p.input))] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return &SyntaxError{
		XPath:    p.input,
		Offset:   p.furthest,
		Line:     line,
		Column:   col,
		Expected: sortedKeys(p.expected),
	}
}

func (e *SyntaxError) Error() string {
	var found string
	if e.Offset >= len(e.XPath) {
		found = "end of input"
	} else {
		found = fmt.Sprintf("%q", e.XPath[e.Offset:min(e.Offset+12, len(e.XPath))])
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%d:%d: unexpected %s", e.Line, e.Column, found)
	}
	return fmt.Sprintf("%d:%d: expected %s, found %s", e.Line, e.Column, strings.Join(e.Expected, " or "), found)
}

// Detail returns the offending line of the expression with a caret under
// the failure position, followed by the error message.
func (e *SyntaxError) Detail() string {
	lines := strings.Split(e.XPath, "\n")
	var sb strings.Builder
	if e.Line-1 < len(lines) {
		sb.WriteString(lines[e.Line-1])
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat(" ", e.Column-1))
	sb.WriteString("^\n")
	sb.WriteString(e.Error())
	return sb.String()
}

func (e *SyntaxError) Is(err error) bool {
	return err == ErrSyntax
}
