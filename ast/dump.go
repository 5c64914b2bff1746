package ast

import (
	"fmt"
	"io"
	"strings"
)

type dumper struct {
	w     io.Writer
	depth int
	err   error
}

func (d *dumper) Visit(n Node) Visitor {
	if n == nil {
		d.depth--
		return nil
	}
	if d.err == nil {
		kind := strings.TrimPrefix(fmt.Sprintf("%T", n), "*")
		kind = strings.TrimPrefix(kind, "ast.")
		_, d.err = fmt.Fprintf(d.w, "%s%s %s\n", strings.Repeat("  ", d.depth), kind, ToString(n))
	}
	d.depth++
	return d
}

// Dump writes an indented outline of the tree rooted at n to w, one node
// per line.
func Dump(w io.Writer, n Node) error {
	d := &dumper{w: w}
	Walk(d, n)
	return d.err
}
