// Package xslcheck finds the XPath expressions in an XSLT stylesheet and
// parses each of them.
package xslcheck

import (
	"fmt"
	"io"
	"strings"

	"github.com/speedata/goxml"
	"github.com/speedata/xpathast"
	"github.com/speedata/xpathast/ast"
	"golang.org/x/exp/slices"
)

const nsXSLT = "http://www.w3.org/1999/XSL/Transform"

// expressionAttributes are the XSLT attributes whose value is an XPath
// expression or pattern.
var expressionAttributes = []string{
	"select",
	"test",
	"match",
	"use",
	"group-by",
	"group-adjacent",
	"group-starting-with",
	"group-ending-with",
}

// Finding is one expression found in a stylesheet. Err is a
// *xpathast.SyntaxError when the expression does not parse, and Expr is
// nil in that case.
type Finding struct {
	Location  string
	Element   string
	Attribute string
	XPath     string
	Expr      *ast.Expr
	Err       error
}

func (f Finding) String() string {
	if f.Err != nil {
		return fmt.Sprintf("%s/@%s: %s", f.Location, f.Attribute, f.Err)
	}
	return fmt.Sprintf("%s/@%s: %s", f.Location, f.Attribute, f.XPath)
}

// Check reads an XSLT document from r and parses every expression
// attribute of the XSLT elements in it. The options are passed on to
// xpathast.Parse. The error is only set when r does not hold well-formed
// XML; bad expressions are reported in the findings.
func Check(r io.Reader, opts ...xpathast.Option) ([]Finding, error) {
	doc, err := goxml.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("xslcheck: read stylesheet: %w", err)
	}
	c := checker{opts: opts}
	c.walk(doc.Children(), "")
	return c.findings, nil
}

// Failed returns the findings whose expression did not parse.
func Failed(findings []Finding) []Finding {
	var bad []Finding
	for _, f := range findings {
		if f.Err != nil {
			bad = append(bad, f)
		}
	}
	return bad
}

type checker struct {
	opts     []xpathast.Option
	findings []Finding
}

func (c *checker) walk(nodes []goxml.XMLNode, parent string) {
	seen := map[string]int{}
	for _, n := range nodes {
		elt, ok := n.(*goxml.Element)
		if !ok {
			continue
		}
		name := qualifiedName(elt.Prefix, elt.Name)
		seen[name]++
		loc := fmt.Sprintf("%s/%s[%d]", parent, name, seen[name])
		if isXSLT(elt) {
			c.check(elt, name, loc)
		}
		c.walk(elt.Children(), loc)
	}
}

func (c *checker) check(elt *goxml.Element, name, loc string) {
	for _, attr := range elt.Attributes() {
		if attr.Prefix != "" || !slices.Contains(expressionAttributes, attr.Name) {
			continue
		}
		f := Finding{
			Location:  loc,
			Element:   name,
			Attribute: attr.Name,
			XPath:     attr.Value,
		}
		f.Expr, f.Err = xpathast.Parse(attr.Value, c.opts...)
		c.findings = append(c.findings, f)
	}
}

func isXSLT(elt *goxml.Element) bool {
	if uri, ok := elt.Namespaces[elt.Prefix]; ok {
		return uri == nsXSLT
	}
	return elt.Prefix == "xsl"
}

func qualifiedName(prefix, local string) string {
	if prefix != "" {
		return prefix + ":" + local
	}
	return local
}

// Refs are the names an expression refers to, sorted and without
// duplicates.
type Refs struct {
	Variables []string
	Functions []string
}

// References collects the variable and function names used in e.
func References(e *ast.Expr) Refs {
	var refs Refs
	ast.Inspect(e, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.VarRef:
			refs.Variables = append(refs.Variables, n.Name().String())
		case *ast.FunctionCall:
			refs.Functions = append(refs.Functions, n.Name().String())
		case *ast.ForExpr:
			for _, b := range n.Clause().Bindings() {
				refs.Variables = append(refs.Variables, b.Var.String())
			}
		case *ast.QuantifiedExpr:
			for _, b := range n.Bindings() {
				refs.Variables = append(refs.Variables, b.Var.String())
			}
		}
		return true
	})
	refs.Variables = sortedUnique(refs.Variables)
	refs.Functions = sortedUnique(refs.Functions)
	return refs
}

func sortedUnique(list []string) []string {
	slices.Sort(list)
	return slices.Compact(list)
}

// Summary renders findings one per line.
func Summary(findings []Finding) string {
	var sb strings.Builder
	for _, f := range findings {
		sb.WriteString(f.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
