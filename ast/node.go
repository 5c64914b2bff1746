// Package ast defines the immutable syntax tree produced by the XPath 2.0
// parser.
//
// Every node is built once through its constructor (or a Partial, see
// partial.go) and never changes afterwards. Slices handed out by accessor
// methods are copies.
package ast

import (
	"strings"
)

// Node is implemented by every tree node.
type Node interface {
	// Equals reports whether the node is structurally equal to another
	// node.
	Equals(Node) bool
	// String renders the node as XPath-like text.
	String() string

	text(dst *strings.Builder)
	walk(v Visitor)
}

// ExprSingle is a single, comma-free expression: a for, quantified or if
// expression, or an Operand.
type ExprSingle interface {
	Node
	exprSingle()
}

// Operand is one of the nodes of the operator precedence chain, OrExpr down
// to ValueExpr.
type Operand interface {
	ExprSingle
	operandNode()
}

// StepExpr is a FilterExpr or an AxisStep.
type StepExpr interface {
	Node
	stepExpr()
}

// PrimaryExpr is a literal, a variable reference, a parenthesized
// expression, the context item or a function call.
type PrimaryExpr interface {
	Node
	primaryExpr()
}

// NodeTest is a NameTest or a KindTest.
type NodeTest interface {
	Node
	nodeTest()
}

// ItemType is a KindTest, item() or an AtomicType.
type ItemType interface {
	Node
	itemType()
}

// KindTest matches nodes by kind. It can appear both as a step's node test
// and as an item type.
type KindTest interface {
	NodeTest
	ItemType
	kindTest()
}

// Equal reports whether a and b are structurally equal. Two nil nodes are
// equal.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

// ToString renders n as XPath-like text.
func ToString(n Node) string {
	var sb strings.Builder
	n.text(&sb)
	return sb.String()
}

// A Visitor's Visit method is invoked for each node encountered by Walk. If
// the result visitor w is not nil, Walk visits each of the children of node
// with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(Node) Visitor
}

// Walk traverses the tree rooted at n in depth-first order.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	w := v.Visit(n)
	if w == nil {
		return
	}
	n.walk(w)
	w.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) Visitor {
	if n == nil || !f(n) {
		return nil
	}
	return f
}

// Inspect traverses the tree rooted at n in depth-first order, calling f
// for each node. If f returns false the children of the node are skipped.
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}

func joinText[T Node](dst *strings.Builder, list []T, sep string) {
	for i := range list {
		if i > 0 {
			dst.WriteString(sep)
		}
		list[i].text(dst)
	}
}

func walkAll[T Node](v Visitor, list []T) {
	for i := range list {
		Walk(v, list[i])
	}
}

func equalNodes[T Node](a, b T) bool {
	return Equal(a, b)
}
