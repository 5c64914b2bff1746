package ast

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Expr is a comma separated sequence of one or more ExprSingle. It is the
// root of every parse.
type Expr struct {
	items []ExprSingle
}

func NewExpr(items ...ExprSingle) *Expr {
	return &Expr{items: slices.Clone(items)}
}

func (e *Expr) Items() []ExprSingle { return slices.Clone(e.items) }

func (e *Expr) Equals(n Node) bool {
	o, ok := n.(*Expr)
	return ok && slices.EqualFunc(e.items, o.items, equalNodes[ExprSingle])
}

func (e *Expr) String() string            { return ToString(e) }
func (e *Expr) text(dst *strings.Builder) { joinText(dst, e.items, ", ") }
func (e *Expr) walk(v Visitor)            { walkAll(v, e.items) }

// Binding binds a variable to the items of an expression. It is used by the
// for clause and by quantified expressions.
type Binding struct {
	Var QNameW
	In  ExprSingle
}

func equalBindings(a, b Binding) bool {
	return a.Var.Equals(b.Var) && Equal(a.In, b.In)
}

func bindingsText(dst *strings.Builder, list []Binding) {
	for i, b := range list {
		if i > 0 {
			dst.WriteString(", ")
		}
		dst.WriteByte('$')
		dst.WriteString(b.Var.String())
		dst.WriteString(" in ")
		b.In.text(dst)
	}
}

// SimpleForClause is "for" $v in e ("," $v in e)*.
type SimpleForClause struct {
	bindings []Binding
}

func NewSimpleForClause(bindings ...Binding) *SimpleForClause {
	return &SimpleForClause{bindings: slices.Clone(bindings)}
}

func (c *SimpleForClause) Bindings() []Binding { return slices.Clone(c.bindings) }

func (c *SimpleForClause) Equals(n Node) bool {
	o, ok := n.(*SimpleForClause)
	return ok && slices.EqualFunc(c.bindings, o.bindings, equalBindings)
}

func (c *SimpleForClause) String() string { return ToString(c) }

func (c *SimpleForClause) text(dst *strings.Builder) {
	dst.WriteString("for ")
	bindingsText(dst, c.bindings)
}

func (c *SimpleForClause) walk(v Visitor) {
	for _, b := range c.bindings {
		Walk(v, b.In)
	}
}

// ForExpr is SimpleForClause "return" ExprSingle.
type ForExpr struct {
	clause *SimpleForClause
	ret    ExprSingle
}

func NewForExpr(clause *SimpleForClause, ret ExprSingle) *ForExpr {
	return &ForExpr{clause: clause, ret: ret}
}

func (f *ForExpr) Clause() *SimpleForClause { return f.clause }
func (f *ForExpr) Return() ExprSingle       { return f.ret }

func (f *ForExpr) Equals(n Node) bool {
	o, ok := n.(*ForExpr)
	return ok && Equal(f.clause, o.clause) && Equal(f.ret, o.ret)
}

func (f *ForExpr) String() string { return ToString(f) }

func (f *ForExpr) text(dst *strings.Builder) {
	f.clause.text(dst)
	dst.WriteString(" return ")
	f.ret.text(dst)
}

func (f *ForExpr) walk(v Visitor) {
	Walk(v, f.clause)
	Walk(v, f.ret)
}

func (*ForExpr) exprSingle() {}

// QuantifiedExpr is ("some" | "every") bindings "satisfies" ExprSingle.
type QuantifiedExpr struct {
	quantifier Quantifier
	bindings   []Binding
	satisfies  ExprSingle
}

func NewQuantifiedExpr(q Quantifier, bindings []Binding, satisfies ExprSingle) *QuantifiedExpr {
	return &QuantifiedExpr{quantifier: q, bindings: slices.Clone(bindings), satisfies: satisfies}
}

func (q *QuantifiedExpr) Quantifier() Quantifier { return q.quantifier }
func (q *QuantifiedExpr) Bindings() []Binding    { return slices.Clone(q.bindings) }
func (q *QuantifiedExpr) Satisfies() ExprSingle  { return q.satisfies }

func (q *QuantifiedExpr) Equals(n Node) bool {
	o, ok := n.(*QuantifiedExpr)
	return ok && o.quantifier == q.quantifier &&
		slices.EqualFunc(q.bindings, o.bindings, equalBindings) &&
		Equal(q.satisfies, o.satisfies)
}

func (q *QuantifiedExpr) String() string { return ToString(q) }

func (q *QuantifiedExpr) text(dst *strings.Builder) {
	dst.WriteString(q.quantifier.Syntax())
	dst.WriteByte(' ')
	bindingsText(dst, q.bindings)
	dst.WriteString(" satisfies ")
	q.satisfies.text(dst)
}

func (q *QuantifiedExpr) walk(v Visitor) {
	for _, b := range q.bindings {
		Walk(v, b.In)
	}
	Walk(v, q.satisfies)
}

func (*QuantifiedExpr) exprSingle() {}

// IfExpr is "if" "(" Expr ")" "then" ExprSingle "else" ExprSingle.
type IfExpr struct {
	test *Expr
	then ExprSingle
	els  ExprSingle
}

func NewIfExpr(test *Expr, then, els ExprSingle) *IfExpr {
	return &IfExpr{test: test, then: then, els: els}
}

func (i *IfExpr) Test() *Expr      { return i.test }
func (i *IfExpr) Then() ExprSingle { return i.then }
func (i *IfExpr) Else() ExprSingle { return i.els }

func (i *IfExpr) Equals(n Node) bool {
	o, ok := n.(*IfExpr)
	return ok && Equal(i.test, o.test) && Equal(i.then, o.then) && Equal(i.els, o.els)
}

func (i *IfExpr) String() string { return ToString(i) }

func (i *IfExpr) text(dst *strings.Builder) {
	dst.WriteString("if (")
	i.test.text(dst)
	dst.WriteString(") then ")
	i.then.text(dst)
	dst.WriteString(" else ")
	i.els.text(dst)
}

func (i *IfExpr) walk(v Visitor) {
	Walk(v, i.test)
	Walk(v, i.then)
	Walk(v, i.els)
}

func (*IfExpr) exprSingle() {}
