package ast

import (
	"strings"

	"github.com/speedata/xpathast/optional"
	"golang.org/x/exp/slices"
)

// IntegerLiteral holds the digits of an integer literal.
type IntegerLiteral struct {
	value string
}

func NewIntegerLiteral(value string) *IntegerLiteral {
	return &IntegerLiteral{value: value}
}

func (l *IntegerLiteral) Value() string { return l.value }

func (l *IntegerLiteral) Equals(n Node) bool {
	o, ok := n.(*IntegerLiteral)
	return ok && o.value == l.value
}

func (l *IntegerLiteral) String() string            { return ToString(l) }
func (l *IntegerLiteral) text(dst *strings.Builder) { dst.WriteString(l.value) }
func (l *IntegerLiteral) walk(Visitor)              {}
func (*IntegerLiteral) primaryExpr()                {}

// DecimalLiteral holds a decimal literal in canonical form: an integer part
// (0 if it was omitted) and, unless empty, a fractional part.
type DecimalLiteral struct {
	value string
}

// NewDecimalLiteral returns a decimal literal with the canonical text value.
func NewDecimalLiteral(value string) *DecimalLiteral {
	return &DecimalLiteral{value: value}
}

func (l *DecimalLiteral) Value() string { return l.value }

func (l *DecimalLiteral) Equals(n Node) bool {
	o, ok := n.(*DecimalLiteral)
	return ok && o.value == l.value
}

func (l *DecimalLiteral) String() string            { return ToString(l) }
func (l *DecimalLiteral) text(dst *strings.Builder) { dst.WriteString(l.value) }
func (l *DecimalLiteral) walk(Visitor)              {}
func (*DecimalLiteral) primaryExpr()                {}

// DoubleLiteral holds a double literal in canonical form
// characteristic[.mantissa]E(+|-)exponent.
type DoubleLiteral struct {
	value string
}

// NewDoubleLiteral returns a double literal with the canonical text value.
func NewDoubleLiteral(value string) *DoubleLiteral {
	return &DoubleLiteral{value: value}
}

func (l *DoubleLiteral) Value() string { return l.value }

func (l *DoubleLiteral) Equals(n Node) bool {
	o, ok := n.(*DoubleLiteral)
	return ok && o.value == l.value
}

func (l *DoubleLiteral) String() string            { return ToString(l) }
func (l *DoubleLiteral) text(dst *strings.Builder) { dst.WriteString(l.value) }
func (l *DoubleLiteral) walk(Visitor)              {}
func (*DoubleLiteral) primaryExpr()                {}

// StringLiteral holds the unescaped value of a string literal.
type StringLiteral struct {
	value string
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{value: value}
}

func (l *StringLiteral) Value() string { return l.value }

func (l *StringLiteral) Equals(n Node) bool {
	o, ok := n.(*StringLiteral)
	return ok && o.value == l.value
}

func (l *StringLiteral) String() string { return ToString(l) }

func (l *StringLiteral) text(dst *strings.Builder) {
	dst.WriteByte('"')
	dst.WriteString(strings.ReplaceAll(l.value, `"`, `""`))
	dst.WriteByte('"')
}

func (l *StringLiteral) walk(Visitor) {}
func (*StringLiteral) primaryExpr()   {}

// VarRef is $name.
type VarRef struct {
	name QNameW
}

func NewVarRef(name QNameW) *VarRef {
	return &VarRef{name: name}
}

func (v *VarRef) Name() QNameW { return v.name }

func (v *VarRef) Equals(n Node) bool {
	o, ok := n.(*VarRef)
	return ok && o.name.Equals(v.name)
}

func (v *VarRef) String() string { return ToString(v) }

func (v *VarRef) text(dst *strings.Builder) {
	dst.WriteByte('$')
	dst.WriteString(v.name.String())
}

func (v *VarRef) walk(Visitor) {}
func (*VarRef) primaryExpr()   {}

// ContextItemExpr is ".".
type ContextItemExpr struct{}

func (ContextItemExpr) Equals(n Node) bool {
	_, ok := n.(ContextItemExpr)
	return ok
}

func (c ContextItemExpr) String() string          { return "." }
func (ContextItemExpr) text(dst *strings.Builder) { dst.WriteByte('.') }
func (ContextItemExpr) walk(Visitor)              {}
func (ContextItemExpr) primaryExpr()              {}

// ParenthesizedExpr is "(" Expr? ")". The empty sequence "()" has no
// expression.
type ParenthesizedExpr struct {
	expr optional.Value[*Expr]
}

func NewParenthesizedExpr(e *Expr) *ParenthesizedExpr {
	return &ParenthesizedExpr{expr: optional.Some(e)}
}

// NewEmptyParenthesizedExpr returns "()".
func NewEmptyParenthesizedExpr() *ParenthesizedExpr {
	return &ParenthesizedExpr{}
}

// Expr returns the enclosed expression, if any.
func (p *ParenthesizedExpr) Expr() (*Expr, bool) { return p.expr.Get() }

func (p *ParenthesizedExpr) Equals(n Node) bool {
	o, ok := n.(*ParenthesizedExpr)
	return ok && optional.Equal(p.expr, o.expr, equalNodes[*Expr])
}

func (p *ParenthesizedExpr) String() string { return ToString(p) }

func (p *ParenthesizedExpr) text(dst *strings.Builder) {
	dst.WriteByte('(')
	if e, ok := p.expr.Get(); ok {
		e.text(dst)
	}
	dst.WriteByte(')')
}

func (p *ParenthesizedExpr) walk(v Visitor) {
	if e, ok := p.expr.Get(); ok {
		Walk(v, e)
	}
}

func (*ParenthesizedExpr) primaryExpr() {}

// FunctionCall is name(args...).
type FunctionCall struct {
	name QNameW
	args []ExprSingle
}

func NewFunctionCall(name QNameW, args ...ExprSingle) *FunctionCall {
	return &FunctionCall{name: name, args: slices.Clone(args)}
}

func (f *FunctionCall) Name() QNameW { return f.name }

func (f *FunctionCall) Args() []ExprSingle { return slices.Clone(f.args) }

func (f *FunctionCall) Equals(n Node) bool {
	o, ok := n.(*FunctionCall)
	return ok && o.name.Equals(f.name) && slices.EqualFunc(f.args, o.args, equalNodes[ExprSingle])
}

func (f *FunctionCall) String() string { return ToString(f) }

func (f *FunctionCall) text(dst *strings.Builder) {
	dst.WriteString(f.name.String())
	dst.WriteByte('(')
	joinText(dst, f.args, ", ")
	dst.WriteByte(')')
}

func (f *FunctionCall) walk(v Visitor) { walkAll(v, f.args) }
func (*FunctionCall) primaryExpr()     {}
