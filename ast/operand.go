package ast

import (
	"strings"

	"golang.org/x/exp/slices"
)

type operator interface {
	~int
	Syntax() string
}

// Op pairs an operator with its right-hand operand.
type Op[K operator] struct {
	Kind    K
	Operand Operand
}

func equalOps[K operator](a, b Op[K]) bool {
	return a.Kind == b.Kind && Equal(a.Operand, b.Operand)
}

// opChain is a left operand followed by one or more right-hand
// applications, evaluated left to right.
type opChain[T any] struct {
	operand Operand
	ops     []T
}

// Operand returns the leftmost operand.
func (c *opChain[T]) Operand() Operand { return c.operand }

// Ops returns the right-hand applications in source order.
func (c *opChain[T]) Ops() []T { return slices.Clone(c.ops) }

func (c *opChain[T]) equalChain(o *opChain[T], eq func(T, T) bool) bool {
	return Equal(c.operand, o.operand) && slices.EqualFunc(c.ops, o.ops, eq)
}

func keywordChainText(dst *strings.Builder, c *opChain[Operand], keyword string) {
	c.operand.text(dst)
	for _, o := range c.ops {
		dst.WriteString(" " + keyword + " ")
		o.text(dst)
	}
}

func opChainText[K operator](dst *strings.Builder, c *opChain[Op[K]]) {
	c.operand.text(dst)
	for _, o := range c.ops {
		dst.WriteString(" " + o.Kind.Syntax() + " ")
		o.Operand.text(dst)
	}
}

func walkOperands(v Visitor, c *opChain[Operand]) {
	Walk(v, c.operand)
	walkAll(v, c.ops)
}

func walkOps[K operator](v Visitor, c *opChain[Op[K]]) {
	Walk(v, c.operand)
	for _, o := range c.ops {
		Walk(v, o.Operand)
	}
}

// OrExpr is AndExpr ("or" AndExpr)+.
type OrExpr struct {
	opChain[Operand]
}

func NewOrExpr(operand Operand, ops ...Operand) *OrExpr {
	return &OrExpr{opChain[Operand]{operand: operand, ops: slices.Clone(ops)}}
}

func (e *OrExpr) Equals(n Node) bool {
	o, ok := n.(*OrExpr)
	return ok && e.equalChain(&o.opChain, equalNodes[Operand])
}

func (e *OrExpr) String() string            { return ToString(e) }
func (e *OrExpr) text(dst *strings.Builder) { keywordChainText(dst, &e.opChain, "or") }
func (e *OrExpr) walk(v Visitor)            { walkOperands(v, &e.opChain) }
func (*OrExpr) exprSingle()                 {}
func (*OrExpr) operandNode()                {}

// AndExpr is ComparisonExpr ("and" ComparisonExpr)+.
type AndExpr struct {
	opChain[Operand]
}

func NewAndExpr(operand Operand, ops ...Operand) *AndExpr {
	return &AndExpr{opChain[Operand]{operand: operand, ops: slices.Clone(ops)}}
}

func (e *AndExpr) Equals(n Node) bool {
	o, ok := n.(*AndExpr)
	return ok && e.equalChain(&o.opChain, equalNodes[Operand])
}

func (e *AndExpr) String() string            { return ToString(e) }
func (e *AndExpr) text(dst *strings.Builder) { keywordChainText(dst, &e.opChain, "and") }
func (e *AndExpr) walk(v Visitor)            { walkOperands(v, &e.opChain) }
func (*AndExpr) exprSingle()                 {}
func (*AndExpr) operandNode()                {}

// ComparisonExpr is a single, non-associative comparison.
type ComparisonExpr struct {
	left  Operand
	comp  Comparison
	right Operand
}

func NewComparisonExpr(left Operand, comp Comparison, right Operand) *ComparisonExpr {
	return &ComparisonExpr{left: left, comp: comp, right: right}
}

func (e *ComparisonExpr) Left() Operand          { return e.left }
func (e *ComparisonExpr) Comparison() Comparison { return e.comp }
func (e *ComparisonExpr) Right() Operand         { return e.right }

func (e *ComparisonExpr) Equals(n Node) bool {
	o, ok := n.(*ComparisonExpr)
	return ok && o.comp == e.comp && Equal(e.left, o.left) && Equal(e.right, o.right)
}

func (e *ComparisonExpr) String() string { return ToString(e) }

func (e *ComparisonExpr) text(dst *strings.Builder) {
	e.left.text(dst)
	dst.WriteString(" " + e.comp.Syntax() + " ")
	e.right.text(dst)
}

func (e *ComparisonExpr) walk(v Visitor) {
	Walk(v, e.left)
	Walk(v, e.right)
}

func (*ComparisonExpr) exprSingle()  {}
func (*ComparisonExpr) operandNode() {}

// RangeExpr is AdditiveExpr "to" AdditiveExpr.
type RangeExpr struct {
	from Operand
	to   Operand
}

func NewRangeExpr(from, to Operand) *RangeExpr {
	return &RangeExpr{from: from, to: to}
}

func (e *RangeExpr) From() Operand { return e.from }
func (e *RangeExpr) To() Operand   { return e.to }

func (e *RangeExpr) Equals(n Node) bool {
	o, ok := n.(*RangeExpr)
	return ok && Equal(e.from, o.from) && Equal(e.to, o.to)
}

func (e *RangeExpr) String() string { return ToString(e) }

func (e *RangeExpr) text(dst *strings.Builder) {
	e.from.text(dst)
	dst.WriteString(" to ")
	e.to.text(dst)
}

func (e *RangeExpr) walk(v Visitor) {
	Walk(v, e.from)
	Walk(v, e.to)
}

func (*RangeExpr) exprSingle()  {}
func (*RangeExpr) operandNode() {}

// AdditiveExpr is MultiplicativeExpr (("+" | "-") MultiplicativeExpr)+.
type AdditiveExpr struct {
	opChain[Op[Additive]]
}

func NewAdditiveExpr(operand Operand, ops ...Op[Additive]) *AdditiveExpr {
	return &AdditiveExpr{opChain[Op[Additive]]{operand: operand, ops: slices.Clone(ops)}}
}

func (e *AdditiveExpr) Equals(n Node) bool {
	o, ok := n.(*AdditiveExpr)
	return ok && e.equalChain(&o.opChain, equalOps[Additive])
}

func (e *AdditiveExpr) String() string            { return ToString(e) }
func (e *AdditiveExpr) text(dst *strings.Builder) { opChainText(dst, &e.opChain) }
func (e *AdditiveExpr) walk(v Visitor)            { walkOps(v, &e.opChain) }
func (*AdditiveExpr) exprSingle()                 {}
func (*AdditiveExpr) operandNode()                {}

// MultiplicativeExpr is UnionExpr (("*" | "div" | "idiv" | "mod") UnionExpr)+.
type MultiplicativeExpr struct {
	opChain[Op[Multiplicative]]
}

func NewMultiplicativeExpr(operand Operand, ops ...Op[Multiplicative]) *MultiplicativeExpr {
	return &MultiplicativeExpr{opChain[Op[Multiplicative]]{operand: operand, ops: slices.Clone(ops)}}
}

func (e *MultiplicativeExpr) Equals(n Node) bool {
	o, ok := n.(*MultiplicativeExpr)
	return ok && e.equalChain(&o.opChain, equalOps[Multiplicative])
}

func (e *MultiplicativeExpr) String() string            { return ToString(e) }
func (e *MultiplicativeExpr) text(dst *strings.Builder) { opChainText(dst, &e.opChain) }
func (e *MultiplicativeExpr) walk(v Visitor)            { walkOps(v, &e.opChain) }
func (*MultiplicativeExpr) exprSingle()                 {}
func (*MultiplicativeExpr) operandNode()                {}

// UnionExpr is IntersectExceptExpr (("union" | "|") IntersectExceptExpr)+.
type UnionExpr struct {
	opChain[Operand]
}

func NewUnionExpr(operand Operand, ops ...Operand) *UnionExpr {
	return &UnionExpr{opChain[Operand]{operand: operand, ops: slices.Clone(ops)}}
}

func (e *UnionExpr) Equals(n Node) bool {
	o, ok := n.(*UnionExpr)
	return ok && e.equalChain(&o.opChain, equalNodes[Operand])
}

func (e *UnionExpr) String() string            { return ToString(e) }
func (e *UnionExpr) text(dst *strings.Builder) { keywordChainText(dst, &e.opChain, "union") }
func (e *UnionExpr) walk(v Visitor)            { walkOperands(v, &e.opChain) }
func (*UnionExpr) exprSingle()                 {}
func (*UnionExpr) operandNode()                {}

// IntersectExceptExpr is InstanceofExpr (("intersect" | "except") InstanceofExpr)+.
type IntersectExceptExpr struct {
	opChain[Op[IntersectExcept]]
}

func NewIntersectExceptExpr(operand Operand, ops ...Op[IntersectExcept]) *IntersectExceptExpr {
	return &IntersectExceptExpr{opChain[Op[IntersectExcept]]{operand: operand, ops: slices.Clone(ops)}}
}

func (e *IntersectExceptExpr) Equals(n Node) bool {
	o, ok := n.(*IntersectExceptExpr)
	return ok && e.equalChain(&o.opChain, equalOps[IntersectExcept])
}

func (e *IntersectExceptExpr) String() string            { return ToString(e) }
func (e *IntersectExceptExpr) text(dst *strings.Builder) { opChainText(dst, &e.opChain) }
func (e *IntersectExceptExpr) walk(v Visitor)            { walkOps(v, &e.opChain) }
func (*IntersectExceptExpr) exprSingle()                 {}
func (*IntersectExceptExpr) operandNode()                {}

// InstanceOfExpr is TreatExpr "instance" "of" SequenceType.
type InstanceOfExpr struct {
	operand Operand
	typ     *SequenceType
}

func NewInstanceOfExpr(operand Operand, typ *SequenceType) *InstanceOfExpr {
	return &InstanceOfExpr{operand: operand, typ: typ}
}

func (e *InstanceOfExpr) Operand() Operand            { return e.operand }
func (e *InstanceOfExpr) SequenceType() *SequenceType { return e.typ }

func (e *InstanceOfExpr) Equals(n Node) bool {
	o, ok := n.(*InstanceOfExpr)
	return ok && Equal(e.operand, o.operand) && Equal(e.typ, o.typ)
}

func (e *InstanceOfExpr) String() string { return ToString(e) }

func (e *InstanceOfExpr) text(dst *strings.Builder) {
	e.operand.text(dst)
	dst.WriteString(" instance of ")
	e.typ.text(dst)
}

func (e *InstanceOfExpr) walk(v Visitor) {
	Walk(v, e.operand)
	Walk(v, e.typ)
}

func (*InstanceOfExpr) exprSingle()  {}
func (*InstanceOfExpr) operandNode() {}

// TreatExpr is CastableExpr "treat" "as" SequenceType.
type TreatExpr struct {
	operand Operand
	typ     *SequenceType
}

func NewTreatExpr(operand Operand, typ *SequenceType) *TreatExpr {
	return &TreatExpr{operand: operand, typ: typ}
}

func (e *TreatExpr) Operand() Operand            { return e.operand }
func (e *TreatExpr) SequenceType() *SequenceType { return e.typ }

func (e *TreatExpr) Equals(n Node) bool {
	o, ok := n.(*TreatExpr)
	return ok && Equal(e.operand, o.operand) && Equal(e.typ, o.typ)
}

func (e *TreatExpr) String() string { return ToString(e) }

func (e *TreatExpr) text(dst *strings.Builder) {
	e.operand.text(dst)
	dst.WriteString(" treat as ")
	e.typ.text(dst)
}

func (e *TreatExpr) walk(v Visitor) {
	Walk(v, e.operand)
	Walk(v, e.typ)
}

func (*TreatExpr) exprSingle()  {}
func (*TreatExpr) operandNode() {}

// CastableExpr is CastExpr "castable" "as" SingleType.
type CastableExpr struct {
	operand Operand
	typ     *SingleType
}

func NewCastableExpr(operand Operand, typ *SingleType) *CastableExpr {
	return &CastableExpr{operand: operand, typ: typ}
}

func (e *CastableExpr) Operand() Operand        { return e.operand }
func (e *CastableExpr) SingleType() *SingleType { return e.typ }

func (e *CastableExpr) Equals(n Node) bool {
	o, ok := n.(*CastableExpr)
	return ok && Equal(e.operand, o.operand) && Equal(e.typ, o.typ)
}

func (e *CastableExpr) String() string { return ToString(e) }

func (e *CastableExpr) text(dst *strings.Builder) {
	e.operand.text(dst)
	dst.WriteString(" castable as ")
	e.typ.text(dst)
}

func (e *CastableExpr) walk(v Visitor) {
	Walk(v, e.operand)
	Walk(v, e.typ)
}

func (*CastableExpr) exprSingle()  {}
func (*CastableExpr) operandNode() {}

// CastExpr is UnaryExpr "cast" "as" SingleType.
type CastExpr struct {
	operand Operand
	typ     *SingleType
}

func NewCastExpr(operand Operand, typ *SingleType) *CastExpr {
	return &CastExpr{operand: operand, typ: typ}
}

func (e *CastExpr) Operand() Operand        { return e.operand }
func (e *CastExpr) SingleType() *SingleType { return e.typ }

func (e *CastExpr) Equals(n Node) bool {
	o, ok := n.(*CastExpr)
	return ok && Equal(e.operand, o.operand) && Equal(e.typ, o.typ)
}

func (e *CastExpr) String() string { return ToString(e) }

func (e *CastExpr) text(dst *strings.Builder) {
	e.operand.text(dst)
	dst.WriteString(" cast as ")
	e.typ.text(dst)
}

func (e *CastExpr) walk(v Visitor) {
	Walk(v, e.operand)
	Walk(v, e.typ)
}

func (*CastExpr) exprSingle()  {}
func (*CastExpr) operandNode() {}

// UnaryExpr is one or more signs applied to a ValueExpr. The signs are kept
// as written, e.g. "+-".
type UnaryExpr struct {
	signs string
	value *ValueExpr
}

func NewUnaryExpr(signs string, value *ValueExpr) *UnaryExpr {
	return &UnaryExpr{signs: signs, value: value}
}

func (e *UnaryExpr) Signs() string     { return e.signs }
func (e *UnaryExpr) Value() *ValueExpr { return e.value }

// Negative reports whether the signs amount to a negation.
func (e *UnaryExpr) Negative() bool {
	return strings.Count(e.signs, "-")%2 == 1
}

func (e *UnaryExpr) Equals(n Node) bool {
	o, ok := n.(*UnaryExpr)
	return ok && o.signs == e.signs && Equal(e.value, o.value)
}

func (e *UnaryExpr) String() string { return ToString(e) }

func (e *UnaryExpr) text(dst *strings.Builder) {
	dst.WriteString(e.signs)
	e.value.text(dst)
}

func (e *UnaryExpr) walk(v Visitor) { Walk(v, e.value) }
func (*UnaryExpr) exprSingle()      {}
func (*UnaryExpr) operandNode()     {}
