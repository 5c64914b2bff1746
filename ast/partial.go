package ast

import (
	"github.com/speedata/xpathast/optional"
)

// Partial is a node under construction. It owns the part of the node that
// has been parsed so far and yields the finished value, or the next stage
// of a multi-stage construction, when it is given the rest.
type Partial[R, N any] struct {
	what  string
	build func(R) N
	done  bool
}

func newPartial[R, N any](what string, build func(R) N) *Partial[R, N] {
	return &Partial[R, N]{what: what, build: build}
}

// Complete hands r to the partial and returns the result. It panics with a
// FaultPartialReuse Fault when called a second time.
func (p *Partial[R, N]) Complete(r R) N {
	if p.done {
		panic(fault(FaultPartialReuse, "%s completed twice", p.what))
	}
	p.done = true
	build := p.build
	p.build = nil
	return build(r)
}

func (p *Partial[R, N]) String() string {
	return "partial " + p.what
}

// OptionalPartial is a Partial whose remainder may be absent.
type OptionalPartial[R, N any] struct {
	p *Partial[optional.Value[R], N]
}

func newOptionalPartial[R, N any](what string, build func(optional.Value[R]) N) *OptionalPartial[R, N] {
	return &OptionalPartial[R, N]{p: newPartial(what, build)}
}

// Complete completes the partial with a present remainder.
func (o *OptionalPartial[R, N]) Complete(r R) N {
	return o.p.Complete(optional.Some(r))
}

// CompleteOptional completes the partial with a remainder that may be
// absent.
func (o *OptionalPartial[R, N]) CompleteOptional(r optional.Value[R]) N {
	return o.p.Complete(r)
}

// CompleteAbsent completes the partial without a remainder.
func (o *OptionalPartial[R, N]) CompleteAbsent() N {
	return o.p.Complete(optional.None[R]())
}

func (o *OptionalPartial[R, N]) String() string {
	return o.p.String()
}

func PartialOrExpr(left Operand) *Partial[[]Operand, *OrExpr] {
	return newPartial("OrExpr", func(ops []Operand) *OrExpr {
		return NewOrExpr(left, ops...)
	})
}

func PartialAndExpr(left Operand) *Partial[[]Operand, *AndExpr] {
	return newPartial("AndExpr", func(ops []Operand) *AndExpr {
		return NewAndExpr(left, ops...)
	})
}

// PartialComparisonExpr takes the operator, then the right operand.
func PartialComparisonExpr(left Operand) *Partial[Comparison, *Partial[Operand, *ComparisonExpr]] {
	return newPartial("ComparisonExpr", func(comp Comparison) *Partial[Operand, *ComparisonExpr] {
		return newPartial("ComparisonExpr "+comp.Syntax(), func(right Operand) *ComparisonExpr {
			return NewComparisonExpr(left, comp, right)
		})
	})
}

func PartialRangeExpr(from Operand) *Partial[Operand, *RangeExpr] {
	return newPartial("RangeExpr", func(to Operand) *RangeExpr {
		return NewRangeExpr(from, to)
	})
}

func PartialAdditiveExpr(left Operand) *Partial[[]Op[Additive], *AdditiveExpr] {
	return newPartial("AdditiveExpr", func(ops []Op[Additive]) *AdditiveExpr {
		return NewAdditiveExpr(left, ops...)
	})
}

func PartialMultiplicativeExpr(left Operand) *Partial[[]Op[Multiplicative], *MultiplicativeExpr] {
	return newPartial("MultiplicativeExpr", func(ops []Op[Multiplicative]) *MultiplicativeExpr {
		return NewMultiplicativeExpr(left, ops...)
	})
}

func PartialUnionExpr(left Operand) *Partial[[]Operand, *UnionExpr] {
	return newPartial("UnionExpr", func(ops []Operand) *UnionExpr {
		return NewUnionExpr(left, ops...)
	})
}

func PartialIntersectExceptExpr(left Operand) *Partial[[]Op[IntersectExcept], *IntersectExceptExpr] {
	return newPartial("IntersectExceptExpr", func(ops []Op[IntersectExcept]) *IntersectExceptExpr {
		return NewIntersectExceptExpr(left, ops...)
	})
}

func PartialInstanceOfExpr(operand Operand) *Partial[*SequenceType, *InstanceOfExpr] {
	return newPartial("InstanceOfExpr", func(t *SequenceType) *InstanceOfExpr {
		return NewInstanceOfExpr(operand, t)
	})
}

func PartialTreatExpr(operand Operand) *Partial[*SequenceType, *TreatExpr] {
	return newPartial("TreatExpr", func(t *SequenceType) *TreatExpr {
		return NewTreatExpr(operand, t)
	})
}

func PartialCastableExpr(operand Operand) *Partial[*SingleType, *CastableExpr] {
	return newPartial("CastableExpr", func(t *SingleType) *CastableExpr {
		return NewCastableExpr(operand, t)
	})
}

func PartialCastExpr(operand Operand) *Partial[*SingleType, *CastExpr] {
	return newPartial("CastExpr", func(t *SingleType) *CastExpr {
		return NewCastExpr(operand, t)
	})
}

func PartialUnaryExpr(signs string) *Partial[*ValueExpr, *UnaryExpr] {
	return newPartial("UnaryExpr", func(v *ValueExpr) *UnaryExpr {
		return NewUnaryExpr(signs, v)
	})
}

func PartialForExpr(clause *SimpleForClause) *Partial[ExprSingle, *ForExpr] {
	return newPartial("ForExpr", func(ret ExprSingle) *ForExpr {
		return NewForExpr(clause, ret)
	})
}

// PartialQuantifiedExpr takes the in-clauses, then the satisfies body.
func PartialQuantifiedExpr(q Quantifier) *Partial[[]Binding, *Partial[ExprSingle, *QuantifiedExpr]] {
	return newPartial("QuantifiedExpr", func(bindings []Binding) *Partial[ExprSingle, *QuantifiedExpr] {
		return newPartial("QuantifiedExpr satisfies", func(satisfies ExprSingle) *QuantifiedExpr {
			return NewQuantifiedExpr(q, bindings, satisfies)
		})
	})
}

// PartialIfExpr takes the then branch, then the else branch.
func PartialIfExpr(test *Expr) *Partial[ExprSingle, *Partial[ExprSingle, *IfExpr]] {
	return newPartial("IfExpr", func(then ExprSingle) *Partial[ExprSingle, *IfExpr] {
		return newPartial("IfExpr else", func(els ExprSingle) *IfExpr {
			return NewIfExpr(test, then, els)
		})
	})
}

func PartialFunctionCall(name QNameW) *Partial[[]ExprSingle, *FunctionCall] {
	return newPartial("FunctionCall", func(args []ExprSingle) *FunctionCall {
		return NewFunctionCall(name, args...)
	})
}

func PartialFilterExpr(primary PrimaryExpr) *Partial[*PredicateList, *FilterExpr] {
	return newPartial("FilterExpr", func(preds *PredicateList) *FilterExpr {
		return NewFilterExpr(primary, preds)
	})
}

func PartialStep(axis Axis) *Partial[NodeTest, *Step] {
	return newPartial("Step "+axis.Syntax(), func(test NodeTest) *Step {
		return NewStep(axis, test)
	})
}

func PartialAxisStep(step *Step) *Partial[*PredicateList, *AxisStep] {
	return newPartial("AxisStep", func(preds *PredicateList) *AxisStep {
		return NewAxisStep(step, preds)
	})
}

func PartialSequenceType(item ItemType) *OptionalPartial[OccurrenceIndicator, *SequenceType] {
	return newOptionalPartial("SequenceType", func(occ optional.Value[OccurrenceIndicator]) *SequenceType {
		return NewSequenceType(item, occ)
	})
}

// PartialElementTest takes the element name, then the type name, then
// whether the type name was followed by "?".
func PartialElementTest() *OptionalPartial[QNameW, *OptionalPartial[QNameW, *Partial[bool, *ElementTest]]] {
	return newOptionalPartial("ElementTest", func(name optional.Value[QNameW]) *OptionalPartial[QNameW, *Partial[bool, *ElementTest]] {
		return newOptionalPartial("ElementTest type", func(typeName optional.Value[QNameW]) *Partial[bool, *ElementTest] {
			return newPartial("ElementTest nillable", func(nillable bool) *ElementTest {
				return NewElementTest(name, typeName, nillable)
			})
		})
	})
}

// PartialAttributeTest takes the attribute name, then the type name.
func PartialAttributeTest() *OptionalPartial[QNameW, *OptionalPartial[QNameW, *AttributeTest]] {
	return newOptionalPartial("AttributeTest", func(name optional.Value[QNameW]) *OptionalPartial[QNameW, *AttributeTest] {
		return newOptionalPartial("AttributeTest type", func(typeName optional.Value[QNameW]) *AttributeTest {
			return NewAttributeTest(name, typeName)
		})
	})
}

// PartialDecimalLiteral takes the digits after the decimal point. An
// empty integer part becomes 0 and an empty fraction is dropped.
func PartialDecimalLiteral(characteristic string) *OptionalPartial[string, *DecimalLiteral] {
	return newOptionalPartial("DecimalLiteral", func(mantissa optional.Value[string]) *DecimalLiteral {
		return NewDecimalLiteral(decimalText(characteristic, mantissa))
	})
}

// PartialDoubleLiteral takes the fraction digits, then the exponent sign,
// then the exponent digits. A missing exponent sign becomes "+".
func PartialDoubleLiteral(characteristic string) *OptionalPartial[string, *OptionalPartial[string, *Partial[string, *DoubleLiteral]]] {
	return newOptionalPartial("DoubleLiteral", func(mantissa optional.Value[string]) *OptionalPartial[string, *Partial[string, *DoubleLiteral]] {
		return newOptionalPartial("DoubleLiteral exponent sign", func(sign optional.Value[string]) *Partial[string, *DoubleLiteral] {
			return newPartial("DoubleLiteral exponent", func(exponent string) *DoubleLiteral {
				return NewDoubleLiteral(decimalText(characteristic, mantissa) + "E" + sign.OrElse("+") + exponent)
			})
		})
	})
}

func decimalText(characteristic string, mantissa optional.Value[string]) string {
	if characteristic == "" {
		characteristic = "0"
	}
	if m, ok := mantissa.Get(); ok && m != "" {
		return characteristic + "." + m
	}
	return characteristic
}
