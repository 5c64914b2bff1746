package ast

// Comparison is the operator of a ComparisonExpr: a GeneralComp, a
// ValueComp or a NodeComp.
type Comparison interface {
	Syntax() string
	comparison()
}

// GeneralComp compares sequences existentially.
type GeneralComp int

const (
	GeneralEqual GeneralComp = iota
	GeneralNotEqual
	GeneralLessThan
	GeneralLessThanOrEqual
	GeneralGreaterThan
	GeneralGreaterThanOrEqual
)

var generalCompSyntax = [...]string{"=", "!=", "<", "<=", ">", ">="}

func (GeneralComp) comparison() {}

func (c GeneralComp) Syntax() string { return syntaxOf("general comparison", generalCompSyntax[:], c) }

func (c GeneralComp) String() string { return c.Syntax() }

// GeneralCompFromSyntax returns the operator written as s. It panics with a
// FaultUnknownToken Fault if there is none.
func GeneralCompFromSyntax(s string) GeneralComp {
	return fromSyntax[GeneralComp]("general comparison", generalCompSyntax[:], s)
}

// ValueComp compares single atomic values.
type ValueComp int

const (
	ValueEqual ValueComp = iota
	ValueNotEqual
	ValueLessThan
	ValueLessThanOrEqual
	ValueGreaterThan
	ValueGreaterThanOrEqual
)

var valueCompSyntax = [...]string{"eq", "ne", "lt", "le", "gt", "ge"}

func (ValueComp) comparison() {}

func (c ValueComp) Syntax() string { return syntaxOf("value comparison", valueCompSyntax[:], c) }

func (c ValueComp) String() string { return c.Syntax() }

// ValueCompFromSyntax returns the operator written as s. It panics with a
// FaultUnknownToken Fault if there is none.
func ValueCompFromSyntax(s string) ValueComp {
	return fromSyntax[ValueComp]("value comparison", valueCompSyntax[:], s)
}

// NodeComp compares node identity or document order.
type NodeComp int

const (
	NodeIs NodeComp = iota
	NodePrecedes
	NodeFollows
)

var nodeCompSyntax = [...]string{"is", "<<", ">>"}

func (NodeComp) comparison() {}

func (c NodeComp) Syntax() string { return syntaxOf("node comparison", nodeCompSyntax[:], c) }

func (c NodeComp) String() string { return c.Syntax() }

// NodeCompFromSyntax returns the operator written as s. It panics with a
// FaultUnknownToken Fault if there is none.
func NodeCompFromSyntax(s string) NodeComp {
	return fromSyntax[NodeComp]("node comparison", nodeCompSyntax[:], s)
}

// Additive is + or -.
type Additive int

const (
	Add Additive = iota
	Subtract
)

var additiveSyntax = [...]string{"+", "-"}

func (a Additive) Syntax() string { return syntaxOf("additive operator", additiveSyntax[:], a) }

func (a Additive) String() string { return a.Syntax() }

func AdditiveFromSyntax(s string) Additive {
	return fromSyntax[Additive]("additive operator", additiveSyntax[:], s)
}

// Multiplicative is *, div, idiv or mod.
type Multiplicative int

const (
	Multiply Multiplicative = iota
	Divide
	IntegerDivide
	Modulus
)

var multiplicativeSyntax = [...]string{"*", "div", "idiv", "mod"}

func (m Multiplicative) Syntax() string { return syntaxOf("multiplicative operator", multiplicativeSyntax[:], m) }

func (m Multiplicative) String() string { return m.Syntax() }

func MultiplicativeFromSyntax(s string) Multiplicative {
	return fromSyntax[Multiplicative]("multiplicative operator", multiplicativeSyntax[:], s)
}

// IntersectExcept is intersect or except.
type IntersectExcept int

const (
	Intersect IntersectExcept = iota
	Except
)

var intersectExceptSyntax = [...]string{"intersect", "except"}

func (o IntersectExcept) Syntax() string { return syntaxOf("intersect/except operator", intersectExceptSyntax[:], o) }

func (o IntersectExcept) String() string { return o.Syntax() }

func IntersectExceptFromSyntax(s string) IntersectExcept {
	return fromSyntax[IntersectExcept]("intersect/except operator", intersectExceptSyntax[:], s)
}

// Quantifier is some or every.
type Quantifier int

const (
	Some Quantifier = iota
	Every
)

var quantifierSyntax = [...]string{"some", "every"}

func (q Quantifier) Syntax() string { return syntaxOf("quantifier", quantifierSyntax[:], q) }

func (q Quantifier) String() string { return q.Syntax() }

func QuantifierFromSyntax(s string) Quantifier {
	return fromSyntax[Quantifier]("quantifier", quantifierSyntax[:], s)
}

// OccurrenceIndicator is ?, * or +.
type OccurrenceIndicator int

const (
	ZeroOrOne OccurrenceIndicator = iota
	ZeroOrMore
	OneOrMore
)

var occurrenceSyntax = [...]string{"?", "*", "+"}

func (o OccurrenceIndicator) Syntax() string { return syntaxOf("occurrence indicator", occurrenceSyntax[:], o) }

func (o OccurrenceIndicator) String() string { return o.Syntax() }

func OccurrenceIndicatorFromSyntax(s string) OccurrenceIndicator {
	return fromSyntax[OccurrenceIndicator]("occurrence indicator", occurrenceSyntax[:], s)
}

func fromSyntax[E ~int](what string, table []string, s string) E {
	for i, syn := range table {
		if syn == s {
			return E(i)
		}
	}
	panic(fault(FaultUnknownToken, "no %s for %q", what, s))
}

func syntaxOf[E ~int](what string, table []string, v E) string {
	if v < 0 || int(v) >= len(table) {
		panic(fault(FaultUnknownToken, "no %s with value %d", what, int(v)))
	}
	return table[v]
}
