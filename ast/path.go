package ast

import (
	"strings"

	"github.com/speedata/xpathast/optional"
	"golang.org/x/exp/slices"
)

// Axis is the direction of a location step.
type Axis int

const (
	Child Axis = iota
	Descendant
	Attribute
	Self
	DescendantOrSelf
	FollowingSibling
	Following
	Namespace
	Parent
	Ancestor
	PrecedingSibling
	Preceding
	AncestorOrSelf
)

var axisSyntax = [...]string{
	Child:            "child",
	Descendant:       "descendant",
	Attribute:        "attribute",
	Self:             "self",
	DescendantOrSelf: "descendant-or-self",
	FollowingSibling: "following-sibling",
	Following:        "following",
	Namespace:        "namespace",
	Parent:           "parent",
	Ancestor:         "ancestor",
	PrecedingSibling: "preceding-sibling",
	Preceding:        "preceding",
	AncestorOrSelf:   "ancestor-or-self",
}

func (a Axis) Syntax() string { return syntaxOf("axis", axisSyntax[:], a) }

func (a Axis) String() string { return a.Syntax() }

// IsReverse reports whether the axis runs in reverse document order.
func (a Axis) IsReverse() bool {
	return a >= Parent
}

// LookupAxis returns the axis named s.
func LookupAxis(s string) (Axis, bool) {
	for i, syn := range axisSyntax {
		if syn == s {
			return Axis(i), true
		}
	}
	return 0, false
}

// AxisFromSyntax returns the axis named s. It panics with a
// FaultUnknownToken Fault if there is none.
func AxisFromSyntax(s string) Axis {
	return fromSyntax[Axis]("axis", axisSyntax[:], s)
}

// NameTest matches nodes by (possibly wildcarded) name.
type NameTest struct {
	name QNameW
}

func NewNameTest(name QNameW) *NameTest {
	return &NameTest{name: name}
}

func (t *NameTest) Name() QNameW { return t.name }

func (t *NameTest) Equals(n Node) bool {
	o, ok := n.(*NameTest)
	return ok && o.name.Equals(t.name)
}

func (t *NameTest) String() string            { return ToString(t) }
func (t *NameTest) text(dst *strings.Builder) { dst.WriteString(t.name.String()) }
func (t *NameTest) walk(Visitor)              {}
func (*NameTest) nodeTest()                   {}

// Step is an axis together with a node test.
type Step struct {
	axis Axis
	test NodeTest
}

func NewStep(axis Axis, test NodeTest) *Step {
	return &Step{axis: axis, test: test}
}

func (s *Step) Axis() Axis         { return s.axis }
func (s *Step) NodeTest() NodeTest { return s.test }

func (s *Step) Equals(n Node) bool {
	o, ok := n.(*Step)
	return ok && o.axis == s.axis && Equal(s.test, o.test)
}

func (s *Step) String() string { return ToString(s) }

func (s *Step) text(dst *strings.Builder) {
	dst.WriteString(s.axis.Syntax())
	dst.WriteString("::")
	s.test.text(dst)
}

func (s *Step) walk(v Visitor) { Walk(v, s.test) }

// Predicate is "[" Expr "]".
type Predicate struct {
	expr *Expr
}

func NewPredicate(e *Expr) *Predicate {
	return &Predicate{expr: e}
}

func (p *Predicate) Expr() *Expr { return p.expr }

func (p *Predicate) Equals(n Node) bool {
	o, ok := n.(*Predicate)
	return ok && Equal(p.expr, o.expr)
}

func (p *Predicate) String() string { return ToString(p) }

func (p *Predicate) text(dst *strings.Builder) {
	dst.WriteByte('[')
	p.expr.text(dst)
	dst.WriteByte(']')
}

func (p *Predicate) walk(v Visitor) { Walk(v, p.expr) }

// PredicateList holds the predicates of a step in source order.
type PredicateList struct {
	preds []*Predicate
}

// EmptyPredicateList is the list of a step without predicates.
var EmptyPredicateList = &PredicateList{}

// NewPredicateList returns a list of preds. Without arguments it returns
// EmptyPredicateList.
func NewPredicateList(preds ...*Predicate) *PredicateList {
	if len(preds) == 0 {
		return EmptyPredicateList
	}
	return &PredicateList{preds: slices.Clone(preds)}
}

func (l *PredicateList) Predicates() []*Predicate { return slices.Clone(l.preds) }
func (l *PredicateList) Len() int                 { return len(l.preds) }

func (l *PredicateList) Equals(n Node) bool {
	o, ok := n.(*PredicateList)
	return ok && slices.EqualFunc(l.preds, o.preds, equalNodes[*Predicate])
}

func (l *PredicateList) String() string            { return ToString(l) }
func (l *PredicateList) text(dst *strings.Builder) { joinText(dst, l.preds, "") }
func (l *PredicateList) walk(v Visitor)            { walkAll(v, l.preds) }

// FilterExpr is a primary expression followed by predicates.
type FilterExpr struct {
	primary PrimaryExpr
	preds   *PredicateList
}

func NewFilterExpr(primary PrimaryExpr, preds *PredicateList) *FilterExpr {
	return &FilterExpr{primary: primary, preds: preds}
}

func (f *FilterExpr) Primary() PrimaryExpr       { return f.primary }
func (f *FilterExpr) Predicates() *PredicateList { return f.preds }

func (f *FilterExpr) Equals(n Node) bool {
	o, ok := n.(*FilterExpr)
	return ok && Equal(f.primary, o.primary) && Equal(f.preds, o.preds)
}

func (f *FilterExpr) String() string { return ToString(f) }

func (f *FilterExpr) text(dst *strings.Builder) {
	f.primary.text(dst)
	f.preds.text(dst)
}

func (f *FilterExpr) walk(v Visitor) {
	Walk(v, f.primary)
	Walk(v, f.preds)
}

func (*FilterExpr) stepExpr() {}

// AxisStep is a Step followed by predicates.
type AxisStep struct {
	step  *Step
	preds *PredicateList
}

func NewAxisStep(step *Step, preds *PredicateList) *AxisStep {
	return &AxisStep{step: step, preds: preds}
}

func (a *AxisStep) Step() *Step                { return a.step }
func (a *AxisStep) Predicates() *PredicateList { return a.preds }

func (a *AxisStep) Equals(n Node) bool {
	o, ok := n.(*AxisStep)
	return ok && Equal(a.step, o.step) && Equal(a.preds, o.preds)
}

func (a *AxisStep) String() string { return ToString(a) }

func (a *AxisStep) text(dst *strings.Builder) {
	a.step.text(dst)
	a.preds.text(dst)
}

func (a *AxisStep) walk(v Visitor) {
	Walk(v, a.step)
	Walk(v, a.preds)
}

func (*AxisStep) stepExpr() {}

// DescendantOrSelfStep is the step that stands for "//".
var DescendantOrSelfStep StepExpr = NewAxisStep(NewStep(DescendantOrSelf, AnyKindTest{}), EmptyPredicateList)

// RelativePathExpr is StepExpr (("/" | "//") StepExpr)*, with every "//"
// already expanded to DescendantOrSelfStep.
type RelativePathExpr struct {
	steps []StepExpr
}

func NewRelativePathExpr(steps ...StepExpr) *RelativePathExpr {
	return &RelativePathExpr{steps: slices.Clone(steps)}
}

func (r *RelativePathExpr) Steps() []StepExpr { return slices.Clone(r.steps) }

func (r *RelativePathExpr) Equals(n Node) bool {
	o, ok := n.(*RelativePathExpr)
	return ok && slices.EqualFunc(r.steps, o.steps, equalNodes[StepExpr])
}

func (r *RelativePathExpr) String() string            { return ToString(r) }
func (r *RelativePathExpr) text(dst *strings.Builder) { joinText(dst, r.steps, "/") }
func (r *RelativePathExpr) walk(v Visitor)            { walkAll(v, r.steps) }

// PathExpr is a location path. An absolute path starts at the root of the
// tree containing the context node; "/" alone is an absolute path without
// steps.
type PathExpr struct {
	absolute bool
	steps    []StepExpr
}

func NewPathExpr(absolute bool, steps ...StepExpr) *PathExpr {
	return &PathExpr{absolute: absolute, steps: slices.Clone(steps)}
}

// NewPathFromRelative builds a path from an optional initial step followed
// by an optional relative path. A relative path needs at least one of
// them; a missing pair panics with a FaultIncompletePath Fault.
func NewPathFromRelative(absolute bool, initial optional.Value[StepExpr], rel optional.Value[*RelativePathExpr]) *PathExpr {
	if !absolute && !initial.IsPresent() && !rel.IsPresent() {
		panic(fault(FaultIncompletePath, "relative path without steps"))
	}
	var steps []StepExpr
	if s, ok := initial.Get(); ok {
		steps = append(steps, s)
	}
	if r, ok := rel.Get(); ok {
		steps = append(steps, r.steps...)
	}
	return &PathExpr{absolute: absolute, steps: steps}
}

func (p *PathExpr) Absolute() bool    { return p.absolute }
func (p *PathExpr) Steps() []StepExpr { return slices.Clone(p.steps) }

func (p *PathExpr) Equals(n Node) bool {
	o, ok := n.(*PathExpr)
	return ok && o.absolute == p.absolute && slices.EqualFunc(p.steps, o.steps, equalNodes[StepExpr])
}

func (p *PathExpr) String() string { return ToString(p) }

func (p *PathExpr) text(dst *strings.Builder) {
	if p.absolute {
		dst.WriteByte('/')
	}
	joinText(dst, p.steps, "/")
}

func (p *PathExpr) walk(v Visitor) { walkAll(v, p.steps) }

// ValueExpr is the highest binding operand and wraps a PathExpr.
type ValueExpr struct {
	path *PathExpr
}

func NewValueExpr(path *PathExpr) *ValueExpr {
	return &ValueExpr{path: path}
}

func (e *ValueExpr) Path() *PathExpr { return e.path }

func (e *ValueExpr) Equals(n Node) bool {
	o, ok := n.(*ValueExpr)
	return ok && Equal(e.path, o.path)
}

func (e *ValueExpr) String() string            { return ToString(e) }
func (e *ValueExpr) text(dst *strings.Builder) { e.path.text(dst) }
func (e *ValueExpr) walk(v Visitor)            { Walk(v, e.path) }
func (*ValueExpr) exprSingle()                 {}
func (*ValueExpr) operandNode()                {}
