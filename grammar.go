package xpathast

import (
	"github.com/speedata/xpathast/ast"
	"github.com/speedata/xpathast/either"
	"github.com/speedata/xpathast/optional"
)

// reservedFunctionNames may not be used as unprefixed function names. They
// are taken by kind tests and other constructs that look like calls.
var reservedFunctionNames = map[string]bool{
	"attribute":              true,
	"comment":                true,
	"document-node":          true,
	"element":                true,
	"empty-sequence":         true,
	"if":                     true,
	"item":                   true,
	"node":                   true,
	"processing-instruction": true,
	"schema-attribute":       true,
	"schema-element":         true,
	"text":                   true,
	"typeswitch":             true,
}

// maxDepth bounds how deeply expressions may nest inside parentheses,
// predicates and other bracketed forms.
const maxDepth = 1000

// zeroOrMore applies rule until it fails. The input consumed by the
// failing attempt is given back.
func zeroOrMore[T any](p *parser, rule func() (T, bool)) []T {
	var list []T
	for {
		save := p.pos
		v, ok := rule()
		if !ok {
			p.pos = save
			return list
		}
		list = append(list, v)
	}
}

// optionally applies rule once and gives back the input if it fails.
func optionally[T any](p *parser, rule func() (T, bool)) optional.Value[T] {
	save := p.pos
	v, ok := rule()
	if !ok {
		p.pos = save
	}
	return optional.Of(v, ok)
}

// [2] Expr ::= ExprSingle ("," ExprSingle)*
func (p *parser) expr() (*ast.Expr, bool) {
	const step = "2 Expr"
	start := enterStep(p, step)
	first, ok := p.exprSingle()
	if !ok {
		return failStep[*ast.Expr](p, step, start)
	}
	rest := zeroOrMore(p, func() (ast.ExprSingle, bool) {
		if !p.litWS(",") {
			return nil, false
		}
		return p.exprSingle()
	})
	return leaveStep(p, step, ast.NewExpr(append([]ast.ExprSingle{first}, rest...)...))
}

// [3] ExprSingle ::= ForExpr | QuantifiedExpr | IfExpr | OrExpr
func (p *parser) exprSingle() (ast.ExprSingle, bool) {
	const step = "3 ExprSingle"
	start := enterStep(p, step)
	if p.depth >= maxDepth {
		p.expect("expression nested too deeply")
		return failStep[ast.ExprSingle](p, step, start)
	}
	p.depth++
	defer func() { p.depth-- }()
	if e, ok := p.forExpr(); ok {
		return leaveStep[ast.ExprSingle](p, step, e)
	}
	if e, ok := p.quantifiedExpr(); ok {
		return leaveStep[ast.ExprSingle](p, step, e)
	}
	if e, ok := p.ifExpr(); ok {
		return leaveStep[ast.ExprSingle](p, step, e)
	}
	if e, ok := p.orExpr(); ok {
		return leaveStep[ast.ExprSingle](p, step, e)
	}
	return failStep[ast.ExprSingle](p, step, start)
}

// binding reads "$" VarName "in" ExprSingle.
func (p *parser) binding() (ast.Binding, bool) {
	start := p.pos
	if !p.litWS("$") {
		return ast.Binding{}, false
	}
	name, ok := p.qname()
	if !ok || !p.keyword("in") {
		p.pos = start
		return ast.Binding{}, false
	}
	in, ok := p.exprSingle()
	if !ok {
		p.pos = start
		return ast.Binding{}, false
	}
	return ast.Binding{Var: name, In: in}, true
}

// bindings reads one or more comma separated bindings.
func (p *parser) bindings() ([]ast.Binding, bool) {
	first, ok := p.binding()
	if !ok {
		return nil, false
	}
	rest := zeroOrMore(p, func() (ast.Binding, bool) {
		if !p.litWS(",") {
			return ast.Binding{}, false
		}
		return p.binding()
	})
	return append([]ast.Binding{first}, rest...), true
}

// [4] ForExpr ::= SimpleForClause "return" ExprSingle
func (p *parser) forExpr() (*ast.ForExpr, bool) {
	const step = "4 ForExpr"
	start := enterStep(p, step)
	clause, ok := p.simpleForClause()
	if !ok || !p.keyword("return") {
		return failStep[*ast.ForExpr](p, step, start)
	}
	ret, ok := p.exprSingle()
	if !ok {
		return failStep[*ast.ForExpr](p, step, start)
	}
	return leaveStep(p, step, ast.PartialForExpr(clause).Complete(ret))
}

// [5] SimpleForClause ::= "for" "$" VarName "in" ExprSingle ("," "$" VarName "in" ExprSingle)*
func (p *parser) simpleForClause() (*ast.SimpleForClause, bool) {
	const step = "5 SimpleForClause"
	start := enterStep(p, step)
	if !p.keyword("for") {
		return failStep[*ast.SimpleForClause](p, step, start)
	}
	list, ok := p.bindings()
	if !ok {
		return failStep[*ast.SimpleForClause](p, step, start)
	}
	return leaveStep(p, step, ast.NewSimpleForClause(list...))
}

// [6] QuantifiedExpr ::= ("some" | "every") "$" VarName "in" ExprSingle ("," "$" VarName "in" ExprSingle)* "satisfies" ExprSingle
func (p *parser) quantifiedExpr() (*ast.QuantifiedExpr, bool) {
	const step = "6 QuantifiedExpr"
	start := enterStep(p, step)
	kw, ok := p.firstKeyword("some", "every")
	if !ok {
		return failStep[*ast.QuantifiedExpr](p, step, start)
	}
	list, ok := p.bindings()
	if !ok || !p.keyword("satisfies") {
		return failStep[*ast.QuantifiedExpr](p, step, start)
	}
	partial := ast.PartialQuantifiedExpr(ast.QuantifierFromSyntax(kw)).Complete(list)
	satisfies, ok := p.exprSingle()
	if !ok {
		return failStep[*ast.QuantifiedExpr](p, step, start)
	}
	return leaveStep(p, step, partial.Complete(satisfies))
}

// [7] IfExpr ::= "if" "(" Expr ")" "then" ExprSingle "else" ExprSingle
func (p *parser) ifExpr() (*ast.IfExpr, bool) {
	const step = "7 IfExpr"
	start := enterStep(p, step)
	if !p.keyword("if") || !p.litWS("(") {
		return failStep[*ast.IfExpr](p, step, start)
	}
	test, ok := p.expr()
	if !ok || !p.litWS(")") || !p.keyword("then") {
		return failStep[*ast.IfExpr](p, step, start)
	}
	then, ok := p.exprSingle()
	if !ok || !p.keyword("else") {
		return failStep[*ast.IfExpr](p, step, start)
	}
	partial := ast.PartialIfExpr(test).Complete(then)
	els, ok := p.exprSingle()
	if !ok {
		return failStep[*ast.IfExpr](p, step, start)
	}
	return leaveStep(p, step, partial.Complete(els))
}

// [8] OrExpr ::= AndExpr ( "or" AndExpr )*
func (p *parser) orExpr() (ast.Operand, bool) {
	const step = "8 OrExpr"
	start := enterStep(p, step)
	left, ok := p.andExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	ops := zeroOrMore(p, func() (ast.Operand, bool) {
		if !p.keyword("or") {
			return nil, false
		}
		return p.andExpr()
	})
	if len(ops) == 0 {
		return leaveStep(p, step, left)
	}
	return leaveStep[ast.Operand](p, step, ast.PartialOrExpr(left).Complete(ops))
}

// [9] AndExpr ::= ComparisonExpr ( "and" ComparisonExpr )*
func (p *parser) andExpr() (ast.Operand, bool) {
	const step = "9 AndExpr"
	start := enterStep(p, step)
	left, ok := p.comparisonExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	ops := zeroOrMore(p, func() (ast.Operand, bool) {
		if !p.keyword("and") {
			return nil, false
		}
		return p.comparisonExpr()
	})
	if len(ops) == 0 {
		return leaveStep(p, step, left)
	}
	return leaveStep[ast.Operand](p, step, ast.PartialAndExpr(left).Complete(ops))
}

// [10] ComparisonExpr ::= RangeExpr ( (ValueComp | GeneralComp | NodeComp) RangeExpr )?
func (p *parser) comparisonExpr() (ast.Operand, bool) {
	const step = "10 ComparisonExpr"
	start := enterStep(p, step)
	left, ok := p.rangeExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	save := p.pos
	comp, ok := p.comparison()
	if !ok {
		return leaveStep(p, step, left)
	}
	partial := ast.PartialComparisonExpr(left).Complete(comp)
	right, ok := p.rangeExpr()
	if !ok {
		p.pos = save
		return leaveStep(p, step, left)
	}
	return leaveStep[ast.Operand](p, step, partial.Complete(right))
}

// comparison tries the value, node and general comparison operators in
// that order.
func (p *parser) comparison() (ast.Comparison, bool) {
	if c, ok := p.valueComp(); ok {
		return c, true
	}
	if c, ok := p.nodeComp(); ok {
		return c, true
	}
	if c, ok := p.generalComp(); ok {
		return c, true
	}
	return nil, false
}

// [22] GeneralComp ::= "=" | "!=" | "<" | "<=" | ">" | ">="
func (p *parser) generalComp() (ast.GeneralComp, bool) {
	s, ok := p.firstLit("<=", "!=", ">=", "<", "=", ">")
	if !ok {
		return 0, false
	}
	p.ws()
	return ast.GeneralCompFromSyntax(s), true
}

// [23] ValueComp ::= "eq" | "ne" | "lt" | "le" | "gt" | "ge"
func (p *parser) valueComp() (ast.ValueComp, bool) {
	s, ok := p.firstKeyword("eq", "ne", "lt", "le", "gt", "ge")
	if !ok {
		return 0, false
	}
	return ast.ValueCompFromSyntax(s), true
}

// [24] NodeComp ::= "is" | "<<" | ">>"
func (p *parser) nodeComp() (ast.NodeComp, bool) {
	if p.keyword("is") {
		return ast.NodeCompFromSyntax("is"), true
	}
	s, ok := p.firstLit("<<", ">>")
	if !ok {
		return 0, false
	}
	p.ws()
	return ast.NodeCompFromSyntax(s), true
}

// [11] RangeExpr ::= AdditiveExpr ( "to" AdditiveExpr )?
func (p *parser) rangeExpr() (ast.Operand, bool) {
	const step = "11 RangeExpr"
	start := enterStep(p, step)
	from, ok := p.additiveExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	save := p.pos
	if !p.keyword("to") {
		return leaveStep(p, step, from)
	}
	to, ok := p.additiveExpr()
	if !ok {
		p.pos = save
		return leaveStep(p, step, from)
	}
	return leaveStep[ast.Operand](p, step, ast.PartialRangeExpr(from).Complete(to))
}

// [12] AdditiveExpr ::= MultiplicativeExpr ( ("+" | "-") MultiplicativeExpr )*
func (p *parser) additiveExpr() (ast.Operand, bool) {
	const step = "12 AdditiveExpr"
	start := enterStep(p, step)
	left, ok := p.multiplicativeExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	ops := zeroOrMore(p, func() (ast.Op[ast.Additive], bool) {
		s, ok := p.firstLit("+", "-")
		if !ok {
			return ast.Op[ast.Additive]{}, false
		}
		p.ws()
		right, ok := p.multiplicativeExpr()
		return ast.Op[ast.Additive]{Kind: ast.AdditiveFromSyntax(s), Operand: right}, ok
	})
	if len(ops) == 0 {
		return leaveStep(p, step, left)
	}
	return leaveStep[ast.Operand](p, step, ast.PartialAdditiveExpr(left).Complete(ops))
}

// [13] MultiplicativeExpr ::= UnionExpr ( ("*" | "div" | "idiv" | "mod") UnionExpr )*
func (p *parser) multiplicativeExpr() (ast.Operand, bool) {
	const step = "13 MultiplicativeExpr"
	start := enterStep(p, step)
	left, ok := p.unionExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	ops := zeroOrMore(p, func() (ast.Op[ast.Multiplicative], bool) {
		s, ok := p.firstLit("*")
		if ok {
			p.ws()
		} else if s, ok = p.firstKeyword("idiv", "div", "mod"); !ok {
			return ast.Op[ast.Multiplicative]{}, false
		}
		right, ok := p.unionExpr()
		return ast.Op[ast.Multiplicative]{Kind: ast.MultiplicativeFromSyntax(s), Operand: right}, ok
	})
	if len(ops) == 0 {
		return leaveStep(p, step, left)
	}
	return leaveStep[ast.Operand](p, step, ast.PartialMultiplicativeExpr(left).Complete(ops))
}

// [14] UnionExpr ::= IntersectExceptExpr ( ("union" | "|") IntersectExceptExpr )*
func (p *parser) unionExpr() (ast.Operand, bool) {
	const step = "14 UnionExpr"
	start := enterStep(p, step)
	left, ok := p.intersectExceptExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	ops := zeroOrMore(p, func() (ast.Operand, bool) {
		if !p.keyword("union") && !p.litWS("|") {
			return nil, false
		}
		return p.intersectExceptExpr()
	})
	if len(ops) == 0 {
		return leaveStep(p, step, left)
	}
	return leaveStep[ast.Operand](p, step, ast.PartialUnionExpr(left).Complete(ops))
}

// [15] IntersectExceptExpr ::= InstanceofExpr ( ("intersect" | "except") InstanceofExpr )*
func (p *parser) intersectExceptExpr() (ast.Operand, bool) {
	const step = "15 IntersectExceptExpr"
	start := enterStep(p, step)
	left, ok := p.instanceofExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	ops := zeroOrMore(p, func() (ast.Op[ast.IntersectExcept], bool) {
		s, ok := p.firstKeyword("intersect", "except")
		if !ok {
			return ast.Op[ast.IntersectExcept]{}, false
		}
		right, ok := p.instanceofExpr()
		return ast.Op[ast.IntersectExcept]{Kind: ast.IntersectExceptFromSyntax(s), Operand: right}, ok
	})
	if len(ops) == 0 {
		return leaveStep(p, step, left)
	}
	return leaveStep[ast.Operand](p, step, ast.PartialIntersectExceptExpr(left).Complete(ops))
}

// keywordPair matches two keywords in a row, such as "instance" "of".
func (p *parser) keywordPair(first, second string) bool {
	save := p.pos
	if p.keyword(first) && p.keyword(second) {
		return true
	}
	p.pos = save
	return false
}

// [16] InstanceofExpr ::= TreatExpr ( "instance" "of" SequenceType )?
func (p *parser) instanceofExpr() (ast.Operand, bool) {
	const step = "16 InstanceofExpr"
	start := enterStep(p, step)
	operand, ok := p.treatExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	save := p.pos
	if !p.keywordPair("instance", "of") {
		return leaveStep(p, step, operand)
	}
	typ, ok := p.sequenceType()
	if !ok {
		p.pos = save
		return leaveStep(p, step, operand)
	}
	return leaveStep[ast.Operand](p, step, ast.PartialInstanceOfExpr(operand).Complete(typ))
}

// [17] TreatExpr ::= CastableExpr ( "treat" "as" SequenceType )?
func (p *parser) treatExpr() (ast.Operand, bool) {
	const step = "17 TreatExpr"
	start := enterStep(p, step)
	operand, ok := p.castableExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	save := p.pos
	if !p.keywordPair("treat", "as") {
		return leaveStep(p, step, operand)
	}
	typ, ok := p.sequenceType()
	if !ok {
		p.pos = save
		return leaveStep(p, step, operand)
	}
	return leaveStep[ast.Operand](p, step, ast.PartialTreatExpr(operand).Complete(typ))
}

// [18] CastableExpr ::= CastExpr ( "castable" "as" SingleType )?
func (p *parser) castableExpr() (ast.Operand, bool) {
	const step = "18 CastableExpr"
	start := enterStep(p, step)
	operand, ok := p.castExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	save := p.pos
	if !p.keywordPair("castable", "as") {
		return leaveStep(p, step, operand)
	}
	typ, ok := p.singleType()
	if !ok {
		p.pos = save
		return leaveStep(p, step, operand)
	}
	return leaveStep[ast.Operand](p, step, ast.PartialCastableExpr(operand).Complete(typ))
}

// [19] CastExpr ::= UnaryExpr ( "cast" "as" SingleType )?
func (p *parser) castExpr() (ast.Operand, bool) {
	const step = "19 CastExpr"
	start := enterStep(p, step)
	operand, ok := p.unaryExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	save := p.pos
	if !p.keywordPair("cast", "as") {
		return leaveStep(p, step, operand)
	}
	typ, ok := p.singleType()
	if !ok {
		p.pos = save
		return leaveStep(p, step, operand)
	}
	return leaveStep[ast.Operand](p, step, ast.PartialCastExpr(operand).Complete(typ))
}

// [20] UnaryExpr ::= ("-" | "+")* ValueExpr
func (p *parser) unaryExpr() (ast.Operand, bool) {
	const step = "20 UnaryExpr"
	start := enterStep(p, step)
	var signs []byte
	for {
		s, ok := p.firstLit("-", "+")
		if !ok {
			break
		}
		signs = append(signs, s[0])
		p.ws()
	}
	value, ok := p.valueExpr()
	if !ok {
		return failStep[ast.Operand](p, step, start)
	}
	if len(signs) == 0 {
		return leaveStep[ast.Operand](p, step, value)
	}
	return leaveStep[ast.Operand](p, step, ast.PartialUnaryExpr(string(signs)).Complete(value))
}

// [21] ValueExpr ::= PathExpr
func (p *parser) valueExpr() (*ast.ValueExpr, bool) {
	const step = "21 ValueExpr"
	start := enterStep(p, step)
	path, ok := p.pathExpr()
	if !ok {
		return failStep[*ast.ValueExpr](p, step, start)
	}
	return leaveStep(p, step, ast.NewValueExpr(path))
}

// [25] PathExpr ::= ("/" RelativePathExpr?) | ("//" RelativePathExpr) | RelativePathExpr
func (p *parser) pathExpr() (*ast.PathExpr, bool) {
	const step = "25 PathExpr"
	start := enterStep(p, step)
	noStep := optional.None[ast.StepExpr]()
	if p.litWS("//") {
		rel, ok := p.relativePathExpr()
		if !ok {
			return failStep[*ast.PathExpr](p, step, start)
		}
		return leaveStep(p, step, ast.NewPathFromRelative(true, optional.Some(ast.DescendantOrSelfStep), optional.Some(rel)))
	}
	if p.litWS("/") {
		rel := optionally(p, p.relativePathExpr)
		return leaveStep(p, step, ast.NewPathFromRelative(true, noStep, rel))
	}
	rel, ok := p.relativePathExpr()
	if !ok {
		return failStep[*ast.PathExpr](p, step, start)
	}
	return leaveStep(p, step, ast.NewPathFromRelative(false, noStep, optional.Some(rel)))
}

// [26] RelativePathExpr ::= StepExpr (("/" | "//") StepExpr)*
func (p *parser) relativePathExpr() (*ast.RelativePathExpr, bool) {
	const step = "26 RelativePathExpr"
	start := enterStep(p, step)
	first, ok := p.stepExpr()
	if !ok {
		return failStep[*ast.RelativePathExpr](p, step, start)
	}
	steps := []ast.StepExpr{first}
	for {
		save := p.pos
		sep, ok := p.firstLit("//", "/")
		if !ok {
			break
		}
		p.ws()
		next, ok := p.stepExpr()
		if !ok {
			p.pos = save
			break
		}
		if sep == "//" {
			steps = append(steps, ast.DescendantOrSelfStep)
		}
		steps = append(steps, next)
	}
	return leaveStep(p, step, ast.NewRelativePathExpr(steps...))
}

// [27] StepExpr ::= FilterExpr | AxisStep
func (p *parser) stepExpr() (ast.StepExpr, bool) {
	const step = "27 StepExpr"
	start := enterStep(p, step)
	if f, ok := p.filterExpr(); ok {
		return leaveStep[ast.StepExpr](p, step, f)
	}
	if a, ok := p.axisStep(); ok {
		return leaveStep[ast.StepExpr](p, step, a)
	}
	return failStep[ast.StepExpr](p, step, start)
}

// [28] AxisStep ::= (ReverseStep | ForwardStep) PredicateList
func (p *parser) axisStep() (*ast.AxisStep, bool) {
	const step = "28 AxisStep"
	start := enterStep(p, step)
	s, ok := p.reverseStep()
	if !ok {
		s, ok = p.forwardStep()
	}
	if !ok {
		return failStep[*ast.AxisStep](p, step, start)
	}
	preds := p.predicateList()
	return leaveStep(p, step, ast.PartialAxisStep(s).Complete(preds))
}

// [29] ForwardStep ::= (ForwardAxis NodeTest) | AbbrevForwardStep
// [31] AbbrevForwardStep ::= "@"? NodeTest
func (p *parser) forwardStep() (*ast.Step, bool) {
	const step = "29 ForwardStep"
	start := enterStep(p, step)
	if axis, ok := p.forwardAxis(); ok {
		if test, ok := p.nodeTest(); ok {
			return leaveStep(p, step, ast.PartialStep(axis).Complete(test))
		}
		p.pos = start
	}
	axis := ast.Child
	if p.litWS("@") {
		axis = ast.Attribute
	}
	test, ok := p.nodeTest()
	if !ok {
		return failStep[*ast.Step](p, step, start)
	}
	return leaveStep(p, step, ast.PartialStep(axis).Complete(test))
}

// [30] ForwardAxis ::= ("child" "::") | ("descendant" "::") | ("attribute" "::") | ("self" "::") | ("descendant-or-self" "::") | ("following-sibling" "::") | ("following" "::") | ("namespace" "::")
func (p *parser) forwardAxis() (ast.Axis, bool) {
	return p.axis("child", "attribute", "self", "descendant-or-self", "descendant", "following-sibling", "following", "namespace")
}

// [32] ReverseStep ::= (ReverseAxis NodeTest) | AbbrevReverseStep
// [34] AbbrevReverseStep ::= ".."
func (p *parser) reverseStep() (*ast.Step, bool) {
	const step = "32 ReverseStep"
	start := enterStep(p, step)
	if axis, ok := p.reverseAxis(); ok {
		if test, ok := p.nodeTest(); ok {
			return leaveStep(p, step, ast.PartialStep(axis).Complete(test))
		}
		p.pos = start
	}
	if p.litWS("..") {
		return leaveStep(p, step, ast.PartialStep(ast.Parent).Complete(ast.AnyKindTest{}))
	}
	return failStep[*ast.Step](p, step, start)
}

// [33] ReverseAxis ::= ("parent" "::") | ("ancestor" "::") | ("preceding-sibling" "::") | ("preceding" "::") | ("ancestor-or-self" "::")
func (p *parser) reverseAxis() (ast.Axis, bool) {
	return p.axis("parent", "ancestor-or-self", "ancestor", "preceding-sibling", "preceding")
}

// axis matches one of the axis names followed by "::". Longer names must
// come before their prefixes.
func (p *parser) axis(names ...string) (ast.Axis, bool) {
	start := p.pos
	name, ok := p.firstKeyword(names...)
	if !ok {
		return 0, false
	}
	if !p.litWS("::") {
		p.pos = start
		return 0, false
	}
	return ast.AxisFromSyntax(name), true
}

// [35] NodeTest ::= KindTest | NameTest
func (p *parser) nodeTest() (ast.NodeTest, bool) {
	const step = "35 NodeTest"
	start := enterStep(p, step)
	if k, ok := p.kindTest(); ok {
		return leaveStep[ast.NodeTest](p, step, k)
	}
	if n, ok := p.nameTest(); ok {
		return leaveStep[ast.NodeTest](p, step, n)
	}
	return failStep[ast.NodeTest](p, step, start)
}

// [36] NameTest ::= QName | Wildcard
func (p *parser) nameTest() (*ast.NameTest, bool) {
	const step = "36 NameTest"
	start := enterStep(p, step)
	if name, ok := p.wildcard(); ok {
		return leaveStep(p, step, ast.NewNameTest(name))
	}
	if name, ok := p.qname(); ok {
		return leaveStep(p, step, ast.NewNameTest(name))
	}
	return failStep[*ast.NameTest](p, step, start)
}

// [37] Wildcard ::= "*" | (NCName ":" "*") | ("*" ":" NCName)
func (p *parser) wildcard() (ast.QNameW, bool) {
	start := p.pos
	if prefix, ok := p.ncname(); ok {
		if p.litWS(":*") {
			return ast.PrefixedName(prefix, ast.Wildcard), true
		}
		p.pos = start
	}
	if p.lit("*:") {
		if local, ok := p.ncname(); ok {
			p.ws()
			return ast.PrefixedName(ast.Wildcard, local), true
		}
		p.pos = start
	}
	if p.litWS("*") {
		return ast.Name(ast.Wildcard), true
	}
	return ast.QNameW{}, false
}

// [38] FilterExpr ::= PrimaryExpr PredicateList
func (p *parser) filterExpr() (*ast.FilterExpr, bool) {
	const step = "38 FilterExpr"
	start := enterStep(p, step)
	primary, ok := p.primaryExpr()
	if !ok {
		return failStep[*ast.FilterExpr](p, step, start)
	}
	return leaveStep(p, step, ast.PartialFilterExpr(primary).Complete(p.predicateList()))
}

// [39] PredicateList ::= Predicate*
func (p *parser) predicateList() *ast.PredicateList {
	return ast.NewPredicateList(zeroOrMore(p, p.predicate)...)
}

// [40] Predicate ::= "[" Expr "]"
func (p *parser) predicate() (*ast.Predicate, bool) {
	const step = "40 Predicate"
	start := enterStep(p, step)
	if !p.litWS("[") {
		return failStep[*ast.Predicate](p, step, start)
	}
	e, ok := p.expr()
	if !ok || !p.litWS("]") {
		return failStep[*ast.Predicate](p, step, start)
	}
	return leaveStep(p, step, ast.NewPredicate(e))
}

// [41] PrimaryExpr ::= Literal | VarRef | ParenthesizedExpr | ContextItemExpr | FunctionCall
func (p *parser) primaryExpr() (ast.PrimaryExpr, bool) {
	const step = "41 PrimaryExpr"
	start := enterStep(p, step)
	if l, ok := p.literal(); ok {
		return leaveStep(p, step, l)
	}
	if v, ok := p.varRef(); ok {
		return leaveStep[ast.PrimaryExpr](p, step, v)
	}
	if e, ok := p.parenthesizedExpr(); ok {
		return leaveStep[ast.PrimaryExpr](p, step, e)
	}
	if p.contextItemExpr() {
		return leaveStep[ast.PrimaryExpr](p, step, ast.ContextItemExpr{})
	}
	if f, ok := p.functionCall(); ok {
		return leaveStep[ast.PrimaryExpr](p, step, f)
	}
	return failStep[ast.PrimaryExpr](p, step, start)
}

// [42] Literal ::= NumericLiteral | StringLiteral
// [43] NumericLiteral ::= IntegerLiteral | DecimalLiteral | DoubleLiteral
//
// The numeric alternatives are tried longest first.
func (p *parser) literal() (ast.PrimaryExpr, bool) {
	if d, ok := p.doubleLiteral(); ok {
		return d, true
	}
	if d, ok := p.decimalLiteral(); ok {
		return d, true
	}
	if i, ok := p.integerLiteral(); ok {
		return i, true
	}
	if s, ok := p.stringLiteral(); ok {
		return s, true
	}
	return nil, false
}

// [71] IntegerLiteral ::= Digits
func (p *parser) integerLiteral() (*ast.IntegerLiteral, bool) {
	digits, ok := p.digits()
	if !ok {
		return nil, false
	}
	p.ws()
	return ast.NewIntegerLiteral(digits), true
}

// decimalDigits reads ("." Digits) | (Digits ("." [0-9]*)?) and reports
// whether a decimal point was seen.
func (p *parser) decimalDigits() (characteristic string, mantissa optional.Value[string], dotted bool, ok bool) {
	start := p.pos
	if p.lit(".") {
		m, ok := p.digits()
		if !ok {
			p.pos = start
			return "", mantissa, false, false
		}
		return "", optional.Some(m), true, true
	}
	characteristic, ok = p.digits()
	if !ok {
		return "", mantissa, false, false
	}
	if p.lit(".") {
		return characteristic, optional.Some(p.optionalDigits()), true, true
	}
	return characteristic, mantissa, false, true
}

// [72] DecimalLiteral ::= ("." Digits) | (Digits "." [0-9]*)
func (p *parser) decimalLiteral() (*ast.DecimalLiteral, bool) {
	start := p.pos
	characteristic, mantissa, dotted, ok := p.decimalDigits()
	if !ok || !dotted {
		p.pos = start
		return nil, false
	}
	p.ws()
	return ast.PartialDecimalLiteral(characteristic).CompleteOptional(mantissa), true
}

// [73] DoubleLiteral ::= (("." Digits) | (Digits ("." [0-9]*)?)) [eE] [+-]? Digits
func (p *parser) doubleLiteral() (*ast.DoubleLiteral, bool) {
	start := p.pos
	characteristic, mantissa, _, ok := p.decimalDigits()
	if !ok {
		return nil, false
	}
	if _, ok := p.firstLit("e", "E"); !ok {
		p.pos = start
		return nil, false
	}
	sign, signed := p.firstLit("+", "-")
	exponent, ok := p.digits()
	if !ok {
		p.pos = start
		return nil, false
	}
	p.ws()
	partial := ast.PartialDoubleLiteral(characteristic).CompleteOptional(mantissa)
	return partial.CompleteOptional(optional.Of(sign, signed)).Complete(exponent), true
}

// [44] VarRef ::= "$" VarName
// [45] VarName ::= QName
func (p *parser) varRef() (*ast.VarRef, bool) {
	start := p.pos
	if !p.litWS("$") {
		return nil, false
	}
	name, ok := p.qname()
	if !ok {
		p.pos = start
		return nil, false
	}
	return ast.NewVarRef(name), true
}

// [46] ParenthesizedExpr ::= "(" Expr? ")"
func (p *parser) parenthesizedExpr() (*ast.ParenthesizedExpr, bool) {
	const step = "46 ParenthesizedExpr"
	start := enterStep(p, step)
	if !p.litWS("(") {
		return failStep[*ast.ParenthesizedExpr](p, step, start)
	}
	if p.litWS(")") {
		return leaveStep(p, step, ast.NewEmptyParenthesizedExpr())
	}
	e, ok := p.expr()
	if !ok || !p.litWS(")") {
		return failStep[*ast.ParenthesizedExpr](p, step, start)
	}
	return leaveStep(p, step, ast.NewParenthesizedExpr(e))
}

// [47] ContextItemExpr ::= "."
func (p *parser) contextItemExpr() bool {
	if p.hasPrefix("..") || !p.lit(".") {
		return false
	}
	p.ws()
	return true
}

// [48] FunctionCall ::= QName "(" (ExprSingle ("," ExprSingle)*)? ")"
func (p *parser) functionCall() (*ast.FunctionCall, bool) {
	const step = "48 FunctionCall"
	start := enterStep(p, step)
	name, ok := p.qname()
	if !ok {
		return failStep[*ast.FunctionCall](p, step, start)
	}
	if _, prefixed := name.Prefix(); !prefixed && reservedFunctionNames[name.Local()] {
		return failStep[*ast.FunctionCall](p, step, start)
	}
	if !p.litWS("(") {
		return failStep[*ast.FunctionCall](p, step, start)
	}
	partial := ast.PartialFunctionCall(name)
	var args []ast.ExprSingle
	if first, ok := p.exprSingle(); ok {
		args = append(args, first)
		args = append(args, zeroOrMore(p, func() (ast.ExprSingle, bool) {
			if !p.litWS(",") {
				return nil, false
			}
			return p.exprSingle()
		})...)
	}
	if !p.litWS(")") {
		return failStep[*ast.FunctionCall](p, step, start)
	}
	return leaveStep(p, step, partial.Complete(args))
}

// [49] SingleType ::= AtomicType "?"?
func (p *parser) singleType() (*ast.SingleType, bool) {
	const step = "49 SingleType"
	start := enterStep(p, step)
	atomic, ok := p.atomicType()
	if !ok {
		return failStep[*ast.SingleType](p, step, start)
	}
	return leaveStep(p, step, ast.NewSingleType(atomic, p.litWS("?")))
}

// [50] SequenceType ::= ("empty-sequence" "(" ")") | (ItemType OccurrenceIndicator?)
func (p *parser) sequenceType() (*ast.SequenceType, bool) {
	const step = "50 SequenceType"
	start := enterStep(p, step)
	if p.emptyKindTest("empty-sequence") {
		return leaveStep(p, step, ast.EmptySequence)
	}
	item, ok := p.itemType()
	if !ok {
		return failStep[*ast.SequenceType](p, step, start)
	}
	return leaveStep(p, step, ast.PartialSequenceType(item).CompleteOptional(optionally(p, p.occurrenceIndicator)))
}

// [51] OccurrenceIndicator ::= "?" | "*" | "+"
func (p *parser) occurrenceIndicator() (ast.OccurrenceIndicator, bool) {
	s, ok := p.firstLit("?", "*", "+")
	if !ok {
		return 0, false
	}
	p.ws()
	return ast.OccurrenceIndicatorFromSyntax(s), true
}

// [52] ItemType ::= KindTest | ("item" "(" ")") | AtomicType
func (p *parser) itemType() (ast.ItemType, bool) {
	const step = "52 ItemType"
	start := enterStep(p, step)
	if k, ok := p.kindTest(); ok {
		return leaveStep[ast.ItemType](p, step, k)
	}
	if p.emptyKindTest("item") {
		return leaveStep[ast.ItemType](p, step, ast.ItemTypeItem{})
	}
	if a, ok := p.atomicType(); ok {
		return leaveStep[ast.ItemType](p, step, a)
	}
	return failStep[ast.ItemType](p, step, start)
}

// [53] AtomicType ::= QName
func (p *parser) atomicType() (*ast.AtomicType, bool) {
	name, ok := p.qname()
	if !ok {
		return nil, false
	}
	return ast.NewAtomicType(name), true
}

// [54] KindTest ::= DocumentTest | ElementTest | AttributeTest | SchemaElementTest | SchemaAttributeTest | PITest | CommentTest | TextTest | AnyKindTest
func (p *parser) kindTest() (ast.KindTest, bool) {
	const step = "54 KindTest"
	start := enterStep(p, step)
	if t, ok := p.documentTest(); ok {
		return leaveStep[ast.KindTest](p, step, t)
	}
	if t, ok := p.elementTest(); ok {
		return leaveStep[ast.KindTest](p, step, t)
	}
	if t, ok := p.attributeTest(); ok {
		return leaveStep[ast.KindTest](p, step, t)
	}
	if t, ok := p.schemaElementTest(); ok {
		return leaveStep[ast.KindTest](p, step, t)
	}
	if t, ok := p.schemaAttributeTest(); ok {
		return leaveStep[ast.KindTest](p, step, t)
	}
	if t, ok := p.piTest(); ok {
		return leaveStep[ast.KindTest](p, step, t)
	}
	// [58] CommentTest ::= "comment" "(" ")"
	if p.emptyKindTest("comment") {
		return leaveStep[ast.KindTest](p, step, ast.CommentTest{})
	}
	// [57] TextTest ::= "text" "(" ")"
	if p.emptyKindTest("text") {
		return leaveStep[ast.KindTest](p, step, ast.TextTest{})
	}
	// [55] AnyKindTest ::= "node" "(" ")"
	if p.emptyKindTest("node") {
		return leaveStep[ast.KindTest](p, step, ast.AnyKindTest{})
	}
	return failStep[ast.KindTest](p, step, start)
}

// openKindTest matches name "(".
func (p *parser) openKindTest(name string) bool {
	start := p.pos
	if p.keyword(name) && p.litWS("(") {
		return true
	}
	p.pos = start
	return false
}

// closeKindTest matches ")" or rewinds to start.
func (p *parser) closeKindTest(start int) bool {
	if p.litWS(")") {
		return true
	}
	p.pos = start
	return false
}

// emptyKindTest matches name "(" ")".
func (p *parser) emptyKindTest(name string) bool {
	start := p.pos
	return p.openKindTest(name) && p.closeKindTest(start)
}

// [56] DocumentTest ::= "document-node" "(" (ElementTest | SchemaElementTest)? ")"
func (p *parser) documentTest() (*ast.DocumentTest, bool) {
	start := p.pos
	if !p.openKindTest("document-node") {
		return nil, false
	}
	content := optional.None[ast.DocumentContent]()
	if e, ok := p.elementTest(); ok {
		content = optional.Some(either.Left[*ast.ElementTest, *ast.SchemaElementTest](e))
	} else if s, ok := p.schemaElementTest(); ok {
		content = optional.Some(either.Right[*ast.ElementTest](s))
	}
	if !p.closeKindTest(start) {
		return nil, false
	}
	return ast.NewDocumentTest(content), true
}

// [64] ElementTest ::= "element" "(" (ElementNameOrWildcard ("," TypeName "?"?)?)? ")"
func (p *parser) elementTest() (*ast.ElementTest, bool) {
	start := p.pos
	if !p.openKindTest("element") {
		return nil, false
	}
	name := optionally(p, p.nameOrWildcard)
	typeName := optional.None[ast.QNameW]()
	nillable := false
	if name.IsPresent() {
		typeName = optionally(p, p.typeName)
		nillable = typeName.IsPresent() && p.litWS("?")
	}
	if !p.closeKindTest(start) {
		return nil, false
	}
	return ast.PartialElementTest().CompleteOptional(name).CompleteOptional(typeName).Complete(nillable), true
}

// [60] AttributeTest ::= "attribute" "(" (AttribNameOrWildcard ("," TypeName)?)? ")"
func (p *parser) attributeTest() (*ast.AttributeTest, bool) {
	start := p.pos
	if !p.openKindTest("attribute") {
		return nil, false
	}
	name := optionally(p, p.nameOrWildcard)
	typeName := optional.None[ast.QNameW]()
	if name.IsPresent() {
		typeName = optionally(p, p.typeName)
	}
	if !p.closeKindTest(start) {
		return nil, false
	}
	return ast.PartialAttributeTest().CompleteOptional(name).CompleteOptional(typeName), true
}

// [65] ElementNameOrWildcard ::= ElementName | "*"
// [61] AttribNameOrWildcard ::= AttributeName | "*"
func (p *parser) nameOrWildcard() (ast.QNameW, bool) {
	if name, ok := p.qname(); ok {
		return name, true
	}
	if p.litWS("*") {
		return ast.Name(ast.Wildcard), true
	}
	return ast.QNameW{}, false
}

// [70] TypeName ::= QName, after the separating ",".
func (p *parser) typeName() (ast.QNameW, bool) {
	if !p.litWS(",") {
		return ast.QNameW{}, false
	}
	return p.qname()
}

// [66] SchemaElementTest ::= "schema-element" "(" ElementDeclaration ")"
func (p *parser) schemaElementTest() (*ast.SchemaElementTest, bool) {
	start := p.pos
	if !p.openKindTest("schema-element") {
		return nil, false
	}
	name, ok := p.qname()
	if !ok {
		p.pos = start
		return nil, false
	}
	if !p.closeKindTest(start) {
		return nil, false
	}
	return ast.NewSchemaElementTest(name), true
}

// [62] SchemaAttributeTest ::= "schema-attribute" "(" AttributeDeclaration ")"
func (p *parser) schemaAttributeTest() (*ast.SchemaAttributeTest, bool) {
	start := p.pos
	if !p.openKindTest("schema-attribute") {
		return nil, false
	}
	name, ok := p.qname()
	if !ok {
		p.pos = start
		return nil, false
	}
	if !p.closeKindTest(start) {
		return nil, false
	}
	return ast.NewSchemaAttributeTest(name), true
}

// [59] PITest ::= "processing-instruction" "(" (NCName | StringLiteral)? ")"
func (p *parser) piTest() (*ast.PITest, bool) {
	start := p.pos
	if !p.openKindTest("processing-instruction") {
		return nil, false
	}
	target := optional.None[string]()
	if name, ok := p.ncname(); ok {
		p.ws()
		target = optional.Some(name)
	} else if s, ok := p.stringLiteral(); ok {
		target = optional.Some(s.Value())
	}
	if !p.closeKindTest(start) {
		return nil, false
	}
	return ast.NewPITest(target), true
}
