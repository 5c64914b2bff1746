package xpathast

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/speedata/xpathast/ast"
	"github.com/speedata/xpathast/either"
	"github.com/speedata/xpathast/optional"
	"golang.org/x/text/unicode/norm"
)

func name(local string) ast.QNameW { return ast.Name(local) }
func xs(local string) ast.QNameW   { return ast.PrefixedName("xs", local) }

func step(axis ast.Axis, test ast.NodeTest, preds ...*ast.Predicate) *ast.AxisStep {
	return ast.NewAxisStep(ast.NewStep(axis, test), ast.NewPredicateList(preds...))
}

func childStep(local string, preds ...*ast.Predicate) *ast.AxisStep {
	return step(ast.Child, ast.NewNameTest(name(local)), preds...)
}

func filter(primary ast.PrimaryExpr, preds ...*ast.Predicate) *ast.FilterExpr {
	return ast.NewFilterExpr(primary, ast.NewPredicateList(preds...))
}

func path(steps ...ast.StepExpr) *ast.ValueExpr {
	return ast.NewValueExpr(ast.NewPathExpr(false, steps...))
}

func absPath(steps ...ast.StepExpr) *ast.ValueExpr {
	return ast.NewValueExpr(ast.NewPathExpr(true, steps...))
}

func child(local string) *ast.ValueExpr       { return path(childStep(local)) }
func integer(v string) *ast.ValueExpr         { return path(filter(ast.NewIntegerLiteral(v))) }
func varRef(local string) *ast.ValueExpr      { return path(filter(ast.NewVarRef(name(local)))) }
func pred(e ...ast.ExprSingle) *ast.Predicate { return ast.NewPredicate(ast.NewExpr(e...)) }

// parseRule runs one grammar rule over the whole input.
func parseRule[T any](input string, rule func(*parser) (T, bool)) (T, bool) {
	p := newTestParser(input)
	return withEOI(p, func() (T, bool) { return rule(p) })
}

func checkExpr(t *testing.T, input string, want ...ast.ExprSingle) {
	t.Helper()
	got, err := Parse(input)
	if err != nil {
		t.Errorf("Parse(%s): %v", input, err)
		return
	}
	if expected := ast.NewExpr(want...); !got.Equals(expected) {
		t.Errorf("Parse(%s) = %s, want %s", input, got, expected)
	}
}

func TestNameTest(t *testing.T) {
	testdata := []struct {
		input  string
		output ast.QNameW
	}{
		{"a", name("a")},
		{"ns:a", ast.PrefixedName("ns", "a")},
		{"*", name(ast.Wildcard)},
		{"ns:*", ast.PrefixedName("ns", ast.Wildcard)},
		{"*:a", ast.PrefixedName(ast.Wildcard, "a")},
		{"a ", name("a")},
	}
	for _, td := range testdata {
		got, ok := parseRule(td.input, (*parser).nameTest)
		if !ok {
			t.Errorf("nameTest(%s) failed", td.input)
			continue
		}
		if expected := ast.NewNameTest(td.output); !got.Equals(expected) {
			t.Errorf("nameTest(%s) = %s, want %s", td.input, got, expected)
		}
	}
	a, _ := parseRule("a", (*parser).nameTest)
	b, _ := parseRule("b", (*parser).nameTest)
	if a.Equals(b) {
		t.Errorf("nameTest(a) equals nameTest(b)")
	}
	for _, input := range []string{"ns :*", "* :a", "ns:"} {
		if got, ok := parseRule(input, (*parser).nameTest); ok {
			t.Errorf("nameTest(%s) = %s, want failure", input, got)
		}
	}
}

func TestNumericLiteral(t *testing.T) {
	testdata := []struct {
		input  string
		output ast.PrimaryExpr
	}{
		{"1.23E2", ast.NewDoubleLiteral("1.23E+2")},
		{"1.23e-2", ast.NewDoubleLiteral("1.23E-2")},
		{"12E3", ast.NewDoubleLiteral("12E+3")},
		{".5e10", ast.NewDoubleLiteral("0.5E+10")},
		{"1.E5", ast.NewDoubleLiteral("1E+5")},
		{"1.23", ast.NewDecimalLiteral("1.23")},
		{".5", ast.NewDecimalLiteral("0.5")},
		{"1234.", ast.NewDecimalLiteral("1234")},
		{"123", ast.NewIntegerLiteral("123")},
		{"007", ast.NewIntegerLiteral("007")},
	}
	for _, td := range testdata {
		got, ok := parseRule(td.input, (*parser).literal)
		if !ok {
			t.Errorf("literal(%s) failed", td.input)
			continue
		}
		if !got.Equals(td.output) {
			t.Errorf("literal(%s) = %T %s, want %T %s", td.input, got, got, td.output, td.output)
		}
	}
	for _, input := range []string{"1e", "1.2e+", ".", "e5"} {
		if got, ok := parseRule(input, (*parser).literal); ok {
			t.Errorf("literal(%s) = %s, want failure", input, got)
		}
	}
}

func TestStringEscaping(t *testing.T) {
	checkExpr(t, `"some ""string"""`, path(filter(ast.NewStringLiteral(`some "string"`))))
	checkExpr(t, `'some ''string'''`, path(filter(ast.NewStringLiteral(`some 'string'`))))
	checkExpr(t, `"a" , 'b'`, path(filter(ast.NewStringLiteral("a"))), path(filter(ast.NewStringLiteral("b"))))
}

func TestAxes(t *testing.T) {
	a := ast.NewNameTest(name("a"))
	testdata := []struct {
		input  string
		output *ast.AxisStep
	}{
		{"child::a", step(ast.Child, a)},
		{"descendant::a", step(ast.Descendant, a)},
		{"attribute::a", step(ast.Attribute, a)},
		{"self::a", step(ast.Self, a)},
		{"descendant-or-self::a", step(ast.DescendantOrSelf, a)},
		{"following-sibling::a", step(ast.FollowingSibling, a)},
		{"following::a", step(ast.Following, a)},
		{"namespace::a", step(ast.Namespace, a)},
		{"parent::a", step(ast.Parent, a)},
		{"ancestor::a", step(ast.Ancestor, a)},
		{"preceding-sibling::a", step(ast.PrecedingSibling, a)},
		{"preceding::a", step(ast.Preceding, a)},
		{"ancestor-or-self::a", step(ast.AncestorOrSelf, a)},
		{"child :: a", step(ast.Child, a)},
		{"a", step(ast.Child, a)},
		{"@a", step(ast.Attribute, a)},
		{"@ a", step(ast.Attribute, a)},
		{"..", step(ast.Parent, ast.AnyKindTest{})},
		{"parent::node()", step(ast.Parent, ast.AnyKindTest{})},
		{"child", step(ast.Child, ast.NewNameTest(name("child")))},
		{"descendant-or-self", step(ast.Child, ast.NewNameTest(name("descendant-or-self")))},
	}
	for _, td := range testdata {
		got, ok := parseRule(td.input, (*parser).axisStep)
		if !ok {
			t.Errorf("axisStep(%s) failed", td.input)
			continue
		}
		if !got.Equals(td.output) {
			t.Errorf("axisStep(%s) = %s, want %s", td.input, got, td.output)
		}
	}
}

func TestPathAbbreviation(t *testing.T) {
	dos := ast.DescendantOrSelfStep
	checkExpr(t, "//a", absPath(dos, childStep("a")))
	checkExpr(t, "a//b", path(childStep("a"), dos, childStep("b")))
	checkExpr(t, "a/b", path(childStep("a"), childStep("b")))
	checkExpr(t, "/a", absPath(childStep("a")))
	checkExpr(t, "/", absPath())
	checkExpr(t, "/ (: root :)", absPath())
	checkExpr(t, "a / b // c", path(childStep("a"), childStep("b"), dos, childStep("c")))
	checkExpr(t, "../@id", path(step(ast.Parent, ast.AnyKindTest{}), step(ast.Attribute, ast.NewNameTest(name("id")))))
	checkExpr(t, "./a", path(filter(ast.ContextItemExpr{}), childStep("a")))

	got := MustParse("//a").Items()[0].(*ast.ValueExpr).Path()
	if !got.Absolute() || len(got.Steps()) != 2 {
		t.Errorf("//a = %s, want an absolute path with two steps", got)
	}
}

func TestPredicateList(t *testing.T) {
	checkExpr(t, "a[1][2][3]", path(childStep("a", pred(integer("1")), pred(integer("2")), pred(integer("3")))))
	checkExpr(t, "a [ 1 ] / b", path(childStep("a", pred(integer("1"))), childStep("b")))
	checkExpr(t, "$x[1]", path(filter(ast.NewVarRef(name("x")), pred(integer("1")))))
	checkExpr(t, "a[b, c]", path(childStep("a", pred(child("b"), child("c")))))

	e := MustParse("a[1][2][3]")
	s := e.Items()[0].(*ast.ValueExpr).Path().Steps()
	if len(s) != 1 {
		t.Fatalf("a[1][2][3] has %d steps, want 1", len(s))
	}
	if got := s[0].(*ast.AxisStep).Predicates().Len(); got != 3 {
		t.Errorf("a[1][2][3] has %d predicates, want 3", got)
	}
}

func TestOperators(t *testing.T) {
	add := func(k ast.Additive, o ast.Operand) ast.Op[ast.Additive] { return ast.Op[ast.Additive]{Kind: k, Operand: o} }
	mul := func(k ast.Multiplicative, o ast.Operand) ast.Op[ast.Multiplicative] {
		return ast.Op[ast.Multiplicative]{Kind: k, Operand: o}
	}
	ie := func(k ast.IntersectExcept, o ast.Operand) ast.Op[ast.IntersectExcept] {
		return ast.Op[ast.IntersectExcept]{Kind: k, Operand: o}
	}
	testdata := []struct {
		input  string
		output ast.ExprSingle
	}{
		{"a or b or c", ast.NewOrExpr(child("a"), child("b"), child("c"))},
		{"a and b", ast.NewAndExpr(child("a"), child("b"))},
		{"a or b and c", ast.NewOrExpr(child("a"), ast.NewAndExpr(child("b"), child("c")))},
		{"a = b", ast.NewComparisonExpr(child("a"), ast.GeneralEqual, child("b"))},
		{"a<=b", ast.NewComparisonExpr(child("a"), ast.GeneralLessThanOrEqual, child("b"))},
		{"a != b", ast.NewComparisonExpr(child("a"), ast.GeneralNotEqual, child("b"))},
		{"a eq b", ast.NewComparisonExpr(child("a"), ast.ValueEqual, child("b"))},
		{"a ge b", ast.NewComparisonExpr(child("a"), ast.ValueGreaterThanOrEqual, child("b"))},
		{"a is b", ast.NewComparisonExpr(child("a"), ast.NodeIs, child("b"))},
		{"a << b", ast.NewComparisonExpr(child("a"), ast.NodePrecedes, child("b"))},
		{"a >> b", ast.NewComparisonExpr(child("a"), ast.NodeFollows, child("b"))},
		{"1 to 3", ast.NewRangeExpr(integer("1"), integer("3"))},
		{"1 + 2 - 3", ast.NewAdditiveExpr(integer("1"), add(ast.Add, integer("2")), add(ast.Subtract, integer("3")))},
		{"1 + 2 * 3", ast.NewAdditiveExpr(integer("1"), add(ast.Add, ast.NewMultiplicativeExpr(integer("2"), mul(ast.Multiply, integer("3")))))},
		{"2 * 3 div 4 idiv 5 mod 6", ast.NewMultiplicativeExpr(integer("2"),
			mul(ast.Multiply, integer("3")), mul(ast.Divide, integer("4")), mul(ast.IntegerDivide, integer("5")), mul(ast.Modulus, integer("6")))},
		{"div div div", ast.NewMultiplicativeExpr(child("div"), mul(ast.Divide, child("div")))},
		{"a | b union c", ast.NewUnionExpr(child("a"), child("b"), child("c"))},
		{"a intersect b except c", ast.NewIntersectExceptExpr(child("a"), ie(ast.Intersect, child("b")), ie(ast.Except, child("c")))},
		{"-1", ast.NewUnaryExpr("-", integer("1"))},
		{"+-1", ast.NewUnaryExpr("+-", integer("1"))},
		{"- - $x", ast.NewUnaryExpr("--", varRef("x"))},
		{"1 - -1", ast.NewAdditiveExpr(integer("1"), add(ast.Subtract, ast.NewUnaryExpr("-", integer("1"))))},
		{"1 (: one :) + (: two :) 2", ast.NewAdditiveExpr(integer("1"), add(ast.Add, integer("2")))},
	}
	for _, td := range testdata {
		checkExpr(t, td.input, td.output)
	}
}

func TestNonAssociative(t *testing.T) {
	cast := ast.NewCastExpr(ast.NewUnaryExpr("-", integer("123")), ast.NewSingleType(ast.NewAtomicType(xs("int")), false))
	castable := ast.NewCastableExpr(cast, ast.NewSingleType(ast.NewAtomicType(xs("integer")), false))
	treat := ast.NewTreatExpr(castable, ast.NewSequenceType(ast.NewAtomicType(xs("string")), optional.Some(ast.ZeroOrMore)))
	checkExpr(t, "-123 cast as xs:int castable as xs:integer treat as xs:string*", treat)

	for _, input := range []string{
		"1 = 2 = 3",
		"1 eq 2 lt 3",
		"1 to 2 to 3",
		"$a cast as xs:int cast as xs:int",
		"$a instance of xs:int instance of xs:boolean",
	} {
		if got, err := Parse(input); err == nil {
			t.Errorf("Parse(%s) = %s, want an error", input, got)
		}
	}
}

func TestTypes(t *testing.T) {
	x := varRef("x")
	none := optional.None[ast.QNameW]()
	testdata := []struct {
		input  string
		output ast.ExprSingle
	}{
		{"$x instance of empty-sequence()", ast.NewInstanceOfExpr(x, ast.EmptySequence)},
		{"$x instance of item()*", ast.NewInstanceOfExpr(x, ast.NewSequenceType(ast.ItemTypeItem{}, optional.Some(ast.ZeroOrMore)))},
		{"$x instance of xs:integer+", ast.NewInstanceOfExpr(x, ast.NewSequenceType(ast.NewAtomicType(xs("integer")), optional.Some(ast.OneOrMore)))},
		{"$x instance of element()?", ast.NewInstanceOfExpr(x, ast.NewSequenceType(ast.NewElementTest(none, none, false), optional.Some(ast.ZeroOrOne)))},
		{"$x instance of node()", ast.NewInstanceOfExpr(x, ast.NewSequenceType(ast.AnyKindTest{}, optional.None[ast.OccurrenceIndicator]()))},
		{"$x treat as text()", ast.NewTreatExpr(x, ast.NewSequenceType(ast.TextTest{}, optional.None[ast.OccurrenceIndicator]()))},
		{"$x castable as xs:date?", ast.NewCastableExpr(x, ast.NewSingleType(ast.NewAtomicType(xs("date")), true))},
		{"$x cast as date", ast.NewCastExpr(x, ast.NewSingleType(ast.NewAtomicType(name("date")), false))},
	}
	for _, td := range testdata {
		checkExpr(t, td.input, td.output)
	}
}

func TestKindTests(t *testing.T) {
	none := optional.None[ast.QNameW]()
	a := optional.Some(name("a"))
	elemA := ast.NewElementTest(a, none, false)
	testdata := []struct {
		input  string
		output ast.KindTest
	}{
		{"node()", ast.AnyKindTest{}},
		{"text()", ast.TextTest{}},
		{"comment()", ast.CommentTest{}},
		{"comment( )", ast.CommentTest{}},
		{"document-node()", ast.NewDocumentTest(optional.None[ast.DocumentContent]())},
		{"document-node(element(a))", ast.NewDocumentTest(optional.Some(either.Left[*ast.ElementTest, *ast.SchemaElementTest](elemA)))},
		{"document-node(schema-element(a))", ast.NewDocumentTest(optional.Some(either.Right[*ast.ElementTest](ast.NewSchemaElementTest(name("a")))))},
		{"element()", ast.NewElementTest(none, none, false)},
		{"element(a)", elemA},
		{"element(*)", ast.NewElementTest(optional.Some(name(ast.Wildcard)), none, false)},
		{"element(a, xs:string)", ast.NewElementTest(a, optional.Some(xs("string")), false)},
		{"element(a, xs:string?)", ast.NewElementTest(a, optional.Some(xs("string")), true)},
		{"attribute()", ast.NewAttributeTest(none, none)},
		{"attribute(*, t)", ast.NewAttributeTest(optional.Some(name(ast.Wildcard)), optional.Some(name("t")))},
		{"schema-element(a)", ast.NewSchemaElementTest(name("a"))},
		{"schema-attribute(ns:a)", ast.NewSchemaAttributeTest(ast.PrefixedName("ns", "a"))},
		{"processing-instruction()", ast.NewPITest(optional.None[string]())},
		{"processing-instruction(x)", ast.NewPITest(optional.Some("x"))},
		{"processing-instruction('x y')", ast.NewPITest(optional.Some("x y"))},
	}
	for _, td := range testdata {
		got, ok := parseRule(td.input, (*parser).kindTest)
		if !ok {
			t.Errorf("kindTest(%s) failed", td.input)
			continue
		}
		if !got.Equals(td.output) {
			t.Errorf("kindTest(%s) = %s, want %s", td.input, got, td.output)
		}
	}
	for _, input := range []string{"node", "element(a, b, c)", "schema-element()", "attribute(a, b?)", "text(a)"} {
		if got, ok := parseRule(input, (*parser).kindTest); ok {
			t.Errorf("kindTest(%s) = %s, want failure", input, got)
		}
	}
}

func TestPrimaryExpr(t *testing.T) {
	testdata := []struct {
		input  string
		output ast.ExprSingle
	}{
		{"$x", varRef("x")},
		{"$ ns:x", path(filter(ast.NewVarRef(ast.PrefixedName("ns", "x"))))},
		{"()", path(filter(ast.NewEmptyParenthesizedExpr()))},
		{"( 1, 2 )", path(filter(ast.NewParenthesizedExpr(ast.NewExpr(integer("1"), integer("2")))))},
		{".", path(filter(ast.ContextItemExpr{}))},
		{"f()", path(filter(ast.NewFunctionCall(name("f"))))},
		{"f(1, 2)", path(filter(ast.NewFunctionCall(name("f"), integer("1"), integer("2"))))},
		{"fn:text()", path(filter(ast.NewFunctionCall(ast.PrefixedName("fn", "text"))))},
		{"fn:if(1)", path(filter(ast.NewFunctionCall(ast.PrefixedName("fn", "if"), integer("1"))))},
		{"concat('a', $x)[1]", path(filter(ast.NewFunctionCall(name("concat"), path(filter(ast.NewStringLiteral("a"))), varRef("x")), pred(integer("1"))))},
	}
	for _, td := range testdata {
		checkExpr(t, td.input, td.output)
	}
}

func TestReservedFunctionNames(t *testing.T) {
	checkExpr(t, "text()", path(step(ast.Child, ast.TextTest{})))
	checkExpr(t, "node()", path(step(ast.Child, ast.AnyKindTest{})))
	checkExpr(t, "element(a)", path(step(ast.Child, ast.NewElementTest(optional.Some(name("a")), optional.None[ast.QNameW](), false))))
	checkExpr(t, "@attribute(a)", path(step(ast.Attribute, ast.NewAttributeTest(optional.Some(name("a")), optional.None[ast.QNameW]()))))
	for _, input := range []string{"if(1)", "item()", "typeswitch($x)", "empty-sequence()"} {
		if got, err := Parse(input); err == nil {
			t.Errorf("Parse(%s) = %s, want an error", input, got)
		}
	}
}

func TestKeywordBoundaries(t *testing.T) {
	checkExpr(t, "order", child("order"))
	checkExpr(t, "android", child("android"))
	checkExpr(t, "for", child("for"))
	checkExpr(t, "if", child("if"))
	checkExpr(t, "a or or", ast.NewOrExpr(child("a"), child("or")))
	checkExpr(t, "a-b", child("a-b"))
	checkExpr(t, "a -b", ast.NewAdditiveExpr(child("a"), ast.Op[ast.Additive]{Kind: ast.Subtract, Operand: child("b")}))
	checkExpr(t, "$a instance of xs:int", ast.NewInstanceOfExpr(varRef("a"), ast.NewSequenceType(ast.NewAtomicType(xs("int")), optional.None[ast.OccurrenceIndicator]())))
	for _, input := range []string{"a or-b", "a orb", "1 todo 2", "$a instanceof xs:int"} {
		if got, err := Parse(input); err == nil {
			t.Errorf("Parse(%s) = %s, want an error", input, got)
		}
	}
}

func TestControlExpressions(t *testing.T) {
	seq := path(filter(ast.NewParenthesizedExpr(ast.NewExpr(integer("1"), integer("2")))))
	testdata := []struct {
		input  string
		output ast.ExprSingle
	}{
		{"for $x in (1, 2) return $x", ast.NewForExpr(ast.NewSimpleForClause(ast.Binding{Var: name("x"), In: seq}), varRef("x"))},
		{"for $x in a, $y in b return $x + $y", ast.NewForExpr(
			ast.NewSimpleForClause(ast.Binding{Var: name("x"), In: child("a")}, ast.Binding{Var: name("y"), In: child("b")}),
			ast.NewAdditiveExpr(varRef("x"), ast.Op[ast.Additive]{Kind: ast.Add, Operand: varRef("y")}))},
		{"some $x in a satisfies $x", ast.NewQuantifiedExpr(ast.Some, []ast.Binding{{Var: name("x"), In: child("a")}}, varRef("x"))},
		{"every $a in b, $c in d satisfies $a = $c", ast.NewQuantifiedExpr(ast.Every,
			[]ast.Binding{{Var: name("a"), In: child("b")}, {Var: name("c"), In: child("d")}},
			ast.NewComparisonExpr(varRef("a"), ast.GeneralEqual, varRef("c")))},
		{"if ($a) then 1 else 2", ast.NewIfExpr(ast.NewExpr(varRef("a")), integer("1"), integer("2"))},
		{"if(a)then b else if (c) then d else ()", ast.NewIfExpr(ast.NewExpr(child("a")), child("b"),
			ast.NewIfExpr(ast.NewExpr(child("c")), child("d"), path(filter(ast.NewEmptyParenthesizedExpr()))))},
	}
	for _, td := range testdata {
		checkExpr(t, td.input, td.output)
	}
	for _, input := range []string{"for $x in a", "some $x in a", "if (a) then b", "for x in a return x"} {
		if got, err := Parse(input); err == nil {
			t.Errorf("Parse(%s) = %s, want an error", input, got)
		}
	}
}

func TestFullConsumption(t *testing.T) {
	for _, input := range []string{"a", "1 + 2", "//a[1]", "f($x)", "for $i in 1 to 3 return $i"} {
		if _, err := Parse(input); err != nil {
			t.Errorf("Parse(%s): %v", input, err)
		}
		for _, trailer := range []string{" )", " ]", " 1", " $", " (:"} {
			if got, err := Parse(input + trailer); err == nil {
				t.Errorf("Parse(%s) = %s, want an error", input+trailer, got)
			}
		}
	}
	checkExpr(t, "  (: lead :) a (: trail :)  ", child("a"))
	if got, err := Parse(""); err == nil {
		t.Errorf("Parse(\"\") = %s, want an error", got)
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := Parse("1 +")
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("Parse(1 +) error = %v, want ErrSyntax", err)
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("Parse(1 +) error is %T, want *SyntaxError", err)
	}
	if se.Offset != 3 || se.Line != 1 || se.Column != 4 {
		t.Errorf("Parse(1 +) error at offset %d, %d:%d, want 3, 1:4", se.Offset, se.Line, se.Column)
	}
	for _, want := range []string{`"$"`, `"("`, "digit", "NCName"} {
		found := false
		for _, e := range se.Expected {
			found = found || e == want
		}
		if !found {
			t.Errorf("Parse(1 +) expected %v, missing %s", se.Expected, want)
		}
	}
	if !strings.Contains(se.Error(), "found end of input") {
		t.Errorf("Error() = %s", se.Error())
	}

	_, err = Parse("a\n+ )")
	if !errors.As(err, &se) {
		t.Fatalf("Parse error is %T, want *SyntaxError", err)
	}
	if se.Offset != 4 || se.Line != 2 || se.Column != 3 {
		t.Errorf("error at offset %d, %d:%d, want 4, 2:3", se.Offset, se.Line, se.Column)
	}
	if got := se.Detail(); !strings.HasPrefix(got, "+ )\n  ^\n") {
		t.Errorf("Detail() = %q", got)
	}
}

func TestNestingDepth(t *testing.T) {
	testdata := []struct {
		input string
		ok    bool
	}{
		{strings.Repeat("(", 500) + "1" + strings.Repeat(")", 500), true},
		{strings.Repeat("a[", 500) + "1" + strings.Repeat("]", 500), true},
		{strings.Repeat("(", 1_000_000), false},
		{strings.Repeat("(", 5000) + "1" + strings.Repeat(")", 5000), false},
		{strings.Repeat("a[", 5000) + "1" + strings.Repeat("]", 5000), false},
		{strings.Repeat("if (1) then ", 5000) + "1" + strings.Repeat(" else 2", 5000), false},
	}
	for i, td := range testdata {
		_, err := Parse(td.input)
		if td.ok {
			if err != nil {
				t.Errorf("input %d: unexpected error %v", i, err)
			}
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("input %d: error = %v, want ErrSyntax", i, err)
			continue
		}
		var se *SyntaxError
		errors.As(err, &se)
		found := false
		for _, e := range se.Expected {
			found = found || e == "expression nested too deeply"
		}
		if !found {
			t.Errorf("input %d: expected %v, want the nesting limit", i, se.Expected)
		}
	}
}

func TestMustParse(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustParse(a b) did not panic")
		}
	}()
	MustParse("a b")
}

func TestNormalize(t *testing.T) {
	decomposed := "cafe\u0301"
	checkExpr(t, decomposed, child(decomposed))
	got, err := Parse(decomposed, Normalize(norm.NFC))
	if err != nil {
		t.Fatal(err)
	}
	if expected := ast.NewExpr(child("caf\u00e9")); !got.Equals(expected) {
		t.Errorf("Parse(%q, NFC) = %s, want %s", decomposed, got, expected)
	}
}

func TestRuleTree(t *testing.T) {
	rt := NewRuleTree()
	if _, err := Parse("a", WithRuleTree(rt)); err != nil {
		t.Fatal(err)
	}
	roots := rt.Roots()
	if len(roots) != 1 || roots[0].Rule != "2 Expr" || roots[0].Start != 0 || roots[0].End != 1 {
		t.Fatalf("roots = %+v, want one 2 Expr over [0,1)", roots)
	}
	var buf bytes.Buffer
	if err := rt.Dump(&buf); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`2 Expr "a"`, `36 NameTest "a"`, `28 AxisStep "a"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("rule tree dump misses %s:\n%s", want, buf.String())
		}
	}
	if strings.Contains(buf.String(), "FunctionCall") {
		t.Errorf("rule tree dump contains a failed rule:\n%s", buf.String())
	}

	if _, err := Parse("bc", WithRuleTree(rt)); err != nil {
		t.Fatal(err)
	}
	roots = rt.Roots()
	if len(roots) != 1 || roots[0].End != 2 {
		t.Fatalf("reused tree roots = %+v, want one 2 Expr over [0,2)", roots)
	}
	buf.Reset()
	if err := rt.Dump(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `2 Expr "bc"`) || strings.Contains(buf.String(), `"a"`) {
		t.Errorf("reused tree dump:\n%s", buf.String())
	}
}

func TestSlogTracer(t *testing.T) {
	var buf bytes.Buffer
	rt := NewRuleTree()
	if _, err := Parse("1", WithTracer(TraceWriter(&buf)), WithRuleTree(rt)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`msg="enter rule"`, `rule="2 Expr"`, `matched=true`, `matched=false`} {
		if !strings.Contains(out, want) {
			t.Errorf("trace misses %s", want)
		}
	}
	if len(rt.Roots()) != 1 {
		t.Errorf("rule tree next to a tracer has %d roots, want 1", len(rt.Roots()))
	}
}
