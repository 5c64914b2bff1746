// Package xpathast parses XPath 2.0 expressions into the immutable syntax
// tree of package ast.
//
// The parser works directly on the expression text. Every grammar rule is a
// method that either consumes input and returns a node, or fails and leaves
// the cursor untouched; alternatives are tried in order and the first match
// wins.
package xpathast

import (
	"github.com/speedata/xpathast/ast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/norm"
)

type config struct {
	tracers   []Tracer
	normalize bool
	form      norm.Form
}

// Option configures a call to Parse.
type Option func(*config)

// WithTracer reports every rule the parser tries to t.
func WithTracer(t Tracer) Option {
	return func(c *config) {
		c.tracers = append(c.tracers, t)
	}
}

// WithRuleTree records the matched rules into t.
func WithRuleTree(t *RuleTree) Option {
	return func(c *config) {
		c.tracers = append(c.tracers, t)
	}
}

// Normalize applies the Unicode normalization form f to the expression
// before it is parsed. Offsets in a SyntaxError refer to the normalized
// text.
func Normalize(f norm.Form) Option {
	return func(c *config) {
		c.normalize = true
		c.form = f
	}
}

func (c *config) tracer() Tracer {
	switch len(c.tracers) {
	case 0:
		return discardTracer{}
	case 1:
		return c.tracers[0]
	default:
		return teeTracer(c.tracers)
	}
}

// Parse parses text as an XPath 2.0 expression. The whole text must be
// consumed; leading and trailing whitespace and comments are allowed.
//
// Malformed input yields a *SyntaxError. Parse does not recover panics of
// type *ast.Fault, which signal a bug in the parser rather than bad input.
func Parse(text string, opts ...Option) (*ast.Expr, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.normalize {
		text = cfg.form.String(text)
	}
	for _, t := range cfg.tracers {
		if rt, ok := t.(*RuleTree); ok {
			rt.reset(text)
		}
	}
	p := newParser(text, cfg.tracer())
	expr, ok := withEOI(p, p.expr)
	if !ok {
		return nil, newSyntaxError(p)
	}
	return expr, nil
}

// MustParse is like Parse but panics if the expression cannot be parsed.
func MustParse(text string, opts ...Option) *ast.Expr {
	expr, err := Parse(text, opts...)
	if err != nil {
		panic("xpathast: MustParse(" + text + "): " + err.Error())
	}
	return expr
}

// withEOI runs rule after skipping leading whitespace and succeeds only if
// the rule consumes the rest of the input.
func withEOI[T any](p *parser, rule func() (T, bool)) (T, bool) {
	var zero T
	p.ws()
	v, ok := rule()
	if !ok {
		return zero, false
	}
	if !p.atEnd() {
		p.expect("end of input")
		return zero, false
	}
	return v, true
}

func sortedKeys(set map[string]bool) []string {
	keys := maps.Keys(set)
	slices.Sort(keys)
	return keys
}
