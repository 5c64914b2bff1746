package xpathast

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const indent = "  "

// Tracer observes the grammar rules while they are tried. Enter is called
// before a rule runs and Leave after it, with the offset the rule stopped
// at and whether it matched.
type Tracer interface {
	Enter(rule string, offset int)
	Leave(rule string, offset int, matched bool)
}

type discardTracer struct{}

func (discardTracer) Enter(string, int)       {}
func (discardTracer) Leave(string, int, bool) {}

type slogTracer struct {
	logger *slog.Logger
	depth  int
}

// NewSlogTracer returns a Tracer that logs every rule at debug level.
func NewSlogTracer(logger *slog.Logger) Tracer {
	return &slogTracer{logger: logger}
}

// TraceWriter returns a Tracer logging to w with a text handler.
func TraceWriter(w io.Writer) Tracer {
	opts := slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	return NewSlogTracer(slog.New(slog.NewTextHandler(w, &opts)))
}

func (t *slogTracer) Enter(rule string, offset int) {
	t.depth++
	args := []any{
		"rule", rule,
		"offset", offset,
		"depth", t.depth,
	}
	t.logger.Debug("enter rule", args...)
}

func (t *slogTracer) Leave(rule string, offset int, matched bool) {
	args := []any{
		"rule", rule,
		"offset", offset,
		"depth", t.depth,
		"matched", matched,
	}
	t.depth--
	t.logger.Debug("leave rule", args...)
}

// RuleNode is one matched rule in a RuleTree.
type RuleNode struct {
	Rule     string
	Start    int
	End      int
	Children []*RuleNode
}

// RuleTree is a Tracer that keeps the rules that matched, nested the way
// they were entered. Rules that failed are dropped together with
// everything below them.
type RuleTree struct {
	root  RuleNode
	stack []*RuleNode
	input string
}

// NewRuleTree returns an empty RuleTree. Pass it to Parse with
// WithRuleTree. A tree only holds the rules of the last Parse it was
// given to.
func NewRuleTree() *RuleTree {
	t := &RuleTree{}
	t.reset("")
	return t
}

func (t *RuleTree) reset(input string) {
	t.root = RuleNode{}
	t.stack = []*RuleNode{&t.root}
	t.input = input
}

func (t *RuleTree) Enter(rule string, offset int) {
	n := &RuleNode{Rule: rule, Start: offset}
	t.stack = append(t.stack, n)
}

func (t *RuleTree) Leave(rule string, offset int, matched bool) {
	if len(t.stack) < 2 {
		return
	}
	n := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	if !matched {
		return
	}
	n.End = offset
	parent := t.stack[len(t.stack)-1]
	parent.Children = append(parent.Children, n)
}

// Roots returns the outermost matched rules.
func (t *RuleTree) Roots() []*RuleNode {
	return t.root.Children
}

// Dump writes the tree to w, one rule per line with the text it matched.
func (t *RuleTree) Dump(w io.Writer) error {
	for _, n := range t.root.Children {
		if err := t.dump(w, n, 0); err != nil {
			return err
		}
	}
	return nil
}

func (t *RuleTree) dump(w io.Writer, n *RuleNode, level int) error {
	text := ""
	if n.Start <= n.End && n.End <= len(t.input) {
		text = strings.TrimSpace(t.input[n.Start:n.End])
	}
	if _, err := fmt.Fprintf(w, "%s%s %q\n", strings.Repeat(indent, level), n.Rule, text); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := t.dump(w, c, level+1); err != nil {
			return err
		}
	}
	return nil
}

// teeTracer forwards to several tracers.
type teeTracer []Tracer

func (t teeTracer) Enter(rule string, offset int) {
	for _, tr := range t {
		tr.Enter(rule, offset)
	}
}

func (t teeTracer) Leave(rule string, offset int, matched bool) {
	for _, tr := range t {
		tr.Leave(rule, offset, matched)
	}
}

func enterStep(p *parser, step string) int {
	p.tracer.Enter(step, p.pos)
	return p.pos
}

func leaveStep[T any](p *parser, step string, v T) (T, bool) {
	p.tracer.Leave(step, p.pos, true)
	return v, true
}

// failStep rewinds to start and reports the rule as failed.
func failStep[T any](p *parser, step string, start int) (T, bool) {
	var zero T
	p.pos = start
	p.tracer.Leave(step, p.pos, false)
	return zero, false
}
