package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/midbel/cli"
	"github.com/speedata/xpathast"
	"github.com/speedata/xpathast/ast"
	"golang.org/x/text/unicode/norm"
)

var errArgument = errors.New("exactly one expression expected")

var parseCmd = cli.Command{
	Name:    "parse",
	Summary: "parse an expression and print its syntax tree",
	Handler: &ParseCmd{},
}

type ParseCmd struct {
	Trace bool
	Rules bool
	NFC   bool
}

func (p ParseCmd) Run(args []string) error {
	set := flag.NewFlagSet("parse", flag.ContinueOnError)
	set.BoolVar(&p.Trace, "trace", false, "log every grammar rule tried to stderr")
	set.BoolVar(&p.Rules, "rules", false, "print the tree of matched grammar rules")
	set.BoolVar(&p.NFC, "nfc", false, "normalize the expression to NFC before parsing")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() != 1 {
		return errArgument
	}
	var (
		options []xpathast.Option
		rules   = xpathast.NewRuleTree()
	)
	if p.Trace {
		options = append(options, xpathast.WithTracer(xpathast.TraceWriter(os.Stderr)))
	}
	if p.Rules {
		options = append(options, xpathast.WithRuleTree(rules))
	}
	if p.NFC {
		options = append(options, xpathast.Normalize(norm.NFC))
	}
	expr, err := xpathast.Parse(set.Arg(0), options...)
	if err != nil {
		printError(err)
		return errFail
	}
	if p.Rules {
		if err := rules.Dump(os.Stdout); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
	}
	return ast.Dump(os.Stdout, expr)
}

func printError(err error) {
	var se *xpathast.SyntaxError
	if errors.As(err, &se) {
		fmt.Fprintln(os.Stderr, se.Detail())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
