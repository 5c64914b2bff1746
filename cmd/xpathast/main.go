package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/midbel/cli"
)

var errFail = errors.New("fail")

var (
	summary = "xpathast parses XPath 2.0 expressions and prints their syntax tree"
	help    = `Commands:

  parse [-trace] [-rules] [-nfc] EXPR
    print the syntax tree of EXPR, or the position and the expected
    tokens when it does not parse

  check [-fail-fast] [-verbose] FILE...
    parse the select, test, match, use and group-* attributes of the
    XSLT elements in each FILE and report those that are malformed

  refs EXPR
    list the variables and functions EXPR refers to
`
)

func main() {
	var (
		set  = cli.NewFlagSet("xpathast")
		root = prepare()
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"parse"}, &parseCmd)
	root.Register([]string{"check"}, &checkCmd)
	root.Register([]string{"refs"}, &refsCmd)
	return root
}
