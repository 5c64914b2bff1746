package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/midbel/cli"
	"github.com/speedata/xpathast"
	"github.com/speedata/xpathast/xslcheck"
)

var refsCmd = cli.Command{
	Name:    "refs",
	Summary: "list the variables and functions an expression refers to",
	Handler: &RefsCmd{},
}

type RefsCmd struct{}

func (RefsCmd) Run(args []string) error {
	set := flag.NewFlagSet("refs", flag.ContinueOnError)
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() != 1 {
		return errArgument
	}
	expr, err := xpathast.Parse(set.Arg(0))
	if err != nil {
		printError(err)
		return errFail
	}
	refs := xslcheck.References(expr)
	for _, v := range refs.Variables {
		fmt.Fprintln(os.Stdout, "$"+v)
	}
	for _, f := range refs.Functions {
		fmt.Fprintln(os.Stdout, f+"()")
	}
	return nil
}
