package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/midbel/cli"
	"github.com/speedata/xpathast/xslcheck"
)

var errFiles = errors.New("at least one stylesheet expected")

var checkCmd = cli.Command{
	Name:    "check",
	Summary: "parse the expressions of XSLT stylesheets",
	Handler: &CheckCmd{},
}

type CheckCmd struct {
	FailFast bool
	Verbose  bool
}

func (c CheckCmd) Run(args []string) error {
	set := flag.NewFlagSet("check", flag.ContinueOnError)
	set.BoolVar(&c.FailFast, "fail-fast", false, "stop checking files as soon as first error is encountered")
	set.BoolVar(&c.Verbose, "verbose", false, "print every expression, not only the bad ones")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() == 0 {
		return errFiles
	}
	var failed bool
	for _, file := range set.Args() {
		findings, err := checkFile(file)
		if err != nil {
			return err
		}
		writeFindings(os.Stdout, os.Stderr, file, findings, c.Verbose)
		if len(xslcheck.Failed(findings)) > 0 {
			failed = true
			if c.FailFast {
				break
			}
		}
	}
	if failed {
		return errFail
	}
	return nil
}

// writeFindings reports bad expressions to errw and, in verbose mode, the
// good ones to out.
func writeFindings(out, errw io.Writer, file string, findings []xslcheck.Finding, verbose bool) {
	for _, f := range findings {
		switch {
		case f.Err != nil:
			fmt.Fprintf(errw, "%s: %s\n", file, f)
		case verbose:
			fmt.Fprintf(out, "%s: %s\n", file, f)
		}
	}
}

func checkFile(file string) ([]xslcheck.Finding, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return xslcheck.Check(r)
}
