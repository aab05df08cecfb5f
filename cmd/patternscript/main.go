// Command patternscript is the CLI driver for the PatternScript pipeline:
// read a single source file, run it, and stream its output to standard
// output. It carries none of the pipeline's logic itself.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"patternscript"
)

func run() error {
	flag.Parse()
	if flag.NArg() != 1 {
		return errors.New("usage: patternscript <source.ps>")
	}
	path := flag.Arg(0)

	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	res, runErr := patternscript.CompileAndRun(string(src))

	w := bufio.NewWriter(os.Stdout)
	for _, line := range res.Output {
		fmt.Fprintln(w, line)
	}
	w.Flush()

	return runErr
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
