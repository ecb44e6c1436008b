// Command evreg queries an electric vehicle registration file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/evreg/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Command errors are already rendered by the output formatter;
		// anything else (usage errors from cobra) is printed here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
