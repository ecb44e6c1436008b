package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/evreg/internal/harness"
	"github.com/roach88/evreg/internal/logging"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <scenario.yaml>...",
		Short: "Run regression scenarios",
		Long: `Run regression scenarios against their registry files.

Each scenario names a registry CSV and the answers expected from it. Exits
with status 1 if any check fails and 2 if a scenario cannot be run.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args, cmd)
		},
	}
}

func runCheck(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	h := harness.New(logging.Component(logger, "harness"))

	results := make([]*harness.Result, 0, len(paths))
	failed := 0
	for _, path := range paths {
		formatter.VerboseLog("Running scenario %s", path)

		scenario, err := harness.LoadScenario(path)
		if err != nil {
			return formatter.Fail(ErrCodeScenario, fmt.Errorf("%s: %w", path, err))
		}

		result, err := h.Run(scenario)
		if err != nil {
			return formatter.Fail(ErrCodeScenario, fmt.Errorf("%s: %w", path, err))
		}

		if !result.Pass {
			failed++
		}
		results = append(results, result)
	}

	if formatter.Format == "json" {
		if err := formatter.Success(results); err != nil {
			return err
		}
	} else {
		for i, result := range results {
			if i > 0 {
				fmt.Fprintln(formatter.Writer)
			}
			fmt.Fprintf(formatter.Writer, "%s", result.Report())
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenario(s) failed", failed, len(results)))
	}
	return nil
}
