package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/evreg/internal/index"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	Top int
}

// Stats is the JSON payload of the stats command.
type Stats struct {
	index.Totals
	Counties []index.Count `json:"counties"`
	Types    []index.Count `json:"types"`
	Models   []index.Count `json:"models"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show registry statistics",
		Long: `Show aggregate statistics over current registrations: vehicles per
county, per EV type, and per make and model.

Counts are computed in an in-memory SQLite index built from the loaded file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Top, "top", 5, "rows per table (0 = all)")

	return cmd
}

func runStats(opts *StatsOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()

	s, _, err := opts.openRegistry(formatter)
	if err != nil {
		return err
	}

	idx, err := index.Build(ctx, s)
	if err != nil {
		return formatter.Fail(ErrCodeGeneric, err)
	}
	defer idx.Close()
	formatter.VerboseLog("Indexed snapshot %s", idx.Snapshot())

	var stats Stats
	if stats.Totals, err = idx.Totals(ctx); err != nil {
		return formatter.Fail(ErrCodeGeneric, err)
	}
	if stats.Counties, err = idx.CountyCounts(ctx, opts.Top); err != nil {
		return formatter.Fail(ErrCodeGeneric, err)
	}
	if stats.Types, err = idx.TypeCounts(ctx); err != nil {
		return formatter.Fail(ErrCodeGeneric, err)
	}
	if stats.Models, err = idx.TopModels(ctx, "", opts.Top); err != nil {
		return formatter.Fail(ErrCodeGeneric, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(stats)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Vehicles: %d\n", stats.Vehicles)
	fmt.Fprintf(w, "Registrations: %d\n", stats.Registrations)
	fmt.Fprintf(w, "Transferred: %d\n", stats.Transferred)
	writeCounts(formatter, "Counties", stats.Counties)
	writeCounts(formatter, "Types", stats.Types)
	writeCounts(formatter, "Models", stats.Models)
	return nil
}

func writeCounts(f *OutputFormatter, title string, counts []index.Count) {
	fmt.Fprintf(f.Writer, "\n%s:\n", title)
	for _, c := range counts {
		fmt.Fprintf(f.Writer, "  %s: %d\n", c.Key, c.Count)
	}
}
