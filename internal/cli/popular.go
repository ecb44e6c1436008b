package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/evreg/internal/registry"
)

// PopularOptions holds flags for the popular command.
type PopularOptions struct {
	*RootOptions
	County string
	Top    int
}

// PopularResult is the JSON payload of the popular command.
type PopularResult struct {
	County string                `json:"county,omitempty"`
	Model  string                `json:"model"`
	Found  bool                  `json:"found"`
	Counts []registry.ModelCount `json:"counts,omitempty"`
}

// NewPopularCommand creates the popular command.
func NewPopularCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PopularOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "popular",
		Short: "Show the most popular make and model",
		Long: `Show the most popular make and model among current registrations.

Ties go to the model seen first in the registry. --county limits the count
to one county (case-insensitive); --top lists the leading models with counts.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPopular(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.County, "county", "", "limit to one county")
	cmd.Flags().IntVar(&opts.Top, "top", 0, "also list the top N models with counts")

	return cmd
}

func runPopular(opts *PopularOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	_, r, err := opts.openRegistry(formatter)
	if err != nil {
		return err
	}

	counts := r.ModelCounts(opts.County)
	result := PopularResult{
		County: opts.County,
		Model:  r.MostPopularModel(opts.County),
		Found:  len(counts) > 0,
	}
	if opts.Top > 0 {
		if len(counts) > opts.Top {
			counts = counts[:opts.Top]
		}
		result.Counts = counts
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, result.Model)
	for i, c := range result.Counts {
		fmt.Fprintf(formatter.Writer, "%3d. %s: %d\n", i+1, c.Model, c.Count)
	}
	return nil
}
