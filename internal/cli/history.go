package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/evreg/internal/ev"
)

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Vehicle       string       `json:"vehicle"`
	Registrations []ev.Vehicle `json:"registrations"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <vehicle-id>",
		Short: "List every registration of a vehicle",
		Long: `List every registration of a vehicle, current first.

The first registration in the file is the vehicle's current record; later
ones are its history.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, args[0], cmd)
		},
	}
}

func runHistory(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	_, r, err := opts.openRegistry(formatter)
	if err != nil {
		return err
	}

	history := r.History(id)
	if len(history) == 0 {
		return formatter.Fail(ErrCodeUnknownVehicle, fmt.Errorf("vehicle %q not found", id))
	}

	if formatter.Format == "json" {
		return formatter.Success(HistoryResult{Vehicle: id, Registrations: history})
	}

	current := history[0]
	fmt.Fprintf(formatter.Writer, "Vehicle %s: %d %s (%d registration(s))\n",
		id, current.ModelYear, current.MakeAndModel(), len(history))
	for i, v := range history {
		marker := ""
		if i == 0 {
			marker = " (current)"
		}
		fmt.Fprintf(formatter.Writer, "  %d. %s, %s County, %s%s\n", i+1, v.City, v.County, v.State, marker)
	}
	return nil
}
