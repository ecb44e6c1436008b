package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Info summarises a loaded registry.
type Info struct {
	Source        string `json:"source"`
	Snapshot      string `json:"snapshot"`
	Vehicles      int    `json:"vehicles"`
	Registrations int    `json:"registrations"`
	TaxYears      []int  `json:"tax_years"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "info",
		Short:         "Summarise the registry file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, cmd)
		},
	}
}

func runInfo(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	s, r, err := opts.openRegistry(formatter)
	if err != nil {
		return err
	}

	info := Info{
		Source:        s.Source(),
		Snapshot:      s.SnapshotID(),
		Vehicles:      s.Len(),
		Registrations: s.RowCount(),
		TaxYears:      r.Years(),
	}

	if formatter.Format == "json" {
		return formatter.Success(info)
	}

	years := make([]string, len(info.TaxYears))
	for i, y := range info.TaxYears {
		years[i] = fmt.Sprint(y)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Source: %s\n", info.Source)
	fmt.Fprintf(w, "Snapshot: %s\n", info.Snapshot)
	fmt.Fprintf(w, "Vehicles: %d\n", info.Vehicles)
	fmt.Fprintf(w, "Registrations: %d\n", info.Registrations)
	fmt.Fprintf(w, "Tax years: %s\n", strings.Join(years, ", "))
	return nil
}
