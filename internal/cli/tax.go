package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/evreg/internal/harness"
	"github.com/roach88/evreg/internal/tax"
)

// TaxOptions holds flags for the tax command.
type TaxOptions struct {
	*RootOptions
	Vehicle string // assess one vehicle instead of the whole registry
}

// TaxTotal is the registry-wide result of the tax command.
type TaxTotal struct {
	Year     int     `json:"year"`
	Vehicles int     `json:"vehicles"`
	Total    float64 `json:"total"`
}

// NewTaxCommand creates the tax command.
func NewTaxCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TaxOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tax <year>",
		Short: "Calculate registration tax",
		Long: `Calculate registration tax for a year.

Without --vehicle, prints the sum of tax over every vehicle's current
registration. With --vehicle, prints that vehicle's itemized assessment.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTax(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Vehicle, "vehicle", "", "vehicle ID to assess")

	return cmd
}

func runTax(opts *TaxOptions, yearArg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	year, err := strconv.Atoi(yearArg)
	if err != nil {
		return formatter.Fail(ErrCodeUnsupportedYear, fmt.Errorf("invalid year %q", yearArg))
	}

	_, r, err := opts.openRegistry(formatter)
	if err != nil {
		return err
	}

	if opts.Vehicle != "" {
		v, ok := r.Vehicle(opts.Vehicle)
		if !ok {
			return formatter.Fail(ErrCodeUnknownVehicle, fmt.Errorf("vehicle %q not found", opts.Vehicle))
		}
		a, err := r.AssessTax(v, year)
		if err != nil {
			return formatter.Fail(taxErrorCode(err), err)
		}
		if formatter.Format == "json" {
			return formatter.Success(a)
		}
		writeAssessment(formatter, v.MakeAndModel(), a)
		return nil
	}

	total, err := r.TotalTax(year)
	if err != nil {
		return formatter.Fail(taxErrorCode(err), err)
	}

	result := TaxTotal{Year: year, Vehicles: len(r.Vehicles()), Total: total}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "Total tax for %d: %s (%d vehicles)\n",
		result.Year, harness.FormatAmount(result.Total), result.Vehicles)
	return nil
}

func writeAssessment(f *OutputFormatter, model string, a tax.Assessment) {
	w := f.Writer
	fmt.Fprintf(w, "Vehicle: %s (%s)\n", a.VehicleID, model)
	fmt.Fprintf(w, "Year: %d\n", a.Year)
	fmt.Fprintf(w, "Base: %s\n", harness.FormatAmount(a.Base))
	for _, adj := range a.Adjustments {
		fmt.Fprintf(w, "  %s: %s\n", adj.Name, formatDelta(adj.Delta))
	}
	fmt.Fprintf(w, "Total: %s\n", harness.FormatAmount(a.Total))
}

// formatDelta renders an adjustment with an explicit sign.
func formatDelta(d float64) string {
	if d >= 0 {
		return "+" + harness.FormatAmount(d)
	}
	return harness.FormatAmount(d)
}
