package harness

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/roach88/evreg/internal/logging"
	"github.com/roach88/evreg/internal/registry"
	"github.com/roach88/evreg/internal/store"
	"github.com/roach88/evreg/internal/tax"
)

// Harness evaluates scenarios.
type Harness struct {
	logger *slog.Logger
}

// New creates a Harness that logs store loads to logger. A nil logger discards.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with logging suppressed.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run loads the scenario's registry and evaluates every expectation.
//
// A registry that fails to load is an error, not a failed check: no answers
// can be compared without data.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	s, err := store.Open(scenario.Data, store.WithLogger(h.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	r, err := registry.New(s)
	if err != nil {
		return nil, err
	}

	result := NewResult(scenario.Name)
	e := scenario.Expect

	if e.Vehicles != nil {
		result.AddCheck("vehicles", strconv.Itoa(*e.Vehicles), strconv.Itoa(len(r.Vehicles())))
	}
	if e.Registrations != nil {
		result.AddCheck("registrations", strconv.Itoa(*e.Registrations), strconv.Itoa(len(r.Registrations())))
	}

	years := make([]int, 0, len(e.Totals))
	for y := range e.Totals {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		got, err := r.TotalTax(y)
		result.AddCheck(fmt.Sprintf("total %d", y), FormatAmount(e.Totals[y]), outcome(got, err))
	}

	for _, c := range e.Taxes {
		name := fmt.Sprintf("tax %s %d", c.Vehicle, c.Year)
		want := c.Error
		if c.Tax != nil {
			want = FormatAmount(*c.Tax)
		}

		v, ok := r.Vehicle(c.Vehicle)
		if !ok {
			result.AddCheck(name, want, "unknown vehicle")
			continue
		}
		got, err := r.CalculateTax(v, c.Year)
		result.AddCheck(name, want, outcome(got, err))
	}

	for _, c := range e.Popular {
		name := "popular (all)"
		if c.County != "" {
			name = "popular " + c.County
		}
		result.AddCheck(name, c.Model, r.MostPopularModel(c.County))
	}

	return result, nil
}

// FormatAmount renders a tax amount with the fewest digits that round-trip.
func FormatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// outcome renders either an amount or the error kind.
func outcome(amount float64, err error) string {
	switch {
	case err == nil:
		return FormatAmount(amount)
	case tax.IsUnsupportedYear(err):
		return ErrKindUnsupportedYear
	case tax.IsUnsupportedVehicleType(err):
		return ErrKindUnsupportedVehicleType
	default:
		return "error: " + err.Error()
	}
}
