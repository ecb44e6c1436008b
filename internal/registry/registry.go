// Package registry answers tax and popularity queries over a loaded store.
//
// A Registry owns no mutable state. Every query is a pure computation over the
// store's snapshot, so a Registry is safe for concurrent use and repeated
// calls return identical results.
package registry

import (
	"fmt"

	"github.com/roach88/evreg/internal/ev"
	"github.com/roach88/evreg/internal/store"
	"github.com/roach88/evreg/internal/tax"
)

// NoVehiclesMessage is returned by MostPopularModel when there is nothing to count.
const NoVehiclesMessage = "No vehicles found."

// CountyNotFoundMessage is returned by MostPopularModel when the county filter
// matches no current vehicle.
func CountyNotFoundMessage(county string) string {
	return fmt.Sprintf("The county '%s' likely doesn't exist.", county)
}

// Registry is the business-rule layer over a Store.
type Registry struct {
	store    *store.Store
	schedule *tax.Schedule
}

// New creates a Registry over s using the embedded tax schedule.
func New(s *store.Store) (*Registry, error) {
	schedule, err := tax.Default()
	if err != nil {
		return nil, fmt.Errorf("compile tax schedule: %w", err)
	}
	return NewWithSchedule(s, schedule), nil
}

// NewWithSchedule creates a Registry over s using the given schedule.
func NewWithSchedule(s *store.Store, schedule *tax.Schedule) *Registry {
	return &Registry{store: s, schedule: schedule}
}

// Vehicles returns the current record of every vehicle in first-seen order.
func (r *Registry) Vehicles() []ev.Vehicle {
	return r.store.Vehicles()
}

// Registrations returns every registration, flattened: groups in first-seen
// order, each group newest first.
func (r *Registry) Registrations() []ev.Vehicle {
	groups := r.store.Registrations()

	flat := make([]ev.Vehicle, 0, r.store.RowCount())
	for _, g := range groups {
		flat = append(flat, g...)
	}
	return flat
}

// Vehicle returns the current record for id.
func (r *Registry) Vehicle(id string) (ev.Vehicle, bool) {
	return r.store.Current(id)
}

// History returns every registration of id, newest first, or nil if unknown.
func (r *Registry) History(id string) []ev.Vehicle {
	return r.store.History(id)
}

// Years returns the supported tax years.
func (r *Registry) Years() []int {
	return r.schedule.Years()
}

// CalculateTax returns the tax owed for v in year.
//
// Errors are *tax.UnsupportedYearError for years outside the schedule and
// *tax.UnsupportedVehicleTypeError when no rule of that year covers v.
func (r *Registry) CalculateTax(v ev.Vehicle, year int) (float64, error) {
	return r.schedule.Calculate(v, year, r.store)
}

// AssessTax returns the itemized tax for v in year.
func (r *Registry) AssessTax(v ev.Vehicle, year int) (tax.Assessment, error) {
	return r.schedule.Assess(v, year, r.store)
}

// TotalTax sums CalculateTax over every current vehicle. The first failing
// vehicle aborts the sum.
func (r *Registry) TotalTax(year int) (float64, error) {
	var total float64
	for _, v := range r.store.Vehicles() {
		t, err := r.CalculateTax(v, year)
		if err != nil {
			return 0, err
		}
		total += t
	}
	return total, nil
}
