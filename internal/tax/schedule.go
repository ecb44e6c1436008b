package tax

import (
	"github.com/roach88/evreg/internal/ev"
)

// Rule sets the base tax for vehicles matching all of its predicates.
// Nil predicates always hold.
type Rule struct {
	EVType            ev.EVType
	MinRange          *int // inclusive
	MaxRange          *int // exclusive
	CleanFuelEligible *bool
	Amount            float64
}

// Matches reports whether every predicate of r holds for v.
func (r Rule) Matches(v ev.Vehicle) bool {
	if v.EVType != r.EVType {
		return false
	}
	if r.MinRange != nil && v.EVRange < *r.MinRange {
		return false
	}
	if r.MaxRange != nil && v.EVRange >= *r.MaxRange {
		return false
	}
	if r.CleanFuelEligible != nil && v.CleanFuelEligible != *r.CleanFuelEligible {
		return false
	}
	return true
}

// Adjustment adds Delta to the base tax when all of its predicates hold.
type Adjustment struct {
	Name                  string
	City                  string // case-insensitive; empty matches any city
	MultipleRegistrations bool
	Delta                 float64
}

// RegistrationCounter reports how many registration events exist for a vehicle ID.
type RegistrationCounter interface {
	VehicleCount(id string) int
}

// applies reports whether a holds for v. registrations is called at most once
// and only when the adjustment depends on registration history.
func (a Adjustment) applies(v ev.Vehicle, registrations func() int) bool {
	if a.City != "" && !ev.EqualFold(v.City, a.City) {
		return false
	}
	if a.MultipleRegistrations && registrations() <= 1 {
		return false
	}
	return true
}

// YearSchedule is the rule set for one tax year.
type YearSchedule struct {
	Year        int
	Rules       []Rule
	Adjustments []Adjustment
}

// AppliedAdjustment records one adjustment that contributed to an assessment.
type AppliedAdjustment struct {
	Name  string  `json:"name"`
	Delta float64 `json:"delta"`
}

// Assessment is the itemized result of a tax calculation.
type Assessment struct {
	VehicleID   string              `json:"vehicle_id"`
	Year        int                 `json:"year"`
	Base        float64             `json:"base"`
	Adjustments []AppliedAdjustment `json:"adjustments,omitempty"`
	Total       float64             `json:"total"`
}

// Schedule is a compiled, immutable set of year schedules.
// Safe for concurrent use.
type Schedule struct {
	years map[int]YearSchedule
	order []int
}

// Years returns the supported tax years in ascending order.
func (s *Schedule) Years() []int {
	return append([]int(nil), s.order...)
}

// Year returns the schedule for year.
func (s *Schedule) Year(year int) (YearSchedule, bool) {
	ys, ok := s.years[year]
	return ys, ok
}

// Assess computes the itemized tax for v in year. counter supplies the
// registration history used by history-dependent adjustments; a nil counter
// counts zero registrations.
func (s *Schedule) Assess(v ev.Vehicle, year int, counter RegistrationCounter) (Assessment, error) {
	ys, ok := s.years[year]
	if !ok {
		return Assessment{}, &UnsupportedYearError{Year: year, Supported: s.Years()}
	}

	rule, ok := firstMatch(ys.Rules, v)
	if !ok {
		return Assessment{}, &UnsupportedVehicleTypeError{VehicleID: v.ID, EVType: v.EVType, Year: year}
	}

	count := -1
	registrations := func() int {
		if count < 0 {
			count = 0
			if counter != nil {
				count = counter.VehicleCount(v.ID)
			}
		}
		return count
	}

	a := Assessment{
		VehicleID: v.ID,
		Year:      year,
		Base:      rule.Amount,
		Total:     rule.Amount,
	}
	for _, adj := range ys.Adjustments {
		if adj.applies(v, registrations) {
			a.Adjustments = append(a.Adjustments, AppliedAdjustment{Name: adj.Name, Delta: adj.Delta})
			a.Total += adj.Delta
		}
	}

	return a, nil
}

// Calculate returns the total tax for v in year.
func (s *Schedule) Calculate(v ev.Vehicle, year int, counter RegistrationCounter) (float64, error) {
	a, err := s.Assess(v, year, counter)
	if err != nil {
		return 0, err
	}
	return a.Total, nil
}

func firstMatch(rules []Rule, v ev.Vehicle) (Rule, bool) {
	for _, r := range rules {
		if r.Matches(v) {
			return r, true
		}
	}
	return Rule{}, false
}
