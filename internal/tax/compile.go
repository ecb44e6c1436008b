package tax

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/evreg/internal/ev"
)

//go:embed schedule.cue
var scheduleCUE []byte

var defaultSchedule = sync.OnceValues(func() (*Schedule, error) {
	return Compile(scheduleCUE, "schedule.cue")
})

// Default returns the embedded schedule, compiled once per process.
func Default() (*Schedule, error) {
	return defaultSchedule()
}

// Compile parses and validates CUE source into a Schedule.
// filename is used for error positions only.
func Compile(src []byte, filename string) (*Schedule, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileValue(v)
}

// CompileValue builds a Schedule from an already-evaluated CUE value holding a
// top-level years list.
func CompileValue(v cue.Value) (*Schedule, error) {
	yearsVal := v.LookupPath(cue.ParsePath("years"))
	if !yearsVal.Exists() {
		return nil, &CompileError{
			Field:   "years",
			Message: "years is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := yearsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	s := &Schedule{years: make(map[int]YearSchedule)}
	for iter.Next() {
		ys, err := parseYear(iter.Value())
		if err != nil {
			return nil, err
		}
		if _, dup := s.years[ys.Year]; dup {
			return nil, &CompileError{
				Field:   "year",
				Message: fmt.Sprintf("year %d defined more than once", ys.Year),
				Pos:     iter.Value().Pos(),
			}
		}
		s.years[ys.Year] = ys
		s.order = append(s.order, ys.Year)
	}
	if len(s.order) == 0 {
		return nil, &CompileError{
			Field:   "years",
			Message: "at least one year is required",
			Pos:     yearsVal.Pos(),
		}
	}

	sort.Ints(s.order)
	return s, nil
}

func parseYear(v cue.Value) (YearSchedule, error) {
	var ys YearSchedule

	year, err := v.LookupPath(cue.ParsePath("year")).Int64()
	if err != nil {
		return ys, formatCUEError(err)
	}
	ys.Year = int(year)

	rulesIter, err := v.LookupPath(cue.ParsePath("rules")).List()
	if err != nil {
		return ys, formatCUEError(err)
	}
	for rulesIter.Next() {
		r, err := parseRule(rulesIter.Value())
		if err != nil {
			return ys, err
		}
		ys.Rules = append(ys.Rules, r)
	}
	if len(ys.Rules) == 0 {
		return ys, &CompileError{
			Field:   "rules",
			Message: fmt.Sprintf("year %d has no rules", ys.Year),
			Pos:     v.Pos(),
		}
	}

	adjVal := v.LookupPath(cue.ParsePath("adjustments"))
	if adjVal.Exists() {
		adjIter, err := adjVal.List()
		if err != nil {
			return ys, formatCUEError(err)
		}
		for adjIter.Next() {
			a, err := parseAdjustment(adjIter.Value())
			if err != nil {
				return ys, err
			}
			ys.Adjustments = append(ys.Adjustments, a)
		}
	}

	return ys, nil
}

func parseRule(v cue.Value) (Rule, error) {
	var r Rule

	evType, err := v.LookupPath(cue.ParsePath("ev_type")).String()
	if err != nil {
		return r, formatCUEError(err)
	}
	r.EVType = ev.EVType(evType)

	if r.MinRange, err = optionalInt(v, "min_range"); err != nil {
		return r, err
	}
	if r.MaxRange, err = optionalInt(v, "max_range"); err != nil {
		return r, err
	}
	if r.MinRange != nil && r.MaxRange != nil && *r.MinRange >= *r.MaxRange {
		return r, &CompileError{
			Field:   "max_range",
			Message: fmt.Sprintf("empty range [%d, %d)", *r.MinRange, *r.MaxRange),
			Pos:     v.Pos(),
		}
	}

	if eligVal := v.LookupPath(cue.ParsePath("clean_fuel_eligible")); eligVal.Exists() {
		b, err := eligVal.Bool()
		if err != nil {
			return r, formatCUEError(err)
		}
		r.CleanFuelEligible = &b
	}

	if r.Amount, err = v.LookupPath(cue.ParsePath("tax")).Float64(); err != nil {
		return r, formatCUEError(err)
	}

	return r, nil
}

func parseAdjustment(v cue.Value) (Adjustment, error) {
	var a Adjustment
	var err error

	if a.Name, err = v.LookupPath(cue.ParsePath("name")).String(); err != nil {
		return a, formatCUEError(err)
	}

	if cityVal := v.LookupPath(cue.ParsePath("city")); cityVal.Exists() {
		if a.City, err = cityVal.String(); err != nil {
			return a, formatCUEError(err)
		}
	}

	if multiVal := v.LookupPath(cue.ParsePath("multiple_registrations")); multiVal.Exists() {
		if a.MultipleRegistrations, err = multiVal.Bool(); err != nil {
			return a, formatCUEError(err)
		}
	}

	if a.Delta, err = v.LookupPath(cue.ParsePath("delta")).Float64(); err != nil {
		return a, formatCUEError(err)
	}

	return a, nil
}

func optionalInt(v cue.Value, field string) (*int, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	n, err := fv.Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	i := int(n)
	return &i, nil
}
