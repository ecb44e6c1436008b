package store

import (
	"strconv"
	"strings"

	"github.com/roach88/evreg/internal/ev"
)

// Fixed column positions in the source file.
const (
	colID          = 0
	colCounty      = 1
	colCity        = 2
	colState       = 3
	colModelYear   = 5
	colMake        = 6
	colModel       = 7
	colEVType      = 8
	colEligibility = 9
	colEVRange     = 10

	minColumns = colEVRange + 1
)

// ParseRow parses one data row into a Vehicle.
// Line, Source, and Column context on a returned *ParseError are filled in by
// the caller where known.
func ParseRow(row string) (ev.Vehicle, error) {
	row = strings.TrimSuffix(row, "\r")
	cols := strings.Split(row, ",")
	if len(cols) < minColumns {
		return ev.Vehicle{}, &ParseError{
			Code:   ErrCodeShortRow,
			Column: -1,
			Value:  strconv.Itoa(len(cols)),
		}
	}

	modelYear, err := parseInt(cols, colModelYear, "model_year")
	if err != nil {
		return ev.Vehicle{}, err
	}
	evRange, err := parseInt(cols, colEVRange, "ev_range")
	if err != nil {
		return ev.Vehicle{}, err
	}

	return ev.Vehicle{
		ID:                cols[colID],
		County:            cols[colCounty],
		City:              cols[colCity],
		State:             cols[colState],
		ModelYear:         modelYear,
		Make:              cols[colMake],
		Model:             cols[colModel],
		EVType:            ev.EVType(cols[colEVType]),
		CleanFuelEligible: cols[colEligibility] == ev.CleanFuelEligibleCategory,
		EVRange:           evRange,
	}, nil
}

func parseInt(cols []string, col int, field string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(cols[col]))
	if err != nil {
		return 0, &ParseError{
			Code:   ErrCodeBadNumber,
			Column: col,
			Field:  field,
			Value:  cols[col],
			Err:    err,
		}
	}
	return n, nil
}
