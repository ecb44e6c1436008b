package tax

import (
	"errors"
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/evreg/internal/ev"
)

// UnsupportedYearError is returned for a tax year the schedule does not cover.
type UnsupportedYearError struct {
	Year      int
	Supported []int
}

func (e *UnsupportedYearError) Error() string {
	return fmt.Sprintf("taxes cannot be calculated for year %d (supported: %v)", e.Year, e.Supported)
}

// UnsupportedVehicleTypeError is returned when no rule of the year matches the vehicle.
type UnsupportedVehicleTypeError struct {
	VehicleID string
	EVType    ev.EVType
	Year      int
}

func (e *UnsupportedVehicleTypeError) Error() string {
	return fmt.Sprintf("cannot calculate tax for %s (%s, %d)", e.VehicleID, e.EVType, e.Year)
}

// IsUnsupportedYear returns true if err is or wraps an *UnsupportedYearError.
func IsUnsupportedYear(err error) bool {
	var ye *UnsupportedYearError
	return errors.As(err, &ye)
}

// IsUnsupportedVehicleType returns true if err is or wraps an *UnsupportedVehicleTypeError.
func IsUnsupportedVehicleType(err error) bool {
	var te *UnsupportedVehicleTypeError
	return errors.As(err, &te)
}

// CompileError reports an invalid schedule.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return &CompileError{Field: "cue", Message: first.Error()}
}
