package ev

// EVType is the electric drivetrain classification carried by the source data.
// Values other than BEV and PHEV are legal but are not covered by any tax rule.
type EVType string

const (
	// BEV is a pure-electric drivetrain.
	BEV EVType = "Battery Electric Vehicle (BEV)"

	// PHEV is a combined electric/combustion drivetrain.
	PHEV EVType = "Plug-in Hybrid Electric Vehicle (PHEV)"
)

// CleanFuelEligibleCategory is the eligibility-category text that marks a
// vehicle as clean-alternative-fuel eligible. Any other text is not eligible.
const CleanFuelEligibleCategory = "Clean Alternative Fuel Vehicle Eligible"

// Vehicle is one registration event for a physical vehicle.
type Vehicle struct {
	ID                string `json:"id"`
	State             string `json:"state"`
	City              string `json:"city"`
	County            string `json:"county"`
	Make              string `json:"make"`
	Model             string `json:"model"`
	ModelYear         int    `json:"model_year"`
	EVType            EVType `json:"ev_type"`
	EVRange           int    `json:"ev_range"` // electric-only range in miles
	CleanFuelEligible bool   `json:"clean_fuel_eligible"`
}

// MakeAndModel is the grouping key used by popularity queries, e.g. "TESLA MODEL S".
func (v Vehicle) MakeAndModel() string {
	return v.Make + " " + v.Model
}

// IsElectric reports whether the vehicle has one of the known drivetrain types.
func (v Vehicle) IsElectric() bool {
	return v.EVType == BEV || v.EVType == PHEV
}
