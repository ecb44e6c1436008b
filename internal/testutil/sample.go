package testutil

import (
	"testing"

	"github.com/roach88/evreg/internal/ev"
)

// Sample returns a small registry with known answers:
//
//	vehicles=7 registrations=9
//	tax 2023=250 2024=560 2025=284
//	most popular=TESLA MODEL S (tie with NISSAN LEAF, seen first)
//
// V1 and V3 each have one historical registration after their current one.
// V4 is registered in "seattle" (lowercase) to exercise case-insensitive matching.
func Sample() []Row {
	return []Row{
		{ID: "V1", County: "King", City: "Seattle", PostalCode: "98101", ModelYear: 2020, Make: "TESLA", Model: "MODEL S", EVType: ev.BEV, Eligibility: Eligible, EVRange: 337},
		{ID: "V2", County: "King", City: "Bellevue", PostalCode: "98004", ModelYear: 2019, Make: "NISSAN", Model: "LEAF", EVType: ev.BEV, Eligibility: Eligible, EVRange: 150},
		{ID: "V1", County: "Pierce", City: "Tacoma", PostalCode: "98402", ModelYear: 2020, Make: "TESLA", Model: "MODEL S", EVType: ev.BEV, Eligibility: Eligible, EVRange: 337},
		{ID: "V3", County: "Snohomish", City: "Everett", PostalCode: "98201", ModelYear: 2021, Make: "TOYOTA", Model: "PRIUS PRIME", EVType: ev.PHEV, Eligibility: NotEligible, EVRange: 25},
		{ID: "V4", County: "King", City: "seattle", PostalCode: "98109", ModelYear: 2022, Make: "TESLA", Model: "MODEL 3", EVType: ev.BEV, Eligibility: Unknown, EVRange: 0},
		{ID: "V5", County: "Pierce", City: "Tacoma", PostalCode: "98405", ModelYear: 2018, Make: "CHEVROLET", Model: "VOLT", EVType: ev.PHEV, Eligibility: Eligible, EVRange: 53},
		{ID: "V6", County: "Yakima", City: "Yakima", PostalCode: "98901", ModelYear: 2023, Make: "TESLA", Model: "MODEL S", EVType: ev.BEV, Eligibility: Eligible, EVRange: 95},
		{ID: "V3", County: "King", City: "Seattle", PostalCode: "98103", ModelYear: 2021, Make: "TOYOTA", Model: "PRIUS PRIME", EVType: ev.PHEV, Eligibility: NotEligible, EVRange: 25},
		{ID: "V7", County: "Pierce", City: "Puyallup", PostalCode: "98371", ModelYear: 2017, Make: "NISSAN", Model: "LEAF", EVType: ev.BEV, Eligibility: Eligible, EVRange: 107},
	}
}

// WriteSample writes Sample to a temp file and returns its path.
func WriteSample(t testing.TB) string {
	t.Helper()
	return WriteCSV(t, Sample()...)
}
