package registry

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/evreg/internal/ev"
	"github.com/roach88/evreg/internal/store"
	"github.com/roach88/evreg/internal/tax"
	"github.com/roach88/evreg/internal/testutil"
)

var quiet = store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func newRegistry(t *testing.T, rows ...testutil.Row) *Registry {
	t.Helper()
	s, err := store.Load(strings.NewReader(testutil.CSV(rows...)), quiet)
	require.NoError(t, err)
	r, err := New(s)
	require.NoError(t, err)
	return r
}

func sampleRegistry(t *testing.T) *Registry {
	t.Helper()
	return newRegistry(t, testutil.Sample()...)
}

func TestRegistry_ShouldLoadData(t *testing.T) {
	r := sampleRegistry(t)

	assert.Len(t, r.Vehicles(), 7, "unique vehicles")
	assert.Len(t, r.Registrations(), 9, "registrations")
}

func TestRegistrations_FlattenOrder(t *testing.T) {
	r := sampleRegistry(t)

	var got []string
	for _, v := range r.Registrations() {
		got = append(got, v.ID+"/"+v.City)
	}

	assert.Equal(t, []string{
		"V1/Seattle", "V1/Tacoma",
		"V2/Bellevue",
		"V3/Everett", "V3/Seattle",
		"V4/seattle",
		"V5/Tacoma",
		"V6/Yakima",
		"V7/Puyallup",
	}, got)
}

func TestTotalTax(t *testing.T) {
	r := sampleRegistry(t)

	tests := []struct {
		year int
		want float64
	}{
		{2023, 250.0},
		{2024, 560.0},
		{2025, 284.0},
	}

	for _, tt := range tests {
		got, err := r.TotalTax(tt.year)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "year %d", tt.year)
	}
}

func TestTotalTax_MatchesPerVehicleSum(t *testing.T) {
	r := sampleRegistry(t)

	for _, year := range r.Years() {
		var sum float64
		for _, v := range r.Vehicles() {
			tx, err := r.CalculateTax(v, year)
			require.NoError(t, err)
			sum += tx
		}
		total, err := r.TotalTax(year)
		require.NoError(t, err)
		assert.Equal(t, sum, total)
	}
}

func TestCalculateTax_2025UsesStoreHistory(t *testing.T) {
	r := sampleRegistry(t)

	tests := []struct {
		id   string
		want float64
	}{
		{"V1", 12.0},  // BEV eligible, Seattle, 2 registrations
		{"V2", 15.0},  // BEV eligible, Bellevue
		{"V3", 140.0}, // PHEV not eligible, Everett, 2 registrations
		{"V4", 37.0},  // BEV not eligible, "seattle"
		{"V5", 50.0},  // PHEV eligible
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			v, ok := r.Vehicle(tt.id)
			require.True(t, ok)
			got, err := r.CalculateTax(v, 2025)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateTax_HistoricalRecordSharesCount(t *testing.T) {
	r := sampleRegistry(t)

	// The older V1 record is in Tacoma, so only the transfer discount applies.
	hist := r.History("V1")
	require.Len(t, hist, 2)

	got, err := r.CalculateTax(hist[1], 2025)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
}

func TestCalculateTax_SeattleSingleVsTransferred(t *testing.T) {
	single := testutil.Row{ID: "S1", County: "King", City: "Seattle", ModelYear: 2022, Make: "KIA", Model: "EV6", EVType: ev.BEV, Eligibility: testutil.Eligible, EVRange: 310}
	moved := single
	moved.ID = "S2"
	older := moved
	older.City = "Renton"

	r := newRegistry(t, single, moved, older)

	v1, _ := r.Vehicle("S1")
	v2, _ := r.Vehicle("S2")

	got1, err := r.CalculateTax(v1, 2025)
	require.NoError(t, err)
	assert.Equal(t, 22.0, got1)

	got2, err := r.CalculateTax(v2, 2025)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got2)
}

func TestCalculateTax_UnsupportedYearForEveryVehicle(t *testing.T) {
	r := sampleRegistry(t)

	for _, v := range r.Vehicles() {
		for _, year := range []int{2022, 2026} {
			_, err := r.CalculateTax(v, year)
			assert.True(t, tax.IsUnsupportedYear(err), "%s/%d", v.ID, year)
		}
	}
}

func TestTotalTax_UnsupportedVehicleAborts(t *testing.T) {
	rows := append(testutil.Sample(), testutil.Row{
		ID: "ICE1", County: "King", City: "Seattle", ModelYear: 2010,
		Make: "FORD", Model: "FOCUS", EVType: "Gasoline", EVRange: 0,
	})
	r := newRegistry(t, rows...)

	_, err := r.TotalTax(2024)
	require.Error(t, err)
	assert.True(t, tax.IsUnsupportedVehicleType(err))

	var te *tax.UnsupportedVehicleTypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "ICE1", te.VehicleID)
}

func TestAssessTax(t *testing.T) {
	r := sampleRegistry(t)
	v, _ := r.Vehicle("V1")

	a, err := r.AssessTax(v, 2025)
	require.NoError(t, err)
	assert.Equal(t, 15.0, a.Base)
	assert.Len(t, a.Adjustments, 2)
	assert.Equal(t, 12.0, a.Total)
}

func TestMostPopularModel(t *testing.T) {
	r := sampleRegistry(t)

	tests := []struct {
		name   string
		county string
		want   string
	}{
		{"all_counties_tie_goes_to_first_seen", "", "TESLA MODEL S"},
		{"king", "King", "TESLA MODEL S"},
		{"pierce_current_only", "pierce", "CHEVROLET VOLT"},
		{"case_insensitive", "YAKIMA", "TESLA MODEL S"},
		{"snohomish", "Snohomish", "TOYOTA PRIUS PRIME"},
		{"missing", "Nonexistent County", "The county 'Nonexistent County' likely doesn't exist."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.MostPopularModel(tt.county))
		})
	}
}

func TestMostPopularModel_ClearWinner(t *testing.T) {
	rows := append(testutil.Sample(), testutil.Row{
		ID: "V8", County: "King", City: "Kent", ModelYear: 2021,
		Make: "NISSAN", Model: "LEAF", EVType: ev.BEV, Eligibility: testutil.Eligible, EVRange: 149,
	})
	r := newRegistry(t, rows...)

	assert.Equal(t, "NISSAN LEAF", r.MostPopularModel(""))
	assert.Equal(t, "NISSAN LEAF", r.MostPopularModel("King")) // LEAF=2 beats MODEL S=1
}

func TestMostPopularModel_Empty(t *testing.T) {
	r := newRegistry(t)

	assert.Equal(t, NoVehiclesMessage, r.MostPopularModel(""))
	assert.Equal(t, CountyNotFoundMessage("King"), r.MostPopularModel("King"))
}

func TestModelCounts(t *testing.T) {
	r := sampleRegistry(t)

	assert.Equal(t, []ModelCount{
		{Model: "TESLA MODEL S", Count: 2},
		{Model: "NISSAN LEAF", Count: 2},
		{Model: "TOYOTA PRIUS PRIME", Count: 1},
		{Model: "TESLA MODEL 3", Count: 1},
		{Model: "CHEVROLET VOLT", Count: 1},
	}, r.ModelCounts(""))

	assert.Empty(t, r.ModelCounts("Nowhere"))
}

func TestQueries_Idempotent(t *testing.T) {
	r := sampleRegistry(t)

	assert.Equal(t, r.Vehicles(), r.Vehicles())
	assert.Equal(t, r.Registrations(), r.Registrations())
	assert.Equal(t, r.MostPopularModel("King"), r.MostPopularModel("King"))

	for _, year := range r.Years() {
		a, errA := r.TotalTax(year)
		b, errB := r.TotalTax(year)
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, a, b)
	}
}

// TestRegistry_FullFixture checks the published regression values against the
// full Washington registry extract. Set EVREG_FIXTURE to its path to run.
func TestRegistry_FullFixture(t *testing.T) {
	path := os.Getenv("EVREG_FIXTURE")
	if path == "" {
		t.Skip("EVREG_FIXTURE not set")
	}

	s, err := store.Open(path, quiet)
	require.NoError(t, err)
	r, err := New(s)
	require.NoError(t, err)

	assert.Len(t, r.Vehicles(), 11060, "unique vehicles")
	assert.Len(t, r.Registrations(), 181458, "registrations")

	total2023, err := r.TotalTax(2023)
	require.NoError(t, err)
	assert.Equal(t, 531530.0, total2023)

	total2024, err := r.TotalTax(2024)
	require.NoError(t, err)
	assert.Equal(t, 1205890.0, total2024)

	_, err = r.TotalTax(2025)
	require.NoError(t, err)

	assert.Equal(t, "TESLA MODEL S", r.MostPopularModel(""))
	assert.Equal(t, CountyNotFoundMessage("Nonexistent County"), r.MostPopularModel("Nonexistent County"))
}
