package tax

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/evreg/internal/ev"
)

func TestCompile_DefaultScheduleShape(t *testing.T) {
	s, err := Compile(scheduleCUE, "schedule.cue")
	require.NoError(t, err)

	y2024, ok := s.Year(2024)
	require.True(t, ok)
	require.Len(t, y2024.Rules, 3)
	assert.Empty(t, y2024.Adjustments)
	assert.Equal(t, ev.PHEV, y2024.Rules[0].EVType)
	require.NotNil(t, y2024.Rules[1].MinRange)
	assert.Equal(t, 100, *y2024.Rules[1].MinRange)
	require.NotNil(t, y2024.Rules[2].MaxRange)
	assert.Equal(t, 100, *y2024.Rules[2].MaxRange)

	y2025, ok := s.Year(2025)
	require.True(t, ok)
	require.Len(t, y2025.Rules, 4)
	require.Len(t, y2025.Adjustments, 2)
	assert.Equal(t, Adjustment{Name: "seattle_surcharge", City: "Seattle", Delta: 7.0}, y2025.Adjustments[0])
	assert.Equal(t, Adjustment{Name: "ownership_transfer_discount", MultipleRegistrations: true, Delta: -10.0}, y2025.Adjustments[1])

	_, ok = s.Year(2026)
	assert.False(t, ok)
}

func TestCompile_IntegerAmounts(t *testing.T) {
	s, err := Compile([]byte(`
years: [{
	year: 2040
	rules: [{ev_type: "Plug-in Hybrid Electric Vehicle (PHEV)", tax: 75}]
}]
`), "ints.cue")
	require.NoError(t, err)

	got, err := s.Calculate(ev.Vehicle{EVType: ev.PHEV}, 2040, nil)
	require.NoError(t, err)
	assert.Equal(t, 75.0, got)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "syntax",
			src:     `years: [{year: 2023`,
			wantMsg: "cue",
		},
		{
			name: "unknown_ev_type",
			src: `
years: [{
	year: 2023
	rules: [{ev_type: "Steam", tax: 1.0}]
}]`,
			wantMsg: "cue",
		},
		{
			name: "unknown_rule_field",
			src: `
years: [{
	year: 2023
	rules: [{ev_type: "Battery Electric Vehicle (BEV)", min_rang: 100, tax: 1.0}]
}]`,
			wantMsg: "cue",
		},
		{
			name: "negative_tax",
			src: `
years: [{
	year: 2023
	rules: [{ev_type: "Battery Electric Vehicle (BEV)", tax: -1.0}]
}]`,
			wantMsg: "cue",
		},
		{
			name: "empty_rules",
			src: `
years: [{
	year: 2023
	rules: []
}]`,
			wantMsg: "cue",
		},
		{
			name: "missing_tax",
			src: `
years: [{
	year: 2023
	rules: [{ev_type: "Battery Electric Vehicle (BEV)"}]
}]`,
			wantMsg: "cue",
		},
		{
			name: "duplicate_year",
			src: `
years: [
	{year: 2023, rules: [{ev_type: "Battery Electric Vehicle (BEV)", tax: 1.0}]},
	{year: 2023, rules: [{ev_type: "Battery Electric Vehicle (BEV)", tax: 2.0}]},
]`,
			wantMsg: "year 2023 defined more than once",
		},
		{
			name: "empty_range",
			src: `
years: [{
	year: 2023
	rules: [{ev_type: "Battery Electric Vehicle (BEV)", min_range: 100, max_range: 50, tax: 1.0}]
}]`,
			wantMsg: "empty range [100, 50)",
		},
		{
			name:    "no_years",
			src:     `years: []`,
			wantMsg: "at least one year is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile([]byte(scheduleSchema(t)+tt.src), "test.cue")
			require.Error(t, err)
			assert.Nil(t, s)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Contains(t, ce.Error(), tt.wantMsg)
		})
	}
}

// scheduleSchema returns the definitions block of the embedded schedule so
// test sources are checked against the same constraints.
func scheduleSchema(t *testing.T) string {
	t.Helper()
	src := string(scheduleCUE)
	end := strings.Index(src, "\nyears: [\n")
	require.Greater(t, end, 0, "embedded schedule must define the years list after the schema")
	return src[:end] + "\n"
}

func TestCompile_MissingYears(t *testing.T) {
	_, err := Compile([]byte(`rules: []`), "test.cue")
	require.Error(t, err)
	assert.Equal(t, "years: years is required", stripPos(err))
}

// stripPos renders a CompileError without its position prefix.
func stripPos(err error) string {
	var ce *CompileError
	if !errors.As(err, &ce) {
		return err.Error()
	}
	return ce.Field + ": " + ce.Message
}
