package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a registry regression scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Data is the registry CSV path. LoadScenario resolves it relative to the
	// scenario file.
	Data string `yaml:"data"`

	// Expect lists the answers the registry must give.
	Expect Expectations `yaml:"expect"`
}

// Expectations are the checks evaluated against the loaded registry.
type Expectations struct {
	Vehicles      *int            `yaml:"vehicles,omitempty"`
	Registrations *int            `yaml:"registrations,omitempty"`
	Totals        map[int]float64 `yaml:"totals,omitempty"`
	Taxes         []TaxCheck      `yaml:"taxes,omitempty"`
	Popular       []PopularCheck  `yaml:"popular,omitempty"`
}

// TaxCheck expects either an amount or an error kind for one vehicle and year.
// The vehicle's current record is used.
type TaxCheck struct {
	Vehicle string   `yaml:"vehicle"`
	Year    int      `yaml:"year"`
	Tax     *float64 `yaml:"tax,omitempty"`
	Error   string   `yaml:"error,omitempty"`
}

// PopularCheck expects the most popular model, optionally within a county.
type PopularCheck struct {
	County string `yaml:"county,omitempty"`
	Model  string `yaml:"model"`
}

// Error kinds accepted in TaxCheck.Error.
const (
	ErrKindUnsupportedYear        = "unsupported_year"
	ErrKindUnsupportedVehicleType = "unsupported_vehicle_type"
)

// LoadScenario reads and parses a scenario YAML file and resolves its data
// path relative to the file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Data != "" && !filepath.IsAbs(scenario.Data) {
		scenario.Data = filepath.Join(filepath.Dir(path), scenario.Data)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Data == "" {
		return fmt.Errorf("data is required")
	}

	e := s.Expect
	if e.Vehicles == nil && e.Registrations == nil && len(e.Totals) == 0 &&
		len(e.Taxes) == 0 && len(e.Popular) == 0 {
		return fmt.Errorf("expect must contain at least one check")
	}

	for i, c := range e.Taxes {
		if c.Vehicle == "" {
			return fmt.Errorf("taxes[%d]: vehicle is required", i)
		}
		if (c.Tax == nil) == (c.Error == "") {
			return fmt.Errorf("taxes[%d]: exactly one of tax or error is required", i)
		}
		switch c.Error {
		case "", ErrKindUnsupportedYear, ErrKindUnsupportedVehicleType:
		default:
			return fmt.Errorf("taxes[%d]: unknown error kind %q", i, c.Error)
		}
	}

	for i, c := range e.Popular {
		if c.Model == "" {
			return fmt.Errorf("popular[%d]: model is required", i)
		}
	}

	return nil
}
