// Package harness runs regression scenarios against a registry file.
//
// A scenario names a registry CSV and the answers the registry must give for
// it. The harness loads the file, builds a registry, evaluates every
// expectation, and renders a deterministic text report suitable for golden
// comparison.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: sample
//	description: "What this scenario pins down"
//	data: ../data/sample.csv        # relative to the scenario file
//	expect:
//	  vehicles: 7                   # unique vehicle IDs
//	  registrations: 9              # total rows
//	  totals:                       # sum of tax over current vehicles
//	    2023: 250
//	  taxes:
//	    - {vehicle: V1, year: 2025, tax: 12}
//	    - {vehicle: V1, year: 2026, error: unsupported_year}
//	  popular:
//	    - {model: TESLA MODEL S}
//	    - {county: Pierce, model: CHEVROLET VOLT}
//
// Unknown fields are rejected so typos fail loudly.
//
// # Golden Reports
//
// RunWithGolden compares the report with testdata/golden/<name>.golden.
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
