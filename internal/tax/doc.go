// Package tax computes annual vehicle tax from a year-keyed rule schedule.
//
// The schedule is data, written in CUE and compiled at startup. Each year holds
// an ordered list of guarded rules and an ordered list of adjustments:
//
//	years: [{
//	    year: 2024
//	    rules: [
//	        {ev_type: "Plug-in Hybrid Electric Vehicle (PHEV)", tax: 200.0},
//	        {ev_type: "Battery Electric Vehicle (BEV)", min_range: 100, tax: 20.0},
//	        {ev_type: "Battery Electric Vehicle (BEV)", max_range: 100, tax: 50.0},
//	    ]
//	}]
//
// Evaluation:
//  1. Look up the year; unknown years fail with *UnsupportedYearError
//  2. Try rules in order; the first match sets the base tax
//  3. No match fails with *UnsupportedVehicleTypeError
//  4. Apply every matching adjustment in order
//
// The result is not clamped; a large enough discount yields a negative tax.
//
// The embedded schedule (Default) covers 2023, 2024 and 2025.
package tax
