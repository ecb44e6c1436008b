package harness

import (
	"bytes"
	"fmt"
)

// Check is one evaluated expectation.
type Check struct {
	Name string `json:"name"`
	Want string `json:"want"`
	Got  string `json:"got"`
	Pass bool   `json:"pass"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// Pass is true when every check passed.
	Pass bool `json:"pass"`

	// Checks are the evaluated expectations, in report order.
	Checks []Check `json:"checks"`

	// Errors describes every failed check. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Checks:   []Check{},
		Errors:   []string{},
	}
}

// AddCheck records a check, marking the result failed if got differs from want.
func (r *Result) AddCheck(name, want, got string) {
	c := Check{Name: name, Want: want, Got: got, Pass: want == got}
	r.Checks = append(r.Checks, c)
	if !c.Pass {
		r.Errors = append(r.Errors, fmt.Sprintf("%s: want %s, got %s", name, want, got))
		r.Pass = false
	}
}

// Passed returns the number of passing checks.
func (r *Result) Passed() int {
	n := 0
	for _, c := range r.Checks {
		if c.Pass {
			n++
		}
	}
	return n
}

// Report renders the result as deterministic text, one line per check.
func (r *Result) Report() []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "scenario: %s\n", r.Scenario)
	for _, c := range r.Checks {
		if c.Pass {
			fmt.Fprintf(&b, "PASS %s: %s\n", c.Name, c.Got)
		} else {
			fmt.Fprintf(&b, "FAIL %s: want %s, got %s\n", c.Name, c.Want, c.Got)
		}
	}

	status := "PASS"
	if !r.Pass {
		status = "FAIL"
	}
	fmt.Fprintf(&b, "result: %s (%d/%d checks)\n", status, r.Passed(), len(r.Checks))

	return b.Bytes()
}
