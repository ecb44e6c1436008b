// Package testutil provides registry fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/roach88/evreg/internal/ev"
)

// Header is the header row of the registry file. Loaders discard it.
const Header = "VIN (1-10),County,City,State,Postal Code,Model Year,Make,Model," +
	"Electric Vehicle Type,Clean Alternative Fuel Vehicle (CAFV) Eligibility,Electric Range"

// Eligibility category texts found in the registry.
const (
	Eligible    = ev.CleanFuelEligibleCategory
	NotEligible = "Not eligible due to low battery range"
	Unknown     = "Eligibility unknown as battery range has not been researched"
)

// Row is one source row.
type Row struct {
	ID          string
	County      string
	City        string
	State       string
	PostalCode  string
	ModelYear   int
	Make        string
	Model       string
	EVType      ev.EVType
	Eligibility string
	EVRange     int
}

// String renders the row in source column order.
func (r Row) String() string {
	state := r.State
	if state == "" {
		state = "WA"
	}
	return strings.Join([]string{
		r.ID,
		r.County,
		r.City,
		state,
		r.PostalCode,
		strconv.Itoa(r.ModelYear),
		r.Make,
		r.Model,
		string(r.EVType),
		r.Eligibility,
		strconv.Itoa(r.EVRange),
	}, ",")
}

// CSV renders a complete registry file: header followed by rows in order.
func CSV(rows ...Row) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(r.String())
		b.WriteString("\n")
	}
	return b.String()
}

// WriteFile writes content to name inside a fresh temp directory and returns the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// WriteCSV writes rows as a registry file and returns its path.
func WriteCSV(t testing.TB, rows ...Row) string {
	t.Helper()
	return WriteFile(t, "ev.csv", CSV(rows...))
}
