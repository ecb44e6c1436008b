package ev

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldKey returns the case-folded NFC form of s.
// Two strings match case-insensitively iff their fold keys are equal.
//
// A fresh caser is built per call; cases.Caser is not safe for concurrent use.
func FoldKey(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// EqualFold reports whether a and b are equal under FoldKey.
func EqualFold(a, b string) bool {
	return FoldKey(a) == FoldKey(b)
}
