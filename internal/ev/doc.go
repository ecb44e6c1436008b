// Package ev provides the vehicle record types shared by every other package.
//
// This package contains type definitions and string helpers only. All other
// internal packages import ev; ev imports nothing internal.
//
// Key design constraints:
//   - One Vehicle value per registration event (one source row)
//   - Vehicles sharing an ID are the same physical vehicle
//   - Location comparisons are case-insensitive and go through FoldKey
package ev
