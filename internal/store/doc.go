// Package store loads electric-vehicle registration records into memory.
//
// The store is an immutable snapshot built from one pass over a comma-delimited
// source file:
//   - Registration: one source row, parsed into an ev.Vehicle
//   - Group: all registrations sharing a vehicle ID, in file order
//   - Current record: the first registration of a group
//
// # Critical Patterns
//
// Newest-First Groups
//   - The source file lists each vehicle's registrations newest first
//   - The store never sorts; file order within a group is preserved as-is
//   - Group(id)[0] is therefore the vehicle's current registration
//
// Deterministic Views
//   - Vehicles() and Registrations() follow first-seen ID order
//   - Identical input always yields identical views
//
// Fail-Fast Loading
//   - Any malformed row aborts the load with a *ParseError
//   - No partial store is ever returned
//
// # Input Format
//
// The header row is discarded. Columns are addressed by fixed position:
//
//	0=id 1=county 2=city 3=state 4=(unused) 5=model year
//	6=make 7=model 8=ev type 9=eligibility category 10=ev range
//
// Fields are split on every comma; quoted fields with embedded commas are not
// supported and will misparse.
package store
