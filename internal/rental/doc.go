// Package rental models the rental lifecycle and the backend's rental records.
//
// # Lifecycle
//
// A rental starts ORDERED when a user rents a movie. An administrator marks it
// TAKEN at pickup and RETURNED at drop-off; the owner may CANCEL it while it
// is still ORDERED. RETURNED and CANCELLED are terminal. The whole table lives
// in transition.go; callers ask ActionFor which single action a role may take
// instead of comparing status strings.
//
// # Dates
//
// The backend serializes LocalDateTime either as a string or as a numeric
// array:
//
//	[2024, 3, 15, 10, 30, 0]       // March 15 2024, 10:30:00 local
//	[2024, 3, 15]                  // midnight
//	[2024, 3, 15, 10, 30, 0, 5e8]  // with nanoseconds
//
// Date.UnmarshalJSON accepts both, so every Rental decoded anywhere in the
// client carries a canonical time.Time. FromArray is the single conversion
// point and ISO renders the value back deterministically.
package rental
