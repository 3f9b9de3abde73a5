// Package api provides the HTTP gateway to the movie rental backend.
//
// # Overview
//
// Client wraps one method around each backend endpoint. Files are split by
// resource:
//
//   - auth.go: registration and login
//   - movies.go: catalog, categories, ratings, poster images
//   - rentals.go: rental creation, lookup, and owner cancellation
//   - users.go: profile and rental history
//   - admin.go: image upload, movie management, rental take/return
//
// Gateway is the interface the UI depends on; *Client satisfies it.
//
// # Sessions
//
// The backend authenticates with a session cookie set by POST /auth/login.
// The client keeps it in a cookie jar and sends it on every request.
// ResetSession empties the jar on logout.
//
// # Errors
//
// A non-2xx response becomes an *Error carrying the backend's message, an
// optional machine code, and any field errors. When the body is not JSON or
// has no message, the operation's fallback text is used instead (for example
// "Failed to fetch movies"). Message extracts the text for display:
//
//	movies, err := client.ListMovies(ctx, filter)
//	if err != nil {
//		banner = api.Message(err, "Failed to load movies. Please try again later.")
//	}
//
// There are no retries and no client-side timeout. Callers cancel through
// their context.
//
// # Dates
//
// Rental payloads are decoded through rental.Rental, whose date fields
// normalize the backend's array-encoded timestamps.
package api
