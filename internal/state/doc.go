// Package state tracks remote data owned by reel's pages.
//
// Each page keeps one Resource per fetched value (a movie list, a rental
// history). A fetch calls Start to get a Ticket and carries it in the command
// that performs the request; when the result message arrives the page hands
// it back to Resolve together with the ticket:
//
//	ticket := m.movies.Start()
//	return m, fetchMovies(ctx, gw, filter, ticket)
//	...
//	case moviesLoadedMsg:
//		m.movies.Resolve(msg.ticket, msg.movies, msg.err)
//
// Resolve ignores any outcome whose ticket is no longer the newest, so the
// last issued request always owns what is displayed even when responses
// arrive out of order. A failed fetch records the error but keeps the last
// good data.
//
// Resources are not safe for concurrent use; they live inside the Bubble Tea
// model and are only touched from Update.
package state
