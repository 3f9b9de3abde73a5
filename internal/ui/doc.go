// Package ui provides reel's Bubble Tea terminal interface.
//
// # Architecture Overview
//
// Model is the root tea.Model. It owns the chrome (header with navigation,
// command bar, footer banner), the help overlay, the log viewer and the
// current page. Every screen of the rental service is a page:
//
//   - page_login.go, page_signup.go: anonymous screens
//   - page_profile.go: account details and rental history
//   - page_movies.go: catalog browsing with filters (also the admin list)
//   - page_movie.go: movie detail, rating, renting and admin actions
//   - page_admin_rentals.go: rental management for admins
//   - page_add_movie.go: the movie form in create mode
//
// # Navigation
//
// Pages ask for a new screen with a navigateMsg. The root model resolves the
// path through route.Resolve using the session store, so the gate runs on
// every navigation and again whenever the session changes, including
// changes made by another reel process.
//
// # Async results
//
// Gateway calls run inside tea.Cmd functions. Commands issued by a page are
// wrapped by tagCmd so their results come back as pageMsg values tagged
// with the page generation; results for a page that has been replaced are
// dropped. Within a page, state.Resource tickets discard superseded
// fetches, such as an older movie search.
//
// # Key Bindings
//
//   - 1-4: Navigation bar entries for the current role
//   - ':': Go to a path
//   - ?: Help
//   - T: Cycle theme (saved to prefs)
//   - L: Log viewer (space follow, / search, n/N matches)
//   - ctrl+l: Sign out
//   - ctrl+c: Exit
package ui
