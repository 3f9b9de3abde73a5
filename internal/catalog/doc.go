// Package catalog holds movie and category records and the catalog filter.
//
// Filter.Values is the only place query parameters for GET /movies are
// built; empty fields never reach the wire. Debouncer sequences delayed
// search fetches so a later keystroke supersedes an earlier pending one.
package catalog
