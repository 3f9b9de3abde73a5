// Package session keeps the signed-in user.
//
// The record lives in a small JSON file so it survives restarts and can be
// shared with other reel processes; Store.Reload picks up changes made
// elsewhere. All writes go through Service, which pairs them with the backend
// login and cookie reset. Subscribers receive an Event after each change.
package session
