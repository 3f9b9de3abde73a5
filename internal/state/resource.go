package state

import "time"

// Ticket identifies one fetch of a Resource.
type Ticket uint64

// Resource tracks one piece of remote data owned by a page: the last good
// value, whether a fetch is in flight, and the last error.
//
// The zero value is ready to use.
type Resource[T any] struct {
	Data      T
	HasData   bool
	Loading   bool
	Err       error
	UpdatedAt time.Time

	seq Ticket
}

// Start marks a new fetch and returns its ticket. Any fetch started earlier
// becomes stale.
func (r *Resource[T]) Start() Ticket {
	r.seq++
	r.Loading = true
	return r.seq
}

// Current reports whether t belongs to the latest fetch.
func (r *Resource[T]) Current(t Ticket) bool {
	return t != 0 && t == r.seq
}

// Resolve records the outcome of the fetch t. Stale outcomes are dropped and
// Resolve returns false. An error keeps the previous data.
func (r *Resource[T]) Resolve(t Ticket, data T, err error) bool {
	if !r.Current(t) {
		return false
	}
	r.Loading = false
	r.UpdatedAt = time.Now()
	if err != nil {
		r.Err = err
		return true
	}
	r.Data = data
	r.HasData = true
	r.Err = nil
	return true
}

// Set replaces the data outside a fetch, e.g. after a successful action
// returned the updated record. In-flight fetches become stale.
func (r *Resource[T]) Set(data T) {
	r.seq++
	r.Data = data
	r.HasData = true
	r.Loading = false
	r.Err = nil
	r.UpdatedAt = time.Now()
}

// Fail records err without touching the data and cancels in-flight fetches.
func (r *Resource[T]) Fail(err error) {
	r.seq++
	r.Loading = false
	r.Err = err
}

// Reset forgets everything and invalidates outstanding tickets.
func (r *Resource[T]) Reset() {
	seq := r.seq + 1
	*r = Resource[T]{seq: seq}
}

// Settled reports whether the resource is neither loading nor failed.
func (r *Resource[T]) Settled() bool {
	return !r.Loading && r.Err == nil
}
