package catalog

// Debouncer hands out sequence numbers for delayed triggers. Only the most
// recently issued sequence is current; older timers fire into nothing.
type Debouncer struct {
	seq uint64
}

// Next invalidates pending triggers and returns the new sequence.
func (d *Debouncer) Next() uint64 {
	d.seq++
	return d.seq
}

// Current reports whether seq is still the latest issued sequence.
func (d *Debouncer) Current(seq uint64) bool {
	return seq == d.seq
}

// Cancel invalidates any pending trigger without issuing a new one.
func (d *Debouncer) Cancel() {
	d.seq++
}
