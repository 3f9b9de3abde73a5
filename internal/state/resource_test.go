package state

import (
	"errors"
	"testing"
)

func TestResource_ResolveStoresData(t *testing.T) {
	var r Resource[[]int]

	ticket := r.Start()
	if !r.Loading {
		t.Fatalf("Loading = false after Start")
	}
	if !r.Resolve(ticket, []int{1, 2}, nil) {
		t.Fatalf("Resolve rejected the current ticket")
	}
	if r.Loading || !r.HasData || len(r.Data) != 2 || r.Err != nil {
		t.Fatalf("resource = %#v", r)
	}
	if r.UpdatedAt.IsZero() {
		t.Fatalf("UpdatedAt not set")
	}
	if !r.Settled() {
		t.Fatalf("Settled = false")
	}
}

func TestResource_StaleTicketDropped(t *testing.T) {
	var r Resource[string]

	first := r.Start()
	second := r.Start()

	if !r.Resolve(second, "newest", nil) {
		t.Fatalf("newest response rejected")
	}
	if r.Resolve(first, "older", nil) {
		t.Fatalf("stale response accepted")
	}
	if r.Data != "newest" {
		t.Fatalf("Data = %q, want newest", r.Data)
	}
}

func TestResource_StaleTicketDroppedWhileLoading(t *testing.T) {
	var r Resource[string]

	first := r.Start()
	second := r.Start()
	if r.Resolve(first, "older", nil) {
		t.Fatalf("stale response accepted")
	}
	if !r.Loading {
		t.Fatalf("stale response cleared Loading")
	}
	r.Resolve(second, "newest", nil)
	if r.Data != "newest" {
		t.Fatalf("Data = %q", r.Data)
	}
}

func TestResource_ErrorKeepsPreviousData(t *testing.T) {
	var r Resource[string]
	r.Resolve(r.Start(), "good", nil)

	boom := errors.New("boom")
	if !r.Resolve(r.Start(), "", boom) {
		t.Fatalf("error outcome rejected")
	}
	if !errors.Is(r.Err, boom) {
		t.Fatalf("Err = %v, want boom", r.Err)
	}
	if r.Data != "good" || !r.HasData {
		t.Fatalf("data lost on error: %#v", r)
	}
	if r.Settled() {
		t.Fatalf("Settled = true with an error")
	}

	r.Resolve(r.Start(), "better", nil)
	if r.Err != nil || r.Data != "better" {
		t.Fatalf("success did not clear error: %#v", r)
	}
}

func TestResource_SetFailAndReset(t *testing.T) {
	var r Resource[int]
	pending := r.Start()

	r.Set(7)
	if r.Resolve(pending, 1, nil) {
		t.Fatalf("fetch started before Set was accepted")
	}
	if r.Data != 7 || r.Loading {
		t.Fatalf("resource = %#v", r)
	}

	pending = r.Start()
	r.Fail(errors.New("nope"))
	if r.Current(pending) || r.Data != 7 || r.Err == nil {
		t.Fatalf("resource after Fail = %#v", r)
	}

	pending = r.Start()
	r.Reset()
	if r.HasData || r.Err != nil || r.Loading {
		t.Fatalf("resource after Reset = %#v", r)
	}
	if r.Resolve(pending, 3, nil) {
		t.Fatalf("ticket survived Reset")
	}
	var zero Resource[int]
	if zero.Current(0) {
		t.Fatalf("zero ticket reported current")
	}
}
