package rental

import (
	"encoding/json"
	"testing"
	"time"
)

func withLocal(t *testing.T, loc *time.Location) {
	t.Helper()
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func TestFromArray_Lengths(t *testing.T) {
	tests := []struct {
		name  string
		parts []int64
		want  time.Time
	}{
		{"date only", []int64{2024, 3, 15}, time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)},
		{"hour", []int64{2024, 3, 15, 10}, time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)},
		{"minute", []int64{2024, 3, 15, 10, 30}, time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)},
		{"second", []int64{2024, 3, 15, 10, 30, 45}, time.Date(2024, 3, 15, 10, 30, 45, 0, time.Local)},
		{"nanos", []int64{2024, 3, 15, 10, 30, 45, 500000000}, time.Date(2024, 3, 15, 10, 30, 45, 500000000, time.Local)},
		{"month is one based", []int64{2024, 1, 31}, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, err := FromArray(tt.parts)
		if err != nil {
			t.Fatalf("%s: FromArray returned error: %v", tt.name, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("%s: FromArray = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFromArray_RejectsBadLengths(t *testing.T) {
	for _, parts := range [][]int64{nil, {2024}, {2024, 3}, {2024, 3, 15, 1, 2, 3, 4, 5}} {
		if _, err := FromArray(parts); err == nil {
			t.Fatalf("FromArray(%v) expected error", parts)
		}
	}
}

func TestDate_RoundTripISO(t *testing.T) {
	withLocal(t, time.FixedZone("EST", -5*60*60))

	var d Date
	if err := json.Unmarshal([]byte(`[2024,3,15,10,30,0]`), &d); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	want := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.Local)
	if !d.Equal(want) {
		t.Fatalf("date = %v, want %v", d.Time, want)
	}
	if got := d.ISO(); got != "2024-03-15T15:30:00.000Z" {
		t.Fatalf("ISO = %q, want 2024-03-15T15:30:00.000Z", got)
	}
	if again := d.ISO(); again != d.ISO() {
		t.Fatalf("ISO not deterministic")
	}

	back, err := ParseDate(d.ISO())
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip = %v, want %v", back.Time, d.Time)
	}

	arr := ToArray(back.Time)
	if arr[0] != 2024 || arr[1] != 3 || arr[2] != 15 || arr[3] != 10 || arr[4] != 30 {
		t.Fatalf("ToArray = %v, want [2024 3 15 10 30 ...]", arr)
	}
}

func TestDate_StringForms(t *testing.T) {
	withLocal(t, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2025-12-13T10:11:12Z"`, time.Date(2025, 12, 13, 10, 11, 12, 0, time.UTC)},
		{`"2025-12-13T10:11:12"`, time.Date(2025, 12, 13, 10, 11, 12, 0, time.UTC)},
		{`"2025-12-13T10:11:12.250"`, time.Date(2025, 12, 13, 10, 11, 12, 250000000, time.UTC)},
		{`"2025-12-13"`, time.Date(2025, 12, 13, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		var d Date
		if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", tt.in, err)
		}
		if !d.Equal(tt.want) {
			t.Fatalf("Unmarshal(%s) = %v, want %v", tt.in, d.Time, tt.want)
		}
	}

	var empty Date
	if err := json.Unmarshal([]byte(`null`), &empty); err != nil || empty.Valid() {
		t.Fatalf("null should decode to an empty date, got %v err=%v", empty, err)
	}
	if empty.ISO() != "" {
		t.Fatalf("empty ISO = %q, want empty", empty.ISO())
	}
}

func TestRental_NormalizesDatesAndStatus(t *testing.T) {
	withLocal(t, time.UTC)

	payload := `[
		{"id":1,"movieId":7,"rentalCode":"AB12","rentalDate":[2024,3,15,10,30,0],"returnDate":[2024,3,22],"status":"ordered"},
		{"id":2,"movieId":8,"rentalDate":"2024-03-01T09:00:00","returnDate":[2024],"status":null},
		{"id":3,"movieId":9}
	]`
	var rentals []Rental
	if err := json.Unmarshal([]byte(payload), &rentals); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if len(rentals) != 3 {
		t.Fatalf("len = %d, want 3", len(rentals))
	}

	first := rentals[0]
	if first.Status != Ordered || first.RentalCode != "AB12" || first.MovieID != 7 {
		t.Fatalf("first rental = %#v", first)
	}
	if !first.RentalDate.Equal(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("rentalDate = %v", first.RentalDate.Time)
	}
	if !first.ReturnDate.Equal(time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("returnDate = %v", first.ReturnDate.Time)
	}

	second := rentals[1]
	if second.ReturnDate.Valid() {
		t.Fatalf("short array should leave returnDate empty, got %v", second.ReturnDate.Time)
	}
	if second.Status != Ordered {
		t.Fatalf("null status = %v, want ORDERED", second.Status)
	}
	if rentals[2].Status != Ordered {
		t.Fatalf("missing status = %v, want ORDERED", rentals[2].Status)
	}
	if rentals[2].Code() != "-" {
		t.Fatalf("Code() = %q, want -", rentals[2].Code())
	}
}

func TestNewRequest_ReturnWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ten, err := ReturnDateIn(10, now)
	if err != nil {
		t.Fatalf("ReturnDateIn returned error: %v", err)
	}
	req, err := NewRequest(3, 5, ten, now)
	if err != nil {
		t.Fatalf("NewRequest returned error: %v", err)
	}
	if req.UserID != 3 || req.MovieID != 5 || req.ReturnDate != "2025-06-11T12:00:00.000Z" {
		t.Fatalf("request = %#v", req)
	}

	if _, err := ReturnDateIn(0, now); err != ErrReturnWindow {
		t.Fatalf("ReturnDateIn(0) err = %v, want ErrReturnWindow", err)
	}
	if _, err := ReturnDateIn(31, now); err != ErrReturnWindow {
		t.Fatalf("ReturnDateIn(31) err = %v, want ErrReturnWindow", err)
	}
	if _, err := NewRequest(3, 5, now.AddDate(0, 0, 31), now); err != ErrReturnWindow {
		t.Fatalf("NewRequest 31 days err = %v, want ErrReturnWindow", err)
	}
	if _, err := NewRequest(0, 5, ten, now); err != ErrNoUser {
		t.Fatalf("NewRequest without user err = %v, want ErrNoUser", err)
	}
	if got := DaysUntil(now.Add(36*time.Hour), now); got != 2 {
		t.Fatalf("DaysUntil(36h) = %d, want 2", got)
	}
}
