package rental

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Return-by window for new rentals, in days from today.
const (
	MinDays     = 1
	MaxDays     = 30
	DefaultDays = 7
)

// ErrNoUser is returned when a rental is requested without a signed-in user.
var ErrNoUser = errors.New("user must be logged in to rent a movie")

// ErrReturnWindow reports a return-by date outside the allowed window.
var ErrReturnWindow = fmt.Errorf("return date must be between %d and %d days from today", MinDays, MaxDays)

// Rental links a user and a movie.
type Rental struct {
	ID           int64  `json:"id,omitempty"`
	UserID       int64  `json:"userId,omitempty"`
	UserFullName string `json:"userFullName,omitempty"`
	MovieID      int64  `json:"movieId"`
	MovieTitle   string `json:"movieTitle,omitempty"`
	RentalCode   string `json:"rentalCode,omitempty"`
	RentalDate   Date   `json:"rentalDate"`
	ReturnDate   Date   `json:"returnDate"`
	Status       Status `json:"status"`
}

// UnmarshalJSON decodes a rental, normalizing both date fields. A malformed
// date leaves that field empty instead of rejecting the record.
func (r *Rental) UnmarshalJSON(data []byte) error {
	type plain Rental
	var raw struct {
		plain
		RentalDate json.RawMessage `json:"rentalDate"`
		ReturnDate json.RawMessage `json:"returnDate"`
		Status     json.RawMessage `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode rental: %w", err)
	}
	*r = Rental(raw.plain)
	r.RentalDate = lenientDate(raw.RentalDate)
	r.ReturnDate = lenientDate(raw.ReturnDate)
	r.Status = Ordered
	if len(raw.Status) > 0 {
		if err := r.Status.UnmarshalJSON(raw.Status); err != nil {
			r.Status = StatusUnknown
		}
	}
	return nil
}

func lenientDate(raw json.RawMessage) Date {
	if len(raw) == 0 {
		return Date{}
	}
	var d Date
	if err := d.UnmarshalJSON(raw); err != nil {
		return Date{}
	}
	return d
}

// ActionFor is the action role may take on this rental.
func (r Rental) ActionFor(role Role) Action {
	return ActionFor(r.Status, role)
}

// Code returns the rental code or a dash for display.
func (r Rental) Code() string {
	if code := strings.TrimSpace(r.RentalCode); code != "" {
		return code
	}
	return "-"
}

// Request is the payload for creating a rental.
type Request struct {
	UserID     int64  `json:"userId"`
	MovieID    int64  `json:"movieId"`
	ReturnDate string `json:"returnDate"`
}

// ReturnDateIn returns the return-by time days whole days after now.
func ReturnDateIn(days int, now time.Time) (time.Time, error) {
	if days < MinDays || days > MaxDays {
		return time.Time{}, ErrReturnWindow
	}
	return now.AddDate(0, 0, days), nil
}

// DaysUntil counts whole days from now to date, rounding partial days up.
func DaysUntil(date, now time.Time) int {
	diff := date.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// NewRequest validates the return date and builds a creation payload.
func NewRequest(userID, movieID int64, returnDate, now time.Time) (Request, error) {
	if userID <= 0 {
		return Request{}, ErrNoUser
	}
	if movieID <= 0 {
		return Request{}, errors.New("movie id required")
	}
	days := DaysUntil(returnDate, now)
	if days < MinDays || days > MaxDays {
		return Request{}, ErrReturnWindow
	}
	return Request{
		UserID:     userID,
		MovieID:    movieID,
		ReturnDate: Date{returnDate}.ISO(),
	}, nil
}
