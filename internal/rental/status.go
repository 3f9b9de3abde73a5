package rental

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the lifecycle state of a rental.
type Status int

const (
	StatusUnknown Status = iota
	Ordered
	Taken
	Returned
	Cancelled
)

var statusNames = map[Status]string{
	Ordered:   "ORDERED",
	Taken:     "TAKEN",
	Returned:  "RETURNED",
	Cancelled: "CANCELLED",
}

var statusLabels = map[Status]string{
	Ordered:   "Ordered",
	Taken:     "Taken",
	Returned:  "Returned",
	Cancelled: "Cancelled",
}

// Display colors for each status badge.
var statusColors = map[Status]string{
	Ordered:   "#2196f3",
	Taken:     "#ff9800",
	Returned:  "#4caf50",
	Cancelled: "#9e9e9e",
}

// Statuses lists every known status in lifecycle order.
func Statuses() []Status {
	return []Status{Ordered, Taken, Returned, Cancelled}
}

// ParseStatus maps a wire value to a Status. Comparison is case-insensitive
// and an empty value is treated as ORDERED, matching rentals the backend
// returns before a status is assigned.
func ParseStatus(value string) (Status, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return Ordered, nil
	}
	for status, name := range statusNames {
		if name == trimmed {
			return status, nil
		}
	}
	return StatusUnknown, fmt.Errorf("unknown rental status %q", value)
}

// String returns the wire value.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Label returns the human-readable status name.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Unknown"
}

// Color returns the badge color for the status.
func (s Status) Color() string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return statusColors[Cancelled]
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == Returned || s == Cancelled
}

// MarshalJSON encodes the wire value.
func (s Status) MarshalJSON() ([]byte, error) {
	if s == StatusUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts any casing. Unknown values decode to StatusUnknown
// so a single odd record does not fail a whole listing.
func (s *Status) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Ordered
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode status: %w", err)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		*s = StatusUnknown
		return nil
	}
	*s = parsed
	return nil
}
