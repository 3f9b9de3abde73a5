package rental

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// isoLayout is the UTC form used when dates are sent back to the backend.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// backendLocalLayout matches LocalDateTime values serialized as strings.
const backendLocalLayout = "2006-01-02T15:04:05"

var errShortDateArray = errors.New("date array needs at least year, month and day")

// Date is a rental timestamp. The backend may send it either as a string or
// as a numeric array; both decode to the same canonical value.
type Date struct {
	time.Time
}

// Valid reports whether the date carries a value.
func (d Date) Valid() bool {
	return !d.IsZero()
}

// ISO returns the date as a UTC ISO-8601 string with millisecond precision,
// or an empty string for a missing date.
func (d Date) ISO() string {
	if !d.Valid() {
		return ""
	}
	return d.UTC().Format(isoLayout)
}

// FromArray converts [year, month, day, hour?, minute?, second?, nanos?] into
// a local time. Month is 1-based; missing trailing components are zero.
func FromArray(parts []int64) (time.Time, error) {
	if len(parts) < 3 {
		return time.Time{}, errShortDateArray
	}
	if len(parts) > 7 {
		return time.Time{}, fmt.Errorf("date array has %d elements, want at most 7", len(parts))
	}
	var fields [7]int64
	copy(fields[:], parts)
	return time.Date(
		int(fields[0]),
		time.Month(fields[1]),
		int(fields[2]),
		int(fields[3]),
		int(fields[4]),
		int(fields[5]),
		int(fields[6]),
		time.Local,
	), nil
}

// ToArray is the inverse of FromArray for a local time.
func ToArray(t time.Time) []int64 {
	local := t.In(time.Local)
	return []int64{
		int64(local.Year()),
		int64(local.Month()),
		int64(local.Day()),
		int64(local.Hour()),
		int64(local.Minute()),
		int64(local.Second()),
		int64(local.Nanosecond()),
	}
}

// ParseDate accepts RFC 3339 strings and the backend's zone-less local
// timestamps. An empty string yields a zero Date.
func ParseDate(value string) (Date, error) {
	if value == "" {
		return Date{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return Date{t}, nil
		}
	}
	for _, layout := range []string{backendLocalLayout + ".999999999", backendLocalLayout, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", value)
}

// MarshalJSON writes the ISO form, or null when empty.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(d.ISO())
}

// UnmarshalJSON normalizes string and array encodings.
func (d *Date) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*d = Date{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var raw []json.Number
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("decode date array: %w", err)
		}
		parts := make([]int64, len(raw))
		for i, n := range raw {
			v, err := n.Int64()
			if err != nil {
				return fmt.Errorf("date array element %d: %w", i, err)
			}
			parts[i] = v
		}
		t, err := FromArray(parts)
		if err != nil {
			return err
		}
		*d = Date{t}
		return nil
	case '"':
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("decode date string: %w", err)
		}
		parsed, err := ParseDate(raw)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("unsupported date encoding %s", trimmed)
	}
}
