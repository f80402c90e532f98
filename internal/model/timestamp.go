package model

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the wire format for every timestamp the API emits.
// Six fractional digits, always UTC, literal Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Timestamp wraps time.Time with the catalog's JSON representation.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns t normalised to UTC and truncated to microseconds,
// which is the precision PostgreSQL stores.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Microsecond)}
}

// String formats the timestamp with TimestampLayout.
func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. RFC 3339 input is accepted as well.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(TimestampLayout, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
	}

	*t = NewTimestamp(parsed)
	return nil
}
