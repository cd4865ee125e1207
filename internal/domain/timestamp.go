package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// zone-less layout written by older tooling (Python isoformat).
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is an ISO-8601 instant. It marshals as RFC 3339 and also reads
// timestamps that carry no zone offset, interpreting them as local time.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTimestamp accepts RFC 3339 or the zone-less ISO-8601 form.
func ParseTimestamp(raw string) (Timestamp, error) {
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return Timestamp{Time: ts}, nil
	}
	ts, err := time.ParseInLocation(naiveLayout, raw, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp %q: %w", raw, err)
	}
	return Timestamp{Time: ts}, nil
}
