package investpro

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/investpro/date"
)

// layouts accepted for backend timestamps, most specific first. The backend
// serializes naive datetimes, which are read in UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	date.DateFormat,
}

// Timestamp is an instant as sent by the backend.
type Timestamp struct{ time.Time }

// ParseTimestamp parses any of the layouts the backend is known to produce.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

// Day returns the calendar day of the timestamp.
func (t Timestamp) Day() date.Date { return date.FromTime(t.Time) }

func (t Timestamp) String() string { return t.Format("2006-01-02 15:04") }

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	ts, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format("2006-01-02T15:04:05"))
}
