package date

import (
	"fmt"
	"time"
)

// Range is a span of days, both ends included.
type Range struct{ From, To Date }

// NewRange returns the calendar period containing d.
func NewRange(d Date, p Period) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p)}
}

// Contains reports whether d is a day of the range.
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// IsValid reports whether From is not after To.
func (r Range) IsValid() bool { return !r.From.After(r.To) }

// End is the first day after the range, for APIs that take an exclusive
// upper bound.
func (r Range) End() Date { return r.To.Add(1) }

// Days is the number of days in the range, 0 if it is not valid.
func (r Range) Days() int {
	if !r.IsValid() {
		return 0
	}
	return int(r.End().time().Sub(r.From.time()) / (24 * time.Hour))
}

// calendar returns the calendar period the range spans exactly, if any.
func (r Range) calendar() (Period, bool) {
	for _, p := range []Period{Daily, Weekly, Monthly, Quarterly, Yearly} {
		if r == NewRange(r.From, p) {
			return p, true
		}
	}
	return Daily, false
}

// String names calendar periods ("2025-03", "2025-Q1", "2025-W10") and
// prints other ranges as "from to to".
func (r Range) String() string {
	p, ok := r.calendar()
	if !ok {
		return fmt.Sprintf("%s to %s", r.From, r.To)
	}
	switch p {
	case Daily:
		return r.From.String()
	case Weekly:
		y, w := r.From.time().ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	}
	return r.From.Format("2006")
}
