package date

import (
	"testing"
	"time"
)

func TestRange_Contains(t *testing.T) {
	r := Range{From: New(2025, time.January, 1), To: New(2025, time.January, 31)}
	testCases := []struct {
		on   Date
		want bool
	}{
		{New(2024, time.December, 31), false},
		{New(2025, time.January, 1), true},
		{New(2025, time.January, 15), true},
		{New(2025, time.January, 31), true},
		{New(2025, time.February, 1), false},
	}
	for _, tc := range testCases {
		if got := r.Contains(tc.on); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.on, got, tc.want)
		}
	}
}

func TestRange_Bounds(t *testing.T) {
	d := New(2025, time.May, 5)
	single := Range{From: d, To: d}
	if !single.IsValid() {
		t.Error("single day range should be valid")
	}
	if got := single.Days(); got != 1 {
		t.Errorf("Days() = %d, want 1", got)
	}
	if got := single.End(); got != New(2025, time.May, 6) {
		t.Errorf("End() = %v, want 2025-05-06", got)
	}

	reversed := Range{From: d.Add(1), To: d}
	if reversed.IsValid() {
		t.Error("reversed range should be invalid")
	}
	if got := reversed.Days(); got != 0 {
		t.Errorf("Days() of a reversed range = %d, want 0", got)
	}

	year := NewRange(New(2024, time.June, 1), Yearly)
	if got := year.Days(); got != 366 {
		t.Errorf("Days() of 2024 = %d, want 366", got)
	}
	if got := year.End(); got != New(2025, time.January, 1) {
		t.Errorf("End() of 2024 = %v", got)
	}
}

func TestRange_String(t *testing.T) {
	testCases := []struct {
		name string
		in   Range
		want string
	}{
		{"Daily", NewRange(New(2025, time.September, 8), Daily), "2025-09-08"},
		{"Weekly", NewRange(New(2025, time.September, 10), Weekly), "2025-W37"},
		{"Monthly", NewRange(New(2025, time.September, 14), Monthly), "2025-09"},
		{"Quarterly", NewRange(New(2025, time.August, 1), Quarterly), "2025-Q3"},
		{"Yearly", NewRange(New(2025, time.March, 1), Yearly), "2025"},
		{"Custom", Range{From: New(2025, time.September, 2), To: New(2025, time.September, 10)}, "2025-09-02 to 2025-09-10"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"day", Daily, false},
		{"Semana", Weekly, false},
		{"monthly", Monthly, false},
		{"mês", Monthly, false},
		{"trimestre", Quarterly, false},
		{"YEAR", Yearly, false},
		{"fortnight", Daily, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePeriod(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParsePeriod() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParsePeriod() = %v, want %v", got, tc.want)
			}
		})
	}
}
