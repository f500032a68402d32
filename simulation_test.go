package investpro

import (
	"errors"
	"testing"
)

func TestSimulationForm_Validate(t *testing.T) {
	got, err := SimulationForm{Ticker: " hglg11 ", InitialAmount: "1000", Months: "12"}.Validate()
	if err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got.Ticker != "HGLG11" || !got.InitialAmount.Equal(M(1000)) || got.Months != 12 {
		t.Errorf("Validate() = %+v", got)
	}

	testCases := []struct {
		name string
		form SimulationForm
		want error
	}{
		{"no ticker", SimulationForm{InitialAmount: "1", Months: "1"}, ErrInvalidTicker},
		{"zero amount", SimulationForm{Ticker: "A", InitialAmount: "0", Months: "1"}, ErrInvalidAmount},
		{"no months", SimulationForm{Ticker: "A", InitialAmount: "1"}, ErrInvalidMonths},
		{"negative months", SimulationForm{Ticker: "A", InitialAmount: "1", Months: "-3"}, ErrInvalidMonths},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.form.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}
