package investpro

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SimulationForm is the raw input of an investment simulation.
type SimulationForm struct {
	Ticker        string
	InitialAmount string
	Months        string
}

// SimulationRequest is a validated simulation query.
type SimulationRequest struct {
	Ticker        string `json:"ticker"`
	InitialAmount Money  `json:"valor_inicial"`
	Months        int    `json:"meses"`
}

// SimulationResult is the backend estimate.
type SimulationResult struct {
	EstimatedFinal     Money           `json:"valor_final_estimado"`
	TotalReturnPercent decimal.Decimal `json:"rentabilidade_total_percentual"`
}

// Validate checks the form and returns the request to send. Tickers are
// upper-cased.
func (f SimulationForm) Validate() (SimulationRequest, error) {
	ticker := strings.ToUpper(strings.TrimSpace(f.Ticker))
	if ticker == "" {
		return SimulationRequest{}, invalid("ticker", ErrInvalidTicker)
	}
	amount, err := ParseAmount(f.InitialAmount)
	if err != nil {
		return SimulationRequest{}, err
	}
	months, err := strconv.Atoi(strings.TrimSpace(f.Months))
	if err != nil || months <= 0 {
		return SimulationRequest{}, invalid("months", ErrInvalidMonths)
	}
	return SimulationRequest{Ticker: ticker, InitialAmount: amount, Months: months}, nil
}
