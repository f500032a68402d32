package investpro

import (
	"fmt"

	"github.com/etnz/investpro/date"
	"github.com/shopspring/decimal"
)

// HistoricalOperation is an executed order. CashFlow is negative for money
// leaving the account (buys) and positive for money entering it (sells).
type HistoricalOperation struct {
	Time           Timestamp `json:"data_hora"`
	Type           string    `json:"tipo_op"`
	Ticker         string    `json:"ticker"`
	AssetName      string    `json:"nome_ativo"`
	Quantity       int64     `json:"quantidade"`
	ExecutionPrice Money     `json:"preco_exec"`
	CashFlow       Money     `json:"fluxo_caixa"`
}

// AssetProfitLoss is the profit or loss of one asset over a period.
type AssetProfitLoss struct {
	Ticker     string `json:"ticker"`
	AssetName  string `json:"nome_ativo"`
	ProfitLoss Money  `json:"lucro_prejuizo"`
}

// BackendReport is the report as computed by the backend. The client
// re-aggregates History and uses Total only as a consistency check.
type BackendReport struct {
	Total    Money                 `json:"total"`
	PerAsset []AssetProfitLoss     `json:"detalhado_por_ativo"`
	History  []HistoricalOperation `json:"historico_operacoes"`
}

// ReportResult is the profit/loss report of a period.
type ReportResult struct {
	Period   date.Range
	Total    Money
	PerAsset []AssetProfitLoss
	History  []HistoricalOperation // operations of the period, input order
}

// ValidatePeriod returns the report range from..to, or a *ValidationError if
// from is after to.
func ValidatePeriod(from, to date.Date) (date.Range, error) {
	r := date.Range{From: from, To: to}
	if from.IsZero() || to.IsZero() || !r.IsValid() {
		return r, invalid("period", ErrInvalidPeriod)
	}
	return r, nil
}

// Aggregate reduces the operations of period into per-asset and total
// profit/loss. Assets appear in the order their ticker is first seen in ops.
// Operations outside period are ignored. The function is pure: ops is not
// modified and the same input always yields the same result.
func Aggregate(ops []HistoricalOperation, period date.Range) ReportResult {
	res := ReportResult{
		Period:   period,
		PerAsset: []AssetProfitLoss{},
		History:  []HistoricalOperation{},
	}
	index := make(map[string]int)
	for _, op := range ops {
		if !period.Contains(op.Time.Day()) {
			continue
		}
		res.History = append(res.History, op)
		i, ok := index[op.Ticker]
		if !ok {
			i = len(res.PerAsset)
			index[op.Ticker] = i
			res.PerAsset = append(res.PerAsset, AssetProfitLoss{Ticker: op.Ticker, AssetName: op.AssetName})
		}
		res.PerAsset[i].ProfitLoss = res.PerAsset[i].ProfitLoss.Add(op.CashFlow)
	}
	for _, a := range res.PerAsset {
		res.Total = res.Total.Add(a.ProfitLoss)
	}
	return res
}

// Reconcile checks the aggregated total against the backend's total.
func (r ReportResult) Reconcile(backendTotal Money) error {
	if !r.Total.Equal(backendTotal) {
		return fmt.Errorf("aggregated total %s differs from backend total %s", r.Total, backendTotal)
	}
	return nil
}

// Polarity classifies an amount for display: gains, losses and break-even
// each get a fixed visual treatment.
type Polarity int

const (
	Flat Polarity = iota
	Gain
	Loss
)

func (p Polarity) String() string {
	switch p {
	case Gain:
		return "gain"
	case Loss:
		return "loss"
	default:
		return "flat"
	}
}

// PolarityOf returns Gain for m > 0, Loss for m < 0 and Flat for zero.
func PolarityOf(m Money) Polarity {
	switch {
	case m.IsPositive():
		return Gain
	case m.IsNegative():
		return Loss
	default:
		return Flat
	}
}

// ChartPoint is one bar of the profit/loss chart.
type ChartPoint struct {
	Label    string
	Value    decimal.Decimal
	Polarity Polarity
}

// Chart returns the per-asset profit/loss as a chart series, in report order.
func (r ReportResult) Chart() []ChartPoint {
	points := make([]ChartPoint, 0, len(r.PerAsset))
	for _, a := range r.PerAsset {
		points = append(points, ChartPoint{
			Label:    a.Ticker,
			Value:    a.ProfitLoss.Decimal(),
			Polarity: PolarityOf(a.ProfitLoss),
		})
	}
	return points
}
