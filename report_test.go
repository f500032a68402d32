package investpro

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/etnz/investpro/date"
	"github.com/google/go-cmp/cmp"
)

var year2025 = date.Range{From: date.New(2025, time.January, 1), To: date.New(2025, time.December, 31)}

func op(day int, ticker string, flow float64) HistoricalOperation {
	kind := "COMPRA"
	if flow > 0 {
		kind = "VENDA"
	}
	return HistoricalOperation{
		Time:      Timestamp{time.Date(2025, time.March, day, 10, 0, 0, 0, time.UTC)},
		Type:      kind,
		Ticker:    ticker,
		AssetName: ticker + " SA",
		CashFlow:  M(flow),
	}
}

// compare Money by value, as decimals with different exponents are equal.
var moneyComparer = cmp.Comparer(func(a, b Money) bool { return a.Equal(b) })

func TestAggregate(t *testing.T) {
	ops := []HistoricalOperation{op(1, "PETR4", -300), op(2, "PETR4", 500), op(3, "VALE3", -100)}

	got := Aggregate(ops, year2025)

	want := []AssetProfitLoss{
		{Ticker: "PETR4", AssetName: "PETR4 SA", ProfitLoss: M(200)},
		{Ticker: "VALE3", AssetName: "VALE3 SA", ProfitLoss: M(-100)},
	}
	if diff := cmp.Diff(want, got.PerAsset, moneyComparer); diff != "" {
		t.Errorf("Aggregate() per asset mismatch (-want +got):\n%s", diff)
	}
	if !got.Total.Equal(M(100)) {
		t.Errorf("Aggregate() total = %v, want 100", got.Total)
	}
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	ops := []HistoricalOperation{op(1, "VALE3", -1), op(2, "ABEV3", 5), op(3, "VALE3", 2), op(4, "ITUB4", 0)}
	got := Aggregate(ops, year2025)
	var order []string
	for _, a := range got.PerAsset {
		order = append(order, a.Ticker)
	}
	if diff := cmp.Diff([]string{"VALE3", "ABEV3", "ITUB4"}, order); diff != "" {
		t.Errorf("Aggregate() order mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_Empty(t *testing.T) {
	for _, ops := range [][]HistoricalOperation{nil, {}} {
		got := Aggregate(ops, year2025)
		if !got.Total.IsZero() {
			t.Errorf("Aggregate(empty) total = %v", got.Total)
		}
		if got.PerAsset == nil || len(got.PerAsset) != 0 {
			t.Errorf("Aggregate(empty) per asset = %#v, want an empty list", got.PerAsset)
		}
	}
}

func TestAggregate_IgnoresOperationsOutsidePeriod(t *testing.T) {
	march := date.NewRange(date.New(2025, time.March, 1), date.Monthly)
	outside := op(1, "PETR4", 1000)
	outside.Time = Timestamp{time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)}
	got := Aggregate([]HistoricalOperation{op(1, "PETR4", -300), outside}, march)
	if !got.Total.Equal(M(-300)) {
		t.Errorf("Aggregate() total = %v, want -300", got.Total)
	}
	if len(got.History) != 1 {
		t.Errorf("Aggregate() history = %d operations, want 1", len(got.History))
	}
}

// Aggregate is pure: running it twice yields the same result and the total
// equals both the sum of per asset figures and the sum of all cash flows.
func TestAggregate_Laws(t *testing.T) {
	ops := []HistoricalOperation{
		op(1, "PETR4", -300.10), op(2, "VALE3", -99.99), op(3, "PETR4", 500.05),
		op(4, "HGLG11", -160), op(5, "VALE3", 120.3), op(6, "HGLG11", 0.01),
	}
	snapshot := append([]HistoricalOperation(nil), ops...)

	first := Aggregate(ops, year2025)
	second := Aggregate(ops, year2025)
	if diff := cmp.Diff(first, second, moneyComparer, cmp.AllowUnexported(date.Date{})); diff != "" {
		t.Errorf("Aggregate() is not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(snapshot, ops, moneyComparer); diff != "" {
		t.Errorf("Aggregate() modified its input:\n%s", diff)
	}

	var perAsset, flows Money
	for _, a := range first.PerAsset {
		perAsset = perAsset.Add(a.ProfitLoss)
	}
	for _, o := range ops {
		flows = flows.Add(o.CashFlow)
	}
	if !first.Total.Equal(perAsset) || !first.Total.Equal(flows) {
		t.Errorf("total %v, sum per asset %v, sum of flows %v", first.Total, perAsset, flows)
	}
}

func TestReportResult_Reconcile(t *testing.T) {
	res := Aggregate([]HistoricalOperation{op(1, "PETR4", 10)}, year2025)
	if err := res.Reconcile(M(10)); err != nil {
		t.Errorf("Reconcile(10) = %v", err)
	}
	if err := res.Reconcile(M(11)); err == nil {
		t.Errorf("Reconcile(11) should fail")
	}
}

func TestPolarityOf(t *testing.T) {
	testCases := []struct {
		in   Money
		want Polarity
	}{
		{M(0.01), Gain},
		{M(-0.01), Loss},
		{M(0), Flat},
		{Money{}, Flat},
	}
	for _, tc := range testCases {
		if got := PolarityOf(tc.in); got != tc.want {
			t.Errorf("PolarityOf(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestReportResult_Chart(t *testing.T) {
	res := Aggregate([]HistoricalOperation{op(1, "PETR4", 200), op(2, "VALE3", -100), op(3, "ITUB4", 0)}, year2025)
	got := res.Chart()
	want := []Polarity{Gain, Loss, Flat}
	if len(got) != len(want) {
		t.Fatalf("Chart() = %d points, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.Label != res.PerAsset[i].Ticker || p.Polarity != want[i] || !p.Value.Equal(res.PerAsset[i].ProfitLoss.Decimal()) {
			t.Errorf("Chart()[%d] = %+v", i, p)
		}
	}
}

func TestValidatePeriod(t *testing.T) {
	from, to := date.New(2025, time.January, 1), date.New(2025, time.December, 31)
	if _, err := ValidatePeriod(from, to); err != nil {
		t.Errorf("ValidatePeriod() = %v", err)
	}
	if _, err := ValidatePeriod(from, from); err != nil {
		t.Errorf("ValidatePeriod(same day) = %v", err)
	}
	_, err := ValidatePeriod(to, from)
	if !errors.Is(err, ErrInvalidPeriod) || !IsValidation(err) {
		t.Errorf("ValidatePeriod(reversed) = %v", err)
	}
}

func TestBackendReport_JSON(t *testing.T) {
	payload := `{
		"total": 100.0,
		"detalhado_por_ativo": [{"ticker": "PETR4", "nome_ativo": "Petrobras", "lucro_prejuizo": 200.0}],
		"historico_operacoes": [
			{"data_hora": "2025-03-10T14:22:00", "tipo_op": "COMPRA", "ticker": "PETR4", "nome_ativo": "Petrobras", "quantidade": 10, "preco_exec": 30.0, "fluxo_caixa": -300.0},
			{"data_hora": "2025-03-11T09:00:00.123456", "tipo_op": "VENDA", "ticker": "PETR4", "nome_ativo": "Petrobras", "quantidade": 10, "preco_exec": 50.0, "fluxo_caixa": 500.0}
		]
	}`
	var got BackendReport
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(got.History) != 2 || got.History[0].Time.Day() != date.New(2025, time.March, 10) {
		t.Fatalf("Unmarshal() history = %+v", got.History)
	}
	res := Aggregate(got.History, year2025)
	if err := res.Reconcile(M(200)); err != nil {
		t.Errorf("Reconcile() = %v", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	for _, in := range []string{"2025-03-10T14:22:00", "2025-03-10 14:22:00", "2025-03-10T14:22:00Z", "2025-03-10T14:22:00-03:00", "2025-03-10"} {
		ts, err := ParseTimestamp(in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) = %v", in, err)
			continue
		}
		if ts.Day() != date.New(2025, time.March, 10) {
			t.Errorf("ParseTimestamp(%q).Day() = %v", in, ts.Day())
		}
	}
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Errorf("ParseTimestamp(yesterday) should fail")
	}
}
