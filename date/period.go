package date

import (
	"fmt"
	"strings"
)

// Period is a calendar period a report can cover.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

var periodNames = [...]string{"day", "week", "month", "quarter", "year"}

func (p Period) String() string {
	if p < Daily || p > Yearly {
		return fmt.Sprintf("Period(%d)", int(p))
	}
	return periodNames[p]
}

// ParsePeriod parses a period name. English and Portuguese names are
// accepted, as well as the adjectives ("monthly", "mensal").
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "daily", "dia", "diario", "diário":
		return Daily, nil
	case "week", "weekly", "semana", "semanal":
		return Weekly, nil
	case "month", "monthly", "mes", "mês", "mensal":
		return Monthly, nil
	case "quarter", "quarterly", "trimestre", "trimestral":
		return Quarterly, nil
	case "year", "yearly", "ano", "anual":
		return Yearly, nil
	}
	return Daily, fmt.Errorf("unknown period %q", s)
}
