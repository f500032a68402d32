package investpro

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// AccountID identifies an investment account on the backend.
type AccountID int64

func (id AccountID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseAccountID parses a positive account number.
func ParseAccountID(s string) (AccountID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid account %q", s)
	}
	return AccountID(n), nil
}

// CPF is a Brazilian taxpayer number, stored as its 11 digits.
type CPF string

// ParseCPF strips punctuation from s and checks that 11 digits remain.
func ParseCPF(s string) (CPF, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if len(digits) != 11 {
		return "", invalid("cpf", ErrInvalidCPF)
	}
	return CPF(digits), nil
}

// String formats the CPF as 000.000.000-00.
func (c CPF) String() string {
	if len(c) != 11 {
		return string(c)
	}
	return string(c[0:3]) + "." + string(c[3:6]) + "." + string(c[6:9]) + "-" + string(c[9:11])
}

// Profile is the role a user logs in with.
type Profile string

const (
	Client  Profile = "cliente"
	Advisor Profile = "assessor"
	Manager Profile = "gerente"
)

// ParseProfile accepts the wire names and their English equivalents.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cliente", "client":
		return Client, nil
	case "assessor", "advisor":
		return Advisor, nil
	case "gerente", "manager":
		return Manager, nil
	default:
		return "", invalid("profile", fmt.Errorf("unknown profile %q", s))
	}
}

// AccountSummary is the backend's snapshot of an account. Equity is expected
// to be Cash + Invested; the client never recomputes it.
type AccountSummary struct {
	Cash     Money `json:"saldo_dinheiro"`
	Invested Money `json:"valor_investido"`
	Equity   Money `json:"patrimonio_total"`
}

// Holding is one position of the account portfolio.
type Holding struct {
	Ticker      string          `json:"ticker"`
	Name        string          `json:"nome_ativo"`
	Sector      string          `json:"setor"`
	Quantity    int64           `json:"quantidade"`
	AverageCost Money           `json:"preco_med_aquis"`
	Price       Money           `json:"preco_atual"`
	Gain        Money           `json:"valorizacao_absoluta"`
	GainPercent decimal.Decimal `json:"valorizacao_percentual"`
}

// AdvisorClient is a row of the advisor panel.
type AdvisorClient struct {
	Name     string `json:"nome_cliente"`
	CPF      CPF    `json:"cpf_cliente"`
	Cash     Money  `json:"saldo_disponivel"`
	Invested Money  `json:"valor_investido"`
	Equity   Money  `json:"patrimonio_total"`
}

// TeamMember is a row of the manager panel: an advisor and one of their clients.
type TeamMember struct {
	AdvisorName string `json:"nome_assessor"`
	AdvisorCPF  CPF    `json:"cpf_assessor"`
	ClientName  string `json:"nome_cliente"`
	ClientCPF   CPF    `json:"cpf_cliente"`
}

// Confirmation is the backend acknowledgement of a mutation.
type Confirmation struct {
	Message string `json:"message"`
}
