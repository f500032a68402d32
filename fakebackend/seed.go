package fakebackend

import (
	"time"

	"github.com/etnz/investpro"
	"github.com/shopspring/decimal"
)

// Seeded identities.
const (
	ManagerCPF  investpro.CPF = "90000000001"
	AdvisorCPF  investpro.CPF = "80000000001"
	Advisor2CPF investpro.CPF = "80000000002"
	AnaCPF      investpro.CPF = "11122233344"
	BrunoCPF    investpro.CPF = "22233344455"
	CarlaCPF    investpro.CPF = "33344455566"

	AnaAccount   investpro.AccountID = 1
	BrunoAccount investpro.AccountID = 2
	CarlaAccount investpro.AccountID = 3
)

func price(s string) *investpro.Money {
	m := investpro.M(decimal.RequireFromString(s))
	return &m
}

// Seed returns a ledger with a small catalog, one manager, two advisors and
// three clients. A nil now uses time.Now.
func Seed(now func() time.Time) *Ledger {
	l := NewLedger(now)
	for _, a := range []investpro.Asset{
		{Ticker: "PETR4", Name: "Petrobras PN", Type: investpro.Stock, Sector: "Petróleo e Gás", Price: price("38.50")},
		{Ticker: "VALE3", Name: "Vale ON", Type: investpro.Stock, Sector: "Mineração", Price: price("61.20")},
		{Ticker: "ITUB4", Name: "Itaú Unibanco PN", Type: investpro.Stock, Sector: "Financeiro", Price: price("33.10")},
		{Ticker: "BBAS3", Name: "Banco do Brasil ON", Type: investpro.Stock, Sector: "Financeiro", Price: price("27.80")},
		{Ticker: "HGLG11", Name: "CSHG Logística", Type: investpro.REIT, Sector: "Logística", Price: price("160.00")},
		{Ticker: "KNRI11", Name: "Kinea Renda Imobiliária", Type: investpro.REIT, Sector: "Híbrido", Price: price("140.50")},
		{Ticker: "XPML11", Name: "XP Malls", Type: investpro.REIT, Sector: "Shoppings", Price: price("110.25")},
		{Ticker: "VALE29", Name: "Vale Debênture 2029", Type: investpro.Bond, Sector: "Debênture", Price: price("1000.00")},
		{Ticker: "PETR26", Name: "Petrobras Debênture 2026", Type: investpro.Bond, Sector: "Debênture"},
	} {
		l.AddAsset(a)
	}

	l.AddManager("Marina Gerente", ManagerCPF)
	l.AddAdvisor(Advisor{Name: "Paulo Assessor", CPF: AdvisorCPF, Manager: ManagerCPF})
	l.AddAdvisor(Advisor{Name: "Renata Assessora", CPF: Advisor2CPF, Manager: ManagerCPF})

	l.AddClient(Client{Name: "Ana Souza", CPF: AnaCPF, Account: AnaAccount, Advisor: AdvisorCPF, Cash: decimal.NewFromInt(10000)})
	l.AddClient(Client{Name: "Bruno Lima", CPF: BrunoCPF, Account: BrunoAccount, Advisor: AdvisorCPF, Cash: decimal.NewFromInt(2500)})
	l.AddClient(Client{Name: "Carla Dias", CPF: CarlaCPF, Account: CarlaAccount, Advisor: Advisor2CPF, Cash: decimal.Zero})
	return l
}
