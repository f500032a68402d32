// Package renderer renders the client views as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/investpro"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"money":  func(m investpro.Money) string { return m.String() },
	"signed": func(m investpro.Money) string { return m.SignedString() },
	"pmoney": func(m *investpro.Money) string {
		if m == nil {
			return "n/a"
		}
		return m.String()
	},
	"pct":        func(d decimal.Decimal) string { return d.StringFixed(2) + "%" },
	"message":    investpro.Message,
	"cell":       cell,
	"polarity":   polarity,
	"polarityOf": investpro.PolarityOf,
	"bars":       bars,
}

func polarity(p investpro.Polarity) string {
	switch p {
	case investpro.Gain:
		return "▲"
	case investpro.Loss:
		return "▼"
	}
	return "="
}

// barWidth is the length of the longest bar of a chart.
const barWidth = 20

// bars draws points as a text bar chart, one line per point, bars scaled to
// the largest absolute value.
func bars(points []investpro.ChartPoint) []string {
	top := decimal.Zero
	width := 0
	for _, p := range points {
		if a := p.Value.Abs(); a.GreaterThan(top) {
			top = a
		}
		width = max(width, len(p.Label))
	}
	lines := make([]string, 0, len(points))
	for _, p := range points {
		n := 0
		if !top.IsZero() {
			n = int(p.Value.Abs().Mul(decimal.NewFromInt(barWidth)).Div(top).Round(0).IntPart())
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %s %s", width, p.Label, polarity(p.Polarity), strings.Repeat("█", n), investpro.M(p.Value).SignedString()))
	}
	return lines
}

// cell escapes s for use in a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// renderTemplate renders mainFile with the given partials, each aliased under
// its map key. An empty partial file yields an empty partial.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			content, err = fs.ReadFile(templates, "templates/"+file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// Dashboard is the account overview.
type Dashboard struct {
	Account  investpro.AccountID
	Summary  *investpro.AccountSummary
	Holdings []investpro.Holding
}

// RenderDashboard renders the summary and the portfolio of an account.
func RenderDashboard(d Dashboard) string {
	partials := map[string]string{
		"summary":  "summary.md",
		"holdings": "holdings.md",
	}
	if d.Summary == nil {
		partials["summary"] = "summary_unavailable.md"
	}
	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

// CashView is a cash operation form with its projection.
type CashView struct {
	Form       investpro.CashForm
	Projection investpro.BalanceProjection
}

// RenderCashProjection renders the balance before and after a cash operation.
func RenderCashProjection(v CashView) string {
	return renderTemplate("cash", "cash.md", map[string]string{"verdict": "verdict.md"}, v)
}

// OrderView is an order form with its projection.
type OrderView struct {
	Form       investpro.OrderForm
	Asset      *investpro.Asset
	Cash       investpro.Money
	Projection investpro.OrderProjection
}

// RenderOrderProjection renders the pricing of an order.
func RenderOrderProjection(v OrderView) string {
	return renderTemplate("order", "order.md", map[string]string{"verdict": "verdict.md"}, v)
}

// Catalog is a filtered view of the asset catalog.
type Catalog struct {
	Filter investpro.AssetFilter
	Assets []investpro.Asset
}

// RenderAssets renders the assets of a catalog view.
func RenderAssets(c Catalog) string {
	return renderTemplate("assets", "assets.md", nil, c)
}

// SectorList is the list of sectors of an asset type.
type SectorList struct {
	Type    investpro.AssetType
	Sectors []string
}

// RenderSectors renders a sector list.
func RenderSectors(l SectorList) string {
	return renderTemplate("sectors", "sectors.md", nil, l)
}

// RenderHistory renders the latest operations of an account.
func RenderHistory(ops []investpro.HistoricalOperation) string {
	return renderTemplate("history", "history.md", map[string]string{"operations": "operations.md"}, ops)
}

// Report is a profit/loss report of a client.
type Report struct {
	CPF    investpro.CPF
	Result investpro.ReportResult
}

// Chart returns the bars of the report.
func (r Report) Chart() []investpro.ChartPoint { return r.Result.Chart() }

// RenderReport renders the totals, the per-asset breakdown and the operations
// of a report.
func RenderReport(r Report) string {
	return renderTemplate("report", "report.md", map[string]string{"operations": "operations.md"}, r)
}

// Simulation is a simulation request with its backend estimate.
type Simulation struct {
	Request investpro.SimulationRequest
	Result  investpro.SimulationResult
}

// RenderSimulation renders an investment simulation.
func RenderSimulation(s Simulation) string {
	return renderTemplate("simulation", "simulation.md", nil, s)
}

// Clients is the advisor panel.
type Clients struct {
	Advisor investpro.CPF
	Clients []investpro.AdvisorClient
}

// RenderClients renders the clients of an advisor.
func RenderClients(c Clients) string {
	return renderTemplate("clients", "clients.md", nil, c)
}

// Team is the manager panel.
type Team struct {
	Manager investpro.CPF
	Members []investpro.TeamMember
}

// RenderTeam renders the advisors and clients of a manager.
func RenderTeam(t Team) string {
	return renderTemplate("team", "team.md", nil, t)
}
