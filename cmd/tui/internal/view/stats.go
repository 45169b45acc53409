package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

const shareBarWidth = 30

type StatsModel struct {
	svc *ledger.Service

	granularity ledger.Granularity
	stats       ledger.Statistics
	table       table.Model
	err         error
}

func NewStatsModel(svc *ledger.Service) StatsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Period", Width: 12},
			{Title: "Expense", Width: 12},
			{Title: "Income", Width: 12},
			{Title: "Net", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(false)
	t.SetStyles(s)

	m := StatsModel{svc: svc, granularity: ledger.Daily, table: t}
	m.reload()

	return m
}

func (m StatsModel) Title() string     { return "Statistics" }
func (m StatsModel) ShortHelp() string { return "d: daily | m: monthly | Esc: back" }

func (m StatsModel) Init() tea.Cmd {
	return nil
}

func (m *StatsModel) reload() {
	m.stats, m.err = m.svc.Statistics(m.granularity)
	if m.err != nil {
		return
	}

	periods := m.stats.Periods()
	rows := make([]table.Row, 0, len(periods))

	for _, p := range periods {
		expense, income := m.stats.Expense[p], m.stats.Income[p]
		rows = append(rows, table.Row{p, FormatDecimal(expense), FormatDecimal(income), FormatDecimal(income.Sub(expense))})
	}

	m.table.SetRows(rows)
}

func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "d":
			m.granularity = ledger.Daily
			m.reload()

			return m, nil
		case "m":
			m.granularity = ledger.Monthly
			m.reload()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m StatsModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorText(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf("Granularity: %s", activeStyle(string(m.granularity)))

	periods := m.table.View()
	if len(m.stats.Periods()) == 0 {
		periods = lipgloss.NewStyle().Faint(true).Render("No transactions yet.")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(periods)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		"",
		lipgloss.NewStyle().Bold(true).Render("Expenses by category (all time)"),
		categoryShares(m.stats.ByCategory),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func categoryShares(totals ledger.Totals) string {
	total := decimal.Zero
	for _, v := range totals {
		total = total.Add(v)
	}

	if !total.IsPositive() {
		return lipgloss.NewStyle().Faint(true).Render("No expenses yet.")
	}

	var sb strings.Builder

	for _, category := range totals.Keys() {
		share := totals[category].Div(total).InexactFloat64()
		sb.WriteString(fmt.Sprintf("%-14s %s %5.1f%% %12s\n", category, bar(share, shareBarWidth), share*100, FormatDecimal(totals[category])))
	}

	return sb.String()
}
