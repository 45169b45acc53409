package view

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type BudgetModel struct {
	svc *ledger.Service

	summary ledger.MonthSummary
	budget  ledger.Budget
	editing bool
	form    *huh.Form
	amount  *string
	status  string
}

func NewBudgetModel(svc *ledger.Service) BudgetModel {
	m := BudgetModel{svc: svc}
	m.reload()

	return m
}

func (m BudgetModel) Title() string { return "Budget" }

func (m BudgetModel) ShortHelp() string {
	if m.editing {
		return "Enter: save | Esc: cancel"
	}

	return "e: edit budget | Esc: back"
}

func (m BudgetModel) Init() tea.Cmd {
	return nil
}

func (m *BudgetModel) reload() {
	m.budget = m.svc.Budget()
	m.summary = m.svc.MonthSummary()
}

func (m BudgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "e":
			m.status = ""
			m.amount = new(FormatAmount(m.budget.Amount))
			m.form = huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Key("amount").
						Title("Monthly budget").
						Value(m.amount).
						Validate(func(s string) error {
							d, err := ledger.ParseAmount(s)
							if err != nil {
								return fmt.Errorf("budget must be a number")
							}

							if d.IsNegative() {
								return ledger.ErrNegativeBudget
							}

							return nil
						}),
				),
			).WithWidth(40).WithShowHelp(false)
			m.editing = true

			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m BudgetModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.editing = false
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.editing = false
	m.form = nil

	amount, err := ledger.ParseAmount(*m.amount)
	if err == nil {
		err = m.svc.SetBudget(amount)
	}

	if err != nil {
		m.status = errorText(fmt.Sprintf("Error: %v", err))
		return m, nil
	}

	slog.Info("budget updated", "amount", amount.String())
	m.status = okText("Budget updated.")
	m.reload()

	return m, nil
}

func (m BudgetModel) View() string {
	balance := FormatDecimal(m.summary.Balance)
	if m.summary.Overspent() {
		balance = errorText(balance + "  over budget")
	} else {
		balance = okText(balance)
	}

	lines := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("Budget for "+m.summary.Month),
		"",
		fmt.Sprintf("Budget:   %s (%s)", FormatAmount(m.budget.Amount), m.budget.Period),
		fmt.Sprintf("Expense:  %s", FormatDecimal(m.summary.Expense)),
		fmt.Sprintf("Income:   %s", FormatDecimal(m.summary.Income)),
		fmt.Sprintf("Balance:  %s", balance),
	)

	content := panel(lines)

	if m.editing && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
