package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type addState int

const (
	addStateForm addState = iota
	addStateResult
)

type AddModel struct {
	svc *ledger.Service
	now func() time.Time

	state  addState
	form   *huh.Form
	input  *addInput
	result string
	err    error
}

type addInput struct {
	amount   string
	kind     ledger.Kind
	category string
	year     string
	month    string
	day      string
	note     string
}

func NewAddModel(svc *ledger.Service) AddModel {
	m := AddModel{svc: svc, now: time.Now}
	m.reset()

	return m
}

func (m *AddModel) reset() {
	today := m.now()

	m.state = addStateForm
	m.result = ""
	m.err = nil
	m.input = &addInput{
		kind:  ledger.KindExpense,
		year:  strconv.Itoa(today.Year()),
		month: strconv.Itoa(int(today.Month())),
		day:   strconv.Itoa(today.Day()),
	}
	m.form = m.buildForm()
}

func (m AddModel) buildForm() *huh.Form {
	categories := m.svc.Categories()
	if len(categories) > 0 {
		m.input.category = categories[0]
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Value(&m.input.amount).
				Validate(func(s string) error {
					d, err := ledger.ParseAmount(s)
					if err != nil {
						return fmt.Errorf("amount must be a number")
					}

					if !d.IsPositive() {
						return ledger.ErrInvalidAmount
					}

					return nil
				}),
			huh.NewSelect[ledger.Kind]().
				Key("kind").
				Title("Kind").
				Options(
					huh.NewOption("Expense", ledger.KindExpense),
					huh.NewOption("Income", ledger.KindIncome),
				).
				Value(&m.input.kind),
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(huh.NewOptions(categories...)...).
				Value(&m.input.category),
		),
		huh.NewGroup(
			huh.NewInput().Key("year").Title("Year").Value(&m.input.year),
			huh.NewInput().Key("month").Title("Month").Value(&m.input.month),
			huh.NewInput().Key("day").Title("Day").Value(&m.input.day),
			huh.NewInput().Key("note").Title("Note").Placeholder("optional").Value(&m.input.note),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m AddModel) Title() string { return "Add Transaction" }

func (m AddModel) ShortHelp() string {
	if m.state == addStateResult {
		return "Enter: add another | Esc: back"
	}

	return "Enter/Tab: next field | Esc: back"
}

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.Type == tea.KeyEsc:
			return m, Back
		case m.state == addStateResult && keyMsg.Type == tea.KeyEnter:
			m.reset()
			return m, m.form.Init()
		}
	}

	if m.state == addStateResult {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = addStateResult

	tx, err := m.submit()
	if err != nil {
		slog.Warn("transaction rejected", "error", err)
		m.err = err

		return m, nil
	}

	slog.Info("transaction added", "id", tx.ID)
	m.result = fmt.Sprintf("Saved %s %s on %s (%s)", tx.Kind, FormatAmount(tx.Amount), tx.Date, tx.Category)

	return m, nil
}

func (m AddModel) submit() (ledger.Transaction, error) {
	amount, err := ledger.ParseAmount(m.input.amount)
	if err != nil {
		return ledger.Transaction{}, err
	}

	return m.svc.Create(ledger.CreateParams{
		Amount:   amount,
		Kind:     m.input.kind,
		Category: m.input.category,
		Year:     m.input.year,
		Month:    m.input.month,
		Day:      m.input.day,
		Note:     m.input.note,
	})
}

func (m AddModel) View() string {
	if m.state == addStateResult {
		msg := okText(m.result)
		if m.err != nil {
			msg = errorText(fmt.Sprintf("Error: %v", m.err))
		}

		return lipgloss.NewStyle().Padding(1).Render(msg)
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}
