package view

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type recordsState int

const (
	recordsStateBrowse recordsState = iota
	recordsStateSearch
	recordsStateConfirm
	recordsStateDetail
)

var kindFilters = []ledger.Kind{"", ledger.KindExpense, ledger.KindIncome}

type RecordsModel struct {
	svc *ledger.Service
	now func() time.Time

	state  recordsState
	table  table.Model
	search textinput.Model
	form   *huh.Form
	txs    []ledger.Transaction

	fieldIdx    int
	kindIdx     int
	categoryIdx int // 0 means all categories
	timeframe   Timeframe

	marked  map[string]bool
	confirm *bool
	status  string
}

func NewRecordsModel(svc *ledger.Service) RecordsModel {
	columns := []table.Column{
		{Title: " ", Width: 2},
		{Title: "Date", Width: 12},
		{Title: "Kind", Width: 8},
		{Title: "Category", Width: 14},
		{Title: "Amount", Width: 12},
		{Title: "Note", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "search"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	m := RecordsModel{
		svc:    svc,
		now:    time.Now,
		table:  t,
		search: ti,
		marked: make(map[string]bool),
	}
	m.reload()

	return m
}

func (m RecordsModel) Title() string { return "Records" }

func (m RecordsModel) ShortHelp() string {
	switch m.state {
	case recordsStateSearch:
		return "Type to search | Tab: field | Enter/Esc: done"
	case recordsStateConfirm:
		return "y/n: confirm delete"
	case recordsStateDetail:
		return "Esc/Enter: close"
	}

	return "/: search | Tab: field | k: kind | c: category | t: period | x: mark | D: delete marked | Enter: details | Esc: back"
}

func (m RecordsModel) Init() tea.Cmd {
	return nil
}

func (m RecordsModel) criteria() ledger.Criteria {
	c := ledger.Criteria{
		Term:  strings.TrimSpace(m.search.Value()),
		Field: ledger.SearchFields[m.fieldIdx],
		Kind:  kindFilters[m.kindIdx],
	}

	if categories := m.svc.Categories(); m.categoryIdx > 0 && m.categoryIdx <= len(categories) {
		c.Category = categories[m.categoryIdx-1]
	}

	c.StartDate, c.EndDate = m.timeframe.Range(m.now())

	return c
}

// reload re-runs the query and drops marks on rows that disappeared.
func (m *RecordsModel) reload() {
	m.txs = m.svc.Recent(m.criteria())

	visible := make(map[string]bool, len(m.txs))
	for _, tx := range m.txs {
		visible[tx.ID] = true
	}

	for id := range m.marked {
		if !visible[id] {
			delete(m.marked, id)
		}
	}

	m.refreshTable()
}

func (m *RecordsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		mark := ""
		if m.marked[tx.ID] {
			mark = "✓"
		}

		rows = append(rows, table.Row{
			mark,
			tx.Date,
			string(tx.Kind),
			tx.Category,
			FormatAmount(tx.Amount),
			tx.Note,
		})
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m RecordsModel) selected() (ledger.Transaction, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return ledger.Transaction{}, false
	}

	return m.txs[idx], true
}

func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.table.SetHeight(max(size.Height-12, 5))
		return m, nil
	}

	switch m.state {
	case recordsStateSearch:
		return m.updateSearch(msg)
	case recordsStateConfirm:
		return m.updateConfirm(msg)
	case recordsStateDetail:
		return m.updateDetail(msg)
	}

	return m.updateBrowse(msg)
}

func (m RecordsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		m.status = ""

		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "/":
			m.state = recordsStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "tab":
			m.fieldIdx = (m.fieldIdx + 1) % len(ledger.SearchFields)
			m.reload()

			return m, nil
		case "k":
			m.kindIdx = (m.kindIdx + 1) % len(kindFilters)
			m.reload()

			return m, nil
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % (len(m.svc.Categories()) + 1)
			m.reload()

			return m, nil
		case "t":
			m.timeframe = m.timeframe.Next()
			m.reload()

			return m, nil
		case "r":
			m.reload()
			return m, nil
		case "x":
			if tx, ok := m.selected(); ok {
				m.marked[tx.ID] = !m.marked[tx.ID]
				if !m.marked[tx.ID] {
					delete(m.marked, tx.ID)
				}

				m.refreshTable()
			}

			return m, nil
		case "D":
			return m.enterConfirm()
		case "enter":
			if _, ok := m.selected(); ok {
				m.state = recordsStateDetail
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RecordsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.state = recordsStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyTab:
			m.fieldIdx = (m.fieldIdx + 1) % len(ledger.SearchFields)
			m.reload()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.reload()

	return m, cmd
}

func (m RecordsModel) enterConfirm() (tea.Model, tea.Cmd) {
	if len(m.marked) == 0 {
		m.status = "Mark rows with x first."
		return m, nil
	}

	m.confirm = new(false)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %d marked transaction(s)?", len(m.marked))).
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = recordsStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

func (m RecordsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.leaveConfirm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if *m.confirm {
		ids := make([]string, 0, len(m.marked))
		for id := range m.marked {
			ids = append(ids, id)
		}

		n := m.svc.Delete(ids...)
		slog.Info("transactions deleted", "count", n)

		m.marked = make(map[string]bool)
		m.status = fmt.Sprintf("Deleted %d transaction(s).", n)
	}

	m = m.leaveConfirm()
	m.reload()

	return m, nil
}

func (m RecordsModel) leaveConfirm() RecordsModel {
	m.state = recordsStateBrowse
	m.form = nil
	m.confirm = nil
	m.table.Focus()

	return m
}

func (m RecordsModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.state = recordsStateBrowse
		}
	}

	return m, nil
}

func (m RecordsModel) View() string {
	categoryLabel := "All"
	if c := m.criteria().Category; c != "" {
		categoryLabel = c
	}

	kindLabel := "All"
	if k := kindFilters[m.kindIdx]; k != "" {
		kindLabel = string(k)
	}

	header := fmt.Sprintf(
		"Field: %s | [k] Kind: %s | [c] Category: %s | [t] Period: %s | %d shown, %d marked",
		activeStyle(ledger.SearchFields[m.fieldIdx].String()),
		activeStyle(kindLabel),
		activeStyle(categoryLabel),
		activeStyle(m.timeframe.String()),
		len(m.txs),
		len(m.marked),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.search.View(),
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch m.state {
	case recordsStateConfirm:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(m.form.View()))
	case recordsStateDetail:
		if tx, ok := m.selected(); ok {
			content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(detail(tx)))
		}
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func detail(tx ledger.Transaction) string {
	note := tx.Note
	if note == "" {
		note = "-"
	}

	return strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render("Transaction"),
		"",
		"ID:       " + tx.ID,
		"Date:     " + tx.Date,
		"Kind:     " + FormatKind(tx.Kind),
		"Category: " + tx.Category,
		"Amount:   " + FormatAmount(tx.Amount),
		"Note:     " + note,
	}, "\n")
}
