package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/store"
	"github.com/MrJamesThe3rd/tally/internal/logging"
)

type model struct {
	appName       string
	ledgerService *ledger.Service
	exportService *export.Service
	parser        importer.Importer
	user          ledger.User
	loadWarning   string

	currentView View

	loginView   view.LoginModel
	addView     view.AddModel
	recordsView view.RecordsModel
	statsView   view.StatsModel
	budgetView  view.BudgetModel
	importView  view.ImportModel
	exportView  view.ExportModel
}

type View int

const (
	ViewLogin   View = 0
	ViewMenu    View = 1
	ViewAdd     View = 2
	ViewRecords View = 3
	ViewStats   View = 4
	ViewBudget  View = 5
	ViewImport  View = 6
	ViewExport  View = 7
)

func initialModel() (model, func()) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.Log.File, "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(logFile, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)

	budget, err := cfg.DefaultBudgetAmount()
	if err != nil {
		slog.Error("invalid default budget", "error", err)
		os.Exit(1)
	}

	st := store.New(cfg.Data.File,
		store.WithLogger(logger),
		store.WithDefaultBudget(ledger.NewAmount(budget)),
		store.WithAdmin(ledger.User{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
			Role:     ledger.RoleAdministrator,
		}),
	)

	var warning string
	if res := st.Load(); res.Err != nil {
		warning = fmt.Sprintf("Warning: could not use %s (%v). Running with in-memory data.", st.Path(), res.Err)
	}

	ledgerSvc := ledger.NewService(st)
	exportSvc := export.NewService(ledgerSvc)
	parser := importer.NewParser()

	m := model{
		appName:       cfg.App.Name,
		ledgerService: ledgerSvc,
		exportService: exportSvc,
		parser:        parser,
		loadWarning:   warning,
		currentView:   ViewLogin,
		loginView:     view.NewLoginModel(ledgerSvc),
	}

	return m, func() { _ = logFile.Close() }
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.ledgerService)

				return m, m.addView.Init()
			case "2":
				m.currentView = ViewRecords
				m.recordsView = view.NewRecordsModel(m.ledgerService)

				return m, m.recordsView.Init()
			case "3":
				m.currentView = ViewStats
				m.statsView = view.NewStatsModel(m.ledgerService)

				return m, m.statsView.Init()
			case "4":
				m.currentView = ViewBudget
				m.budgetView = view.NewBudgetModel(m.ledgerService)

				return m, m.budgetView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.ledgerService, m.parser)

				return m, m.importView.Init()
			case "6":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.ledgerService)

				return m, m.exportView.Init()
			}
		}
	case view.LoggedInMsg:
		m.user = msg.User
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewRecords:
		var newModel tea.Model
		newModel, cmd = m.recordsView.Update(msg)
		m.recordsView = newModel.(view.RecordsModel)
	case ViewStats:
		var newModel tea.Model
		newModel, cmd = m.statsView.Update(msg)
		m.statsView = newModel.(view.StatsModel)
	case ViewBudget:
		var newModel tea.Model
		newModel, cmd = m.budgetView.Update(msg)
		m.budgetView = newModel.(view.BudgetModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) current() view.View {
	switch m.currentView {
	case ViewLogin:
		return m.loginView
	case ViewAdd:
		return m.addView
	case ViewRecords:
		return m.recordsView
	case ViewStats:
		return m.statsView
	case ViewBudget:
		return m.budgetView
	case ViewImport:
		return m.importView
	case ViewExport:
		return m.exportView
	}

	return nil
}

func (m model) View() string {
	if m.currentView == ViewMenu {
		menu := fmt.Sprintf("%s - logged in as %s (%s)\n\n", m.appName, m.user.Username, m.user.Role) +
			"1. Add Transaction\n" +
			"2. Records\n" +
			"3. Statistics\n" +
			"4. Budget\n" +
			"5. Import CSV\n" +
			"6. Export CSV\n\n" +
			"q. Quit"

		if m.loadWarning != "" {
			menu = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.loadWarning) + "\n\n" + menu
		}

		return lipgloss.NewStyle().Padding(2).Render(menu)
	}

	v := m.current()
	if v == nil {
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).Render(v.ShortHelp())
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Render(v.Title())

	return lipgloss.JoinVertical(lipgloss.Left, title, v.View(), help)
}

func main() {
	m, closeLog := initialModel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		closeLog()
		os.Exit(1)
	}

	closeLog()
}
