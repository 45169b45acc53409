package view

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// LoggedInMsg is sent once the credentials are accepted.
type LoggedInMsg struct {
	User ledger.User
}

type LoginModel struct {
	svc *ledger.Service

	form *huh.Form
	err  error

	// Form bindings live behind a pointer so copies of the model share them.
	input *credentials
}

type credentials struct {
	username string
	password string
}

func NewLoginModel(svc *ledger.Service) LoginModel {
	m := LoginModel{svc: svc, input: &credentials{}}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.input.username),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.input.password),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m LoginModel) Title() string     { return "Login" }
func (m LoginModel) ShortHelp() string { return "Enter: next | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	user, err := m.svc.Authenticate(m.input.username, m.input.password)
	if err != nil {
		slog.Warn("login failed", "username", m.input.username)

		m.err = err
		m.input.password = ""
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	slog.Info("login succeeded", "username", user.Username)

	return m, func() tea.Msg { return LoggedInMsg{User: user} }
}

func (m LoginModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("Tally - personal bookkeeping")

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", m.form.View())
	if m.err != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", errorText(m.err.Error()))
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}
