package view

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateResult
)

type ImportModel struct {
	svc    *ledger.Service
	parser importer.Importer

	state      importState
	filePicker filepicker.Model

	status string
	err    error
}

func NewImportModel(svc *ledger.Service, parser importer.Importer) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		svc:        svc,
		parser:     parser,
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Import CSV" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions from %s.", msg.count, msg.path)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) View() string {
	if m.state == importStateResult {
		msg := okText(m.status)
		if m.err != nil {
			msg = errorText(fmt.Sprintf("Error: %v", m.err))
		}

		return lipgloss.NewStyle().Padding(1).Render(msg)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			"Pick a CSV file (columns: date, kind, category, amount, note):",
			"",
			m.filePicker.View(),
		),
	)
}

type importResultMsg struct {
	path  string
	count int
	err   error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: fmt.Errorf("open file: %w", err)}
		}
		defer f.Close()

		txs, err := m.parser.Parse(f)
		if err != nil {
			return importResultMsg{err: err}
		}

		n := m.svc.Import(txs)
		slog.Info("imported transactions", "path", path, "count", n)

		return importResultMsg{path: path, count: n}
	}
}
