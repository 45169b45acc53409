package view

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateResult
)

type ExportModel struct {
	exportService *export.Service
	svc           *ledger.Service
	now           func() time.Time

	state   exportState
	form    *huh.Form
	input   *exportInput
	err     error
	written int
	summary string
}

type exportInput struct {
	timeframe Timeframe
	path      string
}

func NewExportModel(exportSvc *export.Service, svc *ledger.Service) ExportModel {
	m := ExportModel{
		exportService: exportSvc,
		svc:           svc,
		now:           time.Now,
		input:         &exportInput{timeframe: TimeframeThisMonth, path: "tally_export.csv"},
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) buildForm() *huh.Form {
	options := make([]huh.Option[Timeframe], 0, int(timeframeCount))
	for tf := TimeframeAll; tf < timeframeCount; tf++ {
		options = append(options, huh.NewOption(tf.String(), tf))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Timeframe]().
				Key("timeframe").
				Title("Period").
				Options(options...).
				Value(&m.input.timeframe),
			huh.NewInput().
				Key("path").
				Title("Output file").
				Placeholder("tally_export.csv").
				Value(&m.input.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) Title() string { return "Export CSV" }

func (m ExportModel) ShortHelp() string {
	if m.state == exportStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	if m.state == exportStateResult {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateResult
	m.written, m.summary, m.err = m.runExport()

	return m, nil
}

func (m ExportModel) runExport() (int, string, error) {
	var c ledger.Criteria
	c.StartDate, c.EndDate = m.input.timeframe.Range(m.now())

	f, err := os.Create(m.input.path)
	if err != nil {
		return 0, "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	n, err := m.exportService.WriteCSV(f, c)
	if err != nil {
		return 0, "", err
	}

	slog.Info("exported transactions", "path", m.input.path, "count", n)

	return n, m.exportService.GenerateSummary(m.svc.List(c)), nil
}

func (m ExportModel) View() string {
	if m.state == exportStateForm {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorText(fmt.Sprintf("Error: %v", m.err)))
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(okColor).
		Render(fmt.Sprintf("Exported %d transactions to %s", m.written, m.input.path))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			"Summary:",
			"",
			m.summary,
		),
	)
}
