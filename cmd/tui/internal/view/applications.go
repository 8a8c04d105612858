package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Abba-Jere11/properties-sub001/internal/application"
	"github.com/Abba-Jere11/properties-sub001/internal/auth"
)

type ApplicationsModel struct {
	CommonModel
	svc    *application.Service
	caller auth.Caller

	table table.Model
	apps  []*application.Application

	statusFilterIdx int
	filter          application.ListFilter

	loading bool
	err     error
	status  string
}

func NewApplicationsModel(svc *application.Service, caller auth.Caller) ApplicationsModel {
	columns := []table.Column{
		{Title: "Estate", Width: 26},
		{Title: "Units", Width: 6},
		{Title: "Amount", Width: 14},
		{Title: "Status", Width: 10},
		{Title: "Submitted", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ApplicationsModel{
		svc:    svc,
		caller: caller,
		table:  t,
	}
}

func (m ApplicationsModel) Title() string { return "Applications" }
func (m ApplicationsModel) ShortHelp() string {
	return "Esc: back | a: approve | x: reject | s: status filter | r: refresh"
}

func (m ApplicationsModel) Init() tea.Cmd {
	return m.loadAppsCmd()
}

type loadAppsMsg struct {
	apps []*application.Application
	err  error
}

func (m ApplicationsModel) loadAppsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		apps, err := m.svc.List(ctx, m.caller, m.filter)
		return loadAppsMsg{apps: apps, err: err}
	}
}

type decideMsg struct {
	err error
}

func (m ApplicationsModel) decideCmd(status application.Status) tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.apps) {
		return nil
	}

	id := m.apps[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.svc.UpdateStatus(ctx, m.caller, id, status)
		return decideMsg{err: err}
	}
}

func (m ApplicationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadAppsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.apps = msg.apps
		m.refreshTable()

		return m, nil

	case decideMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = ""

		return m, m.loadAppsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadAppsCmd()
		case "a":
			return m, m.decideCmd(application.StatusApproved)
		case "x":
			return m, m.decideCmd(application.StatusRejected)
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 4
			m.applyFilter()
			return m, m.loadAppsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *ApplicationsModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		m.filter.Status = application.StatusPending
	case 2:
		m.filter.Status = application.StatusApproved
	case 3:
		m.filter.Status = application.StatusRejected
	default:
		m.filter.Status = ""
	}
}

func (m *ApplicationsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.apps))
	for _, a := range m.apps {
		rows = append(rows, table.Row{
			a.EstateName,
			strconv.Itoa(a.Units),
			FormatAmount(a.Amount),
			string(a.Status),
			FormatDate(a.CreatedAt),
		})
	}
	m.table.SetRows(rows)
}

func (m ApplicationsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading applications...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Pending", "Approved", "Rejected"}

	header := fmt.Sprintf("Filter: [s] Status: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(statusLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
