package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/dashboard"
)

type DashboardModel struct {
	CommonModel
	svc      *dashboard.Service
	caller   auth.Caller
	interval time.Duration

	stats       *dashboard.Stats
	table       table.Model
	loading     bool
	err         error
	refreshedAt time.Time
}

func NewDashboardModel(svc *dashboard.Service, caller auth.Caller, interval time.Duration) DashboardModel {
	columns := []table.Column{
		{Title: "Estate", Width: 28},
		{Title: "Total", Width: 8},
		{Title: "Available", Width: 10},
		{Title: "Sold", Width: 8},
		{Title: "Booked", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
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

	return DashboardModel{
		svc:      svc,
		caller:   caller,
		interval: interval,
		table:    t,
		loading:  true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh now" }

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loadStatsCmd(), m.tickCmd())
}

type dashboardTickMsg time.Time

func (m DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return dashboardTickMsg(t)
	})
}

type loadStatsMsg struct {
	stats *dashboard.Stats
	err   error
}

func (m DashboardModel) loadStatsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		stats, err := m.svc.Stats(ctx, m.caller)
		return loadStatsMsg{stats: stats, err: err}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStatsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.stats = msg.stats
		m.refreshedAt = time.Now()
		m.refreshEstateTable()

		return m, nil

	case dashboardTickMsg:
		return m, tea.Batch(m.loadStatsCmd(), m.tickCmd())

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadStatsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *DashboardModel) refreshEstateTable() {
	rows := make([]table.Row, 0, len(m.stats.EstateAllocations))
	for _, e := range m.stats.EstateAllocations {
		rows = append(rows, table.Row{
			e.Name,
			strconv.Itoa(e.Total),
			strconv.Itoa(e.Available),
			strconv.Itoa(e.Sold),
			strconv.Itoa(e.Booked),
		})
	}
	m.table.SetRows(rows)
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	s := m.stats

	counts := fmt.Sprintf(
		"Applications: %d total | %d pending | %d approved | %d rejected",
		s.TotalApplications, s.PendingApplications, s.ApprovedApplications, s.RejectedApplications,
	)

	sales := fmt.Sprintf("Sales (completed payments): %s | Receipts issued: %d",
		FormatAmount(s.TotalSales), s.ReceiptsIssued)

	progress := fmt.Sprintf(
		"Estimated payment progress: %d pending | %d partial | %d full",
		s.EstimatedPaymentProgress.Pending,
		s.EstimatedPaymentProgress.Partial,
		s.EstimatedPaymentProgress.Full,
	)

	monthly := "Monthly applications:"
	for _, b := range s.MonthlyApplications {
		monthly += fmt.Sprintf("\n  %-10s %3d total, %3d approved", b.Month, b.Total, b.Approved)
	}

	estateView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	footer := lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("Refreshed %s | auto-refresh every %s",
			m.refreshedAt.Format("15:04:05"), m.interval))

	content := lipgloss.JoinVertical(lipgloss.Left,
		counts, sales, progress, "", monthly, "", estateView, footer,
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}
