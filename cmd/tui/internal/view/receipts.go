package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/receipt"
)

type receiptsState int

const (
	receiptsStateBrowse receiptsState = iota
	receiptsStateIssue
)

type ReceiptsModel struct {
	CommonModel
	svc    *receipt.Service
	caller auth.Caller

	state    receiptsState
	table    table.Model
	receipts []*receipt.Receipt
	form     *huh.Form

	search  string
	loading bool
	err     error
	status  string

	// Form bindings
	formPaymentID string
	formAmount    string
}

func NewReceiptsModel(svc *receipt.Service, caller auth.Caller) ReceiptsModel {
	columns := []table.Column{
		{Title: "Number", Width: 22},
		{Title: "Client", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Amount", Width: 12},
		{Title: "Issued", Width: 12},
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

	return ReceiptsModel{
		svc:    svc,
		caller: caller,
		table:  t,
	}
}

func (m ReceiptsModel) Title() string { return "Receipts" }
func (m ReceiptsModel) ShortHelp() string {
	if m.state == receiptsStateIssue {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | i: issue receipt | r: refresh"
}

func (m ReceiptsModel) Init() tea.Cmd {
	return m.loadReceiptsCmd()
}

type loadReceiptsMsg struct {
	receipts []*receipt.Receipt
	err      error
}

func (m ReceiptsModel) loadReceiptsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		receipts, err := m.svc.List(ctx, m.caller, receipt.ListFilter{Search: m.search})
		return loadReceiptsMsg{receipts: receipts, err: err}
	}
}

type issueReceiptMsg struct {
	rec *receipt.Receipt
	err error
}

func (m ReceiptsModel) issueCmd() tea.Cmd {
	paymentID, err := uuid.Parse(strings.TrimSpace(m.formPaymentID))
	if err != nil {
		return func() tea.Msg {
			return issueReceiptMsg{err: fmt.Errorf("invalid payment id")}
		}
	}

	amountFloat, err := strconv.ParseFloat(strings.TrimSpace(m.formAmount), 64)
	if err != nil {
		return func() tea.Msg {
			return issueReceiptMsg{err: fmt.Errorf("invalid amount")}
		}
	}

	amount := int64(amountFloat * 100)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rec, err := m.svc.Generate(ctx, m.caller, paymentID, amount)
		return issueReceiptMsg{rec: rec, err: err}
	}
}

func (m ReceiptsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReceiptsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.receipts = msg.receipts
		m.refreshTable()

		return m, nil

	case issueReceiptMsg:
		m.state = receiptsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Issue failed: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Issued %s", msg.rec.Number)

		return m, m.loadReceiptsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case receiptsStateBrowse:
		return m.updateBrowse(msg)
	case receiptsStateIssue:
		return m.updateIssue(msg)
	}

	return m, nil
}

func (m ReceiptsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadReceiptsCmd()
		case "i":
			return m.enterIssueMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReceiptsModel) enterIssueMode() (tea.Model, tea.Cmd) {
	m.formPaymentID = ""
	m.formAmount = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("payment_id").
				Title("Payment ID").
				Value(&m.formPaymentID).
				Validate(func(s string) error {
					if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("must be a valid UUID")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("1500.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("must be a positive number")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = receiptsStateIssue
	m.table.Blur()

	return m, m.form.Init()
}

func (m ReceiptsModel) updateIssue(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = receiptsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.issueCmd()
}

func (m *ReceiptsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.receipts))
	for _, r := range m.receipts {
		rows = append(rows, table.Row{
			r.Number,
			r.OwnerName,
			r.OwnerEmail,
			FormatAmount(r.Amount),
			FormatDate(r.CreatedAt),
		})
	}
	m.table.SetRows(rows)
}

func (m ReceiptsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading receipts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == receiptsStateIssue && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Issue Receipt\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
