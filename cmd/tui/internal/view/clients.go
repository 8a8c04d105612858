package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/profile"
	"github.com/Abba-Jere11/properties-sub001/internal/provision"
)

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateProvision
)

// ClientsModel lists portal profiles and provisions new client accounts. The
// provisioning call goes through the same two-step service the HTTP endpoint
// uses, with a token signed for the console operator.
type ClientsModel struct {
	CommonModel
	profileSvc   *profile.Service
	provisionSvc *provision.Service
	caller       auth.Caller
	token        string

	state    clientsState
	table    table.Model
	profiles []*profile.Profile
	form     *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formEmail     string
	formPassword  string
	formFirstName string
	formLastName  string
	formPhone     string
	formAddress   string
}

func NewClientsModel(profileSvc *profile.Service, provisionSvc *provision.Service, caller auth.Caller, token string) ClientsModel {
	columns := []table.Column{
		{Title: "Name", Width: 26},
		{Title: "Email", Width: 30},
		{Title: "Role", Width: 8},
		{Title: "Active", Width: 7},
		{Title: "Joined", Width: 12},
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

	return ClientsModel{
		profileSvc:   profileSvc,
		provisionSvc: provisionSvc,
		caller:       caller,
		token:        token,
		table:        t,
	}
}

func (m ClientsModel) Title() string { return "Clients" }
func (m ClientsModel) ShortHelp() string {
	if m.state == clientsStateProvision {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | n: new client | t: toggle active | r: refresh"
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadProfilesCmd()
}

type loadProfilesMsg struct {
	profiles []*profile.Profile
	err      error
}

func (m ClientsModel) loadProfilesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		profiles, err := m.profileSvc.List(ctx, m.caller, profile.ListFilter{})
		return loadProfilesMsg{profiles: profiles, err: err}
	}
}

type provisionDoneMsg struct {
	result *provision.Result
	err    error
}

func (m ClientsModel) provisionCmd() tea.Cmd {
	params := provision.Params{
		Email:     m.formEmail,
		Password:  m.formPassword,
		FirstName: m.formFirstName,
		LastName:  m.formLastName,
		Phone:     m.formPhone,
		Address:   m.formAddress,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.provisionSvc.CreateClient(ctx, m.token, params)
		return provisionDoneMsg{result: result, err: err}
	}
}

type toggleActiveMsg struct {
	err error
}

func (m ClientsModel) toggleActiveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.profiles) {
		return nil
	}

	p := m.profiles[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.profileSvc.SetActive(ctx, m.caller, p.ID, !p.Active)
		return toggleActiveMsg{err: err}
	}
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProfilesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.profiles = msg.profiles
		m.refreshTable()

		return m, nil

	case provisionDoneMsg:
		m.state = clientsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Provisioning failed: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Created client %s", msg.result.Email)

		return m, m.loadProfilesCmd()

	case toggleActiveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		return m, m.loadProfilesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case clientsStateBrowse:
		return m.updateBrowse(msg)
	case clientsStateProvision:
		return m.updateProvision(msg)
	}

	return m, nil
}

func (m ClientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadProfilesCmd()
		case "n":
			return m.enterProvisionMode()
		case "t":
			return m, m.toggleActiveCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ClientsModel) enterProvisionMode() (tea.Model, tea.Cmd) {
	m.formEmail = ""
	m.formPassword = ""
	m.formFirstName = ""
	m.formLastName = ""
	m.formPhone = ""
	m.formAddress = ""

	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s cannot be empty", field)
			}
			return nil
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail).
				Validate(required("email")),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword).
				Validate(required("password")),

			huh.NewInput().
				Key("first_name").
				Title("First name").
				Value(&m.formFirstName).
				Validate(required("first name")),

			huh.NewInput().
				Key("last_name").
				Title("Last name").
				Value(&m.formLastName).
				Validate(required("last name")),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&m.formPhone),

			huh.NewInput().
				Key("address").
				Title("Address").
				Value(&m.formAddress),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientsStateProvision
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) updateProvision(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = clientsStateBrowse
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

	return m, m.provisionCmd()
}

func (m *ClientsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.profiles))
	for _, p := range m.profiles {
		active := "no"
		if p.Active {
			active = "yes"
		}

		rows = append(rows, table.Row{
			p.FullName(),
			p.Email,
			string(p.Role),
			active,
			FormatDate(p.CreatedAt),
		})
	}
	m.table.SetRows(rows)
}

func (m ClientsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading profiles...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == clientsStateProvision && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Client\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
