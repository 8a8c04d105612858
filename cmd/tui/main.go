package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/Abba-Jere11/properties-sub001/cmd/tui/internal/view"
	"github.com/Abba-Jere11/properties-sub001/internal/application"
	appStore "github.com/Abba-Jere11/properties-sub001/internal/application/store"
	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
	"github.com/Abba-Jere11/properties-sub001/internal/config"
	"github.com/Abba-Jere11/properties-sub001/internal/dashboard"
	dashStore "github.com/Abba-Jere11/properties-sub001/internal/dashboard/store"
	"github.com/Abba-Jere11/properties-sub001/internal/database"
	"github.com/Abba-Jere11/properties-sub001/internal/notification"
	notifStore "github.com/Abba-Jere11/properties-sub001/internal/notification/store"
	"github.com/Abba-Jere11/properties-sub001/internal/profile"
	profileStore "github.com/Abba-Jere11/properties-sub001/internal/profile/store"
	"github.com/Abba-Jere11/properties-sub001/internal/provision"
	provStore "github.com/Abba-Jere11/properties-sub001/internal/provision/store"
	"github.com/Abba-Jere11/properties-sub001/internal/receipt"
	receiptStore "github.com/Abba-Jere11/properties-sub001/internal/receipt/store"
)

type model struct {
	currentView View

	dashboardView    view.DashboardModel
	clientsView      view.ClientsModel
	receiptsView     view.ReceiptsModel
	applicationsView view.ApplicationsModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewClients      View = 2
	ViewReceipts     View = 3
	ViewApplications View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	elevatedDB, err := database.NewElevated(cfg.ElevatedConnectionString())
	if err != nil {
		slog.Error("failed to connect to elevated database", "error", err)
		os.Exit(1)
	}

	var (
		views     = cache.New()
		verifier  = auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.Issuer)
		directory = profile.NewDirectory(profileStore.New(elevatedDB))
	)

	var (
		profileSvc   = profile.NewService(profileStore.New(db), views)
		notifSvc     = notification.NewService(notifStore.New(db), views)
		receiptSvc   = receipt.NewService(receiptStore.New(db), views)
		appSvc       = application.NewService(appStore.New(db), notifSvc, views)
		dashSvc      = dashboard.NewService(dashStore.New(db))
		provisionSvc = provision.NewService(verifier, directory, provStore.New(elevatedDB), profileStore.New(elevatedDB))
	)

	caller := resolveOperator(profileStore.New(elevatedDB), cfg.Admin.Email)

	token, err := verifier.Sign(caller.ID, cfg.Auth.TokenTTL)
	if err != nil {
		slog.Error("failed to sign operator token", "error", err)
		os.Exit(1)
	}

	return model{
		currentView:      ViewMenu,
		dashboardView:    view.NewDashboardModel(dashSvc, caller, cfg.Dashboard.RefreshInterval),
		clientsView:      view.NewClientsModel(profileSvc, provisionSvc, caller, token),
		receiptsView:     view.NewReceiptsModel(receiptSvc, caller),
		applicationsView: view.NewApplicationsModel(appSvc, caller),
	}
}

// resolveOperator loads the console operator's profile by email, through the
// elevated credential. The console is admin-only; anyone else is turned away
// before a single view loads.
func resolveOperator(repo profile.Repository, email string) auth.Caller {
	ctx, cancel := view.DbCtx()
	defer cancel()

	p, err := repo.GetProfileByEmail(ctx, email)
	if err != nil {
		slog.Error("failed to resolve operator profile", "email", email, "error", err)
		os.Exit(1)
	}

	caller := auth.Caller{ID: p.ID, Email: p.Email, Role: p.Role, Active: p.Active}
	if !caller.IsAdmin() || !caller.Active {
		slog.Error("operator is not an active admin", "email", email)
		os.Exit(1)
	}

	return caller
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewClients
				return m, m.clientsView.Init()
			case "3":
				m.currentView = ViewReceipts
				return m, m.receiptsView.Init()
			case "4":
				m.currentView = ViewApplications
				return m, m.applicationsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewReceipts:
		var newModel tea.Model
		newModel, cmd = m.receiptsView.Update(msg)
		m.receiptsView = newModel.(view.ReceiptsModel)
	case ViewApplications:
		var newModel tea.Model
		newModel, cmd = m.applicationsView.Update(msg)
		m.applicationsView = newModel.(view.ApplicationsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Properties Admin Console\n\n" +
				"1. Dashboard\n" +
				"2. Clients\n" +
				"3. Receipts\n" +
				"4. Applications\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewClients:
		return m.clientsView.View()
	case ViewReceipts:
		return m.receiptsView.View()
	case ViewApplications:
		return m.applicationsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
