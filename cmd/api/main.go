package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/Abba-Jere11/properties-sub001/internal/application"
	appStore "github.com/Abba-Jere11/properties-sub001/internal/application/store"
	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/blob"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
	"github.com/Abba-Jere11/properties-sub001/internal/config"
	"github.com/Abba-Jere11/properties-sub001/internal/dashboard"
	dashStore "github.com/Abba-Jere11/properties-sub001/internal/dashboard/store"
	"github.com/Abba-Jere11/properties-sub001/internal/database"
	"github.com/Abba-Jere11/properties-sub001/internal/document"
	docStore "github.com/Abba-Jere11/properties-sub001/internal/document/store"
	portalHttp "github.com/Abba-Jere11/properties-sub001/internal/http"
	appHandler "github.com/Abba-Jere11/properties-sub001/internal/http/application"
	dashHandler "github.com/Abba-Jere11/properties-sub001/internal/http/dashboard"
	docHandler "github.com/Abba-Jere11/properties-sub001/internal/http/document"
	notifHandler "github.com/Abba-Jere11/properties-sub001/internal/http/notification"
	payHandler "github.com/Abba-Jere11/properties-sub001/internal/http/payment"
	profileHandler "github.com/Abba-Jere11/properties-sub001/internal/http/profile"
	provHandler "github.com/Abba-Jere11/properties-sub001/internal/http/provision"
	receiptHandler "github.com/Abba-Jere11/properties-sub001/internal/http/receipt"
	"github.com/Abba-Jere11/properties-sub001/internal/notification"
	notifStore "github.com/Abba-Jere11/properties-sub001/internal/notification/store"
	"github.com/Abba-Jere11/properties-sub001/internal/payment"
	payStore "github.com/Abba-Jere11/properties-sub001/internal/payment/store"
	"github.com/Abba-Jere11/properties-sub001/internal/profile"
	profileStore "github.com/Abba-Jere11/properties-sub001/internal/profile/store"
	"github.com/Abba-Jere11/properties-sub001/internal/provision"
	provStore "github.com/Abba-Jere11/properties-sub001/internal/provision/store"
	"github.com/Abba-Jere11/properties-sub001/internal/receipt"
	receiptStore "github.com/Abba-Jere11/properties-sub001/internal/receipt/store"
)

func main() {
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
	defer db.Close()

	elevatedDB, err := database.NewElevated(cfg.ElevatedConnectionString())
	if err != nil {
		slog.Error("failed to connect to elevated database", "error", err)
		os.Exit(1)
	}
	defer elevatedDB.Close()

	blobs, err := blob.New(cfg.Storage.Root)
	if err != nil {
		slog.Error("failed to open blob storage", "error", err)
		os.Exit(1)
	}

	var (
		views     = cache.New()
		verifier  = auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.Issuer)
		directory = profile.NewDirectory(profileStore.New(elevatedDB))
	)

	var (
		profileService      = profile.NewService(profileStore.New(db), views)
		documentService     = document.NewService(docStore.New(db), blobs, views)
		notificationService = notification.NewService(notifStore.New(db), views)
		receiptService      = receipt.NewService(receiptStore.New(db), views)
		applicationService  = application.NewService(appStore.New(db), notificationService, views)
		paymentService      = payment.NewService(payStore.New(db), views)
		dashboardService    = dashboard.NewService(dashStore.New(db))
		provisionService    = provision.NewService(verifier, directory, provStore.New(elevatedDB), profileStore.New(elevatedDB))
	)

	var (
		documentH     = docHandler.NewHandler(documentService)
		receiptH      = receiptHandler.NewHandler(receiptService)
		notificationH = notifHandler.NewHandler(notificationService)
		profileH      = profileHandler.NewHandler(profileService)
		applicationH  = appHandler.NewHandler(applicationService)
		paymentH      = payHandler.NewHandler(paymentService)
		dashboardH    = dashHandler.NewHandler(dashboardService)
		provisionH    = provHandler.NewHandler(provisionService)
	)

	router := portalHttp.New(
		verifier, directory,
		documentH, receiptH, notificationH, profileH,
		applicationH, paymentH, dashboardH, provisionH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
