package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/http/application"
	"github.com/Abba-Jere11/properties-sub001/internal/http/dashboard"
	"github.com/Abba-Jere11/properties-sub001/internal/http/document"
	"github.com/Abba-Jere11/properties-sub001/internal/http/notification"
	"github.com/Abba-Jere11/properties-sub001/internal/http/payment"
	"github.com/Abba-Jere11/properties-sub001/internal/http/profile"
	"github.com/Abba-Jere11/properties-sub001/internal/http/provision"
	"github.com/Abba-Jere11/properties-sub001/internal/http/receipt"
)

func New(
	verifier auth.TokenVerifier,
	directory auth.Directory,
	documentsV1 *document.Handler,
	receiptsV1 *receipt.Handler,
	notificationsV1 *notification.Handler,
	profilesV1 *profile.Handler,
	applicationsV1 *application.Handler,
	paymentsV1 *payment.Handler,
	dashboardV1 *dashboard.Handler,
	provisionV1 *provision.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		// Provisioning does its own two-step authorization and is called
		// from browser admin consoles, so it gets a permissive preflight.
		r.Route("/provision", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{http.MethodPost, http.MethodOptions},
				AllowedHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
			}))
			provisionV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(verifier, directory))

			r.Route("/documents", documentsV1.Routes)

			r.Route("/receipts", func(r chi.Router) {
				receiptsV1.Routes(r)
			})

			r.Route("/notifications", notificationsV1.Routes)

			r.Route("/profiles", profilesV1.Routes)

			r.Route("/applications", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				applicationsV1.Routes(r)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				paymentsV1.Routes(r)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				dashboardV1.Routes(r)
			})
		})
	})

	return router
}
