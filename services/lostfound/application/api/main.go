package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/campuskeep/campuskeep/pkg/app"
	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/services/lostfound/application/handlers"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
)

// Routes registers the lost-and-found endpoints on the provided chi router.
// All routes require a session; staff operations additionally require the
// admin flag.
func Routes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))

		r.Route("/items", func(r chi.Router) {
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Get("/", handlers.NewGetItemsHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetItemHandler(svcs).Execute)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin(a.Logger))
				r.Get("/stats", handlers.NewGetItemStatsHandler(svcs).Execute)
				r.Get("/{id}/matches", handlers.NewGetItemMatchesHandler(svcs).Execute)
				r.Post("/{id}/verify", handlers.NewPostVerifyItemHandler(svcs).Execute)
				r.Post("/{id}/notify-owner", handlers.NewPostNotifyOwnerHandler(svcs).Execute)
				r.Post("/{id}/handover", handlers.NewPostHandoverHandler(svcs).Execute)
				r.Post("/{id}/archive", handlers.NewPostArchiveItemHandler(svcs).Execute)
				r.Post("/{id}/dispose", handlers.NewPostDisposeItemHandler(svcs).Execute)
				r.Post("/link", handlers.NewPostLinkItemsHandler(svcs).Execute)
			})
		})

		r.Route("/claims", func(r chi.Router) {
			r.Post("/", handlers.NewPostClaimHandler(svcs).Execute)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin(a.Logger))
				r.Get("/", handlers.NewGetClaimsHandler(svcs).Execute)
				r.Post("/{id}/decision", handlers.NewPostClaimDecisionHandler(svcs).Execute)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin(a.Logger))
			r.Post("/broadcasts", handlers.NewPostBroadcastHandler(svcs).Execute)
			r.Get("/audit-logs", handlers.NewGetAuditLogsHandler(svcs).Execute)
			r.Get("/handovers", handlers.NewGetHandoversHandler(svcs).Execute)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", handlers.NewGetNotificationsHandler(svcs).Execute)
			r.Post("/{id}/read", handlers.NewPostNotificationReadHandler(svcs).Execute)
		})
	})
}
