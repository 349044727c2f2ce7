package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cardtab/cardtab/internal/service"
)

// NewRouter builds the HTTP routing tree for the session API.
func NewRouter(svc *service.SessionService) http.Handler {
	h := NewHandlers(svc)

	r := chi.NewRouter()
	r.Use(corsMiddleware)
	r.Use(loggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.ListPlayers)
			r.Post("/", h.CreatePlayer)
			r.Put("/{playerID}", h.RenamePlayer)
			r.Delete("/{playerID}", h.DeletePlayer)
		})

		r.Route("/rounds", func(r chi.Router) {
			r.Get("/", h.ListRounds)
			r.Post("/", h.CreateRound)
			r.Put("/{roundID}/banker", h.SetBanker)
			r.Put("/{roundID}/values", h.SetValue)
			r.Delete("/{roundID}", h.DeleteRound)
		})

		r.Get("/balances", h.GetBalances)
		r.Get("/ledger", h.GetLedger)
		r.Get("/settlement", h.GetSettlement)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
