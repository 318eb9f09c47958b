// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmoren/padelbook/internal/api"
	"github.com/dmoren/padelbook/internal/api/players"
	"github.com/dmoren/padelbook/internal/api/reservations"
	"github.com/dmoren/padelbook/internal/config"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Reservation routes
	mux.HandleFunc("GET /api/v1/reservations", reservations.HandleList)
	mux.HandleFunc("POST /api/v1/reservations", reservations.HandleCreate)
	mux.HandleFunc("POST /api/v1/reservations/purge", reservations.HandlePurge)
	mux.HandleFunc("GET /api/v1/reservations/{id}", reservations.HandleGet)
	mux.HandleFunc("PUT /api/v1/reservations/{id}", reservations.HandleUpdate)
	mux.HandleFunc("DELETE /api/v1/reservations/{id}", reservations.HandleDelete)
	mux.HandleFunc("GET /api/v1/reservations/{id}/share", reservations.HandleShare)

	// Court routes
	mux.HandleFunc("PATCH /api/v1/reservations/{id}/courts/{courtId}", reservations.HandleCourtUpdate)
	mux.HandleFunc("DELETE /api/v1/reservations/{id}/courts/{courtId}", reservations.HandleCourtDelete)

	// Player routes
	mux.HandleFunc("POST /api/v1/reservations/{id}/players", players.HandleRegister)
	mux.HandleFunc("DELETE /api/v1/reservations/{id}/players/{name}", players.HandleRemove)
	mux.HandleFunc("POST /api/v1/reservations/{id}/players/{name}/move", players.HandleMove)
}
