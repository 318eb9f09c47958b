// internal/api/players/handlers.go
package players

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dmoren/padelbook/internal/api/apiutil"
	"github.com/dmoren/padelbook/internal/booking"
)

var (
	svc     *booking.Service
	svcOnce sync.Once
)

const playersQueryTimeout = 5 * time.Second

type registerRequest struct {
	Name string `json:"name"`
}

type moveRequest struct {
	To      string `json:"to"`
	CourtID int64  `json:"court_id,omitempty"`
}

type registerResponse struct {
	Placement string       `json:"placement"`
	View      booking.View `json:"reservation"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(service *booking.Service) {
	if service == nil {
		log.Warn().Msg("players.InitHandlers called with nil service")
		return
	}
	svcOnce.Do(func() {
		svc = service
	})
}

func loadService() *booking.Service {
	return svc
}

// POST /api/v1/reservations/{id}/players
func HandleRegister(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	service := loadService()
	if service == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := apiutil.IDFromPath(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req registerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playersQueryTimeout)
	defer cancel()

	view, placement, err := service.Register(ctx, id, req.Name)
	if err != nil {
		apiutil.WriteBookingError(w, r, err)
		return
	}

	resp := registerResponse{Placement: placement.String(), View: view}
	if err := apiutil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		logger.Error().Err(err).Int64("reservation_id", id).Msg("Failed to write register response")
	}
}

// DELETE /api/v1/reservations/{id}/players/{name}
func HandleRemove(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	service := loadService()
	if service == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := apiutil.IDFromPath(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		http.Error(w, "player name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playersQueryTimeout)
	defer cancel()

	view, err := service.RemovePlayer(ctx, id, name)
	if err != nil {
		apiutil.WriteBookingError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, view); err != nil {
		logger.Error().Err(err).Int64("reservation_id", id).Msg("Failed to write remove response")
	}
}

// POST /api/v1/reservations/{id}/players/{name}/move
func HandleMove(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	service := loadService()
	if service == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := apiutil.IDFromPath(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		http.Error(w, "player name is required", http.StatusBadRequest)
		return
	}

	var req moveRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dest, err := parseDestination(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playersQueryTimeout)
	defer cancel()

	view, err := service.Move(ctx, id, name, dest)
	if err != nil {
		apiutil.WriteBookingError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, view); err != nil {
		logger.Error().Err(err).Int64("reservation_id", id).Msg("Failed to write move response")
	}
}

func parseDestination(req moveRequest) (booking.Placement, error) {
	switch strings.ToLower(strings.TrimSpace(req.To)) {
	case "pool":
		return booking.PoolPlacement(), nil
	case "waitlist":
		return booking.WaitlistPlacement(), nil
	case "court":
		if req.CourtID <= 0 {
			return booking.Placement{}, apiutil.FieldError{Field: "court_id", Reason: "must be a positive court id"}
		}
		return booking.CourtPlacement(req.CourtID), nil
	default:
		return booking.Placement{}, apiutil.FieldError{Field: "to", Reason: "must be one of pool, waitlist, court"}
	}
}
