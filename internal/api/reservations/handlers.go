// internal/api/reservations/handlers.go
package reservations

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dmoren/padelbook/internal/api/apiutil"
	"github.com/dmoren/padelbook/internal/booking"
	"github.com/dmoren/padelbook/internal/share"
)

var (
	svc     *booking.Service
	svcOnce sync.Once
)

const reservationsQueryTimeout = 5 * time.Second

type reservationRequest struct {
	Venue      string `json:"venue"`
	Date       string `json:"date"`
	TimeStart  string `json:"time_start"`
	TimeEnd    string `json:"time_end"`
	Courts     int    `json:"courts"`
	FirstCourt string `json:"first_court,omitempty"`
	PriceCents int64  `json:"price_cents"`
}

type courtEditRequest struct {
	Name       *string `json:"name,omitempty"`
	PriceCents *int64  `json:"price_cents,omitempty"`
	PayTo      *string `json:"pay_to,omitempty"`
}

type purgeRequest struct {
	Before string `json:"before"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(service *booking.Service) {
	if service == nil {
		log.Warn().Msg("reservations.InitHandlers called with nil service")
		return
	}
	svcOnce.Do(func() {
		svc = service
	})
}

func loadService() *booking.Service {
	return svc
}

// GET /api/v1/reservations
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	service := loadService()
	if service == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	views, err := service.List(ctx)
	if err != nil {
		apiutil.WriteBookingError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, views); err != nil {
		logger.Error().Err(err).Msg("Failed to write reservations response")
	}
}

// POST /api/v1/reservations
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	service := loadService()
	if service == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req reservationRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	view, err := service.Create(ctx, booking.CreateParams{
		Venue:      req.Venue,
		Date:       req.Date,
		TimeStart:  req.TimeStart,
		TimeEnd:    req.TimeEnd,
		Courts:     req.Courts,
		FirstCourt: req.FirstCourt,
		PriceCents: req.PriceCents,
	})
	if err != nil {
		apiutil.WriteBookingError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, view); err != nil {
		logger.Error().Err(err).Int64("reservation_id", view.ID).Msg("Failed to write reservation response")
	}
}

// GET /api/v1/reservations/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	view, err := service.Get(ctx, id)
	if err != nil {
		apiutil.WriteBookingError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, view); err != nil {
		logger.Error().Err(err).Int64("reservation_id", id).Msg("Failed to write reservation response")
	}
}

// PUT /api/v1/reservations/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req reservationRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	view, err := service.Update(ctx, id, booking.UpdateParams{
		Venue:      req.Venue,
		Date:       req.Date,
		TimeStart:  req.TimeStart,
		TimeEnd:    req.TimeEnd,
		Courts:     req.Courts,
		PriceCents: req.PriceCents,
	})
	if err != nil {
		apiutil.WriteBookingError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, view); err != nil {
		logger.Error().Err(err).Int64("reservation_id", id).Msg("Failed to write reservation response")
	}
}

// DELETE /api/v1/reservations/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	if err := service.Delete(ctx, id); err != nil {
		apiutil.WriteBookingError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/reservations/purge
func HandlePurge(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	service := loadService()
	if service == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req purgeRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	before, err := apiutil.ParseDateField(req.Before, "before")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	deleted, err := service.PurgeBefore(ctx, before)
	if err != nil {
		apiutil.WriteBookingError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]int{"deleted": deleted}); err != nil {
		logger.Error().Err(err).Msg("Failed to write purge response")
	}
}

// GET /api/v1/reservations/{id}/share?mode=status|matches
func HandleShare(w http.ResponseWriter, r *http.Request) {
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

	mode, err := share.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	view, err := service.Get(ctx, id)
	if err != nil {
		apiutil.WriteBookingError(w, r, err)
		return
	}

	text, err := share.Render(view, mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := apiutil.WriteText(w, http.StatusOK, text); err != nil {
		logger.Error().Err(err).Int64("reservation_id", id).Msg("Failed to write share response")
	}
}

// PATCH /api/v1/reservations/{id}/courts/{courtId}
func HandleCourtUpdate(w http.ResponseWriter, r *http.Request) {
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
	courtID, err := apiutil.IDFromPath(r, "courtId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req courtEditRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	view, err := service.UpdateCourt(ctx, id, courtID, booking.CourtEdit{
		Name:       req.Name,
		PriceCents: req.PriceCents,
		PayTo:      req.PayTo,
	})
	if err != nil {
		apiutil.WriteBookingError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, view); err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to write court response")
	}
}

// DELETE /api/v1/reservations/{id}/courts/{courtId}
func HandleCourtDelete(w http.ResponseWriter, r *http.Request) {
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
	courtID, err := apiutil.IDFromPath(r, "courtId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	view, err := service.DeleteCourt(ctx, id, courtID)
	if err != nil {
		apiutil.WriteBookingError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, view); err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to write court response")
	}
}
