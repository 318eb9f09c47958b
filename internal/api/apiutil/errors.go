package apiutil

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dmoren/padelbook/internal/booking"
)

// WriteBookingError maps a booking error onto an HTTP status and writes a
// single human-readable message. Validation failures become 4xx; anything
// else is a store failure and is logged before a generic 500.
func WriteBookingError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, booking.ErrReservationNotFound):
		http.Error(w, "Reservation not found", http.StatusNotFound)
	case errors.Is(err, booking.ErrUnknownPlayer):
		http.Error(w, "Player not found", http.StatusNotFound)
	case errors.Is(err, booking.ErrUnknownCourt):
		http.Error(w, "Court not found", http.StatusNotFound)
	case errors.Is(err, booking.ErrDuplicateName),
		errors.Is(err, booking.ErrCourtFull),
		errors.Is(err, booking.ErrAlreadyOnCourt),
		errors.Is(err, booking.ErrCourtNotEmpty),
		errors.Is(err, booking.ErrNonEmptyCourtRemoval):
		http.Error(w, err.Error(), http.StatusConflict)
	case booking.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("Booking operation failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
