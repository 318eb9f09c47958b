// internal/booking/service.go
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	appdb "github.com/dmoren/padelbook/internal/db"
)

const maxCourtCount = 10

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	clockSecLayout = "15:04:05"
)

// Service orchestrates reservation operations against the store. Every
// mutation follows the same protocol: load a fresh view, validate against
// it, issue the dependent writes sequentially inside one transaction, then
// reload so callers always settle on store ground truth.
type Service struct {
	db *appdb.DB
}

func NewService(database *appdb.DB) *Service {
	return &Service{db: database}
}

type CreateParams struct {
	Venue      string
	Date       string
	TimeStart  string
	TimeEnd    string
	Courts     int
	FirstCourt string
	PriceCents int64
}

type UpdateParams struct {
	Venue      string
	Date       string
	TimeStart  string
	TimeEnd    string
	Courts     int
	PriceCents int64
}

// CourtEdit carries partial field edits for a single court. Nil fields are
// left unchanged.
type CourtEdit struct {
	Name       *string
	PriceCents *int64
	PayTo      *string
}

// List returns every reservation as a nested aggregate, ordered by date.
func (s *Service) List(ctx context.Context) ([]View, error) {
	reservations, err := s.db.Queries.ListReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	courts, err := s.db.Queries.ListCourts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	players, err := s.db.Queries.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return BuildViews(reservations, courts, players), nil
}

// Get returns one reservation's aggregate.
func (s *Service) Get(ctx context.Context, id int64) (View, error) {
	reservation, err := s.db.Queries.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return View{}, ErrReservationNotFound
		}
		return View{}, fmt.Errorf("get reservation: %w", err)
	}
	courts, err := s.db.Queries.ListReservationCourts(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("list courts: %w", err)
	}
	players, err := s.db.Queries.ListReservationPlayers(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("list players: %w", err)
	}
	views := BuildViews([]appdb.Reservation{reservation}, courts, players)
	return views[0], nil
}

// Create books a reservation with its initial courts. Court names are
// generated from the first court's name; the price applies uniformly.
func (s *Service) Create(ctx context.Context, params CreateParams) (View, error) {
	timeStart, timeEnd, err := validateReservationFields(params.Venue, params.Date, params.TimeStart, params.TimeEnd)
	if err != nil {
		return View{}, err
	}
	if params.Courts < 1 || params.Courts > maxCourtCount {
		return View{}, validationf("court count must be between 1 and %d", maxCourtCount)
	}
	if params.PriceCents < 0 {
		return View{}, validationf("price must be 0 or greater")
	}

	names := GenerateNames(params.FirstCourt, params.Courts)

	var reservationID int64
	err = s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		id, err := tx.Queries.CreateReservation(ctx, appdb.CreateReservationParams{
			Venue:     strings.TrimSpace(params.Venue),
			Date:      params.Date,
			TimeStart: timeStart,
			TimeEnd:   timeEnd,
		})
		if err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		reservationID = id

		for i, name := range names {
			if _, err := tx.Queries.CreateCourt(ctx, appdb.CreateCourtParams{
				ReservationID: reservationID,
				Name:          name,
				PriceCents:    params.PriceCents,
				SortOrder:     int64(i),
			}); err != nil {
				return fmt.Errorf("insert court %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return View{}, err
	}

	log.Ctx(ctx).Info().
		Int64("reservation_id", reservationID).
		Int("courts", params.Courts).
		Msg("Reservation created")

	return s.Get(ctx, reservationID)
}

// Update applies scalar field edits and reconciles the court count. Growing
// appends courts named after the last existing one; shrinking removes
// trailing courts and is rejected whole if any of them still holds players.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (View, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	timeStart, timeEnd, err := validateReservationFields(params.Venue, params.Date, params.TimeStart, params.TimeEnd)
	if err != nil {
		return View{}, err
	}
	if params.Courts > maxCourtCount {
		return View{}, validationf("court count must be between 1 and %d", maxCourtCount)
	}
	if params.PriceCents < 0 {
		return View{}, validationf("price must be 0 or greater")
	}

	plan, err := PlanCourtChange(view, params.Courts, params.PriceCents)
	if err != nil {
		return View{}, err
	}

	err = s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		if err := tx.Queries.UpdateReservation(ctx, appdb.UpdateReservationParams{
			ID:        id,
			Venue:     strings.TrimSpace(params.Venue),
			Date:      params.Date,
			TimeStart: timeStart,
			TimeEnd:   timeEnd,
		}); err != nil {
			return fmt.Errorf("update reservation: %w", err)
		}
		for _, spec := range plan.Add {
			if _, err := tx.Queries.CreateCourt(ctx, appdb.CreateCourtParams{
				ReservationID: id,
				Name:          spec.Name,
				PriceCents:    spec.PriceCents,
				SortOrder:     spec.SortOrder,
			}); err != nil {
				return fmt.Errorf("insert court %q: %w", spec.Name, err)
			}
		}
		for _, courtID := range plan.Remove {
			if err := tx.Queries.DeleteCourt(ctx, courtID); err != nil {
				return fmt.Errorf("delete court %d: %w", courtID, err)
			}
		}
		return nil
	})
	if err != nil {
		return View{}, err
	}

	if !plan.IsEmpty() {
		log.Ctx(ctx).Info().
			Int64("reservation_id", id).
			Int("added", len(plan.Add)).
			Int("removed", len(plan.Remove)).
			Msg("Reservation courts reconciled")
	}

	return s.Get(ctx, id)
}

// Delete removes a reservation; its courts and players cascade away.
func (s *Service) Delete(ctx context.Context, id int64) error {
	rows, err := s.db.Queries.DeleteReservation(ctx, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if rows == 0 {
		return ErrReservationNotFound
	}
	log.Ctx(ctx).Info().Int64("reservation_id", id).Msg("Reservation deleted")
	return nil
}

// PurgeBefore deletes every reservation dated strictly before the cutoff and
// returns how many were removed. Reservations on the cutoff date survive.
func (s *Service) PurgeBefore(ctx context.Context, date string) (int, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return 0, validationf("cutoff date must be YYYY-MM-DD")
	}

	ids, err := s.db.Queries.ListReservationIDsBefore(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("list reservations before cutoff: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	deleted := 0
	err = s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		for _, id := range ids {
			rows, err := tx.Queries.DeleteReservation(ctx, id)
			if err != nil {
				return fmt.Errorf("delete reservation %d: %w", id, err)
			}
			deleted += int(rows)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Ctx(ctx).Info().
		Str("cutoff", date).
		Int("deleted", deleted).
		Msg("Purged past reservations")
	return deleted, nil
}

// Register creates a player record. Placement is computed, never chosen:
// the pool while capacity remains, the waitlist once the reservation is
// full. The name must be unused anywhere in the reservation.
func (s *Service) Register(ctx context.Context, id int64, name string) (View, Placement, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return View{}, Placement{}, err
	}

	name = strings.TrimSpace(name)
	if err := ValidateRegistration(view, name); err != nil {
		return View{}, Placement{}, err
	}

	placement := RegistrationPlacement(view)
	status := appdb.PlayerStatusRegistered
	if placement.Kind == PlacementWaitlist {
		status = appdb.PlayerStatusWaitlist
	}

	if _, err := s.db.Queries.CreatePlayer(ctx, appdb.CreatePlayerParams{
		ReservationID: id,
		Name:          name,
		Status:        status,
	}); err != nil {
		return View{}, Placement{}, fmt.Errorf("insert player: %w", err)
	}

	log.Ctx(ctx).Info().
		Int64("reservation_id", id).
		Str("player", name).
		Str("placement", placement.String()).
		Msg("Player registered")

	settled, err := s.Get(ctx, id)
	if err != nil {
		return View{}, Placement{}, err
	}
	return settled, placement, nil
}

// RemovePlayer deletes a player record no matter where it is placed.
func (s *Service) RemovePlayer(ctx context.Context, id int64, name string) (View, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	canonical, ok := view.CanonicalName(name)
	if !ok {
		return View{}, validation(ErrUnknownPlayer)
	}

	rows, err := s.db.Queries.DeletePlayer(ctx, appdb.DeletePlayerParams{
		ReservationID: id,
		Name:          canonical,
	})
	if err != nil {
		return View{}, fmt.Errorf("delete player: %w", err)
	}
	if rows == 0 {
		return View{}, validation(ErrUnknownPlayer)
	}

	return s.Get(ctx, id)
}

// Move transitions a player to the pool, the waitlist, or a court with free
// capacity. Promotion from the waitlist is the plain move to the pool.
func (s *Service) Move(ctx context.Context, id int64, name string, dest Placement) (View, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	if err := ValidateMove(view, name, dest); err != nil {
		return View{}, err
	}
	canonical, _ := view.CanonicalName(name)

	courtID := sql.NullInt64{}
	status := appdb.PlayerStatusRegistered
	switch dest.Kind {
	case PlacementWaitlist:
		status = appdb.PlayerStatusWaitlist
	case PlacementCourt:
		courtID = sql.NullInt64{Int64: dest.CourtID, Valid: true}
	}

	rows, err := s.db.Queries.UpdatePlayerPlacement(ctx, appdb.UpdatePlayerPlacementParams{
		ReservationID: id,
		Name:          canonical,
		CourtID:       courtID,
		Status:        status,
	})
	if err != nil {
		return View{}, fmt.Errorf("update player placement: %w", err)
	}
	if rows == 0 {
		return View{}, validation(ErrUnknownPlayer)
	}

	log.Ctx(ctx).Info().
		Int64("reservation_id", id).
		Str("player", canonical).
		Str("to", dest.String()).
		Msg("Player moved")

	return s.Get(ctx, id)
}

// UpdateCourt applies partial field edits (name, price, payee) to one court.
func (s *Service) UpdateCourt(ctx context.Context, id, courtID int64, edit CourtEdit) (View, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	court, ok := view.Court(courtID)
	if !ok {
		return View{}, validation(ErrUnknownCourt)
	}

	name := court.Name
	if edit.Name != nil {
		name = strings.TrimSpace(*edit.Name)
		if name == "" {
			return View{}, validationf("court name is required")
		}
	}
	priceCents := court.PriceCents
	if edit.PriceCents != nil {
		if *edit.PriceCents < 0 {
			return View{}, validationf("price must be 0 or greater")
		}
		priceCents = *edit.PriceCents
	}
	payTo := court.PayTo
	if edit.PayTo != nil {
		payTo = strings.TrimSpace(*edit.PayTo)
	}

	if err := s.db.Queries.UpdateCourt(ctx, appdb.UpdateCourtParams{
		ID:         courtID,
		Name:       name,
		PriceCents: priceCents,
		PayTo:      payTo,
	}); err != nil {
		return View{}, fmt.Errorf("update court: %w", err)
	}

	return s.Get(ctx, id)
}

// DeleteCourt removes a single court. Only empty courts may be deleted; the
// caller must relocate players first.
func (s *Service) DeleteCourt(ctx context.Context, id, courtID int64) (View, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	court, ok := view.Court(courtID)
	if !ok {
		return View{}, validation(ErrUnknownCourt)
	}
	if len(court.Players) > 0 {
		return View{}, validation(ErrCourtNotEmpty)
	}

	if err := s.db.Queries.DeleteCourt(ctx, courtID); err != nil {
		return View{}, fmt.Errorf("delete court: %w", err)
	}

	return s.Get(ctx, id)
}

// validateReservationFields checks the scalar reservation fields and returns
// the time bounds normalized to HH:MM.
func validateReservationFields(venue, date, timeStart, timeEnd string) (string, string, error) {
	if strings.TrimSpace(venue) == "" {
		return "", "", validationf("venue is required")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", "", validationf("date must be YYYY-MM-DD")
	}
	start, err := parseClock(timeStart)
	if err != nil {
		return "", "", validationf("start time must be HH:MM")
	}
	end, err := parseClock(timeEnd)
	if err != nil {
		return "", "", validationf("end time must be HH:MM")
	}
	return start, end, nil
}

// parseClock accepts HH:MM or HH:MM:SS and normalizes to HH:MM.
func parseClock(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{clockLayout, clockSecLayout} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format(clockLayout), nil
		}
	}
	return "", fmt.Errorf("invalid time of day: %q", value)
}
