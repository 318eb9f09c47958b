// internal/booking/placement.go
package booking

import (
	"fmt"
	"strings"
)

// PlacementKind enumerates the three mutually exclusive places a player can
// occupy within a reservation.
type PlacementKind int

const (
	PlacementPool PlacementKind = iota
	PlacementWaitlist
	PlacementCourt
)

// Placement is a tagged variant: exactly one location per player. CourtID is
// meaningful only when Kind is PlacementCourt.
type Placement struct {
	Kind    PlacementKind
	CourtID int64
}

func PoolPlacement() Placement {
	return Placement{Kind: PlacementPool}
}

func WaitlistPlacement() Placement {
	return Placement{Kind: PlacementWaitlist}
}

func CourtPlacement(courtID int64) Placement {
	return Placement{Kind: PlacementCourt, CourtID: courtID}
}

func (p Placement) String() string {
	switch p.Kind {
	case PlacementPool:
		return "pool"
	case PlacementWaitlist:
		return "waitlist"
	case PlacementCourt:
		return fmt.Sprintf("court %d", p.CourtID)
	}
	return "unknown"
}

// RegistrationPlacement computes where a newly registered player goes: the
// pool while seats remain, the waitlist once the reservation is full. The
// caller never chooses.
func RegistrationPlacement(v View) Placement {
	if v.IsFull() {
		return WaitlistPlacement()
	}
	return PoolPlacement()
}

// ValidateRegistration rejects a registration before any record is created:
// the name must be non-empty and unused anywhere in the reservation under
// case-insensitive comparison.
func ValidateRegistration(v View, name string) error {
	if strings.TrimSpace(name) == "" {
		return validationf("player name is required")
	}
	if v.HasPlayer(name) {
		return validation(ErrDuplicateName)
	}
	return nil
}

// ValidateMove checks a placement transition. Moves to the pool or waitlist
// are always legal. A move onto a court requires the court to belong to the
// reservation, to hold fewer than four players, and to not already hold the
// player. A full court is a hard rejection, not a caller precondition.
func ValidateMove(v View, name string, dest Placement) error {
	current, ok := v.PlacementOf(name)
	if !ok {
		return validation(ErrUnknownPlayer)
	}

	switch dest.Kind {
	case PlacementPool, PlacementWaitlist:
		return nil
	case PlacementCourt:
		court, ok := v.Court(dest.CourtID)
		if !ok {
			return validation(ErrUnknownCourt)
		}
		if current.Kind == PlacementCourt && current.CourtID == dest.CourtID {
			return validation(ErrAlreadyOnCourt)
		}
		if len(court.Players) >= CourtCapacity {
			return validation(ErrCourtFull)
		}
		return nil
	}
	return validationf("unknown destination")
}
