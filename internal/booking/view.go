// internal/booking/view.go
package booking

import (
	"strings"
	"time"

	"github.com/dmoren/padelbook/internal/db"
)

// CourtCapacity is the fixed number of players a court can hold.
const CourtCapacity = 4

type CourtView struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"price_cents"`
	PayTo      string   `json:"pay_to"`
	Players    []string `json:"players"`
}

// View is the nested aggregate the presentation layer consumes: one
// reservation with its ordered courts, per-court rosters, the unassigned
// pool and the overflow waitlist.
type View struct {
	ID        int64       `json:"id"`
	Venue     string      `json:"venue"`
	Date      string      `json:"date"`
	TimeStart string      `json:"time_start"`
	TimeEnd   string      `json:"time_end"`
	Courts    []CourtView `json:"courts"`
	Pool      []string    `json:"pool"`
	Waitlist  []string    `json:"waitlist"`
	CreatedAt time.Time   `json:"created_at"`
}

// BuildViews joins independently loaded flat records into one aggregate per
// reservation. Reservation order is preserved from the input (the store
// returns them date-ordered); courts keep their stored sequence order.
//
// Each player lands in exactly one bucket, evaluated in order: a court
// reference resolving to a court of the same reservation wins, then the
// waitlist status, then the pool. A dangling court reference falls through
// to the status rules so the partition stays total.
func BuildViews(reservations []db.Reservation, courts []db.Court, players []db.Player) []View {
	views := make([]View, len(reservations))
	viewIndex := make(map[int64]int, len(reservations))
	for i, r := range reservations {
		views[i] = View{
			ID:        r.ID,
			Venue:     r.Venue,
			Date:      r.Date,
			TimeStart: normalizeClock(r.TimeStart),
			TimeEnd:   normalizeClock(r.TimeEnd),
			Courts:    []CourtView{},
			Pool:      []string{},
			Waitlist:  []string{},
			CreatedAt: r.CreatedAt,
		}
		viewIndex[r.ID] = i
	}

	// courtSlot locates a court inside its reservation's view.
	type slot struct {
		view  int
		court int
	}
	courtIndex := make(map[int64]slot, len(courts))
	for _, c := range courts {
		vi, ok := viewIndex[c.ReservationID]
		if !ok {
			continue
		}
		courtIndex[c.ID] = slot{view: vi, court: len(views[vi].Courts)}
		views[vi].Courts = append(views[vi].Courts, CourtView{
			ID:         c.ID,
			Name:       c.Name,
			PriceCents: c.PriceCents,
			PayTo:      c.PayTo,
			Players:    []string{},
		})
	}

	for _, p := range players {
		vi, ok := viewIndex[p.ReservationID]
		if !ok {
			continue
		}
		if p.CourtID.Valid {
			if s, ok := courtIndex[p.CourtID.Int64]; ok && s.view == vi {
				court := &views[vi].Courts[s.court]
				court.Players = append(court.Players, p.Name)
				continue
			}
		}
		if p.Status == db.PlayerStatusWaitlist {
			views[vi].Waitlist = append(views[vi].Waitlist, p.Name)
			continue
		}
		views[vi].Pool = append(views[vi].Pool, p.Name)
	}

	return views
}

// normalizeClock truncates a stored time-of-day to HH:MM.
func normalizeClock(value string) string {
	if len(value) > 5 {
		return value[:5]
	}
	return value
}

// Capacity is the total number of playable seats: four per court.
// The waitlist sits outside it.
func (v View) Capacity() int {
	return CourtCapacity * len(v.Courts)
}

// Placed counts players occupying capacity: the pool plus every court
// roster. Waitlisted players are excluded.
func (v View) Placed() int {
	total := len(v.Pool)
	for _, c := range v.Courts {
		total += len(c.Players)
	}
	return total
}

func (v View) IsFull() bool {
	return v.Placed() >= v.Capacity()
}

// Court returns the court with the given id, if it belongs to this view.
func (v View) Court(id int64) (CourtView, bool) {
	for _, c := range v.Courts {
		if c.ID == id {
			return c, true
		}
	}
	return CourtView{}, false
}

// PlacementOf reports where a player currently is, matching the name
// case-insensitively across the pool, every court and the waitlist.
func (v View) PlacementOf(name string) (Placement, bool) {
	for _, p := range v.Pool {
		if strings.EqualFold(p, name) {
			return PoolPlacement(), true
		}
	}
	for _, c := range v.Courts {
		for _, p := range c.Players {
			if strings.EqualFold(p, name) {
				return CourtPlacement(c.ID), true
			}
		}
	}
	for _, p := range v.Waitlist {
		if strings.EqualFold(p, name) {
			return WaitlistPlacement(), true
		}
	}
	return Placement{}, false
}

// HasPlayer reports whether name is already taken anywhere in the
// reservation, compared case-insensitively.
func (v View) HasPlayer(name string) bool {
	_, ok := v.PlacementOf(name)
	return ok
}

// CanonicalName returns the stored spelling of a player's name. Lookups are
// case-insensitive but the store matches names exactly, so writes must use
// the spelling returned here.
func (v View) CanonicalName(name string) (string, bool) {
	for _, p := range v.Pool {
		if strings.EqualFold(p, name) {
			return p, true
		}
	}
	for _, c := range v.Courts {
		for _, p := range c.Players {
			if strings.EqualFold(p, name) {
				return p, true
			}
		}
	}
	for _, p := range v.Waitlist {
		if strings.EqualFold(p, name) {
			return p, true
		}
	}
	return "", false
}
