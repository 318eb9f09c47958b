package booking

import (
	"database/sql"
	"reflect"
	"testing"

	"github.com/dmoren/padelbook/internal/db"
)

func nullCourt(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}

func TestBuildViews_Partition(t *testing.T) {
	reservations := []db.Reservation{
		{ID: 1, Venue: "Puerta Hierro", Date: "2026-03-01", TimeStart: "18:30:00", TimeEnd: "20:00:00"},
	}
	courts := []db.Court{
		{ID: 10, ReservationID: 1, Name: "Pista 14", PriceCents: 600, SortOrder: 0},
		{ID: 11, ReservationID: 1, Name: "Pista 15", PriceCents: 600, SortOrder: 1},
	}
	players := []db.Player{
		{ID: 1, ReservationID: 1, Name: "Ana", Status: db.PlayerStatusRegistered},
		{ID: 2, ReservationID: 1, CourtID: nullCourt(10), Name: "Bea", Status: db.PlayerStatusRegistered},
		{ID: 3, ReservationID: 1, CourtID: nullCourt(11), Name: "Carla", Status: db.PlayerStatusRegistered},
		{ID: 4, ReservationID: 1, Name: "Diego", Status: db.PlayerStatusWaitlist},
	}

	views := BuildViews(reservations, courts, players)
	if len(views) != 1 {
		t.Fatalf("views: %d, want 1", len(views))
	}
	view := views[0]

	if !reflect.DeepEqual(view.Pool, []string{"Ana"}) {
		t.Errorf("pool = %v, want [Ana]", view.Pool)
	}
	if !reflect.DeepEqual(view.Waitlist, []string{"Diego"}) {
		t.Errorf("waitlist = %v, want [Diego]", view.Waitlist)
	}
	if !reflect.DeepEqual(view.Courts[0].Players, []string{"Bea"}) {
		t.Errorf("court 0 roster = %v, want [Bea]", view.Courts[0].Players)
	}
	if !reflect.DeepEqual(view.Courts[1].Players, []string{"Carla"}) {
		t.Errorf("court 1 roster = %v, want [Carla]", view.Courts[1].Players)
	}

	// Every player in exactly one bucket.
	total := len(view.Pool) + len(view.Waitlist)
	for _, c := range view.Courts {
		total += len(c.Players)
	}
	if total != len(players) {
		t.Errorf("partition total = %d, want %d", total, len(players))
	}
}

func TestBuildViews_TimeNormalization(t *testing.T) {
	views := BuildViews(
		[]db.Reservation{{ID: 1, Venue: "Club", Date: "2026-01-10", TimeStart: "18:30:00", TimeEnd: "20:00"}},
		nil, nil,
	)
	if views[0].TimeStart != "18:30" {
		t.Errorf("time_start = %q, want 18:30", views[0].TimeStart)
	}
	if views[0].TimeEnd != "20:00" {
		t.Errorf("time_end = %q, want 20:00", views[0].TimeEnd)
	}
}

func TestBuildViews_DanglingCourtReferenceStaysTotal(t *testing.T) {
	reservations := []db.Reservation{
		{ID: 1, Venue: "Club", Date: "2026-01-10", TimeStart: "18:00", TimeEnd: "19:00"},
	}
	players := []db.Player{
		{ID: 1, ReservationID: 1, CourtID: nullCourt(999), Name: "Ana", Status: db.PlayerStatusRegistered},
		{ID: 2, ReservationID: 1, CourtID: nullCourt(999), Name: "Bea", Status: db.PlayerStatusWaitlist},
	}

	view := BuildViews(reservations, nil, players)[0]
	if !reflect.DeepEqual(view.Pool, []string{"Ana"}) {
		t.Errorf("pool = %v, want [Ana]", view.Pool)
	}
	if !reflect.DeepEqual(view.Waitlist, []string{"Bea"}) {
		t.Errorf("waitlist = %v, want [Bea]", view.Waitlist)
	}
}

func TestBuildViews_EmptyReservation(t *testing.T) {
	view := BuildViews(
		[]db.Reservation{{ID: 1, Venue: "Club", Date: "2026-01-10", TimeStart: "18:00", TimeEnd: "19:00"}},
		nil, nil,
	)[0]

	if view.Courts == nil || view.Pool == nil || view.Waitlist == nil {
		t.Fatalf("buckets must be non-nil: courts=%v pool=%v waitlist=%v",
			view.Courts, view.Pool, view.Waitlist)
	}
	if view.Capacity() != 0 {
		t.Errorf("capacity = %d, want 0", view.Capacity())
	}
}

func TestViewCapacityAndPlaced(t *testing.T) {
	view := View{
		Courts: []CourtView{
			{ID: 1, Players: []string{"a", "b", "c", "d"}},
			{ID: 2, Players: []string{"e"}},
		},
		Pool:     []string{"f", "g"},
		Waitlist: []string{"h", "i", "j"},
	}

	if got := view.Capacity(); got != 8 {
		t.Errorf("capacity = %d, want 8", got)
	}
	// Waitlist never counts toward capacity.
	if got := view.Placed(); got != 7 {
		t.Errorf("placed = %d, want 7", got)
	}
	if view.IsFull() {
		t.Error("IsFull() = true, want false")
	}
}

func TestViewPlacementOf(t *testing.T) {
	view := View{
		Courts:   []CourtView{{ID: 5, Players: []string{"Bea"}}},
		Pool:     []string{"Ana"},
		Waitlist: []string{"Carla"},
	}

	tests := []struct {
		name   string
		player string
		want   Placement
		found  bool
	}{
		{name: "pool", player: "ana", want: PoolPlacement(), found: true},
		{name: "court", player: "BEA", want: CourtPlacement(5), found: true},
		{name: "waitlist", player: "Carla", want: WaitlistPlacement(), found: true},
		{name: "missing", player: "Zoe", found: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := view.PlacementOf(test.player)
			if ok != test.found {
				t.Fatalf("found = %t, want %t", ok, test.found)
			}
			if ok && got != test.want {
				t.Fatalf("placement = %v, want %v", got, test.want)
			}
		})
	}
}
