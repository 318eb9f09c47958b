package booking

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/dmoren/padelbook/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(testutil.NewTestDB(t))
}

func createTestReservation(t *testing.T, svc *Service, courts int) View {
	t.Helper()
	view, err := svc.Create(context.Background(), CreateParams{
		Venue:      "Puerta Hierro",
		Date:       "2026-03-01",
		TimeStart:  "18:30",
		TimeEnd:    "20:00",
		Courts:     courts,
		FirstCourt: "Pista 14",
		PriceCents: 600,
	})
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	return view
}

func TestServiceCreate(t *testing.T) {
	svc := newTestService(t)
	view := createTestReservation(t, svc, 2)

	if view.Venue != "Puerta Hierro" {
		t.Errorf("venue = %q", view.Venue)
	}
	if view.TimeStart != "18:30" || view.TimeEnd != "20:00" {
		t.Errorf("times = %q-%q", view.TimeStart, view.TimeEnd)
	}
	if len(view.Courts) != 2 {
		t.Fatalf("courts = %d, want 2", len(view.Courts))
	}
	if view.Courts[0].Name != "Pista 14" || view.Courts[1].Name != "Pista 15" {
		t.Errorf("court names = %q, %q", view.Courts[0].Name, view.Courts[1].Name)
	}
	if view.Capacity() != 8 {
		t.Errorf("capacity = %d, want 8", view.Capacity())
	}
}

func TestServiceCreate_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params CreateParams
	}{
		{name: "missing_venue", params: CreateParams{Date: "2026-03-01", TimeStart: "18:30", TimeEnd: "20:00", Courts: 1}},
		{name: "bad_date", params: CreateParams{Venue: "Club", Date: "01/03/2026", TimeStart: "18:30", TimeEnd: "20:00", Courts: 1}},
		{name: "bad_time", params: CreateParams{Venue: "Club", Date: "2026-03-01", TimeStart: "half past six", TimeEnd: "20:00", Courts: 1}},
		{name: "zero_courts", params: CreateParams{Venue: "Club", Date: "2026-03-01", TimeStart: "18:30", TimeEnd: "20:00", Courts: 0}},
		{name: "negative_price", params: CreateParams{Venue: "Club", Date: "2026-03-01", TimeStart: "18:30", TimeEnd: "20:00", Courts: 1, PriceCents: -1}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, test.params); !IsValidation(err) {
				t.Fatalf("error = %v, want validation error", err)
			}
		})
	}

	// Nothing was written.
	views, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("reservations after rejected creates = %d, want 0", len(views))
	}
}

func TestServiceRegister_OverflowToWaitlist(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	view := createTestReservation(t, svc, 2) // capacity 8

	for i := 1; i <= 8; i++ {
		var placement Placement
		var err error
		view, placement, err = svc.Register(ctx, view.ID, fmt.Sprintf("Player %d", i))
		if err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
		if placement.Kind != PlacementPool {
			t.Fatalf("player %d placement = %v, want pool", i, placement)
		}
	}

	view, placement, err := svc.Register(ctx, view.ID, "Player 9")
	if err != nil {
		t.Fatalf("register overflow: %v", err)
	}
	if placement.Kind != PlacementWaitlist {
		t.Fatalf("overflow placement = %v, want waitlist", placement)
	}
	if !reflect.DeepEqual(view.Waitlist, []string{"Player 9"}) {
		t.Errorf("waitlist = %v", view.Waitlist)
	}
	if view.Placed() != 8 {
		t.Errorf("placed = %d, want 8", view.Placed())
	}
}

func TestServiceRegister_DuplicateName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	view := createTestReservation(t, svc, 1)

	if _, _, err := svc.Register(ctx, view.ID, "Ana"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := svc.Register(ctx, view.ID, "ANA")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("error = %v, want ErrDuplicateName", err)
	}

	// No record was created for the rejected registration.
	settled, err := svc.Get(ctx, view.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := settled.Placed() + len(settled.Waitlist); got != 1 {
		t.Fatalf("players = %d, want 1", got)
	}
}

func TestServiceMove(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	view := createTestReservation(t, svc, 1)

	for _, name := range []string{"Ana", "Bea", "Carla", "Diego"} {
		if _, _, err := svc.Register(ctx, view.ID, name); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	courtID := view.Courts[0].ID
	for _, name := range []string{"Ana", "Bea", "Carla", "Diego"} {
		var err error
		view, err = svc.Move(ctx, view.ID, name, CourtPlacement(courtID))
		if err != nil {
			t.Fatalf("move %s: %v", name, err)
		}
	}
	if got := len(view.Courts[0].Players); got != 4 {
		t.Fatalf("roster = %d, want 4", got)
	}

	// Capacity 4 is used up, so Eva lands on the waitlist.
	if _, _, err := svc.Register(ctx, view.ID, "Eva"); err != nil {
		t.Fatalf("register Eva: %v", err)
	}
	_, err := svc.Move(ctx, view.ID, "Eva", CourtPlacement(courtID))
	if !errors.Is(err, ErrCourtFull) {
		t.Fatalf("error = %v, want ErrCourtFull", err)
	}

	// Promotion is the plain move to the pool.
	view, err = svc.Move(ctx, view.ID, "Eva", PoolPlacement())
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if !reflect.DeepEqual(view.Pool, []string{"Eva"}) {
		t.Errorf("pool = %v, want [Eva]", view.Pool)
	}
	if len(view.Waitlist) != 0 {
		t.Errorf("waitlist = %v, want empty", view.Waitlist)
	}
}

func TestServiceRemovePlayer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	view := createTestReservation(t, svc, 1)

	if _, _, err := svc.Register(ctx, view.ID, "Ana"); err != nil {
		t.Fatalf("register: %v", err)
	}
	view, err := svc.RemovePlayer(ctx, view.ID, "ana")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if view.Placed() != 0 {
		t.Errorf("placed = %d, want 0", view.Placed())
	}

	_, err = svc.RemovePlayer(ctx, view.ID, "Ana")
	if !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("error = %v, want ErrUnknownPlayer", err)
	}
}

func TestServiceUpdate_GrowAppendsCourts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	view := createTestReservation(t, svc, 2)

	view, err := svc.Update(ctx, view.ID, UpdateParams{
		Venue:      "Puerta Hierro",
		Date:       "2026-03-02",
		TimeStart:  "19:00",
		TimeEnd:    "20:30",
		Courts:     4,
		PriceCents: 750,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if view.Date != "2026-03-02" || view.TimeStart != "19:00" {
		t.Errorf("scalar edits not applied: %q %q", view.Date, view.TimeStart)
	}
	if len(view.Courts) != 4 {
		t.Fatalf("courts = %d, want 4", len(view.Courts))
	}
	if view.Courts[2].Name != "Pista 16" || view.Courts[3].Name != "Pista 17" {
		t.Errorf("new names = %q, %q", view.Courts[2].Name, view.Courts[3].Name)
	}
	if view.Courts[2].PriceCents != 750 {
		t.Errorf("new court price = %d, want 750", view.Courts[2].PriceCents)
	}
	// Existing courts keep their price.
	if view.Courts[0].PriceCents != 600 {
		t.Errorf("existing court price = %d, want 600", view.Courts[0].PriceCents)
	}
}

func TestServiceUpdate_ShrinkBlockedByOccupants(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	view := createTestReservation(t, svc, 3)

	if _, _, err := svc.Register(ctx, view.ID, "Ana"); err != nil {
		t.Fatalf("register: %v", err)
	}
	lastCourt := view.Courts[2].ID
	if _, err := svc.Move(ctx, view.ID, "Ana", CourtPlacement(lastCourt)); err != nil {
		t.Fatalf("move: %v", err)
	}

	_, err := svc.Update(ctx, view.ID, UpdateParams{
		Venue:     "Puerta Hierro",
		Date:      "2026-03-01",
		TimeStart: "18:30",
		TimeEnd:   "20:00",
		Courts:    2,
	})
	if !errors.Is(err, ErrNonEmptyCourtRemoval) {
		t.Fatalf("error = %v, want ErrNonEmptyCourtRemoval", err)
	}

	// Rejected whole: no court was deleted.
	settled, err := svc.Get(ctx, view.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(settled.Courts) != 3 {
		t.Fatalf("courts = %d, want 3", len(settled.Courts))
	}
}

func TestServiceUpdate_ShrinkEmptyCourts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	view := createTestReservation(t, svc, 3)

	view, err := svc.Update(ctx, view.ID, UpdateParams{
		Venue:     "Puerta Hierro",
		Date:      "2026-03-01",
		TimeStart: "18:30",
		TimeEnd:   "20:00",
		Courts:    1,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(view.Courts) != 1 {
		t.Fatalf("courts = %d, want 1", len(view.Courts))
	}
	if view.Courts[0].Name != "Pista 14" {
		t.Errorf("remaining court = %q, want Pista 14", view.Courts[0].Name)
	}
}

func TestServiceUpdateCourt(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	view := createTestReservation(t, svc, 1)

	name := "Pista Central"
	price := int64(900)
	payTo := "Marta"
	view, err := svc.UpdateCourt(ctx, view.ID, view.Courts[0].ID, CourtEdit{
		Name:       &name,
		PriceCents: &price,
		PayTo:      &payTo,
	})
	if err != nil {
		t.Fatalf("update court: %v", err)
	}
	court := view.Courts[0]
	if court.Name != "Pista Central" || court.PriceCents != 900 || court.PayTo != "Marta" {
		t.Errorf("court = %+v", court)
	}

	// Partial edit leaves other fields alone.
	price = 950
	view, err = svc.UpdateCourt(ctx, view.ID, court.ID, CourtEdit{PriceCents: &price})
	if err != nil {
		t.Fatalf("partial update: %v", err)
	}
	if view.Courts[0].Name != "Pista Central" || view.Courts[0].PriceCents != 950 {
		t.Errorf("court after partial edit = %+v", view.Courts[0])
	}
}

func TestServiceDeleteCourt(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	view := createTestReservation(t, svc, 2)

	if _, _, err := svc.Register(ctx, view.ID, "Ana"); err != nil {
		t.Fatalf("register: %v", err)
	}
	courtID := view.Courts[0].ID
	if _, err := svc.Move(ctx, view.ID, "Ana", CourtPlacement(courtID)); err != nil {
		t.Fatalf("move: %v", err)
	}

	_, err := svc.DeleteCourt(ctx, view.ID, courtID)
	if !errors.Is(err, ErrCourtNotEmpty) {
		t.Fatalf("error = %v, want ErrCourtNotEmpty", err)
	}

	view, err = svc.DeleteCourt(ctx, view.ID, view.Courts[1].ID)
	if err != nil {
		t.Fatalf("delete empty court: %v", err)
	}
	if len(view.Courts) != 1 {
		t.Fatalf("courts = %d, want 1", len(view.Courts))
	}
}

func TestServiceDelete_Cascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	view := createTestReservation(t, svc, 2)

	if _, _, err := svc.Register(ctx, view.ID, "Ana"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Delete(ctx, view.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Get(ctx, view.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("error = %v, want ErrReservationNotFound", err)
	}

	var players int
	if err := svc.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&players); err != nil {
		t.Fatalf("count players: %v", err)
	}
	if players != 0 {
		t.Fatalf("orphaned players = %d, want 0", players)
	}
	var courts int
	if err := svc.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM courts").Scan(&courts); err != nil {
		t.Fatalf("count courts: %v", err)
	}
	if courts != 0 {
		t.Fatalf("orphaned courts = %d, want 0", courts)
	}
}

func TestServicePurgeBefore(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dates := []string{"2026-01-05", "2026-01-20", "2026-02-10", "2026-03-01"}
	ids := make(map[string]int64, len(dates))
	for _, date := range dates {
		view, err := svc.Create(ctx, CreateParams{
			Venue:      "Club",
			Date:       date,
			TimeStart:  "18:00",
			TimeEnd:    "19:30",
			Courts:     1,
			FirstCourt: "Pista 1",
			PriceCents: 600,
		})
		if err != nil {
			t.Fatalf("create %s: %v", date, err)
		}
		ids[date] = view.ID
	}

	deleted, err := svc.PurgeBefore(ctx, "2026-02-10")
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}

	// Strictly before: the reservation on the cutoff date survives.
	if _, err := svc.Get(ctx, ids["2026-02-10"]); err != nil {
		t.Errorf("cutoff-date reservation removed: %v", err)
	}
	if _, err := svc.Get(ctx, ids["2026-01-05"]); !errors.Is(err, ErrReservationNotFound) {
		t.Errorf("old reservation survived: %v", err)
	}

	deleted, err = svc.PurgeBefore(ctx, "2026-01-01")
	if err != nil {
		t.Fatalf("purge noop: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("deleted = %d, want 0", deleted)
	}

	if _, err := svc.PurgeBefore(ctx, "soon"); !IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestServiceList_DateOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, date := range []string{"2026-03-01", "2026-01-10", "2026-02-15"} {
		if _, err := svc.Create(ctx, CreateParams{
			Venue: "Club", Date: date, TimeStart: "18:00", TimeEnd: "19:00",
			Courts: 1, FirstCourt: "Pista 1",
		}); err != nil {
			t.Fatalf("create %s: %v", date, err)
		}
	}

	views, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var dates []string
	for _, v := range views {
		dates = append(dates, v.Date)
	}
	want := []string{"2026-01-10", "2026-02-15", "2026-03-01"}
	if !reflect.DeepEqual(dates, want) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
}
