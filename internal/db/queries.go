// internal/db/queries.go
package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same query layer can
// run inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

const (
	PlayerStatusRegistered = "registered"
	PlayerStatusWaitlist   = "waitlist"
)

type Reservation struct {
	ID        int64
	Venue     string
	Date      string // YYYY-MM-DD
	TimeStart string // HH:MM or HH:MM:SS
	TimeEnd   string
	CreatedAt time.Time
}

type Court struct {
	ID            int64
	ReservationID int64
	Name          string
	PriceCents    int64
	PayTo         string
	SortOrder     int64
}

type Player struct {
	ID            int64
	ReservationID int64
	CourtID       sql.NullInt64
	Name          string
	Status        string
	CreatedAt     time.Time
}

const listReservations = `
SELECT id, venue, date, time_start, time_end, created_at
FROM reservations
ORDER BY date, id
`

func (q *Queries) ListReservations(ctx context.Context) ([]Reservation, error) {
	rows, err := q.db.QueryContext(ctx, listReservations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []Reservation
	for rows.Next() {
		var r Reservation
		if err := rows.Scan(&r.ID, &r.Venue, &r.Date, &r.TimeStart, &r.TimeEnd, &r.CreatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

const getReservation = `
SELECT id, venue, date, time_start, time_end, created_at
FROM reservations
WHERE id = ?
`

func (q *Queries) GetReservation(ctx context.Context, id int64) (Reservation, error) {
	var r Reservation
	err := q.db.QueryRowContext(ctx, getReservation, id).
		Scan(&r.ID, &r.Venue, &r.Date, &r.TimeStart, &r.TimeEnd, &r.CreatedAt)
	return r, err
}

type CreateReservationParams struct {
	Venue     string
	Date      string
	TimeStart string
	TimeEnd   string
}

const createReservation = `
INSERT INTO reservations (venue, date, time_start, time_end)
VALUES (?, ?, ?, ?)
`

func (q *Queries) CreateReservation(ctx context.Context, params CreateReservationParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createReservation,
		params.Venue, params.Date, params.TimeStart, params.TimeEnd)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

type UpdateReservationParams struct {
	ID        int64
	Venue     string
	Date      string
	TimeStart string
	TimeEnd   string
}

const updateReservation = `
UPDATE reservations
SET venue = ?, date = ?, time_start = ?, time_end = ?
WHERE id = ?
`

func (q *Queries) UpdateReservation(ctx context.Context, params UpdateReservationParams) error {
	_, err := q.db.ExecContext(ctx, updateReservation,
		params.Venue, params.Date, params.TimeStart, params.TimeEnd, params.ID)
	return err
}

const deleteReservation = `DELETE FROM reservations WHERE id = ?`

// DeleteReservation removes a reservation; courts and players cascade.
func (q *Queries) DeleteReservation(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteReservation, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listReservationIDsBefore = `
SELECT id FROM reservations WHERE date < ? ORDER BY date, id
`

func (q *Queries) ListReservationIDsBefore(ctx context.Context, date string) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listReservationIDsBefore, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const listCourts = `
SELECT id, reservation_id, name, price_cents, pay_to, sort_order
FROM courts
ORDER BY reservation_id, sort_order, id
`

func (q *Queries) ListCourts(ctx context.Context) ([]Court, error) {
	rows, err := q.db.QueryContext(ctx, listCourts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourts(rows)
}

const listReservationCourts = `
SELECT id, reservation_id, name, price_cents, pay_to, sort_order
FROM courts
WHERE reservation_id = ?
ORDER BY sort_order, id
`

func (q *Queries) ListReservationCourts(ctx context.Context, reservationID int64) ([]Court, error) {
	rows, err := q.db.QueryContext(ctx, listReservationCourts, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourts(rows)
}

func scanCourts(rows *sql.Rows) ([]Court, error) {
	var courts []Court
	for rows.Next() {
		var c Court
		if err := rows.Scan(&c.ID, &c.ReservationID, &c.Name, &c.PriceCents, &c.PayTo, &c.SortOrder); err != nil {
			return nil, err
		}
		courts = append(courts, c)
	}
	return courts, rows.Err()
}

type CreateCourtParams struct {
	ReservationID int64
	Name          string
	PriceCents    int64
	PayTo         string
	SortOrder     int64
}

const createCourt = `
INSERT INTO courts (reservation_id, name, price_cents, pay_to, sort_order)
VALUES (?, ?, ?, ?, ?)
`

func (q *Queries) CreateCourt(ctx context.Context, params CreateCourtParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createCourt,
		params.ReservationID, params.Name, params.PriceCents, params.PayTo, params.SortOrder)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

type UpdateCourtParams struct {
	ID         int64
	Name       string
	PriceCents int64
	PayTo      string
}

const updateCourt = `
UPDATE courts
SET name = ?, price_cents = ?, pay_to = ?
WHERE id = ?
`

func (q *Queries) UpdateCourt(ctx context.Context, params UpdateCourtParams) error {
	_, err := q.db.ExecContext(ctx, updateCourt,
		params.Name, params.PriceCents, params.PayTo, params.ID)
	return err
}

const deleteCourt = `DELETE FROM courts WHERE id = ?`

func (q *Queries) DeleteCourt(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteCourt, id)
	return err
}

const listPlayers = `
SELECT id, reservation_id, court_id, name, status, created_at
FROM players
ORDER BY reservation_id, id
`

func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.CourtID, &p.Name, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

const listReservationPlayers = `
SELECT id, reservation_id, court_id, name, status, created_at
FROM players
WHERE reservation_id = ?
ORDER BY id
`

func (q *Queries) ListReservationPlayers(ctx context.Context, reservationID int64) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listReservationPlayers, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.CourtID, &p.Name, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

type CreatePlayerParams struct {
	ReservationID int64
	CourtID       sql.NullInt64
	Name          string
	Status        string
}

const createPlayer = `
INSERT INTO players (reservation_id, court_id, name, status)
VALUES (?, ?, ?, ?)
`

func (q *Queries) CreatePlayer(ctx context.Context, params CreatePlayerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createPlayer,
		params.ReservationID, params.CourtID, params.Name, params.Status)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

type DeletePlayerParams struct {
	ReservationID int64
	Name          string
}

const deletePlayer = `
DELETE FROM players WHERE reservation_id = ? AND name = ?
`

func (q *Queries) DeletePlayer(ctx context.Context, params DeletePlayerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePlayer, params.ReservationID, params.Name)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type UpdatePlayerPlacementParams struct {
	ReservationID int64
	Name          string
	CourtID       sql.NullInt64
	Status        string
}

const updatePlayerPlacement = `
UPDATE players
SET court_id = ?, status = ?
WHERE reservation_id = ? AND name = ?
`

func (q *Queries) UpdatePlayerPlacement(ctx context.Context, params UpdatePlayerPlacementParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updatePlayerPlacement,
		params.CourtID, params.Status, params.ReservationID, params.Name)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
