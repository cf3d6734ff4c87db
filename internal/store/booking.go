package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"clinic-booking-api/internal/model"
)

// BookSlot creates the booking for slotID if, and only if, the slot exists,
// starts in the future, and has no booking yet. The availability check runs
// twice: once optimistically to fail fast, then again inside a transaction
// holding the slot's row lock. The UNIQUE (slot_id) index catches anything
// the lock misses under weaker isolation.
func (s *Store) BookSlot(ctx context.Context, slotID, userID string) (*model.Booking, error) {
	var startAt time.Time
	var existing *string
	err := s.pool.QueryRow(ctx,
		`SELECT s.start_at, b.id
		 FROM slots s LEFT JOIN bookings b ON b.slot_id = s.id
		 WHERE s.id = $1`, slotID,
	).Scan(&startAt, &existing)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}
	if !startAt.After(time.Now()) {
		return nil, ErrSlotExpired
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// re-check under the slot's row lock — competing bookings of the same
	// slot queue here and see the winner's row
	err = tx.QueryRow(ctx,
		`SELECT b.id
		 FROM slots s LEFT JOIN bookings b ON b.slot_id = s.id
		 WHERE s.id = $1
		 FOR UPDATE OF s`, slotID,
	).Scan(&existing)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	bk := &model.Booking{ID: uuid.New().String(), SlotID: slotID, UserID: userID}
	err = tx.QueryRow(ctx,
		`INSERT INTO bookings (id, slot_id, user_id) VALUES ($1,$2,$3) RETURNING created_at`,
		bk.ID, bk.SlotID, bk.UserID,
	).Scan(&bk.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return s.GetBooking(ctx, bk.ID)
}

func (s *Store) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	bk := &model.Booking{Slot: &model.Slot{}, User: &model.User{}}
	err := s.pool.QueryRow(ctx,
		`SELECT b.id, b.slot_id, b.user_id, b.created_at,
		        s.id, s.start_at, s.end_at,
		        u.id, u.name, u.email
		 FROM bookings b
		 JOIN slots s ON s.id = b.slot_id
		 JOIN users u ON u.id = b.user_id
		 WHERE b.id = $1`, id,
	).Scan(
		&bk.ID, &bk.SlotID, &bk.UserID, &bk.CreatedAt,
		&bk.Slot.ID, &bk.Slot.StartAt, &bk.Slot.EndAt,
		&bk.User.ID, &bk.User.Name, &bk.User.Email,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return bk, nil
}

// ListBookings returns bookings joined with slot and user, ordered by slot
// start time. An empty userID lists every booking (admin view).
func (s *Store) ListBookings(ctx context.Context, userID string) ([]model.Booking, error) {
	q := `SELECT b.id, b.slot_id, b.user_id, b.created_at,
	             s.id, s.start_at, s.end_at,
	             u.id, u.name, u.email
	      FROM bookings b
	      JOIN slots s ON s.id = b.slot_id
	      JOIN users u ON u.id = b.user_id`

	var args []any
	if userID != "" {
		q += ` WHERE b.user_id = $1`
		args = append(args, userID)
	}
	q += ` ORDER BY s.start_at`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		bk := model.Booking{Slot: &model.Slot{}, User: &model.User{}}
		if err := rows.Scan(
			&bk.ID, &bk.SlotID, &bk.UserID, &bk.CreatedAt,
			&bk.Slot.ID, &bk.Slot.StartAt, &bk.Slot.EndAt,
			&bk.User.ID, &bk.User.Name, &bk.User.Email,
		); err != nil {
			return nil, err
		}
		out = append(out, bk)
	}
	return out, rows.Err()
}
