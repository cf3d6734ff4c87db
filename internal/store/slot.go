package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/slotgen"
)

// SlotWithBooking is a slot joined with its booking, if any.
type SlotWithBooking struct {
	model.Slot
	Booking *model.Booking
}

// ListSlots returns slots starting in [from, to] with any booking and the
// booking user's public fields, ordered by start time. If the range holds no
// slots yet, the grid for the rolling horizon is generated and inserted first;
// the unique (start_at, end_at) constraint makes concurrent first-time
// requests converge on a single grid.
func (s *Store) ListSlots(ctx context.Context, from, to time.Time) ([]SlotWithBooking, error) {
	out, err := s.querySlots(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(out) > 0 {
		return out, nil
	}

	if err := s.InsertSlots(ctx, slotgen.Generate(time.Now())); err != nil {
		return nil, err
	}
	return s.querySlots(ctx, from, to)
}

func (s *Store) querySlots(ctx context.Context, from, to time.Time) ([]SlotWithBooking, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT s.id, s.start_at, s.end_at, s.created_at,
		        b.id, b.user_id, b.created_at,
		        u.id, u.name, u.email
		 FROM slots s
		 LEFT JOIN bookings b ON b.slot_id = s.id
		 LEFT JOIN users u ON u.id = b.user_id
		 WHERE s.start_at >= $1 AND s.start_at <= $2
		 ORDER BY s.start_at`, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SlotWithBooking
	for rows.Next() {
		var sl SlotWithBooking
		var bID, bUserID, uID, uName, uEmail *string
		var bCreatedAt *time.Time
		if err := rows.Scan(
			&sl.ID, &sl.StartAt, &sl.EndAt, &sl.CreatedAt,
			&bID, &bUserID, &bCreatedAt,
			&uID, &uName, &uEmail,
		); err != nil {
			return nil, err
		}
		if bID != nil {
			sl.Booking = &model.Booking{
				ID:        *bID,
				SlotID:    sl.ID,
				UserID:    *bUserID,
				CreatedAt: *bCreatedAt,
				User:      &model.User{ID: *uID, Name: *uName, Email: *uEmail},
			}
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

// InsertSlots writes the generated windows, skipping any window that already
// exists.
func (s *Store) InsertSlots(ctx context.Context, windows []slotgen.Window) error {
	if len(windows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, w := range windows {
		_, err = tx.Exec(ctx,
			`INSERT INTO slots (id, start_at, end_at) VALUES ($1,$2,$3)
			 ON CONFLICT (start_at, end_at) DO NOTHING`,
			uuid.New().String(), w.StartAt, w.EndAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// CountSlots reports how many slots exist. Used by the seeder.
func (s *Store) CountSlots(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM slots`).Scan(&n)
	return n, err
}
