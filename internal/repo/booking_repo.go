package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"meetroom/internal/models"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// BookingUpdate is the mutable field set of a booking. Room and owner are
// fixed at creation and never rewritten.
type BookingUpdate struct {
	Title       string
	Description string
	Color       string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
}

type BookingRepo interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, id string, upd BookingUpdate) (*models.Booking, error)
	Delete(ctx context.Context, id string) (bool, error)

	// ListByDateRange returns the room's bookings whose half-open interval
	// intersects [start, end], ordered by start time ascending. A booking
	// ending exactly at start is already over and excluded.
	ListByDateRange(ctx context.Context, roomID string, start, end time.Time) ([]models.Booking, error)
	// ListAllRoomsByDateRange is ListByDateRange across every room, joined
	// with the room's name and color.
	ListAllRoomsByDateRange(ctx context.Context, start, end time.Time) ([]models.RoomBooking, error)

	// HasConflict reports whether any booking in the room overlaps
	// [start, end), skipping excludeID when non-empty.
	HasConflict(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error)

	GetCurrent(ctx context.Context, roomID string, now time.Time) (*models.Booking, error)
	GetNext(ctx context.Context, roomID string, now time.Time) (*models.Booking, error)
}

type bookingRepoPostgres struct{ db *sql.DB }

func NewBookingRepoPostgres(db *sql.DB) BookingRepo { return &bookingRepoPostgres{db: db} }

const bookingColumns = `id::text, title, description, color, location, start_time, end_time, room_id::text, user_id, created_at`

func (r *bookingRepoPostgres) Create(ctx context.Context, b *models.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (id, title, description, color, location, start_time, end_time, room_id, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.Title, nullStr(b.Description), nullStr(b.Color), nullStr(b.Location),
		b.StartTime, b.EndTime, b.RoomID, b.UserID, b.CreatedAt,
	)
	return err
}

func (r *bookingRepoPostgres) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return scanBooking(row)
}

func (r *bookingRepoPostgres) Update(ctx context.Context, id string, upd BookingUpdate) (*models.Booking, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE bookings
		 SET title = $2, description = $3, color = $4, location = $5, start_time = $6, end_time = $7
		 WHERE id = $1
		 RETURNING `+bookingColumns,
		id, upd.Title, nullStr(upd.Description), nullStr(upd.Color), nullStr(upd.Location),
		upd.StartTime, upd.EndTime,
	)
	return scanBooking(row)
}

func (r *bookingRepoPostgres) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *bookingRepoPostgres) ListByDateRange(ctx context.Context, roomID string, start, end time.Time) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 WHERE room_id = $1 AND start_time <= $3 AND end_time > $2
		 ORDER BY start_time`,
		roomID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *bookingRepoPostgres) ListAllRoomsByDateRange(ctx context.Context, start, end time.Time) ([]models.RoomBooking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id::text, b.title, b.description, b.color, b.location, b.start_time, b.end_time,
		        b.room_id::text, b.user_id, b.created_at, r.name, r.color
		 FROM bookings b
		 INNER JOIN rooms r ON r.id = b.room_id
		 WHERE b.start_time <= $2 AND b.end_time > $1
		 ORDER BY b.start_time`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RoomBooking{}
	for rows.Next() {
		var rb models.RoomBooking
		var desc, color, loc sql.NullString
		if err := rows.Scan(
			&rb.ID, &rb.Title, &desc, &color, &loc, &rb.StartTime, &rb.EndTime,
			&rb.RoomID, &rb.UserID, &rb.CreatedAt, &rb.RoomName, &rb.RoomColor,
		); err != nil {
			return nil, err
		}
		rb.Description = desc.String
		rb.Color = color.String
		rb.Location = loc.String
		out = append(out, rb)
	}
	return out, rows.Err()
}

func (r *bookingRepoPostgres) HasConflict(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	// Half-open overlap: [s1,e1) and [s2,e2) intersect iff s1 < e2 AND s2 < e1.
	q := `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE room_id = $1 AND start_time < $3 AND end_time > $2`
	args := []any{roomID, start, end}
	if excludeID != "" {
		q += ` AND id <> $4`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&exists)
	return exists, err
}

func (r *bookingRepoPostgres) GetCurrent(ctx context.Context, roomID string, now time.Time) (*models.Booking, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 WHERE room_id = $1 AND start_time <= $2 AND end_time >= $2
		 ORDER BY start_time
		 LIMIT 1`,
		roomID, now,
	)
	b, err := scanBooking(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return b, err
}

func (r *bookingRepoPostgres) GetNext(ctx context.Context, roomID string, now time.Time) (*models.Booking, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 WHERE room_id = $1 AND start_time >= $2
		 ORDER BY start_time
		 LIMIT 1`,
		roomID, now,
	)
	b, err := scanBooking(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return b, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingRow(s rowScanner) (*models.Booking, error) {
	var b models.Booking
	var desc, color, loc sql.NullString
	if err := s.Scan(
		&b.ID, &b.Title, &desc, &color, &loc,
		&b.StartTime, &b.EndTime, &b.RoomID, &b.UserID, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	b.Description = desc.String
	b.Color = color.String
	b.Location = loc.String
	return &b, nil
}

func scanBooking(row *sql.Row) (*models.Booking, error) {
	b, err := scanBookingRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
