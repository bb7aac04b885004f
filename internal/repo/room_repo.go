package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"meetroom/internal/models"
)

type RoomRepo interface {
	Create(ctx context.Context, room *models.Room) error
	List(ctx context.Context) ([]models.Room, error)
	GetByID(ctx context.Context, id string) (*models.Room, error)
	GetBySlug(ctx context.Context, slug string) (*models.Room, error)
	// UpdateColor backfills the category color on rooms seeded before the
	// color existed in the registry.
	UpdateColor(ctx context.Context, id string, color models.EventColor) error
	// Delete removes the room; its bookings go with it (cascade).
	Delete(ctx context.Context, id string) (bool, error)
}

type roomRepoPostgres struct{ db *sql.DB }

func NewRoomRepoPostgres(db *sql.DB) RoomRepo { return &roomRepoPostgres{db: db} }

const roomColumns = `id::text, slug, name, description, color, created_at`

func (r *roomRepoPostgres) Create(ctx context.Context, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if room.Color == "" {
		room.Color = models.ColorBlue
	}
	room.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (id, slug, name, description, color, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		room.ID, room.Slug, room.Name, nullStr(room.Description), string(room.Color), room.CreatedAt,
	)
	return err
}

func (r *roomRepoPostgres) List(ctx context.Context) ([]models.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Room{}
	for rows.Next() {
		room, err := scanRoomRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *room)
	}
	return out, rows.Err()
}

func (r *roomRepoPostgres) GetByID(ctx context.Context, id string) (*models.Room, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
	return scanRoom(row)
}

func (r *roomRepoPostgres) GetBySlug(ctx context.Context, slug string) (*models.Room, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE slug = $1`, slug)
	return scanRoom(row)
}

func (r *roomRepoPostgres) UpdateColor(ctx context.Context, id string, color models.EventColor) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET color = $2 WHERE id = $1`, id, string(color))
	return err
}

func (r *roomRepoPostgres) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func scanRoomRow(s rowScanner) (*models.Room, error) {
	var room models.Room
	var desc sql.NullString
	var color string
	if err := s.Scan(&room.ID, &room.Slug, &room.Name, &desc, &color, &room.CreatedAt); err != nil {
		return nil, err
	}
	room.Description = desc.String
	room.Color = models.EventColor(color)
	return &room, nil
}

func scanRoom(row *sql.Row) (*models.Room, error) {
	room, err := scanRoomRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return room, err
}
