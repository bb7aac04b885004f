package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"meetroom/internal/models"
)

type MemoryRoomRepo struct {
	mu    sync.RWMutex
	rooms map[string]models.Room

	// onDelete is wired by NewMemoryBookingRepo to emulate the FK cascade.
	onDelete func(roomID string)
}

func NewMemoryRoomRepo() *MemoryRoomRepo {
	return &MemoryRoomRepo{rooms: map[string]models.Room{}}
}

func (r *MemoryRoomRepo) Create(_ context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if room.Color == "" {
		room.Color = models.ColorBlue
	}
	room.CreatedAt = time.Now().UTC()
	r.rooms[room.ID] = *room
	return nil
}

func (r *MemoryRoomRepo) List(_ context.Context) ([]models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRoomRepo) GetByID(_ context.Context, id string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &room, nil
}

func (r *MemoryRoomRepo) GetBySlug(_ context.Context, slug string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, room := range r.rooms {
		if room.Slug == slug {
			room := room
			return &room, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRoomRepo) UpdateColor(_ context.Context, id string, color models.EventColor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[id]
	if !ok {
		return ErrNotFound
	}
	room.Color = color
	r.rooms[id] = room
	return nil
}

func (r *MemoryRoomRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	if _, ok := r.rooms[id]; !ok {
		r.mu.Unlock()
		return false, nil
	}
	delete(r.rooms, id)
	onDelete := r.onDelete
	r.mu.Unlock()

	if onDelete != nil {
		onDelete(id)
	}
	return true, nil
}

// lookup is called by MemoryBookingRepo while it holds its own lock;
// rooms and bookings use separate mutexes so this does not deadlock.
func (r *MemoryRoomRepo) lookup(id string) *models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil
	}
	return &room
}
