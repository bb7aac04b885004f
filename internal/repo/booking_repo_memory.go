package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"meetroom/internal/models"
)

// MemoryBookingRepo backs the app when DB is disabled, and the unit tests.
// It shares room state with a MemoryRoomRepo so room deletion can cascade.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
	rooms    *MemoryRoomRepo
}

func NewMemoryBookingRepo(rooms *MemoryRoomRepo) *MemoryBookingRepo {
	r := &MemoryBookingRepo{
		bookings: map[string]models.Booking{},
		rooms:    rooms,
	}
	if rooms != nil {
		rooms.onDelete = r.dropRoom
	}
	return r
}

func (r *MemoryBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = time.Now().UTC()
	r.bookings[b.ID] = *b
	return nil
}

func (r *MemoryBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *MemoryBookingRepo) Update(_ context.Context, id string, upd BookingUpdate) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	b.Title = upd.Title
	b.Description = upd.Description
	b.Color = upd.Color
	b.Location = upd.Location
	b.StartTime = upd.StartTime
	b.EndTime = upd.EndTime
	r.bookings[id] = b
	return &b, nil
}

func (r *MemoryBookingRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

func (r *MemoryBookingRepo) ListByDateRange(_ context.Context, roomID string, start, end time.Time) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.RoomID != roomID {
			continue
		}
		if !intersectsRange(b.StartTime, b.EndTime, start, end) {
			continue
		}
		out = append(out, b)
	}
	sortByStart(out)
	return out, nil
}

func (r *MemoryBookingRepo) ListAllRoomsByDateRange(_ context.Context, start, end time.Time) ([]models.RoomBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.Booking{}
	for _, b := range r.bookings {
		if intersectsRange(b.StartTime, b.EndTime, start, end) {
			matched = append(matched, b)
		}
	}
	sortByStart(matched)

	out := []models.RoomBooking{}
	for _, b := range matched {
		rb := models.RoomBooking{Booking: b}
		if r.rooms != nil {
			if room := r.rooms.lookup(b.RoomID); room != nil {
				rb.RoomName = room.Name
				rb.RoomColor = string(room.Color)
			}
		}
		out = append(out, rb)
	}
	return out, nil
}

func (r *MemoryBookingRepo) HasConflict(_ context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.RoomID != roomID || b.ID == excludeID {
			continue
		}
		// s1 < e2 AND s2 < e1
		if b.StartTime.Before(end) && start.Before(b.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryBookingRepo) GetCurrent(_ context.Context, roomID string, now time.Time) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cur *models.Booking
	for _, b := range r.bookings {
		b := b
		if b.RoomID != roomID {
			continue
		}
		if b.StartTime.After(now) || b.EndTime.Before(now) {
			continue
		}
		if cur == nil || b.StartTime.Before(cur.StartTime) {
			cur = &b
		}
	}
	return cur, nil
}

func (r *MemoryBookingRepo) GetNext(_ context.Context, roomID string, now time.Time) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var next *models.Booking
	for _, b := range r.bookings {
		b := b
		if b.RoomID != roomID || b.StartTime.Before(now) {
			continue
		}
		if next == nil || b.StartTime.Before(next.StartTime) {
			next = &b
		}
	}
	return next, nil
}

// dropRoom removes the room's bookings, mirroring the FK cascade.
func (r *MemoryBookingRepo) dropRoom(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, b := range r.bookings {
		if b.RoomID == roomID {
			delete(r.bookings, id)
		}
	}
}

// intersectsRange matches the SQL predicate start_time <= end AND
// end_time > start. Bookings are half-open, so one ending exactly at the
// range start does not intersect.
func intersectsRange(s, e, start, end time.Time) bool {
	return !s.After(end) && e.After(start)
}

func sortByStart(bs []models.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		return bs[i].StartTime.Before(bs[j].StartTime)
	})
}
