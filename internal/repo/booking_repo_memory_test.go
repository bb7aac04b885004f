package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetroom/internal/models"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestStore(t *testing.T) (*MemoryRoomRepo, *MemoryBookingRepo, string) {
	t.Helper()
	rooms := NewMemoryRoomRepo()
	bookings := NewMemoryBookingRepo(rooms)

	room := &models.Room{Slug: "market", Name: "Market", Color: models.ColorBlue}
	require.NoError(t, rooms.Create(context.Background(), room))
	return rooms, bookings, room.ID
}

func addBooking(t *testing.T, r *MemoryBookingRepo, roomID, userID, start, end string) *models.Booking {
	t.Helper()
	b := &models.Booking{
		Title:     "Standup",
		StartTime: ts(start),
		EndTime:   ts(end),
		RoomID:    roomID,
		UserID:    userID,
	}
	require.NoError(t, r.Create(context.Background(), b))
	return b
}

func TestHasConflict(t *testing.T) {
	ctx := context.Background()
	_, bookings, roomID := newTestStore(t)
	addBooking(t, bookings, roomID, "u1", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z")

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"identical interval", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z", true},
		{"starts inside", "2024-06-01T09:30:00Z", "2024-06-01T10:30:00Z", true},
		{"ends inside", "2024-06-01T08:30:00Z", "2024-06-01T09:30:00Z", true},
		{"contains existing", "2024-06-01T08:00:00Z", "2024-06-01T11:00:00Z", true},
		{"contained by existing", "2024-06-01T09:15:00Z", "2024-06-01T09:45:00Z", true},
		{"back to back after", "2024-06-01T10:00:00Z", "2024-06-01T11:00:00Z", false},
		{"back to back before", "2024-06-01T08:00:00Z", "2024-06-01T09:00:00Z", false},
		{"entirely before", "2024-06-01T07:00:00Z", "2024-06-01T08:00:00Z", false},
		{"entirely after", "2024-06-01T11:00:00Z", "2024-06-01T12:00:00Z", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := bookings.HasConflict(ctx, roomID, ts(tc.start), ts(tc.end), "")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHasConflictOtherRoom(t *testing.T) {
	ctx := context.Background()
	rooms, bookings, roomID := newTestStore(t)
	addBooking(t, bookings, roomID, "u1", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z")

	other := &models.Room{Slug: "phinisi", Name: "Phinisi", Color: models.ColorViolet}
	require.NoError(t, rooms.Create(ctx, other))

	got, err := bookings.HasConflict(ctx, other.ID, ts("2024-06-01T09:00:00Z"), ts("2024-06-01T10:00:00Z"), "")
	require.NoError(t, err)
	assert.False(t, got, "bookings in another room never conflict")
}

func TestHasConflictExcludesSelf(t *testing.T) {
	ctx := context.Background()
	_, bookings, roomID := newTestStore(t)
	b := addBooking(t, bookings, roomID, "u1", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z")

	got, err := bookings.HasConflict(ctx, roomID, ts("2024-06-01T09:00:00Z"), ts("2024-06-01T10:00:00Z"), b.ID)
	require.NoError(t, err)
	assert.False(t, got, "a booking must not conflict with itself during update")

	addBooking(t, bookings, roomID, "u2", "2024-06-01T09:30:00Z", "2024-06-01T10:30:00Z")
	got, err = bookings.HasConflict(ctx, roomID, ts("2024-06-01T09:00:00Z"), ts("2024-06-01T10:00:00Z"), b.ID)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestListByDateRange(t *testing.T) {
	ctx := context.Background()
	_, bookings, roomID := newTestStore(t)

	a := addBooking(t, bookings, roomID, "u1", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z")

	got, err := bookings.ListByDateRange(ctx, roomID, ts("2024-06-01T08:00:00Z"), ts("2024-06-01T11:00:00Z"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	// the booking is half-open, so one ending exactly at the range start
	// is already over and excluded
	got, err = bookings.ListByDateRange(ctx, roomID, ts("2024-06-01T10:00:00Z"), ts("2024-06-01T12:00:00Z"))
	require.NoError(t, err)
	assert.Empty(t, got)

	// a booking starting exactly at the range end still intersects
	got, err = bookings.ListByDateRange(ctx, roomID, ts("2024-06-01T08:00:00Z"), ts("2024-06-01T09:00:00Z"))
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = bookings.ListByDateRange(ctx, roomID, ts("2024-06-01T06:00:00Z"), ts("2024-06-01T08:59:59Z"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListByDateRangeOrdering(t *testing.T) {
	ctx := context.Background()
	_, bookings, roomID := newTestStore(t)

	late := addBooking(t, bookings, roomID, "u1", "2024-06-01T15:00:00Z", "2024-06-01T16:00:00Z")
	early := addBooking(t, bookings, roomID, "u1", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z")
	mid := addBooking(t, bookings, roomID, "u1", "2024-06-01T12:00:00Z", "2024-06-01T13:00:00Z")

	got, err := bookings.ListByDateRange(ctx, roomID, ts("2024-06-01T00:00:00Z"), ts("2024-06-02T00:00:00Z"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{early.ID, mid.ID, late.ID}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestListAllRoomsJoinsRoomFields(t *testing.T) {
	ctx := context.Background()
	rooms, bookings, roomID := newTestStore(t)

	other := &models.Room{Slug: "small-studio", Name: "Small Studio", Color: models.ColorOrange}
	require.NoError(t, rooms.Create(ctx, other))

	addBooking(t, bookings, roomID, "u1", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z")
	addBooking(t, bookings, other.ID, "u2", "2024-06-01T08:00:00Z", "2024-06-01T09:00:00Z")

	got, err := bookings.ListAllRoomsByDateRange(ctx, ts("2024-06-01T00:00:00Z"), ts("2024-06-02T00:00:00Z"))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Small Studio", got[0].RoomName)
	assert.Equal(t, "orange", got[0].RoomColor)
	assert.Equal(t, "Market", got[1].RoomName)
	assert.Equal(t, "blue", got[1].RoomColor)
}

func TestUpdateMissing(t *testing.T) {
	ctx := context.Background()
	_, bookings, roomID := newTestStore(t)
	a := addBooking(t, bookings, roomID, "u1", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z")

	_, err := bookings.Update(ctx, "no-such-id", BookingUpdate{
		Title:     "Ghost",
		StartTime: ts("2024-06-01T09:00:00Z"),
		EndTime:   ts("2024-06-01T10:00:00Z"),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// the store is untouched
	stored, err := bookings.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", stored.Title)
}

func TestDeleteMissing(t *testing.T) {
	ctx := context.Background()
	_, bookings, roomID := newTestStore(t)
	a := addBooking(t, bookings, roomID, "u1", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z")

	ok, err := bookings.Delete(ctx, "no-such-id")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = bookings.GetByID(ctx, a.ID)
	assert.NoError(t, err)
}

func TestRoomDeleteCascades(t *testing.T) {
	ctx := context.Background()
	rooms, bookings, roomID := newTestStore(t)

	a := addBooking(t, bookings, roomID, "u1", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z")
	addBooking(t, bookings, roomID, "u2", "2024-06-01T11:00:00Z", "2024-06-01T12:00:00Z")

	ok, err := rooms.Delete(ctx, roomID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = bookings.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := bookings.ListByDateRange(ctx, roomID, ts("2024-06-01T00:00:00Z"), ts("2024-06-02T00:00:00Z"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetCurrentAndNext(t *testing.T) {
	ctx := context.Background()
	_, bookings, roomID := newTestStore(t)

	addBooking(t, bookings, roomID, "u1", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z")
	next := addBooking(t, bookings, roomID, "u1", "2024-06-01T11:00:00Z", "2024-06-01T12:00:00Z")
	addBooking(t, bookings, roomID, "u1", "2024-06-01T14:00:00Z", "2024-06-01T15:00:00Z")

	now := ts("2024-06-01T09:30:00Z")
	cur, err := bookings.GetCurrent(ctx, roomID, now)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, ts("2024-06-01T09:00:00Z"), cur.StartTime)

	nb, err := bookings.GetNext(ctx, roomID, now)
	require.NoError(t, err)
	require.NotNil(t, nb)
	assert.Equal(t, next.ID, nb.ID)

	// idle room
	cur, err = bookings.GetCurrent(ctx, roomID, ts("2024-06-01T10:30:00Z"))
	require.NoError(t, err)
	assert.Nil(t, cur)

	nb, err = bookings.GetNext(ctx, roomID, ts("2024-06-01T16:00:00Z"))
	require.NoError(t, err)
	assert.Nil(t, nb)
}
