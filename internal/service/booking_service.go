package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetroom/internal/models"
	"meetroom/internal/repo"
)

// ErrInvalid marks caller mistakes (missing fields, bad ranges) so the HTTP
// layer can answer 400 instead of 500.
var ErrInvalid = errors.New("invalid input")

// BookingService is the CRUD and range-query layer over the booking store.
// Ownership checks live in the HTTP surface, not here.
type BookingService interface {
	ListByDateRange(ctx context.Context, roomID string, start, end time.Time) ([]models.CalendarEvent, error)
	ListAllRoomsByDateRange(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	Create(ctx context.Context, ev models.CalendarEvent, roomID, userID string) (*models.Booking, error)
	Update(ctx context.Context, id string, ev models.CalendarEvent) (*models.Booking, error)
	Delete(ctx context.Context, id string) (bool, error)

	// IsAvailable is the advisory conflict check. Create and Update never
	// consult it; overlapping bookings are allowed and the calendar stacks
	// them. Callers opt in through this method.
	IsAvailable(ctx context.Context, roomID string, start, end time.Time) (bool, error)

	// Status returns the booking covering now and the earliest one starting
	// at or after now; either may be nil.
	Status(ctx context.Context, roomID string, now time.Time) (current, next *models.Booking, err error)
}

type bookingService struct {
	book repo.BookingRepo
}

func NewBookingService(b repo.BookingRepo) BookingService {
	return &bookingService{book: b}
}

func (s *bookingService) ListByDateRange(ctx context.Context, roomID string, start, end time.Time) ([]models.CalendarEvent, error) {
	bs, err := s.book.ListByDateRange(ctx, roomID, start, end)
	if err != nil {
		return nil, err
	}
	events := make([]models.CalendarEvent, 0, len(bs))
	for i := range bs {
		events = append(events, models.EventFromBooking(&bs[i]))
	}
	return events, nil
}

func (s *bookingService) ListAllRoomsByDateRange(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error) {
	rbs, err := s.book.ListAllRoomsByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	events := make([]models.CalendarEvent, 0, len(rbs))
	for i := range rbs {
		events = append(events, models.EventFromRoomBooking(&rbs[i]))
	}
	return events, nil
}

func (s *bookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	return s.book.GetByID(ctx, id)
}

func (s *bookingService) Create(ctx context.Context, ev models.CalendarEvent, roomID, userID string) (*models.Booking, error) {
	if err := validateEvent(ev); err != nil {
		return nil, err
	}
	if roomID == "" {
		return nil, fmt.Errorf("%w: missing room id", ErrInvalid)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalid)
	}
	b := &models.Booking{
		Title:       ev.Title,
		Description: ev.Description,
		Color:       ev.Color,
		Location:    ev.Location,
		StartTime:   ev.Start,
		EndTime:     ev.End,
		RoomID:      roomID,
		UserID:      userID,
	}
	if err := s.book.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bookingService) Update(ctx context.Context, id string, ev models.CalendarEvent) (*models.Booking, error) {
	if err := validateEvent(ev); err != nil {
		return nil, err
	}
	// room and owner are never rewritten
	return s.book.Update(ctx, id, repo.BookingUpdate{
		Title:       ev.Title,
		Description: ev.Description,
		Color:       ev.Color,
		Location:    ev.Location,
		StartTime:   ev.Start,
		EndTime:     ev.End,
	})
}

func (s *bookingService) Delete(ctx context.Context, id string) (bool, error) {
	return s.book.Delete(ctx, id)
}

func (s *bookingService) IsAvailable(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	conflict, err := s.book.HasConflict(ctx, roomID, start, end, "")
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

func (s *bookingService) Status(ctx context.Context, roomID string, now time.Time) (*models.Booking, *models.Booking, error) {
	current, err := s.book.GetCurrent(ctx, roomID, now)
	if err != nil {
		return nil, nil, err
	}
	next, err := s.book.GetNext(ctx, roomID, now)
	if err != nil {
		return nil, nil, err
	}
	return current, next, nil
}

func validateEvent(ev models.CalendarEvent) error {
	if ev.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalid)
	}
	if ev.Start.IsZero() || ev.End.IsZero() {
		return fmt.Errorf("%w: missing start or end time", ErrInvalid)
	}
	if ev.Color != "" && !models.ValidColor(models.EventColor(ev.Color)) {
		return fmt.Errorf("%w: unknown color %q", ErrInvalid, ev.Color)
	}
	return nil
}
