package models

import "time"

// EventColor is the fixed palette shared by rooms and bookings.
type EventColor string

const (
	ColorBlue    EventColor = "blue"
	ColorOrange  EventColor = "orange"
	ColorViolet  EventColor = "violet"
	ColorRose    EventColor = "rose"
	ColorEmerald EventColor = "emerald"
	ColorGray    EventColor = "gray"
	ColorYellow  EventColor = "yellow"
	ColorCyan    EventColor = "cyan"
)

// ValidColor reports whether c is one of the palette colors.
func ValidColor(c EventColor) bool {
	switch c {
	case ColorBlue, ColorOrange, ColorViolet, ColorRose, ColorEmerald, ColorGray, ColorYellow, ColorCyan:
		return true
	}
	return false
}

type Room struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Color       EventColor `json:"color"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Booking struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	RoomID      string    `json:"roomId"`
	UserID      string    `json:"userId"` // identity-provider subject, not a rooms FK
	CreatedAt   time.Time `json:"createdAt"`
}

// RoomBooking is a booking joined with its room's display fields,
// used by the all-rooms calendar view.
type RoomBooking struct {
	Booking
	RoomName  string `json:"roomName"`
	RoomColor string `json:"roomColor"`
}

// CalendarEvent is the wire shape the calendar UI works with.
// Start/End marshal as RFC3339.
type CalendarEvent struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"allDay"`
	Color       string    `json:"color,omitempty"`
	Location    string    `json:"location,omitempty"`
	RoomName    string    `json:"roomName,omitempty"`
	RoomColor   string    `json:"roomColor,omitempty"`
}

// User is the authenticated session principal.
type User struct {
	ID    string `json:"id"` // identity-provider subject
	Email string `json:"email"`
}

// EventFromBooking converts a stored booking to its calendar shape.
func EventFromBooking(b *Booking) CalendarEvent {
	color := b.Color
	if color == "" {
		color = string(ColorBlue)
	}
	return CalendarEvent{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Start:       b.StartTime,
		End:         b.EndTime,
		Color:       color,
		Location:    b.Location,
	}
}

// EventFromRoomBooking is EventFromBooking plus the room fields; the room
// name doubles as the event location on the all-rooms view.
func EventFromRoomBooking(rb *RoomBooking) CalendarEvent {
	ev := EventFromBooking(&rb.Booking)
	ev.Location = rb.RoomName
	ev.RoomName = rb.RoomName
	ev.RoomColor = rb.RoomColor
	return ev
}
