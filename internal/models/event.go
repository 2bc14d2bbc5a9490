package models

import "time"

type Event struct {
	ID                   int            `json:"id"`
	Title                string         `json:"title"`
	Date                 string         `json:"date"`
	StartTime            string         `json:"start_time"`
	EndTime              string         `json:"end_time"`
	Location             string         `json:"location"`
	Address              string         `json:"address,omitempty"`
	Image                string         `json:"image,omitempty"`
	IsFree               bool           `json:"is_free"`
	PriceAmount          int64          `json:"price_amount"`
	PriceCurrency        string         `json:"price_currency,omitempty"`
	Category             string         `json:"category"`
	OrganizerName        string         `json:"organizer_name"`
	OrganizerImage       string         `json:"organizer_image,omitempty"`
	OrganizerDescription string         `json:"organizer_description,omitempty"`
	OrganizerID          int            `json:"organizer_id"`
	Description          string         `json:"description"`
	LongDescription      string         `json:"long_description,omitempty"`
	Capacity             int            `json:"capacity"`
	RoomNumber           int            `json:"room_number"`
	Status               string         `json:"status"`
	Schedule             []ScheduleItem `json:"schedule,omitempty"`
	IsFeatured           bool           `json:"is_featured"`
	IsUpcoming           bool           `json:"is_upcoming"`
	TicketsSold          int            `json:"tickets_sold"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

type ScheduleItem struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

// Room capacity is fixed per room: room N seats N*100.
const SeatsPerRoom = 100

const (
	MinRoomNumber = 1
	MaxRoomNumber = 10
)

type CreateEventRequest struct {
	Title                string         `json:"title"`
	Date                 string         `json:"date"`
	StartTime            string         `json:"start_time"`
	EndTime              string         `json:"end_time"`
	Location             string         `json:"location"`
	Address              string         `json:"address"`
	Image                string         `json:"image"`
	IsFree               bool           `json:"is_free"`
	PriceAmount          int64          `json:"price_amount"`
	PriceCurrency        string         `json:"price_currency"`
	Category             string         `json:"category"`
	OrganizerName        string         `json:"organizer_name"`
	OrganizerImage       string         `json:"organizer_image"`
	OrganizerDescription string         `json:"organizer_description"`
	Description          string         `json:"description"`
	LongDescription      string         `json:"long_description"`
	RoomNumber           int            `json:"room_number"`
	Schedule             []ScheduleItem `json:"schedule"`
	IsFeatured           bool           `json:"is_featured"`
}

// UpdateEventRequest uses pointers so absent fields are left untouched.
type UpdateEventRequest struct {
	Title                *string         `json:"title,omitempty"`
	Date                 *string         `json:"date,omitempty"`
	StartTime            *string         `json:"start_time,omitempty"`
	EndTime              *string         `json:"end_time,omitempty"`
	Location             *string         `json:"location,omitempty"`
	Address              *string         `json:"address,omitempty"`
	Image                *string         `json:"image,omitempty"`
	IsFree               *bool           `json:"is_free,omitempty"`
	PriceAmount          *int64          `json:"price_amount,omitempty"`
	PriceCurrency        *string         `json:"price_currency,omitempty"`
	Category             *string         `json:"category,omitempty"`
	OrganizerName        *string         `json:"organizer_name,omitempty"`
	OrganizerImage       *string         `json:"organizer_image,omitempty"`
	OrganizerDescription *string         `json:"organizer_description,omitempty"`
	Description          *string         `json:"description,omitempty"`
	LongDescription      *string         `json:"long_description,omitempty"`
	RoomNumber           *int            `json:"room_number,omitempty"`
	Status               *string         `json:"status,omitempty"`
	Schedule             *[]ScheduleItem `json:"schedule,omitempty"`
	IsFeatured           *bool           `json:"is_featured,omitempty"`
}

type EventFilter struct {
	Category string
	IsFree   *bool
	Featured *bool
	Upcoming *bool
}

type EventStatistics struct {
	EventID      int    `json:"event_id"`
	Title        string `json:"title"`
	Capacity     int    `json:"capacity"`
	TotalTickets int    `json:"total_tickets"`
	CheckedIn    int    `json:"checked_in"`
	Pending      int    `json:"pending"`
	NoShows      int    `json:"no_shows"`
	Revenue      int64  `json:"revenue"`
	Currency     string `json:"currency,omitempty"`
}
