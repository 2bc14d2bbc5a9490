package models

import "time"

type Ticket struct {
	ID            int        `json:"id"`
	EventID       int        `json:"event_id"`
	UserID        int        `json:"user_id"`
	TicketCode    string     `json:"ticket_code"`
	QRCodeURL     string     `json:"qr_code_url"`
	PurchaseDate  time.Time  `json:"purchase_date"`
	IsPaid        bool       `json:"is_paid"`
	IsFreeTicket  bool       `json:"is_free_ticket"`
	CheckInStatus string     `json:"check_in_status"`
	CheckInTime   *time.Time `json:"check_in_time,omitempty"`
}

type CheckInStatus string

const (
	CheckInPending   CheckInStatus = "pending"
	CheckInCheckedIn CheckInStatus = "checkedIn"
	// CheckInNoShow is never stored; statistics derive it for tickets
	// still pending after their event has ended.
	CheckInNoShow CheckInStatus = "noShow"
)

type PurchaseRequest struct {
	DiscountCode string `json:"discount_code,omitempty"`
}

type CheckInRequest struct {
	TicketCode string `json:"ticket_code"`
	EventID    int    `json:"event_id"`
}

// TicketWithEvent pairs a ticket with a summary of its event for
// the my-tickets listing.
type TicketWithEvent struct {
	Ticket
	EventTitle string `json:"event_title"`
	EventDate  string `json:"event_date"`
	StartTime  string `json:"event_start_time"`
	EndTime    string `json:"event_end_time"`
	Location   string `json:"event_location"`
}

// Attendee is one row of an organizer's attendee list.
type Attendee struct {
	Ticket
	Username string `json:"username"`
	Email    string `json:"email"`
}

type PurchaseResponse struct {
	Ticket     *Ticket `json:"ticket"`
	PricePaid  int64   `json:"price_paid"`
	Discounted bool    `json:"discounted"`
}
