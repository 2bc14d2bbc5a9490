package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("not allowed")

	ErrEventEnded        = errors.New("event has already ended")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("user already registered for this event")
	ErrNotRegistered     = errors.New("user is not registered for this event")
	ErrWrongEventType    = errors.New("wrong registration type for this event")

	ErrAlreadyCheckedIn = errors.New("ticket is already checked in")
	ErrNotCheckedIn     = errors.New("ticket is not checked in")

	ErrDiscountNotFound     = errors.New("discount code not found or inactive")
	ErrDiscountExpired      = errors.New("discount code has expired")
	ErrDiscountLimitReached = errors.New("discount code usage limit reached")

	ErrNotApprovedSpeaker = errors.New("user is not an approved speaker")
	ErrAlreadyInvited     = errors.New("speaker already invited to this event")
	ErrInvitationClosed   = errors.New("invitation has already been responded to")
)

// RoomConflictError reports the booking that blocks a requested slot.
type RoomConflictError struct {
	Title     string
	StartTime string
	EndTime   string
}

func (e *RoomConflictError) Error() string {
	return fmt.Sprintf("room is already booked by %q from %s to %s (1 hour buffer applies)",
		e.Title, e.StartTime, e.EndTime)
}
