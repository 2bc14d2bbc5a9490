package models

import "time"

type SpeakerInvitation struct {
	ID             int        `json:"id"`
	EventID        int        `json:"event_id"`
	SpeakerID      int        `json:"speaker_id"`
	OrganizerID    int        `json:"organizer_id"`
	Status         string     `json:"status"`
	InvitationDate time.Time  `json:"invitation_date"`
	ResponseDate   *time.Time `json:"response_date,omitempty"`
	Message        string     `json:"message,omitempty"`
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

type InviteSpeakerRequest struct {
	SpeakerID int    `json:"speaker_id"`
	Message   string `json:"message,omitempty"`
}

type RespondInvitationRequest struct {
	Accept bool `json:"accept"`
}

// InvitationWithEvent is the speaker-facing view of an invitation.
type InvitationWithEvent struct {
	SpeakerInvitation
	EventTitle    string `json:"event_title"`
	EventDate     string `json:"event_date"`
	EventLocation string `json:"event_location"`
	OrganizerName string `json:"organizer_name"`
}
