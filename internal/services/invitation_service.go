package services

import (
	"database/sql"
	"fmt"
	"time"

	"eventhub/internal/mailer"
	"eventhub/internal/models"

	"github.com/rs/zerolog"
)

type InvitationService struct {
	db           *sql.DB
	logger       zerolog.Logger
	eventService *EventService
	userService  *UserService
	mailer       *mailer.Mailer
}

func NewInvitationService(db *sql.DB, logger zerolog.Logger, eventService *EventService, userService *UserService, m *mailer.Mailer) *InvitationService {
	return &InvitationService{
		db:           db,
		logger:       logger,
		eventService: eventService,
		userService:  userService,
		mailer:       m,
	}
}

const invitationColumns = `id, event_id, speaker_id, organizer_id, status,
	invitation_date, response_date, message`

func scanInvitation(row rowScanner) (*models.SpeakerInvitation, error) {
	var inv models.SpeakerInvitation
	var responseDate sql.NullTime
	var message sql.NullString

	err := row.Scan(
		&inv.ID, &inv.EventID, &inv.SpeakerID, &inv.OrganizerID, &inv.Status,
		&inv.InvitationDate, &responseDate, &message,
	)
	if err != nil {
		return nil, err
	}

	if responseDate.Valid {
		inv.ResponseDate = &responseDate.Time
	}
	inv.Message = message.String
	return &inv, nil
}

// Invite asks an approved speaker to join an event. A previously
// declined invitation is reopened instead of duplicated.
func (s *InvitationService) Invite(eventID, callerID int, callerRole string, req *models.InviteSpeakerRequest) (*models.SpeakerInvitation, error) {
	event, err := s.eventService.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}
	if !canEdit(event, callerID, callerRole) {
		return nil, ErrForbidden
	}

	speaker, err := s.userService.GetUserByID(req.SpeakerID)
	if err != nil {
		return nil, err
	}
	if speaker.SpeakerStatus != string(models.SpeakerApproved) {
		return nil, ErrNotApprovedSpeaker
	}

	existing, err := scanInvitation(s.db.QueryRow(
		"SELECT "+invitationColumns+" FROM speaker_invitations WHERE event_id = ? AND speaker_id = ? AND organizer_id = ?",
		eventID, req.SpeakerID, event.OrganizerID,
	))
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if existing != nil {
		if existing.Status != string(models.InvitationDeclined) {
			return nil, ErrAlreadyInvited
		}
		_, err = s.db.Exec(
			`UPDATE speaker_invitations SET status = ?, invitation_date = ?, response_date = NULL, message = ?
			WHERE id = ?`,
			string(models.InvitationPending), time.Now(), req.Message, existing.ID,
		)
		if err != nil {
			s.logger.Error().Err(err).Int("invitation_id", existing.ID).Msg("Error reopening invitation")
			return nil, fmt.Errorf("failed to reopen invitation: %w", err)
		}
		s.logger.Info().Int("invitation_id", existing.ID).Int("event_id", eventID).Msg("Invitation reopened")
		return s.GetByID(existing.ID)
	}

	result, err := s.db.Exec(
		`INSERT INTO speaker_invitations (event_id, speaker_id, organizer_id, message)
		VALUES (?, ?, ?, ?)`,
		eventID, req.SpeakerID, event.OrganizerID, req.Message,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Int("speaker_id", req.SpeakerID).Msg("Error creating invitation")
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation ID: %w", err)
	}

	s.logger.Info().
		Int("invitation_id", int(id)).
		Int("event_id", eventID).
		Int("speaker_id", req.SpeakerID).
		Msg("Speaker invited")

	return s.GetByID(int(id))
}

func (s *InvitationService) GetByID(id int) (*models.SpeakerInvitation, error) {
	inv, err := scanInvitation(s.db.QueryRow(
		"SELECT "+invitationColumns+" FROM speaker_invitations WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return inv, nil
}

// ListForEvent returns an event's invitations to its organizer/admin.
func (s *InvitationService) ListForEvent(eventID, callerID int, callerRole string) ([]*models.SpeakerInvitation, error) {
	event, err := s.eventService.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}
	if !canEdit(event, callerID, callerRole) {
		return nil, ErrForbidden
	}

	rows, err := s.db.Query(
		"SELECT "+invitationColumns+" FROM speaker_invitations WHERE event_id = ? ORDER BY invitation_date DESC",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var invitations []*models.SpeakerInvitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// ListForSpeaker returns the invitations addressed to a speaker, with
// event context attached.
func (s *InvitationService) ListForSpeaker(speakerID int) ([]*models.InvitationWithEvent, error) {
	rows, err := s.db.Query(
		`SELECT i.id, i.event_id, i.speaker_id, i.organizer_id, i.status,
			i.invitation_date, i.response_date, i.message,
			e.title, DATE_FORMAT(e.date, '%Y-%m-%d'), e.location, e.organizer_name
		FROM speaker_invitations i JOIN events e ON e.id = i.event_id
		WHERE i.speaker_id = ?
		ORDER BY i.invitation_date DESC`,
		speakerID,
	)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var invitations []*models.InvitationWithEvent
	for rows.Next() {
		var inv models.InvitationWithEvent
		var responseDate sql.NullTime
		var message sql.NullString
		err := rows.Scan(
			&inv.ID, &inv.EventID, &inv.SpeakerID, &inv.OrganizerID, &inv.Status,
			&inv.InvitationDate, &responseDate, &message,
			&inv.EventTitle, &inv.EventDate, &inv.EventLocation, &inv.OrganizerName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		if responseDate.Valid {
			inv.ResponseDate = &responseDate.Time
		}
		inv.Message = message.String
		invitations = append(invitations, &inv)
	}
	return invitations, rows.Err()
}

// Respond lets the invited speaker accept or decline a pending
// invitation. The response is terminal unless the organizer reopens a
// declined one by re-inviting.
func (s *InvitationService) Respond(invitationID, speakerID int, accept bool) (*models.SpeakerInvitation, error) {
	inv, err := s.GetByID(invitationID)
	if err != nil {
		return nil, err
	}
	if inv.SpeakerID != speakerID {
		return nil, ErrForbidden
	}
	if inv.Status != string(models.InvitationPending) {
		return nil, ErrInvitationClosed
	}

	status := models.InvitationDeclined
	if accept {
		status = models.InvitationAccepted
	}

	_, err = s.db.Exec(
		"UPDATE speaker_invitations SET status = ?, response_date = ? WHERE id = ?",
		string(status), time.Now(), invitationID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("invitation_id", invitationID).Msg("Error responding to invitation")
		return nil, fmt.Errorf("failed to respond to invitation: %w", err)
	}

	s.logger.Info().
		Int("invitation_id", invitationID).
		Int("speaker_id", speakerID).
		Str("status", string(status)).
		Msg("Invitation responded")

	if accept {
		s.notifyAccepted(inv.EventID, speakerID)
	}
	return s.GetByID(invitationID)
}

func (s *InvitationService) notifyAccepted(eventID, speakerID int) {
	speaker, err := s.userService.GetUserByID(speakerID)
	if err != nil {
		s.logger.Error().Err(err).Int("speaker_id", speakerID).Msg("Could not look up speaker for acceptance email")
		return
	}
	event, err := s.eventService.GetEventByID(eventID)
	if err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Msg("Could not load event for acceptance email")
		return
	}
	s.mailer.SendInvitationAccepted(speaker.Email, event)
}
