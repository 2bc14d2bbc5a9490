package services

import (
	"database/sql"
	"fmt"
	"time"

	"eventhub/internal/mailer"
	"eventhub/internal/models"
	"eventhub/internal/qr"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type TicketService struct {
	db              *sql.DB
	logger          zerolog.Logger
	eventService    *EventService
	discountService *DiscountService
	mailer          *mailer.Mailer
}

func NewTicketService(db *sql.DB, logger zerolog.Logger, eventService *EventService, discountService *DiscountService, m *mailer.Mailer) *TicketService {
	return &TicketService{
		db:              db,
		logger:          logger,
		eventService:    eventService,
		discountService: discountService,
		mailer:          m,
	}
}

// canCheckIn guards the pending -> checkedIn transition.
func canCheckIn(status string) error {
	if status == string(models.CheckInCheckedIn) {
		return ErrAlreadyCheckedIn
	}
	if status != string(models.CheckInPending) {
		return fmt.Errorf("ticket is in unexpected state %q", status)
	}
	return nil
}

// canCheckOut guards the reverse transition.
func canCheckOut(status string) error {
	if status == string(models.CheckInPending) {
		return ErrNotCheckedIn
	}
	return nil
}

const ticketColumns = `id, event_id, user_id, ticket_code, qr_code_url,
	purchase_date, is_paid, is_free_ticket, check_in_status, check_in_time`

func scanTicket(row rowScanner) (*models.Ticket, error) {
	var t models.Ticket
	var qrURL sql.NullString
	var checkInTime sql.NullTime

	err := row.Scan(
		&t.ID, &t.EventID, &t.UserID, &t.TicketCode, &qrURL,
		&t.PurchaseDate, &t.IsPaid, &t.IsFreeTicket, &t.CheckInStatus, &checkInTime,
	)
	if err != nil {
		return nil, err
	}

	t.QRCodeURL = qrURL.String
	if checkInTime.Valid {
		t.CheckInTime = &checkInTime.Time
	}
	return &t, nil
}

// RegisterFree issues a ticket for a free event.
func (s *TicketService) RegisterFree(eventID, userID int) (*models.Ticket, error) {
	return s.issue(eventID, userID, "", false)
}

// PurchasePaid issues a ticket for a paid event, optionally applying a
// discount code. Payment itself is simulated; no gateway is involved.
func (s *TicketService) PurchasePaid(eventID, userID int, discountCode string) (*models.PurchaseResponse, error) {
	ticket, err := s.issue(eventID, userID, discountCode, true)
	if err != nil {
		return nil, err
	}

	event, err := s.eventService.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}
	price := event.PriceAmount
	discounted := false
	if discountCode != "" {
		dc, err := s.discountService.GetByCode(discountCode)
		if err == nil {
			price = finalPrice(price, dc.Type, dc.Value)
			discounted = true
		}
	}

	return &models.PurchaseResponse{
		Ticket:     ticket,
		PricePaid:  price,
		Discounted: discounted,
	}, nil
}

// issue runs the whole issuance sequence in one transaction: lock the
// event row, re-check type/capacity/duplicates under the lock, redeem
// the discount, insert the ticket. The lock closes the race between
// the capacity check and the insert.
func (s *TicketService) issue(eventID, userID int, discountCode string, paid bool) (*models.Ticket, error) {
	tx, err := s.db.Begin()
	if err != nil {
		s.logger.Error().Err(err).Msg("Error starting transaction")
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var isFree bool
	var capacity int
	var status, date, endTime string
	err = tx.QueryRow(
		`SELECT is_free, capacity, status, DATE_FORMAT(date, '%Y-%m-%d'), end_time
		FROM events WHERE id = ? FOR UPDATE`,
		eventID,
	).Scan(&isFree, &capacity, &status, &date, &endTime)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if status != string(models.EventActive) || eventEnded(date, endTime, time.Now()) {
		return nil, ErrEventEnded
	}
	if paid == isFree {
		return nil, ErrWrongEventType
	}

	var existing int
	err = tx.QueryRow("SELECT COUNT(*) FROM tickets WHERE event_id = ? AND user_id = ?", eventID, userID).Scan(&existing)
	if err != nil {
		return nil, fmt.Errorf("check registration: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadyRegistered
	}

	var sold int
	err = tx.QueryRow("SELECT COUNT(*) FROM tickets WHERE event_id = ?", eventID).Scan(&sold)
	if err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}
	if sold >= capacity {
		return nil, ErrEventFull
	}

	if paid && discountCode != "" {
		if _, err := s.discountService.redeemInTx(tx, discountCode, time.Now()); err != nil {
			return nil, err
		}
	}

	code := uuid.NewString()
	qrURL, err := qr.DataURL(qr.Payload{TicketCode: code, EventID: eventID, UserID: userID})
	if err != nil {
		s.logger.Error().Err(err).Msg("Error rendering ticket QR code")
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}

	result, err := tx.Exec(
		`INSERT INTO tickets (event_id, user_id, ticket_code, qr_code_url, is_paid, is_free_ticket, check_in_status)
		VALUES (?, ?, ?, ?, ?, ?, 'pending')`,
		eventID, userID, code, qrURL, paid, !paid,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Int("user_id", userID).Msg("Error inserting ticket")
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	ticketID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error().Err(err).Msg("Error committing ticket issue")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().
		Int("ticket_id", int(ticketID)).
		Int("event_id", eventID).
		Int("user_id", userID).
		Str("ticket_code", code).
		Bool("paid", paid).
		Msg("Ticket issued")

	ticket, err := s.GetTicketByID(int(ticketID))
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(eventID, userID, ticket)
	return ticket, nil
}

// sendConfirmation emails the attendee their QR ticket. Failures only
// get logged; the ticket stands either way.
func (s *TicketService) sendConfirmation(eventID, userID int, ticket *models.Ticket) {
	var email string
	if err := s.db.QueryRow("SELECT email FROM users WHERE id = ?", userID).Scan(&email); err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Could not look up attendee email")
		return
	}
	event, err := s.eventService.GetEventByID(eventID)
	if err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Msg("Could not load event for confirmation email")
		return
	}
	s.mailer.SendTicketConfirmation(email, event, ticket)
}

func (s *TicketService) GetTicketByID(id int) (*models.Ticket, error) {
	ticket, err := scanTicket(s.db.QueryRow(
		"SELECT "+ticketColumns+" FROM tickets WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return ticket, nil
}

// Unregister cancels the caller's own ticket. Checked-in tickets stay.
func (s *TicketService) Unregister(eventID, userID int) error {
	ticket, err := scanTicket(s.db.QueryRow(
		"SELECT "+ticketColumns+" FROM tickets WHERE event_id = ? AND user_id = ?",
		eventID, userID,
	))
	if err == sql.ErrNoRows {
		return ErrNotRegistered
	}
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if ticket.CheckInStatus == string(models.CheckInCheckedIn) {
		return ErrAlreadyCheckedIn
	}

	if _, err := s.db.Exec("DELETE FROM tickets WHERE id = ?", ticket.ID); err != nil {
		s.logger.Error().Err(err).Int("ticket_id", ticket.ID).Msg("Error deleting ticket")
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	s.logger.Info().Int("event_id", eventID).Int("user_id", userID).Msg("Ticket cancelled")
	return nil
}

func (s *TicketService) ListUserTickets(userID int) ([]*models.TicketWithEvent, error) {
	rows, err := s.db.Query(
		`SELECT t.id, t.event_id, t.user_id, t.ticket_code, t.qr_code_url,
			t.purchase_date, t.is_paid, t.is_free_ticket, t.check_in_status, t.check_in_time,
			e.title, DATE_FORMAT(e.date, '%Y-%m-%d'), e.start_time, e.end_time, e.location
		FROM tickets t JOIN events e ON e.id = t.event_id
		WHERE t.user_id = ?
		ORDER BY e.date, e.start_time`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var tickets []*models.TicketWithEvent
	for rows.Next() {
		var t models.TicketWithEvent
		var qrURL sql.NullString
		var checkInTime sql.NullTime
		err := rows.Scan(
			&t.ID, &t.EventID, &t.UserID, &t.TicketCode, &qrURL,
			&t.PurchaseDate, &t.IsPaid, &t.IsFreeTicket, &t.CheckInStatus, &checkInTime,
			&t.EventTitle, &t.EventDate, &t.StartTime, &t.EndTime, &t.Location,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		t.QRCodeURL = qrURL.String
		if checkInTime.Valid {
			t.CheckInTime = &checkInTime.Time
		}
		tickets = append(tickets, &t)
	}
	return tickets, rows.Err()
}

// ListEventTickets returns the attendee list; organizer or admin only.
func (s *TicketService) ListEventTickets(eventID, callerID int, callerRole string) ([]*models.Attendee, error) {
	event, err := s.eventService.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}
	if !canEdit(event, callerID, callerRole) {
		return nil, ErrForbidden
	}

	rows, err := s.db.Query(
		`SELECT t.id, t.event_id, t.user_id, t.ticket_code, t.qr_code_url,
			t.purchase_date, t.is_paid, t.is_free_ticket, t.check_in_status, t.check_in_time,
			u.username, u.email
		FROM tickets t JOIN users u ON u.id = t.user_id
		WHERE t.event_id = ?
		ORDER BY t.purchase_date`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var attendees []*models.Attendee
	for rows.Next() {
		var a models.Attendee
		var qrURL sql.NullString
		var checkInTime sql.NullTime
		err := rows.Scan(
			&a.ID, &a.EventID, &a.UserID, &a.TicketCode, &qrURL,
			&a.PurchaseDate, &a.IsPaid, &a.IsFreeTicket, &a.CheckInStatus, &checkInTime,
			&a.Username, &a.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		a.QRCodeURL = qrURL.String
		if checkInTime.Valid {
			a.CheckInTime = &checkInTime.Time
		}
		attendees = append(attendees, &a)
	}
	return attendees, rows.Err()
}

// CheckIn moves a pending ticket to checkedIn and stamps the time.
func (s *TicketService) CheckIn(req *models.CheckInRequest, callerID int, callerRole string) (*models.Ticket, error) {
	ticket, err := s.authorizedTicket(req, callerID, callerRole)
	if err != nil {
		return nil, err
	}
	if err := canCheckIn(ticket.CheckInStatus); err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = s.db.Exec(
		"UPDATE tickets SET check_in_status = ?, check_in_time = ? WHERE id = ?",
		string(models.CheckInCheckedIn), now, ticket.ID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("ticket_id", ticket.ID).Msg("Error checking in ticket")
		return nil, fmt.Errorf("failed to check in ticket: %w", err)
	}

	s.logger.Info().
		Str("ticket_code", ticket.TicketCode).
		Int("event_id", ticket.EventID).
		Int("caller_id", callerID).
		Msg("Ticket checked in")

	ticket.CheckInStatus = string(models.CheckInCheckedIn)
	ticket.CheckInTime = &now
	return ticket, nil
}

// CheckOut reverts a checked-in ticket to pending and clears the time.
func (s *TicketService) CheckOut(req *models.CheckInRequest, callerID int, callerRole string) (*models.Ticket, error) {
	ticket, err := s.authorizedTicket(req, callerID, callerRole)
	if err != nil {
		return nil, err
	}
	if err := canCheckOut(ticket.CheckInStatus); err != nil {
		return nil, err
	}

	_, err = s.db.Exec(
		"UPDATE tickets SET check_in_status = ?, check_in_time = NULL WHERE id = ?",
		string(models.CheckInPending), ticket.ID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("ticket_id", ticket.ID).Msg("Error checking out ticket")
		return nil, fmt.Errorf("failed to check out ticket: %w", err)
	}

	s.logger.Info().
		Str("ticket_code", ticket.TicketCode).
		Int("event_id", ticket.EventID).
		Int("caller_id", callerID).
		Msg("Ticket checked out")

	ticket.CheckInStatus = string(models.CheckInPending)
	ticket.CheckInTime = nil
	return ticket, nil
}

// authorizedTicket looks a ticket up by (code, event) and verifies the
// caller may manage that event's door.
func (s *TicketService) authorizedTicket(req *models.CheckInRequest, callerID int, callerRole string) (*models.Ticket, error) {
	if req.TicketCode == "" || req.EventID == 0 {
		return nil, fmt.Errorf("ticket code and event id are required")
	}

	event, err := s.eventService.GetEventByID(req.EventID)
	if err != nil {
		return nil, err
	}
	if !canEdit(event, callerID, callerRole) {
		return nil, ErrForbidden
	}

	ticket, err := scanTicket(s.db.QueryRow(
		"SELECT "+ticketColumns+" FROM tickets WHERE ticket_code = ? AND event_id = ?",
		req.TicketCode, req.EventID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return ticket, nil
}

// Statistics rolls one event up. No-shows are a projection: tickets
// still pending after the event has ended.
func (s *TicketService) Statistics(eventID, callerID int, callerRole string) (*models.EventStatistics, error) {
	event, err := s.eventService.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}
	if !canEdit(event, callerID, callerRole) {
		return nil, ErrForbidden
	}
	return s.statisticsFor(event)
}

func (s *TicketService) statisticsFor(event *models.Event) (*models.EventStatistics, error) {
	var total, checkedIn, pending, paidCount int
	err := s.db.QueryRow(
		`SELECT COUNT(*),
			COALESCE(SUM(check_in_status = 'checkedIn'), 0),
			COALESCE(SUM(check_in_status = 'pending'), 0),
			COALESCE(SUM(is_paid), 0)
		FROM tickets WHERE event_id = ?`,
		event.ID,
	).Scan(&total, &checkedIn, &pending, &paidCount)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	stats := &models.EventStatistics{
		EventID:      event.ID,
		Title:        event.Title,
		Capacity:     event.Capacity,
		TotalTickets: total,
		CheckedIn:    checkedIn,
		Pending:      pending,
		Revenue:      int64(paidCount) * event.PriceAmount,
		Currency:     event.PriceCurrency,
	}
	if eventEnded(event.Date, event.EndTime, time.Now()) {
		stats.NoShows = pending
		stats.Pending = 0
	}
	return stats, nil
}

// StatisticsAll rolls up every event the caller organizes; admins get
// all events.
func (s *TicketService) StatisticsAll(callerID int, callerRole string) ([]*models.EventStatistics, error) {
	var events []*models.Event
	var err error
	if callerRole == string(models.RoleAdmin) {
		events, err = s.eventService.ListEvents(models.EventFilter{})
	} else {
		events, err = s.eventService.ListByOrganizer(callerID)
	}
	if err != nil {
		return nil, err
	}

	stats := make([]*models.EventStatistics, 0, len(events))
	for _, event := range events {
		st, err := s.statisticsFor(event)
		if err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, nil
}
