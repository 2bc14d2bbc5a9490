package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/models"

	"github.com/rs/zerolog"
)

type EventService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewEventService(db *sql.DB, logger zerolog.Logger) *EventService {
	return &EventService{
		db:     db,
		logger: logger,
	}
}

const dateLayout = "2006-01-02"

const eventColumns = `id, title, DATE_FORMAT(date, '%Y-%m-%d'), start_time, end_time,
	location, address, image, is_free, price_amount, price_currency, category,
	organizer_name, organizer_image, organizer_description, organizer_id,
	description, long_description, capacity, room_number, status,
	is_featured, is_upcoming, created_at, updated_at`

func scanEvent(row rowScanner) (*models.Event, error) {
	var e models.Event
	var address, image, currency, category, orgImage, orgDesc, desc, longDesc sql.NullString

	err := row.Scan(
		&e.ID, &e.Title, &e.Date, &e.StartTime, &e.EndTime,
		&e.Location, &address, &image, &e.IsFree, &e.PriceAmount, &currency, &category,
		&e.OrganizerName, &orgImage, &orgDesc, &e.OrganizerID,
		&desc, &longDesc, &e.Capacity, &e.RoomNumber, &e.Status,
		&e.IsFeatured, &e.IsUpcoming, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Address = address.String
	e.Image = image.String
	e.PriceCurrency = currency.String
	e.Category = category.String
	e.OrganizerImage = orgImage.String
	e.OrganizerDescription = orgDesc.String
	e.Description = desc.String
	e.LongDescription = longDesc.String
	return &e, nil
}

func validRoomNumber(room int) bool {
	return room >= models.MinRoomNumber && room <= models.MaxRoomNumber
}

// roomCapacity derives seating from the room number. Room N seats N*100.
func roomCapacity(room int) int {
	return room * models.SeatsPerRoom
}

// eventEnded reports whether the event's end time is already in the
// past.
func eventEnded(date, endTime string, now time.Time) bool {
	end, err := time.ParseInLocation(dateLayout+" 15:04", date+" "+endTime, now.Location())
	if err != nil {
		return false
	}
	return end.Before(now)
}

// canEdit applies the ownership rule shared by update, delete and the
// attendee-facing operations: the organizer of the event, or an admin.
func canEdit(e *models.Event, callerID int, callerRole string) bool {
	return e.OrganizerID == callerID || callerRole == string(models.RoleAdmin)
}

// checkRoomAvailability scans the candidate's room-day inside the
// caller's transaction and fails with the blocking event's time range
// on overlap. The FOR UPDATE lock keeps two concurrent creates for the
// same slot from both passing.
func (s *EventService) checkRoomAvailability(tx *sql.Tx, room int, date string, startTime, endTime string, excludeID int) error {
	candStart, candEnd, err := validateTimeRange(startTime, endTime)
	if err != nil {
		return err
	}

	rows, err := tx.Query(
		`SELECT id, title, start_time, end_time FROM events
		WHERE room_number = ? AND date = ? AND status = 'active' AND id <> ?
		FOR UPDATE`,
		room, date, excludeID,
	)
	if err != nil {
		return fmt.Errorf("query room bookings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var title, start, end string
		if err := rows.Scan(&id, &title, &start, &end); err != nil {
			return fmt.Errorf("scan room booking: %w", err)
		}
		exStart, exEnd, err := validateTimeRange(start, end)
		if err != nil {
			continue
		}
		if conflictsWith(candStart, candEnd, exStart, exEnd) {
			return &RoomConflictError{Title: title, StartTime: start, EndTime: end}
		}
	}
	return rows.Err()
}

func (s *EventService) Create(organizerID int, req *models.CreateEventRequest) (*models.Event, error) {
	if req.Title == "" || req.Date == "" || req.StartTime == "" || req.EndTime == "" || req.Location == "" {
		return nil, errors.New("title, date, start time, end time and location are required")
	}
	if !validRoomNumber(req.RoomNumber) {
		return nil, fmt.Errorf("room number must be between %d and %d", models.MinRoomNumber, models.MaxRoomNumber)
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", req.Date)
	}
	if _, _, err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if !req.IsFree && req.PriceAmount <= 0 {
		return nil, errors.New("paid events require a positive price")
	}

	organizerName := req.OrganizerName
	if organizerName == "" {
		return nil, errors.New("organizer name is required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		s.logger.Error().Err(err).Msg("Error starting transaction")
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.checkRoomAvailability(tx, req.RoomNumber, req.Date, req.StartTime, req.EndTime, 0); err != nil {
		return nil, err
	}

	result, err := tx.Exec(
		`INSERT INTO events (title, date, start_time, end_time, location, address, image,
			is_free, price_amount, price_currency, category,
			organizer_name, organizer_image, organizer_description, organizer_id,
			description, long_description, capacity, room_number, status, is_featured, is_upcoming)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'active', ?, TRUE)`,
		req.Title, req.Date, req.StartTime, req.EndTime, req.Location, req.Address, req.Image,
		req.IsFree, req.PriceAmount, req.PriceCurrency, req.Category,
		organizerName, req.OrganizerImage, req.OrganizerDescription, organizerID,
		req.Description, req.LongDescription, roomCapacity(req.RoomNumber), req.RoomNumber, req.IsFeatured,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error inserting event")
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	eventID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get event ID: %w", err)
	}

	if err := replaceScheduleInTx(tx, int(eventID), req.Schedule); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error().Err(err).Msg("Error committing event create")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().
		Int("event_id", int(eventID)).
		Int("organizer_id", organizerID).
		Int("room_number", req.RoomNumber).
		Str("date", req.Date).
		Msg("Event created")

	return s.GetEventByID(int(eventID))
}

func replaceScheduleInTx(tx *sql.Tx, eventID int, schedule []models.ScheduleItem) error {
	if _, err := tx.Exec("DELETE FROM event_schedule WHERE event_id = ?", eventID); err != nil {
		return fmt.Errorf("failed to clear schedule: %w", err)
	}
	for _, item := range schedule {
		if _, err := parseClock(item.Time); err != nil {
			return err
		}
		if _, err := tx.Exec(
			"INSERT INTO event_schedule (event_id, time, title, description) VALUES (?, ?, ?, ?)",
			eventID, item.Time, item.Title, item.Description,
		); err != nil {
			return fmt.Errorf("failed to insert schedule item: %w", err)
		}
	}
	return nil
}

func (s *EventService) loadSchedule(eventID int) ([]models.ScheduleItem, error) {
	rows, err := s.db.Query(
		"SELECT time, title, description FROM event_schedule WHERE event_id = ? ORDER BY time",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	var items []models.ScheduleItem
	for rows.Next() {
		var item models.ScheduleItem
		var desc sql.NullString
		if err := rows.Scan(&item.Time, &item.Title, &desc); err != nil {
			return nil, fmt.Errorf("scan schedule item: %w", err)
		}
		item.Description = desc.String
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *EventService) GetEventByID(eventID int) (*models.Event, error) {
	event, err := scanEvent(s.db.QueryRow(
		"SELECT "+eventColumns+" FROM events WHERE id = ?", eventID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Msg("Error fetching event")
		return nil, fmt.Errorf("database error: %w", err)
	}

	if event.Schedule, err = s.loadSchedule(eventID); err != nil {
		return nil, err
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM tickets WHERE event_id = ?", eventID).Scan(&event.TicketsSold); err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}

	s.projectStatus(event)
	return event, nil
}

// projectStatus folds time into the stored status: an active event
// whose end has passed reads as completed, and is no longer upcoming.
func (s *EventService) projectStatus(e *models.Event) {
	if e.Status == string(models.EventActive) && eventEnded(e.Date, e.EndTime, time.Now()) {
		e.Status = string(models.EventCompleted)
		e.IsUpcoming = false
	}
}

func (s *EventService) ListEvents(filter models.EventFilter) ([]*models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE 1=1"
	var args []interface{}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.IsFree != nil {
		query += " AND is_free = ?"
		args = append(args, *filter.IsFree)
	}
	if filter.Featured != nil {
		query += " AND is_featured = ?"
		args = append(args, *filter.Featured)
	}
	if filter.Upcoming != nil && *filter.Upcoming {
		query += " AND date >= CURDATE() AND status = 'active'"
	}
	query += " ORDER BY date, start_time"

	return s.queryEvents(query, args...)
}

func (s *EventService) ListByOrganizer(organizerID int) ([]*models.Event, error) {
	return s.queryEvents(
		"SELECT "+eventColumns+" FROM events WHERE organizer_id = ? ORDER BY date, start_time",
		organizerID,
	)
}

func (s *EventService) queryEvents(query string, args ...interface{}) ([]*models.Event, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing events")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		s.projectStatus(event)
		events = append(events, event)
	}
	return events, rows.Err()
}

func (s *EventService) Update(eventID, callerID int, callerRole string, req *models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}
	if !canEdit(event, callerID, callerRole) {
		return nil, ErrForbidden
	}
	if eventEnded(event.Date, event.EndTime, time.Now()) {
		return nil, ErrEventEnded
	}

	slotChanged := false
	if req.Date != nil && *req.Date != event.Date {
		if _, err := time.Parse(dateLayout, *req.Date); err != nil {
			return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *req.Date)
		}
		event.Date = *req.Date
		slotChanged = true
	}
	if req.StartTime != nil && *req.StartTime != event.StartTime {
		event.StartTime = *req.StartTime
		slotChanged = true
	}
	if req.EndTime != nil && *req.EndTime != event.EndTime {
		event.EndTime = *req.EndTime
		slotChanged = true
	}
	if req.RoomNumber != nil && *req.RoomNumber != event.RoomNumber {
		if !validRoomNumber(*req.RoomNumber) {
			return nil, fmt.Errorf("room number must be between %d and %d", models.MinRoomNumber, models.MaxRoomNumber)
		}
		event.RoomNumber = *req.RoomNumber
		event.Capacity = roomCapacity(*req.RoomNumber)
		slotChanged = true
	}
	if _, _, err := validateTimeRange(event.StartTime, event.EndTime); err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Address != nil {
		event.Address = *req.Address
	}
	if req.Image != nil {
		event.Image = *req.Image
	}
	if req.IsFree != nil {
		event.IsFree = *req.IsFree
	}
	if req.PriceAmount != nil {
		event.PriceAmount = *req.PriceAmount
	}
	if req.PriceCurrency != nil {
		event.PriceCurrency = *req.PriceCurrency
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.OrganizerName != nil {
		event.OrganizerName = *req.OrganizerName
	}
	if req.OrganizerImage != nil {
		event.OrganizerImage = *req.OrganizerImage
	}
	if req.OrganizerDescription != nil {
		event.OrganizerDescription = *req.OrganizerDescription
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.LongDescription != nil {
		event.LongDescription = *req.LongDescription
	}
	if req.IsFeatured != nil {
		event.IsFeatured = *req.IsFeatured
	}
	if req.Status != nil {
		switch models.EventStatus(*req.Status) {
		case models.EventActive, models.EventCancelled, models.EventCompleted:
			event.Status = *req.Status
		default:
			return nil, fmt.Errorf("invalid status %q", *req.Status)
		}
	}
	if !event.IsFree && event.PriceAmount <= 0 {
		return nil, errors.New("paid events require a positive price")
	}

	tx, err := s.db.Begin()
	if err != nil {
		s.logger.Error().Err(err).Msg("Error starting transaction")
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if slotChanged {
		if err := s.checkRoomAvailability(tx, event.RoomNumber, event.Date, event.StartTime, event.EndTime, eventID); err != nil {
			return nil, err
		}
	}

	_, err = tx.Exec(
		`UPDATE events SET title = ?, date = ?, start_time = ?, end_time = ?, location = ?,
			address = ?, image = ?, is_free = ?, price_amount = ?, price_currency = ?,
			category = ?, organizer_name = ?, organizer_image = ?, organizer_description = ?,
			description = ?, long_description = ?, capacity = ?, room_number = ?,
			status = ?, is_featured = ?
		WHERE id = ?`,
		event.Title, event.Date, event.StartTime, event.EndTime, event.Location,
		event.Address, event.Image, event.IsFree, event.PriceAmount, event.PriceCurrency,
		event.Category, event.OrganizerName, event.OrganizerImage, event.OrganizerDescription,
		event.Description, event.LongDescription, event.Capacity, event.RoomNumber,
		event.Status, event.IsFeatured, eventID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Msg("Error updating event")
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	if req.Schedule != nil {
		if err := replaceScheduleInTx(tx, eventID, *req.Schedule); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error().Err(err).Msg("Error committing event update")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().Int("event_id", eventID).Int("caller_id", callerID).Msg("Event updated")
	return s.GetEventByID(eventID)
}

// Delete removes an event and everything hanging off it. Tickets go
// first so the foreign keys hold.
func (s *EventService) Delete(eventID, callerID int, callerRole string) error {
	event, err := s.GetEventByID(eventID)
	if err != nil {
		return err
	}
	if !canEdit(event, callerID, callerRole) {
		return ErrForbidden
	}

	tx, err := s.db.Begin()
	if err != nil {
		s.logger.Error().Err(err).Msg("Error starting transaction")
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tickets WHERE event_id = ?", eventID); err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Msg("Error deleting event tickets")
		return fmt.Errorf("failed to delete tickets: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM speaker_invitations WHERE event_id = ?", eventID); err != nil {
		return fmt.Errorf("failed to delete invitations: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM event_schedule WHERE event_id = ?", eventID); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM events WHERE id = ?", eventID); err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Msg("Error deleting event")
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error().Err(err).Msg("Error committing event delete")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().Int("event_id", eventID).Int("caller_id", callerID).Msg("Event deleted")
	return nil
}
