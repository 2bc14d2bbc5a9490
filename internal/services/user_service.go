package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUserService(db *sql.DB, logger zerolog.Logger) *UserService {
	return &UserService{
		db:     db,
		logger: logger,
	}
}

const userColumns = `id, username, email, password_hash, role, speaker_status,
	speaker_bio, speaker_topics, speaker_image, speaker_request_date,
	speaker_approval_date, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var bio, topics, image sql.NullString
	var requestDate, approvalDate sql.NullTime

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role,
		&user.SpeakerStatus, &bio, &topics, &image, &requestDate, &approvalDate,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.SpeakerBio = bio.String
	user.SpeakerImage = image.String
	if topics.Valid && topics.String != "" {
		if err := json.Unmarshal([]byte(topics.String), &user.SpeakerTopics); err != nil {
			return nil, fmt.Errorf("decode speaker topics: %w", err)
		}
	}
	if requestDate.Valid {
		user.SpeakerRequestDate = &requestDate.Time
	}
	if approvalDate.Valid {
		user.SpeakerApprovalDate = &approvalDate.Time
	}
	return &user, nil
}

func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, errors.New("username, email, and password are required")
	}
	if len(req.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	var existingID int
	err := s.db.QueryRow("SELECT id FROM users WHERE email = ? OR username = ?", req.Email, req.Username).Scan(&existingID)
	if err == nil {
		return nil, errors.New("user with this email or username already exists")
	} else if err != sql.ErrNoRows {
		s.logger.Error().Err(err).Msg("Error checking existing user")
		return nil, fmt.Errorf("database error: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := s.db.Exec(
		"INSERT INTO users (username, email, password_hash, role) VALUES (?, ?, ?, ?)",
		req.Username, req.Email, string(hashedPassword), string(models.RoleUser),
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	userID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}

	user, err := s.GetUserByID(int(userID))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User registered")
	return user, nil
}

func (s *UserService) Authenticate(req *models.LoginRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := scanUser(s.db.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE email = ?", req.Email,
	))
	if err == sql.ErrNoRows {
		return nil, errors.New("invalid email or password")
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error querying user")
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Failed authentication attempt")
		return nil, errors.New("invalid email or password")
	}

	return user, nil
}

func (s *UserService) GetUserByID(userID int) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE id = ?", userID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error fetching user")
		return nil, fmt.Errorf("database error: %w", err)
	}
	return user, nil
}

func (s *UserService) ChangePassword(userID int, req *models.ChangePasswordRequest) error {
	if req.NewPassword == "" {
		return errors.New("new password is required")
	}
	if len(req.NewPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hashed), userID)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error updating password")
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info().Int("user_id", userID).Msg("Password changed")
	return nil
}

func (s *UserService) UpdateProfile(userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.SpeakerBio != "" {
		user.SpeakerBio = req.SpeakerBio
	}
	if req.SpeakerTopics != nil {
		user.SpeakerTopics = req.SpeakerTopics
	}
	if req.SpeakerImage != "" {
		user.SpeakerImage = req.SpeakerImage
	}

	topicsJSON, err := json.Marshal(user.SpeakerTopics)
	if err != nil {
		return nil, fmt.Errorf("encode speaker topics: %w", err)
	}

	_, err = s.db.Exec(
		`UPDATE users SET username = ?, email = ?, speaker_bio = ?, speaker_topics = ?, speaker_image = ? WHERE id = ?`,
		user.Username, user.Email, user.SpeakerBio, string(topicsJSON), user.SpeakerImage, userID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error updating profile")
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.GetUserByID(userID)
}

// RequestSpeaker moves a user into the speaker-approval queue. An
// already-approved speaker cannot re-request; a rejected one can.
func (s *UserService) RequestSpeaker(userID int, req *models.SpeakerRequestInput) (*models.User, error) {
	if req.Bio == "" || len(req.Topics) == 0 {
		return nil, errors.New("bio and at least one topic are required")
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	switch models.SpeakerStatus(user.SpeakerStatus) {
	case models.SpeakerApproved:
		return nil, errors.New("user is already an approved speaker")
	case models.SpeakerPending:
		return nil, errors.New("speaker request is already pending")
	}

	topicsJSON, err := json.Marshal(req.Topics)
	if err != nil {
		return nil, fmt.Errorf("encode speaker topics: %w", err)
	}

	_, err = s.db.Exec(
		`UPDATE users SET speaker_status = ?, speaker_bio = ?, speaker_topics = ?,
			speaker_image = ?, speaker_request_date = ?, speaker_approval_date = NULL
		WHERE id = ?`,
		string(models.SpeakerPending), req.Bio, string(topicsJSON), req.Image, time.Now(), userID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error submitting speaker request")
		return nil, fmt.Errorf("failed to submit speaker request: %w", err)
	}

	s.logger.Info().Int("user_id", userID).Msg("Speaker request submitted")
	return s.GetUserByID(userID)
}

func (s *UserService) ListSpeakerRequests() ([]*models.User, error) {
	return s.listUsersBySpeakerStatus(models.SpeakerPending)
}

func (s *UserService) ListApprovedSpeakers() ([]*models.User, error) {
	return s.listUsersBySpeakerStatus(models.SpeakerApproved)
}

func (s *UserService) listUsersBySpeakerStatus(status models.SpeakerStatus) ([]*models.User, error) {
	rows, err := s.db.Query(
		"SELECT "+userColumns+" FROM users WHERE speaker_status = ? ORDER BY speaker_request_date",
		string(status),
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing users by speaker status")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// DecideSpeakerRequest approves or rejects a pending speaker request.
func (s *UserService) DecideSpeakerRequest(userID int, approve bool) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user.SpeakerStatus != string(models.SpeakerPending) {
		return nil, errors.New("user has no pending speaker request")
	}

	status := models.SpeakerRejected
	var approvalDate interface{}
	if approve {
		status = models.SpeakerApproved
		approvalDate = time.Now()
	}

	_, err = s.db.Exec(
		"UPDATE users SET speaker_status = ?, speaker_approval_date = ? WHERE id = ?",
		string(status), approvalDate, userID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error deciding speaker request")
		return nil, fmt.Errorf("failed to update speaker status: %w", err)
	}

	s.logger.Info().Int("user_id", userID).Str("speaker_status", string(status)).Msg("Speaker request decided")
	return s.GetUserByID(userID)
}
