package models

import "time"

type User struct {
	ID                  int        `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	Role                string     `json:"role"`
	SpeakerStatus       string     `json:"speaker_status"`
	SpeakerBio          string     `json:"speaker_bio,omitempty"`
	SpeakerTopics       []string   `json:"speaker_topics,omitempty"`
	SpeakerImage        string     `json:"speaker_image,omitempty"`
	SpeakerRequestDate  *time.Time `json:"speaker_request_date,omitempty"`
	SpeakerApprovalDate *time.Time `json:"speaker_approval_date,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type SpeakerStatus string

const (
	SpeakerNone     SpeakerStatus = "none"
	SpeakerPending  SpeakerStatus = "pending"
	SpeakerApproved SpeakerStatus = "approved"
	SpeakerRejected SpeakerStatus = "rejected"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UpdateProfileRequest struct {
	Username      string   `json:"username,omitempty"`
	Email         string   `json:"email,omitempty"`
	SpeakerBio    string   `json:"speaker_bio,omitempty"`
	SpeakerTopics []string `json:"speaker_topics,omitempty"`
	SpeakerImage  string   `json:"speaker_image,omitempty"`
}

type SpeakerRequestInput struct {
	Bio    string   `json:"bio"`
	Topics []string `json:"topics"`
	Image  string   `json:"image,omitempty"`
}

type SpeakerDecisionRequest struct {
	Approve bool `json:"approve"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
}

// PublicProfile is the subset of a user safe to show to anyone.
type PublicProfile struct {
	ID            int      `json:"id"`
	Username      string   `json:"username"`
	SpeakerStatus string   `json:"speaker_status"`
	SpeakerBio    string   `json:"speaker_bio,omitempty"`
	SpeakerTopics []string `json:"speaker_topics,omitempty"`
	SpeakerImage  string   `json:"speaker_image,omitempty"`
}

func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:            u.ID,
		Username:      u.Username,
		SpeakerStatus: u.SpeakerStatus,
		SpeakerBio:    u.SpeakerBio,
		SpeakerTopics: u.SpeakerTopics,
		SpeakerImage:  u.SpeakerImage,
	}
}
