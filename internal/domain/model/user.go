package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	HashedPassword      string     `json:"-"` // Not exposed
	Role                string     `json:"role"`
	PreferredLanguage   string     `json:"preferred_language"`
	ExperienceLevel     string     `json:"experience_level"`
	Streak              int        `json:"streak"`
	LastActiveDate      *time.Time `json:"last_active_date,omitempty"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	IsBlocked           bool       `json:"is_blocked"`
	BlockedAt           *time.Time `json:"blocked_at,omitempty"`
	BlockedReason       *string    `json:"blocked_reason,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// AdminUser is the back-office listing view of a user.
type AdminUser struct {
	User
	SubmissionCount int `json:"submission_count"`
}
