// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is the identity record for a registered person, local or social-origin.
type User struct {
	ID                    uuid.UUID  `json:"id"`              // Primary key referenced by sessions and tokens.
	Username              string     `json:"username"`        // Display name, 1 to 30 characters.
	Email                 string     `json:"email"`           // Globally unique.
	UserID                string     `json:"userId"`          // Globally unique login handle, ^[a-z0-9_]{4,30}$.
	PasswordHash          string     `json:"-"`               // bcrypt hash; random for social-only accounts.
	Birth                 string     `json:"birth"`           // YYYYMMDD.
	Gender                Gender     `json:"gender"`          // See Gender.
	Role                  Role       `json:"role"`            // Defaults to RoleUser.
	RegistrationIP        string     `json:"ip"`              // IPv4 or IPv6 address the account was created from.
	RegistrationLocation  string     `json:"location"`        // Free-text location reported by the client.
	AvatarURL             string     `json:"userPic"`         // Public URL of the uploaded profile image.
	Bio                   string     `json:"userIntro"`       // Up to 150 characters.
	FollowingIDs          []string   `json:"following"`       // userIds this user follows.
	FollowerIDs           []string   `json:"followers"`       // userIds following this user.
	IsVerified            bool       `json:"isAuthenticated"` // Email ownership proven (or social-origin).
	VerificationExpiresAt *time.Time `json:"-"`               // Unverified accounts are purged after this instant.
	SocialProviders       []Provider `json:"social"`          // Linked OAuth providers.
	CreatedAt             time.Time  `json:"createdAt"`       // Timestamp of account creation.
	UpdatedAt             time.Time  `json:"updatedAt"`       // Timestamp of the last modification.
}

// HasProvider reports whether the provider is already linked to this user.
func (u *User) HasProvider(p Provider) bool {
	return slices.Contains(u.SocialProviders, p)
}

// Gender is the self-reported gender code.
type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
	GenderBoth   Gender = "b"
	GenderHidden Gender = "h"
)

// IsValid checks if the Gender is a valid value.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderBoth, GenderHidden:
		return true
	default:
		return false
	}
}
