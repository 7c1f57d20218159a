package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel mirrors the 'users' table. IDs are generated by the application.
type UserModel struct {
	ID                    uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Username              string                      `gorm:"type:varchar(30);not null"`
	Email                 string                      `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	UserID                string                      `gorm:"column:user_id;type:varchar(30);not null;uniqueIndex:uq_users_user_id"`
	PasswordHash          string                      `gorm:"type:varchar(255);not null"`
	Birth                 string                      `gorm:"type:varchar(8)"`
	Gender                string                      `gorm:"type:varchar(1)"`
	Role                  string                      `gorm:"type:varchar(10);not null;default:USER"`
	IP                    string                      `gorm:"column:ip;type:varchar(45)"`
	Location              string                      `gorm:"type:varchar(255)"`
	AvatarURL             string                      `gorm:"type:text"`
	Bio                   string                      `gorm:"type:varchar(150)"`
	FollowingIDs          datatypes.JSONSlice[string] `gorm:"not null"`
	FollowerIDs           datatypes.JSONSlice[string] `gorm:"not null"`
	IsVerified            bool                        `gorm:"not null;default:false"`
	VerificationExpiresAt *time.Time                  `gorm:"index"`
	CreatedAt             time.Time
	UpdatedAt             time.Time

	SocialProviders []SocialProviderModel `gorm:"foreignKey:UserRef;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// SocialProviderModel mirrors 'user_social_providers'; the composite key makes linking idempotent.
type SocialProviderModel struct {
	UserRef   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Provider  string    `gorm:"type:varchar(20);primaryKey"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SocialProviderModel) TableName() string {
	return "user_social_providers"
}
