package model

import (
	"time"

	"github.com/google/uuid"
)

// VerificationCodeModel mirrors the 'verification_codes' table.
type VerificationCodeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"column:user_id;type:varchar(30);not null;index"`
	Code      string    `gorm:"type:varchar(6);not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (VerificationCodeModel) TableName() string {
	return "verification_codes"
}
