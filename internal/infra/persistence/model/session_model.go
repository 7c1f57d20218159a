package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'sessions' table.
// uq_sessions_triple allows one row per (user, ip, device).
type SessionModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserRef       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_sessions_triple,priority:1"`
	IP            string    `gorm:"column:ip;type:varchar(45);not null;uniqueIndex:uq_sessions_triple,priority:2"`
	DeviceType    string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_sessions_triple,priority:3"`
	DeviceOS      string    `gorm:"column:device_os;type:varchar(50);not null;uniqueIndex:uq_sessions_triple,priority:4"`
	DeviceBrowser string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_sessions_triple,priority:5"`
	RefreshToken  *string   `gorm:"type:text;uniqueIndex:uq_sessions_refresh_token"`
	Location      string    `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User *UserModel `gorm:"foreignKey:UserRef;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
