package model

import (
	"time"

	"playground/internal/domain/entity"

	"gorm.io/datatypes"
)

// UserSettingsModel mirrors the 'user_settings' table, keyed by the login handle.
type UserSettingsModel struct {
	UserID     string                            `gorm:"column:user_id;type:varchar(30);primaryKey"`
	ScreenMode string                            `gorm:"type:varchar(10);not null;default:light"`
	Alarms     datatypes.JSONType[entity.Alarms] `gorm:"not null"`
	Language   string                            `gorm:"type:varchar(10);not null;default:Korean"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserSettingsModel) TableName() string {
	return "user_settings"
}
