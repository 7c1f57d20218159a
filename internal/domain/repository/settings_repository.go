package repository

import (
	"context"
	"errors"

	"playground/internal/domain/entity"
)

// ErrSettingsNotFound is returned when a user has no settings row.
var ErrSettingsNotFound = errors.New("user settings not found")

// SettingsRepository persists per-user client preferences.
type SettingsRepository interface {
	// Create inserts settings. A second row for the same userId is reported as a duplicate error.
	Create(ctx context.Context, settings *entity.UserSettings) error

	// FindByUserID loads the settings of a user.
	FindByUserID(ctx context.Context, userID string) (*entity.UserSettings, error)

	// DeleteByUserIDs removes settings of the given users.
	DeleteByUserIDs(ctx context.Context, userIDs []string) (int64, error)
}
