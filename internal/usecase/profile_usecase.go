package usecase

import (
	"context"

	"playground/internal/domain/entity"

	"github.com/google/uuid"
)

// SaveSettingsInput stores preferences for an identity that has none yet.
type SaveSettingsInput struct {
	UserID   string
	Alarms   entity.Alarms
	Language entity.Language
	DarkMode bool
}

// ProfileUsecase reads identities and stores their settings.
type ProfileUsecase interface {
	FetchUserInfo(ctx context.Context, id uuid.UUID) (*entity.User, error)
	SaveSettings(ctx context.Context, input SaveSettingsInput) error
}
