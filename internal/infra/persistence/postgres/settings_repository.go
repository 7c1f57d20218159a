package postgres

import (
	"context"

	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/repository"
	"playground/internal/errors"
	"playground/internal/infra/persistence/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository is the constructor for settingsRepository.
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Create stores the settings row. A second row for the same userId yields ErrSettingsExist.
func (repo *settingsRepository) Create(ctx context.Context, settings *entity.UserSettings) error {
	settingsM := &model.UserSettingsModel{
		UserID:     settings.UserID,
		ScreenMode: string(settings.ScreenMode),
		Alarms:     datatypes.NewJSONType(settings.Alarms),
		Language:   string(settings.Language),
	}

	if err := repo.db.WithContext(ctx).Create(settingsM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSettingsExist
		}

		return classifyError(err, "create user settings")
	}
	settings.CreatedAt = settingsM.CreatedAt
	settings.UpdatedAt = settingsM.UpdatedAt

	return nil
}

func (repo *settingsRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserSettings, error) {
	var settingsM model.UserSettingsModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&settingsM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSettingsNotFound
		}

		return nil, classifyError(err, "find user settings")
	}

	return &entity.UserSettings{
		UserID:     settingsM.UserID,
		ScreenMode: entity.ScreenMode(settingsM.ScreenMode),
		Alarms:     settingsM.Alarms.Data(),
		Language:   entity.Language(settingsM.Language),
		CreatedAt:  settingsM.CreatedAt,
		UpdatedAt:  settingsM.UpdatedAt,
	}, nil
}

func (repo *settingsRepository) DeleteByUserIDs(ctx context.Context, userIDs []string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	res := repo.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Delete(&model.UserSettingsModel{})
	if res.Error != nil {
		return 0, classifyError(res.Error, "delete user settings")
	}

	return res.RowsAffected, nil
}
