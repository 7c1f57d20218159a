package postgres

import (
	"context"

	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/repository"
	"playground/internal/errors"
	"playground/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	return repo.findOne(ctx, "find session by id", repo.db.Where("id = ?", id))
}

// FindMatching looks up the session for the (user, ip, device) triple.
func (repo *sessionRepository) FindMatching(ctx context.Context, userRef uuid.UUID, ip string, device entity.Device) (*entity.Session, error) {
	return repo.findOne(ctx, "find matching session", repo.db.Where(
		"user_ref = ? AND ip = ? AND device_type = ? AND device_os = ? AND device_browser = ?",
		userRef, ip, string(device.Type), device.OS, device.Browser,
	))
}

func (repo *sessionRepository) findOne(ctx context.Context, op string, scope *gorm.DB) (*entity.Session, error) {
	var sessionM model.SessionModel
	if err := scope.WithContext(ctx).First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, classifyError(err, op)
	}

	return toSessionDomain(&sessionM), nil
}

// Create inserts a new session. A concurrent insert for the same triple yields ErrDuplicate.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicate.WithDetails("session")
		}

		return classifyError(err, "create session")
	}
	session.CreatedAt = sessionM.CreatedAt
	session.UpdatedAt = sessionM.UpdatedAt

	return nil
}

func (repo *sessionRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error {
	res := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("id = ?", id).
		Update("refresh_token", nullableToken(refreshToken))
	if res.Error != nil {
		return classifyError(res.Error, "update refresh token")
	}
	if res.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// nullableToken stores empty tokens as NULL so they never collide on the unique index.
func nullableToken(token string) *string {
	if token == "" {
		return nil
	}

	return &token
}

func toSessionDomain(data *model.SessionModel) *entity.Session {
	session := &entity.Session{
		ID:      data.ID,
		UserRef: data.UserRef,
		Device: entity.Device{
			Type:    entity.DeviceType(data.DeviceType),
			OS:      data.DeviceOS,
			Browser: data.DeviceBrowser,
		},
		IP:        data.IP,
		Location:  data.Location,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
	if data.RefreshToken != nil {
		session.RefreshToken = *data.RefreshToken
	}

	return session
}

func fromSessionDomain(data *entity.Session) *model.SessionModel {
	return &model.SessionModel{
		ID:            data.ID,
		UserRef:       data.UserRef,
		IP:            data.IP,
		DeviceType:    string(data.Device.Type),
		DeviceOS:      data.Device.OS,
		DeviceBrowser: data.Device.Browser,
		RefreshToken:  nullableToken(data.RefreshToken),
		Location:      data.Location,
	}
}
