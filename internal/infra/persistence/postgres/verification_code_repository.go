package postgres

import (
	"context"
	"time"

	"playground/internal/domain/entity"
	"playground/internal/domain/repository"
	"playground/internal/errors"
	"playground/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type verificationCodeRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewVerificationCodeRepository is the constructor for verificationCodeRepository.
func NewVerificationCodeRepository(db *gorm.DB) repository.VerificationCodeRepository {
	return &verificationCodeRepository{db: db, now: time.Now}
}

// Create stores code. A zero ExpiresAt becomes now plus entity.DefaultVerificationCodeTTL.
func (repo *verificationCodeRepository) Create(ctx context.Context, code *entity.VerificationCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	if code.ExpiresAt.IsZero() {
		code.ExpiresAt = repo.now().Add(entity.DefaultVerificationCodeTTL)
	}
	codeM := &model.VerificationCodeModel{
		ID:        code.ID,
		UserID:    code.UserID,
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt.UTC(),
	}

	if err := repo.db.WithContext(ctx).Create(codeM).Error; err != nil {
		return classifyError(err, "create verification code")
	}
	code.CreatedAt = codeM.CreatedAt

	return nil
}

// FindLatestActive returns the most recently issued code that is still valid at now.
func (repo *verificationCodeRepository) FindLatestActive(ctx context.Context, userID string, now time.Time) (*entity.VerificationCode, error) {
	var codeM model.VerificationCodeModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now.UTC()).
		Order("expires_at DESC").
		Order("created_at DESC").
		First(&codeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVerificationCodeNotFound
		}

		return nil, classifyError(err, "find verification code")
	}

	return &entity.VerificationCode{
		ID:        codeM.ID,
		UserID:    codeM.UserID,
		Code:      codeM.Code,
		ExpiresAt: codeM.ExpiresAt,
		CreatedAt: codeM.CreatedAt,
	}, nil
}

func (repo *verificationCodeRepository) DeleteByUserID(ctx context.Context, userID string) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.VerificationCodeModel{}).Error

	return classifyError(err, "delete verification codes")
}

func (repo *verificationCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&model.VerificationCodeModel{})
	if res.Error != nil {
		return 0, classifyError(res.Error, "delete expired verification codes")
	}

	return res.RowsAffected, nil
}
