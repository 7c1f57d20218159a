package postgres

import (
	"context"
	"net/netip"
	"strings"
	"time"

	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/repository"
	"playground/internal/errors"
	"playground/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) findOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("SocialProviders").
		Where(query, arg).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, classifyError(err, op)
	}

	return toUserDomain(&userM), nil
}

// FindByID retrieves a user by primary key.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, "find user by id", "id = ?", id)
}

// FindByEmail retrieves a user by email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "find user by email", "email = ?", email)
}

// FindByUserID retrieves a user by login handle.
func (repo *userRepository) FindByUserID(ctx context.Context, userID string) (*entity.User, error) {
	return repo.findOne(ctx, "find user by userId", "user_id = ?", userID)
}

// Create inserts the user together with its linked providers.
// Malformed fields fail with ErrBadRequest before any write. A unique violation is reported
// as ErrEmailExists or ErrUserIDExists depending on the constraint hit.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := validateUser(user); err != nil {
		return err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			target := duplicateTarget(err)
			switch {
			case strings.Contains(target, "email"):
				return domainerrors.ErrEmailExists
			case strings.Contains(target, "user_id"):
				return domainerrors.ErrUserIDExists
			}
		}

		return classifyError(err, "create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// SetVerified flips the verified flag. Verifying also clears the purge deadline.
func (repo *userRepository) SetVerified(ctx context.Context, userID string, verified bool) (repository.UpdateResult, error) {
	updates := map[string]any{"is_verified": verified}
	if verified {
		updates["verification_expires_at"] = nil
	}

	res := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("user_id = ? AND is_verified <> ?", userID, verified).
		Updates(updates)
	if res.Error != nil {
		return repository.UpdateResult{}, classifyError(res.Error, "set user verified")
	}
	if res.RowsAffected > 0 {
		return repository.UpdateResult{Matched: res.RowsAffected, Modified: res.RowsAffected}, nil
	}

	var matched int64
	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("user_id = ?", userID).
		Count(&matched).Error; err != nil {
		return repository.UpdateResult{}, classifyError(err, "count user")
	}

	return repository.UpdateResult{Matched: matched}, nil
}

// AddSocialProvider links a provider to the user owning email. Linking twice modifies nothing.
func (repo *userRepository) AddSocialProvider(ctx context.Context, email string, provider entity.Provider) (repository.UpdateResult, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Select("id").
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.UpdateResult{}, nil
		}

		return repository.UpdateResult{}, classifyError(err, "find user for social link")
	}

	res := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.SocialProviderModel{UserRef: userM.ID, Provider: string(provider)})
	if res.Error != nil {
		return repository.UpdateResult{}, classifyError(res.Error, "add social provider")
	}

	return repository.UpdateResult{Matched: 1, Modified: res.RowsAffected}, nil
}

// DeleteExpiredUnverified removes unverified users whose deadline passed and returns the userIds
// actually deleted. The delete rechecks verification, so a user verified after the candidate scan
// survives and is not reported; provider links are removed only for deleted users.
func (repo *userRepository) DeleteExpiredUnverified(ctx context.Context, now time.Time) ([]string, error) {
	now = now.UTC()

	var candidates []model.UserModel
	if err := repo.db.WithContext(ctx).
		Select("id", "user_id").
		Where("is_verified = ? AND verification_expires_at IS NOT NULL AND verification_expires_at < ?", false, now).
		Find(&candidates).Error; err != nil {
		return nil, classifyError(err, "find expired users")
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, u := range candidates {
		ids = append(ids, u.ID)
	}

	res := repo.db.WithContext(ctx).
		Where("id IN ? AND is_verified = ? AND verification_expires_at < ?", ids, false, now).
		Delete(&model.UserModel{})
	if res.Error != nil {
		return nil, classifyError(res.Error, "delete expired users")
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var survivors []uuid.UUID
	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id IN ?", ids).
		Pluck("id", &survivors).Error; err != nil {
		return nil, classifyError(err, "find surviving users")
	}
	kept := make(map[uuid.UUID]struct{}, len(survivors))
	for _, id := range survivors {
		kept[id] = struct{}{}
	}

	deletedRefs := make([]uuid.UUID, 0, len(candidates))
	userIDs := make([]string, 0, len(candidates))
	for _, u := range candidates {
		if _, ok := kept[u.ID]; ok {
			continue
		}
		deletedRefs = append(deletedRefs, u.ID)
		userIDs = append(userIDs, u.UserID)
	}

	// The foreign key cascades on postgres; this also covers stores without enforced keys.
	if err := repo.db.WithContext(ctx).
		Where("user_ref IN ?", deletedRefs).
		Delete(&model.SocialProviderModel{}).Error; err != nil {
		return nil, classifyError(err, "delete social providers")
	}

	return userIDs, nil
}

// validateUser enforces the column level rules the schema cannot express.
func validateUser(user *entity.User) error {
	var invalid []string
	if user.RegistrationIP != "" {
		if _, err := netip.ParseAddr(user.RegistrationIP); err != nil {
			invalid = append(invalid, "ip")
		}
	}
	if !user.Gender.IsValid() {
		invalid = append(invalid, "gender")
	}
	if user.Role != "" && !user.Role.IsValid() {
		invalid = append(invalid, "role")
	}
	if len(invalid) > 0 {
		return domainerrors.ErrBadRequest.WithDetails(strings.Join(invalid, ", "))
	}

	return nil
}

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	providers := make([]entity.Provider, 0, len(data.SocialProviders))
	for _, p := range data.SocialProviders {
		providers = append(providers, entity.Provider(p.Provider))
	}

	return &entity.User{
		ID:                    data.ID,
		Username:              data.Username,
		Email:                 data.Email,
		UserID:                data.UserID,
		PasswordHash:          data.PasswordHash,
		Birth:                 data.Birth,
		Gender:                entity.Gender(data.Gender),
		Role:                  entity.RoleOrDefault(data.Role),
		RegistrationIP:        data.IP,
		RegistrationLocation:  data.Location,
		AvatarURL:             data.AvatarURL,
		Bio:                   data.Bio,
		FollowingIDs:          nonNil(data.FollowingIDs),
		FollowerIDs:           nonNil(data.FollowerIDs),
		IsVerified:            data.IsVerified,
		VerificationExpiresAt: data.VerificationExpiresAt,
		SocialProviders:       providers,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	providers := make([]model.SocialProviderModel, 0, len(data.SocialProviders))
	for _, p := range data.SocialProviders {
		providers = append(providers, model.SocialProviderModel{UserRef: data.ID, Provider: string(p)})
	}

	var expiresAt *time.Time
	if data.VerificationExpiresAt != nil {
		utc := data.VerificationExpiresAt.UTC()
		expiresAt = &utc
	}

	return &model.UserModel{
		ID:                    data.ID,
		Username:              data.Username,
		Email:                 data.Email,
		UserID:                data.UserID,
		PasswordHash:          data.PasswordHash,
		Birth:                 data.Birth,
		Gender:                string(data.Gender),
		Role:                  string(entity.RoleOrDefault(string(data.Role))),
		IP:                    data.RegistrationIP,
		Location:              data.RegistrationLocation,
		AvatarURL:             data.AvatarURL,
		Bio:                   data.Bio,
		FollowingIDs:          nonNil(data.FollowingIDs),
		FollowerIDs:           nonNil(data.FollowerIDs),
		IsVerified:            data.IsVerified,
		VerificationExpiresAt: expiresAt,
		SocialProviders:       providers,
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}

	return ids
}
