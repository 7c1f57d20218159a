package postgres

import (
	"context"
	"testing"
	"time"

	"playground/internal/domain/entity"
	"playground/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationCodeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewVerificationCodeRepository(newTestDB(t))
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, &entity.VerificationCode{UserID: "alice_01", Code: "111111", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, repo.Create(ctx, &entity.VerificationCode{UserID: "alice_01", Code: "222222", ExpiresAt: now.Add(5 * time.Minute)}))
	require.NoError(t, repo.Create(ctx, &entity.VerificationCode{UserID: "alice_01", Code: "333333", ExpiresAt: now.Add(10 * time.Minute)}))
	require.NoError(t, repo.Create(ctx, &entity.VerificationCode{UserID: "bob_0001", Code: "444444", ExpiresAt: now.Add(-time.Minute)}))

	t.Run("latest active code wins", func(t *testing.T) {
		code, err := repo.FindLatestActive(ctx, "alice_01", now)
		require.NoError(t, err)
		assert.Equal(t, "333333", code.Code)
	})

	t.Run("expired codes are not returned", func(t *testing.T) {
		_, err := repo.FindLatestActive(ctx, "bob_0001", now)
		assert.ErrorIs(t, err, repository.ErrVerificationCodeNotFound)
	})

	t.Run("delete expired", func(t *testing.T) {
		deleted, err := repo.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
	})

	t.Run("delete by user", func(t *testing.T) {
		require.NoError(t, repo.DeleteByUserID(ctx, "alice_01"))
		_, err := repo.FindLatestActive(ctx, "alice_01", now)
		assert.ErrorIs(t, err, repository.ErrVerificationCodeNotFound)
	})
}

func TestVerificationCodeRepository_CreateDefaultsExpiry(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := &verificationCodeRepository{db: newTestDB(t), now: func() time.Time { return issuedAt }}

	code := &entity.VerificationCode{UserID: "carol_01", Code: "555555"}
	require.NoError(t, repo.Create(ctx, code))
	assert.True(t, code.ExpiresAt.Equal(issuedAt.Add(10*time.Minute)))

	found, err := repo.FindLatestActive(ctx, "carol_01", issuedAt.Add(9*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "555555", found.Code)

	_, err = repo.FindLatestActive(ctx, "carol_01", issuedAt.Add(10*time.Minute))
	assert.ErrorIs(t, err, repository.ErrVerificationCodeNotFound)
}
