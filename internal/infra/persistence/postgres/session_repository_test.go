package postgres

import (
	"context"
	"testing"

	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := newTestUser("alice_01", "alice@example.com")
	require.NoError(t, NewUserRepository(db).Create(ctx, user))
	repo := NewSessionRepository(db)

	device := entity.Device{Type: entity.DeviceDesktop, OS: "Windows 10", Browser: "Chrome"}
	session := &entity.Session{UserRef: user.ID, Device: device, IP: "10.0.0.1", RefreshToken: "refresh-1"}
	require.NoError(t, repo.Create(ctx, session))
	assert.NotEqual(t, uuid.Nil, session.ID)

	t.Run("find matching triple", func(t *testing.T) {
		found, err := repo.FindMatching(ctx, user.ID, "10.0.0.1", device)
		require.NoError(t, err)
		assert.Equal(t, session.ID, found.ID)
		assert.Equal(t, "refresh-1", found.RefreshToken)
		assert.Equal(t, device, found.Device)
	})

	t.Run("other device does not match", func(t *testing.T) {
		other := entity.Device{Type: entity.DeviceMobile, OS: "iOS", Browser: "Safari"}
		_, err := repo.FindMatching(ctx, user.ID, "10.0.0.1", other)
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})

	t.Run("duplicate triple is rejected", func(t *testing.T) {
		dup := &entity.Session{UserRef: user.ID, Device: device, IP: "10.0.0.1", RefreshToken: "refresh-2"}
		assert.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrDuplicate)
	})

	t.Run("update refresh token", func(t *testing.T) {
		require.NoError(t, repo.UpdateRefreshToken(ctx, session.ID, "refresh-3"))
		found, err := repo.FindByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, "refresh-3", found.RefreshToken)
	})

	t.Run("update unknown session", func(t *testing.T) {
		err := repo.UpdateRefreshToken(ctx, uuid.New(), "refresh-4")
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})

	t.Run("empty tokens do not collide", func(t *testing.T) {
		first := &entity.Session{UserRef: user.ID, Device: device, IP: "10.0.0.2"}
		second := &entity.Session{UserRef: user.ID, Device: device, IP: "10.0.0.3"}
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))

		found, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Empty(t, found.RefreshToken)
	})
}
