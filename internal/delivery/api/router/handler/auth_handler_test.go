package handler

import (
	"net/http"
	"testing"

	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	mockUsecase "playground/internal/mocks/usecase"
	"playground/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthEcho(uc usecase.AuthUsecase) *echo.Echo {
	h := NewAuthHandler(AuthHandlerParams{AuthUC: uc, Jar: newJar(), Logger: newDiscardLogger()})
	e := newTestEcho()
	e.POST("/auth/checkExistingEmail", h.CheckExistingEmail)
	e.POST("/auth/checkExistingUserId", h.CheckExistingUserID)
	e.POST("/auth/signup", h.Signup)
	e.GET("/auth/verifyAuthCode", h.VerifyAuthCode)
	e.POST("/auth/requestAuthCode", h.RequestAuthCode)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/signup/integrate", h.IntegrateSocial)

	return e
}

func TestAuthHandler_CheckExistingEmail(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		uc := mockUsecase.NewMockAuthUsecase(t)
		uc.On("CheckExistingEmail", mock.Anything, usecase.CheckEmailInput{Email: "a@example.com", Social: entity.ProviderKakao}).Return(nil)

		rec := doJSON(newAuthEcho(uc), http.MethodPost, "/auth/checkExistingEmail", `{"email":"a@example.com","social":"kakao"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", decodeMessage(t, rec).Success)
	})

	t.Run("duplicate", func(t *testing.T) {
		uc := mockUsecase.NewMockAuthUsecase(t)
		uc.On("CheckExistingEmail", mock.Anything, mock.Anything).Return(domainerrors.ErrEmailExists)

		rec := doJSON(newAuthEcho(uc), http.MethodPost, "/auth/checkExistingEmail", `{"email":"a@example.com"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "EMAIL_EXISTS", decodeError(t, rec).Code)
	})

	t.Run("missing email never reaches the use case", func(t *testing.T) {
		rec := doJSON(newAuthEcho(mockUsecase.NewMockAuthUsecase(t)), http.MethodPost, "/auth/checkExistingEmail", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "MISSING_FIELDS", decodeError(t, rec).Code)
	})
}

func TestAuthHandler_CheckExistingUserID(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	uc.On("CheckExistingUserID", mock.Anything, "alice_01").Return(domainerrors.ErrUserIDExists)

	rec := doJSON(newAuthEcho(uc), http.MethodPost, "/auth/checkExistingUserId", `{"userId":"alice_01"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Signup(t *testing.T) {
	body := `{"username":"Alice","email":"alice@example.com","birth":"19990101","password":"secret123",
		"userId":"alice_01","alarms":{"message":true},"language":"English","gender":"f","location":"Seoul","ip":"10.0.0.1"}`

	t.Run("created", func(t *testing.T) {
		uc := mockUsecase.NewMockAuthUsecase(t)
		uc.On("Signup", mock.Anything, mock.MatchedBy(func(in *usecase.SignupInput) bool {
			return in.UserID == "alice_01" && in.Alarms.Message && in.Language == entity.LanguageEnglish && in.Gender == entity.GenderFemale
		})).Return(&entity.User{UserID: "alice_01"}, nil)

		rec := doJSON(newAuthEcho(uc), http.MethodPost, "/auth/signup", body)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("itemized missing fields", func(t *testing.T) {
		uc := mockUsecase.NewMockAuthUsecase(t)
		uc.On("Signup", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrMissingFields.WithDetails("username, ip"))

		rec := doJSON(newAuthEcho(uc), http.MethodPost, "/auth/signup", `{"email":"alice@example.com"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "username, ip", decodeError(t, rec).Details)
	})

	t.Run("malformed userId", func(t *testing.T) {
		rec := doJSON(newAuthEcho(mockUsecase.NewMockAuthUsecase(t)), http.MethodPost, "/auth/signup", `{"userId":"No Spaces"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, rec).Code)
	})

	t.Run("mail failure", func(t *testing.T) {
		uc := mockUsecase.NewMockAuthUsecase(t)
		uc.On("Signup", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrMailDelivery.WithDetails("smtp down"))

		rec := doJSON(newAuthEcho(uc), http.MethodPost, "/auth/signup", body)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Empty(t, decodeError(t, rec).Details)
	})
}

func TestAuthHandler_VerifyAuthCode(t *testing.T) {
	t.Run("verified", func(t *testing.T) {
		uc := mockUsecase.NewMockAuthUsecase(t)
		uc.On("VerifyCode", mock.Anything, usecase.VerifyCodeInput{Code: "012345", UserID: "alice_01"}).Return(nil)

		rec := doJSON(newAuthEcho(uc), http.MethodGet, "/auth/verifyAuthCode?authCode=012345&userId=alice_01", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("expired", func(t *testing.T) {
		uc := mockUsecase.NewMockAuthUsecase(t)
		uc.On("VerifyCode", mock.Anything, mock.Anything).Return(domainerrors.ErrCodeExpired)

		rec := doJSON(newAuthEcho(uc), http.MethodGet, "/auth/verifyAuthCode?authCode=012345&email=a@example.com", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("code must be six digits", func(t *testing.T) {
		rec := doJSON(newAuthEcho(mockUsecase.NewMockAuthUsecase(t)), http.MethodGet, "/auth/verifyAuthCode?authCode=12ab&userId=alice_01", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_RequestAuthCode(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	uc.On("RequestCode", mock.Anything, usecase.RequestCodeInput{Email: "ghost@example.com"}).Return(domainerrors.ErrUnregistered)

	rec := doJSON(newAuthEcho(uc), http.MethodPost, "/auth/requestAuthCode", `{"email":"ghost@example.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "UNREGISTERED", decodeError(t, rec).Code)
}

func TestAuthHandler_Login(t *testing.T) {
	body := `{"userId":"alice_01","password":"secret123","ip":"10.0.0.1","location":"Seoul"}`

	t.Run("sets the access cookie", func(t *testing.T) {
		uc := mockUsecase.NewMockAuthUsecase(t)
		uc.On("Login", mock.Anything, &usecase.LoginInput{
			UserID: "alice_01", Password: "secret123", IP: "10.0.0.1", Location: "Seoul", UserAgent: "test-agent",
		}).Return(&usecase.LoginOutput{AccessToken: "access-token"}, nil)

		rec := doJSON(newAuthEcho(uc), http.MethodPost, "/auth/login", body)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", decodeMessage(t, rec).Success)

		c := accessCookie(rec)
		require.NotNil(t, c)
		assert.Equal(t, "access-token", c.Value)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, 3600, c.MaxAge)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})

	for _, tt := range []struct {
		name   string
		err    error
		status int
	}{
		{"unregistered", domainerrors.ErrUnregistered, http.StatusNotFound},
		{"unverified", domainerrors.ErrUnverified, http.StatusForbidden},
		{"wrong password", domainerrors.ErrWrongPassword, http.StatusBadRequest},
	} {
		t.Run(tt.name, func(t *testing.T) {
			uc := mockUsecase.NewMockAuthUsecase(t)
			uc.On("Login", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := doJSON(newAuthEcho(uc), http.MethodPost, "/auth/login", body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Nil(t, accessCookie(rec))
		})
	}
}

func TestAuthHandler_IntegrateSocial(t *testing.T) {
	for _, tt := range []struct {
		name   string
		err    error
		status int
	}{
		{"linked", nil, http.StatusOK},
		{"no identity", domainerrors.ErrNotFound, http.StatusNotFound},
		{"already linked", domainerrors.ErrSocialAlreadyLinked, http.StatusConflict},
		{"nothing modified", domainerrors.ErrBadRequest, http.StatusBadRequest},
	} {
		t.Run(tt.name, func(t *testing.T) {
			uc := mockUsecase.NewMockAuthUsecase(t)
			uc.On("IntegrateSocial", mock.Anything, usecase.IntegrateSocialInput{Social: entity.ProviderGoogle, Email: "a@example.com"}).Return(tt.err)

			rec := doJSON(newAuthEcho(uc), http.MethodPost, "/auth/signup/integrate", `{"social":"google","email":"a@example.com"}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
