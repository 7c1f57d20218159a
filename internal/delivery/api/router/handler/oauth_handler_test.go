package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/service"
	mockUsecase "playground/internal/mocks/usecase"
	"playground/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOAuthEcho(uc usecase.OAuthUsecase) *echo.Echo {
	h := NewOAuthHandler(OAuthHandlerParams{OAuthUC: uc, Jar: newJar(), Config: newTestConfig(), Logger: newDiscardLogger()})
	e := newTestEcho()
	e.GET("/auth/:provider/authorize", h.Authorize)
	e.GET("/auth/naver/signup", h.NaverSignup)
	e.GET("/auth/oauth/login/callback", h.LoginCallback)
	e.GET("/auth/kakao/callback", h.KakaoCallback)
	e.GET("/auth/naver/callback", h.NaverCallback)
	e.POST("/auth/:provider/signup", h.SocialSignup)

	return e
}

func redirectQuery(t *testing.T, rec interface{ Header() http.Header }) url.Values {
	t.Helper()
	loc, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)

	return loc.Query()
}

func TestOAuthHandler_Authorize(t *testing.T) {
	t.Run("redirects to the consent page", func(t *testing.T) {
		uc := mockUsecase.NewMockOAuthUsecase(t)
		uc.On("AuthorizeURL", entity.ProviderNaver, "10.0.0.1_Seoul").Return("https://nid.naver.test/authorize?state=x", nil)

		rec := doJSON(newOAuthEcho(uc), http.MethodGet, "/auth/naver/authorize?state=10.0.0.1_Seoul", "")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://nid.naver.test/authorize?state=x", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("unsupported provider redirects with error", func(t *testing.T) {
		uc := mockUsecase.NewMockOAuthUsecase(t)
		uc.On("AuthorizeURL", entity.Provider("github"), mock.Anything).Return("", domainerrors.ErrUnsupportedProvider)

		rec := doJSON(newOAuthEcho(uc), http.MethodGet, "/auth/github/authorize?state=s_t", "")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, domainerrors.ErrUnsupportedProvider.Message(), redirectQuery(t, rec).Get("error"))
	})
}

func TestOAuthHandler_NaverSignup(t *testing.T) {
	uc := mockUsecase.NewMockOAuthUsecase(t)
	uc.On("AuthorizeURL", entity.ProviderNaver, "10.0.0.1_Seoul_naver").Return("https://nid.naver.test/authorize?state=n", nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/naver/signup?location=Seoul", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	rec := httptest.NewRecorder()
	newOAuthEcho(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://nid.naver.test/authorize?state=n", rec.Header().Get(echo.HeaderLocation))
}

func TestOAuthHandler_LoginCallback(t *testing.T) {
	t.Run("sets the cookie and goes home", func(t *testing.T) {
		uc := mockUsecase.NewMockOAuthUsecase(t)
		uc.On("Login", mock.Anything, usecase.OAuthCallbackInput{Code: "abc", State: "10.0.0.1_Seoul_google", UserAgent: "test-agent"}).
			Return(&usecase.LoginOutput{AccessToken: "access-token"}, nil)

		rec := doJSON(newOAuthEcho(uc), http.MethodGet, "/auth/oauth/login/callback?code=abc&state=10.0.0.1_Seoul_google", "")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, clientURL+"/", rec.Header().Get(echo.HeaderLocation))
		require.NotNil(t, accessCookie(rec))
	})

	t.Run("unregistered email redirects with error", func(t *testing.T) {
		uc := mockUsecase.NewMockOAuthUsecase(t)
		uc.On("Login", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrUnregistered)

		rec := doJSON(newOAuthEcho(uc), http.MethodGet, "/auth/oauth/login/callback?code=abc&state=x_y", "")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, domainerrors.ErrUnregistered.Message(), redirectQuery(t, rec).Get("error"))
		assert.Nil(t, accessCookie(rec))
	})
}

func TestOAuthHandler_KakaoCallback(t *testing.T) {
	t.Run("known identity logs in", func(t *testing.T) {
		uc := mockUsecase.NewMockOAuthUsecase(t)
		uc.On("KakaoCallback", mock.Anything, mock.Anything).Return(&usecase.KakaoCallbackOutput{
			Login: &usecase.LoginOutput{AccessToken: "access-token"},
		}, nil)

		rec := doJSON(newOAuthEcho(uc), http.MethodGet, "/auth/kakao/callback?code=abc&state=10.0.0.1_Seoul", "")
		assert.Equal(t, clientURL+"/auth", rec.Header().Get(echo.HeaderLocation))
		assert.NotNil(t, accessCookie(rec))
	})

	t.Run("new identity continues signup on the client", func(t *testing.T) {
		uc := mockUsecase.NewMockOAuthUsecase(t)
		uc.On("KakaoCallback", mock.Anything, mock.Anything).Return(&usecase.KakaoCallbackOutput{
			Profile: &service.OAuthProfile{Email: "new@example.com", DisplayName: "newbie", AvatarURL: "https://k.test/p.png"},
		}, nil)

		rec := doJSON(newOAuthEcho(uc), http.MethodGet, "/auth/kakao/callback?code=abc&state=10.0.0.1_Seoul", "")
		q := redirectQuery(t, rec)
		assert.Equal(t, "success", q.Get("kakao"))
		assert.Equal(t, "newbie", q.Get("username"))
		assert.Equal(t, "new@example.com", q.Get("email"))
		assert.Equal(t, "https://k.test/p.png", q.Get("userPic"))
		assert.Nil(t, accessCookie(rec))
	})
}

func TestOAuthHandler_NaverCallback(t *testing.T) {
	t.Run("echoes the new userId", func(t *testing.T) {
		uc := mockUsecase.NewMockOAuthUsecase(t)
		uc.On("NaverCallback", mock.Anything, mock.MatchedBy(func(in usecase.OAuthCallbackInput) bool {
			return in.Provider == entity.ProviderNaver && in.Code == "abc"
		})).Return(&usecase.NaverCallbackOutput{
			Login:  &usecase.LoginOutput{AccessToken: "access-token"},
			UserID: "abcdefgh",
		}, nil)

		rec := doJSON(newOAuthEcho(uc), http.MethodGet, "/auth/naver/callback?code=abc&state=10.0.0.1_Seoul", "")
		q := redirectQuery(t, rec)
		assert.Equal(t, "success", q.Get("naver"))
		assert.Equal(t, "abcdefgh", q.Get("userId"))
		assert.NotNil(t, accessCookie(rec))
	})

	t.Run("existing email", func(t *testing.T) {
		uc := mockUsecase.NewMockOAuthUsecase(t)
		uc.On("NaverCallback", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrEmailExists)

		rec := doJSON(newOAuthEcho(uc), http.MethodGet, "/auth/naver/callback?code=abc&state=10.0.0.1_Seoul", "")
		assert.Equal(t, domainerrors.ErrEmailExists.Message(), redirectQuery(t, rec).Get("error"))
	})
}

func TestOAuthHandler_SocialSignup(t *testing.T) {
	body := `{"username":"Bob","email":"bob@example.com","birth":"19900101","userId":"bob_01","gender":"m","ip":"10.0.0.1","location":"Seoul"}`

	t.Run("google signup logs in", func(t *testing.T) {
		uc := mockUsecase.NewMockOAuthUsecase(t)
		uc.On("SocialSignup", mock.Anything, mock.MatchedBy(func(in *usecase.SocialSignupInput) bool {
			return in.Provider == entity.ProviderGoogle && in.UserID == "bob_01" && in.UserAgent == "test-agent"
		})).Return(&usecase.LoginOutput{AccessToken: "access-token"}, nil)

		rec := doJSON(newOAuthEcho(uc), http.MethodPost, "/auth/google/signup", body)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, accessCookie(rec))
	})

	t.Run("duplicate is a JSON error", func(t *testing.T) {
		uc := mockUsecase.NewMockOAuthUsecase(t)
		uc.On("SocialSignup", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrUserIDExists)

		rec := doJSON(newOAuthEcho(uc), http.MethodPost, "/auth/kakao/signup", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "USER_ID_EXISTS", decodeError(t, rec).Code)
	})
}
