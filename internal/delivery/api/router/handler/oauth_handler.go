package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"playground/config"
	"playground/internal/delivery/api/cookie"
	"playground/internal/delivery/api/response"
	deliverycontext "playground/internal/delivery/context"
	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// OAuthHandlerParams holds dependencies for OAuthHandler, injected by Fx.
type OAuthHandlerParams struct {
	fx.In

	OAuthUC usecase.OAuthUsecase
	Jar     *cookie.Jar
	Config  *config.Config
	Logger  *slog.Logger
}

// OAuthHandler serves the provider redirects and social signup.
// Browser-facing endpoints never return an error to echo; failures redirect to the client with ?error=.
type OAuthHandler struct {
	oauthUC   usecase.OAuthUsecase
	jar       *cookie.Jar
	clientURL string
	logger    *slog.Logger
}

// NewOAuthHandler is the constructor for OAuthHandler.
func NewOAuthHandler(params OAuthHandlerParams) *OAuthHandler {
	clientURL := ""
	if params.Config.Client != nil {
		clientURL = strings.TrimRight(params.Config.Client.BaseURL, "/")
	}

	return &OAuthHandler{
		oauthUC:   params.OAuthUC,
		jar:       params.Jar,
		clientURL: clientURL,
		logger:    params.Logger,
	}
}

type socialSignupRequest struct {
	Username string          `json:"username" validate:"omitempty,max=30"`
	Email    string          `json:"email" validate:"omitempty,email"`
	Birth    string          `json:"birth" validate:"omitempty,birth"`
	UserID   string          `json:"userId" validate:"omitempty,userid"`
	Gender   entity.Gender   `json:"gender" validate:"omitempty,oneof=m f b h"`
	ImgURL   string          `json:"imgUrl"`
	Alarms   entity.Alarms   `json:"alarms"`
	Language entity.Language `json:"language" validate:"omitempty,oneof=Korean English"`
	DarkMode bool            `json:"darkMode"`
	IP       string          `json:"ip" validate:"omitempty,ipv4"`
	Location string          `json:"location"`
}

func (h *OAuthHandler) callbackInput(c echo.Context, provider entity.Provider) usecase.OAuthCallbackInput {
	return usecase.OAuthCallbackInput{
		Provider:  provider,
		Code:      c.QueryParam("code"),
		State:     c.QueryParam("state"),
		UserAgent: c.Request().UserAgent(),
	}
}

// redirect sends the browser to <client>/auth with query.
func (h *OAuthHandler) redirect(c echo.Context, query url.Values) error {
	target := h.clientURL + "/auth"
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	return c.Redirect(http.StatusFound, target)
}

func (h *OAuthHandler) redirectError(c echo.Context, err error) error {
	message := domainerrors.ErrInternalError.Message()
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message()
	}
	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
		Warn("OAuth flow failed", slog.String("path", c.Path()), slog.Any("error", err))

	return h.redirect(c, url.Values{"error": {message}})
}

// Authorize handles GET /auth/:provider/authorize. Without a state query the state is built
// from the caller's ip, the location query and the provider.
func (h *OAuthHandler) Authorize(c echo.Context) error {
	return h.authorize(c, entity.Provider(c.Param("provider")))
}

// NaverSignup handles GET /auth/naver/signup, the Naver consent redirect that starts the signup callback.
func (h *OAuthHandler) NaverSignup(c echo.Context) error {
	return h.authorize(c, entity.ProviderNaver)
}

func (h *OAuthHandler) authorize(c echo.Context, provider entity.Provider) error {
	state := c.QueryParam("state")
	if state == "" {
		state = strings.Join([]string{c.RealIP(), c.QueryParam("location"), provider.String()}, "_")
	}

	target, err := h.oauthUC.AuthorizeURL(provider, state)
	if err != nil {
		return h.redirectError(c, err)
	}

	return c.Redirect(http.StatusFound, target)
}

// LoginCallback handles GET /auth/oauth/login/callback for every provider.
// The provider comes from the state, or from the provider query when the state has none.
func (h *OAuthHandler) LoginCallback(c echo.Context) error {
	out, err := h.oauthUC.Login(c.Request().Context(), h.callbackInput(c, entity.Provider(c.QueryParam("provider"))))
	if err != nil {
		return h.redirectError(c, err)
	}
	h.jar.SetAccessToken(c, out.AccessToken)

	return c.Redirect(http.StatusFound, h.clientURL+"/")
}

// KakaoCallback handles GET /auth/kakao/callback.
func (h *OAuthHandler) KakaoCallback(c echo.Context) error {
	out, err := h.oauthUC.KakaoCallback(c.Request().Context(), h.callbackInput(c, entity.ProviderKakao))
	if err != nil {
		return h.redirectError(c, err)
	}
	if out.Login != nil {
		h.jar.SetAccessToken(c, out.Login.AccessToken)

		return h.redirect(c, nil)
	}

	username := out.Profile.DisplayName
	if username == "" {
		username = out.Profile.Name
	}

	return h.redirect(c, url.Values{
		"kakao":    {"success"},
		"username": {username},
		"userPic":  {out.Profile.AvatarURL},
		"email":    {out.Profile.Email},
	})
}

// NaverCallback handles GET /auth/naver/callback.
func (h *OAuthHandler) NaverCallback(c echo.Context) error {
	out, err := h.oauthUC.NaverCallback(c.Request().Context(), h.callbackInput(c, entity.ProviderNaver))
	if err != nil {
		return h.redirectError(c, err)
	}
	h.jar.SetAccessToken(c, out.Login.AccessToken)

	return h.redirect(c, url.Values{"naver": {"success"}, "userId": {out.UserID}})
}

// SocialSignup handles POST /auth/:provider/signup. It is a JSON endpoint and reports errors as such.
func (h *OAuthHandler) SocialSignup(c echo.Context) error {
	var req socialSignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.oauthUC.SocialSignup(c.Request().Context(), &usecase.SocialSignupInput{
		Provider:  entity.Provider(c.Param("provider")),
		Username:  req.Username,
		Email:     req.Email,
		Birth:     req.Birth,
		UserID:    req.UserID,
		Gender:    req.Gender,
		ImgURL:    req.ImgURL,
		Alarms:    req.Alarms,
		Language:  req.Language,
		DarkMode:  req.DarkMode,
		IP:        req.IP,
		Location:  req.Location,
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return err
	}
	h.jar.SetAccessToken(c, out.AccessToken)

	return response.OK(c, http.StatusOK, "signup success")
}
