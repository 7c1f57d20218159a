// Package handler contains the HTTP handlers of the API.
package handler

import (
	"log/slog"
	"net/http"

	"playground/internal/delivery/api/cookie"
	"playground/internal/delivery/api/response"
	"playground/internal/domain/entity"
	"playground/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Jar    *cookie.Jar
	Logger *slog.Logger
}

// AuthHandler serves local registration, verification and login.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	jar    *cookie.Jar
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		jar:    params.Jar,
		logger: params.Logger,
	}
}

type checkEmailRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Social string `json:"social" validate:"omitempty,oneof=google kakao naver"`
}

type checkUserIDRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// signupRequest leaves presence checks to the use case, which itemizes every missing field.
type signupRequest struct {
	Username string          `json:"username" validate:"omitempty,max=30"`
	Email    string          `json:"email" validate:"omitempty,email"`
	Birth    string          `json:"birth" validate:"omitempty,birth"`
	Password string          `json:"password"`
	UserID   string          `json:"userId" validate:"omitempty,userid"`
	ImgURL   string          `json:"imgUrl"`
	Alarms   entity.Alarms   `json:"alarms"`
	Language entity.Language `json:"language" validate:"omitempty,oneof=Korean English"`
	DarkMode bool            `json:"darkMode"`
	Gender   entity.Gender   `json:"gender" validate:"omitempty,oneof=m f b h"`
	Location string          `json:"location"`
	IP       string          `json:"ip" validate:"omitempty,ipv4"`
}

type verifyCodeRequest struct {
	Code   string `query:"authCode" validate:"required,len=6,numeric"`
	UserID string `query:"userId"`
	Email  string `query:"email" validate:"omitempty,email"`
}

type requestCodeRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email" validate:"omitempty,email"`
}

type loginRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
	IP       string `json:"ip" validate:"omitempty,ipv4"`
	Location string `json:"location"`
}

type integrateSocialRequest struct {
	Social string `json:"social" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

// bindAndValidate binds the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.WithStack(err)
	}

	return c.Validate(req)
}

// CheckExistingEmail handles POST /auth/checkExistingEmail.
func (h *AuthHandler) CheckExistingEmail(c echo.Context) error {
	var req checkEmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := usecase.CheckEmailInput{Email: req.Email, Social: entity.Provider(req.Social)}
	if err := h.authUC.CheckExistingEmail(c.Request().Context(), input); err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, "email is available")
}

// CheckExistingUserID handles POST /auth/checkExistingUserId.
func (h *AuthHandler) CheckExistingUserID(c echo.Context) error {
	var req checkUserIDRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authUC.CheckExistingUserID(c.Request().Context(), req.UserID); err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, "userId is available")
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	_, err := h.authUC.Signup(c.Request().Context(), &usecase.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Birth:    req.Birth,
		Password: req.Password,
		UserID:   req.UserID,
		ImgURL:   req.ImgURL,
		Alarms:   req.Alarms,
		Language: req.Language,
		DarkMode: req.DarkMode,
		Gender:   req.Gender,
		Location: req.Location,
		IP:       req.IP,
	})
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusCreated, "verification code sent")
}

// VerifyAuthCode handles GET /auth/verifyAuthCode.
func (h *AuthHandler) VerifyAuthCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := usecase.VerifyCodeInput{Code: req.Code, UserID: req.UserID, Email: req.Email}
	if err := h.authUC.VerifyCode(c.Request().Context(), input); err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, "email verified")
}

// RequestAuthCode handles POST /auth/requestAuthCode.
func (h *AuthHandler) RequestAuthCode(c echo.Context) error {
	var req requestCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := usecase.RequestCodeInput{UserID: req.UserID, Email: req.Email}
	if err := h.authUC.RequestCode(c.Request().Context(), input); err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, "verification code sent")
}

// Login handles POST /auth/login and sets the access cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		UserID:    req.UserID,
		Email:     req.Email,
		Password:  req.Password,
		IP:        req.IP,
		Location:  req.Location,
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return err
	}
	h.jar.SetAccessToken(c, out.AccessToken)

	return response.OK(c, http.StatusOK, "login success")
}

// IntegrateSocial handles POST /auth/signup/integrate.
func (h *AuthHandler) IntegrateSocial(c echo.Context) error {
	var req integrateSocialRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := usecase.IntegrateSocialInput{Social: entity.Provider(req.Social), Email: req.Email}
	if err := h.authUC.IntegrateSocial(c.Request().Context(), input); err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, "social account linked")
}
