package handler

import (
	"net/http"

	"playground/internal/delivery/api/response"
	deliverycontext "playground/internal/delivery/context"
	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
}

// UserHandler serves identity reads and settings.
type UserHandler struct {
	profileUC usecase.ProfileUsecase
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{profileUC: params.ProfileUC}
}

type saveSettingsRequest struct {
	UserID   string          `json:"userId" validate:"required"`
	Alarms   entity.Alarms   `json:"alarms"`
	Language entity.Language `json:"language" validate:"omitempty,oneof=Korean English"`
	DarkMode bool            `json:"darkMode"`
}

// FetchUserInfo handles GET /fetchUserInfo for the authenticated identity.
func (h *UserHandler) FetchUserInfo(c echo.Context) error {
	claims, ok := deliverycontext.GetAuthClaims(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	user, err := h.profileUC.FetchUserInfo(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}

	return response.JSON(c, http.StatusOK, user)
}

// SaveSettings handles POST /auth/naver/settings.
func (h *UserHandler) SaveSettings(c echo.Context) error {
	var req saveSettingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.profileUC.SaveSettings(c.Request().Context(), usecase.SaveSettingsInput{
		UserID:   req.UserID,
		Alarms:   req.Alarms,
		Language: req.Language,
		DarkMode: req.DarkMode,
	})
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusCreated, "settings saved")
}
