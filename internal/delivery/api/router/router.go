// Package router registers the API routes.
package router

import (
	"net/http"
	"strings"

	"playground/config"
	"playground/internal/delivery/api/middleware"
	"playground/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	OAuthHandler   *handler.OAuthHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
	MetricsHandler http.Handler   `name:"metricsHandler"`
	Config         *config.Config `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	oauthHandler   *handler.OAuthHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
	metricsHandler http.Handler
	storage        *config.StorageConfig
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	var storage *config.StorageConfig
	if params.Config != nil {
		storage = params.Config.Storage
	}

	return &router{
		authHandler:    params.AuthHandler,
		oauthHandler:   params.OAuthHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
		metricsHandler: params.MetricsHandler,
		storage:        storage,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(r.metricsHandler))

	if prefix, dir, ok := r.storage.LocalMount(); ok {
		e.Group(prefix, hideBlobSidecars).Static("/", dir)
	}

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/checkExistingEmail", r.authHandler.CheckExistingEmail)
		authGroup.POST("/checkExistingUserId", r.authHandler.CheckExistingUserID)
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.GET("/verifyAuthCode", r.authHandler.VerifyAuthCode)
		authGroup.POST("/requestAuthCode", r.authHandler.RequestAuthCode)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/signup/integrate", r.authHandler.IntegrateSocial)
	}

	// Browser redirect flows.
	{
		authGroup.GET("/:provider/authorize", r.oauthHandler.Authorize)
		authGroup.GET("/naver/signup", r.oauthHandler.NaverSignup)
		authGroup.GET("/oauth/login/callback", r.oauthHandler.LoginCallback)
		authGroup.GET("/kakao/callback", r.oauthHandler.KakaoCallback)
		authGroup.GET("/naver/callback", r.oauthHandler.NaverCallback)
		authGroup.POST("/:provider/signup", r.oauthHandler.SocialSignup)
		authGroup.POST("/naver/settings", r.userHandler.SaveSettings)
	}

	e.GET("/fetchUserInfo", r.userHandler.FetchUserInfo, r.authMiddleware.Authenticate)
}

// blobSidecarExt is the suffix fileblob gives the metadata file it writes next to each blob.
const blobSidecarExt = ".attrs"

// hideBlobSidecars keeps fileblob metadata files out of the static mount.
func hideBlobSidecars(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.HasSuffix(c.Request().URL.Path, blobSidecarExt) {
			return echo.ErrNotFound
		}

		return next(c)
	}
}
