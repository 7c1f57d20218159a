package oauth

import (
	"context"
	"net/http"
	"strings"

	"playground/config"
	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/service"
	"playground/internal/errors"

	"golang.org/x/oauth2"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var googleEndpoints = endpoints{
	auth:  "https://accounts.google.com/o/oauth2/v2/auth",
	token: "https://oauth2.googleapis.com/token",
	// API root; the client library appends oauth2/v2/userinfo.
	userInfo: "https://www.googleapis.com/",
}

// GoogleProvider reads the profile through the Google OAuth2 API client.
type GoogleProvider struct {
	codeFlow
}

// NewGoogleProvider creates the Google adapter.
func NewGoogleProvider(pc config.OAuthProviderConfig, httpClient *http.Client) *GoogleProvider {
	return &GoogleProvider{codeFlow: newCodeFlow(entity.ProviderGoogle, pc, googleEndpoints, httpClient)}
}

// FetchProfile calls userinfo and keeps Google's flat shape.
func (p *GoogleProvider) FetchProfile(ctx context.Context, accessToken string) (*service.OAuthProfile, error) {
	tokenClient := oauth2.NewClient(p.clientContext(ctx), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	api, err := googleoauth2.NewService(ctx,
		option.WithHTTPClient(tokenClient),
		option.WithEndpoint(p.userInfoURL),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create google oauth2 client")
	}

	info, err := api.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(domainerrors.ErrUpstreamAuth.WithDetails(err.Error()), "google user info request failed")
	}

	return &service.OAuthProfile{
		Provider:    entity.ProviderGoogle,
		ExternalID:  info.Id,
		Email:       info.Email,
		DisplayName: info.Name,
		Name:        info.Name,
		AvatarURL:   info.Picture,
		Gender:      strings.ToLower(info.Gender),
	}, nil
}
