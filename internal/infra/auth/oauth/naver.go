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
)

var naverEndpoints = endpoints{
	auth:     "https://nid.naver.com/oauth2.0/authorize",
	token:    "https://nid.naver.com/oauth2.0/token",
	userInfo: "https://openapi.naver.com/v1/nid/me",
}

// NaverProvider needs state echoed on the token request and client headers on every call.
type NaverProvider struct {
	codeFlow
}

// NewNaverProvider creates the Naver adapter.
func NewNaverProvider(pc config.OAuthProviderConfig, httpClient *http.Client) *NaverProvider {
	base := http.DefaultTransport
	timeout := defaultHTTPTimeout
	if httpClient != nil {
		if httpClient.Transport != nil {
			base = httpClient.Transport
		}
		timeout = httpClient.Timeout
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &headerTransport{
			base: base,
			headers: map[string]string{
				"X-Naver-Client-Id":     pc.ClientID,
				"X-Naver-Client-Secret": pc.ClientSecret,
			},
		},
	}

	flow := newCodeFlow(entity.ProviderNaver, pc, naverEndpoints, client)
	flow.sendState = true

	return &NaverProvider{codeFlow: flow}
}

type naverUser struct {
	ResultCode string `json:"resultcode"`
	Message    string `json:"message"`
	Response   struct {
		ID           string `json:"id"`
		Nickname     string `json:"nickname"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		Gender       string `json:"gender"`
		ProfileImage string `json:"profile_image"`
		Birthday     string `json:"birthday"` // MM-DD
		Birthyear    string `json:"birthyear"`
	} `json:"response"`
}

// FetchProfile unwraps the response envelope.
func (p *NaverProvider) FetchProfile(ctx context.Context, accessToken string) (*service.OAuthProfile, error) {
	var user naverUser
	if err := p.getJSON(ctx, accessToken, &user); err != nil {
		return nil, err
	}

	if user.ResultCode != "" && user.ResultCode != "00" {
		return nil, errors.Wrapf(domainerrors.ErrUpstreamAuth.WithDetails(user.Message), "naver profile result code %s", user.ResultCode)
	}

	r := user.Response
	profile := &service.OAuthProfile{
		Provider:    entity.ProviderNaver,
		ExternalID:  r.ID,
		Email:       r.Email,
		DisplayName: r.Nickname,
		Name:        r.Name,
		AvatarURL:   r.ProfileImage,
		Gender:      strings.ToLower(r.Gender),
	}

	if r.Birthyear != "" && r.Birthday != "" {
		profile.Birth = r.Birthyear + strings.ReplaceAll(r.Birthday, "-", "")
	}

	return profile, nil
}

// headerTransport sets fixed headers on every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for k, v := range t.headers {
		clone.Header.Set(k, v)
	}

	return t.base.RoundTrip(clone)
}
