// Package oauth adapts Google, Kakao and Naver authorization code flows to service.OAuthProvider.
package oauth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"playground/config"
	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/service"
	"playground/internal/errors"

	"golang.org/x/oauth2"
)

const defaultHTTPTimeout = 10 * time.Second

// codeFlow holds what every provider shares: the oauth2 client registration and an HTTP client.
type codeFlow struct {
	provider    entity.Provider
	conf        *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
	// sendState echoes state on the token request.
	sendState bool
}

func newCodeFlow(provider entity.Provider, pc config.OAuthProviderConfig, defaults endpoints, httpClient *http.Client) codeFlow {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	var scopes []string
	if pc.Scopes != "" {
		scopes = strings.Fields(pc.Scopes)
	}

	return codeFlow{
		provider: provider,
		conf: &oauth2.Config{
			ClientID:     pc.ClientID,
			ClientSecret: pc.ClientSecret,
			RedirectURL:  pc.RedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   firstNonEmpty(pc.AuthURL, defaults.auth),
				TokenURL:  firstNonEmpty(pc.TokenURL, defaults.token),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		userInfoURL: firstNonEmpty(pc.UserInfoURL, defaults.userInfo),
		httpClient:  httpClient,
	}
}

type endpoints struct {
	auth     string
	token    string
	userInfo string
}

// Provider returns which provider this adapter speaks to.
func (f *codeFlow) Provider() entity.Provider {
	return f.provider
}

// AuthCodeURL builds the consent page URL.
func (f *codeFlow) AuthCodeURL(state string) string {
	return f.conf.AuthCodeURL(state)
}

// ExchangeCode trades the authorization code for the provider's access token.
func (f *codeFlow) ExchangeCode(ctx context.Context, code, state string) (string, error) {
	if code == "" {
		return "", domainerrors.ErrBadRequest.WithDetails("authorization code is missing")
	}

	var opts []oauth2.AuthCodeOption
	if f.sendState {
		opts = append(opts, oauth2.SetAuthURLParam("state", state))
	}

	token, err := f.conf.Exchange(f.clientContext(ctx), code, opts...)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return "", errors.Wrapf(
				domainerrors.ErrUpstreamAuth.WithDetails(retrieveErr.ErrorCode),
				"%s token exchange failed with status %d", f.provider, retrieveErr.Response.StatusCode,
			)
		}

		return "", errors.Wrapf(domainerrors.ErrUpstreamAuth.WithDetails(err.Error()), "%s token exchange failed", f.provider)
	}

	return token.AccessToken, nil
}

func (f *codeFlow) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
}

// getJSON performs an authenticated GET against the user info endpoint and decodes the body into out.
func (f *codeFlow) getJSON(ctx context.Context, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.userInfoURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create user info request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(domainerrors.ErrUpstreamAuth.WithDetails(err.Error()), "%s user info request failed", f.provider)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))

		return errors.Wrapf(domainerrors.ErrUpstreamAuth.WithDetails(string(body)),
			"%s user info request failed with status %d", f.provider, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(domainerrors.ErrUpstreamAuth.WithDetails("malformed profile"), "decode %s user info: %v", f.provider, err)
	}

	return nil
}

// registry maps providers to their adapters.
type registry map[entity.Provider]service.OAuthProvider

// Get resolves the adapter for a provider.
func (r registry) Get(provider entity.Provider) (service.OAuthProvider, bool) {
	p, ok := r[provider]

	return p, ok
}

// NewProviderRegistry builds adapters for every supported provider from configuration.
func NewProviderRegistry(cfg *config.Config) service.OAuthProviderRegistry {
	oauthCfg := config.OAuthConfig{}
	if cfg.OAuth != nil {
		oauthCfg = *cfg.OAuth
	}

	client := &http.Client{Timeout: defaultHTTPTimeout}

	return registry{
		entity.ProviderGoogle: NewGoogleProvider(oauthCfg.Google, client),
		entity.ProviderKakao:  NewKakaoProvider(oauthCfg.Kakao, client),
		entity.ProviderNaver:  NewNaverProvider(oauthCfg.Naver, client),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
