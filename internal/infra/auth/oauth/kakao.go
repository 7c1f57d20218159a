package oauth

import (
	"context"
	"net/http"
	"strconv"

	"playground/config"
	"playground/internal/domain/entity"
	"playground/internal/domain/service"
)

var kakaoEndpoints = endpoints{
	auth:     "https://kauth.kakao.com/oauth/authorize",
	token:    "https://kauth.kakao.com/oauth/token",
	userInfo: "https://kapi.kakao.com/v2/user/me",
}

// KakaoProvider reads the profile from kapi.kakao.com.
type KakaoProvider struct {
	codeFlow
}

// NewKakaoProvider creates the Kakao adapter.
func NewKakaoProvider(pc config.OAuthProviderConfig, httpClient *http.Client) *KakaoProvider {
	return &KakaoProvider{codeFlow: newCodeFlow(entity.ProviderKakao, pc, kakaoEndpoints, httpClient)}
}

type kakaoUser struct {
	ID         int64 `json:"id"`
	Properties struct {
		Nickname     string `json:"nickname"`
		ProfileImage string `json:"profile_image"`
	} `json:"properties"`
	KakaoAccount struct {
		Email     string `json:"email"`
		Name      string `json:"name"`
		Gender    string `json:"gender"`
		Birthyear string `json:"birthyear"`
		Birthday  string `json:"birthday"` // MMDD
	} `json:"kakao_account"`
}

// FetchProfile unwraps the properties and kakao_account envelopes.
func (p *KakaoProvider) FetchProfile(ctx context.Context, accessToken string) (*service.OAuthProfile, error) {
	var user kakaoUser
	if err := p.getJSON(ctx, accessToken, &user); err != nil {
		return nil, err
	}

	profile := &service.OAuthProfile{
		Provider:    entity.ProviderKakao,
		ExternalID:  strconv.FormatInt(user.ID, 10),
		Email:       user.KakaoAccount.Email,
		DisplayName: user.Properties.Nickname,
		Name:        user.KakaoAccount.Name,
		AvatarURL:   user.Properties.ProfileImage,
	}

	switch user.KakaoAccount.Gender {
	case "male":
		profile.Gender = "m"
	case "female":
		profile.Gender = "f"
	}

	if len(user.KakaoAccount.Birthyear) == 4 && len(user.KakaoAccount.Birthday) == 4 {
		profile.Birth = user.KakaoAccount.Birthyear + user.KakaoAccount.Birthday
	}

	return profile, nil
}
