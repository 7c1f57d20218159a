package impl

import (
	"context"
	"log/slog"

	deliverycontext "playground/internal/delivery/context"
	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/repository"
	"playground/internal/domain/service"
	"playground/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// oauthService implements the OAuthUsecase interface.
type oauthService struct {
	txManager  repository.TransactionManager
	userRepo   repository.UserRepository
	providers  service.OAuthProviderRegistry
	hasher     service.PasswordHasher
	secrets    service.SecretGenerator
	imageStore service.ImageStore
	metrics    service.AuthMetrics
	login      loginIssuer
	logger     *slog.Logger
}

// OAuthServiceParams holds dependencies for oauthService, injected by Fx.
type OAuthServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	Providers      service.OAuthProviderRegistry
	Hasher         service.PasswordHasher
	Secrets        service.SecretGenerator
	ImageStore     service.ImageStore
	TokenService   service.TokenService
	DeviceDetector service.DeviceDetector
	Metrics        service.AuthMetrics
	Sessions       usecase.SessionUsecase
	Logger         *slog.Logger
}

// NewOAuthService is the constructor for oauthService.
func NewOAuthService(params OAuthServiceParams) usecase.OAuthUsecase {
	return &oauthService{
		txManager:  params.TxManager,
		userRepo:   params.UserRepo,
		providers:  params.Providers,
		hasher:     params.Hasher,
		secrets:    params.Secrets,
		imageStore: params.ImageStore,
		metrics:    params.Metrics,
		login: loginIssuer{
			sessions:     params.Sessions,
			tokenService: params.TokenService,
			detector:     params.DeviceDetector,
		},
		logger: params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *oauthService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *oauthService) provider(p entity.Provider) (service.OAuthProvider, error) {
	adapter, ok := srv.providers.Get(p)
	if !ok {
		return nil, domainerrors.ErrUnsupportedProvider.WithDetails(p.String())
	}

	return adapter, nil
}

// AuthorizeURL returns the provider consent page for state.
func (srv *oauthService) AuthorizeURL(p entity.Provider, state string) (string, error) {
	adapter, err := srv.provider(p)
	if err != nil {
		return "", err
	}

	return adapter.AuthCodeURL(state), nil
}

// fetchProfile runs the code exchange and the user info call for one provider.
func (srv *oauthService) fetchProfile(ctx context.Context, p entity.Provider, code, state string) (*service.OAuthProfile, error) {
	adapter, err := srv.provider(p)
	if err != nil {
		return nil, err
	}

	accessToken, err := adapter.ExchangeCode(ctx, code, state)
	if err != nil {
		return nil, err
	}

	profile, err := adapter.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, domainerrors.ErrUpstreamAuth.WithDetails(p.String() + " profile has no email")
	}

	return profile, nil
}

// Login signs in the identity owning the provider email. The provider is read from state,
// falling back to the one named by the route.
func (srv *oauthService) Login(ctx context.Context, input usecase.OAuthCallbackInput) (out *usecase.LoginOutput, err error) {
	state, err := parseOAuthState(input.State)
	if err != nil {
		return nil, err
	}
	provider := state.Provider
	if provider == "" {
		provider = input.Provider
	}
	defer func() { srv.metrics.RecordLogin(provider.String(), outcome(err)) }()

	profile, err := srv.fetchProfile(ctx, provider, input.Code, input.State)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, profile.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUnregistered
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up email")
	}

	if err := linkProvider(ctx, srv.userRepo, user, provider); err != nil {
		return nil, err
	}

	out, err = srv.login.issue(ctx, user, state.IP, state.Location, input.UserAgent)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Info("OAuth login", slog.String("provider", provider.String()), slog.String("user_id", user.UserID))

	return out, nil
}

// KakaoCallback logs in an identity that already owns the Kakao email, linking Kakao when missing.
// Unknown emails return the profile so the client can continue signup.
func (srv *oauthService) KakaoCallback(ctx context.Context, input usecase.OAuthCallbackInput) (*usecase.KakaoCallbackOutput, error) {
	state, err := parseOAuthState(input.State)
	if err != nil {
		return nil, err
	}

	profile, err := srv.fetchProfile(ctx, entity.ProviderKakao, input.Code, input.State)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, profile.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return &usecase.KakaoCallbackOutput{Profile: profile}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up email")
	}

	if err := linkProvider(ctx, srv.userRepo, user, entity.ProviderKakao); err != nil {
		return nil, err
	}
	out, err := srv.login.issue(ctx, user, state.IP, state.Location, input.UserAgent)
	srv.metrics.RecordLogin(entity.ProviderKakao.String(), outcome(err))
	if err != nil {
		return nil, err
	}

	return &usecase.KakaoCallbackOutput{Login: out}, nil
}

// NaverCallback registers a verified identity from the Naver profile and logs it in.
func (srv *oauthService) NaverCallback(ctx context.Context, input usecase.OAuthCallbackInput) (out *usecase.NaverCallbackOutput, err error) {
	defer func() { srv.metrics.RecordSignup(entity.ProviderNaver.String(), outcome(err)) }()

	state, err := parseOAuthState(input.State)
	if err != nil {
		return nil, err
	}

	profile, err := srv.fetchProfile(ctx, entity.ProviderNaver, input.Code, input.State)
	if err != nil {
		return nil, err
	}

	userID := naverUserID(profile.ExternalID)
	if err := ensureAvailable(ctx, srv.userRepo, profile.Email, userID); err != nil {
		return nil, err
	}

	username := profile.Name
	if username == "" {
		username = profile.DisplayName
	}
	gender := entity.Gender(profile.Gender)
	if !gender.IsValid() {
		gender = entity.GenderHidden
	}
	user, err := srv.newSocialUser(&usecase.SocialSignupInput{
		Provider: entity.ProviderNaver,
		Username: username,
		Email:    profile.Email,
		Birth:    profile.Birth,
		UserID:   userID,
		Gender:   gender,
		IP:       state.IP,
		Location: state.Location,
	}, profile.AvatarURL)
	if err != nil {
		return nil, err
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create naver user")
	}

	login, err := srv.login.issue(ctx, user, state.IP, state.Location, input.UserAgent)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Naver signup completed", slog.String("user_id", userID))

	return &usecase.NaverCallbackOutput{Login: login, UserID: userID}, nil
}

// SocialSignup creates a verified identity with the provider linked plus its settings, then logs it in.
func (srv *oauthService) SocialSignup(ctx context.Context, input *usecase.SocialSignupInput) (out *usecase.LoginOutput, err error) {
	defer func() { srv.metrics.RecordSignup(input.Provider.String(), outcome(err)) }()

	if !input.Provider.IsSocial() {
		return nil, domainerrors.ErrUnsupportedProvider.WithDetails(input.Provider.String())
	}
	if err := requireFields(
		field{"username", input.Username},
		field{"email", input.Email},
		field{"birth", input.Birth},
		field{"userId", input.UserID},
		field{"gender", string(input.Gender)},
		field{"location", input.Location},
		field{"ip", input.IP},
	); err != nil {
		return nil, err
	}

	if err := ensureAvailable(ctx, srv.userRepo, input.Email, input.UserID); err != nil {
		return nil, err
	}

	avatarURL, err := srv.imageStore.Upload(ctx, input.UserID, input.ImgURL)
	if err != nil {
		return nil, err
	}
	user, err := srv.newSocialUser(input, avatarURL)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.UserRepo().Create(ctx, user); err != nil {
			return err
		}

		return factory.SettingsRepo().Create(ctx, entity.NewUserSettings(input.UserID, input.Alarms, input.Language, input.DarkMode))
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist social signup")
	}

	out, err = srv.login.issue(ctx, user, input.IP, input.Location, input.UserAgent)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Social signup completed", slog.String("provider", input.Provider.String()), slog.String("user_id", user.UserID))

	return out, nil
}

// newSocialUser builds a verified identity whose password nobody knows.
func (srv *oauthService) newSocialUser(input *usecase.SocialSignupInput, avatarURL string) (*entity.User, error) {
	password, err := srv.secrets.RandomPassword()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate password")
	}
	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	return &entity.User{
		Username:             input.Username,
		Email:                input.Email,
		UserID:               input.UserID,
		PasswordHash:         hash,
		Birth:                input.Birth,
		Gender:               input.Gender,
		Role:                 entity.RoleUser,
		RegistrationIP:       input.IP,
		RegistrationLocation: input.Location,
		AvatarURL:            avatarURL,
		FollowingIDs:         []string{},
		FollowerIDs:          []string{},
		IsVerified:           true,
		SocialProviders:      []entity.Provider{input.Provider},
	}, nil
}
