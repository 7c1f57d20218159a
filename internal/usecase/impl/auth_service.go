package impl

import (
	"context"
	"log/slog"
	"time"

	"playground/config"
	deliverycontext "playground/internal/delivery/context"
	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/repository"
	"playground/internal/domain/service"
	"playground/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager     repository.TransactionManager
	userRepo      repository.UserRepository
	codeRepo      repository.VerificationCodeRepository
	hasher        service.PasswordHasher
	secrets       service.SecretGenerator
	mailer        service.Mailer
	imageStore    service.ImageStore
	metrics       service.AuthMetrics
	login         loginIssuer
	codeTTL       time.Duration
	unverifiedTTL time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	CodeRepo       repository.VerificationCodeRepository
	Hasher         service.PasswordHasher
	Secrets        service.SecretGenerator
	Mailer         service.Mailer
	ImageStore     service.ImageStore
	TokenService   service.TokenService
	DeviceDetector service.DeviceDetector
	Metrics        service.AuthMetrics
	Sessions       usecase.SessionUsecase
	Config         *config.Config
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:  params.TxManager,
		userRepo:   params.UserRepo,
		codeRepo:   params.CodeRepo,
		hasher:     params.Hasher,
		secrets:    params.Secrets,
		mailer:     params.Mailer,
		imageStore: params.ImageStore,
		metrics:    params.Metrics,
		login: loginIssuer{
			sessions:     params.Sessions,
			tokenService: params.TokenService,
			detector:     params.DeviceDetector,
		},
		codeTTL:       verificationCodeTTL(params.Config),
		unverifiedTTL: unverifiedAccountTTL(params.Config),
		now:           time.Now,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CheckExistingEmail succeeds when no identity owns the email.
// With a provider given, an owner that already links it is reported as ErrSocialAlreadyLinked.
func (srv *authService) CheckExistingEmail(ctx context.Context, input usecase.CheckEmailInput) error {
	if err := requireFields(field{"email", input.Email}); err != nil {
		return err
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to look up email")
	}

	if input.Social != "" && user.HasProvider(input.Social) {
		return domainerrors.ErrSocialAlreadyLinked
	}

	return domainerrors.ErrEmailExists
}

// CheckExistingUserID succeeds when the login handle is free.
func (srv *authService) CheckExistingUserID(ctx context.Context, userID string) error {
	if err := requireFields(field{"userId", userID}); err != nil {
		return err
	}

	_, err := srv.userRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to look up userId")
	}

	return domainerrors.ErrUserIDExists
}

// Signup creates an unverified identity, its settings and a verification code in one transaction,
// then mails the code. A failed mail leaves the identity in place to expire or be re-sent a code.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (user *entity.User, err error) {
	defer func() { srv.metrics.RecordSignup(entity.ProviderLocal.String(), outcome(err)) }()

	if err := requireFields(
		field{"username", input.Username},
		field{"email", input.Email},
		field{"birth", input.Birth},
		field{"password", input.Password},
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

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	avatarURL, err := srv.imageStore.Upload(ctx, input.UserID, input.ImgURL)
	if err != nil {
		return nil, err
	}

	code, err := srv.secrets.VerificationCode()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate verification code")
	}

	now := srv.now()
	accountExpiry := now.Add(srv.unverifiedTTL)
	user = &entity.User{
		Username:              input.Username,
		Email:                 input.Email,
		UserID:                input.UserID,
		PasswordHash:          hash,
		Birth:                 input.Birth,
		Gender:                input.Gender,
		Role:                  entity.RoleUser,
		RegistrationIP:        input.IP,
		RegistrationLocation:  input.Location,
		AvatarURL:             avatarURL,
		FollowingIDs:          []string{},
		FollowerIDs:           []string{},
		VerificationExpiresAt: &accountExpiry,
	}
	verification := &entity.VerificationCode{
		UserID:    input.UserID,
		Code:      code,
		ExpiresAt: now.Add(srv.codeTTL),
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.UserRepo().Create(ctx, user); err != nil {
			return err
		}
		settings := entity.NewUserSettings(input.UserID, input.Alarms, input.Language, input.DarkMode)
		if err := factory.SettingsRepo().Create(ctx, settings); err != nil {
			return err
		}

		return factory.VerificationCodeRepo().Create(ctx, verification)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to persist signup", slog.String("user_id", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist signup")
	}

	if err := srv.mailer.SendVerificationCode(ctx, user.Email, code, verification.ExpiresAt); err != nil {
		srv.log(ctx).Error("Failed to send verification email", slog.String("user_id", user.UserID), slog.Any("error", err))

		return nil, domainerrors.ErrMailDelivery.WithDetails(err.Error())
	}

	srv.log(ctx).Info("Signup completed", slog.String("user_id", user.UserID))

	return user, nil
}

// resolveUser finds the identity by userId, or by email when userId is empty.
func (srv *authService) resolveUser(ctx context.Context, userID, email string) (*entity.User, error) {
	var (
		user *entity.User
		err  error
	)
	if userID != "" {
		user, err = srv.userRepo.FindByUserID(ctx, userID)
	} else {
		user, err = srv.userRepo.FindByEmail(ctx, email)
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUnregistered
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve user")
	}

	return user, nil
}

// VerifyCode checks the latest unexpired code and marks the identity verified.
func (srv *authService) VerifyCode(ctx context.Context, input usecase.VerifyCodeInput) error {
	if err := requireFields(field{"authCode", input.Code}); err != nil {
		return err
	}
	if input.UserID == "" && input.Email == "" {
		return domainerrors.ErrMissingFields.WithDetails("userId or email")
	}

	userID := input.UserID
	if userID == "" {
		user, err := srv.resolveUser(ctx, "", input.Email)
		if err != nil {
			return err
		}
		userID = user.UserID
	}

	code, err := srv.codeRepo.FindLatestActive(ctx, userID, srv.now())
	if errors.Is(err, repository.ErrVerificationCodeNotFound) {
		return domainerrors.ErrCodeExpired
	}
	if err != nil {
		return errors.Wrap(err, "failed to load verification code")
	}
	if code.Code != input.Code {
		return domainerrors.ErrCodeMismatch
	}

	res, err := srv.userRepo.SetVerified(ctx, userID, true)
	if err != nil {
		return errors.Wrap(err, "failed to mark user verified")
	}
	if res.Modified == 0 {
		return domainerrors.ErrUnregistered
	}

	if err := srv.codeRepo.DeleteByUserID(ctx, userID); err != nil {
		srv.log(ctx).Warn("Failed to discard used verification codes", slog.String("user_id", userID), slog.Any("error", err))
	}
	srv.log(ctx).Info("User verified", slog.String("user_id", userID))

	return nil
}

// RequestCode issues a fresh code for the resolved identity and mails it to the identity's email.
func (srv *authService) RequestCode(ctx context.Context, input usecase.RequestCodeInput) error {
	if input.UserID == "" && input.Email == "" {
		return domainerrors.ErrMissingFields.WithDetails("userId or email")
	}

	user, err := srv.resolveUser(ctx, input.UserID, input.Email)
	if err != nil {
		return err
	}

	code, err := srv.secrets.VerificationCode()
	if err != nil {
		return errors.Wrap(err, "failed to generate verification code")
	}
	verification := &entity.VerificationCode{
		UserID:    user.UserID,
		Code:      code,
		ExpiresAt: srv.now().Add(srv.codeTTL),
	}
	if err := srv.codeRepo.Create(ctx, verification); err != nil {
		return errors.Wrap(err, "failed to store verification code")
	}

	if err := srv.mailer.SendVerificationCode(ctx, user.Email, code, verification.ExpiresAt); err != nil {
		srv.log(ctx).Error("Failed to send verification email", slog.String("user_id", user.UserID), slog.Any("error", err))

		return domainerrors.ErrMailDelivery.WithDetails(err.Error())
	}

	return nil
}

// Login authenticates a verified identity by password and registers the device session.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (out *usecase.LoginOutput, err error) {
	defer func() { srv.metrics.RecordLogin(entity.ProviderLocal.String(), outcome(err)) }()

	if input.UserID == "" && input.Email == "" {
		return nil, domainerrors.ErrMissingFields.WithDetails("userId or email")
	}
	if err := requireFields(field{"password", input.Password}); err != nil {
		return nil, err
	}

	user, err := srv.resolveUser(ctx, input.UserID, input.Email)
	if err != nil {
		return nil, err
	}
	if !user.IsVerified {
		return nil, domainerrors.ErrUnverified
	}
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Password mismatch", slog.String("user_id", user.UserID))

		return nil, domainerrors.ErrWrongPassword
	}

	out, err = srv.login.issue(ctx, user, input.IP, input.Location, input.UserAgent)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Info("User logged in", slog.String("user_id", user.UserID), slog.Any("session_id", out.Session.ID))

	return out, nil
}

// IntegrateSocial links a provider to an existing identity.
func (srv *authService) IntegrateSocial(ctx context.Context, input usecase.IntegrateSocialInput) error {
	if err := requireFields(field{"social", string(input.Social)}, field{"email", input.Email}); err != nil {
		return err
	}
	provider, ok := entity.ParseProvider(string(input.Social))
	if !ok {
		return domainerrors.ErrUnsupportedProvider.WithDetails(string(input.Social))
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrNotFound.WithDetails("no identity for email")
	}
	if err != nil {
		return errors.Wrap(err, "failed to look up email")
	}
	if user.HasProvider(provider) {
		return domainerrors.ErrSocialAlreadyLinked
	}

	res, err := srv.userRepo.AddSocialProvider(ctx, input.Email, provider)
	if err != nil {
		return errors.Wrap(err, "failed to link provider")
	}
	switch {
	case res.Matched == 0:
		return domainerrors.ErrNotFound.WithDetails("no identity for email")
	case res.Modified == 0:
		return domainerrors.ErrBadRequest.WithDetails("provider was not linked")
	}

	srv.log(ctx).Info("Linked social provider", slog.String("user_id", user.UserID), slog.String("provider", provider.String()))

	return nil
}

func outcome(err error) string {
	if err != nil {
		return resultFailure
	}

	return resultSuccess
}
