package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"roomslot/config"
	"roomslot/infras/jwt"
	"roomslot/infras/otel"
	"roomslot/infras/postgres"
	"roomslot/internal/domains/auth/model/dto"
	userModel "roomslot/internal/domains/user/model"
	userRepo "roomslot/internal/domains/user/repository"
	"roomslot/shared"
	"roomslot/shared/constant"
	"roomslot/shared/failure"
	"roomslot/shared/password"
	"roomslot/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	ErrEmailTaken         = failure.WithReason(http.StatusConflict, "email_taken", "email already registered")
	ErrInvalidCredentials = failure.WithReason(http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	ErrInactive           = failure.WithReason(http.StatusForbidden, "inactive", "user account is deactivated")
	ErrWrongPassword      = failure.WithReason(http.StatusBadRequest, "wrong_password", "current password is incorrect")
	ErrInvalidRefresh     = failure.WithReason(http.StatusUnauthorized, "invalid_refresh_token", "invalid refresh token")
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (string, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Email = normalizeEmail(req.Email)

	taken, err := s.userRepo.EmailTaken(ctx, req.Email)
	if err != nil {
		return id, fmt.Errorf("failed to check email: %w", err)
	}

	if taken {
		return id, ErrEmailTaken
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return id, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(constant.SystemUser, hashed, timezone.Now())

	// EmailTaken is only a fast path; two sign-ups can still race to the index.
	if err = s.userRepo.Insert(ctx, user); err != nil {
		if postgres.IsUniqueViolation(err, userModel.UniqueEmail) {
			return id, ErrEmailTaken
		}

		return id, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("User registered")

	return user.ID, nil
}

// Login answers ErrInvalidCredentials for both an unknown email and a wrong
// password. Deactivated accounts are told so only after the password matched.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || password.Verify(req.Password, user.Password) != nil {
		log.Warn().Str("email", req.Email).Msg("Rejected login")

		return res, ErrInvalidCredentials
	}

	if !user.Active {
		return res, ErrInactive
	}

	pair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	// A stale last_login is not worth failing a login over.
	stamp := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}, user.ID)
	if _, err := s.userRepo.UpdateByID(ctx, user.ID, stamp); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to record last login")
	}

	res.FromTokenPair(pair, user.Role)

	return res, nil
}

// RefreshToken reloads the account behind the token so that deactivation and role
// changes apply from the next refresh on.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("Rejected refresh token")

		return res, ErrInvalidRefresh
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.Active {
		return res, ErrInvalidRefresh
	}

	pair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(pair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return failure.Unauthorized("missing user")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if password.Verify(req.CurrentPassword, user.Password) != nil {
		return ErrWrongPassword
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashed}, userID)
	if _, err = s.userRepo.UpdateByID(ctx, userID, fields); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	log.Info().Str("user_id", userID).Msg("Password changed")

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
