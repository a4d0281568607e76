package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ecompjr/company-service/internal/auth"
	"github.com/ecompjr/company-service/internal/config"
	"github.com/ecompjr/company-service/internal/domain"
	"github.com/ecompjr/company-service/internal/repository"
	apperrors "github.com/ecompjr/company-service/pkg/util/errorutil"
)

const maxUsernameLength = 150

// AuthService coordinates registration, login and token resolution.
type AuthService struct {
	admins    repository.AdministratorRepository
	hasher    *auth.PasswordHasher
	tokenMgr  *auth.TokenManager
	dummyHash string
	logger    *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	AdministratorRepo repository.AdministratorRepository
	Logger            *zap.Logger
	TokenOptions      []auth.TokenOption
}

// NewAuthService builds the service. It fails when the token configuration is
// unusable, so the process refuses to start rather than rejecting requests later.
func NewAuthService(cfg config.Config, deps AuthDependencies) (*AuthService, error) {
	tokenMgr, err := auth.NewTokenManager(cfg.Auth, deps.TokenOptions...)
	if err != nil {
		return nil, err
	}
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	// Unknown usernames are verified against this hash so that both login
	// failure paths pay the same bcrypt cost.
	dummyHash, err := hasher.Hash("unknown-administrator")
	if err != nil {
		return nil, fmt.Errorf("build dummy hash: %w", err)
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AuthService{
		admins:    deps.AdministratorRepo,
		hasher:    hasher,
		tokenMgr:  tokenMgr,
		dummyHash: dummyHash,
		logger:    logger,
	}, nil
}

// Register creates a new administrator. Uniqueness is decided by the
// database constraint, so concurrent registrations of one username produce
// exactly one success.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.Administrator, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	admin := &domain.Administrator{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if _, ok := repository.AsConflict(err); ok {
			return nil, apperrors.NewDuplicateUsername(username)
		}
		return nil, storageError(err)
	}

	s.logger.Info("administrator registered", zap.Int64("admin_id", admin.ID), zap.String("username", admin.Username))
	return admin, nil
}

// Login checks the credentials and issues an access token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if username == "" || password == "" {
		return "", time.Time{}, apperrors.NewValidationError("username and password required", nil)
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_, _ = s.hasher.Verify(password, s.dummyHash)
			return "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return "", time.Time{}, storageError(err)
	}

	ok, err := s.hasher.Verify(password, admin.PasswordHash)
	if err != nil {
		s.logger.Error("stored password hash is malformed", zap.Int64("admin_id", admin.ID), zap.Error(err))
		return "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	if !ok {
		return "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(admin.Username)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}

// Resolve validates a bearer token and loads the administrator it names.
// A valid token whose subject no longer exists is an invalid token.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Administrator, error) {
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewInvalidToken(err)
	}

	admin, err := s.admins.GetByUsername(ctx, claims.Username())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewInvalidToken(fmt.Errorf("subject %q: %w", claims.Username(), err))
		}
		return nil, storageError(err)
	}
	return admin, nil
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func validateCredentials(username, password string) error {
	details := map[string]any{}
	if strings.TrimSpace(username) == "" {
		details["username"] = "is required"
	} else if len(username) > maxUsernameLength {
		details["username"] = fmt.Sprintf("must be at most %d characters", maxUsernameLength)
	}
	if password == "" {
		details["password"] = "is required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid credentials payload", details)
	}
	return nil
}

// storageError classifies a repository failure that is neither not-found
// nor a conflict.
func storageError(err error) error {
	return apperrors.NewStorageUnavailable(err)
}
