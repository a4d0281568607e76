package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ecompjr/company-service/internal/domain"
	apperrors "github.com/ecompjr/company-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Failure reasons recorded for rejected requests. They are logged and
// counted, never returned to the caller.
const (
	ReasonMissingHeader   = "missing_header"
	ReasonMalformedHeader = "malformed_header"
	ReasonInvalidToken    = "invalid_token"
	ReasonUnknownSubject  = "unknown_subject"
	ReasonStorage         = "storage"
)

// Principal represents the authenticated caller.
type Principal struct {
	Administrator *domain.Administrator
}

// PrincipalResolver turns a bearer token into the administrator it names.
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Administrator, error)
}

// FailureRecorder counts rejected requests by reason.
type FailureRecorder interface {
	RecordAuthFailure(reason string)
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	resolver PrincipalResolver
	logger   *zap.Logger
	failures FailureRecorder
}

// NewAuthMiddleware constructs middleware. failures may be nil.
func NewAuthMiddleware(resolver PrincipalResolver, logger *zap.Logger, failures FailureRecorder) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{resolver: resolver, logger: logger, failures: failures}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return m.reject(c, ReasonMissingHeader, nil)
	}

	token, ok := bearerToken(authHeader)
	if !ok {
		return m.reject(c, ReasonMalformedHeader, nil)
	}

	admin, err := m.resolver.Resolve(c.UserContext(), token)
	if err != nil {
		reason := classify(err)
		if reason == ReasonStorage {
			// not a rejection: the request fails as a server error
			m.recordFailure(reason)
			return err
		}
		return m.reject(c, reason, err)
	}

	c.Locals(principalKey, &Principal{Administrator: admin})
	return c.Next()
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, reason string, cause error) error {
	m.recordFailure(reason)
	m.logger.Debug("authentication rejected",
		zap.String("reason", reason),
		zap.String("path", c.Path()),
		zap.Error(cause),
	)
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return apperrors.NewUnauthenticated()
}

func (m *AuthMiddleware) recordFailure(reason string) {
	if m.failures != nil {
		m.failures.RecordAuthFailure(reason)
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func classify(err error) string {
	var domainErr *apperrors.DomainError
	switch {
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		return ReasonStorage
	case errors.Is(err, ErrInvalidToken):
		return ReasonInvalidToken
	case errors.As(err, &domainErr) && domainErr.Code == apperrors.CodeInvalidToken:
		return ReasonUnknownSubject
	default:
		return ReasonInvalidToken
	}
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal.Administrator != nil
}

// RequirePrincipal rejects requests that reach it without an authenticated principal.
func RequirePrincipal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthenticated()
		}
		return c.Next()
	}
}
