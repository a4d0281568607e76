package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ecompjr/company-service/internal/api/dto"
	"github.com/ecompjr/company-service/internal/auth"
	"github.com/ecompjr/company-service/internal/service"
	apperrors "github.com/ecompjr/company-service/pkg/util/errorutil"
)

// AuthHandler exposes administrator registration and login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	admin, err := h.auth.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAdministratorResponse(admin))
}

// Login handles POST /auth/login. The body may be JSON or a url-encoded form.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	token, _, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if apperrors.ToDomainError(err).Code == apperrors.CodeInvalidCredentials {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		}
		return err
	}
	return c.JSON(dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	return c.JSON(dto.NewAdministratorResponse(principal.Administrator))
}
