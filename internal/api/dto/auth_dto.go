package dto

import "github.com/ecompjr/company-service/internal/domain"

// RegisterRequest payload for new administrators.
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=150"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginRequest payload for login. Accepted as JSON or as a url-encoded form.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AdministratorResponse is the public view of an administrator.
type AdministratorResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// NewAdministratorResponse maps the domain record, dropping the hash.
func NewAdministratorResponse(admin *domain.Administrator) AdministratorResponse {
	return AdministratorResponse{ID: admin.ID, Username: admin.Username}
}
