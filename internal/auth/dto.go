package auth

import "github.com/frahmantamala/kpi-portal/internal"

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LoginResult struct {
	AuthTokens
	User *internal.User `json:"user"`
}
