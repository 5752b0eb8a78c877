package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// TokenGenerator creates and validates signed session tokens.
type TokenGenerator interface {
	GenerateAccessToken(role string) (string, error)
	GenerateRefreshToken(role string) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"role"`
}

// Claims carries the portal role of the session.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
