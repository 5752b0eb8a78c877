package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/smartworld/smartdesk/internal"
)

// Service logs users into one of the two portal roles. The user role needs
// no password; the admin password is checked against a bcrypt hash.
type Service struct {
	tokens    TokenGenerator
	adminHash []byte
	logger    *slog.Logger
}

func NewService(tokens TokenGenerator, adminPasswordHash string, logger *slog.Logger) *Service {
	return &Service{
		tokens:    tokens,
		adminHash: []byte(adminPasswordHash),
		logger:    logger,
	}
}

func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	if dto.Role == RoleAdmin {
		if len(s.adminHash) == 0 {
			s.logger.Warn("admin login attempted without a configured password hash")
			return AuthTokens{}, internal.ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(dto.Password)); err != nil {
			s.logger.Warn("admin login rejected")
			return AuthTokens{}, internal.ErrInvalidCredentials
		}
	}

	tokens, err := s.issue(dto.Role)
	if err != nil {
		return AuthTokens{}, err
	}
	s.logger.Info("login succeeded", "role", dto.Role)
	return tokens, nil
}

func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}
	return s.issue(claims.Role)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

func (s *Service) issue(role string) (AuthTokens, error) {
	access, err := s.tokens.GenerateAccessToken(role)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to issue token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(role)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to issue token", err)
	}
	return AuthTokens{AccessToken: access, RefreshToken: refresh, Role: role}, nil
}

// HashPassword produces a hash suitable for the admin_password_hash setting.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(b), err
}
