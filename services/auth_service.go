package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/sump-exe/Sports-Game-Management/utils"
)

const tokenTTL = 24 * time.Hour

// AuthService authenticates the single admin account and issues the
// bearer tokens that guard mutating endpoints.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	adminUsername     string
	adminPasswordHash string
	jwtSecret         []byte
	logger            *slog.Logger
	now               func() time.Time
}

func NewAuthService(adminUsername, adminPasswordHash, jwtSecret string, logger *slog.Logger) AuthService {
	return &authService{
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         []byte(jwtSecret),
		logger:            logger,
		now:               time.Now,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	if username != s.adminUsername || !utils.CheckPasswordHash(password, s.adminPasswordHash) {
		s.logger.Warn("failed login attempt", slog.String("username", username))
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	s.logger.Info("admin logged in", slog.String("username", username))
	return signed, nil
}
