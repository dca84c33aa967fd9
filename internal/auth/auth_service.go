package auth

import (
	"context"
	"time"

	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is the minimal projection of a user account needed to
// authenticate. The user module implements UserLookup on its repository.
type Credentials struct {
	UserID       uint
	Email        string
	PasswordHash string
	Role         string
}

type UserLookup interface {
	FindCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
}

type Service interface {
	Authenticate(ctx context.Context, email, password string) (LoginResponse, error)
}

type service struct {
	users  UserLookup
	cfg    config.TokenConfig
	logger *zap.Logger
}

// NewService builds the token service. The signing key, issuer, audience,
// and expiry all come from the injected config.
func NewService(users UserLookup, cfg config.TokenConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, cfg: cfg, logger: l}
}

func (s *service) Authenticate(ctx context.Context, email, password string) (LoginResponse, error) {
	creds, err := s.users.FindCredentialsByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login failed, email not found", zap.String("email", email))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login failed, password mismatch", zap.String("email", email))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(creds)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.Uint("user_id", creds.UserID),
		zap.String("role", creds.Role),
	)

	return LoginResponse{
		Token:  token,
		UserID: creds.UserID,
		Role:   creds.Role,
	}, nil
}

func (s *service) generateToken(creds *Credentials) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     creds.Email,
		"user_id": creds.UserID,
		"role":    creds.Role,
		"iss":     s.cfg.Issuer,
		"aud":     s.cfg.Audience,
		"iat":     now.Unix(),
		"exp":     now.Add(s.cfg.ExpiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}
