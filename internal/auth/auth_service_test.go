package auth_test

import (
	"context"
	"testing"
	"time"

	"go-leave/internal/auth"
	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserLookup struct {
	findCredentialsByEmailFn func(ctx context.Context, email string) (*auth.Credentials, error)
}

func (f *fakeUserLookup) FindCredentialsByEmail(ctx context.Context, email string) (*auth.Credentials, error) {
	return f.findCredentialsByEmailFn(ctx, email)
}

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		Secret:    "test-secret",
		Issuer:    "go-leave",
		Audience:  "go-leave",
		ExpiresIn: time.Hour,
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues token with expected claims", func(t *testing.T) {
		cfg := testTokenConfig()
		users := &fakeUserLookup{
			findCredentialsByEmailFn: func(ctx context.Context, email string) (*auth.Credentials, error) {
				assert.Equal(t, "ana@corp.test", email)
				return &auth.Credentials{
					UserID:       7,
					Email:        "ana@corp.test",
					PasswordHash: hashPassword(t, "s3cret!"),
					Role:         "Manager",
				}, nil
			},
		}

		svc := auth.NewService(users, cfg)
		resp, err := svc.Authenticate(ctx, "ana@corp.test", "s3cret!")
		assert.NoError(t, err)
		assert.Equal(t, uint(7), resp.UserID)
		assert.Equal(t, "Manager", resp.Role)
		assert.NotEmpty(t, resp.Token)

		parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (any, error) {
			return []byte(cfg.Secret), nil
		})
		assert.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, "ana@corp.test", claims["sub"])
		assert.Equal(t, float64(7), claims["user_id"])
		assert.Equal(t, "Manager", claims["role"])
		assert.Equal(t, cfg.Issuer, claims["iss"])
		assert.Equal(t, cfg.Audience, claims["aud"])
	})

	t.Run("unknown email yields invalid credentials", func(t *testing.T) {
		users := &fakeUserLookup{
			findCredentialsByEmailFn: func(ctx context.Context, email string) (*auth.Credentials, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := auth.NewService(users, testTokenConfig())
		_, err := svc.Authenticate(ctx, "ghost@corp.test", "whatever")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("wrong password yields the same invalid credentials error", func(t *testing.T) {
		users := &fakeUserLookup{
			findCredentialsByEmailFn: func(ctx context.Context, email string) (*auth.Credentials, error) {
				return &auth.Credentials{
					UserID:       7,
					Email:        email,
					PasswordHash: hashPassword(t, "right-password"),
					Role:         "Employee",
				}, nil
			},
		}

		svc := auth.NewService(users, testTokenConfig())
		_, err := svc.Authenticate(ctx, "ana@corp.test", "wrong-password")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}
