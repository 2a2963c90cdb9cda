package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

// newTestService builds a JWT service with an injected clock.
func newTestService(t *testing.T, secret string, lifetime time.Duration, now func() time.Time) JWTService {
	t.Helper()
	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: int(lifetime.Minutes()),
	})
	require.NoError(t, err)
	svc.(*hmacJWTService).timeFunc = now
	return svc
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	userID := uuid.New()

	svc := newTestService(t, testSecret, tokenLifetime, func() time.Time { return fixedTime })

	t.Run("generates valid token", func(t *testing.T) {
		token, err := svc.GenerateToken(context.Background(), userID, "Ada")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "Ada", claims.DisplayName)
		assert.Equal(t, userID.String(), claims.Subject)
		// Compare Unix timestamps to avoid timezone issues
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	userID := uuid.New()

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) (JWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := newTestService(t, testSecret, tokenLifetime, func() time.Time { return fixedTime })
				token, err := svc.GenerateToken(context.Background(), userID, "Ada")
				require.NoError(t, err)
				return svc, token
			},
			wantErr: nil,
		},
		{
			name: "expired token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				genSvc := newTestService(t, testSecret, tokenLifetime, func() time.Time { return fixedTime })
				token, err := genSvc.GenerateToken(context.Background(), userID, "Ada")
				require.NoError(t, err)

				// Validate well past the expiry plus clock skew
				valSvc := newTestService(t, testSecret, tokenLifetime, func() time.Time {
					return fixedTime.Add(tokenLifetime + time.Hour)
				})
				return valSvc, token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "wrong signing key",
			setupFunc: func(t *testing.T) (JWTService, string) {
				genSvc := newTestService(t, "wrong-secret-that-is-long-enough-for-testing", tokenLifetime,
					func() time.Time { return fixedTime })
				token, err := genSvc.GenerateToken(context.Background(), userID, "Ada")
				require.NoError(t, err)

				valSvc := newTestService(t, testSecret, tokenLifetime, func() time.Time { return fixedTime })
				return valSvc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "garbage token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := newTestService(t, testSecret, tokenLifetime, func() time.Time { return fixedTime })
				return svc, "not-even-a-jwt"
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tc.setupFunc(t)

			claims, err := svc.ValidateToken(context.Background(), token)
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, userID, claims.UserID)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)
}

func TestPasswordVerifier(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("a-long-enough-password")
	require.NoError(t, err)

	verifier := NewBcryptVerifier()
	assert.NoError(t, verifier.Compare(hash, "a-long-enough-password"))
	assert.Error(t, verifier.Compare(hash, "the-wrong-password"))
}
