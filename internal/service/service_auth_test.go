package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
)

func testServerApp() config.ServerApp {
	return config.ServerApp{
		TokenSignKey:  "sign-key",
		TokenIssuer:   "omnifolio",
		TokenDuration: time.Hour,
		Version:       "1.0.0",
	}
}

func TestAuthService_CreateAndParseToken(t *testing.T) {
	svc := NewAuthService(testServerApp(), logger.Nop())
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)
	assert.Equal(t, "u1", token.UserID)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "u1", parsed.UserID)
	assert.Equal(t, "omnifolio", parsed.Issuer)
}

func TestAuthService_CreateToken_NoUser(t *testing.T) {
	svc := NewAuthService(testServerApp(), logger.Nop())

	_, err := svc.CreateToken(context.Background(), "")

	require.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	cfg := testServerApp()
	ctx := context.Background()

	otherKey := cfg
	otherKey.TokenSignKey = "another-key"
	foreign, err := NewAuthService(otherKey, logger.Nop()).CreateToken(ctx, "u1")
	require.NoError(t, err)

	otherIssuer := cfg
	otherIssuer.TokenIssuer = "someone"
	wrongIssuer, err := NewAuthService(otherIssuer, logger.Nop()).CreateToken(ctx, "u1")
	require.NoError(t, err)

	expiring := cfg
	expiring.TokenDuration = time.Millisecond
	expired, err := NewAuthService(expiring, logger.Nop()).CreateToken(ctx, "u1")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	svc := NewAuthService(cfg, logger.Nop())
	tests := map[string]string{
		"garbage":      "not-a-token",
		"foreign key":  foreign.SignedString,
		"wrong issuer": wrongIssuer.SignedString,
		"expired":      expired.SignedString,
	}
	for name, tokenString := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(ctx, tokenString)
			require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}
