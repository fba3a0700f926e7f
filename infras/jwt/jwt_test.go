package jwt_test

import (
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomslot/config"
	"roomslot/infras/jwt"
	"roomslot/infras/otel/mocks"
	"roomslot/shared/constant"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "roomslot"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	svc := jwt.New(newConfig(), mocks.NewOtel())

	pair, err := svc.GenerateTokenPair(context.Background(), "user-1", "a@b.c", constant.RoleApprover)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(context.Background(), pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, constant.RoleApprover, claims.Role)
	assert.Equal(t, "roomslot", claims.Issuer)

	refresh, err := svc.ValidateToken(context.Background(), pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, claims.TokenID, refresh.TokenID)
	assert.True(t, refresh.ExpiresAt.After(claims.ExpiresAt.Time))
}

func TestValidateToken_Rejects(t *testing.T) {
	ctx := context.Background()
	cfg := newConfig()
	svc := jwt.New(cfg, mocks.NewOtel())

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "a@b.c", constant.RoleUser)
	require.NoError(t, err)

	t.Run("refresh used as access", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, pair.RefreshToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("type claim checked when secrets match", func(t *testing.T) {
		shared := newConfig()
		shared.JWT.RefreshSecret = shared.JWT.AccessSecret
		same := jwt.New(shared, mocks.NewOtel())

		p, err := same.GenerateTokenPair(ctx, "user-1", "a@b.c", constant.RoleUser)
		require.NoError(t, err)

		_, err = same.ValidateToken(ctx, p.RefreshToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
	})

	t.Run("expired", func(t *testing.T) {
		stale := newConfig()
		stale.JWT.AccessExpireMin = -1
		expired := jwt.New(stale, mocks.NewOtel())

		p, err := expired.GenerateTokenPair(ctx, "user-1", "a@b.c", constant.RoleUser)
		require.NoError(t, err)

		_, err = expired.ValidateToken(ctx, p.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		other := newConfig()
		other.App.Name = "elsewhere"

		_, err := jwt.New(other, mocks.NewOtel()).ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		now := time.Now()
		claims := jwt.Claims{
			UserID: "user-1",
			Type:   jwt.AccessToken,
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    cfg.App.Name,
				IssuedAt:  gojwt.NewNumericDate(now),
				ExpiresAt: gojwt.NewNumericDate(now.Add(time.Minute)),
			},
		}

		signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte(cfg.JWT.AccessSecret))
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, signed, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "not.a.token", jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
		err    error
	}{
		{header: "", err: jwt.ErrMissingToken},
		{header: "Token abc", err: jwt.ErrBearerFormat},
		{header: "Bearer ", err: jwt.ErrBearerFormat},
		{header: "Bearer abc", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}
