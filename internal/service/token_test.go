package service

import (
	"strings"
	"testing"
	"time"

	"github.com/MarkSmithYang/auth-gateway/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testIdentity() models.Identity {
	return models.Identity{
		Username: "alice",
		IP:       "1.2.3.4",
		Channel:  models.ChannelFront,
	}
}

func TestIssueTokens_Roundtrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, nil, testConfig())
	perms := []string{"news:read", "news:write"}

	pair, err := svc.IssueTokens(testIdentity(), perms)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	require.WithinDuration(t, time.Now().Add(30*time.Minute), pair.AccessExpiresAt, 5*time.Second)

	identity, gotPerms, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", identity.Username)
	require.Equal(t, "1.2.3.4", identity.IP)
	require.Equal(t, models.ChannelFront, identity.Channel)
	require.Equal(t, perms, gotPerms)
}

func TestValidateAccessToken_RefreshTokenRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, nil, testConfig())

	pair, err := svc.IssueTokens(testIdentity(), nil)
	require.NoError(t, err)

	// refresh-токен не годится для доступа к защищённым эндпоинтам.
	_, _, err = svc.ValidateAccessToken(pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Auth.AccessTokenTTL = -time.Hour
	svc := newTestService(t, nil, nil, cfg)

	pair, err := svc.IssueTokens(testIdentity(), nil)
	require.NoError(t, err)

	_, _, err = svc.ValidateAccessToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateAccessToken_Malformed(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, nil, testConfig())

	_, _, err := svc.ValidateAccessToken("not-a-jwt")
	require.ErrorIs(t, err, ErrMalformedToken)
}

func TestValidateAccessToken_Tampered(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, nil, testConfig())

	pair, err := svc.IssueTokens(testIdentity(), nil)
	require.NoError(t, err)

	// Подмена подписи: первый символ заменяется на заведомо другой.
	parts := strings.Split(pair.AccessToken, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, _, err = svc.ValidateAccessToken(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongKey(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, nil, testConfig())

	other := testConfig()
	other.Auth.JWTSecret = "another-secret"
	otherSvc := newTestService(t, nil, nil, other)

	pair, err := otherSvc.IssueTokens(testIdentity(), nil)
	require.NoError(t, err)

	_, _, err = svc.ValidateAccessToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, nil, testConfig())
	perms := []string{"news:read"}

	pair, err := svc.IssueTokens(testIdentity(), perms)
	require.NoError(t, err)

	rotated, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
	// refresh-токен возвращается прежним.
	require.Equal(t, pair.RefreshToken, rotated.RefreshToken)

	identity, gotPerms, err := svc.ValidateAccessToken(rotated.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", identity.Username)
	require.Equal(t, perms, gotPerms)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, nil, testConfig())

	pair, err := svc.IssueTokens(testIdentity(), nil)
	require.NoError(t, err)

	_, err = svc.Refresh(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_ExpiredRefreshToken(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Auth.RefreshTokenTTL = -time.Hour
	svc := newTestService(t, nil, nil, cfg)

	pair, err := svc.IssueTokens(testIdentity(), nil)
	require.NoError(t, err)

	_, err = svc.Refresh(pair.RefreshToken)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestIssueTokens_RegisteredClaims(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	svc := newTestService(t, nil, nil, cfg)

	pair, err := svc.IssueTokens(testIdentity(), nil)
	require.NoError(t, err)

	claims := &tokenClaims{}
	_, err = jwt.ParseWithClaims(pair.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Auth.JWTSecret), nil
	})
	require.NoError(t, err)

	require.Equal(t, "auth-gateway", claims.Issuer)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, jwt.ClaimStrings{"api-gateway"}, claims.Audience)
	require.NotEmpty(t, claims.ID)
	require.Equal(t, tokenTypeAccess, claims.TokenType)
}
