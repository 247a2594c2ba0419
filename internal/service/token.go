package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/MarkSmithYang/auth-gateway/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Типы токенов в claim "typ". Access принимается только защищёнными
// эндпоинтами, refresh — только операцией ротации; подмена одного другим
// отклоняется как ErrInvalidToken.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// leeway компенсирует рассинхронизацию часов между шлюзом и клиентами
// при проверке exp/nbf.
const leeway = 5 * time.Second

// tokenClaims — полезная нагрузка обоих типов токенов.
//
// Refresh-токен несёт тот же набор полей, что и access: ротация выпускает
// новый access-токен без обращения к хранилищу пользователей, поэтому вся
// идентичность должна быть внутри самого refresh-токена.
type tokenClaims struct {
	Username    string   `json:"uname"`
	Channel     string   `json:"chan"`
	IP          string   `json:"ip,omitempty"`
	Permissions []string `json:"perms,omitempty"`
	TokenType   string   `json:"typ"`
	jwt.RegisteredClaims
}

// IssueTokens выпускает пару access/refresh токенов для подтверждённой
// личности. Оба токена подписываются HS256 одним ключом и различаются
// только claim "typ" и сроком жизни.
func (s *Service) IssueTokens(identity models.Identity, permissions []string) (models.TokenPair, error) {
	const op = "service.token.IssueTokens"

	now := time.Now()
	accessExpiresAt := now.Add(s.cfg.Auth.AccessTokenTTL)

	access, err := s.signToken(identity, permissions, tokenTypeAccess, now, accessExpiresAt)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	refresh, err := s.signToken(identity, permissions, tokenTypeRefresh, now, now.Add(s.cfg.Auth.RefreshTokenTTL))
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.TokenPair{
		AccessToken:     access,
		RefreshToken:    refresh,
		AccessExpiresAt: accessExpiresAt,
	}, nil
}

func (s *Service) signToken(identity models.Identity, permissions []string, tokenType string, issuedAt, expiresAt time.Time) (string, error) {
	claims := tokenClaims{
		Username:    identity.Username,
		Channel:     identity.Channel,
		IP:          identity.IP,
		Permissions: permissions,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.Username,
			Issuer:    s.cfg.Auth.Issuer,
			Audience:  jwt.ClaimStrings(s.cfg.Auth.Audience),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return "", err
	}

	return signed, nil
}

// decodeToken разбирает и проверяет токен, требуя совпадения claim "typ"
// с ожидаемым типом. Ошибки библиотеки сводятся к трём ошибкам
// пакета: истёкший, структурно битый и все прочие невалидные токены.
func (s *Service) decodeToken(raw, wantType string) (*tokenClaims, error) {
	claims := &tokenClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Auth.Issuer),
		jwt.WithLeeway(leeway),
	}
	if len(s.cfg.Auth.Audience) > 0 {
		opts = append(opts, jwt.WithAudience(s.cfg.Auth.Audience[0]))
	}

	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.Auth.JWTSecret), nil
		},
		opts...,
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		default:
			return nil, ErrInvalidToken
		}
	}

	if claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateAccessToken проверяет access-токен и возвращает личность и права,
// зашитые в claims. Используется транспортом для защищённых эндпоинтов.
func (s *Service) ValidateAccessToken(raw string) (models.Identity, []string, error) {
	claims, err := s.decodeToken(raw, tokenTypeAccess)
	if err != nil {
		return models.Identity{}, nil, err
	}

	identity := models.Identity{
		Username: claims.Username,
		IP:       claims.IP,
		Channel:  claims.Channel,
	}

	return identity, claims.Permissions, nil
}

// Refresh выпускает новый access-токен по действующему refresh-токену.
// Сам refresh-токен не ротируется и возвращается прежним: его срок жизни
// ограничивает длину сессии целиком.
func (s *Service) Refresh(raw string) (models.TokenPair, error) {
	const op = "service.token.Refresh"

	claims, err := s.decodeToken(raw, tokenTypeRefresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	identity := models.Identity{
		Username: claims.Username,
		IP:       claims.IP,
		Channel:  claims.Channel,
	}

	now := time.Now()
	accessExpiresAt := now.Add(s.cfg.Auth.AccessTokenTTL)

	access, err := s.signToken(identity, claims.Permissions, tokenTypeAccess, now, accessExpiresAt)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.TokenPair{
		AccessToken:     access,
		RefreshToken:    raw,
		AccessExpiresAt: accessExpiresAt,
	}, nil
}
