package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarkSmithYang/auth-gateway/internal/models"
	"github.com/MarkSmithYang/auth-gateway/internal/pkg/log"
	"github.com/MarkSmithYang/auth-gateway/internal/pkg/redact"
)

// Login — оркестрация входа: валидация запроса, проверка лимита неудачных
// попыток, делегирование проверки учётных данных внешнему верификатору и
// выпуск пары токенов.
//
// Порядок шагов фиксирован:
//  1. валидация полей (пустой логин/пароль, неизвестный канал);
//  2. проверка лимита и учёт попытки ДО обращения к верификатору;
//  3. проверка учётных данных;
//  4. выпуск токенов и сброс счётчика.
//
// Сбой сброса счётчика не считается ошибкой входа: пользователь уже
// аутентифицирован, остаточный счётчик истечёт сам по TTL.
func (s *Service) Login(ctx context.Context, username, password, ip, channel string) (models.TokenPair, error) {
	const op = "service.auth.Login"

	lg := log.From(ctx).With("op", op,
		"username", redact.Username(username),
		"ip", redact.IP(),
		"channel", channel,
	)

	switch {
	case username == "":
		return models.TokenPair{}, ErrEmptyUsername
	case password == "":
		return models.TokenPair{}, ErrEmptyPassword
	case channel != models.ChannelFront && channel != models.ChannelBack:
		return models.TokenPair{}, ErrUnknownChannel
	}

	identity := models.Identity{
		Username: username,
		IP:       ip,
		Channel:  channel,
	}

	if err := s.checkThrottle(ctx, identity); err != nil {
		if errors.Is(err, ErrTooManyAttempts) {
			lg.Warn("login rejected: attempt limit reached")
			return models.TokenPair{}, ErrTooManyAttempts
		}

		lg.Error("throttle storage unavailable", "error", err.Error())
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, ErrThrottleUnavailable)
	}

	user, ok, err := s.verifier.Verify(ctx, username, password, channel)
	if err != nil {
		lg.Error("credential verifier failed", "error", err.Error())
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	if !ok {
		// Попытка уже учтена в checkThrottle.
		lg.Info("login failed: invalid credentials")
		return models.TokenPair{}, ErrInvalidCredentials
	}

	// Счётчик сбрасывается по введённому имени (под ним копились неудачи),
	// токены выпускаются на каноническое имя от верификатора.
	tokenIdentity := identity
	tokenIdentity.Username = user.Username

	pair, err := s.IssueTokens(tokenIdentity, user.Permissions)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.clearThrottle(ctx, identity); err != nil {
		lg.Warn("failed to clear failure counter", "error", err.Error())
	}

	lg.Info("login succeeded")

	return pair, nil
}
