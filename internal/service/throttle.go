package service

import (
	"context"
	"fmt"

	"github.com/MarkSmithYang/auth-gateway/internal/models"
)

// throttleKey строит ключ счётчика попыток входа для пары (IP, username).
// Канал входа в ключ не входит: перебор пароля через разные каналы
// расходует общий лимит.
func (s *Service) throttleKey(identity models.Identity) string {
	return s.cfg.Throttle.KeyPrefix + identity.IP + identity.Username
}

// checkThrottle проверяет лимит попыток входа и фиксирует текущую попытку.
//
// Порядок намеренный:
//   - чтение ДО проверки учётных данных: заблокированная пара не должна
//     расходовать ресурсы верификатора и давать оракул «пароль верный»;
//   - инкремент ДО проверки учётных данных: попытка считается даже если
//     вход в итоге удастся — тогда счётчик будет просто сброшен. Так
//     конкурентная успешная попытка посреди перебора не теряется.
//
// TTL перевыставляется на каждой попытке: окно блокировки отсчитывается
// от последней попытки, а не от первой.
//
// При недоступности хранилища возвращает ErrThrottleUnavailable (fail-closed).
func (s *Service) checkThrottle(ctx context.Context, identity models.Identity) error {
	const op = "service.throttle.checkThrottle"

	key := s.throttleKey(identity)

	attempts, err := s.counters.Count(ctx, key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrThrottleUnavailable)
	}

	if attempts >= int64(s.cfg.Throttle.MaxLoginAttempts) {
		return ErrTooManyAttempts
	}

	if _, err := s.counters.IncrWithTTL(ctx, key, s.cfg.Throttle.LockoutWindow); err != nil {
		return fmt.Errorf("%s: %w", op, ErrThrottleUnavailable)
	}

	return nil
}

// clearThrottle сбрасывает счётчик после успешного входа.
// Счётчик именно удаляется, а не декрементируется.
func (s *Service) clearThrottle(ctx context.Context, identity models.Identity) error {
	const op = "service.throttle.clearThrottle"

	if err := s.counters.Delete(ctx, s.throttleKey(identity)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
