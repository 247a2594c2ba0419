// service содержит бизнес-логику шлюза аутентификации:
// оркестрацию входа, выпуск/проверку/ротацию токенов, подавление перебора
// паролей и генерацию/проверку визуальной капчи.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при
//     условии, что хранилище счётчиков (storage.Counters) и верификатор
//     учётных данных потокобезопасны.
//   - Проверка логина/пароля делегируется внешнему коллаборатору
//     (CredentialVerifier); ядро не знает, как хранятся учётные записи.
//   - Ошибки возвращаются наверх и маппятся транспортом на HTTP-статусы
//     (см. комментарии к переменным ошибок ниже).
package service

//go:generate mockgen -source=service.go -destination=../../mocks/mock_verifier.go -package=mocks

import (
	"context"
	"errors"

	"github.com/MarkSmithYang/auth-gateway/internal/config"
	"github.com/MarkSmithYang/auth-gateway/internal/storage"
)

var (
	// ErrTooManyAttempts — превышен лимит неудачных входов для пары
	// (IP, username); учётные данные при этом не проверяются.
	// Транспорт: 429 Too Many Requests.
	ErrTooManyAttempts = errors.New("too many login attempts")

	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь
	// не найден; наружу различие не раскрывается.
	// Транспорт: 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired — срок действия токена истёк.
	// Транспорт: 401 с единым сообщением «authentication failed» —
	// конкретная причина отказа клиенту не сообщается.
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidToken — подпись токена не сходится (подделка/чужой ключ)
	// либо не прошла иная проверка валидации. Транспорт: как ErrTokenExpired.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMalformedToken — токен структурно некорректен (не JWT).
	// Транспорт: как ErrTokenExpired.
	ErrMalformedToken = errors.New("malformed token")

	// ErrThrottleUnavailable — хранилище счётчиков недоступно. Вход в этом
	// случае отклоняется (fail-closed): устойчивость к перебору важнее
	// доступности. Транспорт: 503 Service Unavailable.
	ErrThrottleUnavailable = errors.New("throttle storage unavailable")

	// ErrSigningKey — ключ подписи не задан; сервис не может выпускать
	// токены. Фатальная ошибка конфигурации на старте.
	ErrSigningKey = errors.New("signing key is not configured")

	// ErrEmptyUsername/ErrEmptyPassword/ErrUnknownChannel — ошибки валидации
	// входа. Транспорт: 400 Bad Request.
	ErrEmptyUsername  = errors.New("username is empty")
	ErrEmptyPassword  = errors.New("password is empty")
	ErrUnknownChannel = errors.New("unknown login channel")
)

// VerifiedUser — результат успешной проверки учётных данных коллаборатором.
type VerifiedUser struct {
	// Username — каноническое имя пользователя (может отличаться от
	// введённого регистром/нормализацией).
	Username string
	// Permissions — набор прав, попадающий в claims токенов.
	Permissions []string
}

// CredentialVerifier — внешний коллаборатор проверки учётных данных.
//
// Контракт:
//   - ok=false означает «пользователь не найден или пароль неверен» —
//     ядро не различает эти случаи;
//   - err != nil — сбой удалённого вызова; он поднимается как есть,
//     без ретраев (повтор проверки логина рискует дублировать side-эффекты
//     на стороне хранилища пользователей).
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password, channel string) (user *VerifiedUser, ok bool, err error)
}

// Service описывает бизнес-логику шлюза аутентификации.
type Service struct {
	verifier CredentialVerifier
	counters storage.Counters
	cfg      *config.Config
}

// New создаёт новый экземпляр Service.
// Возвращает ErrSigningKey, если ключ подписи токенов пуст.
func New(verifier CredentialVerifier, counters storage.Counters, cfg *config.Config) (*Service, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, ErrSigningKey
	}

	return &Service{
		verifier: verifier,
		counters: counters,
		cfg:      cfg,
	}, nil
}
