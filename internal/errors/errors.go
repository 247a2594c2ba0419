// errors стандартизирует ответы об ошибках HTTP-слоя шлюза.
// На вход он принимает ошибку бизнес-слоя (sentinel-ошибки пакета service),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Все отказы аутентификации (неверные учётные данные, истёкший, битый или
// поддельный токен) сводятся к единому 401 с одинаковым message: точная
// причина отказа не должна служить оракулом для перебора.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MarkSmithYang/auth-gateway/internal/service"
)

// APIError — единый формат ошибки для клиентов.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ErrForbidden — отказ по правам: субъект аутентифицирован, но требуемого
// права у него нет. Транспорт: 403 Forbidden.
var ErrForbidden = errors.New("permission denied")

// ErrBadRequest — тело запроса не разобралось или не прошло валидацию
// на уровне транспорта. Транспорт: 400 Bad Request.
var ErrBadRequest = errors.New("invalid request body")

// ToHTTP конвертирует ошибку бизнес-слоя в HTTP-статус и унифицированный
// ответ для клиента.
//
// Поведение:
//   - err == nil — это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - ошибки валидации -> 400;
//   - любые отказы аутентификации -> 401 с единым сообщением;
//   - превышение лимита входов -> 429;
//   - недоступность хранилища счётчиков -> 503;
//   - прочее -> 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	response := func(status int, code, msg string) (int, ErrorResponse) {
		return status, ErrorResponse{Error: APIError{Code: code, Message: msg}}
	}

	switch {
	case err == nil:
		return response(http.StatusInternalServerError, "internal", "internal error")
	case errors.Is(err, service.ErrEmptyUsername),
		errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrUnknownChannel):
		return response(http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, ErrBadRequest):
		return response(http.StatusBadRequest, "invalid_argument", "invalid request body")
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrMalformedToken):
		return response(http.StatusUnauthorized, "unauthenticated", "authentication failed")
	case errors.Is(err, ErrForbidden):
		return response(http.StatusForbidden, "permission_denied", "permission denied")
	case errors.Is(err, service.ErrTooManyAttempts):
		return response(http.StatusTooManyRequests, "too_many_attempts", "too many login attempts, try again later")
	case errors.Is(err, service.ErrThrottleUnavailable):
		return response(http.StatusServiceUnavailable, "unavailable", "service unavailable")
	default:
		return response(http.StatusInternalServerError, "internal", "internal error")
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id, чтобы клиент мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
