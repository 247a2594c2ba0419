package middleware

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/MarkSmithYang/auth-gateway/internal/errors"
	"github.com/MarkSmithYang/auth-gateway/internal/models"
	logctx "github.com/MarkSmithYang/auth-gateway/internal/pkg/log"
	"github.com/MarkSmithYang/auth-gateway/internal/pkg/redact"
	"github.com/MarkSmithYang/auth-gateway/internal/service"
)

// TokenValidator — проверка access-токена; реализуется пакетом service.
type TokenValidator interface {
	ValidateAccessToken(raw string) (models.Identity, []string, error)
}

// Authenticate требует валидный access-токен в Authorization: Bearer <token>
// и кладёт личность и права субъекта в контекст запроса.
// Запрос без токена или с невалидным токеном отклоняется как 401.
func Authenticate(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				apierrors.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			identity, perms, err := validator.ValidateAccessToken(raw)
			if err != nil {
				// Сам токен в логи не попадает.
				logctx.From(r.Context()).Debug("access token rejected",
					"token", redact.Token(),
					"error", err.Error(),
				)
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxIdentity, identity)
			ctx = context.WithValue(ctx, ctxPermissions, perms)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission пропускает только субъектов с требуемым правом.
// Вешается ПОСЛЕ Authenticate: без личности в контексте запрос
// отклоняется как неаутентифицированный.
func RequirePermission(required string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFrom(r.Context()); !ok {
				apierrors.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			perms, _ := PermissionsFrom(r.Context())
			if !service.HasPermission(perms, required) {
				apierrors.WriteError(w, r, apierrors.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken извлекает «сырой» токен из Authorization.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}
