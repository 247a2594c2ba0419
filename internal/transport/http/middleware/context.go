package middleware

import (
	"context"

	"github.com/MarkSmithYang/auth-gateway/internal/models"
)

type ctxKey int

const (
	ctxIdentity ctxKey = iota
	ctxPermissions
)

// IdentityFrom возвращает личность аутентифицированного субъекта,
// положенную в контекст мидлваром Authenticate.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(ctxIdentity).(models.Identity)
	return identity, ok
}

// PermissionsFrom возвращает права субъекта из access-токена.
func PermissionsFrom(ctx context.Context) ([]string, bool) {
	perms, ok := ctx.Value(ctxPermissions).([]string)
	return perms, ok
}
