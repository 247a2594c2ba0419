// log — request-scoped логгер в контексте.
//
// HTTP-мидлвар кладёт обогащённый *slog.Logger (request_id, method, path)
// в context, а нижние слои достают его через From, не таская логгер
// параметром через весь стек.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into кладёт логгер в контекст. Нулевой логгер не кладётся:
// From в этом случае вернёт slog.Default().
func Into(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		return ctx
	}

	return context.WithValue(ctx, ctxKey{}, l)
}

// From достаёт логгер из контекста (или возвращает slog.Default()).
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}

	return slog.Default()
}
