// log хранит request-scoped *slog.Logger в context.Context.
// HTTP-мидлвар кладёт туда логгер с request_id, всё ниже по стеку
// (сервис, клиенты апстримов, нормализатор) достаёт его через From.
package log

import (
	"context"
	"log/slog"

	"github.com/pribylovaa/x-assistant/internal/pkg/redact"
)

type ctxKey struct{}

// Into кладёт логгер в контекст.
func Into(ctx context.Context, l *slog.Logger) context.Context {
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

// With дополняет логгер из контекста атрибутами и кладёт результат обратно.
func With(ctx context.Context, args ...any) context.Context {
	if len(args) == 0 {
		return ctx
	}

	return Into(ctx, From(ctx).With(args...))
}

// WithKey добавляет к логгеру из контекста маскированный ключ провайдера,
// чтобы все записи запроса показывали, каким ключом он выполнялся.
// Пустой ключ не добавляется.
func WithKey(ctx context.Context, name, key string) context.Context {
	masked := redact.APIKey(key)
	if masked == "" {
		return ctx
	}

	return With(ctx, slog.String(name, masked))
}
