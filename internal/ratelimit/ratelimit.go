// ratelimit — фиксированное окно счётчиков запросов по ключу.
//
// Алгоритм (одинаков для всех хранилищ):
//   - первый запрос по ключу или now > resetAt: {count: 1, resetAt: now+window}, allow;
//   - count < max: count++, allow;
//   - иначе deny.
//
// Всплески на границе окон допускают до 2*max запросов подряд: это свойство
// фиксированного окна, а не ошибка.
package ratelimit

import (
	"context"
	"time"
)

// Limiter — контракт проверки лимита. Allow никогда не возвращает ошибку:
// сбои хранилища логируются и трактуются как allow.
type Limiter interface {
	Allow(ctx context.Context, key string, max int, window time.Duration) bool
}

// Key собирает ключ счётчика вида "scope:addr", чтобы разные группы
// маршрутов не делили один счётчик на адрес.
func Key(scope, addr string) string {
	if addr == "" {
		addr = "unknown"
	}

	return scope + ":" + addr
}
