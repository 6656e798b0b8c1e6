package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/x-assistant/internal/clients/transport"
)

const maxRequestIDLen = 128

// RequestID обеспечивает наличие X-Request-Id:
//  1. читает заголовок X-Request-Id, если он есть и не длиннее 128 символов;
//  2. иначе генерирует hex id из UUIDv4 (32 символа);
//  3. кладёт id в Response Header, Request Header и в контекст
//     по ключу transport.CtxRequestID (его читает transport.Metadata для исходящих вызовов).
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" || len(id) > maxRequestIDLen {
				id = genID()
				// добавим в запрос — чтобы errors.WriteError мог его забрать.
				r.Header.Set("X-Request-Id", id)
			}
			w.Header().Set("X-Request-Id", id)

			ctx := transport.WithRequestID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func genID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
