// errors стандартизирует ошибки шлюза и ответы об ошибках HTTP-слоя.
// На вход принимается любая ошибка (обычно *Error из сервиса/клиентов),
// на выход даётся:
//   - корректный HTTP-статус;
//   - безопасное человекочитаемое поле error без утечки деталей.
//
// Маппинг статусов апстримов (Upstream):
//   - 401 -> 401 "Invalid API key configuration"
//   - 429 -> 429 "API rate limit exceeded"
//   - 403 -> 403 "Access forbidden"
//   - 500 -> 500 "<Provider> API server error"
//   - прочее -> тот же статус, "HTTP error! status: N"
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// Kind — класс ошибки, он же машиночитаемый code в ответе.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindRateLimited  Kind = "rate_limited"
	KindUnauthorized Kind = "unauthorized"
	KindUpstream     Kind = "upstream"
	KindParse        Kind = "parse"
	KindTimeout      Kind = "timeout"
	KindCanceled     Kind = "canceled"
	KindInternal     Kind = "internal"
)

// Error — доменная ошибка шлюза.
// Message всегда безопасен для клиента; причина (Err) только логируется.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details []string
	Err     error

	// UpstreamStatus — исходный статус апстрима (только для KindUpstream).
	UpstreamStatus int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation — ошибка пользовательского ввода (400).
func Validation(msg string, details ...string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg, Details: details}
}

// RateLimited — превышен лимит запросов шлюза (429).
func RateLimited() *Error {
	return &Error{
		Kind:    KindRateLimited,
		Status:  http.StatusTooManyRequests,
		Message: "Rate limit exceeded. Please try again later.",
	}
}

// Unauthorized — нет или неверный bearer-секрет (401).
func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: "Unauthorized access"}
}

// Upstream — апстрим ответил не-2xx статусом.
func Upstream(provider string, status int) *Error {
	code, msg := upstreamMessage(provider, status)
	return &Error{
		Kind:           KindUpstream,
		Status:         code,
		Message:        msg,
		UpstreamStatus: status,
	}
}

// Parse — ответ модели не удалось разобрать (500).
func Parse(msg string, err error) *Error {
	return &Error{Kind: KindParse, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// Timeout — вызов апстрима не уложился в дедлайн (504).
func Timeout(err error) *Error {
	return &Error{
		Kind:    KindTimeout,
		Status:  http.StatusGatewayTimeout,
		Message: "Upstream request timed out",
		Err:     err,
	}
}

// Internal — прочие ошибки (500). msg обязан быть безопасным для клиента.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// Wrap превращает ошибку в *Error: доменные ошибки и таймауты сохраняют
// свой класс, всё остальное становится Internal(msg).
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}

	var e *Error
	if stderrors.As(err, &e) {
		return err
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return Timeout(err)
	}

	return Internal(msg, err)
}

// As — сокращение для errors.As(err, **Error).
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// ErrorResponse — единый формат ответа об ошибке.
// Error — безопасное человекочитаемое описание.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Details — список нарушений валидации, если есть.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type ErrorResponse struct {
	Error     string   `json:"error"`
	Code      Kind     `json:"code"`
	Details   []string `json:"details,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и тело ответа.
//
// Поведение:
//   - err == nil - программная ошибка вызова: 500/internal;
//   - *Error (в т.ч. обёрнутая) - его статус и сообщение;
//   - context.DeadlineExceeded - 504/timeout;
//   - context.Canceled - 499/canceled;
//   - прочее - 500/internal без деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: KindInternal}
	}

	if e, ok := As(err); ok {
		status := e.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}

		return status, ErrorResponse{Error: e.Message, Code: e.Kind, Details: e.Details}
	}

	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		t := Timeout(err)
		return t.Status, ErrorResponse{Error: t.Message, Code: t.Kind}
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, ErrorResponse{Error: "canceled", Code: KindCanceled}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: KindInternal}
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// upstreamMessage — таблица статусов апстрима.
// Статус ответа шлюза совпадает со статусом апстрима; не-ошибочные
// статусы (например, 3xx) превращаются в 502.
func upstreamMessage(provider string, status int) (int, string) {
	switch status {
	case http.StatusUnauthorized:
		return status, "Invalid API key configuration"
	case http.StatusTooManyRequests:
		return status, "API rate limit exceeded"
	case http.StatusForbidden:
		return status, "Access forbidden"
	case http.StatusInternalServerError:
		return status, fmt.Sprintf("%s API server error", provider)
	}

	code := status
	if code < 400 || code > 599 {
		code = http.StatusBadGateway
	}

	return code, fmt.Sprintf("HTTP error! status: %d", status)
}
