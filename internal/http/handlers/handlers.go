package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	"github.com/pribylovaa/x-assistant/internal/service"
)

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return bodyError(dec.Decode(value))
}

// decodeLoose — декодер для тел, которые клиент может дополнять полями.
func decodeLoose(r *http.Request, value any) error {
	return bodyError(json.NewDecoder(r.Body).Decode(value))
}

// bodyError переводит ошибку чтения тела в ответ клиенту.
func bodyError(err error) error {
	if err == nil {
		return nil
	}

	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &mbe):
		return &apierrors.Error{
			Kind:    apierrors.KindValidation,
			Status:  http.StatusRequestEntityTooLarge,
			Message: "Request body too large",
			Err:     err,
		}
	case errors.Is(err, io.EOF):
		return apierrors.Validation("Request body is required")
	default:
		return &apierrors.Error{
			Kind:    apierrors.KindValidation,
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Err:     err,
		}
	}
}

// decodeData разбирает вложенный data-объект запроса. Ошибка типа поля
// превращается в Validation(msg) с текстом из fields по имени поля
// (совпадение по суффиксу пути, например "user.username").
func decodeData(raw json.RawMessage, value any, msg string, fields map[string]string) error {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}

	err := json.Unmarshal(raw, value)
	if err == nil {
		return nil
	}

	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		for suffix, detail := range fields {
			if te.Field == suffix || strings.HasSuffix(te.Field, "."+suffix) {
				return apierrors.Validation(msg, detail)
			}
		}
	}

	return apierrors.Validation(msg, "Malformed data payload")
}
