// validate содержит проверки и нормализацию пользовательского ввода шлюза:
// handle аккаунта, свободный текст, параметры пагинации, формат API-ключей
// и значения пользовательских настроек.
//
// Все функции чистые и не логируют.
package validate

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxTextLen — предел длины свободного текста после Sanitize (в рунах).
	MaxTextLen = 1000
	// MinAPIKeyLen — минимальная длина правдоподобного ключа провайдера.
	MinAPIKeyLen = 20

	DefaultCount = 20
	MinCount     = 1
	MaxCount     = 100
)

var handleRe = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)

// Handle проверяет handle аккаунта и возвращает его без ведущих '@'.
// Ведущие '@' срезаются все, поэтому Handle(x) и Handle("@"+x) всегда совпадают.
func Handle(s string) (string, bool) {
	h := strings.TrimLeft(s, "@")
	if !handleRe.MatchString(h) {
		return "", false
	}

	return h, true
}

// IsHandle — короткая форма Handle для мест, где нужна только проверка.
func IsHandle(s string) bool {
	_, ok := Handle(s)
	return ok
}

// Sanitize — защитная мера, а не XSS-санитайзер:
// trim, удаление '<' и '>', обрезка до MaxTextLen рун.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	s = strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, s)

	if r := []rune(s); len(r) > MaxTextLen {
		s = string(r[:MaxTextLen])
	}

	return s
}

// ClampCount прижимает count к [MinCount, MaxCount].
func ClampCount(n int) int {
	switch {
	case n < MinCount:
		return MinCount
	case n > MaxCount:
		return MaxCount
	default:
		return n
	}
}

// ParseCount разбирает count из query. Пустое, нечисловое или нулевое
// значение даёт DefaultCount; остальное проходит через ClampCount.
func ParseCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultCount
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n == 0 {
		return DefaultCount
	}

	return ClampCount(n)
}

// Pagination нормализует пару (count, cursor): count прижимается,
// курсор проходит через Sanitize.
func Pagination(count int, cursor string) (int, string) {
	if count == 0 {
		count = DefaultCount
	}

	return ClampCount(count), Sanitize(cursor)
}

// SanitizeAPIKey убирает пробелы по краям.
func SanitizeAPIKey(s string) string { return strings.TrimSpace(s) }

// APIKeyFormat — грубая проверка формата: длина ключа >= MinAPIKeyLen.
// С провайдером ключ не сверяется.
func APIKeyFormat(s string) bool {
	return len(SanitizeAPIKey(s)) >= MinAPIKeyLen
}

var (
	themes    = map[string]struct{}{"light": {}, "dark": {}, "auto": {}}
	languages = map[string]struct{}{"en": {}, "es": {}}
)

// Theme проверяет значение темы интерфейса.
func Theme(s string) bool {
	_, ok := themes[s]
	return ok
}

// Language проверяет код языка интерфейса.
func Language(s string) bool {
	_, ok := languages[s]
	return ok
}
