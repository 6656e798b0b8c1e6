// redact предоставляет утилиты безопасного редактирования чувствительных
// данных для логов (API-ключи провайдеров, секреты в свободном тексте).
// Цель — исключить утечки секретов, сохранив полезный для отладки контекст
// (например, префикс ключа, по которому видно, какой ключ был использован).
package redact

import (
	"regexp"
	"strings"
)

// APIKey маскирует ключ для логирования.
//
// Правила:
//   - пустая строка (после trim) — возвращается "";
//   - длина > 8 — первые 8 символов + "...";
//   - иначе — "***".
//
// Примеры:
//
//	"AIzaSyA-1234567890abcdef" -> "AIzaSyA-..."
//	"short"                    -> "***"
func APIKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	r := []rune(s)
	if len(r) > 8 {
		return string(r[:8]) + "..."
	}

	return "***"
}

var (
	longRun    = regexp.MustCompile(`[a-zA-Z0-9]{20,}`)
	keyValue   = regexp.MustCompile(`(?i)(api[_-]?key|token|secret|password)["']?\s*[:=]\s*["']?[^"',\s}]+`)
	keyPrefix  = regexp.MustCompile(`(AIza|AKIA|sk_|pk_)[a-zA-Z0-9]+`)
	keyLiteral = "[REDACTED-API-KEY]"
)

// Secrets вычищает из свободного текста всё, что похоже на секрет:
// длинные алфавитно-цифровые последовательности, пары вида api_key=..., token: ...,
// а также ключи с известными префиксами (AIza, AKIA, sk_, pk_).
// Используется перед логированием сырых ответов апстримов.
func Secrets(s string) string {
	if s == "" {
		return ""
	}

	s = longRun.ReplaceAllString(s, "[REDACTED-LONG-STRING]")
	s = keyValue.ReplaceAllString(s, "${1}: [REDACTED]")
	return keyPrefix.ReplaceAllString(s, keyLiteral)
}

// Snippet обрезает текст до n рун и прогоняет через Secrets.
// n <= 0 — без обрезки.
func Snippet(s string, n int) string {
	if n > 0 {
		if r := []rune(s); len(r) > n {
			s = string(r[:n]) + "..."
		}
	}

	return Secrets(s)
}
