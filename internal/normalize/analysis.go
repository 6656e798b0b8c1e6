package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pribylovaa/x-assistant/internal/models"
)

// ErrNoJSONObject — в ответе модели нет JSON-объекта.
var ErrNoJSONObject = errors.New("no json object in model reply")

// StyleAnalysis разбирает ответ модели: снимает markdown-ограды ```json ... ```,
// вырезает внешний JSON-объект и декодирует его. Score прижимается к [1,100].
func StyleAnalysis(text string) (models.StyleAnalysis, error) {
	const op = "normalize.StyleAnalysis"

	body := stripFences(text)

	start := strings.IndexByte(body, '{')
	end := strings.LastIndexByte(body, '}')
	if start < 0 || end <= start {
		return models.StyleAnalysis{}, fmt.Errorf("%s: %w", op, ErrNoJSONObject)
	}

	var out struct {
		models.StyleAnalysis
		Score any `json:"score"`
	}
	if err := json.Unmarshal([]byte(body[start:end+1]), &out); err != nil {
		return models.StyleAnalysis{}, fmt.Errorf("%s: decode: %w", op, err)
	}

	a := out.StyleAnalysis
	a.Score = clampScore(out.Score)
	a.CommonTopics = nonNil(a.CommonTopics)
	a.LanguagePatterns = nonNil(a.LanguagePatterns)
	a.Suggestions = nonNil(a.Suggestions)

	return a, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// clampScore прижимает score к [1,100]. Число или числовая строка
// округляются; всё прочее (null, "high", объект) даёт 1.
func clampScore(v any) int {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 1
		}
		f = n
	default:
		return 1
	}

	if math.IsNaN(f) {
		return 1
	}

	switch {
	case f < 1:
		return 1
	case f > 100:
		return 100
	default:
		return int(f + 0.5)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
