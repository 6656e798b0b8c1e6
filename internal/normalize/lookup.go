package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// object — JSON-объект в декодированном виде.
type object = map[string]any

// Decode разбирает сырой ответ провайдера в дерево any.
// Числа остаются json.Number, чтобы крупные идентификаторы не теряли точность.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}

// asObject приводит значение к объекту.
func asObject(v any) (object, bool) {
	o, ok := v.(map[string]any)
	return o, ok && o != nil
}

// asArray приводит значение к массиву.
func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// at проходит по цепочке ключей; отсутствие любого звена даёт nil.
func at(v any, keys ...string) any {
	cur := v
	for _, k := range keys {
		o, ok := asObject(cur)
		if !ok {
			return nil
		}
		cur = o[k]
	}

	return cur
}

// objectAt — at + asObject. Без ключей проверяет сам v.
func objectAt(v any, keys ...string) (object, bool) {
	return asObject(at(v, keys...))
}

// arrayAt — at + asArray.
func arrayAt(v any, keys ...string) ([]any, bool) {
	return asArray(at(v, keys...))
}

// get безопасно читает ключ из возможно nil-объекта.
func get(o object, key string) any {
	if o == nil {
		return nil
	}

	return o[key]
}

// truthy повторяет правила "истинности" исходных цепочек фолбэков:
// nil, "", 0 и false считаются отсутствующим значением.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return true
	}
}

// first возвращает первое "истинное" значение или nil.
func first(vals ...any) any {
	for _, v := range vals {
		if truthy(v) {
			return v
		}
	}

	return nil
}

// str приводит скаляр к строке; объекты и массивы дают "".
func str(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

func firstStr(vals ...any) string { return str(first(vals...)) }

// count приводит значение к неотрицательному счётчику.
// Строки вида "1000" и "1,000" поддерживаются (так приходят просмотры).
func count(v any) int64 {
	var n int64
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			n = i
		} else if f, err := x.Float64(); err == nil {
			n = int64(f)
		}
	case float64:
		n = int64(x)
	case int:
		n = int64(x)
	case int64:
		n = x
	case string:
		i, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(x), ",", ""), 10, 64)
		if err == nil {
			n = i
		}
	}

	if n < 0 {
		return 0
	}

	return n
}

func firstCount(vals ...any) int64 { return count(first(vals...)) }

// boolean: true только для JSON true или строки "true".
func boolean(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, _ := strconv.ParseBool(x)
		return b
	default:
		return false
	}
}

func firstBool(vals ...any) bool { return boolean(first(vals...)) }

// integer — позиция в тексте (indices, start/end).
func integer(v any) int {
	return int(count(v))
}
