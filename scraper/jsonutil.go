package scraper

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/titanous/json5"
)

// Str renders a decoded JSON scalar as trimmed text. Numbers keep their
// shortest exact form, nil and containers become "".
func Str(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Dig walks nested objects and arrays. Array steps are decimal indexes.
func Dig(v any, path ...string) any {
	cur := v
	for _, key := range path {
		switch node := cur.(type) {
		case map[string]any:
			cur = node[key]
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			cur = node[i]
		default:
			return nil
		}
	}
	return cur
}

// DigStr is Str(Dig(v, path...)).
func DigStr(v any, path ...string) string {
	return Str(Dig(v, path...))
}

// AsMap returns v as an object or nil.
func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// AsList returns v as an array or nil.
func AsList(v any) []any {
	l, _ := v.([]any)
	return l
}

// Maps keeps the object elements of an array.
func Maps(v any) []map[string]any {
	list := AsList(v)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// Truthy interprets loose API flags: true, non-zero numbers and "1"/"true".
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "1" || s == "true" || s == "yes"
	default:
		return false
	}
}

// Keys lists an object's keys sorted, for diagnostics about unexpected shapes.
func Keys(v any) []string {
	m := AsMap(v)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode maps a generic JSON tree onto a typed record using json tags.
// Numbers and strings convert freely so "12" and 12 both land in either type.
func Decode(in, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("scraper: build decoder: %w", err)
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("scraper: decode record: %w", err)
	}
	return nil
}

// DecodeLoose parses JSON that may be written in relaxed JavaScript style
// such as single quotes, unquoted keys or trailing commas.
func DecodeLoose(s string, out any) error {
	if err := json5.Unmarshal([]byte(s), out); err != nil {
		return fmt.Errorf("scraper: decode embedded json: %w", err)
	}
	return nil
}
