// Package jsonargs coerces loosely typed JSON values, as produced by language
// models, into Go values. Every function reports whether coercion succeeded
// instead of failing.
package jsonargs

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Int coerces numbers and numeric strings, rounding fractions half away from zero
func Int(v any) (int, bool) {
	f, ok := Float(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Round(f)
	if f > math.MaxInt32 {
		return math.MaxInt32, true
	}
	if f < math.MinInt32 {
		return math.MinInt32, true
	}
	return int(f), true
}

// Float coerces numbers and numeric strings
func Float(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

// String returns strings as is and formats numbers and booleans
func String(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// Bool accepts booleans, "true"/"false"/"yes"/"no"/"1"/"0" and 0/1
func Bool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1", "si", "sí":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
	case float64:
		if t == 0 || t == 1 {
			return t == 1, true
		}
	}
	return false, false
}

// StringList accepts arrays of scalars or a single comma separated string.
// Non-scalar elements are dropped.
func StringList(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := String(item); ok {
				out = append(out, s)
			}
		}
		return out, true
	case string:
		var out []string
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, true
	}
	return nil, false
}

// Object returns v as a JSON object
func Object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Args is an untyped argument object with typed accessors
type Args map[string]any

// Has reports whether key is present and not null
func (a Args) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// Int returns the coerced int at key
func (a Args) Int(key string) (int, bool) {
	return Int(a[key])
}

// Float returns the coerced float at key
func (a Args) Float(key string) (float64, bool) {
	return Float(a[key])
}

// String returns the coerced string at key
func (a Args) String(key string) (string, bool) {
	return String(a[key])
}

// Bool returns the coerced bool at key
func (a Args) Bool(key string) (bool, bool) {
	return Bool(a[key])
}

// StringList returns the coerced list at key
func (a Args) StringList(key string) ([]string, bool) {
	return StringList(a[key])
}

// Object returns the nested object at key
func (a Args) Object(key string) (Args, bool) {
	m, ok := Object(a[key])
	return Args(m), ok
}

// IntMap returns the nested object at key with its keys trimmed and
// lowercased. Entries that are not numbers are dropped.
func (a Args) IntMap(key string) map[string]int {
	obj, ok := a.Object(key)
	if !ok {
		return nil
	}
	out := make(map[string]int, len(obj))
	for k := range obj {
		if v, ok := obj.Int(k); ok {
			out[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	return out
}

// First returns the first present string among keys
func (a Args) First(keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := a.String(k); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}
