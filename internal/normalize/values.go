package normalize

import (
	"fmt"
	"strconv"
)

// Helpers for probing loosely-typed YAML mappings. Absent keys and
// wrong-typed values resolve to "not present", never panic.

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// stringify renders a scalar the way YAML authors expect ("1.0" stays "1.0",
// ints render without exponents). Nil renders as "".
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// strField returns the string form of m[key], or "" when absent.
func strField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	return stringify(v)
}

// strOr returns the string form of m[key], or def when absent.
func strOr(m map[string]any, key, def string) string {
	v, ok := m[key]
	if !ok {
		return def
	}
	return stringify(v)
}

// firstStr returns the string form of the first key present in m.
func firstStr(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			return stringify(v)
		}
	}
	return ""
}

// asInt converts YAML numeric shapes to int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
	}
	return 0, false
}

// intPtr returns m[key] as *int, or nil when absent or non-numeric.
func intPtr(m map[string]any, key string) *int {
	if v, ok := m[key]; ok {
		if n, ok := asInt(v); ok {
			return &n
		}
	}
	return nil
}

// firstNonZeroIntPtr returns the first key holding a non-zero int. A present
// zero falls through to the next key; the last key's value is returned as-is
// (nil when absent).
func firstNonZeroIntPtr(m map[string]any, keys ...string) *int {
	for _, key := range keys[:len(keys)-1] {
		if p := intPtr(m, key); p != nil && *p != 0 {
			return p
		}
	}
	return intPtr(m, keys[len(keys)-1])
}

// intOr returns m[key] as int, or def when absent or non-numeric.
func intOr(m map[string]any, key string, def int) int {
	if v, ok := m[key]; ok {
		if n, ok := asInt(v); ok {
			return n
		}
	}
	return def
}

// mapField returns m[key] as a mapping, or an empty mapping.
func mapField(m map[string]any, key string) map[string]any {
	if sub, ok := asMap(m[key]); ok {
		return sub
	}
	return map[string]any{}
}

// stringList coerces a list value to []string; non-lists yield nil.
func stringList(v any) []string {
	items, ok := asList(v)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, stringify(item))
	}
	return out
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func containsStr(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
