// Package rawjson provides tolerant field extraction from decoded JSON
// payloads. HockeyTech feeds mix numeric types freely (ints, floats, and
// string-encoded numbers), so every accessor normalizes to one Go type and
// returns nil rather than failing on absent or mistyped fields.
package rawjson

import (
	"fmt"
	"strconv"
	"strings"
)

// Records coerces a decoded payload into a list of JSON objects. The
// play-by-play body of both feed families is an array of event records; any
// other shape is unrecoverable.
func Records(raw any) ([]map[string]any, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected JSON array of events, got %T", raw)
	}
	out := make([]map[string]any, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("event %d: expected JSON object, got %T", i, item)
		}
		out = append(out, m)
	}
	return out, nil
}

// Map returns the named sub-object, or nil when absent or not an object.
func Map(m map[string]any, key string) map[string]any {
	v, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	return v
}

// List returns the named array, or nil when absent or not an array.
func List(m map[string]any, key string) []any {
	v, ok := m[key].([]any)
	if !ok {
		return nil
	}
	return v
}

// Str returns the named string field. Empty strings are preserved; absent
// or non-string values return nil.
func Str(m map[string]any, key string) *string {
	v, ok := m[key].(string)
	if !ok {
		return nil
	}
	return &v
}

// Float returns the named field as a float64, accepting JSON numbers and
// string-encoded numbers.
func Float(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &f
		}
	}
	return nil
}

// Int returns the named field as an int, accepting JSON numbers and
// string-encoded integers.
func Int(m map[string]any, key string) *int {
	if f := Float(m, key); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

// Int64 returns the named field as an int64, accepting JSON numbers and
// string-encoded integers. Identifier fields use this to survive IDs past
// 2^53 being sent as strings.
func Int64(m map[string]any, key string) *int64 {
	switch v := m[key].(type) {
	case float64:
		n := int64(v)
		return &n
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return &n
		}
	}
	return nil
}

// Bool returns the named field as a bool, accepting JSON booleans, 0/1
// numbers, and "true"/"false"/"0"/"1" strings.
func Bool(m map[string]any, key string) *bool {
	switch v := m[key].(type) {
	case bool:
		return &v
	case float64:
		b := v != 0
		return &b
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			b := true
			return &b
		case "false", "0":
			b := false
			return &b
		}
	}
	return nil
}
