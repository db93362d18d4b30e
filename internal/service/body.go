package service

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Body is a decoded request body, either a JSON object or form fields. Only
// the keys the service enumerates are ever read from it.
type Body map[string]any

// text returns the scalar value stored under key as a string. Nested objects
// and arrays are treated as absent.
func (b Body) text(key string) (string, bool) {
	v, ok := b[key]
	if !ok || v == nil {
		return "", false
	}
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	default:
		return "", false
	}
}

// present reports whether key carries a non-blank value.
func (b Body) present(key string) bool {
	s, ok := b.text(key)
	return ok && strings.TrimSpace(s) != ""
}

// parseOpen is the one place text is turned into the stored boolean of the
// open field. Only "true" and "false" are accepted, in any letter case.
func parseOpen(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
