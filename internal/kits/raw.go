// Package kits implements the RouterHaus catalog engine: field derivation,
// faceted filtering, sorting, pagination, recommendation scoring, and the
// query-string codec that makes result pages shareable.
package kits

import (
	"math"
	"strconv"
	"strings"
)

// Raw is one undecoded catalog record. Records arrive as arbitrary JSON
// objects; the typed accessors below coerce whatever is present, so a
// malformed field is just missing data, never an error.
type Raw map[string]any

func (r Raw) has(key string) bool {
	_, ok := r[key]
	return ok
}

// str returns the field as a string. Numbers are formatted, everything else
// (booleans, arrays, objects, null) is treated as absent.
func (r Raw) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// num returns the field as a non-negative finite number, coercing numeric
// strings. Anything else is 0.
func (r Raw) num(key string) float64 {
	var n float64
	switch v := r[key].(type) {
	case float64:
		n = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}

// boolean follows truthiness: true, non-zero numbers and non-empty strings
// count as set.
func (r Raw) boolean(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []any:
		return true
	case map[string]any:
		return true
	default:
		return false
	}
}

// strs returns the field as a list of non-empty strings. Scalar entries are
// stringified the same way str does.
func (r Raw) strs(key string) []string {
	arr, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		var s string
		switch v := item.(type) {
		case string:
			s = v
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// intOrNil returns the field as an integer, or nil when absent or not a
// number. Used for lanCount, which distinguishes "unknown" from 0.
func (r Raw) intOrNil(key string) *int {
	var n float64
	switch v := r[key].(type) {
	case float64:
		n = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	i := int(n)
	return &i
}

// uniq removes duplicates and empty strings, preserving first-seen order.
func uniq(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
