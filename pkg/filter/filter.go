// Package filter implements the two-stage list filtering shared by every
// collection endpoint: a free-text search over declared fields followed
// by field filters with range-suffix semantics.
package filter

import (
	"strconv"
	"strings"
	"time"
)

// DefaultMinChars is the minimum trimmed search-term length before the
// text stage applies. Shorter terms are ignored, not treated as empty
// result sets.
const DefaultMinChars = 2

// Sentinel filter values that disable a filter entry.
const sentinelAll = "all"

// Record exposes a collection item's filterable fields by name. Absent
// optional fields are omitted from the map; a filter on an absent field
// never matches.
type Record interface {
	FilterFields() map[string]any
}

// Query is one filtering request against a collection snapshot.
type Query struct {
	Term     string
	Fields   []string       // fields the text stage searches, OR-combined
	Filters  map[string]any // field filters, AND-combined
	MinChars int            // 0 falls back to DefaultMinChars
}

// Apply runs the text-search stage then the field-filter stage over a
// snapshot and returns the matching subset. It never mutates its input
// and is safe to call repeatedly with the same arguments.
func Apply[T Record](items []T, q Query) []T {
	minChars := q.MinChars
	if minChars <= 0 {
		minChars = DefaultMinChars
	}

	term := strings.TrimSpace(q.Term)
	searchActive := len(term) >= minChars
	if searchActive {
		term = strings.ToLower(term)
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		fields := item.FilterFields()
		if searchActive && !matchesTerm(fields, q.Fields, term) {
			continue
		}
		if !matchesFilters(fields, q.Filters) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// matchesTerm reports whether any declared field contains the lowercased
// term as a substring.
func matchesTerm(fields map[string]any, searchFields []string, term string) bool {
	for _, name := range searchFields {
		v, ok := fields[name]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(stringify(v)), term) {
			return true
		}
	}
	return false
}

// matchesFilters applies every active filter entry. Nil, empty-string and
// the "all" sentinel deactivate an entry. Keys ending in Min/Max compare
// numerically against the base field, From/To compare as dates, anything
// else is exact equality.
func matchesFilters(fields map[string]any, filters map[string]any) bool {
	for key, want := range filters {
		if isInactive(want) {
			continue
		}
		if !matchesFilter(fields, key, want) {
			return false
		}
	}
	return true
}

func matchesFilter(fields map[string]any, key string, want any) bool {
	if base, ok := strings.CutSuffix(key, "Min"); ok && base != "" {
		return compareNumeric(fields, base, want, false)
	}
	if base, ok := strings.CutSuffix(key, "Max"); ok && base != "" {
		return compareNumeric(fields, base, want, true)
	}
	if base, ok := strings.CutSuffix(key, "From"); ok && base != "" {
		return compareDate(fields, base, want, false)
	}
	if base, ok := strings.CutSuffix(key, "To"); ok && base != "" {
		return compareDate(fields, base, want, true)
	}
	have, ok := fields[key]
	if !ok {
		return false
	}
	return equals(have, want)
}

func isInactive(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == "" || s == sentinelAll
	}
	return false
}

func compareNumeric(fields map[string]any, base string, want any, max bool) bool {
	have, ok := fields[base]
	if !ok {
		return false
	}
	hv, ok := toFloat(have)
	if !ok {
		return false
	}
	wv, ok := toFloat(want)
	if !ok {
		return false
	}
	if max {
		return hv <= wv
	}
	return hv >= wv
}

func compareDate(fields map[string]any, base string, want any, to bool) bool {
	have, ok := fields[base]
	if !ok {
		return false
	}
	ht, ok := toTime(have)
	if !ok {
		return false
	}
	wt, ok := toTime(want)
	if !ok {
		return false
	}
	if to {
		return !ht.After(wt)
	}
	return !ht.Before(wt)
}

func equals(have, want any) bool {
	if hv, ok := toFloat(have); ok {
		if wv, ok := toFloat(want); ok {
			return hv == wv
		}
	}
	return stringify(have) == stringify(want)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse("2006-01-02", t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case time.Time:
		return s.Format(time.RFC3339)
	default:
		// FilterFields maps expose defined string types (statuses,
		// stages, channels) as plain strings, so nothing else is
		// expected here.
		return ""
	}
}
