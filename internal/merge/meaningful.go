// Package merge applies LLM-extracted profile fragments onto the stored
// BusinessProfile. Extraction output is treated as unreliable input: a merge
// may only ever move a field from unknown to known, or from a known value to
// a more detailed one.
package merge

import (
	"strings"

	"github.com/langkah-ekspor/exporo/internal/model"
)

// Meaningful reports whether a value carries real information, as opposed to
// a sentinel placeholder or an empty collection. Numbers always count,
// including zero — zero capacity is a legitimate report, not an unset field.
func Meaningful(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		if val == "" {
			return false
		}
		for _, s := range model.SentinelStrings {
			if val == s {
				return false
			}
		}
		return true
	case []any:
		return len(val) > 0
	case []string:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	case int, int64, float64, float32:
		return true
	case bool:
		return val
	default:
		return true
	}
}

// MoreDetailed reports whether new should replace an already-meaningful
// existing value. Strings win by length (sentinel-substring tiebreak),
// numbers by being strictly larger and positive, lists and maps by size.
// Mismatched types never replace a meaningful existing value.
func MoreDetailed(newVal, existing any) bool {
	switch nv := newVal.(type) {
	case string:
		ev, ok := existing.(string)
		if !ok {
			return !Meaningful(existing)
		}
		nt, et := strings.TrimSpace(nv), strings.TrimSpace(ev)
		if len(nt) > len(et) {
			return true
		}
		if len(nt) < len(et) {
			return false
		}
		return !containsSentinel(nv) && containsSentinel(ev)
	case float64, int, int64, float32:
		nf, _ := toFloat64(newVal)
		ef, ok := toFloat64(existing)
		if !ok {
			return !Meaningful(existing)
		}
		return nf > ef && nf > 0
	case []any:
		if l := listLen(existing); l >= 0 {
			return len(nv) > l
		}
		return !Meaningful(existing)
	case []string:
		if l := listLen(existing); l >= 0 {
			return len(nv) > l
		}
		return !Meaningful(existing)
	case map[string]any:
		em, ok := existing.(map[string]any)
		if !ok {
			return !Meaningful(existing)
		}
		return meaningfulKeys(nv) > meaningfulKeys(em)
	default:
		return !Meaningful(existing)
	}
}

// containsSentinel matches sentinel terms as case-insensitive substrings, the
// looser check used only for the string length tiebreak.
func containsSentinel(s string) bool {
	lower := strings.ToLower(s)
	for _, term := range model.SentinelStrings {
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func meaningfulKeys(m map[string]any) int {
	n := 0
	for _, v := range m {
		if Meaningful(v) {
			n++
		}
	}
	return n
}

func listLen(v any) int {
	switch l := v.(type) {
	case []any:
		return len(l)
	case []string:
		return len(l)
	default:
		return -1
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
