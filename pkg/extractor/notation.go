package extractor

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeTrackDisc parses the track/disc notations found across tag
// dialects into a (number, total) pair. Accepted shapes:
//
//	nil                 -> (nil, nil)
//	[2]int / [n>=2]any  -> (first, second); second nil when zero/empty
//	"3/12"              -> (3, 12); "5/" -> (5, nil)
//	scalar              -> (value, nil)
//
// Unparseable input degrades to (nil, nil); the function never fails. A
// coercion error on either element of a pair discards the whole pair.
func NormalizeTrackDisc(raw any) (number, total *int) {
	if raw == nil {
		return nil, nil
	}

	if first, second, ok := pairElements(raw); ok {
		n, err := coerceInt(first)
		if err != nil {
			return nil, nil
		}
		if absentTotal(second) {
			return &n, nil
		}
		t, err := coerceInt(second)
		if err != nil {
			return nil, nil
		}
		if t == 0 {
			return &n, nil
		}
		return &n, &t
	}

	if s, ok := raw.(string); ok && strings.Contains(s, "/") {
		left, right, _ := strings.Cut(s, "/")
		n, err := strconv.Atoi(strings.TrimSpace(left))
		if err != nil {
			return nil, nil
		}
		right = strings.TrimSpace(right)
		if right == "" {
			return &n, nil
		}
		t, err := strconv.Atoi(right)
		if err != nil {
			return nil, nil
		}
		return &n, &t
	}

	n, err := coerceInt(raw)
	if err != nil {
		return nil, nil
	}
	return &n, nil
}

// absentTotal reports the second-element shapes that mean "no total was
// written" rather than a malformed one: nil and blank strings. A literal
// zero still goes through coercion and is dropped there.
func absentTotal(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func pairElements(raw any) (first, second any, ok bool) {
	switch v := raw.(type) {
	case [2]int:
		return v[0], v[1], true
	case []int:
		if len(v) >= 2 {
			return v[0], v[1], true
		}
	case []any:
		if len(v) >= 2 {
			return v[0], v[1], true
		}
	}
	return nil, nil, false
}

func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	}
	return 0, fmt.Errorf("not a number: %T", v)
}
