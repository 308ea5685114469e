package templating

import "reflect"

// repeat returns a slice of integers from 0 to count-1, capped at MaxRepeat.
func (tm *TemplateManager) repeat(count int) []int {
	count = min(max(count, 0), tm.config.MaxRepeat)
	s := make([]int, count)
	for i := range s {
		s[i] = i
	}
	return s
}

// list returns a slice containing all the arguments passed to it.
func list(args ...any) []any {
	return args
}

// pick selects and returns a single random element from a slice, or nil if
// the argument is not a non-empty slice.
func (tm *TemplateManager) pick(slice any) any {
	if slice == nil {
		return nil
	}
	val := reflect.ValueOf(slice)
	if val.Kind() != reflect.Slice || val.Len() == 0 {
		return nil
	}
	return val.Index(tm.rng.IntN(val.Len())).Interface()
}

// randomInt returns a random integer within the range [lo, hi).
func (tm *TemplateManager) randomInt(lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return tm.rng.IntN(hi-lo) + lo
}

// chance reports true with probability p, e.g. {{if chance 0.3}}von {{end}}.
func (tm *TemplateManager) chance(p float64) bool {
	return tm.rng.Float64() < p
}

// inc returns i + 1.
func inc(i int) int {
	return i + 1
}
