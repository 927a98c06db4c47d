package volcano

import "math"

// Interval maps the closed luck range [Min, Max] to one outcome.
type Interval[T any] struct {
	Min   float64 `json:"min_luck"`
	Max   float64 `json:"max_luck"`
	Value T       `json:"value"`
}

// NextUp returns the smallest float64 greater than x.
func NextUp(x float64) float64 {
	return math.Nextafter(x, math.Inf(1))
}

// adjacent reports whether b starts at the first representable value after a ends.
func adjacent[T any](a, b Interval[T]) bool {
	return NextUp(a.Max) == b.Min
}

// appendMerged appends iv, extending the last interval instead when both hold equal values
// and touch with no representable gap.
func appendMerged[T any](list []Interval[T], iv Interval[T], eq func(a, b T) bool) []Interval[T] {
	if n := len(list); n > 0 {
		last := &list[n-1]
		if eq(last.Value, iv.Value) && adjacent(*last, iv) {
			last.Max = iv.Max
			return list
		}
	}
	return append(list, iv)
}

// MergeAdjacent collapses runs of touching intervals with equal values. It is idempotent.
func MergeAdjacent[T any](list []Interval[T], eq func(a, b T) bool) []Interval[T] {
	out := make([]Interval[T], 0, len(list))
	for _, iv := range list {
		out = appendMerged(out, iv, eq)
	}
	return out
}

// ValueAt returns the value whose interval contains luck.
func ValueAt[T any](list []Interval[T], luck float64) (T, bool) {
	for _, iv := range list {
		if iv.Min <= luck && luck <= iv.Max {
			return iv.Value, true
		}
	}
	var zero T
	return zero, false
}

func equalInts(a, b int) bool { return a == b }
