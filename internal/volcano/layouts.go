package volcano

import "fmt"

// LayoutSequence is the layout id of every floor, top to bottom.
type LayoutSequence [NumFloors]int

// Fixed floors and layout pools.
const (
	entranceLayout = 0
	restStopLevel  = 5
	restStopLayout = 31
	bottomLayout   = 30

	firstSpecialLayout = 32 // mushroom and monster floors: 32..37
	lastSpecialLayout  = 37
	firstCalderaLayout = 38 // 38..57
	lastCalderaLayout  = 57

	specialLuckScale = 0.5
	calderaChance    = 0.75
)

// EnumerateLayouts partitions the luck domain of s by the layout sequence each luck value produces.
// Intervals come back in increasing luck order and cover the domain without gaps or overlaps.
func EnumerateLayouts(s GameSettings) []Interval[LayoutSequence] {
	lo, hi := s.LuckDomain()
	return enumerateFrom(s, nil, lo, hi)
}

func enumerateFrom(s GameSettings, prev []int, minLuck, maxLuck float64) []Interval[LayoutSequence] {
	if minLuck > maxLuck {
		panic(fmt.Sprintf("volcano: inverted luck range [%v, %v] at level %d", minLuck, maxLuck, len(prev)))
	}
	level := len(prev)
	// full slice expression so sibling branches never share a backing array
	extend := func(id int) []int { return append(prev[:level:level], id) }

	switch level {
	case 0:
		return enumerateFrom(s, extend(entranceLayout), minLuck, maxLuck)
	case restStopLevel:
		return enumerateFrom(s, extend(restStopLayout), minLuck, maxLuck)
	case NumFloors - 1:
		var seq LayoutSequence
		copy(seq[:], extend(bottomLayout))
		return []Interval[LayoutSequence]{{Min: minLuck, Max: maxLuck, Value: seq}}
	}

	pool := make([]int, 0, 60)
	for id := 1; id < bottomLayout; id++ {
		pool = append(pool, id)
	}
	r := s.levelRNG(level)

	if level > 1 {
		// the game rolls this on every floor, even once a special floor has been used
		specialRoll := r.Float64()
		if !usedSpecial(prev) {
			switch {
			case specialRoll < minLuck*specialLuckScale:
				pool = appendRange(pool, firstSpecialLayout, lastSpecialLayout)
			case !(specialRoll < maxLuck*specialLuckScale):
				// not even the best luck in range adds special floors
			default:
				mid := specialRoll / specialLuckScale
				if !(minLuck < mid && mid < maxLuck) {
					panic(fmt.Sprintf("volcano: split point %v outside (%v, %v)", mid, minLuck, maxLuck))
				}
				lower := enumerateFrom(s, prev, minLuck, mid)
				return append(lower, enumerateFrom(s, prev, NextUp(mid), maxLuck)...)
			}
		}
	}

	if s.PostPatch && s.HasCaldera {
		if r.Float64() < calderaChance {
			pool = appendRange(pool, firstCalderaLayout, lastCalderaLayout)
		}
	}

	last := prev[level-1]
	for i, id := range pool {
		if id == last {
			pool = append(pool[:i], pool[i+1:]...)
			break
		}
	}
	chosen := pool[r.Intn(int32(len(pool)))]
	return enumerateFrom(s, extend(chosen), minLuck, maxLuck)
}

func usedSpecial(prev []int) bool {
	for _, id := range prev {
		if id >= firstSpecialLayout {
			return true
		}
	}
	return false
}

func appendRange(pool []int, from, to int) []int {
	for id := from; id <= to; id++ {
		pool = append(pool, id)
	}
	return pool
}
