package volcano

import (
	"testing"

	"github.com/xtding233/volcano-backend/internal/mapdata/mapdatatest"
)

func tooth() Goodie              { return ToothGoodie() }
func common(i CommonItem) Goodie { return CommonGoodie(i) }
func rare(i RareItem) Goodie     { return RareGoodie(i) }

// s1 is the plain single-player save used for the basic end-to-end case.
var s1 = GameSettings{Seed: 12345, DaysPlayed: 5}

// s2 has enough luck range to split both layouts and chests.
var s2 = GameSettings{Seed: 6, DaysPlayed: 3, MaxLuckLevel: 10, PostPatch: true, HasCaldera: true}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(mapdatatest.Tables(t))
}

type lootWant struct {
	min, max float64
	loot     []Goodie
}

func checkLoot(t *testing.T, level int, got []Interval[[]Goodie], want []lootWant) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("floor %d: %d loot intervals, want %d: %+v", level, len(got), len(want), got)
	}
	for i, w := range want {
		g := got[i]
		if g.Min != w.min || g.Max != w.max {
			t.Errorf("floor %d interval %d: [%v, %v], want [%v, %v]", level, i, g.Min, g.Max, w.min, w.max)
		}
		if !equalGoodies(g.Value, w.loot) {
			t.Errorf("floor %d interval %d: loot %v, want %v", level, i, g.Value, w.loot)
		}
	}
}

// checkPartition asserts the intervals tile [lo, hi] exactly, in order.
func checkPartition[T any](t *testing.T, what string, ivs []Interval[T], lo, hi float64) {
	t.Helper()
	if len(ivs) == 0 {
		t.Fatalf("%s: no intervals", what)
	}
	if ivs[0].Min != lo {
		t.Errorf("%s: starts at %v, want %v", what, ivs[0].Min, lo)
	}
	if ivs[len(ivs)-1].Max != hi {
		t.Errorf("%s: ends at %v, want %v", what, ivs[len(ivs)-1].Max, hi)
	}
	for i, iv := range ivs {
		if iv.Min > iv.Max {
			t.Errorf("%s: interval %d inverted [%v, %v]", what, i, iv.Min, iv.Max)
		}
		if i > 0 && iv.Min != NextUp(ivs[i-1].Max) {
			t.Errorf("%s: gap or overlap between %v and %v", what, ivs[i-1].Max, iv.Min)
		}
	}
}
