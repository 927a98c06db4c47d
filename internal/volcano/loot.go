package volcano

import (
	"github.com/xtding233/volcano-backend/internal/rng"
)

// chestBase is subtracted from the chest roll: rare chests need roll < base + luck boost.
func chestBase(level int) float64 {
	if level == NumFloors-1 {
		return 0.5
	}
	return 0.1
}

// rollChest consumes one draw from the floor generator and decides the chest for [minLuck, maxLuck].
//
// The chest's own generator is seeded from the mixed draw; its first value is the rarity roll,
// moved onto the luck-multiplier scale (roll - base + 1) so it can be compared with luck directly.
func rollChest(floorRNG *rng.DotnetRNG, s GameSettings, level int, minLuck, maxLuck float64) lootEntry {
	chestSeed := rng.Mix(s.LegacyRNG, float64(floorRNG.Next()))
	roll := rng.New(chestSeed).Float64()
	threshold := roll - chestBase(level) + 1

	switch {
	case threshold < minLuck:
		return resolved(RareGoodie(generateRare(chestSeed, s.CoconutUnlocked)))
	case threshold >= maxLuck:
		return resolved(CommonGoodie(generateCommon(chestSeed, s.CoconutUnlocked)))
	}
	return lootEntry{
		undecided: true,
		threshold: threshold,
		common:    generateCommon(chestSeed, s.CoconutUnlocked),
		rare:      generateRare(chestSeed, s.CoconutUnlocked),
	}
}

// resolveLoot splits [minLuck, maxLuck] on the first undecided chest until every entry is a Goodie,
// appending each finished list to acc with adjacent equal lists merged.
func resolveLoot(minLuck, maxLuck float64, loot []lootEntry, acc []Interval[[]Goodie]) []Interval[[]Goodie] {
	if minLuck > maxLuck {
		panic("volcano: resolveLoot called with an inverted luck range")
	}
	for i, e := range loot {
		if !e.undecided {
			continue
		}
		alt := append([]lootEntry(nil), loot...)
		if e.threshold >= minLuck {
			alt[i] = resolved(CommonGoodie(e.common))
			acc = resolveLoot(minLuck, min(e.threshold, maxLuck), alt, acc)
		}
		if e.threshold < maxLuck {
			alt = append([]lootEntry(nil), loot...)
			alt[i] = resolved(RareGoodie(e.rare))
			acc = resolveLoot(max(NextUp(e.threshold), minLuck), maxLuck, alt, acc)
		}
		return acc
	}

	goodies := make([]Goodie, len(loot))
	for i, e := range loot {
		goodies[i] = e.goodie
	}
	return appendMerged(acc, Interval[[]Goodie]{Min: minLuck, Max: maxLuck, Value: goodies}, equalGoodies)
}
