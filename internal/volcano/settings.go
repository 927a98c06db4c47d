package volcano

import (
	"fmt"

	"github.com/xtding233/volcano-backend/internal/rng"
)

// NumFloors is the depth of the volcano dungeon.
const NumFloors = 10

// GameSettings is everything about a save file that feeds floor generation.
type GameSettings struct {
	Seed            int32  `json:"seed" yaml:"seed"`
	LegacyRNG       bool   `json:"legacy_rng" yaml:"legacy_rng"`
	HasCaldera      bool   `json:"has_caldera" yaml:"has_caldera"`
	PostPatch       bool   `json:"post_patch" yaml:"post_patch"` // 1.6.4 or later
	CoconutUnlocked bool   `json:"coconut_unlocked" yaml:"coconut_unlocked"`
	SpecialCharm    bool   `json:"special_charm" yaml:"special_charm"`
	DaysPlayed      uint32 `json:"days_played" yaml:"days_played"`
	MaxLuckLevel    uint32 `json:"max_luck_level" yaml:"max_luck_level"`
}

// LuckDomain returns the luck multiplier range a player with these settings can have on any day.
// Daily luck spans [-0.1, 0.1]; the special charm shifts both ends by float32(0.025).
func (s GameSettings) LuckDomain() (minLuck, maxLuck float64) {
	lo, hi := -0.1, 0.1
	if s.SpecialCharm {
		bonus := float64(float32(0.025))
		lo += bonus
		hi += bonus
	}
	// explicit conversions keep the compiler from fusing these into FMAs
	minLuck = 1 + lo/2
	maxLuck = 1 + hi/2 + float64(0.035*float64(s.MaxLuckLevel))
	return minLuck, maxLuck
}

// Fingerprint is a stable textual key for caching predictions.
func (s GameSettings) Fingerprint() string {
	return fmt.Sprintf("s%d:l%t:c%t:p%t:k%t:m%t:d%d:x%d",
		s.Seed, s.LegacyRNG, s.HasCaldera, s.PostPatch, s.CoconutUnlocked, s.SpecialCharm, s.DaysPlayed, s.MaxLuckLevel)
}

// levelSeed is the per-floor generation seed the game derives from the day and save seed.
func (s GameSettings) levelSeed(level int) int32 {
	lvlMod := level
	if s.PostPatch {
		lvlMod = level + 1
	}
	return rng.Mix(s.LegacyRNG,
		float64(s.DaysPlayed*uint32(lvlMod)),
		float64(level*5152),
		float64(s.Seed/2),
	)
}

// levelRNG is the generator the game seeds from levelSeed for both layout choice and floor setup.
func (s GameSettings) levelRNG(level int) *rng.DotnetRNG {
	return rng.New(rng.Mix(s.LegacyRNG, float64(s.levelSeed(level))))
}
