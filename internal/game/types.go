// types.go
package game

// RawConfig is one settings profile as written in YAML. Nil fields inherit from the layer below.
type RawConfig struct {
	Version string      `yaml:"version"`
	Save    SaveConfig  `yaml:"save"`
	Luck    *LuckConfig `yaml:"luck,omitempty"`
	Notes   string      `yaml:"notes,omitempty"`
}

// SaveConfig holds the per-save values that drive generation.
type SaveConfig struct {
	Seed            *int32  `yaml:"seed"`
	DaysPlayed      *uint32 `yaml:"days_played"`
	LegacyRNG       *bool   `yaml:"legacy_rng,omitempty"`
	PostPatch       *bool   `yaml:"post_patch,omitempty"`
	HasCaldera      *bool   `yaml:"has_caldera,omitempty"`
	CoconutUnlocked *bool   `yaml:"coconut_unlocked,omitempty"`
}

// LuckConfig holds what widens the luck range.
type LuckConfig struct {
	MaxLuckLevel *uint32 `yaml:"max_luck_level"`
	SpecialCharm *bool   `yaml:"special_charm,omitempty"`
}
