// resolve.go
package game

import (
	"github.com/xtding233/volcano-backend/internal/volcano"
)

// Overrides carries per-request values (query parameters) applied on top of the merged profile.
type Overrides struct {
	Seed            *int32
	DaysPlayed      *uint32
	LegacyRNG       *bool
	PostPatch       *bool
	HasCaldera      *bool
	CoconutUnlocked *bool
	SpecialCharm    *bool
	MaxLuckLevel    *uint32
}

type Resolver interface {
	// Returns merged RawConfig and the settings the engine runs on
	Resolve(profile string, o Overrides) (RawConfig, volcano.GameSettings, error)
}

// Resolve merges default → profile → overrides, validates the result and converts it to settings.
func (l *Loader) Resolve(profile string, o Overrides) (RawConfig, volcano.GameSettings, error) {
	merged, err := l.LoadMerged(profile)
	if err != nil {
		return RawConfig{}, volcano.GameSettings{}, err
	}
	cfg := applyOverrides(merged, o)
	if err := ValidateRaw(cfg); err != nil {
		return cfg, volcano.GameSettings{}, err
	}
	return cfg, ToSettings(cfg), nil
}

func applyOverrides(cfg RawConfig, o Overrides) RawConfig {
	layer := RawConfig{
		Save: SaveConfig{
			Seed:            o.Seed,
			DaysPlayed:      o.DaysPlayed,
			LegacyRNG:       o.LegacyRNG,
			PostPatch:       o.PostPatch,
			HasCaldera:      o.HasCaldera,
			CoconutUnlocked: o.CoconutUnlocked,
		},
	}
	if o.MaxLuckLevel != nil || o.SpecialCharm != nil {
		layer.Luck = &LuckConfig{MaxLuckLevel: o.MaxLuckLevel, SpecialCharm: o.SpecialCharm}
	}
	return mergeRaw(cfg, layer)
}

// ToSettings flattens a merged config; unset flags are false and unset counters zero.
func ToSettings(cfg RawConfig) volcano.GameSettings {
	var s volcano.GameSettings
	if cfg.Save.Seed != nil {
		s.Seed = *cfg.Save.Seed
	}
	if cfg.Save.DaysPlayed != nil {
		s.DaysPlayed = *cfg.Save.DaysPlayed
	}
	s.LegacyRNG = flag(cfg.Save.LegacyRNG)
	s.PostPatch = flag(cfg.Save.PostPatch)
	s.HasCaldera = flag(cfg.Save.HasCaldera)
	s.CoconutUnlocked = flag(cfg.Save.CoconutUnlocked)
	if cfg.Luck != nil {
		if cfg.Luck.MaxLuckLevel != nil {
			s.MaxLuckLevel = *cfg.Luck.MaxLuckLevel
		}
		s.SpecialCharm = flag(cfg.Luck.SpecialCharm)
	}
	return s
}

func flag(b *bool) bool { return b != nil && *b }
