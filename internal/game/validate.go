package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig marks a merged profile that cannot produce settings.
var ErrInvalidConfig = errors.New("config validation failed")

// maxLuckLevel mirrors the engine's accepted bound.
const maxLuckLevel = 1000

// ValidateRaw checks semantic constraints of a merged RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// save.seed / save.days_played
	if cfg.Save.Seed == nil {
		errs = append(errs, "save.seed is required")
	}
	if cfg.Save.DaysPlayed == nil {
		errs = append(errs, "save.days_played is required")
	} else if *cfg.Save.DaysPlayed < 1 {
		errs = append(errs, "save.days_played must be >= 1")
	}

	// luck (optional)
	if cfg.Luck != nil && cfg.Luck.MaxLuckLevel != nil && *cfg.Luck.MaxLuckLevel > maxLuckLevel {
		errs = append(errs, fmt.Sprintf("luck.max_luck_level must be <= %d", maxLuckLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
