package volcano

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidSettings  = errors.New("invalid game settings")
	ErrInvalidLevel     = errors.New("invalid floor level")
	ErrInvalidLuckRange = errors.New("invalid luck range")
)

// maxLuckLevel bounds the luck buff level; real buffs stay in single digits.
const maxLuckLevel = 1000

// ValidateSettings checks the settings a prediction can be computed for.
func ValidateSettings(s GameSettings) error {
	var errs []string
	if s.DaysPlayed < 1 {
		errs = append(errs, "days_played must be >= 1")
	}
	if s.MaxLuckLevel > maxLuckLevel {
		errs = append(errs, fmt.Sprintf("max_luck_level must be <= %d", maxLuckLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(errs, "; "))
	}
	return nil
}

// validateLuckRange accepts finite, positive, non-inverted ranges.
func validateLuckRange(minLuck, maxLuck float64) error {
	for _, v := range []float64{minLuck, maxLuck} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: bounds must be finite and positive", ErrInvalidLuckRange)
		}
	}
	if minLuck > maxLuck {
		return fmt.Errorf("%w: min %v > max %v", ErrInvalidLuckRange, minLuck, maxLuck)
	}
	return nil
}

func validateLevel(level int) error {
	if level < 0 || level >= NumFloors {
		return fmt.Errorf("%w: %d (want 0..%d)", ErrInvalidLevel, level, NumFloors-1)
	}
	return nil
}
