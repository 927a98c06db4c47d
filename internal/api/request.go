package api

import (
	"fmt"

	"github.com/xtding233/volcano-backend/internal/game"
	"github.com/xtding233/volcano-backend/internal/volcano"
)

// settingsRequest is the JSON form of a profile plus overrides, shared by websocket and gRPC callers.
type settingsRequest struct {
	Profile         string  `json:"profile"`
	Seed            *int32  `json:"seed"`
	DaysPlayed      *uint32 `json:"days_played"`
	LegacyRNG       *bool   `json:"legacy_rng"`
	PostPatch       *bool   `json:"post_patch"`
	HasCaldera      *bool   `json:"has_caldera"`
	CoconutUnlocked *bool   `json:"coconut_unlocked"`
	SpecialCharm    *bool   `json:"special_charm"`
	MaxLuckLevel    *uint32 `json:"max_luck_level"`
}

func (r settingsRequest) overrides() game.Overrides {
	return game.Overrides{
		Seed:            r.Seed,
		DaysPlayed:      r.DaysPlayed,
		LegacyRNG:       r.LegacyRNG,
		PostPatch:       r.PostPatch,
		HasCaldera:      r.HasCaldera,
		CoconutUnlocked: r.CoconutUnlocked,
		SpecialCharm:    r.SpecialCharm,
		MaxLuckLevel:    r.MaxLuckLevel,
	}
}

// floorRequest selects one floor; the luck bounds are both set or both absent.
type floorRequest struct {
	settingsRequest
	Level   *int     `json:"level"`
	Layout  *int     `json:"layout"`
	MinLuck *float64 `json:"min_luck"`
	MaxLuck *float64 `json:"max_luck"`
}

func (r floorRequest) luckRange() (*volcano.LuckRange, error) {
	switch {
	case r.MinLuck == nil && r.MaxLuck == nil:
		return nil, nil
	case r.MinLuck == nil || r.MaxLuck == nil:
		return nil, fmt.Errorf("%w: min_luck and max_luck go together", errBadRequest)
	}
	return &volcano.LuckRange{Min: *r.MinLuck, Max: *r.MaxLuck}, nil
}

func (r floorRequest) target() (level, layout int, err error) {
	if r.Level == nil || r.Layout == nil {
		return 0, 0, fmt.Errorf("%w: level and layout are required", errBadRequest)
	}
	return *r.Level, *r.Layout, nil
}

// floorResponse adds the rendered tile rows to a floor view.
type floorResponse struct {
	*volcano.FloorView
	Tiles []string `json:"tiles"`
}

func newFloorResponse(v *volcano.FloorView) floorResponse {
	return floorResponse{FloorView: v, Tiles: v.Tiles.Rows()}
}
