package volcano

import (
	"github.com/xtding233/volcano-backend/internal/logger"
	"github.com/xtding233/volcano-backend/internal/mapdata"
)

// Engine runs predictions against one immutable set of map tables.
type Engine struct {
	tables *mapdata.Tables
}

// NewEngine binds an engine to tables.
func NewEngine(t *mapdata.Tables) *Engine {
	return &Engine{tables: t}
}

// Tables returns the tables the engine reads.
func (e *Engine) Tables() *mapdata.Tables { return e.tables }

// FloorPrediction is everything that can happen on one floor across the luck domain.
type FloorPrediction struct {
	Level   int                  `json:"level"`
	Layouts []Interval[int]      `json:"layouts"`
	Loot    []Interval[[]Goodie] `json:"loot"`
}

// Prediction covers all floors of one day.
type Prediction struct {
	Settings     GameSettings               `json:"settings"`
	MinLuck      float64                    `json:"min_luck"`
	MaxLuck      float64                    `json:"max_luck"`
	Date         string                     `json:"date"`
	TableVersion string                     `json:"table_version"`
	Floors       [NumFloors]FloorPrediction `json:"floors"`
}

// Predict enumerates every layout sequence of the day, simulates each floor on each luck range
// and merges the results per floor.
func (e *Engine) Predict(s GameSettings) (*Prediction, error) {
	if err := ValidateSettings(s); err != nil {
		return nil, err
	}
	lo, hi := s.LuckDomain()
	p := &Prediction{
		Settings:     s,
		MinLuck:      lo,
		MaxLuck:      hi,
		Date:         CalendarDate(s.DaysPlayed),
		TableVersion: e.tables.Version(),
	}
	for i := range p.Floors {
		p.Floors[i].Level = i
	}

	sequences := EnumerateLayouts(s)
	for _, seq := range sequences {
		for level, layout := range seq.Value {
			fp := &p.Floors[level]
			fp.Layouts = appendMerged(fp.Layouts, Interval[int]{Min: seq.Min, Max: seq.Max, Value: layout}, equalInts)

			sim, err := newFloorSim(e.tables, s, level, layout, seq.Min, seq.Max)
			if err != nil {
				return nil, err
			}
			loot, err := sim.run()
			if err != nil {
				return nil, err
			}
			fp.Loot = resolveLoot(seq.Min, seq.Max, loot, fp.Loot)
		}
	}
	logger.Debug("prediction computed", "fingerprint", s.Fingerprint(), "sequences", len(sequences))
	return p, nil
}

// LuckRange restricts a single-floor simulation.
type LuckRange struct {
	Min float64 `json:"min_luck"`
	Max float64 `json:"max_luck"`
}

// FloorView is one simulated floor: the final tile grid, its set pieces and drops, and notes.
type FloorView struct {
	Level   int                  `json:"level"`
	Layout  int                  `json:"layout"`
	Kind    FloorKind            `json:"kind"`
	Flipped bool                 `json:"flipped"`
	Tiles   TileGrid             `json:"-"`
	Pieces  []SetPiece           `json:"set_pieces"`
	Loot    []Interval[[]Goodie] `json:"loot"`
	Notes   []string             `json:"notes,omitempty"`
}

// SimulateFloor builds one floor with the given layout. A nil luck uses the settings' full domain.
func (e *Engine) SimulateFloor(s GameSettings, level, layout int, luck *LuckRange) (*FloorView, error) {
	if err := ValidateSettings(s); err != nil {
		return nil, err
	}
	if err := validateLevel(level); err != nil {
		return nil, err
	}
	lo, hi := s.LuckDomain()
	if luck != nil {
		if err := validateLuckRange(luck.Min, luck.Max); err != nil {
			return nil, err
		}
		lo, hi = luck.Min, luck.Max
	}

	sim, err := newFloorSim(e.tables, s, level, layout, lo, hi)
	if err != nil {
		return nil, err
	}
	loot, err := sim.run()
	if err != nil {
		return nil, err
	}
	return &FloorView{
		Level:   level,
		Layout:  layout,
		Kind:    ClassifyLayout(layout),
		Flipped: sim.flipped,
		Tiles:   sim.grid,
		Pieces:  sim.pieces,
		Loot:    resolveLoot(lo, hi, loot, nil),
		Notes:   FloorNotes(level, layout, &sim.grid),
	}, nil
}
