package volcano

import (
	"fmt"

	"github.com/xtding233/volcano-backend/internal/logger"
	"github.com/xtding233/volcano-backend/internal/mapdata"
	"github.com/xtding233/volcano-backend/internal/rng"
)

var (
	// decorationChance is the game's float 0.3 literal compared against a double draw.
	decorationChance = float64(float32(0.3))
	toothChance      = 0.5
)

// floorSim replays the generation of one floor. It owns its generator.
type floorSim struct {
	tables   *mapdata.Tables
	rng      *rng.DotnetRNG
	settings GameSettings
	level    int
	layout   int
	flipped  bool
	grid     TileGrid
	pieces   []SetPiece
	minLuck  float64
	maxLuck  float64
}

func newFloorSim(t *mapdata.Tables, s GameSettings, level, layout int, minLuck, maxLuck float64) (*floorSim, error) {
	if err := validateLevel(level); err != nil {
		return nil, err
	}
	r := s.levelRNG(level)
	r.Next()
	flip := r.Intn(2) == 1 && !noFlipLayout(layout)
	grid, err := DecodeTilemap(t, layout, flip)
	if err != nil {
		return nil, err
	}
	return &floorSim{
		tables:   t,
		rng:      r,
		settings: s,
		level:    level,
		layout:   layout,
		flipped:  flip,
		grid:     grid,
		minLuck:  minLuck,
		maxLuck:  maxLuck,
	}, nil
}

// run performs every draw the game makes while building the floor and returns its drops.
func (f *floorSim) run() ([]lootEntry, error) {
	if err := f.decorate(); err != nil {
		return nil, err
	}
	f.pieces = findSetPieces(&f.grid)
	paintSetPieces(&f.grid, f.pieces)
	malformed := warnMalformed(f.layout, f.pieces)

	var loot []lootEntry
	for _, p := range f.pieces {
		sheet, ok := f.tables.Sheet(p.Size)
		if !ok {
			return nil, fmt.Errorf("%w: no sheet for size %d", mapdata.ErrMalformedTables, p.Size)
		}
		col := f.rng.Intn(sheet.Cols)
		row := f.rng.Intn(sheet.Rows)
		if malformed {
			logger.Debug("set piece sheet cell", "layout", f.layout, "x", p.X, "y", p.Y, "size", p.Size, "row", row, "col", col)
		}
		for _, ev := range f.tables.Events(p.Size, row, col) {
			switch ev {
			case mapdata.FeatureRng:
				f.rng.Next()
			case mapdata.FeatureTooth:
				hit, err := rng.Draw(toothChance, f.rng)
				if err != nil {
					return nil, err
				}
				if hit {
					loot = append(loot, resolved(ToothGoodie()))
				}
			case mapdata.FeatureChest:
				loot = append(loot, rollChest(f.rng, f.settings, f.level, f.minLuck, f.maxLuck))
			}
		}
	}
	return loot, nil
}

// decorate mirrors the per-tile floor decoration pass; only the draws matter.
func (f *floorSim) decorate() error {
	for i := 0; i < mapdata.LayoutBytes; i++ {
		hit, err := rng.Draw(decorationChance, f.rng)
		if err != nil {
			return err
		}
		if hit {
			f.rng.Skip(2)
		}
	}
	return nil
}
