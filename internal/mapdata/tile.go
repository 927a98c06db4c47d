package mapdata

import (
	"fmt"
	"strings"
)

// Grid geometry shared by every layout.
const (
	GridSize    = 64
	LayoutBytes = GridSize * GridSize
)

// Tile is one cell kind of a volcano layout.
type Tile uint8

const (
	Floor Tile = iota
	Lava
	Wall
	Enter
	Exit
	SetPiece
	SwitchLocation
	MonsterSpawn
	numTiles
)

var tileNames = [...]string{
	Floor:          "floor",
	Lava:           "lava",
	Wall:           "wall",
	Enter:          "enter",
	Exit:           "exit",
	SetPiece:       "set_piece",
	SwitchLocation: "switch_location",
	MonsterSpawn:   "monster_spawn",
}

// Valid reports whether t is one of the eight known kinds.
func (t Tile) Valid() bool { return t < numTiles }

func (t Tile) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tile(%d)", uint8(t))
	}
	return tileNames[t]
}

// Feature is one event marker on a set-piece sheet cell.
type Feature uint8

const (
	FeatureRng Feature = iota
	FeatureTooth
	FeatureChest
)

func (f Feature) String() string {
	switch f {
	case FeatureRng:
		return "rng"
	case FeatureTooth:
		return "tooth"
	case FeatureChest:
		return "chest"
	}
	return fmt.Sprintf("feature(%d)", uint8(f))
}

// ParseFeature maps a table name (rng, tooth, chest) to its Feature.
func ParseFeature(s string) (Feature, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rng":
		return FeatureRng, nil
	case "tooth":
		return FeatureTooth, nil
	case "chest":
		return FeatureChest, nil
	}
	return 0, fmt.Errorf("unknown feature %q", s)
}

// SizeClasses lists the set-piece side lengths, largest first.
var SizeClasses = [...]int32{32, 16, 8, 4, 3}

// SheetSize is the row/column count of one size class's event sheet.
type SheetSize struct {
	Rows int32 `yaml:"rows" json:"rows"`
	Cols int32 `yaml:"cols" json:"cols"`
}

// EventKey addresses one cell of a size class's event sheet.
type EventKey struct {
	Size int32
	Row  int32
	Col  int32
}
