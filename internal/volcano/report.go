package volcano

import (
	"fmt"
	"io"
	"strings"

	"github.com/xtding233/volcano-backend/internal/mapdata"
)

// FloorKind classifies a layout id.
type FloorKind string

const (
	KindEntrance FloorKind = "entrance"
	KindNormal   FloorKind = "normal"
	KindRestStop FloorKind = "rest_stop"
	KindBottom   FloorKind = "bottom"
	KindMushroom FloorKind = "mushroom"
	KindMonster  FloorKind = "monster"
	KindCaldera  FloorKind = "caldera"
)

func IsMushroomFloor(layout int) bool { return layout >= 32 && layout <= 34 }
func IsMonsterFloor(layout int) bool  { return layout >= 35 && layout <= 37 }

func ClassifyLayout(layout int) FloorKind {
	switch {
	case layout == entranceLayout:
		return KindEntrance
	case layout == restStopLayout:
		return KindRestStop
	case layout == bottomLayout:
		return KindBottom
	case IsMushroomFloor(layout):
		return KindMushroom
	case IsMonsterFloor(layout):
		return KindMonster
	case layout >= firstCalderaLayout && layout <= lastCalderaLayout:
		return KindCaldera
	}
	return KindNormal
}

// DisplayLuck converts a luck multiplier (1 + daily luck/2 + buffs) to the daily-luck scale players know.
func DisplayLuck(luck float64) float64 {
	return (luck - 1) * 2
}

var seasons = [...]string{"spring", "summer", "fall", "winter"}

// CalendarDate renders days played as "<season> <day>, Y<year>". Day 1 is spring 1, Y1.
func CalendarDate(daysPlayed uint32) string {
	if daysPlayed == 0 {
		return ""
	}
	totalSeasons := (daysPlayed - 1) / 28
	year := totalSeasons/4 + 1
	day := (daysPlayed-1)%28 + 1
	return fmt.Sprintf("%s %d, Y%d", seasons[totalSeasons%4], day, year)
}

// FloorNotes explains what the game adds to a floor beyond the layout itself.
func FloorNotes(level, layout int, grid *TileGrid) []string {
	var notes []string
	monster := IsMonsterFloor(layout)
	if IsMushroomFloor(layout) {
		notes = append(notes, "Mushroom floor: there's lots of Magma Caps and False Magma Caps here.")
	}
	if monster {
		notes = append(notes, "Monster floor: there's lots of enemies and a guaranteed dwarf gate around the exit here.")
	}
	if level == NumFloors-1 || grid.Count(mapdata.SwitchLocation) == 0 {
		return notes
	}
	if !monster {
		notes = append(notes, "This floor has a 20% chance of generating a dwarf gate around the exit.")
	}
	buttons := "1 to 3"
	if monster {
		buttons = "3"
	}
	notes = append(notes, fmt.Sprintf("When a dwarf gate generates, it'll randomly choose %s of the possible button positions and generate buttons there.", buttons))
	return notes
}

// WriteText prints a prediction for a terminal: the date, each floor's layouts, then each floor's drops.
func WriteText(w io.Writer, p *Prediction) error {
	var b strings.Builder
	fmt.Fprintf(&b, "day: %s\n", p.Date)
	fmt.Fprintf(&b, "luck: %.4f to %.4f\n\n", DisplayLuck(p.MinLuck), DisplayLuck(p.MaxLuck))

	b.WriteString("layouts:\n")
	for _, f := range p.Floors {
		parts := make([]string, len(f.Layouts))
		for i, iv := range f.Layouts {
			name := fmt.Sprintf("%d", iv.Value)
			if k := ClassifyLayout(iv.Value); k == KindMushroom || k == KindMonster || k == KindCaldera {
				name += " (" + string(k) + ")"
			}
			if len(f.Layouts) > 1 {
				name = fmt.Sprintf("%s [luck %.4f to %.4f]", name, DisplayLuck(iv.Min), DisplayLuck(iv.Max))
			}
			parts[i] = name
		}
		fmt.Fprintf(&b, "  floor %d: %s\n", f.Level, strings.Join(parts, " / "))
	}

	b.WriteString("\ndrops:\n")
	for _, f := range p.Floors {
		if allEmpty(f.Loot) {
			continue
		}
		fmt.Fprintf(&b, "  floor %d:\n", f.Level)
		for _, iv := range f.Loot {
			indent := "    "
			if len(f.Loot) > 1 {
				fmt.Fprintf(&b, "    luck %.4f to %.4f:\n", DisplayLuck(iv.Min), DisplayLuck(iv.Max))
				indent = "      "
			}
			for _, line := range lootLines(iv.Value) {
				b.WriteString(indent + line + "\n")
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func allEmpty(loot []Interval[[]Goodie]) bool {
	for _, iv := range loot {
		if len(iv.Value) > 0 {
			return false
		}
	}
	return true
}

// lootLines groups dragon teeth into one line and lists chests in drop order.
func lootLines(goodies []Goodie) []string {
	if len(goodies) == 0 {
		return []string{"[nothing]"}
	}
	var lines []string
	teeth := 0
	for _, g := range goodies {
		if g.Kind == DragonTooth {
			teeth++
		}
	}
	switch {
	case teeth > 1:
		lines = append(lines, fmt.Sprintf("Dragon Tooth (%d)", teeth))
	case teeth == 1:
		lines = append(lines, "Dragon Tooth")
	}
	for _, g := range goodies {
		if g.Kind != DragonTooth {
			lines = append(lines, g.String())
		}
	}
	return lines
}
