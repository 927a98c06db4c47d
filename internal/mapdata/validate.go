package mapdata

import (
	"fmt"
	"strings"
)

// ValidateTables checks the tables against what the floor simulator assumes.
// Every problem is collected; the returned error wraps ErrMalformedTables.
func ValidateTables(t *Tables) error {
	var errs []string

	if len(t.layouts) == 0 || len(t.layouts)%LayoutBytes != 0 {
		errs = append(errs, fmt.Sprintf("layout table length %d is not a non-zero multiple of %d", len(t.layouts), LayoutBytes))
	} else {
		for id := 0; id < t.NumLayouts(); id++ {
			errs = append(errs, validateLayout(id, t.layouts[id*LayoutBytes:(id+1)*LayoutBytes])...)
		}
	}

	for _, size := range SizeClasses {
		s, ok := t.sheets[size]
		if !ok {
			errs = append(errs, fmt.Sprintf("sizes: missing size class %d", size))
			continue
		}
		if s.Rows <= 0 || s.Cols <= 0 {
			errs = append(errs, fmt.Sprintf("sizes[%d]: rows and cols must be >= 1", size))
		}
	}

	for k := range t.events {
		s, ok := t.sheets[k.Size]
		if !ok {
			errs = append(errs, fmt.Sprintf("events: size %d has no sheet", k.Size))
			continue
		}
		if k.Row < 0 || k.Row >= s.Rows || k.Col < 0 || k.Col >= s.Cols {
			errs = append(errs, fmt.Sprintf("events: (%d,%d,%d) is outside the %dx%d sheet", k.Size, k.Row, k.Col, s.Rows, s.Cols))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrMalformedTables, strings.Join(errs, "; "))
	}
	return nil
}

func validateLayout(id int, block []byte) []string {
	var errs []string
	var hasEnter, hasExit bool
	for i, b := range block {
		tile := Tile(b)
		if !tile.Valid() {
			errs = append(errs, fmt.Sprintf("layout %d: unknown tile %d at row %d col %d", id, b, i/GridSize, i%GridSize))
			break
		}
		switch tile {
		case Enter:
			hasEnter = true
		case Exit:
			hasExit = true
		}
	}
	if !hasEnter {
		errs = append(errs, fmt.Sprintf("layout %d: no entrance", id))
	}
	if !hasExit && id != TerminalLayout {
		errs = append(errs, fmt.Sprintf("layout %d: no exit", id))
	}
	return errs
}
