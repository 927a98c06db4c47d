// Package mapdatatest builds a small, fully known set of map tables for tests.
//
// Every layout is open floor with the entrance at row 0 col 0 and the exit at row 63 col 63.
// All layouts except 31 carry a 3x3 set piece at cols 10-12 rows 20-22 and a 4x4 set piece at
// cols 40-43 rows 5-8. Layout 7 adds a malformed 5x5 block at cols/rows 30-34, which resolves
// to size class 4.
package mapdatatest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xtding233/volcano-backend/internal/mapdata"
)

// NumLayouts covers every id the layout enumerator can pick (0..57).
const NumLayouts = 58

// Layouts returns the raw layout table.
func Layouts() []byte {
	buf := make([]byte, NumLayouts*mapdata.LayoutBytes)
	for id := 0; id < NumLayouts; id++ {
		block := buf[id*mapdata.LayoutBytes : (id+1)*mapdata.LayoutBytes]
		set := func(row, col int, t mapdata.Tile) { block[row*mapdata.GridSize+col] = byte(t) }
		square := func(row, col, side int) {
			for r := row; r < row+side; r++ {
				for c := col; c < col+side; c++ {
					set(r, c, mapdata.SetPiece)
				}
			}
		}
		set(0, 0, mapdata.Enter)
		set(63, 63, mapdata.Exit)
		if id != 31 {
			square(20, 10, 3)
			square(5, 40, 4)
		}
		if id == 7 {
			square(30, 30, 5)
		}
	}
	return buf
}

// Sheets returns the per-size sheet dimensions.
func Sheets() map[int32]mapdata.SheetSize {
	return map[int32]mapdata.SheetSize{
		3:  {Rows: 2, Cols: 3},
		4:  {Rows: 1, Cols: 2},
		8:  {Rows: 1, Cols: 1},
		16: {Rows: 1, Cols: 1},
		32: {Rows: 1, Cols: 1},
	}
}

// Events returns the sheet events. Size 3 cells with an even row+col hold rng, tooth, chest and
// odd ones a lone chest; size 4 cell (0,0) holds tooth, tooth, rng and (0,1) is empty.
func Events() map[mapdata.EventKey][]mapdata.Feature {
	ev := make(map[mapdata.EventKey][]mapdata.Feature)
	for r := int32(0); r < 2; r++ {
		for c := int32(0); c < 3; c++ {
			k := mapdata.EventKey{Size: 3, Row: r, Col: c}
			if (r+c)%2 == 0 {
				ev[k] = []mapdata.Feature{mapdata.FeatureRng, mapdata.FeatureTooth, mapdata.FeatureChest}
			} else {
				ev[k] = []mapdata.Feature{mapdata.FeatureChest}
			}
		}
	}
	ev[mapdata.EventKey{Size: 4, Row: 0, Col: 0}] = []mapdata.Feature{mapdata.FeatureTooth, mapdata.FeatureTooth, mapdata.FeatureRng}
	return ev
}

// Tables returns validated fixture tables or fails the test.
func Tables(tb testing.TB) *mapdata.Tables {
	tb.Helper()
	t, err := mapdata.NewTables(Layouts(), Sheets(), Events())
	if err != nil {
		tb.Fatalf("fixture tables: %v", err)
	}
	return t
}

// WriteFiles writes layouts.bin and set_pieces.yaml into dir.
func WriteFiles(tb testing.TB, dir string) {
	tb.Helper()
	sp, err := mapdata.MarshalSetPieces(Sheets(), Events())
	if err != nil {
		tb.Fatalf("marshal set pieces: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "layouts.bin"), Layouts(), 0o644); err != nil {
		tb.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "set_pieces.yaml"), sp, 0o644); err != nil {
		tb.Fatal(err)
	}
}
