package volcano

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xtding233/volcano-backend/internal/mapdata"
)

func TestCalendarDate(t *testing.T) {
	tests := []struct {
		days uint32
		want string
	}{
		{1, "spring 1, Y1"},
		{5, "spring 5, Y1"},
		{28, "spring 28, Y1"},
		{29, "summer 1, Y1"},
		{112, "winter 28, Y1"},
		{113, "spring 1, Y2"},
		{0, ""},
	}
	for _, tt := range tests {
		if got := CalendarDate(tt.days); got != tt.want {
			t.Errorf("CalendarDate(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestDisplayLuck(t *testing.T) {
	if got := DisplayLuck(0.95); got < -0.1000001 || got > -0.0999999 {
		t.Errorf("DisplayLuck(0.95) = %v", got)
	}
	if got := DisplayLuck(1); got != 0 {
		t.Errorf("DisplayLuck(1) = %v", got)
	}
}

func TestClassifyLayout(t *testing.T) {
	tests := map[int]FloorKind{
		0: KindEntrance, 1: KindNormal, 29: KindNormal, 30: KindBottom, 31: KindRestStop,
		32: KindMushroom, 34: KindMushroom, 35: KindMonster, 37: KindMonster, 38: KindCaldera, 57: KindCaldera,
	}
	for id, want := range tests {
		if got := ClassifyLayout(id); got != want {
			t.Errorf("ClassifyLayout(%d) = %s, want %s", id, got, want)
		}
	}
}

func TestFloorNotes(t *testing.T) {
	var withButtons TileGrid
	withButtons[3][4] = mapdata.SwitchLocation
	var plain TileGrid

	tests := []struct {
		name   string
		level  int
		layout int
		grid   *TileGrid
		want   []string
	}{
		{"nothing special", 3, 12, &plain, nil},
		{"buttons", 3, 12, &withButtons, []string{"20% chance", "1 to 3"}},
		{"mushroom", 4, 33, &plain, []string{"Mushroom floor"}},
		{"monster with buttons", 6, 36, &withButtons, []string{"Monster floor", "choose 3 of"}},
		{"bottom floor ignores buttons", 9, 30, &withButtons, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FloorNotes(tt.level, tt.layout, tt.grid)
			if len(got) != len(tt.want) {
				t.Fatalf("notes = %q, want %d entries", got, len(tt.want))
			}
			for i, frag := range tt.want {
				if !strings.Contains(got[i], frag) {
					t.Errorf("note %d = %q, want it to contain %q", i, got[i], frag)
				}
			}
		})
	}
}

func TestWriteText(t *testing.T) {
	p, err := newTestEngine(t).Predict(s2)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, p); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, frag := range []string{
		"day: spring 3, Y1",
		"luck: -0.1000 to 0.8000",
		"floor 4: 29 [luck -0.1000 to 0.7929] / 35 (monster) [luck 0.7929 to 0.8000]",
		"Dragon Tooth (3)",
		"rare chest: Phoenix Ring",
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("output lacks %q:\n%s", frag, out)
		}
	}
	if strings.Contains(out, "floor 5:\n") {
		t.Errorf("empty floor 5 should be skipped in drops:\n%s", out)
	}
}
