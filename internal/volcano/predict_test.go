package volcano

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/xtding233/volcano-backend/internal/logger"
	"github.com/xtding233/volcano-backend/internal/mapdata"
)

func TestPredictPlainSave(t *testing.T) {
	p, err := newTestEngine(t).Predict(s1)
	if err != nil {
		t.Fatal(err)
	}
	if p.MinLuck != 0.95 || p.MaxLuck != 1.05 {
		t.Fatalf("domain [%v, %v], want [0.95, 1.05]", p.MinLuck, p.MaxLuck)
	}
	if p.Date != "spring 5, Y1" {
		t.Errorf("Date = %q", p.Date)
	}

	wantLayouts := []int{0, 6, 11, 6, 26, 31, 27, 26, 19, 30}
	wantLoot := [][]Goodie{
		{tooth(), common(CommonCinderShards), tooth()},
		{common(CommonTaroTuber)},
		{tooth(), common(CommonTaroTuber)},
		{common(CommonPineappleSeeds)},
		{tooth(), common(CommonCinderShards)},
		{},
		{tooth(), common(CommonProtectionRing)},
		{common(CommonDwarfSword)},
		{tooth(), common(CommonTaroTuber)},
		{common(CommonPineappleSeeds)},
	}
	for i, f := range p.Floors {
		if len(f.Layouts) != 1 || f.Layouts[0].Value != wantLayouts[i] {
			t.Errorf("floor %d layouts = %+v, want single %d", i, f.Layouts, wantLayouts[i])
		}
		checkPartition(t, "layouts", f.Layouts, 0.95, 1.05)
		checkLoot(t, i, f.Loot, []lootWant{{0.95, 1.05, wantLoot[i]}})
	}
}

func TestPredictSplitsLuck(t *testing.T) {
	p, err := newTestEngine(t).Predict(s2)
	if err != nil {
		t.Fatal(err)
	}
	const lo, hi = 0.95, 1.4000000000000001
	if p.MinLuck != lo || p.MaxLuck != hi {
		t.Fatalf("domain [%v, %v]", p.MinLuck, p.MaxLuck)
	}

	layoutCases := map[int][]Interval[int]{
		4: {{lo, 1.39646016219466, 29}, {1.3964601621946602, hi, 35}},
		6: {{lo, 1.2182670502077169, 13}, {1.218267050207717, 1.39646016219466, 16}, {1.3964601621946602, hi, 13}},
		7: {{lo, 1.39646016219466, 12}, {1.3964601621946602, hi, 11}},
		8: {{lo, 1.39646016219466, 7}, {1.3964601621946602, hi, 6}},
	}
	single := []int{0, 10, 21, 6, -1, 31, -1, -1, -1, 30}
	for i, f := range p.Floors {
		want, ok := layoutCases[i]
		if !ok {
			want = []Interval[int]{{lo, hi, single[i]}}
		}
		if len(f.Layouts) != len(want) {
			t.Fatalf("floor %d layouts = %+v, want %+v", i, f.Layouts, want)
		}
		for j := range want {
			if f.Layouts[j] != want[j] {
				t.Errorf("floor %d layout %d = %+v, want %+v", i, j, f.Layouts[j], want[j])
			}
		}
	}

	checkLoot(t, 0, p.Floors[0].Loot, []lootWant{{lo, hi, []Goodie{common(CommonPineappleSeeds)}}})
	checkLoot(t, 1, p.Floors[1].Loot, []lootWant{{lo, hi, []Goodie{tooth(), common(CommonDwarfDagger)}}})
	checkLoot(t, 2, p.Floors[2].Loot, []lootWant{
		{lo, 1.3522108651940763, []Goodie{common(CommonPineappleSeeds)}},
		{1.3522108651940765, hi, []Goodie{rare(RarePhoenixRing)}},
	})
	checkLoot(t, 3, p.Floors[3].Loot, []lootWant{
		{lo, 1.1509213081798149, []Goodie{tooth(), common(CommonCinderShards)}},
		{1.150921308179815, hi, []Goodie{tooth(), rare(RareCinderShards)}},
	})
	checkLoot(t, 4, p.Floors[4].Loot, []lootWant{{lo, hi, []Goodie{common(CommonDwarfDagger), tooth()}}})
	checkLoot(t, 5, p.Floors[5].Loot, []lootWant{{lo, hi, []Goodie{}}})
	checkLoot(t, 6, p.Floors[6].Loot, []lootWant{{lo, hi, []Goodie{common(CommonTaroTuber)}}})
	checkLoot(t, 7, p.Floors[7].Loot, []lootWant{{lo, hi, []Goodie{tooth(), common(CommonPineappleSeeds)}}})
	checkLoot(t, 8, p.Floors[8].Loot, []lootWant{
		{lo, 0.995787015788158, []Goodie{common(CommonPineappleSeeds), tooth(), tooth()}},
		{0.9957870157881581, 1.39646016219466, []Goodie{rare(RarePhoenixRing), tooth(), tooth()}},
		{1.3964601621946602, hi, []Goodie{rare(RarePhoenixRing), tooth()}},
	})
	checkLoot(t, 9, p.Floors[9].Loot, []lootWant{
		{lo, 1.0593496042114448, []Goodie{tooth(), tooth(), tooth(), common(CommonTaroTuber)}},
		{1.059349604211445, hi, []Goodie{tooth(), tooth(), tooth(), rare(RarePhoenixRing)}},
	})
}

func TestPredictionPartitionsAndIdempotence(t *testing.T) {
	e := newTestEngine(t)
	for seed := int32(0); seed < 12; seed++ {
		for _, base := range []GameSettings{
			{DaysPlayed: 1},
			{DaysPlayed: 7, MaxLuckLevel: 10, PostPatch: true, HasCaldera: true},
			{DaysPlayed: 30, MaxLuckLevel: 4, LegacyRNG: true, SpecialCharm: true},
		} {
			s := base
			s.Seed = seed
			p, err := e.Predict(s)
			if err != nil {
				t.Fatalf("%s: %v", s.Fingerprint(), err)
			}
			for _, f := range p.Floors {
				checkPartition(t, s.Fingerprint()+" layouts", f.Layouts, p.MinLuck, p.MaxLuck)
				checkPartition(t, s.Fingerprint()+" loot", f.Loot, p.MinLuck, p.MaxLuck)

				if again := MergeAdjacent(f.Layouts, equalInts); len(again) != len(f.Layouts) {
					t.Errorf("%s floor %d: layouts not fully merged", s.Fingerprint(), f.Level)
				}
				if again := MergeAdjacent(f.Loot, equalGoodies); len(again) != len(f.Loot) {
					t.Errorf("%s floor %d: loot not fully merged", s.Fingerprint(), f.Level)
				}
			}
			if got := p.Floors[0].Layouts; len(got) != 1 || got[0].Value != 0 {
				t.Errorf("%s: floor 0 = %+v", s.Fingerprint(), got)
			}
			if got := p.Floors[5].Layouts; len(got) != 1 || got[0].Value != 31 {
				t.Errorf("%s: floor 5 = %+v", s.Fingerprint(), got)
			}
			if got := p.Floors[9].Layouts; len(got) != 1 || got[0].Value != 30 {
				t.Errorf("%s: floor 9 = %+v", s.Fingerprint(), got)
			}
		}
	}
}

func TestPredictRejectsBadSettings(t *testing.T) {
	_, err := newTestEngine(t).Predict(GameSettings{Seed: 1})
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("err = %v, want ErrInvalidSettings", err)
	}
}

func TestPredictionJSON(t *testing.T) {
	p, err := newTestEngine(t).Predict(s2)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(raw, []byte(`"item":"Phoenix Ring"`)) {
		t.Errorf("JSON lacks item names: %s", raw)
	}
	var back Prediction
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	for i := range p.Floors {
		if len(back.Floors[i].Loot) != len(p.Floors[i].Loot) {
			t.Fatalf("floor %d loot lost in round trip", i)
		}
		for j, iv := range p.Floors[i].Loot {
			b := back.Floors[i].Loot[j]
			if b.Min != iv.Min || b.Max != iv.Max || !equalGoodies(b.Value, iv.Value) {
				t.Errorf("floor %d interval %d: %+v != %+v", i, j, b, iv)
			}
		}
	}
}

func TestSimulateFloor(t *testing.T) {
	e := newTestEngine(t)

	v, err := e.SimulateFloor(s2, 2, 21, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Flipped {
		t.Error("level 2 should be mirrored")
	}
	wantPieces := []SetPiece{{X: 20, Y: 5, Size: 4, Measured: 4}, {X: 51, Y: 20, Size: 3, Measured: 3}}
	if len(v.Pieces) != len(wantPieces) || v.Pieces[0] != wantPieces[0] || v.Pieces[1] != wantPieces[1] {
		t.Errorf("pieces = %+v, want %+v", v.Pieces, wantPieces)
	}
	checkLoot(t, 2, v.Loot, []lootWant{
		{0.95, 1.3522108651940763, []Goodie{common(CommonPineappleSeeds)}},
		{1.3522108651940765, 1.4000000000000001, []Goodie{rare(RarePhoenixRing)}},
	})
	if v.Tiles.At(20, 5) != mapdata.SetPiece || v.Tiles.At(10, 20) != mapdata.Floor {
		t.Error("mirrored set pieces not painted back")
	}

	// a narrower range entirely above the chest threshold resolves to the rare item alone
	v, err = e.SimulateFloor(s2, 2, 21, &LuckRange{Min: 1.36, Max: 1.37})
	if err != nil {
		t.Fatal(err)
	}
	checkLoot(t, 2, v.Loot, []lootWant{{1.36, 1.37, []Goodie{rare(RarePhoenixRing)}}})

	v, err = e.SimulateFloor(s2, 4, 35, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Flipped || v.Kind != KindMonster {
		t.Errorf("flipped=%v kind=%v", v.Flipped, v.Kind)
	}
	if len(v.Notes) != 1 || !strings.HasPrefix(v.Notes[0], "Monster floor") {
		t.Errorf("notes = %q", v.Notes)
	}
	checkLoot(t, 4, v.Loot, []lootWant{{0.95, 1.4000000000000001, []Goodie{common(CommonDwarfDagger), tooth()}}})
}

func TestSimulateFloorMalformedPiece(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf, "text", "DEBUG")
	defer logger.SetOutput(&bytes.Buffer{}, "text", "ERROR")

	v, err := newTestEngine(t).SimulateFloor(s1, 7, 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []SetPiece{
		{X: 20, Y: 5, Size: 4, Measured: 4},
		{X: 29, Y: 30, Size: 4, Measured: 5},
		{X: 51, Y: 20, Size: 3, Measured: 3},
	}
	if len(v.Pieces) != len(want) {
		t.Fatalf("pieces = %+v", v.Pieces)
	}
	for i := range want {
		if v.Pieces[i] != want[i] {
			t.Errorf("piece %d = %+v, want %+v", i, v.Pieces[i], want[i])
		}
	}
	checkLoot(t, 7, v.Loot, []lootWant{{0.95, 1.05, []Goodie{common(CommonTaroTuber)}}})

	// measured 5x5 is cleared, the 4x4 class footprint painted back
	if v.Tiles.At(29, 30) != mapdata.SetPiece || v.Tiles.At(32, 33) != mapdata.SetPiece {
		t.Error("class footprint not painted")
	}
	if v.Tiles.At(33, 34) != mapdata.Floor || v.Tiles.At(33, 30) != mapdata.Floor {
		t.Error("measured footprint not cleared")
	}

	out := buf.String()
	if !strings.Contains(out, "malformed set piece") || !strings.Contains(out, "size=5") {
		t.Errorf("missing warning: %s", out)
	}
	if !strings.Contains(out, "set piece sheet cell") {
		t.Errorf("missing debug trace: %s", out)
	}
}

func TestSimulateFloorErrors(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.SimulateFloor(s1, 10, 1, nil); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("level 10: %v", err)
	}
	if _, err := e.SimulateFloor(s1, 3, 99, nil); !errors.Is(err, mapdata.ErrUnknownLayout) {
		t.Errorf("layout 99: %v", err)
	}
	if _, err := e.SimulateFloor(s1, 3, 1, &LuckRange{Min: 1.1, Max: 1.0}); !errors.Is(err, ErrInvalidLuckRange) {
		t.Errorf("inverted range: %v", err)
	}
	if _, err := e.SimulateFloor(s1, 3, 1, &LuckRange{Min: 0, Max: 1.0}); !errors.Is(err, ErrInvalidLuckRange) {
		t.Errorf("zero luck: %v", err)
	}
}
