package volcano

import (
	"encoding/json"
	"testing"

	"github.com/xtding233/volcano-backend/internal/rng"
)

func TestGenerateItemsReference(t *testing.T) {
	commonLocked := []CommonItem{5, 0, 2, 4, 7, 4, 4, 7, 2, 3}
	commonOpen := []CommonItem{5, 0, 2, 4, 7, 1, 4, 7, 1, 3}
	rareLocked := []RareItem{9, 0, 1, 8, 10, 2, 5, 9, 1, 4}
	rareOpen := []RareItem{9, 0, 3, 8, 10, 2, 5, 9, 1, 4}
	for seed := int32(0); seed < 10; seed++ {
		if got := generateCommon(seed, false); got != commonLocked[seed] {
			t.Errorf("generateCommon(%d, locked) = %v, want %v", seed, got, commonLocked[seed])
		}
		if got := generateCommon(seed, true); got != commonOpen[seed] {
			t.Errorf("generateCommon(%d, unlocked) = %v, want %v", seed, got, commonOpen[seed])
		}
		if got := generateRare(seed, false); got != rareLocked[seed] {
			t.Errorf("generateRare(%d, locked) = %v, want %v", seed, got, rareLocked[seed])
		}
		if got := generateRare(seed, true); got != rareOpen[seed] {
			t.Errorf("generateRare(%d, unlocked) = %v, want %v", seed, got, rareOpen[seed])
		}
	}
}

func TestCoconutNeverDropsWhileLocked(t *testing.T) {
	var commonSeen [numCommonItems]int
	var rareSeen [numRareItems]int
	for i := int32(0); i < 5000; i++ {
		seed := rng.Mix(false, float64(i))
		commonSeen[generateCommon(seed, false)]++
		rareSeen[generateRare(seed, false)]++
	}
	if commonSeen[CommonGoldenCoconut] != 0 {
		t.Errorf("locked common chest dropped a golden coconut %d times", commonSeen[CommonGoldenCoconut])
	}
	if rareSeen[RareGoldenCoconuts] != 0 {
		t.Errorf("locked rare chest dropped golden coconuts %d times", rareSeen[RareGoldenCoconuts])
	}
	for i, n := range commonSeen {
		if CommonItem(i) != CommonGoldenCoconut && n == 0 {
			t.Errorf("common item %v never dropped", CommonItem(i))
		}
	}
	for i, n := range rareSeen {
		if RareItem(i) != RareGoldenCoconuts && n == 0 {
			t.Errorf("rare item %v never dropped", RareItem(i))
		}
	}
}

func TestItemNames(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{CommonCinderShards.String(), "Cinder Shard (3)"},
		{CommonDwarfDagger.String(), "Dwarf Dagger"},
		{RareCinderShards.String(), "Cinder Shard (10)"},
		{RareGoldenCoconuts.String(), "Golden Coconut (3)"},
		{RareOstrichEgg.Icon(), "ostrich_egg"},
		{RareGoldenCoconuts.Icon(), "golden_coconut"},
		{ToothGoodie().String(), "Dragon Tooth"},
		{RareGoodie(RarePhoenixRing).String(), "rare chest: Phoenix Ring"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}

func TestGoodieJSON(t *testing.T) {
	for _, g := range []Goodie{ToothGoodie(), CommonGoodie(CommonTaroTuber), RareGoodie(RareCinderShards), CommonGoodie(CommonCinderShards)} {
		raw, err := json.Marshal(g)
		if err != nil {
			t.Fatal(err)
		}
		var back Goodie
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if back != g {
			t.Errorf("round trip %s: got %v, want %v", raw, back, g)
		}
	}
	var g Goodie
	if err := json.Unmarshal([]byte(`{"kind":"rare_chest","item":"Golden Coconut"}`), &g); err == nil {
		t.Error("common-only name accepted for a rare chest")
	}
	if err := json.Unmarshal([]byte(`{"kind":"chance_chest"}`), &g); err == nil {
		t.Error("unknown kind accepted")
	}
}
