package volcano

import (
	"fmt"

	"github.com/xtding233/volcano-backend/internal/rng"
)

type itemInfo struct {
	name string
	icon string
}

// CommonItem is what a common chest holds.
type CommonItem uint8

const (
	CommonCinderShards CommonItem = iota
	CommonGoldenCoconut
	CommonTaroTuber
	CommonPineappleSeeds
	CommonProtectionRing
	CommonSoulSapperRing
	CommonDwarfSword
	CommonDwarfHammer
	CommonDwarfDagger
	numCommonItems
)

var commonCatalog = [numCommonItems]itemInfo{
	{"Cinder Shard (3)", "cinder_shard"},
	{"Golden Coconut", "golden_coconut"},
	{"Taro Tuber (8)", "taro_tuber"},
	{"Pineapple Seeds (5)", "pineapple_seeds"},
	{"Protection Ring", "protection_ring"},
	{"Soul Sapper Ring", "soul_sapper_ring"},
	{"Dwarf Sword", "dwarf_sword"},
	{"Dwarf Hammer", "dwarf_hammer"},
	{"Dwarf Dagger", "dwarf_dagger"},
}

func (c CommonItem) String() string {
	if c >= numCommonItems {
		return fmt.Sprintf("common(%d)", uint8(c))
	}
	return commonCatalog[c].name
}

// Icon is the sprite id of the item.
func (c CommonItem) Icon() string {
	if c >= numCommonItems {
		return ""
	}
	return commonCatalog[c].icon
}

// RareItem is what a rare chest holds.
type RareItem uint8

const (
	RareCinderShards RareItem = iota
	RareMermaidBoots
	RareDragonscaleBoots
	RareGoldenCoconuts
	RarePhoenixRing
	RareHotJavaRing
	RareDragontoothCutlass
	RareDragontoothClub
	RareDragontoothShiv
	RareDeluxePirateHat
	RareOstrichEgg
	numRareItems
)

var rareCatalog = [numRareItems]itemInfo{
	{"Cinder Shard (10)", "cinder_shard"},
	{"Mermaid Boots", "mermaid_boots"},
	{"Dragonscale Boots", "dragonscale_boots"},
	{"Golden Coconut (3)", "golden_coconut"},
	{"Phoenix Ring", "phoenix_ring"},
	{"Hot Java Ring", "hot_java_ring"},
	{"Dragontooth Cutlass", "dragontooth_cutlass"},
	{"Dragontooth Club", "dragontooth_club"},
	{"Dragontooth Shiv", "dragontooth_shiv"},
	{"Deluxe Pirate Hat", "deluxe_pirate_hat"},
	{"Ostrich Egg", "ostrich_egg"},
}

func (r RareItem) String() string {
	if r >= numRareItems {
		return fmt.Sprintf("rare(%d)", uint8(r))
	}
	return rareCatalog[r].name
}

// Icon is the sprite id of the item.
func (r RareItem) Icon() string {
	if r >= numRareItems {
		return ""
	}
	return rareCatalog[r].icon
}

// The golden coconut slot only drops once the player has cracked one.
const (
	commonCoconutIndex = 1
	rareCoconutIndex   = 3
)

// generateCommon picks a common chest item from the chest seed.
// The first draw is the rarity roll the caller already made from its own generator.
func generateCommon(seed int32, coconutUnlocked bool) CommonItem {
	r := rng.New(seed)
	r.Next()
	var idx int32
	for {
		idx = r.Intn(7)
		if idx == commonCoconutIndex && !coconutUnlocked {
			continue
		}
		break
	}
	if idx == 6 {
		return CommonDwarfSword + CommonItem(r.Intn(3))
	}
	return CommonItem(idx)
}

// generateRare picks a rare chest item from the chest seed.
func generateRare(seed int32, coconutUnlocked bool) RareItem {
	r := rng.New(seed)
	r.Next()
	var idx int32
	for {
		idx = r.Intn(9)
		if idx == rareCoconutIndex && !coconutUnlocked {
			continue
		}
		break
	}
	switch {
	case idx == 6:
		return RareDragontoothCutlass + RareItem(r.Intn(3))
	case idx > 6:
		// 7 and 8 sit after the three dragontooth weapons
		return RareItem(idx + 2)
	}
	return RareItem(idx)
}
