package volcano

import (
	"encoding/json"
	"fmt"
)

// GoodieKind tags a Goodie.
type GoodieKind uint8

const (
	DragonTooth GoodieKind = iota
	CommonChest
	RareChest
)

func (k GoodieKind) String() string {
	switch k {
	case DragonTooth:
		return "dragon_tooth"
	case CommonChest:
		return "common_chest"
	case RareChest:
		return "rare_chest"
	}
	return fmt.Sprintf("goodie(%d)", uint8(k))
}

// Goodie is one resolved drop. Common is set for CommonChest, Rare for RareChest.
type Goodie struct {
	Kind   GoodieKind
	Common CommonItem
	Rare   RareItem
}

func ToothGoodie() Goodie                 { return Goodie{Kind: DragonTooth} }
func CommonGoodie(item CommonItem) Goodie { return Goodie{Kind: CommonChest, Common: item} }
func RareGoodie(item RareItem) Goodie     { return Goodie{Kind: RareChest, Rare: item} }

func (g Goodie) String() string {
	switch g.Kind {
	case CommonChest:
		return "common chest: " + g.Common.String()
	case RareChest:
		return "rare chest: " + g.Rare.String()
	}
	return "Dragon Tooth"
}

// Icon is the sprite id of the drop's contents.
func (g Goodie) Icon() string {
	switch g.Kind {
	case CommonChest:
		return g.Common.Icon()
	case RareChest:
		return g.Rare.Icon()
	}
	return "dragon_tooth"
}

type goodieJSON struct {
	Kind string `json:"kind"`
	Item string `json:"item,omitempty"`
	Icon string `json:"icon"`
}

func (g Goodie) MarshalJSON() ([]byte, error) {
	out := goodieJSON{Kind: g.Kind.String(), Icon: g.Icon()}
	switch g.Kind {
	case CommonChest:
		out.Item = g.Common.String()
	case RareChest:
		out.Item = g.Rare.String()
	}
	return json.Marshal(out)
}

func (g *Goodie) UnmarshalJSON(data []byte) error {
	var in goodieJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case "dragon_tooth":
		*g = ToothGoodie()
		return nil
	case "common_chest":
		for i := CommonItem(0); i < numCommonItems; i++ {
			if i.String() == in.Item {
				*g = CommonGoodie(i)
				return nil
			}
		}
	case "rare_chest":
		for i := RareItem(0); i < numRareItems; i++ {
			if i.String() == in.Item {
				*g = RareGoodie(i)
				return nil
			}
		}
	default:
		return fmt.Errorf("unknown goodie kind %q", in.Kind)
	}
	return fmt.Errorf("unknown %s item %q", in.Kind, in.Item)
}

func equalGoodies(a, b []Goodie) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// lootEntry is a drop as the floor simulator sees it: either a resolved Goodie or a chest whose
// rarity depends on where the true luck lies relative to threshold. Undecided entries never leave
// this package.
type lootEntry struct {
	goodie    Goodie
	undecided bool
	threshold float64
	common    CommonItem
	rare      RareItem
}

func resolved(g Goodie) lootEntry { return lootEntry{goodie: g} }

func (e lootEntry) String() string {
	if e.undecided {
		return fmt.Sprintf("luck > %.4f: rare: %s, else common: %s", e.threshold, e.rare, e.common)
	}
	return e.goodie.String()
}
