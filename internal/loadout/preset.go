package loadout

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/jask/loadout/internal/inventory"
)

// Preset is the portable, TOML-encoded form of a lock state. Items are referenced by id
// and mods by hash so a preset can be re-applied after a fresh inventory import.
type Preset struct {
	Name               string   `toml:"name"`
	Store              string   `toml:"store"`
	Pinned             []string `toml:"pinned"`
	Excluded           []string `toml:"excluded"`
	Mods               []uint32 `toml:"mods"`
	UpgradeSpendTier   int      `toml:"upgrade_spend_tier"`
	LockItemEnergyType bool     `toml:"lock_item_energy_type"`
	LockedExotic       int64    `toml:"locked_exotic"`
	MaxStatMods        int      `toml:"max_stat_mods"`
}

// NewPreset captures s. Lists follow the panel's bucket order.
func NewPreset(name string, s State) Preset {
	p := Preset{
		Name:               name,
		Store:              s.StoreID,
		UpgradeSpendTier:   int(s.UpgradeSpendTier),
		LockItemEnergyType: s.LockItemEnergyType,
		LockedExotic:       int64(s.LockedExotic),
		MaxStatMods:        s.MaxStatMods,
	}
	for _, it := range s.PinnedItems.Sorted() {
		p.Pinned = append(p.Pinned, it.ID)
	}
	for _, it := range s.ExcludedItems.Sorted() {
		p.Excluded = append(p.Excluded, it.ID)
	}
	for _, m := range s.LockedMods {
		p.Mods = append(p.Mods, m.Hash)
	}
	return p
}

func (p Preset) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(p); err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	return nil
}

func DecodePreset(r io.Reader) (Preset, error) {
	var p Preset
	if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
		return Preset{}, fmt.Errorf("decode preset: %w", err)
	}
	return p, nil
}

// Actions translates p into the actions that turn current into the preset's state.
// References that no longer resolve against inv are returned in skipped.
func (p Preset) Actions(inv *inventory.Inventory, current State) (actions []Action, skipped []string) {
	for _, it := range current.ExcludedItems.Sorted() {
		actions = append(actions, UnexcludeItem{Item: it})
	}
	var pinned []*inventory.Item
	for _, id := range p.Pinned {
		if it := inv.ItemByID(id); it != nil {
			pinned = append(pinned, it)
		} else {
			skipped = append(skipped, "pinned item "+id)
		}
	}
	actions = append(actions, SetPinnedItems{Items: pinned})
	for _, id := range p.Excluded {
		if it := inv.ItemByID(id); it != nil {
			actions = append(actions, ExcludeItem{Item: it})
		} else {
			skipped = append(skipped, "excluded item "+id)
		}
	}
	var mods []inventory.ModDef
	for _, h := range p.Mods {
		if m, ok := inv.Mod(h); ok {
			mods = append(mods, m)
		} else {
			skipped = append(skipped, fmt.Sprintf("mod %d", h))
		}
	}
	actions = append(actions,
		LockedModsChanged{Mods: mods},
		UpgradeSpendTierChanged{Tier: UpgradeSpendTier(p.UpgradeSpendTier)},
		LockItemEnergyTypeChanged{LockItemEnergyType: p.LockItemEnergyType},
		MaxStatModsChanged{MaxStatMods: p.MaxStatMods},
	)
	if ExoticHash(p.LockedExotic).IsSet() {
		actions = append(actions, LockExotic{Exotic: ExoticHash(p.LockedExotic)})
	} else {
		actions = append(actions, RemoveLockedExotic{})
	}
	return actions, skipped
}

// ApplyAll reduces every action in order, stopping at the first error.
func ApplyAll(s State, actions []Action) (State, error) {
	for _, a := range actions {
		var err error
		if s, err = Reduce(s, a); err != nil {
			return s, fmt.Errorf("%s: %w", a.Type(), err)
		}
	}
	return s, nil
}
