package loadout

import "github.com/jask/loadout/internal/inventory"

// Action is one change request for the reducer. The set of implementations is closed.
type Action interface {
	Type() string
	action()
}

type SetPinnedItems struct{ Items []*inventory.Item }

type PinItem struct{ Item *inventory.Item }

type UnpinItem struct{ Item *inventory.Item }

type ExcludeItem struct{ Item *inventory.Item }

type UnexcludeItem struct{ Item *inventory.Item }

type LockedModsChanged struct{ Mods []inventory.ModDef }

type RemoveLockedMod struct{ Mod inventory.ModDef }

type MaxStatModsChanged struct{ MaxStatMods int }

type OpenModPicker struct{}

type CloseModPicker struct{}

type RemoveLockedExotic struct{}

type LockExotic struct{ Exotic ExoticHash }

type LockItemEnergyTypeChanged struct{ LockItemEnergyType bool }

type UpgradeSpendTierChanged struct{ Tier UpgradeSpendTier }

type ChangeCharacter struct{ StoreID string }

func (SetPinnedItems) Type() string            { return "setPinnedItems" }
func (PinItem) Type() string                   { return "pinItem" }
func (UnpinItem) Type() string                 { return "unpinItem" }
func (ExcludeItem) Type() string               { return "excludeItem" }
func (UnexcludeItem) Type() string             { return "unexcludeItem" }
func (LockedModsChanged) Type() string         { return "lockedModsChanged" }
func (RemoveLockedMod) Type() string           { return "removeLockedMod" }
func (MaxStatModsChanged) Type() string        { return "maxStatModsChanged" }
func (OpenModPicker) Type() string             { return "openModPicker" }
func (CloseModPicker) Type() string            { return "closeModPicker" }
func (RemoveLockedExotic) Type() string        { return "removeLockedExotic" }
func (LockExotic) Type() string                { return "lockExotic" }
func (LockItemEnergyTypeChanged) Type() string { return "lockItemEnergyTypeChanged" }
func (UpgradeSpendTierChanged) Type() string   { return "upgradeSpendTierChanged" }
func (ChangeCharacter) Type() string           { return "changeCharacter" }

func (SetPinnedItems) action()            {}
func (PinItem) action()                   {}
func (UnpinItem) action()                 {}
func (ExcludeItem) action()               {}
func (UnexcludeItem) action()             {}
func (LockedModsChanged) action()         {}
func (RemoveLockedMod) action()           {}
func (MaxStatModsChanged) action()        {}
func (OpenModPicker) action()             {}
func (CloseModPicker) action()            {}
func (RemoveLockedExotic) action()        {}
func (LockExotic) action()                {}
func (LockItemEnergyTypeChanged) action() {}
func (UpgradeSpendTierChanged) action()   {}
func (ChangeCharacter) action()           {}
