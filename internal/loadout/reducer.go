package loadout

import (
	"errors"
	"fmt"

	"github.com/jask/loadout/internal/inventory"
)

var ErrUnknownAction = errors.New("unknown action")

// Reduce applies a to s and returns the next state. s is never modified.
func Reduce(s State, a Action) (State, error) {
	next := s.Clone()
	switch a := a.(type) {
	case SetPinnedItems:
		next.PinnedItems = PinnedItems{}
		for _, it := range a.Items {
			if it == nil {
				continue
			}
			next.PinnedItems[it.Bucket] = it
			next.ExcludedItems = withoutExcluded(next.ExcludedItems, it)
		}
	case PinItem:
		if a.Item == nil {
			return s, nil
		}
		next.PinnedItems[a.Item.Bucket] = a.Item
		next.ExcludedItems = withoutExcluded(next.ExcludedItems, a.Item)
	case UnpinItem:
		if a.Item == nil {
			return s, nil
		}
		if pinned := next.PinnedItems[a.Item.Bucket]; pinned != nil && pinned.ID == a.Item.ID {
			delete(next.PinnedItems, a.Item.Bucket)
		}
	case ExcludeItem:
		if a.Item == nil || s.IsExcluded(a.Item) {
			return s, nil
		}
		if pinned := next.PinnedItems[a.Item.Bucket]; pinned != nil && pinned.ID == a.Item.ID {
			delete(next.PinnedItems, a.Item.Bucket)
		}
		next.ExcludedItems[a.Item.Bucket] = append(next.ExcludedItems[a.Item.Bucket], a.Item)
	case UnexcludeItem:
		if a.Item == nil {
			return s, nil
		}
		next.ExcludedItems = withoutExcluded(next.ExcludedItems, a.Item)
	case LockedModsChanged:
		next.LockedMods = append([]inventory.ModDef(nil), a.Mods...)
		next.ModPickerOpen = false
	case RemoveLockedMod:
		for i, m := range next.LockedMods {
			if m.Hash == a.Mod.Hash {
				next.LockedMods = append(next.LockedMods[:i], next.LockedMods[i+1:]...)
				break
			}
		}
	case MaxStatModsChanged:
		next.MaxStatMods = min(max(a.MaxStatMods, 0), MaxStatModsLimit)
	case OpenModPicker:
		next.ModPickerOpen = true
	case CloseModPicker:
		next.ModPickerOpen = false
	case RemoveLockedExotic:
		next.LockedExotic = 0
	case LockExotic:
		next.LockedExotic = a.Exotic
		for bucket, pinned := range next.PinnedItems {
			if pinned.IsExotic() && contradicts(a.Exotic, pinned) {
				delete(next.PinnedItems, bucket)
			}
		}
	case LockItemEnergyTypeChanged:
		next.LockItemEnergyType = a.LockItemEnergyType
	case UpgradeSpendTierChanged:
		if !a.Tier.Valid() {
			return s, fmt.Errorf("upgrade spend tier %d: %w", int(a.Tier), ErrUnknownAction)
		}
		next.UpgradeSpendTier = a.Tier
	case ChangeCharacter:
		if a.StoreID == s.StoreID {
			return s, nil
		}
		next.StoreID = a.StoreID
		next.PinnedItems = PinnedItems{}
		next.ExcludedItems = ExcludedItems{}
		next.LockedExotic = 0
	default:
		return s, fmt.Errorf("%T: %w", a, ErrUnknownAction)
	}
	return next, nil
}

// contradicts reports whether a pinned exotic can no longer be part of a set with sel.
func contradicts(sel ExoticHash, pinned *inventory.Item) bool {
	switch {
	case sel == NoExotic:
		return true
	case sel.Specific():
		return ExoticOf(pinned) != sel
	default:
		return false
	}
}

func withoutExcluded(ex ExcludedItems, item *inventory.Item) ExcludedItems {
	list := ex[item.Bucket]
	kept := list[:0]
	for _, it := range list {
		if it != nil && it.ID != item.ID {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		delete(ex, item.Bucket)
	} else {
		ex[item.Bucket] = kept
	}
	return ex
}
