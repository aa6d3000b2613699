// Package loadout holds the lock state of the loadout builder and the reducer that
// applies dispatched actions to it.
package loadout

import (
	"fmt"

	"github.com/jask/loadout/internal/inventory"
)

// PinnedItems maps a bucket to the one item forced into it.
type PinnedItems map[inventory.BucketHash]*inventory.Item

// ExcludedItems maps a bucket to the items kept out of generated sets.
type ExcludedItems map[inventory.BucketHash][]*inventory.Item

// MaxStatModsLimit is the highest value MaxStatMods accepts.
const MaxStatModsLimit = 5

// UpgradeSpendTier controls which upgrade materials generated sets may assume are spent.
type UpgradeSpendTier int

const (
	Nothing UpgradeSpendTier = iota
	RareShards
	EnhancementPrisms
	AscendantShardsNotExotic
	AscendantShardsNotMasterworked
	AscendantShards
)

// UpgradeSpendTiers lists every tier in picker order.
var UpgradeSpendTiers = []UpgradeSpendTier{
	Nothing,
	RareShards,
	EnhancementPrisms,
	AscendantShardsNotExotic,
	AscendantShardsNotMasterworked,
	AscendantShards,
}

var upgradeTierLabels = map[UpgradeSpendTier]string{
	Nothing:                        "Nothing",
	RareShards:                     "Legendary Shards",
	EnhancementPrisms:              "Enhancement Prisms",
	AscendantShardsNotExotic:       "Ascendant Shards (not exotics)",
	AscendantShardsNotMasterworked: "Ascendant Shards (not masterworked)",
	AscendantShards:                "Ascendant Shards",
}

func (t UpgradeSpendTier) String() string {
	if label, ok := upgradeTierLabels[t]; ok {
		return label
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

func (t UpgradeSpendTier) Valid() bool {
	_, ok := upgradeTierLabels[t]
	return ok
}

// ExoticHash is the locked exotic selection: zero when nothing is locked, one of the
// sentinels, or the definition hash of a specific exotic.
type ExoticHash int64

const (
	NoExotic  ExoticHash = -1
	AnyExotic ExoticHash = -2
)

func (h ExoticHash) IsSet() bool { return h != 0 }

// Specific reports whether h names one exotic definition.
func (h ExoticHash) Specific() bool { return h > 0 }

// ExoticOf returns the selection for a specific exotic item.
func ExoticOf(item *inventory.Item) ExoticHash { return ExoticHash(item.Hash) }

// State is the snapshot the panel renders from.
type State struct {
	StoreID            string
	PinnedItems        PinnedItems
	ExcludedItems      ExcludedItems
	LockedMods         []inventory.ModDef
	UpgradeSpendTier   UpgradeSpendTier
	LockItemEnergyType bool
	LockedExotic       ExoticHash
	MaxStatMods        int
	ModPickerOpen      bool
}

// NewState returns an empty state for store.
func NewState(storeID string) State {
	return State{
		StoreID:          storeID,
		PinnedItems:      PinnedItems{},
		ExcludedItems:    ExcludedItems{},
		UpgradeSpendTier: Nothing,
	}
}

// Clone returns a deep copy of the maps and slices in s. Items are shared.
func (s State) Clone() State {
	out := s
	out.PinnedItems = make(PinnedItems, len(s.PinnedItems))
	for k, v := range s.PinnedItems {
		out.PinnedItems[k] = v
	}
	out.ExcludedItems = make(ExcludedItems, len(s.ExcludedItems))
	for k, v := range s.ExcludedItems {
		out.ExcludedItems[k] = append([]*inventory.Item(nil), v...)
	}
	out.LockedMods = append([]inventory.ModDef(nil), s.LockedMods...)
	return out
}

// IsExcluded reports whether item sits in its bucket's excluded list.
func (s State) IsExcluded(item *inventory.Item) bool {
	for _, ex := range s.ExcludedItems[item.Bucket] {
		if ex != nil && ex.ID == item.ID {
			return true
		}
	}
	return false
}
