package panel

import (
	"fmt"
	"strconv"

	"github.com/jask/loadout/internal/inventory"
	"github.com/jask/loadout/internal/loadout"
)

// PinnedList is the display list of pinned items, in bucket order.
func PinnedList(p loadout.PinnedItems) []*inventory.Item { return p.Sorted() }

// ExcludedList is the display list of excluded items, in bucket order.
func ExcludedList(ex loadout.ExcludedItems) []*inventory.Item { return ex.Sorted() }

// ModRenderKeys returns a unique key per locked mod. Repeats of a mod hash are
// numbered in order of appearance.
func ModRenderKeys(mods []inventory.ModDef) []string {
	counts := make(map[uint32]int, len(mods))
	keys := make([]string, len(mods))
	for i, m := range mods {
		n := counts[m.Hash]
		counts[m.Hash] = n + 1
		keys[i] = strconv.FormatUint(uint64(m.Hash), 10) + "-" + strconv.Itoa(n)
	}
	return keys
}

// ExoticLabel names a locked exotic selection. inv may be nil for the sentinels.
func ExoticLabel(inv *inventory.Inventory, h loadout.ExoticHash) string {
	switch {
	case h == loadout.NoExotic:
		return "No exotic"
	case h == loadout.AnyExotic:
		return "Any exotic"
	case !h.IsSet():
		return "None selected"
	}
	if inv != nil {
		if it := inv.ItemByHash(uint32(h)); it != nil {
			return it.Name
		}
	}
	return fmt.Sprintf("exotic %d", int64(h))
}
