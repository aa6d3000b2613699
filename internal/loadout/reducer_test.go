package loadout

import (
	"errors"
	"testing"

	"github.com/jask/loadout/internal/inventory"
)

func piece(id string, bucket inventory.BucketHash) *inventory.Item {
	return &inventory.Item{ID: id, Hash: 1000, Name: id, Bucket: bucket, Instanced: true, Equippable: true, Energy: 8}
}

func exotic(id string, hash uint32, bucket inventory.BucketHash) *inventory.Item {
	it := piece(id, bucket)
	it.Hash = hash
	it.Tier = inventory.TierExotic
	return it
}

func mustReduce(t *testing.T, s State, actions ...Action) State {
	t.Helper()
	for _, a := range actions {
		var err error
		s, err = Reduce(s, a)
		if err != nil {
			t.Fatalf("Reduce(%s): %v", a.Type(), err)
		}
	}
	return s
}

func TestReducePinAndUnpin(t *testing.T) {
	helmet := piece("helmet", inventory.Helmet)
	other := piece("helmet-2", inventory.Helmet)
	s := mustReduce(t, NewState("titan"), ExcludeItem{Item: helmet}, PinItem{Item: helmet})
	if s.PinnedItems[inventory.Helmet] != helmet {
		t.Fatalf("expected helmet pinned")
	}
	if s.IsExcluded(helmet) {
		t.Fatalf("pinning must remove the item from the excluded list")
	}
	if _, ok := s.ExcludedItems[inventory.Helmet]; ok {
		t.Fatalf("empty excluded slot should be deleted")
	}

	s = mustReduce(t, s, PinItem{Item: other})
	if s.PinnedItems[inventory.Helmet] != other {
		t.Fatalf("pinning replaces the slot's item")
	}
	s = mustReduce(t, s, UnpinItem{Item: helmet})
	if s.PinnedItems[inventory.Helmet] != other {
		t.Fatalf("unpinning a different item must not clear the slot")
	}
	s = mustReduce(t, s, UnpinItem{Item: other})
	if len(s.PinnedItems) != 0 {
		t.Fatalf("pinned = %v, want empty", s.PinnedItems)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	helmet := piece("helmet", inventory.Helmet)
	before := mustReduce(t, NewState("titan"), ExcludeItem{Item: helmet})
	after := mustReduce(t, before, UnexcludeItem{Item: helmet}, PinItem{Item: piece("chest", inventory.ChestArmor)})
	if !before.IsExcluded(helmet) || len(before.PinnedItems) != 0 {
		t.Fatalf("input state was modified: %+v", before)
	}
	if after.IsExcluded(helmet) {
		t.Fatalf("expected helmet unexcluded")
	}
}

func TestReduceExclude(t *testing.T) {
	helmet := piece("helmet", inventory.Helmet)
	s := mustReduce(t, NewState("titan"), PinItem{Item: helmet}, ExcludeItem{Item: helmet}, ExcludeItem{Item: helmet})
	if len(s.PinnedItems) != 0 {
		t.Fatalf("excluding a pinned item should unpin it")
	}
	if got := len(s.ExcludedItems[inventory.Helmet]); got != 1 {
		t.Fatalf("excluded helmets = %d, want 1", got)
	}
}

func TestReduceSetPinnedItems(t *testing.T) {
	helmet := piece("helmet", inventory.Helmet)
	chest := piece("chest", inventory.ChestArmor)
	s := mustReduce(t, NewState("titan"),
		PinItem{Item: piece("legs", inventory.LegArmor)},
		ExcludeItem{Item: chest},
		SetPinnedItems{Items: []*inventory.Item{helmet, chest, nil}},
	)
	if len(s.PinnedItems) != 2 || s.PinnedItems[inventory.Helmet] != helmet || s.PinnedItems[inventory.ChestArmor] != chest {
		t.Fatalf("pinned = %v", s.PinnedItems)
	}
	if s.IsExcluded(chest) {
		t.Fatalf("newly pinned items leave the excluded list")
	}
}

func TestReduceMods(t *testing.T) {
	a := inventory.ModDef{Hash: 1, Name: "Recovery"}
	b := inventory.ModDef{Hash: 2, Name: "Resilience"}
	s := mustReduce(t, NewState("titan"), OpenModPicker{})
	if !s.ModPickerOpen {
		t.Fatal("expected mod picker open")
	}
	s = mustReduce(t, s, LockedModsChanged{Mods: []inventory.ModDef{a, b, a}})
	if s.ModPickerOpen {
		t.Fatal("choosing mods closes the mod picker")
	}
	s = mustReduce(t, s, RemoveLockedMod{Mod: a})
	if len(s.LockedMods) != 2 || s.LockedMods[0].Hash != 2 || s.LockedMods[1].Hash != 1 {
		t.Fatalf("locked mods = %+v, want [2 1]", s.LockedMods)
	}
	s = mustReduce(t, s, OpenModPicker{}, CloseModPicker{})
	if s.ModPickerOpen {
		t.Fatal("expected mod picker closed")
	}
}

func TestReduceMaxStatModsClamped(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{in: 3, want: 3},
		{in: -2, want: 0},
		{in: 9, want: MaxStatModsLimit},
	}
	for _, tt := range tests {
		s := mustReduce(t, NewState("titan"), MaxStatModsChanged{MaxStatMods: tt.in})
		if s.MaxStatMods != tt.want {
			t.Fatalf("MaxStatMods(%d) = %d, want %d", tt.in, s.MaxStatMods, tt.want)
		}
	}
}

func TestReduceLockExoticUnpinsContradictions(t *testing.T) {
	wormgod := exotic("wormgod", 500, inventory.Gauntlets)
	helmet := piece("helmet", inventory.Helmet)
	base := mustReduce(t, NewState("titan"), PinItem{Item: wormgod}, PinItem{Item: helmet})

	tests := []struct {
		name       string
		sel        ExoticHash
		keepExotic bool
	}{
		{name: "any", sel: AnyExotic, keepExotic: true},
		{name: "same", sel: ExoticHash(500), keepExotic: true},
		{name: "other", sel: ExoticHash(501), keepExotic: false},
		{name: "none", sel: NoExotic, keepExotic: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustReduce(t, base, LockExotic{Exotic: tt.sel})
			if s.LockedExotic != tt.sel {
				t.Fatalf("LockedExotic = %d, want %d", s.LockedExotic, tt.sel)
			}
			_, kept := s.PinnedItems[inventory.Gauntlets]
			if kept != tt.keepExotic {
				t.Fatalf("exotic kept = %v, want %v", kept, tt.keepExotic)
			}
			if s.PinnedItems[inventory.Helmet] != helmet {
				t.Fatal("non-exotic pins are untouched")
			}
		})
	}

	cleared := mustReduce(t, base, LockExotic{Exotic: AnyExotic}, RemoveLockedExotic{})
	if cleared.LockedExotic.IsSet() {
		t.Fatal("expected exotic selection removed")
	}
}

func TestReduceUpgradeSettings(t *testing.T) {
	s := mustReduce(t, NewState("titan"),
		UpgradeSpendTierChanged{Tier: AscendantShards},
		LockItemEnergyTypeChanged{LockItemEnergyType: true},
	)
	if s.UpgradeSpendTier != AscendantShards || !s.LockItemEnergyType {
		t.Fatalf("unexpected upgrade settings: %+v", s)
	}
	if _, err := Reduce(s, UpgradeSpendTierChanged{Tier: UpgradeSpendTier(42)}); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("err = %v, want ErrUnknownAction", err)
	}
}

func TestReduceChangeCharacterClearsLocks(t *testing.T) {
	s := mustReduce(t, NewState("titan"),
		PinItem{Item: piece("helmet", inventory.Helmet)},
		ExcludeItem{Item: piece("chest", inventory.ChestArmor)},
		LockExotic{Exotic: AnyExotic},
		MaxStatModsChanged{MaxStatMods: 2},
	)
	same := mustReduce(t, s, ChangeCharacter{StoreID: "titan"})
	if len(same.PinnedItems) != 1 {
		t.Fatal("changing to the same store is a no-op")
	}
	next := mustReduce(t, s, ChangeCharacter{StoreID: "hunter"})
	if next.StoreID != "hunter" || len(next.PinnedItems) != 0 || len(next.ExcludedItems) != 0 || next.LockedExotic.IsSet() {
		t.Fatalf("unexpected state after change: %+v", next)
	}
	if next.MaxStatMods != 2 {
		t.Fatal("settings survive a character change")
	}
}

func TestPinnedSortedIgnoresMapOrder(t *testing.T) {
	p := PinnedItems{
		inventory.ClassItem: piece("class", inventory.ClassItem),
		inventory.Helmet:    piece("helmet", inventory.Helmet),
		inventory.LegArmor:  nil,
		777:                 piece("odd", 777),
		inventory.Gauntlets: piece("arms", inventory.Gauntlets),
	}
	for i := 0; i < 20; i++ {
		got := p.Sorted()
		if len(got) != 4 || got[0].ID != "helmet" || got[1].ID != "arms" || got[2].ID != "class" || got[3].ID != "odd" {
			t.Fatalf("unexpected order on iteration %d", i)
		}
	}
}

func TestRecorderDrain(t *testing.T) {
	var r Recorder
	var d Dispatcher = &r
	d.Dispatch(OpenModPicker{})
	DispatchFunc(r.Dispatch).Dispatch(CloseModPicker{})
	got := r.Drain()
	if len(got) != 2 || got[0].Type() != "openModPicker" || got[1].Type() != "closeModPicker" {
		t.Fatalf("drained = %v", got)
	}
	if len(r.Actions) != 0 {
		t.Fatal("expected recorder empty after drain")
	}
}
