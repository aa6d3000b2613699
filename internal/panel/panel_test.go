package panel

import (
	"context"
	"errors"
	"testing"

	"github.com/jask/loadout/internal/inventory"
	"github.com/jask/loadout/internal/loadout"
)

func armor(id string, bucket inventory.BucketHash, equipped bool) *inventory.Item {
	return &inventory.Item{
		ID:         id,
		Name:       id,
		Bucket:     bucket,
		Class:      inventory.Titan,
		Instanced:  true,
		Equippable: true,
		Energy:     9,
		Equipped:   equipped,
		OwnerID:    "titan",
	}
}

func titanStore(items ...*inventory.Item) *inventory.Store {
	return &inventory.Store{ID: "titan", Name: "Titan", Class: inventory.Titan, Items: items}
}

func newTestPanel(props Props) (*Panel, *loadout.Recorder) {
	rec := &loadout.Recorder{}
	p := New(rec)
	p.SetProps(props)
	return p, rec
}

func ids(items []*inventory.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func equalIDs(got []*inventory.Item, want ...string) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestPinnedListOrderedByBucket(t *testing.T) {
	pinned := loadout.PinnedItems{
		inventory.LegArmor:  armor("legs", inventory.LegArmor, false),
		inventory.Helmet:    armor("helmet", inventory.Helmet, false),
		inventory.ClassItem: nil,
		inventory.Gauntlets: armor("arms", inventory.Gauntlets, false),
	}
	for i := 0; i < 25; i++ {
		got := PinnedList(pinned)
		if !equalIDs(got, "helmet", "arms", "legs") {
			t.Fatalf("PinnedList = %v, want [helmet arms legs]", ids(got))
		}
	}
}

func TestExcludedListFlattensAndKeepsSlotOrder(t *testing.T) {
	excluded := loadout.ExcludedItems{
		inventory.ClassItem: {armor("class-1", inventory.ClassItem, false)},
		inventory.Helmet: {
			armor("helmet-b", inventory.Helmet, false),
			nil,
			armor("helmet-a", inventory.Helmet, false),
		},
		inventory.ChestArmor: nil,
	}
	got := ExcludedList(excluded)
	if !equalIDs(got, "helmet-b", "helmet-a", "class-1") {
		t.Fatalf("ExcludedList = %v", ids(got))
	}
}

func TestListsPutUnknownBucketsLast(t *testing.T) {
	excluded := loadout.ExcludedItems{
		42:                  {armor("mystery", 42, false)},
		inventory.ClassItem: {armor("class", inventory.ClassItem, false)},
		7:                   {armor("seven", 7, false)},
	}
	got := ExcludedList(excluded)
	if !equalIDs(got, "class", "seven", "mystery") {
		t.Fatalf("ExcludedList = %v, want known buckets first then unknown by hash", ids(got))
	}
}

func TestModRenderKeysNumberDuplicates(t *testing.T) {
	mods := []inventory.ModDef{{Hash: 5}, {Hash: 6}, {Hash: 5}}
	got := ModRenderKeys(mods)
	want := []string{"5-0", "6-0", "5-1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ModRenderKeys = %v, want %v", got, want)
		}
	}
}

func TestLockEquippedDispatchesEquippedEligibleItems(t *testing.T) {
	shell := &inventory.Item{ID: "ghost", Bucket: 4023194814, Equipped: true, Instanced: true, Equippable: true}
	store := titanStore(
		armor("helmet", inventory.Helmet, true),
		armor("arms", inventory.Gauntlets, true),
		armor("chest", inventory.ChestArmor, true),
		armor("spare-legs", inventory.LegArmor, false),
		armor("spare-class", inventory.ClassItem, false),
		shell,
	)
	p, rec := newTestPanel(Props{Store: store})
	p.LockEquipped()
	if len(rec.Actions) != 1 {
		t.Fatalf("dispatched %d actions, want 1", len(rec.Actions))
	}
	set, ok := rec.Actions[0].(loadout.SetPinnedItems)
	if !ok {
		t.Fatalf("action = %T, want SetPinnedItems", rec.Actions[0])
	}
	if len(set.Items) != 3 {
		t.Fatalf("payload length = %d, want 3", len(set.Items))
	}
}

func TestLockEquippedWithoutStoreDispatchesNothing(t *testing.T) {
	p, rec := newTestPanel(Props{})
	p.LockEquipped()
	if len(rec.Actions) != 0 {
		t.Fatalf("dispatched %v", rec.Actions)
	}
}

func TestGesturesDispatchOneActionEach(t *testing.T) {
	item := armor("helmet", inventory.Helmet, false)
	mod := inventory.ModDef{Hash: 3, Name: "Recovery"}
	tests := []struct {
		name    string
		gesture func(p *Panel)
		want    loadout.Action
	}{
		{name: "remove mod", gesture: func(p *Panel) { p.RemoveLockedMod(mod) }, want: loadout.RemoveLockedMod{Mod: mod}},
		{name: "pin", gesture: func(p *Panel) { p.PinItem(item) }, want: loadout.PinItem{Item: item}},
		{name: "drop pinned", gesture: func(p *Panel) { p.DropPinned(item) }, want: loadout.PinItem{Item: item}},
		{name: "unpin", gesture: func(p *Panel) { p.UnpinItem(item) }, want: loadout.UnpinItem{Item: item}},
		{name: "exclude", gesture: func(p *Panel) { p.ExcludeItem(item) }, want: loadout.ExcludeItem{Item: item}},
		{name: "drop excluded", gesture: func(p *Panel) { p.DropExcluded(item) }, want: loadout.ExcludeItem{Item: item}},
		{name: "unexclude", gesture: func(p *Panel) { p.UnexcludeItem(item) }, want: loadout.UnexcludeItem{Item: item}},
		{name: "open mod picker", gesture: func(p *Panel) { p.OpenModPicker() }, want: loadout.OpenModPicker{}},
		{name: "remove exotic", gesture: func(p *Panel) { p.RemoveLockedExotic() }, want: loadout.RemoveLockedExotic{}},
		{name: "select exotic", gesture: func(p *Panel) { p.SelectExotic(loadout.AnyExotic) }, want: loadout.LockExotic{Exotic: loadout.AnyExotic}},
		{name: "energy lock", gesture: func(p *Panel) { p.SetLockItemEnergyType(true) }, want: loadout.LockItemEnergyTypeChanged{LockItemEnergyType: true}},
		{name: "spend tier", gesture: func(p *Panel) { p.SelectUpgradeSpendTier(loadout.AscendantShards) }, want: loadout.UpgradeSpendTierChanged{Tier: loadout.AscendantShards}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rec := newTestPanel(Props{Store: titanStore()})
			tt.gesture(p)
			if len(rec.Actions) != 1 {
				t.Fatalf("dispatched %d actions, want 1", len(rec.Actions))
			}
			if rec.Actions[0] != tt.want {
				t.Fatalf("action = %#v, want %#v", rec.Actions[0], tt.want)
			}
		})
	}
}

func TestMaxStatModsChanged(t *testing.T) {
	p, rec := newTestPanel(Props{})
	if err := p.MaxStatModsChanged("3"); err != nil {
		t.Fatalf("MaxStatModsChanged: %v", err)
	}
	if len(rec.Actions) != 1 || rec.Actions[0] != (loadout.MaxStatModsChanged{MaxStatMods: 3}) {
		t.Fatalf("actions = %#v", rec.Actions)
	}
	for _, bad := range []string{"6", "-1", "two", ""} {
		if err := p.MaxStatModsChanged(bad); !errors.Is(err, ErrInvalidMaxStatMods) {
			t.Fatalf("MaxStatModsChanged(%q) err = %v", bad, err)
		}
	}
	if len(rec.Actions) != 1 {
		t.Fatalf("invalid values must not dispatch, got %d actions", len(rec.Actions))
	}
	opts := MaxStatModsOptions()
	if len(opts) != 6 || opts[0].Value != "0" || opts[5].Value != "5" {
		t.Fatalf("options = %+v", opts)
	}
}

func TestDialogFlags(t *testing.T) {
	p, rec := newTestPanel(Props{})
	if p.ActiveOverlay() != OverlayNone {
		t.Fatal("dialogs start closed")
	}
	p.OpenUpgradePicker()
	if !p.UpgradePickerOpen() || p.ActiveOverlay() != OverlayUpgradePicker {
		t.Fatal("expected upgrade picker open")
	}
	p.SetLockItemEnergyType(true)
	if !p.UpgradePickerOpen() {
		t.Fatal("energy toggle keeps the upgrade picker open")
	}
	p.OpenExoticPicker()
	if p.ActiveOverlay() != OverlayExoticPicker {
		t.Fatal("exotic picker draws above the upgrade picker")
	}
	p.SelectExotic(loadout.NoExotic)
	if p.ExoticPickerOpen() {
		t.Fatal("selecting an exotic closes the exotic picker")
	}
	if !p.UpgradePickerOpen() {
		t.Fatal("the dialogs are independent")
	}
	p.SelectUpgradeSpendTier(loadout.RareShards)
	if p.UpgradePickerOpen() {
		t.Fatal("selecting a tier closes the upgrade picker")
	}
	p.OpenExoticPicker()
	p.CloseExoticPicker()
	if p.ExoticPickerOpen() || len(rec.Actions) != 3 {
		t.Fatalf("closing dispatches nothing; actions = %d", len(rec.Actions))
	}
	p.SetProps(Props{MaxStatMods: 2})
	p.OpenUpgradePicker()
	p.SetProps(Props{MaxStatMods: 3})
	if !p.UpgradePickerOpen() {
		t.Fatal("new props keep dialog flags")
	}
}

func TestLockItemRequestSkipsPinnedBuckets(t *testing.T) {
	pinnedHelmet := armor("helmet-pinned", inventory.Helmet, true)
	otherHelmet := armor("helmet-other", inventory.Helmet, false)
	chest := armor("chest", inventory.ChestArmor, false)
	hunterArms := armor("hunter-arms", inventory.Gauntlets, false)
	hunterArms.Class = inventory.Hunter
	weapon := &inventory.Item{ID: "gun", Bucket: 1498876634, Instanced: true, Equippable: true}
	all := []*inventory.Item{chest, otherHelmet, pinnedHelmet, hunterArms, weapon}

	p, _ := newTestPanel(Props{
		Store:       titanStore(pinnedHelmet, otherHelmet, chest),
		PinnedItems: loadout.PinnedItems{inventory.Helmet: pinnedHelmet},
	})
	if got := Candidates(p.LockItemRequest(), all); !equalIDs(got, "chest") {
		t.Fatalf("lock candidates = %v, want [chest]", ids(got))
	}
	if got := Candidates(p.ExcludeItemRequest(), all); !equalIDs(got, "helmet-other", "helmet-pinned", "chest") {
		t.Fatalf("exclude candidates = %v", ids(got))
	}
}

func TestChooseItemSelectedDispatches(t *testing.T) {
	chest := armor("chest", inventory.ChestArmor, false)
	p, rec := newTestPanel(Props{Store: titanStore(chest)})
	var seen PickRequest
	picker := ItemPickerFunc(func(_ context.Context, req PickRequest) (PickResult, error) {
		seen = req
		return Selected(chest), nil
	})

	p.ChooseLockItem(context.Background(), picker)
	p.ChooseExcludeItem(context.Background(), picker)
	if seen.Filter == nil || seen.SortKey == nil {
		t.Fatal("picker should receive filter and sort")
	}
	if len(rec.Actions) != 2 {
		t.Fatalf("actions = %d, want 2", len(rec.Actions))
	}
	if rec.Actions[0] != (loadout.PinItem{Item: chest}) || rec.Actions[1] != (loadout.ExcludeItem{Item: chest}) {
		t.Fatalf("actions = %#v", rec.Actions)
	}
}

func TestChooseItemCancelledDispatchesNothing(t *testing.T) {
	helmet := armor("helmet", inventory.Helmet, false)
	state := loadout.NewState("titan")
	rec := &loadout.Recorder{}
	p := New(rec)
	p.SetProps(PropsFrom(state, titanStore(helmet)))

	pickers := map[string]ItemPicker{
		"cancelled": ItemPickerFunc(func(context.Context, PickRequest) (PickResult, error) {
			return Cancelled(), nil
		}),
		"error": ItemPickerFunc(func(ctx context.Context, _ PickRequest) (PickResult, error) {
			return PickResult{}, context.Canceled
		}),
	}
	for name, picker := range pickers {
		t.Run(name, func(t *testing.T) {
			p.ChooseLockItem(context.Background(), picker)
			p.ChooseExcludeItem(context.Background(), picker)
			if len(rec.Actions) != 0 {
				t.Fatalf("dispatched %v", rec.Actions)
			}
			next, err := loadout.ApplyAll(state, rec.Drain())
			if err != nil {
				t.Fatalf("ApplyAll: %v", err)
			}
			if len(next.PinnedItems) != 0 || len(next.ExcludedItems) != 0 {
				t.Fatal("next render's state must be unchanged")
			}
		})
	}
}

func TestResolveIgnoresEmptySelection(t *testing.T) {
	called := false
	req := PickRequest{OnPicked: func(*inventory.Item) { called = true }}
	Resolve(req, PickResult{})
	Resolve(req, Cancelled())
	if called {
		t.Fatal("OnPicked must only run for a selected item")
	}
}

func TestExoticLabel(t *testing.T) {
	cases := map[loadout.ExoticHash]string{
		loadout.NoExotic:  "No exotic",
		loadout.AnyExotic: "Any exotic",
		0:                 "None selected",
		99:                "exotic 99",
	}
	for h, want := range cases {
		if got := ExoticLabel(nil, h); got != want {
			t.Fatalf("ExoticLabel(%d) = %q, want %q", h, got, want)
		}
	}
}
