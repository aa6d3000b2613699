package panel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/loadout/internal/inventory"
	"github.com/jask/loadout/internal/loadout"
)

var ErrInvalidMaxStatMods = errors.New("max stat mods must be a whole number from 0 to 5")

// Props is the immutable snapshot the panel renders from.
type Props struct {
	Store              *inventory.Store
	PinnedItems        loadout.PinnedItems
	ExcludedItems      loadout.ExcludedItems
	LockedMods         []inventory.ModDef
	UpgradeSpendTier   loadout.UpgradeSpendTier
	LockItemEnergyType bool
	LockedExotic       loadout.ExoticHash
	MaxStatMods        int
}

// PropsFrom builds the panel snapshot for store from reducer state.
func PropsFrom(s loadout.State, store *inventory.Store) Props {
	return Props{
		Store:              store,
		PinnedItems:        s.PinnedItems,
		ExcludedItems:      s.ExcludedItems,
		LockedMods:         s.LockedMods,
		UpgradeSpendTier:   s.UpgradeSpendTier,
		LockItemEnergyType: s.LockItemEnergyType,
		LockedExotic:       s.LockedExotic,
		MaxStatMods:        s.MaxStatMods,
	}
}

// Overlay names the dialog drawn on top of the panel.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayExoticPicker
	OverlayUpgradePicker
)

// Panel turns user gestures into dispatched actions and tracks which dialog is open.
type Panel struct {
	dispatch          loadout.Dispatcher
	props             Props
	showExoticPicker  bool
	showUpgradePicker bool
}

// New returns a panel that dispatches to d.
func New(d loadout.Dispatcher) *Panel {
	return &Panel{dispatch: d}
}

// SetProps replaces the snapshot. Dialog flags are kept.
func (p *Panel) SetProps(props Props) { p.props = props }

func (p *Panel) Props() Props { return p.props }

func (p *Panel) PinnedItems() []*inventory.Item { return PinnedList(p.props.PinnedItems) }

func (p *Panel) ExcludedItems() []*inventory.Item { return ExcludedList(p.props.ExcludedItems) }

// LockEquipped pins every eligible item the selected character has equipped.
func (p *Panel) LockEquipped() {
	if p.props.Store == nil {
		return
	}
	var items []*inventory.Item
	for _, it := range p.props.Store.Items {
		if it != nil && it.Equipped && inventory.IsLoadoutBuilderItem(it) {
			items = append(items, it)
		}
	}
	p.dispatch.Dispatch(loadout.SetPinnedItems{Items: items})
}

func (p *Panel) RemoveLockedMod(mod inventory.ModDef) {
	p.dispatch.Dispatch(loadout.RemoveLockedMod{Mod: mod})
}

func (p *Panel) PinItem(item *inventory.Item) {
	p.dispatch.Dispatch(loadout.PinItem{Item: item})
}

func (p *Panel) UnpinItem(item *inventory.Item) {
	p.dispatch.Dispatch(loadout.UnpinItem{Item: item})
}

func (p *Panel) ExcludeItem(item *inventory.Item) {
	p.dispatch.Dispatch(loadout.ExcludeItem{Item: item})
}

func (p *Panel) UnexcludeItem(item *inventory.Item) {
	p.dispatch.Dispatch(loadout.UnexcludeItem{Item: item})
}

// DropPinned handles an item dropped on the pinned area.
func (p *Panel) DropPinned(item *inventory.Item) { p.PinItem(item) }

// DropExcluded handles an item dropped on the excluded area.
func (p *Panel) DropExcluded(item *inventory.Item) { p.ExcludeItem(item) }

// MaxStatModsChanged takes the raw value of the max stat mods control.
func (p *Panel) MaxStatModsChanged(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 || n > loadout.MaxStatModsLimit {
		return fmt.Errorf("%q: %w", value, ErrInvalidMaxStatMods)
	}
	p.dispatch.Dispatch(loadout.MaxStatModsChanged{MaxStatMods: n})
	return nil
}

// Option is one entry of a select control.
type Option struct {
	Value string
	Label string
}

// MaxStatModsOptions lists the choices of the max stat mods control.
func MaxStatModsOptions() []Option {
	opts := []Option{{Value: "0", Label: "No stat mods"}}
	for n := 1; n <= loadout.MaxStatModsLimit; n++ {
		label := fmt.Sprintf("Up to %d stat mods", n)
		if n == 1 {
			label = "Up to 1 stat mod"
		}
		opts = append(opts, Option{Value: strconv.Itoa(n), Label: label})
	}
	return opts
}

func (p *Panel) OpenModPicker() {
	p.dispatch.Dispatch(loadout.OpenModPicker{})
}

func (p *Panel) RemoveLockedExotic() {
	p.dispatch.Dispatch(loadout.RemoveLockedExotic{})
}

func (p *Panel) ExoticPickerOpen() bool  { return p.showExoticPicker }
func (p *Panel) UpgradePickerOpen() bool { return p.showUpgradePicker }

func (p *Panel) OpenExoticPicker()  { p.showExoticPicker = true }
func (p *Panel) CloseExoticPicker() { p.showExoticPicker = false }

// SelectExotic locks sel and closes the exotic picker.
func (p *Panel) SelectExotic(sel loadout.ExoticHash) {
	p.dispatch.Dispatch(loadout.LockExotic{Exotic: sel})
	p.CloseExoticPicker()
}

func (p *Panel) OpenUpgradePicker()  { p.showUpgradePicker = true }
func (p *Panel) CloseUpgradePicker() { p.showUpgradePicker = false }

// SelectUpgradeSpendTier changes the tier and closes the upgrade picker.
func (p *Panel) SelectUpgradeSpendTier(tier loadout.UpgradeSpendTier) {
	p.dispatch.Dispatch(loadout.UpgradeSpendTierChanged{Tier: tier})
	p.CloseUpgradePicker()
}

// SetLockItemEnergyType changes the energy lock flag; the upgrade picker stays open.
func (p *Panel) SetLockItemEnergyType(lock bool) {
	p.dispatch.Dispatch(loadout.LockItemEnergyTypeChanged{LockItemEnergyType: lock})
}

// ActiveOverlay reports the dialog on top. The exotic picker wins when both are open.
func (p *Panel) ActiveOverlay() Overlay {
	switch {
	case p.showExoticPicker:
		return OverlayExoticPicker
	case p.showUpgradePicker:
		return OverlayUpgradePicker
	default:
		return OverlayNone
	}
}

func (p *Panel) itemRequest(title string, onPicked func(*inventory.Item), extra func(*inventory.Item) bool) PickRequest {
	store := p.props.Store
	return PickRequest{
		Title: title,
		Filter: func(it *inventory.Item) bool {
			return inventory.IsLoadoutBuilderItem(it) &&
				inventory.CanBeEquippedBy(it, store, true) &&
				(extra == nil || extra(it))
		},
		SortKey:  inventory.SortKey,
		OnPicked: onPicked,
	}
}

// LockItemRequest is the picker for pinning an item. Buckets that already hold a
// pinned item are left out.
func (p *Panel) LockItemRequest() PickRequest {
	pinned := p.props.PinnedItems
	return p.itemRequest("Lock item", p.PinItem, func(it *inventory.Item) bool {
		return pinned[it.Bucket] == nil
	})
}

// ExcludeItemRequest is the picker for excluding an item.
func (p *Panel) ExcludeItemRequest() PickRequest {
	return p.itemRequest("Exclude item", p.ExcludeItem, nil)
}

// ChooseItem runs req on picker. A cancelled or failed picker dispatches nothing.
func (p *Panel) ChooseItem(ctx context.Context, picker ItemPicker, req PickRequest) {
	res, err := picker.Pick(ctx, req)
	if err != nil {
		return
	}
	Resolve(req, res)
}

func (p *Panel) ChooseLockItem(ctx context.Context, picker ItemPicker) {
	p.ChooseItem(ctx, picker, p.LockItemRequest())
}

func (p *Panel) ChooseExcludeItem(ctx context.Context, picker ItemPicker) {
	p.ChooseItem(ctx, picker, p.ExcludeItemRequest())
}
