package panel

import (
	"context"
	"sort"

	"github.com/jask/loadout/internal/inventory"
)

// PickRequest describes one item picker interaction.
type PickRequest struct {
	Title    string
	Filter   func(*inventory.Item) bool
	SortKey  func(*inventory.Item) int
	OnPicked func(*inventory.Item)
}

// PickResult is the outcome of a picker: a chosen item, or a cancellation.
type PickResult struct {
	Item      *inventory.Item
	Cancelled bool
}

// Selected is the result of choosing item.
func Selected(item *inventory.Item) PickResult { return PickResult{Item: item} }

// Cancelled is the result of dismissing the picker.
func Cancelled() PickResult { return PickResult{Cancelled: true} }

// ItemPicker shows a modal item picker and blocks until the user chooses or cancels.
type ItemPicker interface {
	Pick(ctx context.Context, req PickRequest) (PickResult, error)
}

// ItemPickerFunc adapts a function to ItemPicker.
type ItemPickerFunc func(ctx context.Context, req PickRequest) (PickResult, error)

func (f ItemPickerFunc) Pick(ctx context.Context, req PickRequest) (PickResult, error) {
	return f(ctx, req)
}

// Candidates returns the items of req's picker, filtered and ordered by SortKey.
// Items with equal keys keep their input order.
func Candidates(req PickRequest, items []*inventory.Item) []*inventory.Item {
	out := make([]*inventory.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if req.Filter == nil || req.Filter(it) {
			out = append(out, it)
		}
	}
	if req.SortKey != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return req.SortKey(out[i]) < req.SortKey(out[j])
		})
	}
	return out
}

// Resolve finishes a picker interaction. Only a selected item reaches OnPicked.
func Resolve(req PickRequest, res PickResult) {
	if res.Cancelled || res.Item == nil || req.OnPicked == nil {
		return
	}
	req.OnPicked(res.Item)
}
