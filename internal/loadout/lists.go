package loadout

import (
	"slices"

	"github.com/jask/loadout/internal/inventory"
)

// Sorted returns the pinned items in LockableBuckets order, nils dropped.
func (p PinnedItems) Sorted() []*inventory.Item {
	buckets := make([]inventory.BucketHash, 0, len(p))
	for b := range p {
		buckets = append(buckets, b)
	}
	slices.Sort(buckets)
	out := make([]*inventory.Item, 0, len(p))
	for _, b := range buckets {
		if it := p[b]; it != nil {
			out = append(out, it)
		}
	}
	inventory.SortByBucket(out, nil)
	return out
}

// Sorted flattens the excluded lists in LockableBuckets order, nils dropped. Items of
// one bucket keep their list order.
func (ex ExcludedItems) Sorted() []*inventory.Item {
	buckets := make([]inventory.BucketHash, 0, len(ex))
	n := 0
	for b, list := range ex {
		buckets = append(buckets, b)
		n += len(list)
	}
	slices.Sort(buckets)
	out := make([]*inventory.Item, 0, n)
	for _, b := range buckets {
		for _, it := range ex[b] {
			if it != nil {
				out = append(out, it)
			}
		}
	}
	inventory.SortByBucket(out, nil)
	return out
}
