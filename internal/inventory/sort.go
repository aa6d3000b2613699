package inventory

import "sort"

// SortKey orders items by their bucket's position in LockableBuckets. Unknown buckets
// get len(LockableBuckets) so they land after every known bucket.
func SortKey(item *Item) int {
	idx := BucketIndex(item.Bucket)
	if idx < 0 {
		return len(LockableBuckets)
	}
	return idx
}

// SortByBucket stable-sorts items by SortKey. Unknown buckets are ordered by hash among
// themselves; tie, when non-nil, breaks ties inside one bucket.
func SortByBucket(items []*Item, tie func(a, b *Item) bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		ka, kb := SortKey(a), SortKey(b)
		if ka != kb {
			return ka < kb
		}
		if a.Bucket != b.Bucket {
			return a.Bucket < b.Bucket
		}
		if tie != nil {
			return tie(a, b)
		}
		return false
	})
}
