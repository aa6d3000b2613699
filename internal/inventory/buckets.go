package inventory

import "strconv"

// BucketHash identifies an equipment slot.
type BucketHash uint32

const (
	Helmet     BucketHash = 3448274439
	Gauntlets  BucketHash = 3551918588
	ChestArmor BucketHash = 14239492
	LegArmor   BucketHash = 20886954
	ClassItem  BucketHash = 1585787867
)

// LockableBuckets is the display order for every list of lockable armor.
var LockableBuckets = []BucketHash{Helmet, Gauntlets, ChestArmor, LegArmor, ClassItem}

var bucketNames = map[BucketHash]string{
	Helmet:     "Helmet",
	Gauntlets:  "Gauntlets",
	ChestArmor: "Chest Armor",
	LegArmor:   "Leg Armor",
	ClassItem:  "Class Item",
}

// BucketIndex returns the position of h in LockableBuckets, or -1.
func BucketIndex(h BucketHash) int {
	for i, b := range LockableBuckets {
		if b == h {
			return i
		}
	}
	return -1
}

// IsLockable reports whether h is one of the armor buckets the panel can lock.
func IsLockable(h BucketHash) bool {
	return BucketIndex(h) >= 0
}

func (h BucketHash) String() string {
	if name, ok := bucketNames[h]; ok {
		return name
	}
	return "bucket " + strconv.FormatUint(uint64(h), 10)
}

// ParseBucket accepts either a bucket name ("helmet", "chest armor") or its numeric hash.
func ParseBucket(s string) (BucketHash, bool) {
	k := normalize(s)
	for h, name := range bucketNames {
		if normalize(name) == k {
			return h, true
		}
	}
	switch k {
	case "chest":
		return ChestArmor, true
	case "legs", "leg":
		return LegArmor, true
	case "arms", "gloves":
		return Gauntlets, true
	case "class", "classitem", "class_item":
		return ClassItem, true
	}
	n, err := strconv.ParseUint(k, 10, 32)
	if err != nil {
		return 0, false
	}
	return BucketHash(n), true
}
