package inventory

import (
	"fmt"
	"strings"
)

// ClassType is the character class an item or store belongs to.
type ClassType int

const (
	Titan ClassType = iota
	Hunter
	Warlock
	AnyClass
)

var classNames = []string{"titan", "hunter", "warlock", "any"}

func (c ClassType) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return fmt.Sprintf("class(%d)", int(c))
	}
	return classNames[c]
}

func ParseClassType(s string) (ClassType, error) {
	k := normalize(s)
	if k == "" || k == "unknown" {
		return AnyClass, nil
	}
	for i, name := range classNames {
		if name == k {
			return ClassType(i), nil
		}
	}
	return AnyClass, fmt.Errorf("unknown class %q", s)
}

func (c ClassType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ClassType) UnmarshalText(b []byte) error {
	parsed, err := ParseClassType(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Tier is the rarity of an item.
type Tier string

const (
	TierCommon    Tier = "common"
	TierRare      Tier = "rare"
	TierLegendary Tier = "legendary"
	TierExotic    Tier = "exotic"
)

// Item is one instanced (or not) inventory item.
type Item struct {
	ID           string
	Hash         uint32
	Name         string
	Bucket       BucketHash
	Class        ClassType
	Tier         Tier
	OwnerID      string
	Equipped     bool
	Instanced    bool
	Equippable   bool
	Energy       int
	InPostmaster bool
	Power        int
}

func (i *Item) IsExotic() bool { return i != nil && i.Tier == TierExotic }

// Label is the one-line text used in lists and pickers.
func (i *Item) Label() string {
	if i == nil {
		return ""
	}
	if i.Power > 0 {
		return fmt.Sprintf("%s (%d)", i.Name, i.Power)
	}
	return i.Name
}

// Store is a character, or the vault, with the items it holds.
type Store struct {
	ID    string
	Name  string
	Class ClassType
	Vault bool
	Items []*Item
}

// EquippedItems returns the items currently equipped on s, in store order.
func (s *Store) EquippedItems() []*Item {
	if s == nil {
		return nil
	}
	out := make([]*Item, 0, len(LockableBuckets))
	for _, it := range s.Items {
		if it != nil && it.Equipped {
			out = append(out, it)
		}
	}
	return out
}

// ModDef is a selectable armor mod definition.
type ModDef struct {
	Hash     uint32
	Name     string
	Category string
	Energy   int
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
