package inventory

import (
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// snapshotFile is the YAML layout of an exported inventory.
type snapshotFile struct {
	Stores []snapshotStore `yaml:"stores"`
	Mods   []snapshotMod   `yaml:"mods"`
}

type snapshotStore struct {
	ID    string         `yaml:"id"`
	Name  string         `yaml:"name"`
	Class string         `yaml:"class"`
	Vault bool           `yaml:"vault"`
	Items []snapshotItem `yaml:"items"`
}

type snapshotItem struct {
	ID           string `yaml:"id"`
	Hash         uint32 `yaml:"hash"`
	Name         string `yaml:"name"`
	Bucket       string `yaml:"bucket"`
	Class        string `yaml:"class"`
	Tier         string `yaml:"tier"`
	Equipped     bool   `yaml:"equipped"`
	Instanced    *bool  `yaml:"instanced"`
	Equippable   *bool  `yaml:"equippable"`
	Energy       int    `yaml:"energy"`
	InPostmaster bool   `yaml:"postmaster"`
	Power        int    `yaml:"power"`
}

type snapshotMod struct {
	Hash     uint32 `yaml:"hash"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Energy   int    `yaml:"energy"`
}

// DecodeSnapshot reads a YAML inventory snapshot. Stores and items without an id get a
// name-derived one so re-importing the same file keeps ids stable.
func DecodeSnapshot(r io.Reader) (*Inventory, error) {
	var f snapshotFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	inv := &Inventory{}
	seenStores := make(map[string]bool)
	for si, ss := range f.Stores {
		class, err := ParseClassType(ss.Class)
		if err != nil {
			return nil, fmt.Errorf("store %d: %w", si, err)
		}
		id := ss.ID
		if id == "" {
			id = stableID("store", strconv.Itoa(si), ss.Name)
		}
		if seenStores[id] {
			return nil, fmt.Errorf("store %d: duplicate id %q", si, id)
		}
		seenStores[id] = true
		store := &Store{ID: id, Name: ss.Name, Class: class, Vault: ss.Vault}
		if store.Name == "" {
			store.Name = class.String()
		}
		for ii, raw := range ss.Items {
			item, err := raw.toItem(store, ii)
			if err != nil {
				return nil, fmt.Errorf("store %q item %d: %w", store.ID, ii, err)
			}
			store.Items = append(store.Items, item)
		}
		inv.Stores = append(inv.Stores, store)
	}
	for _, m := range f.Mods {
		inv.Mods = append(inv.Mods, ModDef{Hash: m.Hash, Name: m.Name, Category: m.Category, Energy: m.Energy})
	}
	return inv, nil
}

func (si snapshotItem) toItem(store *Store, idx int) (*Item, error) {
	bucket, ok := ParseBucket(si.Bucket)
	if !ok {
		return nil, fmt.Errorf("unknown bucket %q", si.Bucket)
	}
	class, err := ParseClassType(si.Class)
	if err != nil {
		return nil, err
	}
	tier := Tier(normalize(si.Tier))
	if tier == "" {
		tier = TierLegendary
	}
	id := si.ID
	if id == "" {
		id = stableID("item", store.ID, strconv.Itoa(idx), si.Name)
	}
	return &Item{
		ID:           id,
		Hash:         si.Hash,
		Name:         si.Name,
		Bucket:       bucket,
		Class:        class,
		Tier:         tier,
		OwnerID:      store.ID,
		Equipped:     si.Equipped && !store.Vault,
		Instanced:    boolOr(si.Instanced, true),
		Equippable:   boolOr(si.Equippable, true),
		Energy:       si.Energy,
		InPostmaster: si.InPostmaster,
		Power:        si.Power,
	}, nil
}

func stableID(parts ...string) string {
	key := ""
	for _, p := range parts {
		key += p + ":"
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
