package inventory

// Inventory is everything the panel can pick from: every store and the mod catalog.
type Inventory struct {
	Stores []*Store
	Mods   []ModDef
}

// Store returns the store with id, or nil.
func (inv *Inventory) Store(id string) *Store {
	if inv == nil {
		return nil
	}
	for _, s := range inv.Stores {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Characters returns the non-vault stores in order.
func (inv *Inventory) Characters() []*Store {
	if inv == nil {
		return nil
	}
	out := make([]*Store, 0, len(inv.Stores))
	for _, s := range inv.Stores {
		if !s.Vault {
			out = append(out, s)
		}
	}
	return out
}

// AllItems flattens every store's items, stores in order.
func (inv *Inventory) AllItems() []*Item {
	if inv == nil {
		return nil
	}
	n := 0
	for _, s := range inv.Stores {
		n += len(s.Items)
	}
	out := make([]*Item, 0, n)
	for _, s := range inv.Stores {
		out = append(out, s.Items...)
	}
	return out
}

func (inv *Inventory) ItemByID(id string) *Item {
	if inv == nil {
		return nil
	}
	for _, s := range inv.Stores {
		for _, it := range s.Items {
			if it.ID == id {
				return it
			}
		}
	}
	return nil
}

// ItemByHash returns the first item carrying definition hash h.
func (inv *Inventory) ItemByHash(h uint32) *Item {
	if inv == nil {
		return nil
	}
	for _, s := range inv.Stores {
		for _, it := range s.Items {
			if it.Hash == h {
				return it
			}
		}
	}
	return nil
}

// Exotics returns one item per distinct exotic armor definition usable by class,
// in bucket order then name.
func (inv *Inventory) Exotics(class ClassType) []*Item {
	seen := make(map[uint32]bool)
	var out []*Item
	for _, it := range inv.AllItems() {
		if !it.IsExotic() || !IsLockable(it.Bucket) || seen[it.Hash] {
			continue
		}
		if it.Class != AnyClass && it.Class != class {
			continue
		}
		seen[it.Hash] = true
		out = append(out, it)
	}
	SortByBucket(out, func(a, b *Item) bool { return a.Name < b.Name })
	return out
}

func (inv *Inventory) Mod(hash uint32) (ModDef, bool) {
	if inv == nil {
		return ModDef{}, false
	}
	for _, m := range inv.Mods {
		if m.Hash == hash {
			return m, true
		}
	}
	return ModDef{}, false
}
