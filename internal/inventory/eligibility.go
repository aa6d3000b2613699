package inventory

// IsLoadoutBuilderItem reports whether item can take part in generated armor sets:
// instanced, equippable armor in a lockable bucket that carries an energy capacity.
func IsLoadoutBuilderItem(item *Item) bool {
	if item == nil {
		return false
	}
	return item.Instanced && item.Equippable && IsLockable(item.Bucket) && item.Energy > 0
}

// CanBeEquippedBy reports whether store's character could wear item.
// Items waiting in the postmaster only qualify when allowPostmaster is set.
func CanBeEquippedBy(item *Item, store *Store, allowPostmaster bool) bool {
	if item == nil || store == nil || store.Vault {
		return false
	}
	if !item.Equippable {
		return false
	}
	if item.InPostmaster && !allowPostmaster {
		return false
	}
	return item.Class == AnyClass || item.Class == store.Class
}
