package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/loadout/internal/inventory"
)

// InventoryRepo writes a whole inventory at once.
type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

// Replace swaps the stored inventory for inv in one transaction.
func (r *InventoryRepo) Replace(ctx context.Context, inv *inventory.Inventory) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, stmt := range []string{`DELETE FROM items`, `DELETE FROM stores`, `DELETE FROM mods`} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		for si, s := range inv.Stores {
			if err := upsertStore(ctx, tx, s, si); err != nil {
				return fmt.Errorf("store %q: %w", s.ID, err)
			}
			for ii, it := range s.Items {
				if err := upsertItem(ctx, tx, it, ii); err != nil {
					return fmt.Errorf("item %q: %w", it.ID, err)
				}
			}
		}
		for mi, m := range inv.Mods {
			if err := upsertMod(ctx, tx, m, mi); err != nil {
				return fmt.Errorf("mod %d: %w", m.Hash, err)
			}
		}
		return nil
	})
}

// Assemble attaches items to their stores. Items whose store is missing are dropped.
func Assemble(stores []*inventory.Store, items []*inventory.Item, mods []inventory.ModDef) *inventory.Inventory {
	byID := make(map[string]*inventory.Store, len(stores))
	for _, s := range stores {
		byID[s.ID] = s
	}
	for _, it := range items {
		if s := byID[it.OwnerID]; s != nil {
			s.Items = append(s.Items, it)
		}
	}
	return &inventory.Inventory{Stores: stores, Mods: mods}
}
