package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jask/loadout/internal/inventory"
	"github.com/jask/loadout/internal/loadout"
)

// StateRecord is the persisted lock state. Items and mods are kept as references.
type StateRecord struct {
	StoreID            string
	Pinned             map[inventory.BucketHash]string
	Excluded           map[inventory.BucketHash][]string
	Mods               []uint32
	UpgradeSpendTier   loadout.UpgradeSpendTier
	LockItemEnergyType bool
	LockedExotic       loadout.ExoticHash
	MaxStatMods        int
}

// RecordOf captures s for storage.
func RecordOf(s loadout.State) StateRecord {
	rec := StateRecord{
		StoreID:            s.StoreID,
		Pinned:             make(map[inventory.BucketHash]string, len(s.PinnedItems)),
		Excluded:           make(map[inventory.BucketHash][]string, len(s.ExcludedItems)),
		UpgradeSpendTier:   s.UpgradeSpendTier,
		LockItemEnergyType: s.LockItemEnergyType,
		LockedExotic:       s.LockedExotic,
		MaxStatMods:        s.MaxStatMods,
	}
	for b, it := range s.PinnedItems {
		if it != nil {
			rec.Pinned[b] = it.ID
		}
	}
	for b, list := range s.ExcludedItems {
		for _, it := range list {
			if it != nil {
				rec.Excluded[b] = append(rec.Excluded[b], it.ID)
			}
		}
	}
	for _, m := range s.LockedMods {
		rec.Mods = append(rec.Mods, m.Hash)
	}
	return rec
}

// Resolve rebuilds the state against inv. References that no longer resolve are
// dropped and reported.
func (rec StateRecord) Resolve(inv *inventory.Inventory) (loadout.State, []string) {
	s := loadout.NewState(rec.StoreID)
	s.UpgradeSpendTier = rec.UpgradeSpendTier
	s.LockItemEnergyType = rec.LockItemEnergyType
	s.LockedExotic = rec.LockedExotic
	s.MaxStatMods = rec.MaxStatMods
	var missing []string
	for b, id := range rec.Pinned {
		if it := inv.ItemByID(id); it != nil {
			s.PinnedItems[b] = it
		} else {
			missing = append(missing, "pinned item "+id)
		}
	}
	for b, ids := range rec.Excluded {
		for _, id := range ids {
			if it := inv.ItemByID(id); it != nil {
				s.ExcludedItems[b] = append(s.ExcludedItems[b], it)
			} else {
				missing = append(missing, "excluded item "+id)
			}
		}
	}
	for _, h := range rec.Mods {
		if m, ok := inv.Mod(h); ok {
			s.LockedMods = append(s.LockedMods, m)
		} else {
			missing = append(missing, fmt.Sprintf("mod %d", h))
		}
	}
	sort.Strings(missing)
	return s, missing
}

// StateRepo stores the single lock state row and its lists.
type StateRepo struct {
	db *sql.DB
}

func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

func (r *StateRepo) Save(ctx context.Context, rec StateRecord) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO loadout_state(id, store_id, upgrade_spend_tier, lock_item_energy_type, locked_exotic, max_stat_mods, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
		 store_id=excluded.store_id,
		 upgrade_spend_tier=excluded.upgrade_spend_tier,
		 lock_item_energy_type=excluded.lock_item_energy_type,
		 locked_exotic=excluded.locked_exotic,
		 max_stat_mods=excluded.max_stat_mods,
		 updated_at=CURRENT_TIMESTAMP;
		`, rec.StoreID, int(rec.UpgradeSpendTier), boolInt(rec.LockItemEnergyType), int64(rec.LockedExotic), rec.MaxStatMods)
		if err != nil {
			return fmt.Errorf("save state: %w", err)
		}
		for _, stmt := range []string{`DELETE FROM pinned_items`, `DELETE FROM excluded_items`, `DELETE FROM locked_mods`} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		for b, id := range rec.Pinned {
			if _, err := tx.ExecContext(ctx, `INSERT INTO pinned_items(bucket, item_id) VALUES (?, ?)`, uint32(b), id); err != nil {
				return fmt.Errorf("save pinned: %w", err)
			}
		}
		for b, ids := range rec.Excluded {
			for pos, id := range ids {
				if _, err := tx.ExecContext(ctx, `INSERT INTO excluded_items(bucket, position, item_id) VALUES (?, ?, ?)`, uint32(b), pos, id); err != nil {
					return fmt.Errorf("save excluded: %w", err)
				}
			}
		}
		for pos, h := range rec.Mods {
			if _, err := tx.ExecContext(ctx, `INSERT INTO locked_mods(position, mod_hash) VALUES (?, ?)`, pos, h); err != nil {
				return fmt.Errorf("save mods: %w", err)
			}
		}
		return nil
	})
}

// Load returns the saved state, or ErrNotFound before the first save.
func (r *StateRepo) Load(ctx context.Context) (StateRecord, error) {
	rec := StateRecord{
		Pinned:   map[inventory.BucketHash]string{},
		Excluded: map[inventory.BucketHash][]string{},
	}
	var (
		tier   int
		exotic int64
	)
	err := r.db.QueryRowContext(ctx, `
	SELECT store_id, upgrade_spend_tier, lock_item_energy_type, locked_exotic, max_stat_mods
	FROM loadout_state WHERE id = 1`).Scan(&rec.StoreID, &tier, &rec.LockItemEnergyType, &exotic, &rec.MaxStatMods)
	if errors.Is(err, sql.ErrNoRows) {
		return StateRecord{}, fmt.Errorf("loadout state: %w", ErrNotFound)
	}
	if err != nil {
		return StateRecord{}, err
	}
	rec.UpgradeSpendTier = loadout.UpgradeSpendTier(tier)
	rec.LockedExotic = loadout.ExoticHash(exotic)

	if err := r.eachRow(ctx, `SELECT bucket, item_id FROM pinned_items`, func(rows *sql.Rows) error {
		var (
			b  uint32
			id string
		)
		if err := rows.Scan(&b, &id); err != nil {
			return err
		}
		rec.Pinned[inventory.BucketHash(b)] = id
		return nil
	}); err != nil {
		return StateRecord{}, err
	}
	if err := r.eachRow(ctx, `SELECT bucket, item_id FROM excluded_items ORDER BY bucket, position`, func(rows *sql.Rows) error {
		var (
			b  uint32
			id string
		)
		if err := rows.Scan(&b, &id); err != nil {
			return err
		}
		rec.Excluded[inventory.BucketHash(b)] = append(rec.Excluded[inventory.BucketHash(b)], id)
		return nil
	}); err != nil {
		return StateRecord{}, err
	}
	if err := r.eachRow(ctx, `SELECT mod_hash FROM locked_mods ORDER BY position`, func(rows *sql.Rows) error {
		var h uint32
		if err := rows.Scan(&h); err != nil {
			return err
		}
		rec.Mods = append(rec.Mods, h)
		return nil
	}); err != nil {
		return StateRecord{}, err
	}
	return rec, nil
}

func (r *StateRepo) eachRow(ctx context.Context, query string, fn func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
