package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/loadout/internal/inventory"
)

// ItemRepo handles items. OwnerID maps to the store_id column.
type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

func (r *ItemRepo) Upsert(ctx context.Context, it *inventory.Item, position int) error {
	return upsertItem(ctx, r.db, it, position)
}

func upsertItem(ctx context.Context, q querier, it *inventory.Item, position int) error {
	_, err := q.ExecContext(ctx, `
	INSERT INTO items(id, store_id, hash, name, bucket, class, tier, equipped, instanced, equippable, energy, postmaster, power, position)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 store_id=excluded.store_id,
	 hash=excluded.hash,
	 name=excluded.name,
	 bucket=excluded.bucket,
	 class=excluded.class,
	 tier=excluded.tier,
	 equipped=excluded.equipped,
	 instanced=excluded.instanced,
	 equippable=excluded.equippable,
	 energy=excluded.energy,
	 postmaster=excluded.postmaster,
	 power=excluded.power,
	 position=excluded.position;
	`, it.ID, it.OwnerID, it.Hash, it.Name, uint32(it.Bucket), it.Class.String(), string(it.Tier),
		boolInt(it.Equipped), boolInt(it.Instanced), boolInt(it.Equippable),
		it.Energy, boolInt(it.InPostmaster), it.Power, position)
	return err
}

// List returns every item ordered by store, then position within the store.
func (r *ItemRepo) List(ctx context.Context) ([]*inventory.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT i.id, i.store_id, i.hash, i.name, i.bucket, i.class, i.tier,
	       i.equipped, i.instanced, i.equippable, i.energy, i.postmaster, i.power
	FROM items i JOIN stores s ON s.id = i.store_id
	ORDER BY s.position, i.position, i.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*inventory.Item
	for rows.Next() {
		var (
			it     inventory.Item
			bucket uint32
			class  string
			tier   string
		)
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Hash, &it.Name, &bucket, &class, &tier,
			&it.Equipped, &it.Instanced, &it.Equippable, &it.Energy, &it.InPostmaster, &it.Power); err != nil {
			return nil, err
		}
		c, err := inventory.ParseClassType(class)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", it.ID, err)
		}
		it.Bucket = inventory.BucketHash(bucket)
		it.Class = c
		it.Tier = inventory.Tier(tier)
		out = append(out, &it)
	}
	return out, rows.Err()
}

func (r *ItemRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}
