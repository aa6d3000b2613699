package repository

import (
	"context"
	"database/sql"

	"github.com/jask/loadout/internal/inventory"
)

// ModRepo handles the mod catalog.
type ModRepo struct {
	db *sql.DB
}

func NewModRepo(db *sql.DB) *ModRepo {
	return &ModRepo{db: db}
}

func (r *ModRepo) Upsert(ctx context.Context, m inventory.ModDef, position int) error {
	return upsertMod(ctx, r.db, m, position)
}

func upsertMod(ctx context.Context, q querier, m inventory.ModDef, position int) error {
	_, err := q.ExecContext(ctx, `
	INSERT INTO mods(hash, name, category, energy, position)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(hash) DO UPDATE SET
	 name=excluded.name,
	 category=excluded.category,
	 energy=excluded.energy,
	 position=excluded.position;
	`, m.Hash, m.Name, m.Category, m.Energy, position)
	return err
}

func (r *ModRepo) List(ctx context.Context) ([]inventory.ModDef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT hash, name, category, energy FROM mods ORDER BY position, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []inventory.ModDef
	for rows.Next() {
		var m inventory.ModDef
		if err := rows.Scan(&m.Hash, &m.Name, &m.Category, &m.Energy); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
