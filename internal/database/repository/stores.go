package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/loadout/internal/inventory"
)

// StoreRepo handles stores (characters and the vault).
type StoreRepo struct {
	db *sql.DB
}

func NewStoreRepo(db *sql.DB) *StoreRepo {
	return &StoreRepo{db: db}
}

func (r *StoreRepo) Upsert(ctx context.Context, s *inventory.Store, position int) error {
	return upsertStore(ctx, r.db, s, position)
}

func upsertStore(ctx context.Context, q querier, s *inventory.Store, position int) error {
	_, err := q.ExecContext(ctx, `
	INSERT INTO stores(id, name, class, vault, position)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 class=excluded.class,
	 vault=excluded.vault,
	 position=excluded.position;
	`, s.ID, s.Name, s.Class.String(), boolInt(s.Vault), position)
	return err
}

// List returns every store in import order, without items.
func (r *StoreRepo) List(ctx context.Context) ([]*inventory.Store, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, class, vault FROM stores ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*inventory.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StoreRepo) Get(ctx context.Context, id string) (*inventory.Store, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, class, vault FROM stores WHERE id = ?`, id)
	s, err := scanStore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store %q: %w", id, ErrNotFound)
	}
	return s, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStore(sc scanner) (*inventory.Store, error) {
	var (
		s     inventory.Store
		class string
	)
	if err := sc.Scan(&s.ID, &s.Name, &class, &s.Vault); err != nil {
		return nil, err
	}
	c, err := inventory.ParseClassType(class)
	if err != nil {
		return nil, fmt.Errorf("store %q: %w", s.ID, err)
	}
	s.Class = c
	return &s, nil
}
