package service

import (
	"context"
	"fmt"
	"io"

	"github.com/jask/loadout/internal/database/repository"
	"github.com/jask/loadout/internal/inventory"
)

// Importer replaces the stored inventory with a snapshot.
type Importer struct {
	Inventory *repository.InventoryRepo
}

type ImportResult struct {
	Stores int
	Items  int
	Mods   int
}

// ImportSnapshot decodes a YAML snapshot and stores it. The saved lock state is kept;
// references to items that are gone are dropped on the next load.
func (i *Importer) ImportSnapshot(ctx context.Context, r io.Reader) (ImportResult, error) {
	inv, err := inventory.DecodeSnapshot(r)
	if err != nil {
		return ImportResult{}, err
	}
	return i.Import(ctx, inv)
}

func (i *Importer) Import(ctx context.Context, inv *inventory.Inventory) (ImportResult, error) {
	if len(inv.Characters()) == 0 {
		return ImportResult{}, ErrNoCharacters
	}
	if err := i.Inventory.Replace(ctx, inv); err != nil {
		return ImportResult{}, fmt.Errorf("import: %w", err)
	}
	return ImportResult{Stores: len(inv.Stores), Items: len(inv.AllItems()), Mods: len(inv.Mods)}, nil
}
