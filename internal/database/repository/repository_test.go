package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/loadout/internal/database"
	"github.com/jask/loadout/internal/database/repository"
	"github.com/jask/loadout/internal/inventory"
	"github.com/jask/loadout/internal/loadout"
)

func openTestDB(t *testing.T) (*sql.DB, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, ctx
}

func loadInventory(t *testing.T, ctx context.Context, db *sql.DB) *inventory.Inventory {
	t.Helper()
	stores, err := repository.NewStoreRepo(db).List(ctx)
	require.NoError(t, err)
	items, err := repository.NewItemRepo(db).List(ctx)
	require.NoError(t, err)
	mods, err := repository.NewModRepo(db).List(ctx)
	require.NoError(t, err)
	return repository.Assemble(stores, items, mods)
}

func TestInventoryReplaceRoundTrip(t *testing.T) {
	t.Parallel()
	db, ctx := openTestDB(t)

	want := database.DemoInventory()
	require.NoError(t, repository.NewInventoryRepo(db).Replace(ctx, want))

	got := loadInventory(t, ctx, db)
	require.Len(t, got.Stores, len(want.Stores))
	for i, s := range want.Stores {
		require.Equal(t, s.ID, got.Stores[i].ID)
		require.Equal(t, s.Class, got.Stores[i].Class)
		require.Equal(t, s.Vault, got.Stores[i].Vault)
		require.Len(t, got.Stores[i].Items, len(s.Items))
		for j, it := range s.Items {
			require.Equal(t, *it, *got.Stores[i].Items[j])
		}
	}
	require.Equal(t, want.Mods, got.Mods)

	// Replacing with a smaller inventory removes the old rows.
	small := &inventory.Inventory{Stores: []*inventory.Store{{ID: "only", Name: "Only", Class: inventory.Hunter}}}
	require.NoError(t, repository.NewInventoryRepo(db).Replace(ctx, small))
	got = loadInventory(t, ctx, db)
	require.Len(t, got.Stores, 1)
	require.Empty(t, got.AllItems())
	require.Empty(t, got.Mods)
}

func TestStoreGetNotFound(t *testing.T) {
	t.Parallel()
	db, ctx := openTestDB(t)

	_, err := repository.NewStoreRepo(db).Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	store := &inventory.Store{ID: "titan", Name: "Titan", Class: inventory.Titan}
	require.NoError(t, repository.NewStoreRepo(db).Upsert(ctx, store, 0))
	got, err := repository.NewStoreRepo(db).Get(ctx, "titan")
	require.NoError(t, err)
	require.Equal(t, inventory.Titan, got.Class)
}

func TestStateSaveLoad(t *testing.T) {
	t.Parallel()
	db, ctx := openTestDB(t)
	repo := repository.NewStateRepo(db)

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, repository.ErrNotFound)

	inv := database.DemoInventory()
	require.NoError(t, repository.NewInventoryRepo(db).Replace(ctx, inv))
	titan := inv.Stores[0]
	vault := inv.Stores[3]

	s := loadout.NewState(titan.ID)
	s, err = loadout.ApplyAll(s, []loadout.Action{
		loadout.PinItem{Item: titan.Items[0]},
		loadout.ExcludeItem{Item: vault.Items[1]},
		loadout.ExcludeItem{Item: vault.Items[0]},
		loadout.LockedModsChanged{Mods: []inventory.ModDef{inv.Mods[2], inv.Mods[2], inv.Mods[0]}},
		loadout.UpgradeSpendTierChanged{Tier: loadout.AscendantShardsNotExotic},
		loadout.LockItemEnergyTypeChanged{LockItemEnergyType: true},
		loadout.LockExotic{Exotic: loadout.AnyExotic},
		loadout.MaxStatModsChanged{MaxStatMods: 4},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, repository.RecordOf(s)))

	rec, err := repo.Load(ctx)
	require.NoError(t, err)
	got, missing := rec.Resolve(inv)
	require.Empty(t, missing)
	require.Equal(t, s.StoreID, got.StoreID)
	require.Equal(t, s.PinnedItems, got.PinnedItems)
	require.Equal(t, s.ExcludedItems, got.ExcludedItems)
	require.Equal(t, s.LockedMods, got.LockedMods)
	require.Equal(t, loadout.AscendantShardsNotExotic, got.UpgradeSpendTier)
	require.True(t, got.LockItemEnergyType)
	require.Equal(t, loadout.AnyExotic, got.LockedExotic)
	require.Equal(t, 4, got.MaxStatMods)

	// Saving again overwrites the lists.
	s, err = loadout.Reduce(s, loadout.UnexcludeItem{Item: vault.Items[1]})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, repository.RecordOf(s)))
	rec, err = repo.Load(ctx)
	require.NoError(t, err)
	got, _ = rec.Resolve(inv)
	require.Equal(t, s.ExcludedItems, got.ExcludedItems)
}

func TestStateResolveReportsMissing(t *testing.T) {
	t.Parallel()
	rec := repository.StateRecord{
		StoreID:  "titan",
		Pinned:   map[inventory.BucketHash]string{inventory.Helmet: "gone"},
		Excluded: map[inventory.BucketHash][]string{inventory.LegArmor: {"also-gone"}},
		Mods:     []uint32{99},
	}
	s, missing := rec.Resolve(&inventory.Inventory{})
	require.Empty(t, s.PinnedItems)
	require.Empty(t, s.ExcludedItems)
	require.Empty(t, s.LockedMods)
	require.Equal(t, []string{"excluded item also-gone", "mod 99", "pinned item gone"}, missing)
}
