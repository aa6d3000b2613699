package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/loadout/internal/database/repository"
	"github.com/jask/loadout/internal/inventory"
)

type seedPiece struct {
	name   string
	hash   uint32
	bucket inventory.BucketHash
	tier   inventory.Tier
	energy int
	power  int
}

var seedArmor = map[inventory.ClassType][]seedPiece{
	inventory.Titan: {
		{"Crest of Alpha Lupi", 2234841490, inventory.Helmet, inventory.TierExotic, 10, 1810},
		{"Heart of Inmost Light", 1160559849, inventory.ChestArmor, inventory.TierExotic, 9, 1805},
		{"Phoenix Cradle", 3001934726, inventory.LegArmor, inventory.TierExotic, 8, 1803},
		{"Iron Truage Helm", 720656969, inventory.Helmet, inventory.TierLegendary, 9, 1810},
		{"Iron Truage Gauntlets", 1168625549, inventory.Gauntlets, inventory.TierLegendary, 8, 1808},
		{"Iron Truage Plate", 2019072990, inventory.ChestArmor, inventory.TierLegendary, 10, 1810},
		{"Iron Truage Greaves", 2675031254, inventory.LegArmor, inventory.TierLegendary, 7, 1806},
		{"Iron Truage Mark", 3566138964, inventory.ClassItem, inventory.TierLegendary, 6, 1804},
		{"Techsec Helm", 1523082381, inventory.Helmet, inventory.TierLegendary, 7, 1800},
		{"Techsec Plate", 2883879144, inventory.ChestArmor, inventory.TierLegendary, 8, 1801},
	},
	inventory.Hunter: {
		{"Wormhusk Crown", 2976078519, inventory.Helmet, inventory.TierExotic, 9, 1808},
		{"Lucky Raspberry", 2198867214, inventory.ChestArmor, inventory.TierExotic, 8, 1806},
		{"Iron Truage Casque", 1057010530, inventory.Helmet, inventory.TierLegendary, 8, 1810},
		{"Iron Truage Grips", 2361811816, inventory.Gauntlets, inventory.TierLegendary, 9, 1809},
		{"Iron Truage Vest", 1013380191, inventory.ChestArmor, inventory.TierLegendary, 10, 1810},
		{"Iron Truage Boots", 4125897258, inventory.LegArmor, inventory.TierLegendary, 7, 1807},
		{"Iron Truage Cloak", 485316944, inventory.ClassItem, inventory.TierLegendary, 5, 1803},
		{"Techsec Mask", 3880804895, inventory.Helmet, inventory.TierLegendary, 8, 1802},
	},
	inventory.Warlock: {
		{"Nezarec's Sin", 1337707096, inventory.Helmet, inventory.TierExotic, 10, 1810},
		{"Sunbracers", 1722477807, inventory.Gauntlets, inventory.TierExotic, 8, 1804},
		{"Iron Truage Hood", 2330434393, inventory.Helmet, inventory.TierLegendary, 9, 1810},
		{"Iron Truage Gloves", 3928309383, inventory.Gauntlets, inventory.TierLegendary, 8, 1808},
		{"Iron Truage Vestments", 2403118262, inventory.ChestArmor, inventory.TierLegendary, 9, 1809},
		{"Iron Truage Legs", 1888327074, inventory.LegArmor, inventory.TierLegendary, 6, 1804},
		{"Iron Truage Bond", 3327631097, inventory.ClassItem, inventory.TierLegendary, 7, 1806},
		{"Techsec Robes", 1302908066, inventory.ChestArmor, inventory.TierLegendary, 9, 1801},
	},
}

var seedMods = []inventory.ModDef{
	{Hash: 4048838440, Name: "Mobility Mod", Category: "stat", Energy: 3},
	{Hash: 3961599962, Name: "Resilience Mod", Category: "stat", Energy: 3},
	{Hash: 2645858828, Name: "Recovery Mod", Category: "stat", Energy: 4},
	{Hash: 3253038666, Name: "Discipline Mod", Category: "stat", Energy: 3},
	{Hash: 1484685887, Name: "Intellect Mod", Category: "stat", Energy: 5},
	{Hash: 1227870362, Name: "Strength Mod", Category: "stat", Energy: 3},
	{Hash: 3994043492, Name: "Harmonic Siphon", Category: "helmet", Energy: 1},
	{Hash: 2979161761, Name: "Font of Might", Category: "class item", Energy: 4},
	{Hash: 1401398134, Name: "Charged Up", Category: "chest", Energy: 3},
}

func seedID(kind string, parts ...string) string {
	key := kind
	for _, p := range parts {
		key += ":" + p
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// DemoInventory builds a fixed inventory: one character per class plus the vault.
// The first legendary piece per bucket is equipped; the rest sit in the vault.
func DemoInventory() *inventory.Inventory {
	inv := &inventory.Inventory{Mods: append([]inventory.ModDef(nil), seedMods...)}
	vault := &inventory.Store{ID: seedID("store", "vault"), Name: "Vault", Class: inventory.AnyClass, Vault: true}
	for _, class := range []inventory.ClassType{inventory.Titan, inventory.Hunter, inventory.Warlock} {
		store := &inventory.Store{ID: seedID("store", class.String()), Name: class.String(), Class: class}
		equipped := make(map[inventory.BucketHash]bool)
		for _, p := range seedArmor[class] {
			it := &inventory.Item{
				ID:         seedID("item", class.String(), p.name),
				Hash:       p.hash,
				Name:       p.name,
				Bucket:     p.bucket,
				Class:      class,
				Tier:       p.tier,
				Instanced:  true,
				Equippable: true,
				Energy:     p.energy,
				Power:      p.power,
			}
			switch {
			case p.tier != inventory.TierExotic && !equipped[p.bucket]:
				equipped[p.bucket] = true
				it.Equipped = true
				it.OwnerID = store.ID
				store.Items = append(store.Items, it)
			case p.tier == inventory.TierExotic:
				it.OwnerID = store.ID
				store.Items = append(store.Items, it)
			default:
				it.OwnerID = vault.ID
				vault.Items = append(vault.Items, it)
			}
		}
		inv.Stores = append(inv.Stores, store)
	}
	inv.Stores = append(inv.Stores, vault)
	return inv
}

// SeedDemo stores DemoInventory when the database has no items yet.
// It is idempotent and safe to run on every startup.
func SeedDemo(ctx context.Context, db *sql.DB) (bool, error) {
	n, err := repository.NewItemRepo(db).Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := repository.NewInventoryRepo(db).Replace(ctx, DemoInventory()); err != nil {
		return false, fmt.Errorf("seed demo inventory: %w", err)
	}
	return true, nil
}
