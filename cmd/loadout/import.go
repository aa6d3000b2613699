package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/loadout/internal/database/repository"
	"github.com/jask/loadout/internal/service"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot.yaml>",
	Short: "Replace the stored inventory with a YAML snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	imp := &service.Importer{Inventory: repository.NewInventoryRepo(a.db)}
	res, err := imp.ImportSnapshot(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d stores, %d items, %d mods\n", res.Stores, res.Items, res.Mods)
	return nil
}
