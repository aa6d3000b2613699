package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/loadout/internal/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store a demo inventory when the database is empty",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	seeded, err := database.SeedDemo(cmd.Context(), a.db)
	if err != nil {
		return err
	}
	if !seeded {
		fmt.Fprintln(cmd.OutOrStdout(), "Inventory already present, nothing seeded")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Seeded demo inventory")
	return nil
}
