// Package main is the entry point for the loadout lock panel.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var dbPathFlag string

var rootCmd = &cobra.Command{
	Use:   "loadout",
	Short: "Armor loadout lock panel",
	Long:  `loadout pins, excludes and constrains armor for a character before sets are generated.`,
	RunE:  runTUI,
}

func main() {
	// A missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "sqlite database path (overrides database.path)")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(presetCmd)
}
