package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jask/loadout/internal/inventory"
	"github.com/jask/loadout/internal/panel"
	"github.com/jask/loadout/internal/service"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved lock state",
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.session(cmd.Context())
	if err != nil {
		return err
	}
	return printState(cmd.OutOrStdout(), s)
}

func printState(out io.Writer, s *service.Session) error {
	props := s.Props()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Character\t%s (%s)\n", props.Store.Name, props.Store.Class)
	fmt.Fprintf(w, "Upgrades\t%s\n", props.UpgradeSpendTier)
	fmt.Fprintf(w, "Lock energy\t%t\n", props.LockItemEnergyType)
	fmt.Fprintf(w, "Exotic\t%s\n", panel.ExoticLabel(s.Inventory(), props.LockedExotic))
	fmt.Fprintf(w, "Max stat mods\t%d\n", props.MaxStatMods)
	if err := w.Flush(); err != nil {
		return err
	}

	printItems(out, "Pinned", panel.PinnedList(props.PinnedItems))
	printItems(out, "Excluded", panel.ExcludedList(props.ExcludedItems))

	fmt.Fprintf(out, "\nMods (%d)\n", len(props.LockedMods))
	for _, m := range props.LockedMods {
		fmt.Fprintf(out, "  %s [%d]\n", m.Name, m.Energy)
	}
	return nil
}

func printItems(out io.Writer, title string, items []*inventory.Item) {
	fmt.Fprintf(out, "\n%s (%d)\n", title, len(items))
	for _, it := range items {
		fmt.Fprintf(out, "  %-10s %s\n", it.Bucket, it.Label())
	}
}
