package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/loadout/internal/database"
	"github.com/jask/loadout/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the lock panel (default)",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	// First run opens on the demo inventory; an imported one is left alone.
	seeded, err := database.SeedDemo(ctx, a.db)
	if err != nil {
		return err
	}
	if seeded {
		log.Printf("seeded demo inventory into %s", a.cfg.Database.Path)
	}
	s, err := a.session(ctx)
	if err != nil {
		return err
	}

	// The terminal belongs to Bubble Tea; logs go to a file.
	if a.cfg.UI.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(a.cfg.UI.LogFile), 0o755); err != nil {
			return fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := tea.LogToFile(a.cfg.UI.LogFile, "loadout")
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		defer f.Close()
	}

	var opts []tea.ProgramOption
	if a.cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(tui.New(s), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	// Saves run as commands; a final save covers one still in flight at quit.
	if err := s.Save(ctx); err != nil {
		log.Printf("warn: final save: %v", err)
	}
	return nil
}
