package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jask/loadout/internal/loadout"
)

var presetOut string

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Export or apply lock presets",
}

var presetExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write the current lock state as a TOML preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetExport,
}

var presetImportCmd = &cobra.Command{
	Use:   "import <file.toml>",
	Short: "Apply a TOML preset and save it",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetImport,
}

func init() {
	presetExportCmd.Flags().StringVarP(&presetOut, "out", "o", "", "output file, - for stdout (default <preset.dir>/<name>.toml)")

	presetCmd.AddCommand(presetExportCmd)
	presetCmd.AddCommand(presetImportCmd)
}

func runPresetExport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.session(cmd.Context())
	if err != nil {
		return err
	}
	p := s.ExportPreset(args[0])

	if presetOut == "-" {
		return p.Encode(cmd.OutOrStdout())
	}
	path := presetOut
	if path == "" {
		path = filepath.Join(a.cfg.Preset.Dir, args[0]+".toml")
	}
	if err := writePreset(path, p); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func writePreset(path string, p loadout.Preset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir preset dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func runPresetImport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := readPreset(args[0])
	if err != nil {
		return err
	}
	s, err := a.session(cmd.Context())
	if err != nil {
		return err
	}
	skipped, err := s.ApplyPreset(p)
	if err != nil {
		return err
	}
	if err := s.Save(cmd.Context()); err != nil {
		return err
	}
	for _, ref := range skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", ref)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied preset %q\n", p.Name)
	return printState(cmd.OutOrStdout(), s)
}

func readPreset(path string) (loadout.Preset, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return loadout.Preset{}, err
		}
		defer f.Close()
		r = f
	}
	return loadout.DecodePreset(r)
}
