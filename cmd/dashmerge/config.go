package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and bootstrap configuration",
}

var configTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Load the config and report validation problems",
	Args:  cobra.NoArgs,
	RunE:  runConfigTestCmd,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInitCmd,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigTestCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		var err error
		path, err = config.Discover()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		return &config.Error{Path: path, Errors: problems}
	}

	fmt.Printf("%s: OK (%d cameras, output %s)\n", path, len(cfg.CameraPaths), cfg.OutputDir)
	return nil
}

func runConfigInitCmd(_ *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\nEdit camera_paths and output_dir, then run 'dashmerge config test'.\n", path)
	return nil
}
