package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sh8ubham/ai-memory-intern/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func memoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect or reset the learned pattern memory",
	}

	cmd.AddCommand(memoryShowCmd())
	cmd.AddCommand(memoryResetCmd())

	return cmd
}

func memoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show a summary of the pattern memory",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			memory := store.GetAllMemory()
			fmt.Printf("Memory document: %s\n", viper.GetString("data.memory"))
			fmt.Printf("  Vendor patterns:     %d\n", len(memory.VendorPatterns))
			fmt.Printf("  Correction patterns: %d\n", len(memory.CorrectionPatterns))
			fmt.Printf("  Resolutions:         %d\n", len(memory.Resolutions))

			vendors := make(map[string]int)
			for _, p := range memory.VendorPatterns {
				vendors[p.Vendor]++
			}
			for vendor, count := range vendors {
				fmt.Printf("    %s: %d pattern(s)\n", vendor, count)
			}
			return nil
		},
	}
}

func memoryResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the pattern memory to an empty database",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := viper.GetString("data.memory")
			if err := resetMemory(path); err != nil {
				return err
			}
			fmt.Printf("Memory reset: %s\n", path)
			return nil
		},
	}
}

// resetMemory overwrites the memory document with an empty database.
func resetMemory(path string) error {
	data, err := json.MarshalIndent(model.NewMemoryDatabase(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode empty memory database: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create memory directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to reset memory database: %w", err)
	}
	return nil
}
