package main

import (
	"fmt"

	"github.com/Sh8ubham/ai-memory-intern/internal/model"
	"github.com/Sh8ubham/ai-memory-intern/internal/pipeline"
	"github.com/Sh8ubham/ai-memory-intern/internal/records"
	"github.com/Sh8ubham/ai-memory-intern/internal/storage"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Demonstrate learning over time on two invoices",
		Long: `Clear the pattern memory, process a first invoice with no learned
patterns, learn from its approved human correction, then process a second
invoice from the same vendor to show the learned pattern auto-applying.`,
		RunE: runDemo,
	}

	cmd.Flags().String("first", "INV-A-001", "invoice processed before learning")
	cmd.Flags().String("second", "INV-A-002", "invoice processed after learning")

	return cmd
}

func runDemo(cmd *cobra.Command, _ []string) error {
	data, err := loadReferenceData()
	if err != nil {
		return err
	}

	firstID, _ := cmd.Flags().GetString("first")
	secondID, _ := cmd.Flags().GetString("second")

	first, ok := records.FindInvoice(data.invoices, firstID)
	if !ok {
		return fmt.Errorf("invoice %q not found", firstID)
	}
	second, ok := records.FindInvoice(data.invoices, secondID)
	if !ok {
		return fmt.Errorf("invoice %q not found", secondID)
	}
	correction, ok := records.FindCorrection(data.corrections, firstID)
	if !ok {
		return fmt.Errorf("no human correction found for invoice %q", firstID)
	}

	// Start from an empty memory so the learning effect is visible.
	memoryPath := viper.GetString("data.memory")
	if err := resetMemory(memoryPath); err != nil {
		return err
	}
	store, err := storage.NewJSONStore(memoryPath)
	if err != nil {
		return err
	}

	p := pipeline.New(store, data.pos, data.dns)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))

	fmt.Println(headerStyle.Render(fmt.Sprintf("Round 1: %s - no memory yet", firstID)))
	result1, err := p.Process(first, nil)
	if err != nil {
		return err
	}
	printDemoResult(result1)

	fmt.Println(headerStyle.Render("Human correction approved - learning"))
	learned, err := p.Process(first, &correction)
	if err != nil {
		return err
	}
	for _, update := range learned.MemoryUpdates {
		fmt.Printf("  %s\n", update)
	}
	fmt.Println()

	fmt.Println(headerStyle.Render(fmt.Sprintf("Round 2: %s - with learned memory", secondID)))
	result2, err := p.Process(second, nil)
	if err != nil {
		return err
	}
	printDemoResult(result2)

	fmt.Printf("Confidence improved from %.1f%% to %.1f%%\n",
		result1.ConfidenceScore*100, result2.ConfidenceScore*100)

	return nil
}

func printDemoResult(result model.ProcessedInvoice) {
	fmt.Printf("  Corrections applied: %d\n", len(result.ProposedCorrections))
	for _, c := range result.ProposedCorrections {
		fmt.Printf("    - %s\n", c)
	}
	review := "NO"
	if result.RequiresHumanReview {
		review = "YES"
	}
	fmt.Printf("  Requires review: %s\n", review)
	fmt.Printf("  Confidence: %.1f%%\n", result.ConfidenceScore*100)
	fmt.Printf("  Reasoning: %s\n\n", result.Reasoning)
}
