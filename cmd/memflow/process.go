package main

import (
	"fmt"
	"os"

	"github.com/Sh8ubham/ai-memory-intern/internal/model"
	"github.com/Sh8ubham/ai-memory-intern/internal/pipeline"
	"github.com/Sh8ubham/ai-memory-intern/internal/records"
	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run invoices through the correction pipeline",
		Long: `Process extracted invoices through Recall -> Apply -> Decide, learning from
any matching approved human corrections, and write one output record per
invoice.`,
		RunE: runProcess,
	}

	cmd.Flags().String("invoice", "", "process a single invoice by ID")

	return cmd
}

func runProcess(cmd *cobra.Command, _ []string) error {
	data, err := loadReferenceData()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	invoices := data.invoices
	if invoiceID, _ := cmd.Flags().GetString("invoice"); invoiceID != "" {
		invoice, ok := records.FindInvoice(data.invoices, invoiceID)
		if !ok {
			return fmt.Errorf("invoice %q not found in %s", invoiceID, viper.GetString("data.invoices"))
		}
		invoices = []model.Invoice{invoice}
	}

	p := pipeline.New(store, data.pos, data.dns)
	outputDir := viper.GetString("output.dir")

	bar := progressbar.NewOptions(len(invoices),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Processing invoices..."),
	)

	var reviewCount, correctionCount, updateCount int
	for _, invoice := range invoices {
		var humanCorrection *model.HumanCorrection
		if c, ok := records.FindCorrection(data.corrections, invoice.InvoiceID); ok {
			humanCorrection = &c
		}

		result, err := p.Process(invoice, humanCorrection)
		if err != nil {
			return err
		}

		if _, err := records.WriteResult(outputDir, result); err != nil {
			return err
		}

		if result.RequiresHumanReview {
			reviewCount++
		}
		correctionCount += len(result.ProposedCorrections)
		updateCount += len(result.MemoryUpdates)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	fmt.Println(headerStyle.Render("Processing complete"))
	fmt.Printf("  Invoices processed:  %d\n", len(invoices))
	fmt.Printf("  Corrections applied: %d\n", correctionCount)
	fmt.Printf("  Require review:      %d\n", reviewCount)
	fmt.Printf("  Memory updates:      %d\n", updateCount)
	fmt.Printf("  Results written to:  %s\n", outputDir)

	return nil
}
