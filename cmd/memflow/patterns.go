package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Sh8ubham/ai-memory-intern/internal/confidence"
	"github.com/Sh8ubham/ai-memory-intern/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patterns",
		Aliases: []string{"pattern"},
		Short:   "Manage learned vendor patterns",
	}

	cmd.AddCommand(patternsListCmd())

	return cmd
}

func patternsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List learned vendor patterns",
		Long: `List learned vendor patterns with their stored confidence and the
effective confidence after reinforcement and age decay.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			vendor, _ := cmd.Flags().GetString("vendor")

			var patterns []model.VendorPattern
			if vendor != "" {
				patterns = store.GetVendorPatterns(vendor)
			} else {
				patterns = store.GetAllMemory().VendorPatterns
			}

			if len(patterns) == 0 {
				fmt.Println("No vendor patterns learned yet")
				return nil
			}

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Println(headerStyle.Render("Learned vendor patterns"))

			now := time.Now().UTC()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "VENDOR\tPATTERN\tFIELD\tACTION\tCONFIDENCE\tEFFECTIVE\tUSES\tLAST USED")
			for _, p := range patterns {
				days := now.Sub(p.LastUsed).Hours() / 24
				effective := confidence.Effective(p.Confidence, p.TimesApplied, days)
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%.2f\t%d\t%s\n",
					p.Vendor, p.Pattern, p.Field, p.Action,
					p.Confidence, effective, p.TimesApplied,
					p.LastUsed.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("vendor", "", "only show patterns for this vendor")

	return cmd
}
