// memflow processes extracted invoices through the adaptive correction
// pipeline: recall learned vendor patterns, apply the confident ones, decide
// whether a human needs to review the result, and learn new patterns from
// approved human corrections.
package main

import (
	"fmt"
	"os"

	"github.com/Sh8ubham/ai-memory-intern/internal/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "memflow",
		Short: "Adaptive invoice correction with learned vendor memory",
		Long: `memflow ingests extracted invoice records, auto-corrects them using
previously learned vendor patterns, scores the result, and learns new
patterns from approved human corrections - so the next invoice from the
same vendor needs no review.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/memflow/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(processCmd())
	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(patternsCmd())
	rootCmd.AddCommand(memoryCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/memflow", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MEMFLOW")
	viper.AutomaticEnv()

	setConfigDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	level, err := common.ParseLogLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	return common.SetupLogger(level, viper.GetString("logging.format"))
}

func setConfigDefaults() {
	viper.SetDefault("data.invoices", "data/invoices_extracted.json")
	viper.SetDefault("data.purchase_orders", "data/purchase_orders.json")
	viper.SetDefault("data.delivery_notes", "data/delivery_notes.json")
	viper.SetDefault("data.corrections", "data/human_corrections.json")
	viper.SetDefault("data.memory", "data/memory.json")
	viper.SetDefault("output.dir", "output/results")
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("memflow %s\n", version)
		},
	}
}
