package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/property-checklist/internal/insight"
)

var (
	insightPrice  string
	insightFormat string
)

var insightCmd = &cobra.Command{
	Use:   "insight <sales-file>",
	Short: "Compare an asking price against sold-price history",
	Long:  "Reads a JSON or YAML file with asking_price and history, and reports the price change, growth classification, CAGR and volatility.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("insight"); err != nil {
			return err
		}
		var f salesFile
		if err := readInput(args[0], &f); err != nil {
			return err
		}
		if insightPrice != "" {
			f.AskingPrice = insightPrice
		}

		res := insight.Calculate(f.History, f.AskingPrice, time.Now())
		if insightFormat == "json" {
			return writeJSON(os.Stdout, res)
		}
		formatInsight(os.Stdout, res)
		return nil
	},
}

func init() {
	insightCmd.Flags().StringVar(&insightPrice, "price", "", "asking price, overriding the file")
	insightCmd.Flags().StringVar(&insightFormat, "format", "table", "output format: table or json")
	rootCmd.AddCommand(insightCmd)
}
