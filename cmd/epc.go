package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/property-checklist/internal/normalize"
	"github.com/sells-group/property-checklist/internal/ocr"
)

var epcJSON bool

var epcCmd = &cobra.Command{
	Use:   "epc <certificate.pdf>",
	Short: "Read the energy rating from an EPC certificate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("epc"); err != nil {
			return err
		}
		ext, err := ocr.NewExtractor(cfg.OCR)
		if err != nil {
			return err
		}
		n := normalize.Default()
		c, err := ocr.NewReader(ext, n).Read(cmd.Context(), args[0])
		if errors.Is(err, ocr.ErrNoText) && cfg.OCR.Provider != ocr.ProviderMistral {
			return eris.Wrap(err, "epc: scanned certificate, set ocr.provider to mistral")
		}
		if err != nil {
			return err
		}

		if epcJSON {
			return writeJSON(os.Stdout, c)
		}
		fmt.Fprintf(os.Stdout, "Rating: %s (score %.0f)\n", c.Rating, n.EPCScore(c.Rating))
		if c.Potential != "" {
			fmt.Fprintf(os.Stdout, "Potential: %s\n", c.Potential)
		}
		return nil
	},
}

func init() {
	epcCmd.Flags().BoolVar(&epcJSON, "json", false, "print the certificate as JSON")
	rootCmd.AddCommand(epcCmd)
}
