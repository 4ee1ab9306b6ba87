package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/property-checklist/internal/config"
)

var (
	cfg      *config.Config
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "property-checklist",
	Short: "Score property listings for purchase due diligence",
	Long: `Builds a due-diligence checklist from a scraped property listing and optional
premium data, scores it across six dashboard categories plus data coverage,
and keeps a history of assessments.

Settings come from ./config.yaml and CHECKLIST_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "checklist: load config")
		}
		if logLevel != "" {
			c.Log.Level = logLevel
		}
		if err := config.InitLogger(c.Log); err != nil {
			return eris.Wrap(err, "checklist: init logger")
		}
		cfg = c
		zap.L().Debug("checklist: config loaded",
			zap.String("command", cmd.Name()),
			zap.String("store_driver", c.Store.Driver),
		)
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
