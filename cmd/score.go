package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/property-checklist/internal/model"
	"github.com/sells-group/property-checklist/internal/normalize"
	"github.com/sells-group/property-checklist/internal/ocr"
	"github.com/sells-group/property-checklist/internal/scorer"
)

var (
	scoreFormat string
	scoreSave   bool
	scoreItems  bool
	scoreEPC    string
)

var scoreCmd = &cobra.Command{
	Use:   "score <listing-file>...",
	Short: "Score one or more listing snapshots",
	Long:  "Reads listing snapshots (JSON or YAML with listing and optional premium sections), builds each checklist and prints the dashboard scores.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("score"); err != nil {
			return err
		}
		if scoreFormat != "table" && scoreFormat != "json" {
			return eris.Errorf("unsupported format %q (want table or json)", scoreFormat)
		}
		if scoreEPC != "" && len(args) != 1 {
			return eris.New("--epc needs exactly one listing file")
		}

		snaps := make([]snapshot, len(args))
		for i, path := range args {
			s, err := loadSnapshot(path)
			if err != nil {
				return err
			}
			snaps[i] = s
		}

		if scoreEPC != "" {
			rating, err := readEPC(ctx, scoreEPC)
			if err != nil {
				return err
			}
			snaps[0].Listing.EPC = rating
		}

		results, err := scoreSnapshots(ctx, scorer.DefaultEngine(), snaps, cfg.Batch.MaxConcurrent, time.Now())
		if err != nil {
			return err
		}

		if scoreSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.SaveAssessments(ctx, results); err != nil {
				return eris.Wrap(err, "score: save")
			}
			zap.L().Info("score: assessments saved", zap.Int("count", len(results)))
		}

		if scoreFormat == "json" {
			if len(results) == 1 {
				return writeJSON(os.Stdout, results[0])
			}
			return writeJSON(os.Stdout, results)
		}
		for i, a := range results {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			formatAssessment(os.Stdout, a, scoreItems)
		}
		return nil
	},
}

// scoreSnapshots assesses snaps with at most concurrency workers. Results
// keep the input order.
func scoreSnapshots(ctx context.Context, engine *scorer.Engine, snaps []snapshot, concurrency int, now time.Time) ([]model.Assessment, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]model.Assessment, len(snaps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var done atomic.Int64
	for i, s := range snaps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = engine.Assess(s.Listing, s.Premium, now)
			done.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "score: batch")
	}

	zap.L().Debug("score: batch complete",
		zap.Int64("scored", done.Load()),
		zap.Int("concurrency", concurrency),
	)
	return results, nil
}

func readEPC(ctx context.Context, path string) (string, error) {
	if err := cfg.Validate("epc"); err != nil {
		return "", err
	}
	ext, err := ocr.NewExtractor(cfg.OCR)
	if err != nil {
		return "", err
	}
	c, err := ocr.NewReader(ext, normalize.Default()).Read(ctx, path)
	if err != nil {
		return "", err
	}
	return c.Rating, nil
}

func init() {
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "table", "output format: table or json")
	scoreCmd.Flags().BoolVar(&scoreSave, "save", false, "save assessments to the store")
	scoreCmd.Flags().BoolVar(&scoreItems, "items", false, "include checklist items in table output")
	scoreCmd.Flags().StringVar(&scoreEPC, "epc", "", "EPC certificate PDF whose rating replaces the listing EPC")
	rootCmd.AddCommand(scoreCmd)
}
