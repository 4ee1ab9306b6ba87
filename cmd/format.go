package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/sells-group/property-checklist/internal/insight"
	"github.com/sells-group/property-checklist/internal/model"
)

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json")
}

func formatScore(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// formatAssessment writes the dashboard of a, optionally followed by its
// checklist.
func formatAssessment(out io.Writer, a model.Assessment, withItems bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Listing:\t%s\n", a.ListingURL)
	_, _ = fmt.Fprintf(w, "Assessment:\t%s\n", a.ID)
	_, _ = fmt.Fprintf(w, "Overall:\t%s\n", formatScore(a.Overall))
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "CATEGORY\tSCORE\tSTATUS\tLABEL")
	_, _ = fmt.Fprintln(w, "--------\t-----\t------\t-----")
	for _, c := range model.Categories() {
		d, ok := a.Scores[c]
		if !ok {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c, formatScore(d.Score.ScoreValue), d.CalculationStatus, d.Label)
	}

	if withItems {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "GROUP\tITEM\tVALUE\tSTATUS")
		_, _ = fmt.Fprintln(w, "-----\t----\t-----\t------")
		for _, it := range a.Items {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.Group, it.Label, truncate(it.Value.String(), 60), it.Status)
		}
	}
	_ = w.Flush()
}

func formatAssessmentList(out io.Writer, list []model.Assessment) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tLISTING\tOVERALL\tCOVERAGE\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t-------\t-------\t--------\t-------")
	for _, a := range list {
		coverage := "-"
		if v, ok := a.Scores[model.CategoryDataCoverage].Value(); ok {
			coverage = strconv.FormatFloat(v, 'f', -1, 64) + "%"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncateID(a.ID),
			truncate(a.ListingURL, 50),
			formatScore(a.Overall),
			coverage,
			a.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

func formatInsight(out io.Writer, r model.PriceDiscrepancyResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Change:\t%s\n", r.Value)
	_, _ = fmt.Fprintf(w, "Status:\t%s\n", r.Status)
	_, _ = fmt.Fprintf(w, "Reason:\t%s\n", r.Reason)
	cagr := "N/A"
	if r.CAGR != nil {
		cagr = insight.FormatRate(*r.CAGR)
	}
	_, _ = fmt.Fprintf(w, "CAGR:\t%s\n", cagr)
	_, _ = fmt.Fprintf(w, "Volatility:\t%s\n", r.Volatility)
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
