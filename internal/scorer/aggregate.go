package scorer

import (
	"math"

	"github.com/sells-group/property-checklist/internal/model"
)

// DataCoverage is the percentage of checklist items that are resolved and
// carry real data. It is always calculated; an empty checklist scores 0.
func DataCoverage(items model.Checklist) model.CategoryScoreData {
	if len(items) == 0 {
		return model.Calculated(model.CategoryDataCoverage, 0)
	}
	var n int
	for _, it := range items {
		if it.Available() {
			n++
		}
	}
	return model.Calculated(model.CategoryDataCoverage, math.Round(float64(n)/float64(len(items))*100))
}

// CalculateOverallScore is the rounded, unweighted mean of the calculated
// category scores, excluding DATA_COVERAGE. It returns nil when no
// category qualifies.
func CalculateOverallScore(scores model.DashboardScores) *float64 {
	var sum float64
	var n int
	// Iterate in declaration order so the float sum is reproducible.
	for _, c := range model.Categories() {
		if c == model.CategoryDataCoverage {
			continue
		}
		d, ok := scores[c]
		if !ok {
			continue
		}
		v, ok := d.Value()
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return nil
	}
	overall := math.Round(sum / float64(n))
	return &overall
}
