package scorer

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/property-checklist/internal/checklist"
	"github.com/sells-group/property-checklist/internal/model"
	"github.com/sells-group/property-checklist/internal/normalize"
)

// Engine scores checklists. It holds only immutable tables and is safe for
// concurrent use; the same inputs always produce the same scores.
type Engine struct {
	n       *normalize.Normalizer
	w       Weights
	builder *checklist.Builder
}

// NewEngine creates an Engine over the given normalizer and weights.
func NewEngine(n *normalize.Normalizer, w Weights) *Engine {
	return &Engine{n: n, w: w, builder: checklist.NewBuilder(n)}
}

// DefaultEngine returns an Engine with the production tables and weights.
func DefaultEngine() *Engine {
	return NewEngine(normalize.Default(), DefaultWeights())
}

// Weights returns the engine's weights.
func (e *Engine) Weights() Weights { return e.w }

// Score computes every dashboard category for items. Categories do not
// depend on one another.
func (e *Engine) Score(items model.Checklist, p *model.PremiumData) model.DashboardScores {
	return model.DashboardScores{
		model.CategoryRunningCosts:     e.RunningCosts(items, p),
		model.CategoryInvestmentValue:  e.InvestmentValue(items, p),
		model.CategoryConnectivity:     e.Connectivity(items, p),
		model.CategoryCondition:        e.Condition(items, p),
		model.CategoryEnvironmentRisk:  e.EnvironmentRisk(items, p),
		model.CategoryLegalConstraints: e.LegalConstraints(items, p),
		model.CategoryDataCoverage:     DataCoverage(items),
	}
}

// Assess builds the checklist for a listing, scores it and returns the
// assessment dated now.
func (e *Engine) Assess(l model.Listing, p *model.PremiumData, now time.Time) model.Assessment {
	res := e.builder.Build(l, p, now)
	scores := e.Score(res.Items, p)
	ins := res.Insight
	return model.Assessment{
		ID:         uuid.NewString(),
		ListingURL: l.URL,
		Items:      res.Items,
		Scores:     scores,
		Overall:    CalculateOverallScore(scores),
		Insight:    &ins,
		CreatedAt:  now.UTC(),
	}
}

// resolved tells, per status, whether an item's value is final. Indexed by
// DataStatus.
var resolved = [...]bool{
	model.StatusFoundPositive: true,
	model.StatusAskAgent:      true,
	model.StatusIsLoading:     false,
}

// Fails to compile when a DataStatus is added without a resolved entry.
var _ = [1]struct{}{}[len(resolved)-1-model.DataStatusCount]

// lookup is the state of one checklist input.
type lookup struct {
	item model.ChecklistItem
	// present: the item exists and is no longer loading.
	present bool
	// available: present and carrying real data.
	available bool
}

func get(items model.Checklist, key model.ItemKey) lookup {
	it, ok := items.Get(key)
	if !ok || !it.Status.Valid() || !resolved[it.Status] {
		return lookup{item: it}
	}
	return lookup{item: it, present: true, available: !it.Value.IsMissing()}
}

// text returns the raw text of an available input, or "".
func (l lookup) text() string {
	if !l.available {
		return ""
	}
	return l.item.Value.String()
}

func (l lookup) float() (float64, bool) {
	if !l.available {
		return 0, false
	}
	return l.item.Value.Float()
}

// weighted accumulates a weighted mean over the inputs that are present.
type weighted struct {
	sum    float64
	weight float64
}

func (a *weighted) add(score, weight float64) {
	a.sum += score * weight
	a.weight += weight
}

func (a weighted) mean() (float64, bool) {
	if a.weight <= 0 {
		return 0, false
	}
	return a.sum / a.weight, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round1 rounds category scores to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func calculated(c model.DashboardScoreCategory, v float64) model.CategoryScoreData {
	return model.Calculated(c, round1(clamp(v, 0, 100)))
}
