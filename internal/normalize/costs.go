package normalize

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/property-checklist/internal/model"
)

// TenureType is the legal tenure of a property.
type TenureType int

const (
	TenureUnknown TenureType = iota
	TenureFreehold
	TenureLeasehold
	TenureShareOfFreehold
	TenureCommonhold
)

func (t TenureType) String() string {
	switch t {
	case TenureFreehold:
		return "freehold"
	case TenureLeasehold:
		return "leasehold"
	case TenureShareOfFreehold:
		return "share of freehold"
	case TenureCommonhold:
		return "commonhold"
	default:
		return "unknown"
	}
}

// Tenure classifies a tenure description. "Share of freehold" is checked
// before "freehold" and "leasehold".
func Tenure(raw string) TenureType {
	text := words(raw)
	switch {
	case hasPhrase(text, "share of freehold"):
		return TenureShareOfFreehold
	case hasPhrase(text, "commonhold"):
		return TenureCommonhold
	case hasPhrase(text, "leasehold"):
		return TenureLeasehold
	case hasPhrase(text, "freehold"):
		return TenureFreehold
	default:
		return TenureUnknown
	}
}

// TenureCostScore scores the ongoing cost implied by a tenure (higher is
// costlier).
func (n *Normalizer) TenureCostScore(raw string) float64 {
	switch Tenure(raw) {
	case TenureFreehold:
		return n.t.Tenure.Freehold
	case TenureShareOfFreehold:
		return n.t.Tenure.ShareOfFreehold
	case TenureCommonhold:
		return n.t.Tenure.Commonhold
	case TenureLeasehold:
		return n.t.Tenure.Leasehold
	default:
		return n.t.Tenure.Unknown
	}
}

// GroundRentScore maps an annual ground rent onto its cost score.
func (n *Normalizer) GroundRentScore(v model.Value, status model.DataStatus) float64 {
	return costScore(n.t.GroundRent, v, status, "ground rent")
}

// ServiceChargeScore maps an annual service charge onto its cost score.
func (n *Normalizer) ServiceChargeScore(v model.Value, status model.DataStatus) float64 {
	return costScore(n.t.ServiceCharge, v, status, "service charge")
}

// costScore: peppercorn or <= 0 scores PeppercornScore; below LowThreshold
// LowScore; below MediumThreshold MediumScore; otherwise HighScore. Values
// that are unparseable or not FOUND_POSITIVE score UnknownScore.
func costScore(t CostTable, v model.Value, status model.DataStatus, field string) float64 {
	if status != model.StatusFoundPositive || v.IsMissing() {
		return t.UnknownScore
	}

	amount, ok := v.Float()
	if !ok {
		raw := v.Text()
		if hasPhrase(words(raw), "peppercorn") {
			return t.PeppercornScore
		}
		amount, ok = ParseAnnualCost(strings.TrimSpace(raw))
		if !ok {
			zap.L().Debug("normalize: unparseable cost", zap.String("field", field), zap.String("raw", raw))
			return t.UnknownScore
		}
	}

	switch {
	case amount <= 0:
		return t.PeppercornScore
	case amount < t.LowThreshold:
		return t.LowScore
	case amount < t.MediumThreshold:
		return t.MediumScore
	default:
		return t.HighScore
	}
}
