package scorer

import (
	"github.com/sells-group/property-checklist/internal/model"
	"github.com/sells-group/property-checklist/internal/normalize"
)

// LegalLabel maps legal constraint points to their qualitative label.
func LegalLabel(points float64) string {
	switch {
	case points >= 80:
		return "Severe"
	case points >= 60:
		return "Medium-High"
	case points >= 40:
		return "Medium"
	case points >= 20:
		return "Low-Medium"
	default:
		return "Low"
	}
}

var legalKeys = []model.ItemKey{
	model.KeyTenure,
	model.KeyListedProperty,
	model.KeyRestrictiveCovenants,
	model.KeyPublicRightOfWay,
	model.KeyPrivateRightOfWay,
	model.KeyLeaseTerm,
}

// LegalConstraints accumulates constraint points; higher means more
// constrained. Tenure always contributes a tier, the remaining constraints
// only count when their row is FOUND_POSITIVE and affirms the constraint.
// The label is stored alongside the points.
func (e *Engine) LegalConstraints(items model.Checklist, _ *model.PremiumData) model.CategoryScoreData {
	known := false
	for _, k := range legalKeys {
		if get(items, k).available {
			known = true
			break
		}
	}
	if !known {
		return model.MissingData(model.CategoryLegalConstraints)
	}

	pts := e.w.Legal
	var points float64

	switch t := get(items, model.KeyTenure); {
	case !t.available:
		points += pts.Unknown
	default:
		switch normalize.Tenure(t.text()) {
		case normalize.TenureFreehold:
		case normalize.TenureShareOfFreehold, normalize.TenureCommonhold:
			points += pts.Low
		case normalize.TenureLeasehold:
			points += pts.LowMedium
		default:
			points += pts.Unknown
		}
	}

	flags := []struct {
		key    model.ItemKey
		points float64
	}{
		{model.KeyListedProperty, pts.ListedProperty},
		{model.KeyRestrictiveCovenants, pts.RestrictiveCovenants},
		{model.KeyPublicRightOfWay, pts.PublicRightOfWay},
		{model.KeyPrivateRightOfWay, pts.PrivateRightOfWay},
	}
	for _, f := range flags {
		in := get(items, f.key)
		if !in.available || in.item.Status != model.StatusFoundPositive {
			continue
		}
		if yes, ok := e.n.Affirmative(in.text()); ok && yes {
			points += f.points
		}
	}

	if lease := get(items, model.KeyLeaseTerm); lease.available && lease.item.Status == model.StatusFoundPositive {
		years, ok := lease.float()
		if !ok {
			years, ok = normalize.ParseAmount(lease.text())
		}
		if ok && years < pts.ShortLeaseYears {
			points += pts.ShortLease
		}
	}

	res := calculated(model.CategoryLegalConstraints, points)
	res.Label = LegalLabel(points)
	return res
}
