package scorer

import "github.com/sells-group/property-checklist/internal/model"

// RunningCosts scores how cheap the property is to run: council tax band
// and EPC rating, with service charge, ground rent and tenure costs
// inverted so higher is cheaper. Weights are renormalised over the inputs
// that are available.
func (e *Engine) RunningCosts(items model.Checklist, _ *model.PremiumData) model.CategoryScoreData {
	w := e.w.RunningCosts
	var acc weighted

	if ct := get(items, model.KeyCouncilTax); ct.available {
		acc.add(e.n.CouncilTaxScore(ct.text()), w.CouncilTax)
	}
	if epc := get(items, model.KeyEPC); epc.available {
		acc.add(e.n.EPCScore(epc.text()), w.EPC)
	}
	if sc := get(items, model.KeyServiceCharge); sc.available {
		acc.add(100-e.n.ServiceChargeScore(sc.item.Value, sc.item.Status), w.ServiceCharge)
	}
	if gr := get(items, model.KeyGroundRent); gr.available {
		acc.add(100-e.n.GroundRentScore(gr.item.Value, gr.item.Status), w.GroundRent)
	}
	if t := get(items, model.KeyTenure); t.available {
		acc.add(100-e.n.TenureCostScore(t.text()), w.Tenure)
	}

	v, ok := acc.mean()
	if !ok {
		return model.MissingData(model.CategoryRunningCosts)
	}
	return calculated(model.CategoryRunningCosts, v)
}
