package scorer

import "github.com/sells-group/property-checklist/internal/model"

// InvestmentValue adjusts a base score by growth, value discrepancy, rental
// yield, market turnover, propensity and volatility signals. Each signal is
// used only when its inputs are available; with none the category is
// uncalculated.
func (e *Engine) InvestmentValue(items model.Checklist, p *model.PremiumData) model.CategoryScoreData {
	r := e.w.Investment
	var val model.Valuation
	if p != nil && p.Valuation != nil {
		val = *p.Valuation
	}

	score := r.Base
	inputs := 0

	if rate, ok := get(items, model.KeyCompoundAnnualGrowthRate).float(); ok {
		inputs++
		switch {
		case rate >= r.CAGRHigh:
			score += r.CAGRBonus
		case rate < r.CAGRLow:
			score -= r.CAGRPenalty
		}
	}

	price, hasPrice := get(items, model.KeyPrice).float()
	hasPrice = hasPrice && price > 0

	if hasPrice {
		if mod, ok := e.valueDiscrepancy(price, val); ok {
			inputs++
			score += mod
		}
		if positive(val.EstimatedRentPCM) {
			inputs++
			yield := *val.EstimatedRentPCM * 12 / price * 100
			switch {
			case yield >= r.YieldHigh:
				score += r.YieldBonus
			case yield < r.YieldLow:
				score -= r.YieldPenalty
			}
		}
	}

	if val.MarketTurnoverPct != nil {
		inputs++
		switch t := *val.MarketTurnoverPct; {
		case t >= r.TurnoverHigh:
			score += r.TurnoverBonus
		case t < r.TurnoverLow:
			score -= r.TurnoverPenalty
		}
	}
	if val.PropensityToSellPct != nil {
		inputs++
		if *val.PropensityToSellPct >= r.SellPropensity {
			score += r.SellBonus
		}
	}
	if val.PropensityToLetPct != nil {
		inputs++
		if *val.PropensityToLetPct >= r.LetPropensity {
			score += r.LetBonus
		}
	}

	if vol, ok := get(items, model.KeyVolatility).float(); ok {
		inputs++
		if vol > r.VolatilityThreshold {
			score -= r.VolatilityPenalty
		}
	}

	if inputs == 0 {
		return model.MissingData(model.CategoryInvestmentValue)
	}
	return calculated(model.CategoryInvestmentValue, score)
}

// valueDiscrepancy scales how far the asking price sits below (positive)
// or above (negative) the estimate. The area average is a weaker fallback
// for a property-specific estimate.
func (e *Engine) valueDiscrepancy(price float64, val model.Valuation) (float64, bool) {
	r := e.w.Investment
	estimate, factor := 0.0, 1.0
	switch {
	case positive(val.EstimatedValue):
		estimate = *val.EstimatedValue
	case positive(val.AreaAverageValue):
		estimate = *val.AreaAverageValue
		factor = r.AreaAverageFactor
	default:
		return 0, false
	}
	gap := (estimate - price) / estimate
	mod := clamp(gap/r.DiscrepancySensitivity*r.DiscrepancyCap, -r.DiscrepancyCap, r.DiscrepancyCap)
	return mod * factor, true
}

func positive(v *float64) bool { return v != nil && *v > 0 }
