package normalize

import (
	"strings"

	"go.uber.org/zap"
)

// AgeBandModifier maps a construction age band label to a modifier, newest
// bands positive. Labels are matched by fragment first and then by the
// first year they mention. Unmatched or missing labels return 0.
func (n *Normalizer) AgeBandModifier(raw string) float64 {
	label := strings.ToLower(strings.TrimSpace(raw))
	if label == "" {
		return 0
	}
	for _, f := range n.t.AgeBands {
		if strings.Contains(label, f.Fragment) {
			return f.Modifier
		}
	}
	if year, ok := ParseYear(label); ok {
		for _, y := range n.t.AgeYears {
			if year >= y.From {
				return y.Modifier
			}
		}
	}
	zap.L().Debug("normalize: unmatched construction age band", zap.String("raw", raw))
	return 0
}

// HeatingModifier sums the modifiers of every heating rule the description
// matches. A missing description returns HeatingMissing; unmatched text 0.
func (n *Normalizer) HeatingModifier(raw string) float64 {
	if strings.TrimSpace(raw) == "" {
		return n.t.HeatingMissing
	}
	sum, ok := sumRules(n.t.Heating, words(raw))
	if !ok {
		zap.L().Debug("normalize: unmatched heating description", zap.String("raw", raw))
	}
	return sum
}

// WindowsModifier adds the first glazing match to the first frame match and
// clamps to [Windows.Min, Windows.Max]. A missing description returns
// Windows.Missing.
func (n *Normalizer) WindowsModifier(raw string) float64 {
	if strings.TrimSpace(raw) == "" {
		return n.t.Windows.Missing
	}
	text := words(raw)
	glazing, _ := firstRule(n.t.Windows.Glazing, text)
	frame, _ := firstRule(n.t.Windows.Frames, text)
	return clamp(glazing+frame, n.t.Windows.Min, n.t.Windows.Max)
}

// FloorModifier scores a floor construction description. Missing returns 0.
func (n *Normalizer) FloorModifier(raw string) float64 {
	return materialModifier(n.t.Floor, raw)
}

// WallsModifier scores a wall construction description. Missing returns 0.
func (n *Normalizer) WallsModifier(raw string) float64 {
	return materialModifier(n.t.Walls, raw)
}

// RoofModifier scores a roof construction description. Missing returns 0.
func (n *Normalizer) RoofModifier(raw string) float64 {
	return materialModifier(n.t.Roof, raw)
}

func materialModifier(rules []KeywordRule, raw string) float64 {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	m, _ := firstRule(rules, words(raw))
	return m
}

// OccupancyModifier returns OwnerModifier for owner-occupied, RentModifier
// for private or social rented and 0 otherwise.
func (n *Normalizer) OccupancyModifier(raw string) float64 {
	text := words(raw)
	switch {
	case hasAny(text, n.t.Occupancy.OwnerOccupied):
		return n.t.Occupancy.OwnerModifier
	case hasAny(text, n.t.Occupancy.Rented):
		return n.t.Occupancy.RentModifier
	default:
		return 0
	}
}

// SafetyModifier sums the classification of each building-safety term:
// severe terms first, then negative, then positive. Unmatched terms add 0.
func (n *Normalizer) SafetyModifier(terms []string) float64 {
	var sum float64
	for _, term := range terms {
		text := words(term)
		switch {
		case hasAny(text, n.t.Safety.Severe):
			sum += n.t.Safety.SevereModifier
		case hasAny(text, n.t.Safety.Negative):
			sum += n.t.Safety.NegativeModifier
		case hasAny(text, n.t.Safety.Positive):
			sum += n.t.Safety.PositiveModifier
		}
	}
	return sum
}

// SafetyRisk converts a safety modifier sum to a risk multiplier in [0,1].
// Non-negative sums carry no risk.
func (n *Normalizer) SafetyRisk(modifier float64) float64 {
	if modifier >= 0 {
		return 0
	}
	return clamp(-modifier*n.t.Safety.RiskPerPoint, 0, 1)
}
