package normalize

// CrimeRisk maps a crime rating (High/Moderate/Low) to a risk multiplier.
func (n *Normalizer) CrimeRisk(raw string) (float64, bool) {
	return firstLevel(n.t.Crime, raw)
}

// FloodRisk maps a flood risk level (Very high .. Very low) to a risk
// multiplier.
func (n *Normalizer) FloodRisk(raw string) (float64, bool) {
	return firstLevel(n.t.Flood, raw)
}

// AirportNoiseRisk maps an airport noise category (None .. Extremely high)
// to a risk multiplier.
func (n *Normalizer) AirportNoiseRisk(raw string) (float64, bool) {
	return firstLevel(n.t.AirportNoise, raw)
}

// Affirmative classifies yes/no style answers. A leading yes or no decides
// ("Yes - no commercial use" is yes); otherwise any negative word wins over
// an affirmative one ("Listed: no" is no). The second result is false when
// raw is neither.
func (n *Normalizer) Affirmative(raw string) (bool, bool) {
	text := words(raw)
	switch {
	case leadsWithAny(text, n.t.AnswerNo):
		return false, true
	case leadsWithAny(text, n.t.AnswerYes):
		return true, true
	case hasAny(text, n.t.Negative):
		return false, true
	case hasAny(text, n.t.Affirmative):
		return true, true
	default:
		return false, false
	}
}

// PresenceRisk maps an answer about a hazard or designation (coastal
// erosion, mining, conservation area) to a multiplier: 1 when present, 0
// when absent, or the flood level scale for graded answers.
func (n *Normalizer) PresenceRisk(raw string) (float64, bool) {
	if v, ok := firstLevel(n.t.Flood, raw); ok {
		return v, true
	}
	yes, ok := n.Affirmative(raw)
	if !ok {
		return 0, false
	}
	if yes {
		return 1, true
	}
	return 0, true
}

// WorstFloodLevel returns the level with the highest multiplier among the
// given levels, ignoring unparseable ones.
func (n *Normalizer) WorstFloodLevel(levels ...string) (string, bool) {
	var worst string
	best := -1.0
	for _, l := range levels {
		v, ok := n.FloodRisk(l)
		if ok && v > best {
			best = v
			worst = l
		}
	}
	return worst, best >= 0
}
