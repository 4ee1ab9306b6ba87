package scorer

import (
	"go.uber.org/zap"

	"github.com/sells-group/property-checklist/internal/model"
)

// EnvironmentRisk weighs each available risk factor's multiplier in [0,1]
// and returns 100 minus the weighted risk, so higher is safer. Factors
// whose text cannot be classified are left out of the weighting.
func (e *Engine) EnvironmentRisk(items model.Checklist, _ *model.PremiumData) model.CategoryScoreData {
	w := e.w.Environment
	var acc weighted

	factors := []struct {
		key    model.ItemKey
		weight float64
		risk   func(lookup) (float64, bool)
	}{
		{model.KeyCrimeScore, w.Crime, e.textRisk(e.n.CrimeRisk)},
		{model.KeyFloodRisk, w.Flood, e.textRisk(e.n.FloodRisk, e.n.PresenceRisk)},
		{model.KeyBuildingSafety, w.BuildingSafety, e.safetyRisk},
		{model.KeyCoastalErosion, w.CoastalErosion, e.textRisk(e.n.PresenceRisk)},
		{model.KeyMiningImpact, w.MiningImpact, e.textRisk(e.n.PresenceRisk)},
		{model.KeyAirportNoiseAssessment, w.AirportNoise, e.textRisk(e.n.AirportNoiseRisk, e.n.PresenceRisk)},
		{model.KeyConservationArea, w.ConservationArea, e.textRisk(e.n.PresenceRisk)},
	}
	for _, f := range factors {
		in := get(items, f.key)
		if !in.available {
			continue
		}
		m, ok := f.risk(in)
		if !ok {
			zap.L().Debug("scorer: unclassified risk factor",
				zap.String("key", string(f.key)),
				zap.String("raw", in.text()),
			)
			continue
		}
		acc.add(clamp(m, 0, 1)*100, f.weight)
	}

	risk, ok := acc.mean()
	if !ok {
		return model.MissingData(model.CategoryEnvironmentRisk)
	}
	return calculated(model.CategoryEnvironmentRisk, 100-risk)
}

// textRisk tries each classifier in turn on the item text.
func (e *Engine) textRisk(classifiers ...func(string) (float64, bool)) func(lookup) (float64, bool) {
	return func(in lookup) (float64, bool) {
		raw := in.text()
		for _, c := range classifiers {
			if m, ok := c(raw); ok {
				return m, true
			}
		}
		return 0, false
	}
}

func (e *Engine) safetyRisk(in lookup) (float64, bool) {
	mod, ok := in.float()
	if !ok {
		return 0, false
	}
	return e.n.SafetyRisk(mod), true
}
