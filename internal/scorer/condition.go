package scorer

import "github.com/sells-group/property-checklist/internal/model"

// Condition starts from the EPC score and adds the age band, heating,
// windows, materials and occupancy modifiers. Without an EPC rating the
// category is uncalculated.
//
// Heating and windows carry a penalty when absent, materials do not.
// Inputs still loading add nothing.
func (e *Engine) Condition(items model.Checklist, _ *model.PremiumData) model.CategoryScoreData {
	epc := get(items, model.KeyEPC)
	if !epc.available {
		return model.MissingData(model.CategoryCondition)
	}
	score := e.n.EPCScore(epc.text())

	modifiers := []struct {
		key model.ItemKey
		fn  func(string) float64
	}{
		{model.KeyConstructionAgeBand, e.n.AgeBandModifier},
		{model.KeyHeating, e.n.HeatingModifier},
		{model.KeyWindows, e.n.WindowsModifier},
		{model.KeyFloorMaterials, e.n.FloorModifier},
		{model.KeyWallMaterials, e.n.WallsModifier},
		{model.KeyRoofMaterials, e.n.RoofModifier},
		{model.KeyOccupancyStatus, e.n.OccupancyModifier},
	}
	for _, m := range modifiers {
		in := get(items, m.key)
		if !in.present {
			if _, exists := items.Get(m.key); exists {
				continue
			}
		}
		score += m.fn(in.text())
	}
	return calculated(model.CategoryCondition, score)
}
