package scorer

import "github.com/sells-group/property-checklist/internal/model"

// Connectivity combines broadband, station, schools and mobile coverage.
// A resolved station or schools row without results still counts, at its
// not-found score.
func (e *Engine) Connectivity(items model.Checklist, _ *model.PremiumData) model.CategoryScoreData {
	w := e.w.Connectivity
	var acc weighted

	if mbps, ok := get(items, model.KeyBroadband).float(); ok {
		if res := e.n.BroadbandScore(&mbps); res.Score != nil {
			acc.add(*res.Score, w.Broadband)
		}
	}

	if st := get(items, model.KeyNearestStations); st.present {
		score := w.StationNotFound
		if st.available {
			score = w.StationFound
		}
		acc.add(score, w.Station)
	}

	if sc := get(items, model.KeyNearbySchools); sc.present {
		score, ok := sc.float()
		if !ok {
			score = e.n.SchoolsScore(nil)
		}
		acc.add(score, w.Schools)
	}

	if mobile, ok := get(items, model.KeyMobileCoverage).float(); ok {
		acc.add(mobile, w.Mobile)
	}

	v, ok := acc.mean()
	if !ok {
		return model.MissingData(model.CategoryConnectivity)
	}
	return calculated(model.CategoryConnectivity, v)
}
