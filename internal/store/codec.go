package store

import (
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/property-checklist/internal/model"
)

func encode(a *model.Assessment) (row, error) {
	r := row{ID: a.ID, ListingURL: a.ListingURL, Overall: a.Overall}
	var err error
	if r.Items, err = json.Marshal(a.Items); err != nil {
		return r, eris.Wrap(err, "store: marshal items")
	}
	if r.Scores, err = json.Marshal(a.Scores); err != nil {
		return r, eris.Wrap(err, "store: marshal scores")
	}
	if a.Insight != nil {
		if r.Insight, err = json.Marshal(a.Insight); err != nil {
			return r, eris.Wrap(err, "store: marshal insight")
		}
	}
	return r, nil
}

func decode(r row, a *model.Assessment) error {
	a.ID = r.ID
	a.ListingURL = r.ListingURL
	a.Overall = r.Overall
	if err := json.Unmarshal(r.Items, &a.Items); err != nil {
		return eris.Wrap(err, "store: unmarshal items")
	}
	if err := json.Unmarshal(r.Scores, &a.Scores); err != nil {
		return eris.Wrap(err, "store: unmarshal scores")
	}
	if len(r.Insight) > 0 {
		a.Insight = &model.PriceDiscrepancyResult{}
		if err := json.Unmarshal(r.Insight, a.Insight); err != nil {
			return eris.Wrap(err, "store: unmarshal insight")
		}
	}
	return nil
}
