package store

import (
	"time"

	"github.com/sells-group/property-checklist/internal/model"
)

func ptr(f float64) *float64 { return &f }

func sampleAssessment(id, url string, created time.Time) *model.Assessment {
	return &model.Assessment{
		ID:         id,
		ListingURL: url,
		Items: model.Checklist{
			{Key: model.KeyPrice, Label: "Price", Group: model.GroupListingDetails, Value: model.FormattedValue(320000, "£320,000"), Status: model.StatusFoundPositive},
			{Key: model.KeyEPC, Label: "EPC", Group: model.GroupCondition, Value: model.TextValue("D"), Status: model.StatusFoundPositive},
			{Key: model.KeyGroundRent, Label: "Ground rent", Group: model.GroupCosts, Value: model.MissingValue(model.NotApplicable), Status: model.StatusFoundPositive},
		},
		Scores: model.DashboardScores{
			model.CategoryRunningCosts:    model.Calculated(model.CategoryRunningCosts, 65),
			model.CategoryInvestmentValue: model.MissingData(model.CategoryInvestmentValue),
		},
		Overall: ptr(65),
		Insight: &model.PriceDiscrepancyResult{
			Value:      "N/A",
			Status:     model.StatusFoundPositive,
			Reason:     model.ReasonNoPreviousSoldHistory,
			Volatility: "N/A",
		},
		CreatedAt: created,
	}
}
