package model

// Score wraps a category score value. ScoreValue is nil when uncalculated.
type Score struct {
	ScoreValue *float64 `json:"score_value"`
}

// CategoryScoreData is the computed result for one dashboard category.
type CategoryScoreData struct {
	Category          DashboardScoreCategory `json:"category"`
	Score             Score                  `json:"score"`
	CalculationStatus CalculationStatus      `json:"calculation_status"`
	Label             string                 `json:"label,omitempty"`
}

// Calculated returns a CALCULATED result holding v.
func Calculated(c DashboardScoreCategory, v float64) CategoryScoreData {
	return CategoryScoreData{
		Category:          c,
		Score:             Score{ScoreValue: &v},
		CalculationStatus: CalcCalculated,
	}
}

// MissingData returns an UNCALCULATED_MISSING_DATA result.
func MissingData(c DashboardScoreCategory) CategoryScoreData {
	return CategoryScoreData{Category: c, CalculationStatus: CalcUncalculatedMissingData}
}

// NotApplicableScore returns a NOT_APPLICABLE result.
func NotApplicableScore(c DashboardScoreCategory) CategoryScoreData {
	return CategoryScoreData{Category: c, CalculationStatus: CalcNotApplicable}
}

// Value returns the score value when the category was calculated.
func (d CategoryScoreData) Value() (float64, bool) {
	if d.CalculationStatus != CalcCalculated || d.Score.ScoreValue == nil {
		return 0, false
	}
	return *d.Score.ScoreValue, true
}

// DashboardScores maps each category to its computed score.
type DashboardScores map[DashboardScoreCategory]CategoryScoreData
