package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// DataStatus is the resolution state of a checklist item.
type DataStatus int

const (
	StatusFoundPositive DataStatus = iota + 1
	StatusAskAgent
	StatusIsLoading
	numDataStatuses
)

var dataStatusLabels = [...]string{
	StatusFoundPositive: "FOUND_POSITIVE",
	StatusAskAgent:      "ASK_AGENT",
	StatusIsLoading:     "IS_LOADING",
}

// DataStatusCount is the number of declared statuses.
const DataStatusCount = int(numDataStatuses) - 1

// Fails to compile when a DataStatus is added without a label.
var _ = [1]struct{}{}[len(dataStatusLabels)-int(numDataStatuses)]

// DataStatuses returns every DataStatus in declaration order.
func DataStatuses() []DataStatus {
	out := make([]DataStatus, 0, numDataStatuses-1)
	for s := StatusFoundPositive; s < numDataStatuses; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is a declared status.
func (s DataStatus) Valid() bool { return s > 0 && s < numDataStatuses }

func (s DataStatus) String() string { return enumLabel(dataStatusLabels[:], int(s)) }

// MarshalText implements encoding.TextMarshaler.
func (s DataStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, eris.Errorf("model: invalid data status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *DataStatus) UnmarshalText(b []byte) error {
	i, ok := enumParse(dataStatusLabels[:], string(b))
	if !ok {
		return eris.Errorf("model: unknown data status %q", string(b))
	}
	*s = DataStatus(i)
	return nil
}

// PriceDiscrepancyReason explains a price discrepancy classification.
type PriceDiscrepancyReason int

const (
	ReasonNoPreviousSoldHistory PriceDiscrepancyReason = iota + 1
	ReasonMissingOrInvalidPriceData
	ReasonPriceGapWithinExpectedRange
	ReasonPriceGapExceedsExpectedRange
	ReasonPriceDrop
	numPriceDiscrepancyReasons
)

var priceDiscrepancyReasonLabels = [...]string{
	ReasonNoPreviousSoldHistory:        "NO_PREVIOUS_SOLD_HISTORY",
	ReasonMissingOrInvalidPriceData:    "MISSING_OR_INVALID_PRICE_DATA",
	ReasonPriceGapWithinExpectedRange:  "PRICE_GAP_WITHIN_EXPECTED_RANGE",
	ReasonPriceGapExceedsExpectedRange: "PRICE_GAP_EXCEEDS_EXPECTED_RANGE",
	ReasonPriceDrop:                    "PRICE_DROP",
}

// PriceDiscrepancyReasonCount is the number of declared reasons.
const PriceDiscrepancyReasonCount = int(numPriceDiscrepancyReasons) - 1

// Fails to compile when a PriceDiscrepancyReason is added without a label.
var _ = [1]struct{}{}[len(priceDiscrepancyReasonLabels)-int(numPriceDiscrepancyReasons)]

// PriceDiscrepancyReasons returns every reason in declaration order.
func PriceDiscrepancyReasons() []PriceDiscrepancyReason {
	out := make([]PriceDiscrepancyReason, 0, numPriceDiscrepancyReasons-1)
	for r := ReasonNoPreviousSoldHistory; r < numPriceDiscrepancyReasons; r++ {
		out = append(out, r)
	}
	return out
}

// Valid reports whether r is a declared reason.
func (r PriceDiscrepancyReason) Valid() bool { return r > 0 && r < numPriceDiscrepancyReasons }

func (r PriceDiscrepancyReason) String() string {
	return enumLabel(priceDiscrepancyReasonLabels[:], int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r PriceDiscrepancyReason) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, eris.Errorf("model: invalid price discrepancy reason %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *PriceDiscrepancyReason) UnmarshalText(b []byte) error {
	i, ok := enumParse(priceDiscrepancyReasonLabels[:], string(b))
	if !ok {
		return eris.Errorf("model: unknown price discrepancy reason %q", string(b))
	}
	*r = PriceDiscrepancyReason(i)
	return nil
}

// DashboardScoreCategory identifies one dashboard category.
type DashboardScoreCategory int

const (
	CategoryRunningCosts DashboardScoreCategory = iota + 1
	CategoryInvestmentValue
	CategoryConnectivity
	CategoryCondition
	CategoryEnvironmentRisk
	CategoryLegalConstraints
	CategoryDataCoverage
	numCategories
)

var categoryLabels = [...]string{
	CategoryRunningCosts:     "RUNNING_COSTS",
	CategoryInvestmentValue:  "INVESTMENT_VALUE",
	CategoryConnectivity:     "CONNECTIVITY",
	CategoryCondition:        "CONDITION",
	CategoryEnvironmentRisk:  "ENVIRONMENT_RISK",
	CategoryLegalConstraints: "LEGAL_CONSTRAINTS",
	CategoryDataCoverage:     "DATA_COVERAGE",
}

// CategoryCount is the number of dashboard categories.
const CategoryCount = int(numCategories) - 1

// Fails to compile when a category is added without a label.
var _ = [1]struct{}{}[len(categoryLabels)-int(numCategories)]

// Categories returns every dashboard category in display order.
func Categories() []DashboardScoreCategory {
	out := make([]DashboardScoreCategory, 0, numCategories-1)
	for c := CategoryRunningCosts; c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

// Valid reports whether c is a declared category.
func (c DashboardScoreCategory) Valid() bool { return c > 0 && c < numCategories }

func (c DashboardScoreCategory) String() string { return enumLabel(categoryLabels[:], int(c)) }

// MarshalText implements encoding.TextMarshaler.
func (c DashboardScoreCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, eris.Errorf("model: invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *DashboardScoreCategory) UnmarshalText(b []byte) error {
	i, ok := enumParse(categoryLabels[:], string(b))
	if !ok {
		return eris.Errorf("model: unknown category %q", string(b))
	}
	*c = DashboardScoreCategory(i)
	return nil
}

// CalculationStatus records whether a category score could be computed.
type CalculationStatus int

const (
	CalcCalculated CalculationStatus = iota + 1
	CalcUncalculatedMissingData
	CalcNotApplicable
	numCalculationStatuses
)

var calculationStatusLabels = [...]string{
	CalcCalculated:              "CALCULATED",
	CalcUncalculatedMissingData: "UNCALCULATED_MISSING_DATA",
	CalcNotApplicable:           "NOT_APPLICABLE",
}

// Fails to compile when a CalculationStatus is added without a label.
var _ = [1]struct{}{}[len(calculationStatusLabels)-int(numCalculationStatuses)]

// Valid reports whether s is a declared calculation status.
func (s CalculationStatus) Valid() bool { return s > 0 && s < numCalculationStatuses }

func (s CalculationStatus) String() string {
	return enumLabel(calculationStatusLabels[:], int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s CalculationStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, eris.Errorf("model: invalid calculation status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *CalculationStatus) UnmarshalText(b []byte) error {
	i, ok := enumParse(calculationStatusLabels[:], string(b))
	if !ok {
		return eris.Errorf("model: unknown calculation status %q", string(b))
	}
	*s = CalculationStatus(i)
	return nil
}

func enumLabel(labels []string, i int) string {
	if i <= 0 || i >= len(labels) {
		return "UNKNOWN"
	}
	return labels[i]
}

func enumParse(labels []string, s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i := 1; i < len(labels); i++ {
		if labels[i] == s {
			return i, true
		}
	}
	return 0, false
}
