package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/property-checklist/internal/model"
)

func ptrFloat64(v float64) *float64 { return &v }

func TestEPCScore_Letters(t *testing.T) {
	n := Default()
	letters := []string{"A", "B", "C", "D", "E", "F", "G"}
	want := []float64{100, 85, 70, 55, 40, 25, 10}

	prev := 101.0
	for i, l := range letters {
		got := n.EPCScore(l)
		assert.Equal(t, want[i], got, "rating %s", l)
		assert.LessOrEqual(t, got, prev, "scores must not increase from A to G")
		prev = got
	}
}

func TestEPCScore_Unknown(t *testing.T) {
	n := Default()
	for _, raw := range []string{"", "H", "Z", "unknown", "Good", "AB", "TBC"} {
		assert.Equal(t, 30.0, n.EPCScore(raw), "input %q", raw)
	}
}

func TestEPCRating(t *testing.T) {
	n := Default()
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"C", "C", true},
		{"c", "C", true},
		{"EPC Rating: D", "D", true},
		{"Band B (84)", "B", true},
		{"C72", "C", true},
		{"72", "C", true},
		{"95", "A", true},
		{"15", "G", true},
		{"has a rating of E", "E", true},
		{"0", "", false},
		{"Not known", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := n.EPCRating(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCouncilTaxScore(t *testing.T) {
	n := Default()
	tests := []struct {
		raw  string
		want float64
	}{
		{"Band A", 100},
		{"A", 100},
		{"band d", 60},
		{"Council Tax Band: H", 0},
		{"E", 45},
		{"TBC", 50},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, n.CouncilTaxScore(tt.raw))
		})
	}
}

func TestAgeBandModifier(t *testing.T) {
	n := Default()
	tests := []struct {
		raw  string
		want float64
	}{
		{"England and Wales: 2020 onwards", 10},
		{"2012 onwards", 8},
		{"England and Wales: 1996-2002", 4},
		{"1967-1975", 0},
		{"1900-1929", -6},
		{"England and Wales: before 1900", -10},
		{"Pre-1900", -10},
		{"built 1985", 2},
		{"1850", -10},
		{"", 0},
		{"unknown", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, n.AgeBandModifier(tt.raw))
		})
	}
}

func TestHeatingModifier(t *testing.T) {
	n := Default()
	tests := []struct {
		raw  string
		want float64
	}{
		{"Gas central heating", 3},
		{"Gas central heating with new boiler", 7},
		{"Combi boiler", 4},
		{"Electric storage heaters", -3},
		{"Oil fired", -2},
		{"new boiler", 4}, // "boiler" must not match "oil"
		{"Underfloor heating", 5},
		{"Air source heat pump", 5},
		{"", -1},
		{"Radiators", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, n.HeatingModifier(tt.raw))
		})
	}
}

func TestWindowsModifier(t *testing.T) {
	n := Default()
	tests := []struct {
		raw  string
		want float64
	}{
		{"Triple glazed uPVC", 6},
		{"Double glazing throughout", 3},
		{"uPVC double glazed", 4},
		{"Single glazed timber sash", -5},
		{"Timber frames", -1},
		{"", -1},
		{"Sash windows", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, n.WindowsModifier(tt.raw))
		})
	}
}

func TestMaterialModifiers_MissingIsNeutral(t *testing.T) {
	n := Default()
	assert.Equal(t, 0.0, n.FloorModifier(""))
	assert.Equal(t, 0.0, n.WallsModifier(""))
	assert.Equal(t, 0.0, n.RoofModifier(""))

	assert.Equal(t, -2.0, n.WallsModifier("Cavity wall, as built, no insulation (assumed)"))
	assert.Equal(t, 2.0, n.WallsModifier("Cavity wall, filled cavity"))
	assert.Equal(t, 2.0, n.RoofModifier("Pitched, 270 mm loft insulation"))
	assert.Equal(t, -1.0, n.FloorModifier("Suspended, no insulation (assumed)"))
}

func TestSafetyModifier(t *testing.T) {
	n := Default()
	assert.Equal(t, 0.0, n.SafetyModifier(nil))
	assert.Equal(t, -5.0, n.SafetyModifier([]string{"Damp in cellar"}))
	assert.Equal(t, -10.0, n.SafetyModifier([]string{"mould", "asbestos"}))
	assert.Equal(t, -1.0, n.SafetyModifier([]string{"Japanese knotweed nearby"}))
	assert.InDelta(t, 1.0, n.SafetyModifier([]string{"Smoke alarms", "Fire doors"}), 1e-9)
	assert.InDelta(t, -4.5, n.SafetyModifier([]string{"radon", "sprinklers", "garden"}), 1e-9)
}

func TestSafetyRisk(t *testing.T) {
	n := Default()
	assert.Equal(t, 0.0, n.SafetyRisk(0.5))
	assert.InDelta(t, 0.5, n.SafetyRisk(-5), 1e-9)
	assert.Equal(t, 1.0, n.SafetyRisk(-20))
}

func TestOccupancyModifier(t *testing.T) {
	n := Default()
	assert.Equal(t, 2.0, n.OccupancyModifier("Owner-occupied"))
	assert.Equal(t, -1.0, n.OccupancyModifier("Rented (private)"))
	assert.Equal(t, -1.0, n.OccupancyModifier("Rented (social)"))
	assert.Equal(t, 0.0, n.OccupancyModifier("Vacant"))
	assert.Equal(t, 0.0, n.OccupancyModifier(""))
}

func TestBroadbandScore(t *testing.T) {
	n := Default()
	tests := []struct {
		name       string
		mbps       *float64
		wantScore  *float64
		wantStatus model.DataStatus
	}{
		{"unknown", nil, nil, model.StatusAskAgent},
		{"very slow", ptrFloat64(10), ptrFloat64(20), model.StatusAskAgent},
		{"half average", ptrFloat64(37.5), ptrFloat64(40), model.StatusFoundPositive},
		{"below average", ptrFloat64(60), ptrFloat64(40), model.StatusFoundPositive},
		{"average", ptrFloat64(80), ptrFloat64(75), model.StatusFoundPositive},
		{"fast", ptrFloat64(300), ptrFloat64(90), model.StatusFoundPositive},
		{"five times", ptrFloat64(375), ptrFloat64(90), model.StatusFoundPositive},
		{"gigabit", ptrFloat64(1000), ptrFloat64(100), model.StatusFoundPositive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.BroadbandScore(tt.mbps)
			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.wantScore == nil {
				assert.Nil(t, got.Score)
				return
			}
			require.NotNil(t, got.Score)
			assert.Equal(t, *tt.wantScore, *got.Score)
		})
	}
}

func TestGroundRentScore(t *testing.T) {
	n := Default()
	ok := model.StatusFoundPositive
	tests := []struct {
		name   string
		value  model.Value
		status model.DataStatus
		want   float64
	}{
		{"peppercorn text", model.TextValue("Peppercorn"), ok, 0},
		{"numeric zero", model.NumberValue(0), ok, 0},
		{"low", model.TextValue("£50 per annum"), ok, 10},
		{"medium", model.TextValue("£150"), ok, 40},
		{"medium formatted", model.FormattedValue(150, "£150"), ok, 40},
		{"threshold is medium", model.NumberValue(100), ok, 40},
		{"high", model.TextValue("£300 pa"), ok, 80},
		{"monthly annualised", model.TextValue("£25 per month"), ok, 80},
		{"unparseable", model.TextValue("Ask agent"), ok, 30},
		{"missing", model.MissingValue(model.NotMentioned), ok, 30},
		{"ask agent status", model.TextValue("£150"), model.StatusAskAgent, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.GroundRentScore(tt.value, tt.status))
		})
	}
}

func TestServiceChargeScore(t *testing.T) {
	n := Default()
	ok := model.StatusFoundPositive
	assert.Equal(t, 0.0, n.ServiceChargeScore(model.NumberValue(0), ok))
	assert.Equal(t, 15.0, n.ServiceChargeScore(model.TextValue("£800 per year"), ok))
	assert.Equal(t, 50.0, n.ServiceChargeScore(model.TextValue("£1,200"), ok))
	assert.Equal(t, 90.0, n.ServiceChargeScore(model.TextValue("£3,000"), ok))
	assert.Equal(t, 40.0, n.ServiceChargeScore(model.TextValue("TBC"), ok))
}

func TestSchoolsScore(t *testing.T) {
	n := Default()

	assert.Equal(t, 30.0, n.SchoolsScore(nil))
	assert.Equal(t, 40.0, n.SchoolsScore([]model.School{{Name: "Far", Rating: "Outstanding", DistanceMiles: 5}}))
	assert.Equal(t, 40.0, n.SchoolsScore([]model.School{{Name: "Unrated", DistanceMiles: 1}}))

	// Outstanding at the doorstep keeps its full score.
	assert.InDelta(t, 100, n.SchoolsScore([]model.School{{Rating: "Outstanding", DistanceMiles: 0}}), 1e-9)

	// Outstanding at 1.5 miles: penalty (1.5/3)*(1-0.7) = 0.15.
	assert.InDelta(t, 85, n.SchoolsScore([]model.School{{Rating: "Outstanding", DistanceMiles: 1.5}}), 1e-9)

	// Best school wins.
	schools := []model.School{
		{Rating: "Good", DistanceMiles: 0.2},
		{Rating: "Requires improvement", DistanceMiles: 0.1},
		{Rating: "Outstanding", DistanceMiles: 3},
	}
	assert.InDelta(t, 75*(1-0.2/3*0.3), n.SchoolsScore(schools), 1e-9)

	// Unknown rating words use the unknown score.
	assert.InDelta(t, 30, n.SchoolsScore([]model.School{{Rating: "Not yet inspected", DistanceMiles: 0}}), 1e-9)
}

func TestMobileCoverageScore(t *testing.T) {
	n := Default()

	_, ok := n.MobileCoverageScore(nil)
	assert.False(t, ok)

	got, ok := n.MobileCoverageScore(&model.MobileCoverage{Operators: []model.OperatorCoverage{
		{Name: "EE", Voice: "Good", Data: "Variable"},
		{Name: "O2", Voice: "Variable", Data: "None"},
		{Name: "Three", Voice: "?", Data: ""},
	}})
	require.True(t, ok)
	assert.InDelta(t, 75, got, 1e-9)
}

func TestRiskMultipliers(t *testing.T) {
	n := Default()

	crime := map[string]float64{"High": 1.0, "Moderate": 0.6, "Low": 0.1, "Below average": 0.1}
	for raw, want := range crime {
		got, ok := n.CrimeRisk(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	flood := map[string]float64{"Very high": 1.0, "High": 0.75, "Medium": 0.5, "Low": 0.25, "Very low": 0.0}
	for raw, want := range flood {
		got, ok := n.FloodRisk(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	noise := map[string]float64{"None": 0, "Low": 0.2, "Medium": 0.4, "High": 0.6, "Very High": 0.8, "Extremely High": 1.0}
	for raw, want := range noise {
		got, ok := n.AirportNoiseRisk(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := n.CrimeRisk("unknown")
	assert.False(t, ok)
}

func TestAffirmative(t *testing.T) {
	n := Default()
	tests := []struct {
		raw     string
		wantYes bool
		wantOK  bool
	}{
		{"Yes", true, true},
		{"No", false, true},
		{"Yes - no commercial use permitted", true, true},
		{"Yes, not to be extended", true, true},
		{"No, but a footpath runs nearby", false, true},
		{"Footpath present", true, true},
		{"Footpath not present", false, true},
		{"Listed: no", false, true},
		{"Grade II listed", true, true},
		{"Ask agent", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			yes, ok := n.Affirmative(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantYes, yes)
		})
	}
}

func TestPresenceRisk(t *testing.T) {
	n := Default()
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"Yes", 1, true},
		{"No", 0, true},
		{"Not in a conservation area", 0, true},
		{"Low risk", 0.25, true},
		{"maybe", 0, false},
		{"Yes, not to be extended", 1, true},
		{"Yes, within a conservation area, no further restrictions", 1, true},
		{"No - not affected", 0, true},
		{"Conservation area: no", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := n.PresenceRisk(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTenure(t *testing.T) {
	assert.Equal(t, TenureShareOfFreehold, Tenure("Share of Freehold"))
	assert.Equal(t, TenureFreehold, Tenure("Freehold"))
	assert.Equal(t, TenureLeasehold, Tenure("Leasehold (125 years)"))
	assert.Equal(t, TenureCommonhold, Tenure("commonhold"))
	assert.Equal(t, TenureUnknown, Tenure(""))

	n := Default()
	assert.Equal(t, 0.0, n.TenureCostScore("Freehold"))
	assert.Equal(t, 60.0, n.TenureCostScore("Leasehold"))
	assert.Equal(t, 40.0, n.TenureCostScore("Ask agent"))
}
