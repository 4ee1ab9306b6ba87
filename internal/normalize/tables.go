// Package normalize turns raw listing field values into scores and
// modifiers on fixed scales. Every rule reads its thresholds and vocabularies
// from an immutable Tables value handed to New.
package normalize

// KeywordRule matches text that contains every All phrase and at least one
// Any phrase, both as whole words.
type KeywordRule struct {
	All      []string
	Any      []string
	Modifier float64
}

// FragmentModifier maps a label fragment to a modifier.
type FragmentModifier struct {
	Fragment string
	Modifier float64
}

// YearModifier applies to construction years from From onwards.
type YearModifier struct {
	From     int
	Modifier float64
}

// LevelValue maps a level phrase ("very high", "low") to a value.
type LevelValue struct {
	Phrase string
	Value  float64
}

// EPCTable scores EPC rating letters.
type EPCTable struct {
	Scores       map[string]float64
	UnknownScore float64
	// SAPBands lists the minimum SAP points per band, best band first.
	SAPBands []SAPBand
}

// SAPBand is the lowest SAP point value of an EPC band.
type SAPBand struct {
	Letter string
	Min    int
}

// WindowsTable scores window descriptions.
type WindowsTable struct {
	Glazing []KeywordRule
	Frames  []KeywordRule
	Min     float64
	Max     float64
	Missing float64
}

// SafetyTable classifies building-safety terms.
type SafetyTable struct {
	Severe           []string
	Negative         []string
	Positive         []string
	SevereModifier   float64
	NegativeModifier float64
	PositiveModifier float64
	// RiskPerPoint converts a negative modifier sum to a risk multiplier.
	RiskPerPoint float64
}

// OccupancyTable scores occupancy status.
type OccupancyTable struct {
	OwnerOccupied []string
	Rented        []string
	OwnerModifier float64
	RentModifier  float64
}

// BroadbandTable scores download speed relative to the UK average.
type BroadbandTable struct {
	UKAverageMbps     float64
	PoorRatio         float64
	PoorScore         float64
	BelowAverageRatio float64
	BelowAverageScore float64
	AverageRatio      float64
	AverageScore      float64
	FastRatio         float64
	FastScore         float64
	UltrafastScore    float64
}

// CostTable maps an annual cost onto a cost score (higher is costlier).
type CostTable struct {
	LowThreshold    float64
	MediumThreshold float64
	PeppercornScore float64
	LowScore        float64
	MediumScore     float64
	HighScore       float64
	UnknownScore    float64
}

// SchoolsTable scores nearby schools.
type SchoolsTable struct {
	RadiusMiles       float64
	MinDistanceWeight float64
	Ratings           []LevelValue
	UnknownRating     float64
	NoQualifying      float64
	NoSchools         float64
}

// TenureTable holds tenure cost scores (higher is costlier).
type TenureTable struct {
	Freehold        float64
	ShareOfFreehold float64
	Commonhold      float64
	Leasehold       float64
	Unknown         float64
}

// Tables bundles every lookup table and threshold used by the normalizers.
// A Tables value must not be modified after it is passed to New.
type Tables struct {
	EPC              EPCTable
	AgeBands         []FragmentModifier
	AgeYears         []YearModifier
	Heating          []KeywordRule
	HeatingMissing   float64
	Windows          WindowsTable
	Floor            []KeywordRule
	Walls            []KeywordRule
	Roof             []KeywordRule
	Safety           SafetyTable
	Occupancy        OccupancyTable
	Broadband        BroadbandTable
	GroundRent       CostTable
	ServiceCharge    CostTable
	Schools          SchoolsTable
	CouncilTaxBands  map[string]float64
	CouncilTaxNoBand float64
	Tenure           TenureTable
	Crime            []LevelValue
	Flood            []LevelValue
	AirportNoise     []LevelValue
	MobileLevels     []LevelValue
	Affirmative      []string
	Negative         []string
	// AnswerYes and AnswerNo decide a yes/no answer when they lead it.
	AnswerYes        []string
	AnswerNo         []string
}

// DefaultTables returns the production tables.
func DefaultTables() Tables {
	return Tables{
		EPC: EPCTable{
			Scores: map[string]float64{
				"A": 100, "B": 85, "C": 70, "D": 55, "E": 40, "F": 25, "G": 10,
			},
			UnknownScore: 30,
			SAPBands: []SAPBand{
				{"A", 92}, {"B", 81}, {"C", 69}, {"D", 55}, {"E", 39}, {"F", 21}, {"G", 1},
			},
		},
		// Pre-1900 phrases go first because they contain "1900".
		AgeBands: []FragmentModifier{
			{"before 1900", -10},
			{"pre-1900", -10},
			{"pre 1900", -10},
			{"new build", 10},
			{"2020", 10},
			{"2012", 8},
			{"2007", 6},
			{"2003", 5},
			{"1996", 4},
			{"1991", 3},
			{"1983", 2},
			{"1976", 1},
			{"1967", 0},
			{"1950", -2},
			{"1930", -4},
			{"1900", -6},
		},
		AgeYears: []YearModifier{
			{2020, 10}, {2012, 8}, {2007, 6}, {2003, 5}, {1996, 4}, {1991, 3},
			{1983, 2}, {1976, 1}, {1967, 0}, {1950, -2}, {1930, -4}, {1900, -6},
			{0, -10},
		},
		Heating: []KeywordRule{
			{All: []string{"gas", "central"}, Modifier: 3},
			{Any: []string{"modern boiler", "new boiler", "combi", "combination boiler", "condensing boiler"}, Modifier: 4},
			{All: []string{"electric", "storage"}, Modifier: -3},
			{Any: []string{"oil"}, Modifier: -2},
			{Any: []string{"underfloor"}, Modifier: 5},
			{Any: []string{"heat pump"}, Modifier: 5},
			{Any: []string{"lpg"}, Modifier: -1},
			{Any: []string{"solid fuel", "coal"}, Modifier: -2},
			{Any: []string{"no heating", "no central heating"}, Modifier: -5},
		},
		HeatingMissing: -1,
		Windows: WindowsTable{
			Glazing: []KeywordRule{
				{Any: []string{"triple"}, Modifier: 5},
				{Any: []string{"double", "dual"}, Modifier: 3},
				{Any: []string{"secondary"}, Modifier: 1},
				{Any: []string{"single"}, Modifier: -5},
			},
			Frames: []KeywordRule{
				{Any: []string{"upvc", "u pvc", "pvc"}, Modifier: 1},
				{Any: []string{"timber", "wood", "wooden"}, Modifier: -1},
			},
			Min:     -5,
			Max:     6,
			Missing: -1,
		},
		Floor: []KeywordRule{
			{Any: []string{"no insulation", "uninsulated"}, Modifier: -1},
			{Any: []string{"insulated", "insulation"}, Modifier: 1},
			{Any: []string{"suspended", "solid", "another dwelling below"}, Modifier: 0},
		},
		Walls: []KeywordRule{
			{Any: []string{"no insulation", "uninsulated", "as built"}, Modifier: -2},
			{Any: []string{"partial insulation"}, Modifier: 0},
			{Any: []string{"filled cavity", "insulated", "external insulation", "internal insulation"}, Modifier: 2},
			{Any: []string{"system built"}, Modifier: -1},
			{Any: []string{"solid brick", "granite", "sandstone", "solid stone"}, Modifier: -1},
			{Any: []string{"cavity"}, Modifier: 1},
			{Any: []string{"timber frame"}, Modifier: 0},
		},
		Roof: []KeywordRule{
			{Any: []string{"no insulation", "uninsulated"}, Modifier: -2},
			{Any: []string{"limited insulation"}, Modifier: -1},
			{Any: []string{"thatched"}, Modifier: -1},
			{Any: []string{"insulated", "loft insulation", "insulation"}, Modifier: 2},
			{Any: []string{"flat"}, Modifier: -1},
			{Any: []string{"pitched", "another dwelling above"}, Modifier: 0},
		},
		Safety: SafetyTable{
			Severe: []string{"mould", "mold", "damp", "asbestos", "radon"},
			Negative: []string{
				"subsidence", "knotweed", "cladding", "structural", "crack", "cracks",
				"rot", "leak", "leaks", "woodworm", "flood damage", "unsafe", "defect", "defects",
			},
			Positive: []string{
				"fire alarm", "smoke alarm", "smoke alarms", "smoke detector", "sprinkler",
				"sprinklers", "fire door", "fire doors", "ews1", "carbon monoxide",
				"fire safety certificate", "cctv", "security system",
			},
			SevereModifier:   -5,
			NegativeModifier: -1,
			PositiveModifier: 0.5,
			RiskPerPoint:     0.1,
		},
		Occupancy: OccupancyTable{
			OwnerOccupied: []string{"owner occupied", "owner occupier", "owner"},
			Rented:        []string{"rented", "tenanted", "let", "social housing", "private rented", "social rented"},
			OwnerModifier: 2,
			RentModifier:  -1,
		},
		Broadband: BroadbandTable{
			UKAverageMbps:     75,
			PoorRatio:         0.5,
			PoorScore:         20,
			BelowAverageRatio: 0.9,
			BelowAverageScore: 40,
			AverageRatio:      1.5,
			AverageScore:      75,
			FastRatio:         5,
			FastScore:         90,
			UltrafastScore:    100,
		},
		GroundRent: CostTable{
			LowThreshold:    100,
			MediumThreshold: 250,
			PeppercornScore: 0,
			LowScore:        10,
			MediumScore:     40,
			HighScore:       80,
			UnknownScore:    30,
		},
		ServiceCharge: CostTable{
			LowThreshold:    1000,
			MediumThreshold: 2500,
			PeppercornScore: 0,
			LowScore:        15,
			MediumScore:     50,
			HighScore:       90,
			UnknownScore:    40,
		},
		Schools: SchoolsTable{
			RadiusMiles:       3,
			MinDistanceWeight: 0.7,
			Ratings: []LevelValue{
				{"outstanding", 100},
				{"requires improvement", 40},
				{"inadequate", 20},
				{"good", 75},
			},
			UnknownRating: 30,
			NoQualifying:  40,
			NoSchools:     30,
		},
		CouncilTaxBands: map[string]float64{
			"A": 100, "B": 90, "C": 75, "D": 60, "E": 45, "F": 30, "G": 15, "H": 0,
		},
		CouncilTaxNoBand: 50,
		Tenure: TenureTable{
			Freehold:        0,
			ShareOfFreehold: 20,
			Commonhold:      20,
			Leasehold:       60,
			Unknown:         40,
		},
		Crime: []LevelValue{
			{"very high", 1.0},
			{"above average", 1.0},
			{"high", 1.0},
			{"moderate", 0.6},
			{"medium", 0.6},
			{"below average", 0.1},
			{"average", 0.6},
			{"very low", 0.1},
			{"low", 0.1},
		},
		Flood: []LevelValue{
			{"very high", 1.0},
			{"very low", 0.0},
			{"high", 0.75},
			{"medium", 0.5},
			{"low", 0.25},
			{"no risk", 0.0},
			{"none", 0.0},
		},
		AirportNoise: []LevelValue{
			{"extremely high", 1.0},
			{"very high", 0.8},
			{"high", 0.6},
			{"medium", 0.4},
			{"moderate", 0.4},
			{"low", 0.2},
			{"none", 0.0},
			{"no", 0.0},
		},
		MobileLevels: []LevelValue{
			{"no coverage", 0},
			{"unlikely", 0},
			{"none", 0},
			{"good", 100},
			{"likely", 100},
			{"enhanced", 100},
			{"variable", 50},
			{"limited", 50},
		},
		Affirmative: []string{"yes", "y", "true", "within", "inside", "affected", "listed", "grade", "at risk", "present"},
		Negative:    []string{"no", "n", "not", "none", "false", "outside", "unaffected", "unlikely"},
		AnswerYes:   []string{"yes", "y", "true"},
		AnswerNo:    []string{"no", "n", "none", "false"},
	}
}
