package model

import "time"

// SaleHistoryEntry is one row of a property's sold-price history.
type SaleHistoryEntry struct {
	Year             string `json:"year" yaml:"year"`
	SoldPrice        string `json:"sold_price" yaml:"sold_price"`
	PercentageChange string `json:"percentage_change,omitempty" yaml:"percentage_change,omitempty"`
}

// PriceDiscrepancyResult classifies the asking price against sold history.
type PriceDiscrepancyResult struct {
	Value      string                 `json:"value"`
	Status     DataStatus             `json:"status"`
	Reason     PriceDiscrepancyReason `json:"reason"`
	CAGR       *float64               `json:"cagr"`
	Volatility string                 `json:"volatility"`

	// PercentageChange is the raw change between the asking price and the
	// previous sale, in percent.
	PercentageChange *float64 `json:"percentage_change,omitempty"`
	// VolatilityPct is the numeric form of Volatility.
	VolatilityPct *float64 `json:"volatility_pct,omitempty"`
}

// Station is a nearby railway or underground station.
type Station struct {
	Name          string  `json:"name" yaml:"name"`
	DistanceMiles float64 `json:"distance_miles" yaml:"distance_miles"`
}

// School is a nearby school with its inspection rating.
type School struct {
	Name          string  `json:"name" yaml:"name"`
	Rating        string  `json:"rating" yaml:"rating"`
	DistanceMiles float64 `json:"distance_miles" yaml:"distance_miles"`
}

// Listing is the raw snapshot scraped from a listing page. Empty strings
// mean the field was not on the page.
type Listing struct {
	URL                  string             `json:"url" yaml:"url"`
	Price                string             `json:"price" yaml:"price"`
	PropertyType         string             `json:"property_type" yaml:"property_type"`
	Tenure               string             `json:"tenure" yaml:"tenure"`
	Bedrooms             string             `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms            string             `json:"bathrooms" yaml:"bathrooms"`
	Size                 string             `json:"size" yaml:"size"`
	CouncilTax           string             `json:"council_tax" yaml:"council_tax"`
	EPC                  string             `json:"epc" yaml:"epc"`
	Heating              string             `json:"heating" yaml:"heating"`
	Windows              string             `json:"windows" yaml:"windows"`
	ConstructionAgeBand  string             `json:"construction_age_band" yaml:"construction_age_band"`
	Garden               string             `json:"garden" yaml:"garden"`
	Parking              string             `json:"parking" yaml:"parking"`
	Accessibility        string             `json:"accessibility" yaml:"accessibility"`
	GroundRent           string             `json:"ground_rent" yaml:"ground_rent"`
	ServiceCharge        string             `json:"service_charge" yaml:"service_charge"`
	LeaseTerm            string             `json:"lease_term" yaml:"lease_term"`
	ListedProperty       string             `json:"listed_property" yaml:"listed_property"`
	RestrictiveCovenants string             `json:"restrictive_covenants" yaml:"restrictive_covenants"`
	PublicRightOfWay     string             `json:"public_right_of_way" yaml:"public_right_of_way"`
	PrivateRightOfWay    string             `json:"private_right_of_way" yaml:"private_right_of_way"`
	ConservationArea     string             `json:"conservation_area" yaml:"conservation_area"`
	CoastalErosion       string             `json:"coastal_erosion" yaml:"coastal_erosion"`
	MiningImpact         string             `json:"mining_impact" yaml:"mining_impact"`
	AirportNoise         string             `json:"airport_noise" yaml:"airport_noise"`
	FloodRisk            string             `json:"flood_risk" yaml:"flood_risk"`
	CrimeRating          string             `json:"crime_rating" yaml:"crime_rating"`
	Broadband            string             `json:"broadband" yaml:"broadband"`
	BuildingSafety       []string           `json:"building_safety,omitempty" yaml:"building_safety,omitempty"`
	NearestStations      []Station          `json:"nearest_stations,omitempty" yaml:"nearest_stations,omitempty"`
	NearbySchools        []School           `json:"nearby_schools,omitempty" yaml:"nearby_schools,omitempty"`
	SalesHistory         []SaleHistoryEntry `json:"sales_history,omitempty" yaml:"sales_history,omitempty"`

	// Loading lists items whose source query is still in flight.
	Loading []ItemKey `json:"loading,omitempty" yaml:"loading,omitempty"`
}

// FloodRisk holds flood risk levels per source ("Very low" .. "Very high").
type FloodRisk struct {
	RiversAndSea string `json:"rivers_and_sea" yaml:"rivers_and_sea"`
	SurfaceWater string `json:"surface_water" yaml:"surface_water"`
	Groundwater  string `json:"groundwater" yaml:"groundwater"`
}

// PlanningApplication is a planning application on or near the property.
type PlanningApplication struct {
	Reference    string `json:"reference" yaml:"reference"`
	Description  string `json:"description" yaml:"description"`
	Status       string `json:"status" yaml:"status"`
	DecisionDate string `json:"decision_date,omitempty" yaml:"decision_date,omitempty"`
}

// OperatorCoverage is the coverage level of one mobile operator.
type OperatorCoverage struct {
	Name  string `json:"name" yaml:"name"`
	Voice string `json:"voice" yaml:"voice"`
	Data  string `json:"data" yaml:"data"`
}

// MobileCoverage lists per-operator coverage.
type MobileCoverage struct {
	Operators []OperatorCoverage `json:"operators" yaml:"operators"`
}

// Occupancy is the occupancy status of the property.
type Occupancy struct {
	Status string `json:"status" yaml:"status"`
}

// BroadbandAvailability is the best available broadband.
type BroadbandAvailability struct {
	MaxDownloadMbps *float64 `json:"max_download_mbps" yaml:"max_download_mbps"`
}

// Construction describes the build of the property.
type Construction struct {
	AgeBand string `json:"age_band" yaml:"age_band"`
	Floor   string `json:"floor" yaml:"floor"`
	Walls   string `json:"walls" yaml:"walls"`
	Roof    string `json:"roof" yaml:"roof"`
}

// Valuation holds market estimates for the property and its area.
type Valuation struct {
	EstimatedValue      *float64 `json:"estimated_value" yaml:"estimated_value"`
	AreaAverageValue    *float64 `json:"area_average_value" yaml:"area_average_value"`
	EstimatedRentPCM    *float64 `json:"estimated_rent_pcm" yaml:"estimated_rent_pcm"`
	MarketTurnoverPct   *float64 `json:"market_turnover_pct" yaml:"market_turnover_pct"`
	PropensityToSellPct *float64 `json:"propensity_to_sell_pct" yaml:"propensity_to_sell_pct"`
	PropensityToLetPct  *float64 `json:"propensity_to_let_pct" yaml:"propensity_to_let_pct"`
}

// PremiumData is the optional enrichment from the paid data source. Set
// fields override the scraped listing.
type PremiumData struct {
	FloodRisk            *FloodRisk             `json:"flood_risk,omitempty" yaml:"flood_risk,omitempty"`
	PlanningApplications []PlanningApplication  `json:"planning_applications,omitempty" yaml:"planning_applications,omitempty"`
	MobileCoverage       *MobileCoverage        `json:"mobile_coverage,omitempty" yaml:"mobile_coverage,omitempty"`
	Occupancy            *Occupancy             `json:"occupancy,omitempty" yaml:"occupancy,omitempty"`
	Broadband            *BroadbandAvailability `json:"broadband,omitempty" yaml:"broadband,omitempty"`
	Construction         *Construction          `json:"construction,omitempty" yaml:"construction,omitempty"`
	Valuation            *Valuation             `json:"valuation,omitempty" yaml:"valuation,omitempty"`
	ListedBuilding       string                 `json:"listed_building,omitempty" yaml:"listed_building,omitempty"`
	ConservationArea     string                 `json:"conservation_area,omitempty" yaml:"conservation_area,omitempty"`
	CoastalErosion       string                 `json:"coastal_erosion,omitempty" yaml:"coastal_erosion,omitempty"`
	MiningImpact         string                 `json:"mining_impact,omitempty" yaml:"mining_impact,omitempty"`
	AirportNoise         string                 `json:"airport_noise,omitempty" yaml:"airport_noise,omitempty"`
}

// Assessment is a scored snapshot of one listing.
type Assessment struct {
	ID         string                  `json:"id"`
	ListingURL string                  `json:"listing_url"`
	Items      Checklist               `json:"items"`
	Scores     DashboardScores         `json:"scores"`
	Overall    *float64                `json:"overall"`
	Insight    *PriceDiscrepancyResult `json:"insight,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}
