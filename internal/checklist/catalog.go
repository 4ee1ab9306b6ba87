// Package checklist turns a scraped listing, optional premium data and the
// sales insight into the ordered checklist consumed by the scorers and the
// side panel.
package checklist

import "github.com/sells-group/property-checklist/internal/model"

// Definition describes one checklist row.
type Definition struct {
	Key     model.ItemKey
	Label   string
	Group   model.Group
	Tooltip string
}

// Catalog lists every checklist row in display order.
var Catalog = []Definition{
	{model.KeyPrice, "Price", model.GroupListingDetails, ""},
	{model.KeyPropertyType, "Property type", model.GroupListingDetails, ""},
	{model.KeyTenure, "Tenure", model.GroupListingDetails, "Leasehold properties carry ground rent, service charges and a lease term."},
	{model.KeyBedrooms, "Bedrooms", model.GroupListingDetails, ""},
	{model.KeyBathrooms, "Bathrooms", model.GroupListingDetails, ""},
	{model.KeySize, "Size", model.GroupListingDetails, ""},
	{model.KeyCouncilTax, "Council tax", model.GroupCosts, "Bands run from A (cheapest) to H."},
	{model.KeyGroundRent, "Ground rent", model.GroupCosts, "Annual ground rent payable to the freeholder."},
	{model.KeyServiceCharge, "Service charge", model.GroupCosts, "Annual service charge for shared areas and building upkeep."},
	{model.KeyEPC, "EPC rating", model.GroupCondition, "Energy Performance Certificate band, A (best) to G."},
	{model.KeyHeating, "Heating", model.GroupCondition, ""},
	{model.KeyWindows, "Windows", model.GroupCondition, ""},
	{model.KeyConstructionAgeBand, "Construction age", model.GroupCondition, ""},
	{model.KeyFloorMaterials, "Floor", model.GroupCondition, ""},
	{model.KeyWallMaterials, "Walls", model.GroupCondition, ""},
	{model.KeyRoofMaterials, "Roof", model.GroupCondition, ""},
	{model.KeyOccupancyStatus, "Occupancy", model.GroupCondition, ""},
	{model.KeyBuildingSafety, "Building safety", model.GroupCondition, "Safety issues and measures mentioned in the listing."},
	{model.KeyGarden, "Garden", model.GroupListingDetails, ""},
	{model.KeyParking, "Parking", model.GroupListingDetails, ""},
	{model.KeyAccessibility, "Accessibility", model.GroupListingDetails, ""},
	{model.KeyBroadband, "Broadband", model.GroupUtilities, "Best available download speed."},
	{model.KeyMobileCoverage, "Mobile coverage", model.GroupUtilities, "Indoor coverage by operator."},
	{model.KeyLeaseTerm, "Lease term", model.GroupLegal, "Leases under 80 years are costly to extend and harder to mortgage."},
	{model.KeyListedProperty, "Listed property", model.GroupLegal, ""},
	{model.KeyRestrictiveCovenants, "Restrictive covenants", model.GroupLegal, ""},
	{model.KeyPublicRightOfWay, "Public right of way", model.GroupLegal, ""},
	{model.KeyPrivateRightOfWay, "Private right of way", model.GroupLegal, ""},
	{model.KeyPlanningPermissions, "Planning applications", model.GroupLegal, ""},
	{model.KeyConservationArea, "Conservation area", model.GroupLegal, ""},
	{model.KeyFloodRisk, "Flood risk", model.GroupRisks, "Worst of rivers and sea, surface water and groundwater risk."},
	{model.KeyCoastalErosion, "Coastal erosion", model.GroupRisks, ""},
	{model.KeyMiningImpact, "Mining impact", model.GroupRisks, ""},
	{model.KeyAirportNoiseAssessment, "Airport noise", model.GroupRisks, ""},
	{model.KeyCrimeScore, "Crime", model.GroupNeighbourhood, ""},
	{model.KeyNearestStations, "Nearest stations", model.GroupNeighbourhood, ""},
	{model.KeyNearbySchools, "Nearby schools", model.GroupNeighbourhood, "Ofsted rated schools within 3 miles."},
	{model.KeyListingHistory, "Sales history", model.GroupInvestment, ""},
	{model.KeyPriceDiscrepancy, "Price vs last sale", model.GroupInvestment, ""},
	{model.KeyCompoundAnnualGrowthRate, "Annual growth (CAGR)", model.GroupInvestment, "Compound annual growth across the sales history and asking price."},
	{model.KeyVolatility, "Price volatility", model.GroupInvestment, "Spread of the price changes between successive sales."},
}

// reasonTooltips explains each price discrepancy reason. Indexed by reason.
var reasonTooltips = [...]string{
	model.ReasonNoPreviousSoldHistory:        "No previous sale is recorded for this property.",
	model.ReasonMissingOrInvalidPriceData:    "The asking price or last sold price could not be read.",
	model.ReasonPriceGapWithinExpectedRange:  "The rise since the last sale is in line with the property's history.",
	model.ReasonPriceGapExceedsExpectedRange: "The rise since the last sale is well above the property's historical growth.",
	model.ReasonPriceDrop:                    "The asking price is below the last sold price.",
}

// Fails to compile when a reason is added without a tooltip.
var _ = [1]struct{}{}[len(reasonTooltips)-1-model.PriceDiscrepancyReasonCount]

// ReasonTooltip returns the explanation for r.
func ReasonTooltip(r model.PriceDiscrepancyReason) string {
	if !r.Valid() {
		return ""
	}
	return reasonTooltips[r]
}
