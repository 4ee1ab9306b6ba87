package model

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// ItemKey is the stable identifier of a checklist fact.
type ItemKey string

const (
	KeyPrice                    ItemKey = "price"
	KeyPropertyType             ItemKey = "propertyType"
	KeyTenure                   ItemKey = "tenure"
	KeyBedrooms                 ItemKey = "bedrooms"
	KeyBathrooms                ItemKey = "bathrooms"
	KeySize                     ItemKey = "size"
	KeyCouncilTax               ItemKey = "councilTax"
	KeyEPC                      ItemKey = "epc"
	KeyHeating                  ItemKey = "heating"
	KeyWindows                  ItemKey = "windows"
	KeyConstructionAgeBand      ItemKey = "constructionAgeBand"
	KeyFloorMaterials           ItemKey = "floorMaterials"
	KeyWallMaterials            ItemKey = "wallMaterials"
	KeyRoofMaterials            ItemKey = "roofMaterials"
	KeyOccupancyStatus          ItemKey = "occupancyStatus"
	KeyGarden                   ItemKey = "garden"
	KeyParking                  ItemKey = "parking"
	KeyAccessibility            ItemKey = "accessibility"
	KeyGroundRent               ItemKey = "groundRent"
	KeyServiceCharge            ItemKey = "serviceCharge"
	KeyLeaseTerm                ItemKey = "leaseTerm"
	KeyListedProperty           ItemKey = "listedProperty"
	KeyRestrictiveCovenants     ItemKey = "restrictiveCovenants"
	KeyPublicRightOfWay         ItemKey = "publicRightOfWay"
	KeyPrivateRightOfWay        ItemKey = "privateRightOfWay"
	KeyPlanningPermissions      ItemKey = "planningPermissions"
	KeyConservationArea         ItemKey = "conservationArea"
	KeyFloodRisk                ItemKey = "floodRisk"
	KeyCoastalErosion           ItemKey = "coastalErosion"
	KeyMiningImpact             ItemKey = "miningImpact"
	KeyAirportNoiseAssessment   ItemKey = "airportNoiseAssessment"
	KeyBuildingSafety           ItemKey = "buildingSafety"
	KeyCrimeScore               ItemKey = "crimeScore"
	KeyBroadband                ItemKey = "broadband"
	KeyMobileCoverage           ItemKey = "mobileCoverage"
	KeyNearestStations          ItemKey = "nearestStations"
	KeyNearbySchools            ItemKey = "nearbySchools"
	KeyListingHistory           ItemKey = "listingHistory"
	KeyPriceDiscrepancy         ItemKey = "priceDiscrepancy"
	KeyCompoundAnnualGrowthRate ItemKey = "compoundAnnualGrowthRate"
	KeyVolatility               ItemKey = "volatility"
)

// Group is a display grouping of checklist items. Scoring ignores it.
type Group string

const (
	GroupListingDetails Group = "Listing details"
	GroupCosts          Group = "Costs"
	GroupCondition      Group = "Condition"
	GroupUtilities      Group = "Utilities"
	GroupLegal          Group = "Rights and restrictions"
	GroupRisks          Group = "Risks"
	GroupNeighbourhood  Group = "Neighbourhood"
	GroupInvestment     Group = "Investment"
)

// ChecklistItem is one fact about the property.
type ChecklistItem struct {
	Key     ItemKey    `json:"key"`
	Label   string     `json:"label"`
	Group   Group      `json:"group"`
	Value   Value      `json:"value"`
	Status  DataStatus `json:"status"`
	Tooltip string     `json:"tooltip,omitempty"`
}

type itemFields ChecklistItem

// itemJSON is the wire form of ChecklistItem. Number holds the number behind
// a formatted value, whose own JSON is the display string only.
type itemJSON struct {
	itemFields
	Number *float64 `json:"number,omitempty"`
}

// MarshalJSON adds a "number" field for formatted values.
func (i ChecklistItem) MarshalJSON() ([]byte, error) {
	out := itemJSON{itemFields: itemFields(i)}
	if f, ok := i.Value.Float(); ok && i.Value.Text() != "" {
		out.Number = &f
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds a formatted value from its display string and
// "number". A plain numeric value ignores "number".
func (i *ChecklistItem) UnmarshalJSON(b []byte) error {
	var in itemJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return eris.Wrap(err, "model: decode checklist item")
	}
	*i = ChecklistItem(in.itemFields)
	if _, ok := i.Value.Float(); !ok && in.Number != nil {
		i.Value = FormattedValue(*in.Number, i.Value.String())
	}
	return nil
}

// Loading reports whether the item's source query is still in flight.
func (i ChecklistItem) Loading() bool { return i.Status == StatusIsLoading }

// Available reports whether the item is resolved and carries real data.
func (i ChecklistItem) Available() bool {
	return i.Status != StatusIsLoading && !i.Value.IsMissing()
}

// Checklist is the full ordered list of checklist items.
type Checklist []ChecklistItem

// Get returns the first item with the given key.
func (c Checklist) Get(key ItemKey) (ChecklistItem, bool) {
	for _, it := range c {
		if it.Key == key {
			return it, true
		}
	}
	return ChecklistItem{}, false
}

// Available returns the item with the given key when it is resolved and
// carries real data.
func (c Checklist) Available(key ItemKey) (ChecklistItem, bool) {
	it, ok := c.Get(key)
	if !ok || !it.Available() {
		return ChecklistItem{}, false
	}
	return it, true
}
