package checklist

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/property-checklist/internal/insight"
	"github.com/sells-group/property-checklist/internal/model"
	"github.com/sells-group/property-checklist/internal/normalize"
)

// ShortLeaseYears is the remaining lease term below which a lease counts
// as short.
const ShortLeaseYears = 80

// Result is a built checklist together with the sales insight behind its
// investment rows.
type Result struct {
	Items   model.Checklist
	Insight model.PriceDiscrepancyResult
}

// Builder assembles checklists. It is safe for concurrent use.
type Builder struct {
	n *normalize.Normalizer
}

// NewBuilder creates a Builder that reads ratings with n.
func NewBuilder(n *normalize.Normalizer) *Builder {
	return &Builder{n: n}
}

// entry is a resolved row before the catalogue metadata is attached.
type entry struct {
	value   model.Value
	status  model.DataStatus
	tooltip string
}

func found(v model.Value) entry {
	if v.IsMissing() {
		return entry{value: v, status: model.StatusAskAgent}
	}
	return entry{value: v, status: model.StatusFoundPositive}
}

// text resolves a raw string; absent text asks the agent.
func text(raw string) entry {
	return found(model.TextValue(raw))
}

// optional resolves a raw string whose absence is not a question for the
// agent.
func optional(raw string, missing model.Sentinel) entry {
	v := model.TextValue(raw)
	if v.IsMissing() {
		return entry{value: model.MissingValue(missing), status: model.StatusFoundPositive}
	}
	return entry{value: v, status: model.StatusFoundPositive}
}

func prefer(premium, listing string) string {
	if strings.TrimSpace(premium) != "" {
		return premium
	}
	return listing
}

// Build derives every catalogue row from the listing and premium data.
// Keys in l.Loading are reported as IS_LOADING. now dates the asking price
// for the sales insight.
func (b *Builder) Build(l model.Listing, p *model.PremiumData, now time.Time) Result {
	if p == nil {
		p = &model.PremiumData{}
	}
	pr := message.NewPrinter(language.BritishEnglish)
	ins := insight.Calculate(l.SalesHistory, l.Price, now)
	leasehold := normalize.Tenure(l.Tenure) == normalize.TenureLeasehold

	rows := map[model.ItemKey]entry{
		model.KeyPrice:                    price(pr, l.Price),
		model.KeyPropertyType:             text(l.PropertyType),
		model.KeyTenure:                   text(l.Tenure),
		model.KeyBedrooms:                 count(l.Bedrooms),
		model.KeyBathrooms:                count(l.Bathrooms),
		model.KeySize:                     text(l.Size),
		model.KeyCouncilTax:               text(l.CouncilTax),
		model.KeyGroundRent:               leaseCost(l.GroundRent, leasehold),
		model.KeyServiceCharge:            leaseCost(l.ServiceCharge, leasehold),
		model.KeyEPC:                      b.epc(l.EPC),
		model.KeyHeating:                  text(l.Heating),
		model.KeyWindows:                  text(l.Windows),
		model.KeyConstructionAgeBand:      text(prefer(construction(p).AgeBand, l.ConstructionAgeBand)),
		model.KeyFloorMaterials:           text(construction(p).Floor),
		model.KeyWallMaterials:            text(construction(p).Walls),
		model.KeyRoofMaterials:            text(construction(p).Roof),
		model.KeyOccupancyStatus:          occupancy(p.Occupancy),
		model.KeyBuildingSafety:           b.safety(l.BuildingSafety),
		model.KeyGarden:                   text(l.Garden),
		model.KeyParking:                  text(l.Parking),
		model.KeyAccessibility:            text(l.Accessibility),
		model.KeyBroadband:                b.broadband(pr, l.Broadband, p.Broadband),
		model.KeyMobileCoverage:           b.mobile(p.MobileCoverage),
		model.KeyLeaseTerm:                leaseTerm(l.LeaseTerm, leasehold),
		model.KeyListedProperty:           text(prefer(p.ListedBuilding, l.ListedProperty)),
		model.KeyRestrictiveCovenants:     text(l.RestrictiveCovenants),
		model.KeyPublicRightOfWay:         text(l.PublicRightOfWay),
		model.KeyPrivateRightOfWay:        text(l.PrivateRightOfWay),
		model.KeyPlanningPermissions:      planning(pr, p.PlanningApplications),
		model.KeyConservationArea:         text(prefer(p.ConservationArea, l.ConservationArea)),
		model.KeyFloodRisk:                b.flood(l.FloodRisk, p.FloodRisk),
		model.KeyCoastalErosion:           text(prefer(p.CoastalErosion, l.CoastalErosion)),
		model.KeyMiningImpact:             text(prefer(p.MiningImpact, l.MiningImpact)),
		model.KeyAirportNoiseAssessment:   text(prefer(p.AirportNoise, l.AirportNoise)),
		model.KeyCrimeScore:               text(l.CrimeRating),
		model.KeyNearestStations:          stations(pr, l.NearestStations),
		model.KeyNearbySchools:            b.schools(pr, l.NearbySchools),
		model.KeyListingHistory:           history(pr, l.SalesHistory),
		model.KeyPriceDiscrepancy:         discrepancy(ins),
		model.KeyCompoundAnnualGrowthRate: growth(ins),
		model.KeyVolatility:               volatility(ins),
	}

	loading := make(map[model.ItemKey]bool, len(l.Loading))
	for _, k := range l.Loading {
		loading[k] = true
	}

	items := make(model.Checklist, 0, len(Catalog))
	for _, d := range Catalog {
		e, ok := rows[d.Key]
		if !ok {
			e = entry{value: model.MissingValue(model.NotMentioned), status: model.StatusAskAgent}
		}
		if loading[d.Key] {
			e = entry{value: model.MissingValue(model.NotMentioned), status: model.StatusIsLoading}
		}
		tooltip := d.Tooltip
		if e.tooltip != "" {
			tooltip = e.tooltip
		}
		items = append(items, model.ChecklistItem{
			Key:     d.Key,
			Label:   d.Label,
			Group:   d.Group,
			Value:   e.value,
			Status:  e.status,
			Tooltip: tooltip,
		})
	}
	return Result{Items: items, Insight: ins}
}

func construction(p *model.PremiumData) model.Construction {
	if p.Construction == nil {
		return model.Construction{}
	}
	return *p.Construction
}

func price(pr *message.Printer, raw string) entry {
	v, ok := normalize.ParseAmount(raw)
	if !ok || v <= 0 {
		return text(raw)
	}
	return found(model.FormattedValue(v, formatPounds(pr, v)))
}

func formatPounds(pr *message.Printer, v float64) string {
	return pr.Sprintf("£%d", int64(math.Round(v)))
}

func count(raw string) entry {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		return found(model.NumberValue(float64(n)))
	}
	return text(s)
}

// leaseCost resolves ground rent and service charge. Freehold properties
// without a figure have nothing to ask about.
func leaseCost(raw string, leasehold bool) entry {
	if leasehold {
		return text(raw)
	}
	return optional(raw, model.NotApplicable)
}

func leaseTerm(raw string, leasehold bool) entry {
	if !leasehold {
		return optional(raw, model.NotApplicable)
	}
	e := text(raw)
	if years, ok := normalize.ParseAmount(raw); ok && years < ShortLeaseYears {
		e.tooltip = "Short lease: extending it may be expensive."
	}
	return e
}

// epc keeps the raw rating; ratings that cannot be read are flagged.
func (b *Builder) epc(raw string) entry {
	e := text(raw)
	if e.value.IsMissing() {
		return e
	}
	if letter, ok := b.n.EPCRating(raw); ok {
		return found(model.TextValue(letter))
	}
	e.status = model.StatusAskAgent
	return e
}

func occupancy(o *model.Occupancy) entry {
	if o == nil {
		return entry{value: model.MissingValue(model.NotAvailable), status: model.StatusAskAgent}
	}
	return text(o.Status)
}

// safety stores the summed safety modifier of the listed terms.
func (b *Builder) safety(terms []string) entry {
	kept := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return entry{value: model.MissingValue(model.NoneFound), status: model.StatusFoundPositive}
	}
	return found(model.FormattedValue(b.n.SafetyModifier(kept), strings.Join(kept, ", ")))
}

func (b *Builder) broadband(pr *message.Printer, raw string, avail *model.BroadbandAvailability) entry {
	var mbps *float64
	if avail != nil && avail.MaxDownloadMbps != nil {
		mbps = avail.MaxDownloadMbps
	} else if v, ok := normalize.ParseSpeed(raw); ok {
		mbps = &v
	}
	res := b.n.BroadbandScore(mbps)
	if mbps == nil {
		return entry{value: model.MissingValue(model.NotAvailable), status: res.Status}
	}
	display := pr.Sprintf("%d Mbps", int64(math.Round(*mbps)))
	return entry{value: model.FormattedValue(*mbps, display), status: res.Status}
}

// mobile stores the average coverage score with a per-operator summary.
func (b *Builder) mobile(c *model.MobileCoverage) entry {
	score, ok := b.n.MobileCoverageScore(c)
	if !ok {
		return entry{value: model.MissingValue(model.NotAvailable), status: model.StatusAskAgent}
	}
	parts := make([]string, 0, len(c.Operators))
	for _, op := range c.Operators {
		level := op.Data
		if strings.TrimSpace(level) == "" {
			level = op.Voice
		}
		if level == "" {
			continue
		}
		parts = append(parts, op.Name+" ("+level+")")
	}
	return found(model.FormattedValue(score, strings.Join(parts, ", ")))
}

// flood reports the worst premium flood level, falling back to the
// listing text.
func (b *Builder) flood(raw string, fr *model.FloodRisk) entry {
	if fr != nil {
		if worst, ok := b.n.WorstFloodLevel(fr.RiversAndSea, fr.SurfaceWater, fr.Groundwater); ok {
			return found(model.TextValue(worst))
		}
	}
	return text(raw)
}

func planning(pr *message.Printer, apps []model.PlanningApplication) entry {
	if len(apps) == 0 {
		return entry{value: model.MissingValue(model.NoneFound), status: model.StatusFoundPositive}
	}
	display := pr.Sprintf("%d applications", len(apps))
	if len(apps) == 1 {
		display = "1 application"
	}
	return found(model.FormattedValue(float64(len(apps)), display))
}

// stations stores the distance to the nearest station.
func stations(pr *message.Printer, list []model.Station) entry {
	if len(list) == 0 {
		return entry{value: model.MissingValue(model.NoneFound), status: model.StatusAskAgent}
	}
	nearest := math.Inf(1)
	parts := make([]string, 0, len(list))
	for _, s := range list {
		nearest = math.Min(nearest, s.DistanceMiles)
		parts = append(parts, pr.Sprintf("%s (%.1f mi)", s.Name, s.DistanceMiles))
	}
	return found(model.FormattedValue(nearest, strings.Join(parts, ", ")))
}

// schools stores the distance-weighted schools score.
func (b *Builder) schools(pr *message.Printer, list []model.School) entry {
	if len(list) == 0 {
		return entry{value: model.MissingValue(model.NoneFound), status: model.StatusAskAgent}
	}
	parts := make([]string, 0, len(list))
	for _, s := range list {
		rating := s.Rating
		if rating == "" {
			rating = "unrated"
		}
		parts = append(parts, pr.Sprintf("%s, %s (%.1f mi)", s.Name, rating, s.DistanceMiles))
	}
	return found(model.FormattedValue(b.n.SchoolsScore(list), strings.Join(parts, "; ")))
}

func history(pr *message.Printer, sales []model.SaleHistoryEntry) entry {
	parts := make([]string, 0, len(sales))
	for _, s := range sales {
		price := s.SoldPrice
		if v, ok := normalize.ParseAmount(price); ok && v > 0 {
			price = formatPounds(pr, v)
		}
		parts = append(parts, strings.TrimSpace(s.Year)+": "+price)
	}
	if len(parts) == 0 {
		return entry{value: model.MissingValue(model.NoSalesHistory), status: model.StatusFoundPositive}
	}
	return found(model.TextValue(strings.Join(parts, "; ")))
}

func discrepancy(ins model.PriceDiscrepancyResult) entry {
	e := entry{status: ins.Status, tooltip: ReasonTooltip(ins.Reason)}
	switch {
	case ins.Reason == model.ReasonNoPreviousSoldHistory:
		e.value = model.MissingValue(model.NoSalesHistory)
	case ins.PercentageChange == nil:
		e.value = model.MissingValue(model.NotAvailable)
	default:
		e.value = model.FormattedValue(*ins.PercentageChange, ins.Value)
	}
	return e
}

func growth(ins model.PriceDiscrepancyResult) entry {
	if ins.CAGR == nil {
		return entry{value: model.MissingValue(model.NotAvailable), status: model.StatusFoundPositive}
	}
	return found(model.FormattedValue(*ins.CAGR, insight.FormatRate(*ins.CAGR)))
}

func volatility(ins model.PriceDiscrepancyResult) entry {
	if ins.VolatilityPct == nil {
		return entry{value: model.MissingValue(model.NotAvailable), status: model.StatusFoundPositive}
	}
	return found(model.FormattedValue(*ins.VolatilityPct, ins.Volatility))
}
