// Package insight classifies an asking price against a property's sold
// history and derives growth and volatility figures from it.
package insight

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/property-checklist/internal/model"
	"github.com/sells-group/property-checklist/internal/normalize"
)

// ExpectedGrowthFactor is how far local growth may exceed the historical
// CAGR before the gap is flagged.
const ExpectedGrowthFactor = 1.5

// NotAvailable is the display value for figures that cannot be computed.
const NotAvailable = "N/A"

// point is a parsed history entry. Price is 0 when unparseable.
type point struct {
	year  int
	price float64
}

// Calculate classifies askingPrice against history. The asking price is
// treated as a sale in now's year. Malformed input never fails; it is
// reported through the result's reason.
func Calculate(history []model.SaleHistoryEntry, askingPrice string, now time.Time) model.PriceDiscrepancyResult {
	points := timeline(history, askingPrice, now)
	if len(points) < 2 {
		return model.PriceDiscrepancyResult{
			Value:      NotAvailable,
			Status:     model.StatusFoundPositive,
			Reason:     model.ReasonNoPreviousSoldHistory,
			Volatility: NotAvailable,
		}
	}

	latest, previous := points[0], points[1]
	// The previous sale needs a year for the growth gap.
	if latest.price <= 0 || previous.price <= 0 || previous.year <= 0 {
		zap.L().Debug("insight: invalid price data",
			zap.String("asking_price", askingPrice),
			zap.Int("previous_year", previous.year),
		)
		return model.PriceDiscrepancyResult{
			Value:      NotAvailable,
			Status:     model.StatusAskAgent,
			Reason:     model.ReasonMissingOrInvalidPriceData,
			Volatility: NotAvailable,
		}
	}

	change := (latest.price - previous.price) / previous.price * 100
	res := model.PriceDiscrepancyResult{
		Value:            formatPct(change),
		PercentageChange: &change,
		CAGR:             cagr(points),
		Volatility:       NotAvailable,
	}
	if vol, ok := volatility(points); ok {
		res.Volatility = formatPct(vol)
		res.VolatilityPct = &vol
	}

	switch {
	case change < 0:
		res.Status = model.StatusAskAgent
		res.Reason = model.ReasonPriceDrop
	default:
		local := LocalGrowth(latest.price, previous.price, latest.year-previous.year)
		hist := cagr(points[1:])
		if hist != nil && local > *hist*ExpectedGrowthFactor {
			res.Status = model.StatusAskAgent
			res.Reason = model.ReasonPriceGapExceedsExpectedRange
		} else {
			res.Status = model.StatusFoundPositive
			res.Reason = model.ReasonPriceGapWithinExpectedRange
		}
	}
	return res
}

// LocalGrowth is the annualised growth from previous to latest over gap
// years. Gaps below one year count as one year.
func LocalGrowth(latest, previous float64, gap int) float64 {
	if gap < 1 {
		gap = 1
	}
	return math.Pow(latest/previous, 1/float64(gap)) - 1
}

// CAGR is the compound annual growth rate from start to end over years.
// It returns false when the inputs cannot produce a rate.
func CAGR(start, end float64, years int) (float64, bool) {
	if start <= 0 || end <= 0 || years <= 0 {
		return 0, false
	}
	return math.Pow(end/start, 1/float64(years)) - 1, true
}

// timeline returns the asking price followed by the sold history, newest
// first. Entries without a year sort last.
func timeline(history []model.SaleHistoryEntry, askingPrice string, now time.Time) []point {
	sold := make([]point, 0, len(history))
	for _, e := range history {
		year, _ := normalize.ParseYear(e.Year)
		sold = append(sold, point{year: year, price: parsePrice(e.SoldPrice)})
	}
	sort.SliceStable(sold, func(i, j int) bool { return sold[i].year > sold[j].year })

	out := make([]point, 0, len(sold)+1)
	out = append(out, point{year: now.Year(), price: parsePrice(askingPrice)})
	return append(out, sold...)
}

func parsePrice(raw string) float64 {
	v, ok := normalize.ParseAmount(raw)
	if !ok {
		return 0
	}
	return v
}

// valid returns the points with a positive price and a known year in
// chronological order.
func valid(points []point) []point {
	out := make([]point, 0, len(points))
	for _, p := range points {
		if p.price > 0 && p.year > 0 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].year < out[j].year })
	return out
}

// cagr is the growth rate between the earliest and latest valid points, or
// nil when fewer than two exist or they share a year.
func cagr(points []point) *float64 {
	vp := valid(points)
	if len(vp) < 2 {
		return nil
	}
	first, last := vp[0], vp[len(vp)-1]
	rate, ok := CAGR(first.price, last.price, last.year-first.year)
	if !ok {
		return nil
	}
	return &rate
}

// volatility is the population standard deviation of successive percentage
// changes across at least three valid points.
func volatility(points []point) (float64, bool) {
	if len(points) < 3 {
		return 0, false
	}
	vp := valid(points)
	if len(vp) < 3 {
		return 0, false
	}

	changes := make([]float64, 0, len(vp)-1)
	for i := 1; i < len(vp); i++ {
		changes = append(changes, (vp[i].price-vp[i-1].price)/vp[i-1].price*100)
	}

	var mean float64
	for _, c := range changes {
		mean += c
	}
	mean /= float64(len(changes))

	var variance float64
	for _, c := range changes {
		variance += (c - mean) * (c - mean)
	}
	variance /= float64(len(changes))
	return math.Sqrt(variance), true
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatRate renders a growth rate fraction (0.0456) as a percentage
// string ("4.56%").
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate*100, 'f', 2, 64) + "%"
}
