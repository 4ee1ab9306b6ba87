// Package scorer reduces a property checklist to dashboard category scores
// and an overall score.
package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// RunningCostWeights weights the running-cost inputs.
type RunningCostWeights struct {
	CouncilTax    float64
	EPC           float64
	ServiceCharge float64
	GroundRent    float64
	Tenure        float64
}

// ConnectivityWeights weights the connectivity inputs.
type ConnectivityWeights struct {
	Broadband float64
	Station   float64
	Schools   float64
	Mobile    float64

	StationFound    float64
	StationNotFound float64
}

// EnvironmentWeights weights each risk factor. They sum to 100.
type EnvironmentWeights struct {
	Crime            float64
	Flood            float64
	BuildingSafety   float64
	CoastalErosion   float64
	MiningImpact     float64
	AirportNoise     float64
	ConservationArea float64
}

// Sum returns the total of all factor weights.
func (w EnvironmentWeights) Sum() float64 {
	return w.Crime + w.Flood + w.BuildingSafety + w.CoastalErosion +
		w.MiningImpact + w.AirportNoise + w.ConservationArea
}

// LegalPoints holds the points each legal constraint adds.
type LegalPoints struct {
	// Tenure tiers.
	Low       float64
	LowMedium float64
	Unknown   float64

	ListedProperty       float64
	RestrictiveCovenants float64
	PublicRightOfWay     float64
	PrivateRightOfWay    float64
	ShortLease           float64
	ShortLeaseYears      float64
}

// InvestmentRules holds the investment-value thresholds and adjustments.
// Rates and percentages are in percent except CAGR, which is a fraction.
type InvestmentRules struct {
	Base float64

	CAGRLow     float64
	CAGRHigh    float64
	CAGRBonus   float64
	CAGRPenalty float64

	// DiscrepancySensitivity is the fraction of the estimate at which the
	// value discrepancy modifier reaches DiscrepancyCap.
	DiscrepancySensitivity float64
	DiscrepancyCap         float64
	AreaAverageFactor      float64

	YieldLow     float64
	YieldHigh    float64
	YieldBonus   float64
	YieldPenalty float64

	TurnoverLow     float64
	TurnoverHigh    float64
	TurnoverBonus   float64
	TurnoverPenalty float64

	SellPropensity float64
	SellBonus      float64
	LetPropensity  float64
	LetBonus       float64

	VolatilityThreshold float64
	VolatilityPenalty   float64
}

// Weights bundles every scorer constant. A Weights value is treated as
// immutable once passed to NewEngine.
type Weights struct {
	RunningCosts RunningCostWeights
	Connectivity ConnectivityWeights
	Environment  EnvironmentWeights
	Legal        LegalPoints
	Investment   InvestmentRules
}

// DefaultWeights returns the production weights.
func DefaultWeights() Weights {
	return Weights{
		RunningCosts: RunningCostWeights{
			CouncilTax:    0.4,
			EPC:           0.4,
			ServiceCharge: 0.15,
			GroundRent:    0.05,
			Tenure:        0.05,
		},
		Connectivity: ConnectivityWeights{
			Broadband:       0.35,
			Station:         0.25,
			Schools:         0.2,
			Mobile:          0.2,
			StationFound:    80,
			StationNotFound: 30,
		},
		// Weights (sum = 100).
		Environment: EnvironmentWeights{
			Crime:            18,
			Flood:            27,
			BuildingSafety:   14,
			CoastalErosion:   14,
			MiningImpact:     9,
			AirportNoise:     9,
			ConservationArea: 9,
		},
		Legal: LegalPoints{
			Low:                  10,
			LowMedium:            25,
			Unknown:              15,
			ListedProperty:       30,
			RestrictiveCovenants: 20,
			PublicRightOfWay:     15,
			PrivateRightOfWay:    10,
			ShortLease:           25,
			ShortLeaseYears:      80,
		},
		Investment: InvestmentRules{
			Base:                   50,
			CAGRLow:                0.03,
			CAGRHigh:               0.06,
			CAGRBonus:              10,
			CAGRPenalty:            10,
			DiscrepancySensitivity: 0.30,
			DiscrepancyCap:         15,
			AreaAverageFactor:      0.5,
			YieldLow:               4,
			YieldHigh:              6,
			YieldBonus:             15,
			YieldPenalty:           10,
			TurnoverLow:            3,
			TurnoverHigh:           6,
			TurnoverBonus:          5,
			TurnoverPenalty:        5,
			SellPropensity:         70,
			SellBonus:              3,
			LetPropensity:          20,
			LetBonus:               2,
			VolatilityThreshold:    10,
			VolatilityPenalty:      5,
		},
	}
}

// ValidateWeights checks that a Weights value is internally consistent.
func ValidateWeights(w Weights) error {
	var errs []string

	// All weights must be non-negative.
	weights := map[string]float64{
		"running_costs.council_tax":    w.RunningCosts.CouncilTax,
		"running_costs.epc":            w.RunningCosts.EPC,
		"running_costs.service_charge": w.RunningCosts.ServiceCharge,
		"running_costs.ground_rent":    w.RunningCosts.GroundRent,
		"running_costs.tenure":         w.RunningCosts.Tenure,
		"connectivity.broadband":       w.Connectivity.Broadband,
		"connectivity.station":         w.Connectivity.Station,
		"connectivity.schools":         w.Connectivity.Schools,
		"connectivity.mobile":          w.Connectivity.Mobile,
		"environment.crime":            w.Environment.Crime,
		"environment.flood":            w.Environment.Flood,
		"environment.building_safety":  w.Environment.BuildingSafety,
		"environment.coastal_erosion":  w.Environment.CoastalErosion,
		"environment.mining_impact":    w.Environment.MiningImpact,
		"environment.airport_noise":    w.Environment.AirportNoise,
		"environment.conservation":     w.Environment.ConservationArea,
	}
	for name, v := range weights {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	if sum := w.Environment.Sum(); math.Abs(sum-100) > 1e-9 {
		errs = append(errs, fmt.Sprintf("environment weights should sum to 100, got %.1f", sum))
	}

	rc := w.RunningCosts
	if rc.CouncilTax+rc.EPC+rc.ServiceCharge+rc.GroundRent+rc.Tenure <= 0 {
		errs = append(errs, "running cost weight sum must be > 0")
	}
	c := w.Connectivity
	if c.Broadband+c.Station+c.Schools+c.Mobile <= 0 {
		errs = append(errs, "connectivity weight sum must be > 0")
	}

	inv := w.Investment
	if inv.CAGRHigh < inv.CAGRLow {
		errs = append(errs, "investment cagr_high must be >= cagr_low")
	}
	if inv.YieldHigh < inv.YieldLow {
		errs = append(errs, "investment yield_high must be >= yield_low")
	}
	if inv.TurnoverHigh < inv.TurnoverLow {
		errs = append(errs, "investment turnover_high must be >= turnover_low")
	}
	if inv.DiscrepancySensitivity <= 0 {
		errs = append(errs, "investment discrepancy_sensitivity must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: weights validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
