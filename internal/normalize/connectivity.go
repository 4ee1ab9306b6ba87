package normalize

import (
	"math"

	"github.com/sells-group/property-checklist/internal/model"
)

// BroadbandResult is the score and item status for a broadband speed.
type BroadbandResult struct {
	Score  *float64
	Status model.DataStatus
}

// BroadbandScore steps the speed/UK-average ratio onto a score. Speeds below
// the poor ratio, and unknown speeds, are flagged ASK_AGENT.
func (n *Normalizer) BroadbandScore(mbps *float64) BroadbandResult {
	if mbps == nil {
		return BroadbandResult{Status: model.StatusAskAgent}
	}
	t := n.t.Broadband
	ratio := *mbps / t.UKAverageMbps

	var score float64
	status := model.StatusFoundPositive
	switch {
	case ratio < t.PoorRatio:
		score = t.PoorScore
		status = model.StatusAskAgent
	case ratio <= t.BelowAverageRatio:
		score = t.BelowAverageScore
	case ratio <= t.AverageRatio:
		score = t.AverageScore
	case ratio <= t.FastRatio:
		score = t.FastScore
	default:
		score = t.UltrafastScore
	}
	return BroadbandResult{Score: &score, Status: status}
}

// SchoolsScore takes the best distance-weighted rating among schools within
// the radius that have a rating. The weight falls linearly from 1 at the
// property to MinDistanceWeight at the radius.
func (n *Normalizer) SchoolsScore(schools []model.School) float64 {
	t := n.t.Schools
	if len(schools) == 0 {
		return t.NoSchools
	}

	best := math.Inf(-1)
	for _, s := range schools {
		if s.DistanceMiles < 0 || s.DistanceMiles > t.RadiusMiles || s.Rating == "" {
			continue
		}
		base, ok := firstLevel(t.Ratings, s.Rating)
		if !ok {
			base = t.UnknownRating
		}
		penalty := (s.DistanceMiles / t.RadiusMiles) * (1 - t.MinDistanceWeight)
		if adjusted := base * (1 - penalty); adjusted > best {
			best = adjusted
		}
	}
	if math.IsInf(best, -1) {
		return t.NoQualifying
	}
	return best
}

// MobileCoverageScore averages, across operators, the better of each
// operator's voice and data coverage levels.
func (n *Normalizer) MobileCoverageScore(c *model.MobileCoverage) (float64, bool) {
	if c == nil {
		return 0, false
	}
	var sum float64
	var count int
	for _, op := range c.Operators {
		voice, vok := firstLevel(n.t.MobileLevels, op.Voice)
		data, dok := firstLevel(n.t.MobileLevels, op.Data)
		switch {
		case vok && dok:
			sum += math.Max(voice, data)
		case vok:
			sum += voice
		case dok:
			sum += data
		default:
			continue
		}
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// MobileLevelScore scores a single coverage phrase such as "Good".
func (n *Normalizer) MobileLevelScore(raw string) (float64, bool) {
	return firstLevel(n.t.MobileLevels, raw)
}
