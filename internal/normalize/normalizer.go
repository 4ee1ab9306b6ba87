package normalize

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Normalizer applies the rules of one Tables value. It holds no mutable
// state and is safe for concurrent use.
type Normalizer struct {
	t Tables
}

// New returns a Normalizer reading from t.
func New(t Tables) *Normalizer {
	return &Normalizer{t: t}
}

// Default returns a Normalizer over DefaultTables.
func Default() *Normalizer {
	return New(DefaultTables())
}

// Tables returns the tables the normalizer reads from.
func (n *Normalizer) Tables() Tables { return n.t }

// EPCRating extracts an EPC band letter from raw, which may be a bare
// letter ("C"), an embedded letter ("EPC Rating: C", "C72") or SAP points
// ("72").
func (n *Normalizer) EPCRating(raw string) (string, bool) {
	tokens := strings.Fields(words(raw))
	if len(tokens) == 0 {
		return "", false
	}

	var candidates []string
	for i, tok := range tokens {
		letter, ok := n.epcToken(tok)
		if !ok {
			continue
		}
		if i > 0 && isRatingLabel(tokens[i-1]) {
			return letter, true
		}
		candidates = append(candidates, letter)
	}

	switch {
	case len(candidates) == 1:
		return candidates[0], true
	case len(candidates) > 1:
		// A bare "a" is usually the article.
		for _, c := range candidates {
			if c != "A" {
				return c, true
			}
		}
		return candidates[0], true
	}

	if len(tokens) == 1 {
		if sap, err := strconv.Atoi(tokens[0]); err == nil {
			return n.EPCBandFromSAP(sap)
		}
	}
	return "", false
}

func (n *Normalizer) epcToken(tok string) (string, bool) {
	letter := strings.ToUpper(tok[:1])
	if _, ok := n.t.EPC.Scores[letter]; !ok {
		return "", false
	}
	if len(tok) == 1 {
		return letter, true
	}
	if _, err := strconv.Atoi(tok[1:]); err == nil {
		return letter, true
	}
	return "", false
}

func isRatingLabel(tok string) bool {
	switch tok {
	case "rating", "band", "epc", "grade", "class":
		return true
	}
	return false
}

// EPCBandFromSAP converts SAP points (1-100) to the EPC band letter.
func (n *Normalizer) EPCBandFromSAP(points int) (string, bool) {
	if points < 1 || points > 100 {
		return "", false
	}
	for _, b := range n.t.EPC.SAPBands {
		if points >= b.Min {
			return b.Letter, true
		}
	}
	return "", false
}

// EPCScore maps an EPC rating to its score (A=100 .. G=10). Anything that
// is not a recognisable rating scores EPC.UnknownScore.
func (n *Normalizer) EPCScore(raw string) float64 {
	letter, ok := n.EPCRating(raw)
	if !ok {
		if strings.TrimSpace(raw) != "" {
			zap.L().Debug("normalize: unparseable EPC rating", zap.String("raw", raw))
		}
		return n.t.EPC.UnknownScore
	}
	return n.t.EPC.Scores[letter]
}

// CouncilTaxBand extracts a council tax band letter (A-H).
func (n *Normalizer) CouncilTaxBand(raw string) (string, bool) {
	tokens := strings.Fields(words(raw))
	var fallback string
	for i, tok := range tokens {
		if len(tok) != 1 {
			continue
		}
		letter := strings.ToUpper(tok)
		if _, ok := n.t.CouncilTaxBands[letter]; !ok {
			continue
		}
		if i > 0 && tokens[i-1] == "band" {
			return letter, true
		}
		if fallback == "" && letter != "A" {
			fallback = letter
		}
	}
	if fallback == "" && len(tokens) == 1 && strings.EqualFold(tokens[0], "a") {
		fallback = "A"
	}
	return fallback, fallback != ""
}

// CouncilTaxScore scores a council tax band (A=100 .. H=0). A present value
// without a recognisable band scores CouncilTaxNoBand.
func (n *Normalizer) CouncilTaxScore(raw string) float64 {
	band, ok := n.CouncilTaxBand(raw)
	if !ok {
		zap.L().Debug("normalize: council tax without band", zap.String("raw", raw))
		return n.t.CouncilTaxNoBand
	}
	return n.t.CouncilTaxBands[band]
}
