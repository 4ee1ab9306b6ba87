package ocr

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/property-checklist/internal/normalize"
)

// ErrNoRating is returned when certificate text carries no current rating.
var ErrNoRating = errors.New("ocr: no energy rating found")

// Certificate holds the ratings read from an EPC certificate. Scores are
// SAP points.
type Certificate struct {
	Rating         string `json:"rating"`
	Score          *int   `json:"score,omitempty"`
	Potential      string `json:"potential,omitempty"`
	PotentialScore *int   `json:"potential_score,omitempty"`
}

var (
	markup     = regexp.MustCompile(`[|*#_]+`)
	whitespace = regexp.MustCompile(`\s+`)

	currentSentence   = regexp.MustCompile(`(?i)energy rating is ([a-g])\b`)
	potentialSentence = regexp.MustCompile(`(?i)potential to be ([a-g])\b`)
	energyScore       = regexp.MustCompile(`(?i)energy (?:efficiency )?score is (\d{1,3})\b`)

	// "Current 62 D" as laid out in the rating table, or "Current rating D (62)".
	currentNumFirst      = regexp.MustCompile(`(?i)\bcurrent(?: energy)?(?: efficiency)?(?: rating)?:? (\d{1,3}) ([a-g])\b`)
	currentLetterFirst   = regexp.MustCompile(`(?i)\bcurrent(?: energy)?(?: efficiency)?(?: rating)?:? ([a-g]) \(?(\d{1,3})\)?`)
	potentialNumFirst    = regexp.MustCompile(`(?i)\bpotential(?: energy)?(?: efficiency)?(?: rating)?:? (\d{1,3}) ([a-g])\b`)
	potentialLetterFirst = regexp.MustCompile(`(?i)\bpotential(?: energy)?(?: efficiency)?(?: rating)?:? ([a-g]) \(?(\d{1,3})\)?`)
)

// ParseCertificate reads the current and potential ratings from extracted
// certificate text. It reports false when no current rating is present. A
// score without a letter is converted to its band.
func ParseCertificate(n *normalize.Normalizer, text string) (Certificate, bool) {
	flat := strings.TrimSpace(whitespace.ReplaceAllString(markup.ReplaceAllString(text, " "), " "))

	var c Certificate
	c.Rating, c.Score = rating(n, flat, currentSentence, currentNumFirst, currentLetterFirst)
	c.Potential, c.PotentialScore = rating(n, flat, potentialSentence, potentialNumFirst, potentialLetterFirst)

	if c.Score == nil {
		if m := energyScore.FindStringSubmatch(flat); m != nil {
			c.Score = sapPoints(m[1])
		}
	}
	if c.Rating == "" && c.Score != nil {
		c.Rating, _ = n.EPCBandFromSAP(*c.Score)
	}
	return c, c.Rating != ""
}

func rating(n *normalize.Normalizer, text string, sentence, numFirst, letterFirst *regexp.Regexp) (string, *int) {
	var letter string
	var score *int
	if m := sentence.FindStringSubmatch(text); m != nil {
		letter = strings.ToUpper(m[1])
	}
	if m := numFirst.FindStringSubmatch(text); m != nil {
		score = sapPoints(m[1])
		if letter == "" {
			letter = strings.ToUpper(m[2])
		}
	} else if m := letterFirst.FindStringSubmatch(text); m != nil {
		score = sapPoints(m[2])
		if letter == "" {
			letter = strings.ToUpper(m[1])
		}
	}
	if letter == "" && score != nil {
		letter, _ = n.EPCBandFromSAP(*score)
	}
	if letter != "" {
		if _, ok := n.EPCRating(letter); !ok {
			letter = ""
		}
	}
	return letter, score
}

func sapPoints(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > 100 {
		return nil
	}
	return &v
}

// Reader extracts and parses EPC certificates.
type Reader struct {
	ext Extractor
	n   *normalize.Normalizer
}

// NewReader creates a Reader over ext.
func NewReader(ext Extractor, n *normalize.Normalizer) *Reader {
	return &Reader{ext: ext, n: n}
}

// Read extracts the certificate at pdfPath and parses its ratings.
func (r *Reader) Read(ctx context.Context, pdfPath string) (Certificate, error) {
	text, err := r.ext.ExtractText(ctx, pdfPath)
	if err != nil {
		return Certificate{}, eris.Wrap(err, "ocr: read certificate")
	}
	c, ok := ParseCertificate(r.n, text)
	if !ok {
		zap.L().Warn("ocr: certificate has no readable rating", zap.String("path", pdfPath))
		return Certificate{}, eris.Wrapf(ErrNoRating, "ocr: %s", pdfPath)
	}
	zap.L().Info("ocr: certificate read",
		zap.String("path", pdfPath),
		zap.String("rating", c.Rating),
		zap.String("potential", c.Potential),
	)
	return c, nil
}
