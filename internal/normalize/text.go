package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	amountRegexp  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(k|m)?\b`)
	percentRegexp = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	speedRegexp   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(gbps|gb|mbps|mb)?`)
	yearRegexp    = regexp.MustCompile(`\b(1[5-9]\d{2}|20\d{2})\b`)
)

// words lowercases s, collapses every run of non-alphanumerics into one
// space and pads the result with spaces so phrases can be matched as whole
// words with strings.Contains.
func words(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(' ')
	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	if !space {
		b.WriteByte(' ')
	}
	return b.String()
}

// hasPhrase reports whether the padded text contains phrase as whole words.
func hasPhrase(text, phrase string) bool {
	p := words(phrase)
	if p == " " {
		return false
	}
	return strings.Contains(text, p)
}

func hasAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if hasPhrase(text, p) {
			return true
		}
	}
	return false
}

// leadsWithAny reports whether the padded text starts with one of phrases.
func leadsWithAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if w := words(p); w != " " && strings.HasPrefix(text, w) {
			return true
		}
	}
	return false
}

func (r KeywordRule) matches(text string) bool {
	for _, p := range r.All {
		if !hasPhrase(text, p) {
			return false
		}
	}
	if len(r.Any) > 0 && !hasAny(text, r.Any) {
		return false
	}
	return len(r.All) > 0 || len(r.Any) > 0
}

// firstRule returns the modifier of the first matching rule.
func firstRule(rules []KeywordRule, text string) (float64, bool) {
	for _, r := range rules {
		if r.matches(text) {
			return r.Modifier, true
		}
	}
	return 0, false
}

// sumRules adds the modifiers of every matching rule.
func sumRules(rules []KeywordRule, text string) (float64, bool) {
	var sum float64
	var hit bool
	for _, r := range rules {
		if r.matches(text) {
			sum += r.Modifier
			hit = true
		}
	}
	return sum, hit
}

// firstLevel returns the value of the first level phrase found in text.
func firstLevel(levels []LevelValue, text string) (float64, bool) {
	padded := words(text)
	for _, l := range levels {
		if hasPhrase(padded, l.Phrase) {
			return l.Value, true
		}
	}
	return 0, false
}

// ParseAmount extracts a currency amount such as "£1,200.50" or "£1.2m".
func ParseAmount(raw string) (float64, bool) {
	s := strings.ToLower(strings.ReplaceAll(raw, ",", ""))
	m := amountRegexp.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "k":
		v *= 1_000
	case "m":
		v *= 1_000_000
	}
	return v, true
}

// ParseAnnualCost extracts a periodic cost and converts it to a yearly
// amount. Monthly, quarterly and weekly figures are annualised.
func ParseAnnualCost(raw string) (float64, bool) {
	v, ok := ParseAmount(raw)
	if !ok {
		return 0, false
	}
	text := words(raw)
	switch {
	case hasAny(text, []string{"month", "monthly", "pcm", "pm", "per month"}):
		v *= 12
	case hasAny(text, []string{"quarter", "quarterly"}):
		v *= 4
	case hasAny(text, []string{"week", "weekly", "pw"}):
		v *= 52
	}
	return v, true
}

// ParsePercent extracts a percentage such as "8.3%" as 8.3.
func ParsePercent(raw string) (float64, bool) {
	m := percentRegexp.FindString(strings.ReplaceAll(raw, ",", ""))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseSpeed extracts a download speed in Mbps ("Ultrafast 1000Mb", "1 Gbps").
func ParseSpeed(raw string) (float64, bool) {
	m := speedRegexp.FindStringSubmatch(strings.ToLower(strings.ReplaceAll(raw, ",", "")))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if strings.HasPrefix(m[2], "gb") {
		v *= 1000
	}
	return v, true
}

// ParseYear extracts a four-digit year ("Mar 2019" -> 2019).
func ParseYear(raw string) (int, bool) {
	m := yearRegexp.FindString(raw)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
