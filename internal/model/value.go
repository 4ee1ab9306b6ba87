package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Sentinel names a kind of "no data" answer for a checklist value.
type Sentinel int

const (
	NotMentioned Sentinel = iota + 1
	NotFound
	NotApplicable
	NotAvailable
	NotKnown
	NotSpecified
	NoneFound
	NoSalesHistory
	numSentinels
)

var sentinelLabels = [...]string{
	NotMentioned:   "Not mentioned",
	NotFound:       "Not found",
	NotApplicable:  "Not applicable",
	NotAvailable:   "Not available",
	NotKnown:       "Not known",
	NotSpecified:   "Not specified",
	NoneFound:      "None found",
	NoSalesHistory: "No sales history",
}

var _ = [1]struct{}{}[len(sentinelLabels)-int(numSentinels)]

func (s Sentinel) String() string {
	if s <= 0 || s >= numSentinels {
		return sentinelLabels[NotMentioned]
	}
	return sentinelLabels[s]
}

// ParseSentinel returns the sentinel whose display string equals s, ignoring
// case and surrounding whitespace.
func ParseSentinel(s string) (Sentinel, bool) {
	s = strings.TrimSpace(s)
	for i := NotMentioned; i < numSentinels; i++ {
		if strings.EqualFold(sentinelLabels[i], s) {
			return i, true
		}
	}
	return 0, false
}

type valueKind uint8

const (
	kindNone valueKind = iota
	kindText
	kindNumber
	kindMissing
)

// Value is the display value of a checklist item. It is either text, a
// number (optionally with a fixed display string) or an explicit Missing
// sentinel. The zero Value is Missing(NotMentioned).
type Value struct {
	kind    valueKind
	text    string
	number  float64
	missing Sentinel
}

// TextValue returns a text value. Blank text and text equal to a sentinel
// display string become Missing so sentinels never pass for real data.
func TextValue(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return MissingValue(NotMentioned)
	}
	if sn, ok := ParseSentinel(s); ok {
		return MissingValue(sn)
	}
	return Value{kind: kindText, text: s}
}

// NumberValue returns a numeric value.
func NumberValue(f float64) Value {
	return Value{kind: kindNumber, number: f}
}

// FormattedValue returns a numeric value that displays as display.
func FormattedValue(f float64, display string) Value {
	return Value{kind: kindNumber, number: f, text: display}
}

// MissingValue returns the "no data" value s.
func MissingValue(s Sentinel) Value {
	if s <= 0 || s >= numSentinels {
		s = NotMentioned
	}
	return Value{kind: kindMissing, missing: s}
}

// IsMissing reports whether v is a "no data" sentinel.
func (v Value) IsMissing() bool { return v.kind == kindNone || v.kind == kindMissing }

// Sentinel returns the sentinel of a missing value.
func (v Value) Sentinel() (Sentinel, bool) {
	switch v.kind {
	case kindNone:
		return NotMentioned, true
	case kindMissing:
		return v.missing, true
	default:
		return 0, false
	}
}

// Float returns the numeric content of a number value.
func (v Value) Float() (float64, bool) {
	if v.kind != kindNumber {
		return 0, false
	}
	return v.number, true
}

// Text returns the raw text of a text value, or the display string of a
// formatted number. Missing values and plain numbers return "".
func (v Value) Text() string {
	if v.kind == kindText || v.kind == kindNumber {
		return v.text
	}
	return ""
}

// String returns the display form of v.
func (v Value) String() string {
	switch v.kind {
	case kindText:
		return v.text
	case kindNumber:
		if v.text != "" {
			return v.text
		}
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	default:
		s, _ := v.Sentinel()
		return s.String()
	}
}

// MarshalJSON renders numbers as JSON numbers and everything else as its
// display string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == kindNumber && v.text == "" {
		return json.Marshal(v.number)
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON accepts a JSON number, a string or null. Sentinel strings
// decode to Missing.
func (v *Value) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*v = MissingValue(NotMentioned)
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return eris.Wrap(err, "model: decode value")
		}
		*v = TextValue(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return eris.Wrap(err, "model: decode value")
	}
	*v = NumberValue(f)
	return nil
}
