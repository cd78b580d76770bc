package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Price is a dish price that tolerates the legacy seed format, where a
// display-only string such as "Bottle from $35" stands in for a number.
// Numeric values (and numeric strings like "5" or "12.50") parse into
// Amount; anything else keeps the raw text in Label with Amount zero, and
// round-trips through JSON unchanged. Only a price that actually carried a
// numeric value reports Numeric(); the zero Price, meaning no value was
// supplied, does not.
type Price struct {
	Amount float64
	Label  string

	valid bool
}

// PriceOf wraps a plain numeric amount.
func PriceOf(amount float64) Price {
	return Price{Amount: amount, valid: true}
}

// ParsePrice coerces free-form input the way the admin form does. The
// second return is false when the text is not numeric (including empty
// input).
func ParsePrice(s string) (Price, bool) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Price{Amount: f, valid: true}, true
	}
	return Price{Label: s}, false
}

// Numeric reports whether the price carries a usable amount. Legacy
// display-only labels and missing values both report false.
func (p Price) Numeric() bool {
	return p.valid
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.Label != "" {
		return json.Marshal(p.Label)
	}
	return json.Marshal(p.Amount)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*p = Price{Amount: f, valid: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, _ := ParsePrice(s)
	*p = parsed
	return nil
}
