package currency

import (
	"github.com/shopspring/decimal"
)

var shortUnits = []string{"", "K", "M", "B", "T", "Qa", "Qi", "Sx", "Sp", "Oc", "No"}

// Short formats an amount for display: plain below 1000, otherwise one
// decimal place followed by a magnitude suffix (1.5K, 2.0M, ...).
// Values of more than 15 digits are truncated rather than rounded.
func Short(a Amount) string {
	digits := a.String()
	if len(digits) <= 3 {
		return digits
	}

	exponent := (len(digits) - 1) / 3
	if exponent > len(shortUnits)-1 {
		exponent = len(shortUnits) - 1
	}

	d := decimal.NewFromBigInt(a.int(), int32(-3*exponent))
	if len(digits) > 15 {
		d = d.Truncate(1)
	}
	return d.StringFixed(1) + shortUnits[exponent]
}
