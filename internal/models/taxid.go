package models

import "strings"

// TaxIDLength is the number of digits in a supplier registration number.
const TaxIDLength = 14

// NormalizeTaxID drops every non-digit character.
func NormalizeTaxID(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatTaxID renders a tax id as 00.000.000/0000-00. Inputs that do not
// normalize to 14 digits are returned digits-only.
func FormatTaxID(s string) string {
	d := NormalizeTaxID(s)
	if len(d) != TaxIDLength {
		return d
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}
