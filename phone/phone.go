// Package phone canonicalizes candidate phone strings to E.164.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// unknownRegion makes the parser require an international prefix, matching the
// behavior of parsing without a default country.
const unknownRegion = "ZZ"

// Normalize parses raw and returns its E.164 form. A blank input is "no phone"
// and reports ok with an empty string. Anything that does not resolve to a
// globally valid number reports !ok; malformed input never panics or errors out.
//
// region is an ISO 3166-1 alpha-2 hint for nationally formatted input; leave it
// empty to accept international format only.
func Normalize(raw, region string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	if region == "" {
		region = unknownRegion
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}
