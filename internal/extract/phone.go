package extract

import (
	"regexp"
	"strings"
)

const defaultCountry = "US"

// contextWindow is how many characters around a phone match are inspected
// when deciding whether it is a callback or a business number.
const contextWindow = 25

var (
	nonPhoneCharRE = regexp.MustCompile(`[^\d+]`)
	usTenDigitRE   = regexp.MustCompile(`^\d{10}$`)
	validPhoneRE   = regexp.MustCompile(`^\+?\d{7,}$`)

	// Loose scan: optional leading +, then at least seven digits, dashes,
	// spaces or parens. Candidates are normalized afterwards.
	phoneCandidateRE = regexp.MustCompile(`\+?\d[\d\-\s()]{6,}`)

	callbackContextRE = regexp.MustCompile(`my|me|call\s?back|callback|reach me|personal`)
	businessContextRE = regexp.MustCompile(`restaurant|business|store|place|shop`)
)

// Normalize canonicalizes a raw phone string toward an E.164-like form using
// the default country heuristic.
func Normalize(raw string) string {
	return NormalizeCountry(raw, defaultCountry)
}

// NormalizeCountry strips everything except digits and '+'. A string already
// carrying a leading '+' is returned as-is; a bare 10-digit number is given
// the +1 prefix when the country is US. Anything else passes through
// unchanged, which still satisfies the 7-digit minimum downstream.
func NormalizeCountry(raw, country string) string {
	if raw == "" {
		return ""
	}
	cleaned := nonPhoneCharRE.ReplaceAllString(raw, "")
	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	if country == "US" && usTenDigitRE.MatchString(cleaned) {
		return "+1" + cleaned
	}
	return cleaned
}

// ValidPhone reports whether a normalized number meets the minimum shape
// required before it may be dialed.
func ValidPhone(normalized string) bool {
	return validPhoneRE.MatchString(normalized)
}

// ScanPhones finds all phone-like substrings in first-occurrence order with
// their offsets. Roles are unassigned at this stage.
func ScanPhones(text string) []PhoneCandidate {
	locs := phoneCandidateRE.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	candidates := make([]PhoneCandidate, 0, len(locs))
	for _, loc := range locs {
		raw := strings.TrimSpace(text[loc[0]:loc[1]])
		candidates = append(candidates, PhoneCandidate{
			RawText:     raw,
			StartOffset: loc[0],
			Normalized:  Normalize(raw),
			Role:        RoleUnassigned,
		})
	}
	return candidates
}

// ClassifyPhones assigns each phone found in the text to the callback or
// business slot using the keywords around it. Explicit cues win; a number
// with no cue goes to business first, then callback. At most one number per
// role is kept and further candidates are dropped.
func ClassifyPhones(text string) (callback, business string) {
	for _, c := range ScanPhones(text) {
		start := c.StartOffset - contextWindow
		if start < 0 {
			start = 0
		}
		end := c.StartOffset + len(c.RawText) + contextWindow
		if end > len(text) {
			end = len(text)
		}
		window := strings.ToLower(text[start:end])

		switch {
		case callbackContextRE.MatchString(window) && callback == "":
			callback = c.Normalized
		case businessContextRE.MatchString(window) && business == "":
			business = c.Normalized
		case business == "":
			business = c.Normalized
		case callback == "":
			callback = c.Normalized
		}
	}
	return callback, business
}
