package extract

import (
	"regexp"
	"strings"
)

// purposeRules are evaluated in declared order, so an utterance matching
// both families resolves to reservation.
var purposeRules = []struct {
	re      *regexp.Regexp
	purpose Purpose
}{
	{regexp.MustCompile(`reserve|reservation|book|booking|table`), PurposeReservation},
	{regexp.MustCompile(`ask|inquire|question|availability|info|information|check`), PurposeInquiry},
}

// ParsePurpose labels the utterance as a reservation or an inquiry, or
// returns the empty Purpose when neither keyword family appears.
func ParsePurpose(text string) Purpose {
	t := strings.ToLower(text)
	for _, rule := range purposeRules {
		if rule.re.MatchString(t) {
			return rule.purpose
		}
	}
	return ""
}

// queryRules map cuisine and venue keywords to the canonical search query.
// Declared order matters: first match wins, and multi-word keys sit ahead of
// the shorter keys they contain ("fried chicken" before "chicken").
var queryRules = []struct {
	keyword  string
	category string
}{
	{"fried chicken", "fried chicken restaurant"},
	{"chicken", "fried chicken restaurant"},
	{"pizza", "pizzeria"},
	{"sushi", "sushi restaurant"},
	{"ramen", "ramen shop"},
	{"steak", "steakhouse"},
	{"korean", "korean restaurant"},
	{"japanese", "japanese restaurant"},
	{"chinese", "chinese restaurant"},
	{"italian", "italian restaurant"},
	{"mexican", "mexican restaurant"},
	{"bbq", "bbq restaurant"},
	{"cafe", "cafe"},
	{"brunch", "brunch place"},
}

var genericDiningRE = regexp.MustCompile(`restaurant|place to eat|diner|eatery`)

// ParseQuery maps the utterance to a canonical venue query. Generic dining
// terms with no cuisine keyword fall back to "restaurant"; otherwise the
// query slot is left alone.
func ParseQuery(text string) string {
	t := strings.ToLower(text)
	for _, rule := range queryRules {
		if strings.Contains(t, rule.keyword) {
			return rule.category
		}
	}
	if genericDiningRE.MatchString(t) {
		return "restaurant"
	}
	return ""
}
