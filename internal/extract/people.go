package extract

import (
	"regexp"
	"strconv"
)

// peopleRE matches party-size phrasings like "for 4", "party of 3",
// "3 people", "table for 2". The numeric suffix words are optional, so a
// bare small number also counts.
var peopleRE = regexp.MustCompile(`(?i)\b(?:for|of)?\s*(\d{1,2})\s*(?:people|persons|guests|pax|party|table)?\b`)

// ParsePeople extracts a party-size integer from the utterance. It imposes
// no range bound; the merge layer validates the value before accepting it.
func ParsePeople(text string) (int, bool) {
	m := peopleRE.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
