// Package extract turns one free-form chat utterance into a sparse update of
// the structured call-order fields: purpose, venue query, time, party size
// and phone numbers. Every parser runs independently over the same raw text
// and returns "no result" on a non-match instead of an error.
package extract

// ExtractFields runs every slot parser over the utterance and combines the
// non-empty results. It never fails; an utterance with nothing recognizable
// yields an empty update.
func ExtractFields(text string) FieldUpdate {
	var upd FieldUpdate

	upd.Purpose = ParsePurpose(text)
	upd.Query = ParseQuery(text)

	if m := ParseTime(text); m != nil {
		upd.Time = m.Display
		upd.TimeISO = m.ISO
	}

	if n, ok := ParsePeople(text); ok {
		upd.People = &n
	}

	upd.CallbackNumber, upd.BusinessNumber = ClassifyPhones(text)

	return upd
}
