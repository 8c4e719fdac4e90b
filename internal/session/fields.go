// Package session holds the per-conversation field state collected across
// chat turns: what the user wants, where, when, for how many, and which
// numbers to dial. State only ever gains information; a turn that learned
// nothing about a slot leaves it alone.
package session

import (
	"github.com/nahcub/call-bot/internal/extract"
)

// People bounds accepted by the merge layer. The parser reports whatever it
// read; values outside this range are ignored here.
const (
	MinPeople = 1
	MaxPeople = 50
)

// FieldState is the structured order being assembled for one session.
// People 0 means unset. Phone numbers are stored normalized.
type FieldState struct {
	Purpose         extract.Purpose `json:"purpose"`
	Query           string          `json:"query"`
	Time            string          `json:"time"`
	TimeISO         string          `json:"timeISO,omitempty"`
	People          int             `json:"people,omitempty"`
	Name            string          `json:"name,omitempty"`
	SpecialRequests string          `json:"specialRequests,omitempty"`
	CallbackNumber  string          `json:"callbackNumber"`
	BusinessNumber  string          `json:"businessNumber"`
}

// Merger folds extraction results into a FieldState. The zero value is ready
// to use. OnCallbackNumber, when set, observes every accepted callback-number
// update so a caller can mirror the active dial-back number elsewhere.
type Merger struct {
	OnCallbackNumber func(number string)
}

// Apply overwrites state slots for which the update carries a non-empty
// value and reports whether anything changed. The merge is monotonic: slots
// the update has no opinion about keep their current value, and a people
// count outside [MinPeople, MaxPeople] is dropped rather than applied.
func (m *Merger) Apply(state *FieldState, upd extract.FieldUpdate) bool {
	changed := false

	if upd.Purpose != "" && upd.Purpose != state.Purpose {
		state.Purpose = upd.Purpose
		changed = true
	}
	if upd.Query != "" && upd.Query != state.Query {
		state.Query = upd.Query
		changed = true
	}
	if upd.Time != "" && upd.Time != state.Time {
		state.Time = upd.Time
		changed = true
	}
	if upd.TimeISO != "" && upd.TimeISO != state.TimeISO {
		state.TimeISO = upd.TimeISO
		changed = true
	}
	if upd.People != nil {
		if n := *upd.People; n >= MinPeople && n <= MaxPeople && n != state.People {
			state.People = n
			changed = true
		}
	}
	if upd.CallbackNumber != "" && upd.CallbackNumber != state.CallbackNumber {
		state.CallbackNumber = upd.CallbackNumber
		changed = true
		if m.OnCallbackNumber != nil {
			m.OnCallbackNumber(upd.CallbackNumber)
		}
	}
	if upd.BusinessNumber != "" && upd.BusinessNumber != state.BusinessNumber {
		state.BusinessNumber = upd.BusinessNumber
		changed = true
	}

	return changed
}

// Apply merges an update into state with no side channels attached.
func Apply(state *FieldState, upd extract.FieldUpdate) bool {
	var m Merger
	return m.Apply(state, upd)
}
