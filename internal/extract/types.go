package extract

// Purpose labels the caller's intent for the call being prepared.
type Purpose string

const (
	PurposeReservation Purpose = "reservation"
	PurposeInquiry     Purpose = "inquiry"
)

// FieldUpdate is the sparse result of one extraction pass over one utterance.
// An empty (zero) field means the pass had no opinion about that slot; it is
// never an instruction to clear a previously collected value.
type FieldUpdate struct {
	Purpose        Purpose `json:"purpose,omitempty"`
	Query          string  `json:"query,omitempty"`
	Time           string  `json:"time,omitempty"`
	TimeISO        string  `json:"timeISO,omitempty"`
	People         *int    `json:"people,omitempty"`
	CallbackNumber string  `json:"callbackNumber,omitempty"`
	BusinessNumber string  `json:"businessNumber,omitempty"`
}

// Empty reports whether the pass extracted nothing at all.
func (u FieldUpdate) Empty() bool {
	return u.Purpose == "" && u.Query == "" && u.Time == "" && u.TimeISO == "" &&
		u.People == nil && u.CallbackNumber == "" && u.BusinessNumber == ""
}

// PhoneRole classifies what a phone number found in an utterance is for.
type PhoneRole string

const (
	RoleCallback   PhoneRole = "callback"
	RoleBusiness   PhoneRole = "business"
	RoleUnassigned PhoneRole = "unassigned"
)

// PhoneCandidate is a phone-like substring found during one extraction pass,
// before and after role classification. It does not outlive the pass.
type PhoneCandidate struct {
	RawText     string
	StartOffset int
	Normalized  string
	Role        PhoneRole
}

// TimeMatch is a recognized time expression. ISO is empty when only the
// deterministic clock-pattern fallback matched and no absolute instant could
// be resolved.
type TimeMatch struct {
	Display string
	ISO     string
}
