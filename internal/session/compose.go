package session

import (
	"fmt"
	"strconv"
)

// OrderContent renders the field state into the fixed 4-line order template
// handed to the call-placement agent. Unset slots render as empty strings;
// no line is ever omitted.
func OrderContent(f FieldState) string {
	people := ""
	if f.People != 0 {
		people = strconv.Itoa(f.People)
	}
	return fmt.Sprintf("[PURPOSE=%s]\nQUERY=%s\nTIME=%s | PEOPLE=%s\nCALLBACK=%s | BUSINESS=%s",
		f.Purpose, f.Query, f.Time, people, f.CallbackNumber, f.BusinessNumber)
}
