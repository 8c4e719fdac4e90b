package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// clockRE catches plain clock expressions ("7pm", "7:30 pm", "19:30") that
// the natural-language resolver may miss on short inputs.
var clockRE = regexp.MustCompile(`(?i)\b((1[0-2]|0?[1-9])\s*(:\s*\d{2})?\s*(am|pm))\b|\b([01]?\d|2[0-3]):\d{2}\b`)

var timeResolver = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ParseTime extracts a time expression from the utterance. The primary pass
// resolves natural language ("tomorrow at 7pm", "in 2 hours") against the
// current clock and yields both the matched text and an RFC3339 instant. The
// clock-pattern fallback runs whenever the primary pass produces no usable
// result, so ISO may be empty on a low-confidence match. Returns nil when
// nothing time-like is found.
func ParseTime(text string) *TimeMatch {
	if m := resolveNatural(text); m != nil {
		return m
	}
	if loc := clockRE.FindString(text); loc != "" {
		return &TimeMatch{Display: strings.TrimSpace(loc)}
	}
	return nil
}

// resolveNatural runs the natural-language resolver. Failures of any kind,
// panics included, are contained here; the caller falls through to the
// deterministic pattern.
func resolveNatural(text string) (m *TimeMatch) {
	defer func() {
		if r := recover(); r != nil {
			m = nil
		}
	}()

	r, err := timeResolver.Parse(text, time.Now())
	if err != nil || r == nil {
		return nil
	}
	display := strings.TrimSpace(r.Text)
	if display == "" {
		return nil
	}
	return &TimeMatch{
		Display: display,
		ISO:     r.Time.Format(time.RFC3339),
	}
}
