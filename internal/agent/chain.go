package agent

import (
	"regexp"
	"strings"

	"github.com/agendai/agendai/internal/tools"
)

// This file isolates the check-then-book chaining heuristic: when a single
// utterance both asks whether a slot is free and asks to book it, the
// runner skips the confirmation round-trip and books directly after a
// "free" check result. It is a fixed textual policy, not a general
// mechanism; replacing it with a better argument source must not touch the
// runner's state machine.

// bookingCues are the case-insensitive words that signal booking intent in
// the user's utterance.
var bookingCues = []string{"agende", "agendar", "marque", "marcar", "schedule", "book"}

// descriptionPatterns extract an appointment description from the
// utterance. First match wins; the captured text runs to the end of the
// utterance.
var descriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)descri(?:ção|cao)\s*:\s*(.+)\s*$`),
	regexp.MustCompile(`(?i)with\s+description\s*:\s*(.+)\s*$`),
}

// wantsBooking reports whether the utterance contains a booking cue.
func wantsBooking(utterance string) bool {
	lowered := strings.ToLower(utterance)
	for _, cue := range bookingCues {
		if strings.Contains(lowered, cue) {
			return true
		}
	}
	return false
}

// slotReportedFree reports whether a checkAvailability result says the
// slot is free.
func slotReportedFree(result string) bool {
	return strings.Contains(result, tools.FreeSlotPhrase)
}

// extractDescription pulls the appointment description out of the
// utterance, falling back to the default placeholder when no pattern
// matches.
func extractDescription(utterance string) string {
	for _, re := range descriptionPatterns {
		if m := re.FindStringSubmatch(utterance); m != nil {
			if desc := strings.TrimSpace(m[1]); desc != "" {
				return desc
			}
		}
	}
	return tools.DefaultDescription
}
