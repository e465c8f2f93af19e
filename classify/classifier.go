// Package classify turns the free-text reply from a contact attempt
// into a discrete call outcome.
package classify

import (
	"strings"

	"callpilot/models"
)

// Classifier maps a raw conversational reply to a call outcome plus a
// short note for the customer record. Implementations must be pure:
// the same text always classifies the same way. The keyword matcher
// below is a stand-in; a model-backed classifier can be swapped in
// without touching the campaign executor.
type Classifier interface {
	Classify(raw string) (outcome string, notes string)
}

type rule struct {
	outcome string
	notes   string
	terms   []string
}

// KeywordClassifier scans the lowercased reply for outcome-indicating
// phrases in priority order: acceptance first, then explicit declines,
// then deferrals. Anything unmatched counts as an engaged-but-ambiguous
// lead and defaults to "interested".
type KeywordClassifier struct {
	rules []rule
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		rules: []rule{
			{
				outcome: models.OutcomeSampleRequested,
				notes:   "Customer interested in samples",
				terms: []string{
					"sample", "send me", "sign me up", "sounds great",
					"yes please", "i'll try",
				},
			},
			{
				outcome: models.OutcomeNotInterested,
				notes:   "Customer not interested at this time",
				terms: []string{
					"not interested", "no thanks", "no thank you",
					"don't call", "do not call", "stop calling", "busy",
				},
			},
			{
				outcome: models.OutcomeCallback,
				notes:   "Customer requested callback",
				terms: []string{
					"call me back", "call back", "callback", "later",
					"next week", "another time",
				},
			},
		},
	}
}

// Classify returns the first matching outcome in rule priority order.
func (kc *KeywordClassifier) Classify(raw string) (string, string) {
	text := strings.ToLower(raw)
	for _, r := range kc.rules {
		for _, term := range r.terms {
			if strings.Contains(text, term) {
				return r.outcome, r.notes
			}
		}
	}
	return models.OutcomeInterested, "Customer showed interest, needs follow-up"
}
