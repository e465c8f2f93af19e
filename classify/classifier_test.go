package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"callpilot/models"
)

func TestKeywordClassifier(t *testing.T) {
	kc := NewKeywordClassifier()

	tests := []struct {
		name    string
		text    string
		outcome string
	}{
		{
			name:    "acceptance wins",
			text:    "I'd love a free sample, that sounds great",
			outcome: models.OutcomeSampleRequested,
		},
		{
			name:    "explicit decline",
			text:    "No thanks, not interested, I'm busy",
			outcome: models.OutcomeNotInterested,
		},
		{
			name:    "deferral",
			text:    "Call me back next week",
			outcome: models.OutcomeCallback,
		},
		{
			name:    "ambiguous defaults to interested",
			text:    "Sounds fine",
			outcome: models.OutcomeInterested,
		},
		{
			name:    "empty defaults to interested",
			text:    "",
			outcome: models.OutcomeInterested,
		},
		{
			name:    "case insensitive",
			text:    "SEND ME A SAMPLE PACK",
			outcome: models.OutcomeSampleRequested,
		},
		{
			name:    "decline beats deferral when both match",
			text:    "Don't call, maybe later",
			outcome: models.OutcomeNotInterested,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, notes := kc.Classify(tt.text)
			assert.Equal(t, tt.outcome, outcome)
			assert.NotEmpty(t, notes)
		})
	}
}

func TestKeywordClassifierIdempotent(t *testing.T) {
	kc := NewKeywordClassifier()

	text := "Call me back next week"
	firstOutcome, firstNotes := kc.Classify(text)
	for i := 0; i < 10; i++ {
		outcome, notes := kc.Classify(text)
		assert.Equal(t, firstOutcome, outcome)
		assert.Equal(t, firstNotes, notes)
	}
}
