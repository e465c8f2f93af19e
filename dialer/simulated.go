package dialer

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"callpilot/models"
)

// defaultReplies covers the reply shapes the classifier distinguishes.
var defaultReplies = []string{
	"I'd love a free sample, that sounds great",
	"Sure, send me a sample pack and we'll take a look",
	"No thanks, not interested, I'm busy right now",
	"Call me back next week, this isn't a good time",
	"Sounds fine, tell me more about the pricing",
	"We already have a supplier but I'm listening",
}

// SimulatedDialer stands in for the voice pipeline during development
// and tests. It holds the line for a configurable duration and then
// returns the next canned reply in rotation.
type SimulatedDialer struct {
	AgentName    string
	CallDuration time.Duration
	Logger       *log.Logger

	mu      sync.Mutex
	replies []string
	next    int
}

func NewSimulatedDialer(agentName string, callDuration time.Duration, logger *log.Logger) *SimulatedDialer {
	return &SimulatedDialer{
		AgentName:    agentName,
		CallDuration: callDuration,
		Logger:       logger,
		replies:      defaultReplies,
	}
}

// SetReplies replaces the canned reply rotation. Used by tests that
// need deterministic outcomes.
func (sd *SimulatedDialer) SetReplies(replies []string) {
	sd.mu.Lock()
	defer sd.mu.Unlock()
	sd.replies = replies
	sd.next = 0
}

// PlaceCall simulates one call: log the pitch, hold for the configured
// call duration (cancellable), return the next canned reply.
func (sd *SimulatedDialer) PlaceCall(ctx context.Context, customer *models.Customer) (string, error) {
	sd.Logger.Printf("Simulating call to %s at %s (%s)",
		customer.Name, customer.BusinessName, customer.Phone)
	sd.Logger.Printf("Pitch: %s", BuildPitch(sd.AgentName, customer))

	if sd.CallDuration > 0 {
		timer := time.NewTimer(sd.CallDuration)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	sd.mu.Lock()
	defer sd.mu.Unlock()
	if len(sd.replies) == 0 {
		return "", errors.New("no canned replies configured")
	}
	reply := sd.replies[sd.next%len(sd.replies)]
	sd.next++
	return reply, nil
}
