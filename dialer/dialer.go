// Package dialer places outbound contact attempts. The real voice
// pipeline (telephony transport, speech synthesis and recognition,
// conversation generation) lives behind the Dialer interface; this
// service only consumes the customer's reply text.
package dialer

import (
	"context"

	"callpilot/models"
)

// Dialer places one call to one customer and returns the customer's
// reply, the text the outcome classifier runs over. Implementations
// must honor ctx so an in-flight campaign stop is observed promptly.
type Dialer interface {
	PlaceCall(ctx context.Context, customer *models.Customer) (reply string, err error)
}
