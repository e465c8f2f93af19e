// Package queue selects and orders customers eligible for an outbound
// calling campaign.
package queue

import (
	"fmt"
	"log"

	"callpilot/models"
	"callpilot/store"
)

// DefaultPriority is the status order used when a campaign prioritizes
// by "new": fresh leads first, then warm ones, then requested callbacks.
var DefaultPriority = []string{
	models.StatusNew,
	models.StatusInterested,
	models.StatusCallbackRequested,
}

type Builder struct {
	Store  store.CustomerStore
	Logger *log.Logger
}

func NewBuilder(cs store.CustomerStore, logger *log.Logger) *Builder {
	return &Builder{
		Store:  cs,
		Logger: logger,
	}
}

// Build returns up to maxCalls customers to dial. The "new" priority
// key expands to DefaultPriority; any other key selects exactly that
// status. Customers marked do_not_call are never returned, even when
// named directly. An empty queue is a valid result, not an error.
func (b *Builder) Build(maxCalls int, prioritizeBy string) ([]models.Customer, error) {
	var targets []string
	switch prioritizeBy {
	case "", models.StatusNew:
		targets = DefaultPriority
	case models.StatusDoNotCall:
		return nil, nil
	default:
		if !models.ValidStatus(prioritizeBy) {
			return nil, fmt.Errorf("unknown priority status %q", prioritizeBy)
		}
		targets = []string{prioritizeBy}
	}

	var queue []models.Customer
	for _, status := range targets {
		customers, err := b.Store.FindByStatus(status)
		if err != nil {
			return nil, err
		}
		queue = append(queue, customers...)
	}

	if maxCalls > 0 && len(queue) > maxCalls {
		queue = queue[:maxCalls]
	}

	b.Logger.Printf("Built calling queue of %d customers (prioritize_by=%s, max=%d)",
		len(queue), prioritizeBy, maxCalls)
	return queue, nil
}
