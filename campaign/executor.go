package campaign

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"callpilot/classify"
	"callpilot/dialer"
	"callpilot/models"
	"callpilot/store"
)

var (
	// ErrAlreadyRunning is returned when a start request arrives while a
	// campaign is still running.
	ErrAlreadyRunning = errors.New("a campaign is already running")

	// ErrEmptyQueue is returned when a start request carries no customers.
	ErrEmptyQueue = errors.New("no customers in the calling queue")
)

// Executor owns the single optional campaign for the whole process.
// Start is an atomic check-and-set under one mutex, so two concurrent
// start requests can never both win.
type Executor struct {
	Store      store.CustomerStore
	CallLog    store.CallLog
	Dialer     dialer.Dialer
	Classifier classify.Classifier
	Logger     *log.Logger
	AgentName  string

	mu      sync.Mutex
	current *Campaign
	cancel  context.CancelFunc
}

func NewExecutor(cs store.CustomerStore, cl store.CallLog, d dialer.Dialer, c classify.Classifier, agentName string, logger *log.Logger) *Executor {
	return &Executor{
		Store:      cs,
		CallLog:    cl,
		Dialer:     d,
		Classifier: c,
		Logger:     logger,
		AgentName:  agentName,
	}
}

// Start creates a new campaign over the given queue and schedules the
// run in the background. It returns without waiting for any attempt.
func (e *Executor) Start(customers []models.Customer, delay time.Duration) (*Campaign, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != nil && e.current.Running {
		return nil, ErrAlreadyRunning
	}
	if len(customers) == 0 {
		return nil, ErrEmptyQueue
	}

	ctx, cancel := context.WithCancel(context.Background())
	camp := &Campaign{
		ID:        uuid.New(),
		Running:   true,
		Total:     len(customers),
		StartTime: time.Now(),
		customers: customers,
	}
	e.current = camp
	e.cancel = cancel

	go e.run(ctx, cancel, camp, delay)

	e.Logger.Printf("Campaign %s started with %d customers (delay %s)", camp.ID, camp.Total, delay)
	return camp, nil
}

// Stop requests cancellation of the current campaign. No further
// attempts start after the flag is observed; an attempt already in
// flight is not preempted, though its dialer sees the canceled context.
// Safe to call at any time, including when nothing is running.
func (e *Executor) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return
	}
	e.current.Running = false
	if e.cancel != nil {
		e.cancel()
	}
	e.Logger.Printf("Campaign %s stop requested", e.current.ID)
}

// Status returns a consistent snapshot of the current campaign, or an
// idle snapshot if none has ever run.
func (e *Executor) Status() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return Snapshot{}
	}
	start := e.current.StartTime
	return Snapshot{
		ID:        e.current.ID.String(),
		Running:   e.current.Running,
		Total:     e.current.Total,
		Completed: e.current.Completed,
		StartTime: &start,
		EndTime:   e.current.EndTime,
	}
}

// Results returns a copy of the current campaign's per-attempt results.
func (e *Executor) Results() []CallResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return []CallResult{}
	}
	out := make([]CallResult, len(e.current.results))
	copy(out, e.current.results)
	return out
}

// run processes the queue strictly in order on its own goroutine.
func (e *Executor) run(ctx context.Context, cancel context.CancelFunc, camp *Campaign, delay time.Duration) {
	defer cancel()
	defer e.finish(camp)

	for i := range camp.customers {
		if !e.stillRunning(camp) {
			e.Logger.Printf("Campaign %s stopped by operator after %d calls", camp.ID, i)
			return
		}

		customer := camp.customers[i]
		e.placeAttempt(ctx, camp, &customer, i)

		// Pause between attempts, never after the last one, and bail
		// out mid-delay if a stop request lands.
		if i < len(camp.customers)-1 && e.stillRunning(camp) {
			if !sleepCtx(ctx, delay) {
				e.Logger.Printf("Campaign %s stopped during inter-call delay", camp.ID)
				return
			}
		}
	}
}

// placeAttempt dials one customer and records the result. A failed
// attempt is logged and reported but never aborts the run.
func (e *Executor) placeAttempt(ctx context.Context, camp *Campaign, customer *models.Customer, index int) {
	start := time.Now()
	reply, err := e.Dialer.PlaceCall(ctx, customer)
	end := time.Now()

	if err != nil {
		e.Logger.Printf("Call %d/%d to %s failed: %v", index+1, camp.Total, customer.Phone, err)
		sentry.CaptureException(err)

		result := CallResult{
			Customer:  customer.Name,
			Phone:     customer.Phone,
			StartTime: start,
			EndTime:   end,
			Status:    "failed",
			Outcome:   models.OutcomeError,
			Notes:     "Call failed: " + err.Error(),
		}
		e.record(camp, result, start, end)
		return
	}

	outcome, notes := e.Classifier.Classify(reply)
	if err := e.Store.SetStatus(customer.Phone, statusForOutcome(outcome), notes); err != nil {
		e.Logger.Printf("Failed to update customer %s: %v", customer.Phone, err)
	}

	result := CallResult{
		Customer:       customer.Name,
		Phone:          customer.Phone,
		StartTime:      start,
		EndTime:        end,
		Status:         "completed",
		Outcome:        outcome,
		Notes:          notes,
		FollowUpNeeded: followUpNeeded(outcome),
		Response:       reply,
	}
	e.record(camp, result, start, end)

	e.mu.Lock()
	camp.Completed++
	completed := camp.Completed
	e.mu.Unlock()

	e.Logger.Printf("Call %d/%d completed: %s", completed, camp.Total, outcome)
}

// record appends the result to the campaign and the call history log.
func (e *Executor) record(camp *Campaign, result CallResult, start, end time.Time) {
	e.mu.Lock()
	camp.results = append(camp.results, result)
	e.mu.Unlock()

	record := &models.CallRecord{
		CustomerPhone:   result.Phone,
		CallDate:        start,
		DurationSeconds: int(end.Sub(start).Seconds()),
		Outcome:         result.Outcome,
		Notes:           result.Notes,
		FollowUpNeeded:  result.FollowUpNeeded,
		AgentName:       e.AgentName,
		CallID:          uuid.New().String(),
	}
	if err := e.CallLog.Append(record); err != nil {
		e.Logger.Printf("Failed to log call history for %s: %v", result.Phone, err)
	}
}

func (e *Executor) finish(camp *Campaign) {
	e.mu.Lock()
	defer e.mu.Unlock()

	camp.Running = false
	now := time.Now()
	camp.EndTime = &now
	e.Logger.Printf("Campaign %s finished: %d/%d calls completed", camp.ID, camp.Completed, camp.Total)
}

func (e *Executor) stillRunning(camp *Campaign) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return camp.Running
}

// sleepCtx waits for d, returning false if ctx is canceled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// statusForOutcome maps a call outcome onto the customer lifecycle.
func statusForOutcome(outcome string) string {
	switch outcome {
	case models.OutcomeSampleRequested:
		return models.StatusInterested
	case models.OutcomeNotInterested:
		return models.StatusNotInterested
	default:
		return models.StatusContacted
	}
}

func followUpNeeded(outcome string) bool {
	switch outcome {
	case models.OutcomeInterested, models.OutcomeCallback, models.OutcomeSampleRequested:
		return true
	}
	return false
}
