package campaign

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"callpilot/classify"
	"callpilot/dialer"
	"callpilot/models"
	"callpilot/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recordingStore tracks SetStatus calls.
type recordingStore struct {
	mu      sync.Mutex
	updates map[string]string // phone -> status
}

var _ store.CustomerStore = (*recordingStore)(nil)

func newRecordingStore() *recordingStore {
	return &recordingStore{updates: make(map[string]string)}
}

func (r *recordingStore) Register(*models.Customer) error                { return nil }
func (r *recordingStore) FindByStatus(string) ([]models.Customer, error) { return nil, nil }
func (r *recordingStore) All() ([]models.Customer, error)                { return nil, nil }
func (r *recordingStore) GetStats() (*store.Stats, error)                { return &store.Stats{}, nil }

func (r *recordingStore) SetStatus(phone, status, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates[phone] = status
	return nil
}

func (r *recordingStore) statusOf(phone string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates[phone]
}

// recordingCallLog collects appended records.
type recordingCallLog struct {
	mu      sync.Mutex
	records []models.CallRecord
}

var _ store.CallLog = (*recordingCallLog)(nil)

func (r *recordingCallLog) Append(record *models.CallRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *recordingCallLog) CountSince(time.Time) (int64, error) { return 0, nil }

func (r *recordingCallLog) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// scriptedDialer returns one reply (or error) per call, in order.
type scriptedDialer struct {
	mu      sync.Mutex
	replies []string
	errAt   map[int]error
	calls   int
}

func (d *scriptedDialer) PlaceCall(ctx context.Context, customer *models.Customer) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := d.calls
	d.calls++
	if err, ok := d.errAt[idx]; ok {
		return "", err
	}
	return d.replies[idx%len(d.replies)], nil
}

func (d *scriptedDialer) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// blockingDialer holds every call until released (or the ctx is canceled).
type blockingDialer struct {
	started chan struct{} // one tick per call that began
	release chan struct{}
}

func newBlockingDialer() *blockingDialer {
	return &blockingDialer{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (d *blockingDialer) PlaceCall(ctx context.Context, customer *models.Customer) (string, error) {
	d.started <- struct{}{}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-d.release:
		return "Sounds fine", nil
	}
}

func testCustomers(n int) []models.Customer {
	customers := make([]models.Customer, 0, n)
	for i := 0; i < n; i++ {
		customers = append(customers, models.Customer{
			Name:   "Customer " + string(rune('A'+i)),
			Phone:  "+1-555-010" + string(rune('0'+i)),
			Status: models.StatusNew,
		})
	}
	return customers
}

func newTestExecutor(cs store.CustomerStore, cl store.CallLog, d dialer.Dialer) *Executor {
	return NewExecutor(cs, cl, d, classify.NewKeywordClassifier(), "Test Agent",
		log.New(io.Discard, "", 0))
}

func waitForFinish(t *testing.T, ex *Executor) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool {
		s := ex.Status()
		return !s.Running && s.EndTime != nil
	}, 3*time.Second, 5*time.Millisecond)
	return ex.Status()
}

func TestRunProcessesQueueInOrder(t *testing.T) {
	cs := newRecordingStore()
	cl := &recordingCallLog{}
	d := &scriptedDialer{replies: []string{
		"Yes, I'd love a free sample",
		"No thanks, not interested",
		"Sounds fine",
	}}
	ex := newTestExecutor(cs, cl, d)

	customers := testCustomers(3)
	_, err := ex.Start(customers, 0)
	require.NoError(t, err)

	snapshot := waitForFinish(t, ex)
	assert.Equal(t, 3, snapshot.Total)
	assert.Equal(t, 3, snapshot.Completed)
	assert.NotNil(t, snapshot.StartTime)

	// Outcomes map onto the customer lifecycle.
	assert.Equal(t, models.StatusInterested, cs.statusOf(customers[0].Phone))
	assert.Equal(t, models.StatusNotInterested, cs.statusOf(customers[1].Phone))
	assert.Equal(t, models.StatusContacted, cs.statusOf(customers[2].Phone))

	results := ex.Results()
	require.Len(t, results, 3)
	assert.Equal(t, customers[0].Phone, results[0].Phone)
	assert.Equal(t, models.OutcomeSampleRequested, results[0].Outcome)
	assert.True(t, results[0].FollowUpNeeded)
	assert.Equal(t, models.OutcomeNotInterested, results[1].Outcome)
	assert.False(t, results[1].FollowUpNeeded)

	assert.Equal(t, 3, cl.count())
}

func TestStartRejectsEmptyQueue(t *testing.T) {
	ex := newTestExecutor(newRecordingStore(), &recordingCallLog{}, &scriptedDialer{replies: []string{"ok"}})

	_, err := ex.Start(nil, 0)
	assert.ErrorIs(t, err, ErrEmptyQueue)
}

func TestStartRejectsConcurrentCampaign(t *testing.T) {
	d := newBlockingDialer()
	ex := newTestExecutor(newRecordingStore(), &recordingCallLog{}, d)

	_, err := ex.Start(testCustomers(2), 0)
	require.NoError(t, err)
	<-d.started

	_, err = ex.Start(testCustomers(1), 0)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	ex.Stop()
	waitForFinish(t, ex)
}

func TestStopDuringDelayAbandonsTail(t *testing.T) {
	cs := newRecordingStore()
	cl := &recordingCallLog{}
	d := &scriptedDialer{replies: []string{"Sounds fine"}}
	ex := newTestExecutor(cs, cl, d)

	// A long inter-call delay: the run sits in the delay after the
	// first attempt until Stop cancels it.
	_, err := ex.Start(testCustomers(3), time.Minute)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return ex.Status().Completed == 1
	}, 3*time.Second, 5*time.Millisecond)

	ex.Stop()
	snapshot := waitForFinish(t, ex)

	assert.Equal(t, 1, snapshot.Completed)
	assert.Equal(t, 3, snapshot.Total)
	assert.Equal(t, 1, d.callCount())
	assert.Len(t, ex.Results(), 1)
}

func TestStopPreventsFurtherAttempts(t *testing.T) {
	d := newBlockingDialer()
	ex := newTestExecutor(newRecordingStore(), &recordingCallLog{}, d)

	_, err := ex.Start(testCustomers(3), 0)
	require.NoError(t, err)
	<-d.started

	// Stop while the first attempt is in flight: the dialer sees the
	// canceled context, and no second attempt begins.
	ex.Stop()
	snapshot := waitForFinish(t, ex)

	assert.False(t, snapshot.Running)
	assert.LessOrEqual(t, snapshot.Completed, snapshot.Total)
	select {
	case <-d.started:
		t.Fatal("an attempt started after stop")
	default:
	}
}

func TestAttemptFailureDoesNotAbortRun(t *testing.T) {
	cs := newRecordingStore()
	cl := &recordingCallLog{}
	d := &scriptedDialer{
		replies: []string{"Sounds fine"},
		errAt:   map[int]error{1: errors.New("line busy")},
	}
	ex := newTestExecutor(cs, cl, d)

	customers := testCustomers(3)
	_, err := ex.Start(customers, 0)
	require.NoError(t, err)

	snapshot := waitForFinish(t, ex)
	assert.Equal(t, 2, snapshot.Completed)

	results := ex.Results()
	require.Len(t, results, 3)
	assert.Equal(t, "failed", results[1].Status)
	assert.Equal(t, models.OutcomeError, results[1].Outcome)
	assert.Equal(t, "completed", results[2].Status)

	// Failed attempts still land in the call history.
	assert.Equal(t, 3, cl.count())
	// The failed customer's status was never touched.
	assert.Empty(t, cs.statusOf(customers[1].Phone))
}

func TestStopIsIdempotentWhenIdle(t *testing.T) {
	ex := newTestExecutor(newRecordingStore(), &recordingCallLog{}, &scriptedDialer{replies: []string{"ok"}})

	ex.Stop()
	ex.Stop()

	snapshot := ex.Status()
	assert.False(t, snapshot.Running)
	assert.Zero(t, snapshot.Total)
	assert.Zero(t, snapshot.Completed)
	assert.Empty(t, ex.Results())
}

func TestCompletedNeverExceedsTotal(t *testing.T) {
	cs := newRecordingStore()
	cl := &recordingCallLog{}
	d := &scriptedDialer{replies: []string{"Sounds fine"}}
	ex := newTestExecutor(cs, cl, d)

	_, err := ex.Start(testCustomers(5), 0)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			s := ex.Status()
			assert.LessOrEqual(t, s.Completed, s.Total)
			if !s.Running && s.EndTime != nil {
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()
	<-done
}
