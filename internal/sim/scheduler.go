package sim

import (
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/tomb.v2"
)

// CancelFunc withdraws a pending frame request. It never blocks and may be
// called more than once.
type CancelFunc func()

// Scheduler delivers frame callbacks, one per request, at the display rate.
type Scheduler interface {
	RequestFrame(fn func()) CancelFunc
}

type request struct {
	fn        func()
	cancelled atomic.Bool
}

func (r *request) cancel() { r.cancelled.Store(true) }

// queue is the request list shared by the schedulers below.
type queue struct {
	mu      sync.Mutex
	pending []*request
}

func (q *queue) push(fn func()) CancelFunc {
	r := &request{fn: fn}
	q.mu.Lock()
	q.pending = append(q.pending, r)
	q.mu.Unlock()
	return r.cancel
}

// drain runs the requests queued before the call. Requests made by the
// callbacks wait for the next drain.
func (q *queue) drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	n := 0
	for _, r := range batch {
		if r.cancelled.Load() {
			continue
		}
		r.fn()
		n++
	}
	return n
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, r := range q.pending {
		if !r.cancelled.Load() {
			n++
		}
	}
	return n
}

// ManualScheduler only fires when told to. Tests and the terminal UI drive it
// from their own loop.
type ManualScheduler struct {
	q queue
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) RequestFrame(fn func()) CancelFunc {
	return m.q.push(fn)
}

// Fire runs every live request queued so far and returns how many ran.
func (m *ManualScheduler) Fire() int {
	return m.q.drain()
}

// Pending returns the number of live requests waiting to fire.
func (m *ManualScheduler) Pending() int {
	return m.q.len()
}

// TickerScheduler fires queued requests from a background goroutine at a
// fixed rate.
type TickerScheduler struct {
	q        queue
	interval time.Duration
	t        tomb.Tomb
}

// NewTickerScheduler starts a scheduler ticking fps times per second.
func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	s := &TickerScheduler{interval: time.Second / time.Duration(fps)}
	s.t.Go(s.loop)
	return s
}

func (s *TickerScheduler) loop() error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.t.Dying():
			return nil
		case <-ticker.C:
			s.q.drain()
		}
	}
}

func (s *TickerScheduler) RequestFrame(fn func()) CancelFunc {
	return s.q.push(fn)
}

// Pending returns the number of live requests waiting for the next tick.
func (s *TickerScheduler) Pending() int {
	return s.q.len()
}

// Stop halts the ticker goroutine and waits for it to exit.
func (s *TickerScheduler) Stop() error {
	s.t.Kill(nil)
	return s.t.Wait()
}
