package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeRecorder struct {
	mu       sync.Mutex
	events   []Event
	failures int
}

func (r *fakeRecorder) Record(ctx context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.New("insert failed")
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *fakeRecorder) recorded() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]Event, len(r.events))
	copy(res, r.events)
	return res
}

func TestWorkerRecordsEvents(t *testing.T) {
	rec := &fakeRecorder{}
	ch := make(chan Event, 10)
	w := NewActivityWorker(ch, rec, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	ch <- Event{Type: EventLogin, ActorID: 1}
	ch <- Event{Type: EventVoteCast, ActorID: 1, SubjectID: 5}

	waitFor(t, func() bool { return len(rec.recorded()) == 2 })
	cancel()
	<-done

	events := rec.recorded()
	if events[0].Type != EventLogin || events[1].Type != EventVoteCast {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestWorkerRetriesOnce(t *testing.T) {
	rec := &fakeRecorder{failures: 1}
	ch := make(chan Event, 1)
	w := NewActivityWorker(ch, rec, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	ch <- Event{Type: EventPollCreated, ActorID: 2, SubjectID: 9}

	waitFor(t, func() bool { return len(rec.recorded()) == 1 })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}
