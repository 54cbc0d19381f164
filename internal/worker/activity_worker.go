// Package worker persists the activity log. Writes are fire-and-forget:
// handlers publish events on a buffered channel and drop them when it is
// full, so the log can never stall or fail a request.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/Devy09/masetrack-sub001/internal/retry"
)

type EventType string

const (
	EventLogin       EventType = "login"
	EventPollCreated EventType = "poll_created"
	EventPollDeleted EventType = "poll_deleted"
	EventVoteCast    EventType = "vote_cast"
)

type Event struct {
	Type      EventType
	ActorID   int64
	SubjectID int64
}

// Recorder is the storage side of the log.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

type ActivityWorker struct {
	ch  <-chan Event
	rec Recorder
	log *slog.Logger
}

func NewActivityWorker(ch <-chan Event, rec Recorder, log *slog.Logger) *ActivityWorker {
	if log == nil {
		log = slog.Default()
	}
	return &ActivityWorker{ch: ch, rec: rec, log: log}
}

func (w *ActivityWorker) Run(ctx context.Context) {
	w.log.Info("activity worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("activity worker stopped")
			return
		case ev := <-w.ch:
			err := retry.Do(ctx, 2, 200*time.Millisecond, func() error {
				insertCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
				defer cancel()
				return w.rec.Record(insertCtx, ev)
			})
			if err != nil {
				w.log.Warn("activity event dropped",
					"type", string(ev.Type),
					"actor_id", ev.ActorID,
					"error", err,
				)
			}
		}
	}
}
