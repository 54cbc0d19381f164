package vote

import (
	"context"
	"time"
)

type Vote struct {
	ID       int64     `json:"id"`
	PollID   int64     `json:"poll_id"`
	OptionID int64     `json:"option_id"`
	UserID   int64     `json:"user_id"`
	VotedAt  time.Time `json:"voted_at"`
}

// UserVote is a user's current choice on one poll.
type UserVote struct {
	OptionID   int64     `json:"option_id"`
	OptionText string    `json:"option_text"`
	VotedAt    time.Time `json:"voted_at"`
}

type Repository interface {
	// Upsert inserts the vote or, when a row for (poll_id, user_id) already
	// exists, moves it to the new option. The uniqueness invariant lives in
	// the storage layer, not in a check-then-write here.
	Upsert(ctx context.Context, v *Vote) error
	PollOpen(ctx context.Context, pollID int64) (bool, error)
	OptionInPoll(ctx context.Context, pollID, optionID int64) (bool, error)
	CountByPoll(ctx context.Context, pollID int64) (map[int64]int64, int64, error)
	UserVote(ctx context.Context, pollID, userID int64) (*UserVote, error)
}
