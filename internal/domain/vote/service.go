package vote

import (
	"context"
	"errors"
	"time"
)

var (
	ErrPollNotFound    = errors.New("poll not found")
	ErrPollClosed      = errors.New("poll is closed")
	ErrOptionNotInPoll = errors.New("option does not belong to poll")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Result struct {
	OptionID int64 `json:"option_id"`
	Votes    int64 `json:"votes"`
}

// Ballot is the outcome of a cast: the user's resulting choice plus the
// poll's tallies as of the commit.
type Ballot struct {
	PollID     int64    `json:"poll_id"`
	OptionID   int64    `json:"option_id"`
	TotalVotes int64    `json:"total_votes"`
	Results    []Result `json:"results"`
}

// Cast records or moves a user's single vote on a poll. Re-voting switches
// the option, it never adds a second row.
func (s *Service) Cast(ctx context.Context, pollID, optionID, userID int64) (*Ballot, error) {
	open, err := s.repo.PollOpen(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrPollClosed
	}

	ok, err := s.repo.OptionInPoll(ctx, pollID, optionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOptionNotInPoll
	}

	v := &Vote{
		PollID:   pollID,
		OptionID: optionID,
		UserID:   userID,
	}
	if err := s.repo.Upsert(ctx, v); err != nil {
		return nil, err
	}

	counts, total, err := s.repo.CountByPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(counts))
	for id, c := range counts {
		results = append(results, Result{OptionID: id, Votes: c})
	}

	return &Ballot{
		PollID:     pollID,
		OptionID:   optionID,
		TotalVotes: total,
		Results:    results,
	}, nil
}

// Status reports whether the user has voted on the poll and, if so, how.
type Status struct {
	HasVoted   bool       `json:"has_voted"`
	OptionID   *int64     `json:"option_id,omitempty"`
	OptionText *string    `json:"option_text,omitempty"`
	VotedAt    *time.Time `json:"voted_at,omitempty"`
}

func (s *Service) UserVote(ctx context.Context, pollID, userID int64) (*Status, error) {
	uv, err := s.repo.UserVote(ctx, pollID, userID)
	if err != nil {
		return nil, err
	}
	if uv == nil {
		return &Status{HasVoted: false}, nil
	}
	return &Status{
		HasVoted:   true,
		OptionID:   &uv.OptionID,
		OptionText: &uv.OptionText,
		VotedAt:    &uv.VotedAt,
	}, nil
}
