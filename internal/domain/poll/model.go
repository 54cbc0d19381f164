package poll

import (
	"context"
	"time"
)

type Poll struct {
	ID          int64     `json:"id"`
	Question    string    `json:"question"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Option carries its vote tally. Tallies are always computed from vote rows
// at read time; they are never stored.
type Option struct {
	ID     int64  `json:"id"`
	PollID int64  `json:"poll_id"`
	Text   string `json:"text"`
	Votes  int64  `json:"votes"`
}

type Detail struct {
	Poll
	Options    []Option `json:"options"`
	TotalVotes int64    `json:"total_votes"`
}

type Repository interface {
	Create(ctx context.Context, p *Poll, options []Option) error
	GetByID(ctx context.Context, id int64) (*Detail, error)
	List(ctx context.Context) ([]Detail, error)
	CreatorOf(ctx context.Context, id int64) (int64, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}
