package vote

import (
	"context"
	"sync"
	"testing"
	"time"
)

type memoryVoteRepo struct {
	mu      sync.Mutex
	open    map[int64]bool
	options map[int64][]int64         // pollID -> option ids
	texts   map[int64]string          // optionID -> text
	votes   map[int64]map[int64]*Vote // pollID -> userID -> vote
	nextID  int64
}

func newMemoryVoteRepo() *memoryVoteRepo {
	return &memoryVoteRepo{
		open:    make(map[int64]bool),
		options: make(map[int64][]int64),
		texts:   make(map[int64]string),
		votes:   make(map[int64]map[int64]*Vote),
		nextID:  1,
	}
}

func (r *memoryVoteRepo) addPoll(pollID int64, open bool, optionIDs ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open[pollID] = open
	r.options[pollID] = optionIDs
	for _, id := range optionIDs {
		r.texts[id] = "option"
	}
}

func (r *memoryVoteRepo) Upsert(ctx context.Context, v *Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.votes[v.PollID] == nil {
		r.votes[v.PollID] = make(map[int64]*Vote)
	}
	if existing, ok := r.votes[v.PollID][v.UserID]; ok {
		existing.OptionID = v.OptionID
		existing.VotedAt = time.Now()
		v.ID = existing.ID
		v.VotedAt = existing.VotedAt
		return nil
	}
	v.ID = r.nextID
	r.nextID++
	v.VotedAt = time.Now()
	copyVote := *v
	r.votes[v.PollID][v.UserID] = &copyVote
	return nil
}

func (r *memoryVoteRepo) PollOpen(ctx context.Context, pollID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	open, ok := r.open[pollID]
	if !ok {
		return false, ErrPollNotFound
	}
	return open, nil
}

func (r *memoryVoteRepo) OptionInPoll(ctx context.Context, pollID, optionID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.options[pollID] {
		if id == optionID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryVoteRepo) CountByPoll(ctx context.Context, pollID int64) (map[int64]int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make(map[int64]int64)
	var total int64
	for _, v := range r.votes[pollID] {
		res[v.OptionID]++
		total++
	}
	return res, total, nil
}

func (r *memoryVoteRepo) UserVote(ctx context.Context, pollID, userID int64) (*UserVote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.votes[pollID][userID]
	if !ok {
		return nil, nil
	}
	return &UserVote{OptionID: v.OptionID, OptionText: r.texts[v.OptionID], VotedAt: v.VotedAt}, nil
}

func (r *memoryVoteRepo) rowsFor(pollID, userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.votes[pollID][userID]; ok {
		return 1
	}
	return 0
}

func TestCastAndTallies(t *testing.T) {
	repo := newMemoryVoteRepo()
	repo.addPoll(1, true, 10, 11)
	svc := NewService(repo)
	ctx := context.Background()

	ballot, err := svc.Cast(ctx, 1, 10, 100)
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if ballot.OptionID != 10 || ballot.TotalVotes != 1 {
		t.Fatalf("unexpected ballot: %+v", ballot)
	}

	status, err := svc.UserVote(ctx, 1, 100)
	if err != nil {
		t.Fatalf("user vote: %v", err)
	}
	if !status.HasVoted || status.OptionID == nil || *status.OptionID != 10 {
		t.Fatalf("expected vote on option 10, got %+v", status)
	}
}

func TestRevoteSwitchesNotAccumulates(t *testing.T) {
	repo := newMemoryVoteRepo()
	repo.addPoll(1, true, 10, 11)
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Cast(ctx, 1, 10, 100); err != nil {
		t.Fatalf("first cast: %v", err)
	}
	ballot, err := svc.Cast(ctx, 1, 11, 100)
	if err != nil {
		t.Fatalf("second cast: %v", err)
	}

	if ballot.TotalVotes != 1 {
		t.Fatalf("re-vote must not add a row: total=%d", ballot.TotalVotes)
	}
	counts := map[int64]int64{}
	for _, res := range ballot.Results {
		counts[res.OptionID] = res.Votes
	}
	if counts[10] != 0 || counts[11] != 1 {
		t.Fatalf("expected vote moved to option 11, got %v", counts)
	}
	if repo.rowsFor(1, 100) != 1 {
		t.Fatalf("expected exactly one row for the user")
	}
}

func TestConcurrentCastsConverge(t *testing.T) {
	repo := newMemoryVoteRepo()
	repo.addPoll(1, true, 10, 11)
	svc := NewService(repo)
	ctx := context.Background()

	const casts = 50
	var wg sync.WaitGroup
	for i := 0; i < casts; i++ {
		wg.Add(1)
		optionID := int64(10 + i%2)
		go func() {
			defer wg.Done()
			if _, err := svc.Cast(ctx, 1, optionID, 100); err != nil {
				t.Errorf("cast: %v", err)
			}
		}()
	}
	wg.Wait()

	if repo.rowsFor(1, 100) != 1 {
		t.Fatalf("expected exactly one row after concurrent casts")
	}
	counts, total, err := repo.CountByPoll(ctx, 1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}
	if counts[10]+counts[11] != 1 {
		t.Fatalf("tallies must sum to the vote rows: %v", counts)
	}

	// A final sequential cast is the last committed write and must win.
	if _, err := svc.Cast(ctx, 1, 11, 100); err != nil {
		t.Fatalf("final cast: %v", err)
	}
	status, _ := svc.UserVote(ctx, 1, 100)
	if status.OptionID == nil || *status.OptionID != 11 {
		t.Fatalf("expected last-committed option 11, got %+v", status)
	}
}

func TestTallySumInvariant(t *testing.T) {
	repo := newMemoryVoteRepo()
	repo.addPoll(1, true, 10, 11, 12)
	svc := NewService(repo)
	ctx := context.Background()

	voters := []struct {
		userID   int64
		optionID int64
	}{
		{100, 10}, {101, 10}, {102, 11}, {103, 12}, {104, 12},
	}
	var last *Ballot
	for _, v := range voters {
		b, err := svc.Cast(ctx, 1, v.optionID, v.userID)
		if err != nil {
			t.Fatalf("cast user %d: %v", v.userID, err)
		}
		last = b
	}

	var sum int64
	for _, res := range last.Results {
		sum += res.Votes
	}
	if sum != last.TotalVotes {
		t.Fatalf("sum of option votes %d != total %d", sum, last.TotalVotes)
	}
	if last.TotalVotes != int64(len(voters)) {
		t.Fatalf("total must equal distinct voters: %d != %d", last.TotalVotes, len(voters))
	}
}

func TestCastRejections(t *testing.T) {
	repo := newMemoryVoteRepo()
	repo.addPoll(1, true, 10, 11)
	repo.addPoll(2, false, 20, 21)
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Cast(ctx, 99, 10, 100); err != ErrPollNotFound {
		t.Fatalf("expected ErrPollNotFound, got %v", err)
	}
	if _, err := svc.Cast(ctx, 2, 20, 100); err != ErrPollClosed {
		t.Fatalf("expected ErrPollClosed, got %v", err)
	}
	if _, err := svc.Cast(ctx, 1, 20, 100); err != ErrOptionNotInPoll {
		t.Fatalf("expected ErrOptionNotInPoll, got %v", err)
	}

	// Rejections leave the tallies untouched.
	_, total, err := repo.CountByPoll(ctx, 1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected no votes recorded, got %d", total)
	}
}

func TestUserVoteWhenNotVoted(t *testing.T) {
	repo := newMemoryVoteRepo()
	repo.addPoll(1, true, 10, 11)
	svc := NewService(repo)

	status, err := svc.UserVote(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("user vote: %v", err)
	}
	if status.HasVoted || status.OptionID != nil {
		t.Fatalf("expected has_voted=false, got %+v", status)
	}
}
