package poll

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("poll not found")
	ErrNotOwner        = errors.New("requester does not own this poll")
	ErrEmptyQuestion   = errors.New("question required")
	ErrTooFewOptions   = errors.New("poll must have at least 2 options")
	ErrEmptyOption     = errors.New("option text required")
	ErrDuplicateOption = errors.New("duplicate option text")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a poll with its options in one transaction.
// Option texts are trimmed; empty or duplicate texts are rejected rather
// than silently collapsed.
func (s *Service) Create(ctx context.Context, creatorID int64, question string, description *string, optionTexts []string) (*Detail, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	seen := make(map[string]bool, len(optionTexts))
	opts := make([]Option, 0, len(optionTexts))
	for _, text := range optionTexts {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, ErrEmptyOption
		}
		if seen[text] {
			return nil, ErrDuplicateOption
		}
		seen[text] = true
		opts = append(opts, Option{Text: text})
	}
	if len(opts) < 2 {
		return nil, ErrTooFewOptions
	}

	p := &Poll{
		Question:    question,
		Description: description,
		IsActive:    true,
		CreatedBy:   creatorID,
	}

	if err := s.repo.Create(ctx, p, opts); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, p.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all polls newest-first, with tallies.
func (s *Service) List(ctx context.Context) ([]Detail, error) {
	return s.repo.List(ctx)
}

// SetActive toggles the open/closed state. Only the creator may do this.
func (s *Service) SetActive(ctx context.Context, id, requesterID int64, active bool) error {
	if err := s.requireOwner(ctx, id, requesterID); err != nil {
		return err
	}
	return s.repo.SetActive(ctx, id, active)
}

// Delete removes a poll and cascades to its options and votes. Terminal:
// there is no undo. Only the creator may delete.
func (s *Service) Delete(ctx context.Context, id, requesterID int64) error {
	if err := s.requireOwner(ctx, id, requesterID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) requireOwner(ctx context.Context, id, requesterID int64) error {
	creator, err := s.repo.CreatorOf(ctx, id)
	if err != nil {
		return err
	}
	if creator != requesterID {
		return ErrNotOwner
	}
	return nil
}
