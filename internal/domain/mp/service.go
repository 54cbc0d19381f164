package mp

import (
	"context"
	"errors"
)

var (
	ErrMPNotFound   = errors.New("mp not found")
	ErrUserNotFound = errors.New("user not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Assign links a user to an MP record. The MP must exist before the user row
// is touched so a bad mp_id reads as 404, not a constraint failure.
func (s *Service) Assign(ctx context.Context, userID, mpID int64) error {
	if _, err := s.repo.GetByID(ctx, mpID); err != nil {
		return err
	}
	return s.repo.AssignUser(ctx, userID, mpID)
}

func (s *Service) List(ctx context.Context) ([]MP, error) {
	return s.repo.List(ctx)
}
