// Package report computes the aggregated metrics behind the admin overview.
package report

import "context"

type BatchCount struct {
	Batch string `json:"batch"`
	Users int64  `json:"users"`
}

type Overview struct {
	TotalUsers  int64        `json:"total_users"`
	ActiveUsers int64        `json:"active_users"`
	Batches     []BatchCount `json:"batches"`
	TotalPolls  int64        `json:"total_polls"`
	OpenPolls   int64        `json:"open_polls"`
	TotalVotes  int64        `json:"total_votes"`
}

type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	return s.repo.Overview(ctx)
}
