package patient

import (
	"context"
	"fmt"
)

// Service wraps the repository with input validation.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Row, int, error) {
	if limit <= 0 {
		return nil, 0, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if offset < 0 {
		return nil, 0, fmt.Errorf("offset must not be negative, got %d", offset)
	}
	return s.repo.List(ctx, limit, offset)
}
