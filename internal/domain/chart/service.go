package chart

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

func (s *Service) GetChart(ctx context.Context, patientNum int64) (*ChartRow, error) {
	if patientNum <= 0 {
		return nil, fmt.Errorf("patient number must be positive, got %d", patientNum)
	}
	return s.repo.GetChart(ctx, patientNum)
}

func (s *Service) GetEncounterDetail(ctx context.Context, patientNum, encounterNum int64) (*EncounterDetailRow, error) {
	if patientNum <= 0 {
		return nil, fmt.Errorf("patient number must be positive, got %d", patientNum)
	}
	if encounterNum <= 0 {
		return nil, fmt.Errorf("encounter number must be positive, got %d", encounterNum)
	}
	return s.repo.GetEncounterDetail(ctx, patientNum, encounterNum)
}
