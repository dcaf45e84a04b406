package service

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// InventoryService exposes read-only inventory browsing.
type InventoryService struct {
	repo ports.InventoryRepository
}

func NewInventoryService(repo ports.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

func (s *InventoryService) Classifications(ctx context.Context) ([]domain.Classification, error) {
	return s.repo.Classifications(ctx)
}

func (s *InventoryService) ByClassification(ctx context.Context, classificationID uint) (*domain.Classification, []domain.Vehicle, error) {
	class, err := s.repo.ClassificationByID(ctx, classificationID)
	if err != nil {
		return nil, nil, err
	}
	vehicles, err := s.repo.VehiclesByClassification(ctx, classificationID)
	if err != nil {
		return nil, nil, err
	}
	if len(vehicles) == 0 {
		return class, nil, domain.ErrClassificationNotFound
	}
	return class, vehicles, nil
}

func (s *InventoryService) Vehicle(ctx context.Context, id uint) (*domain.Vehicle, error) {
	return s.repo.VehicleByID(ctx, id)
}
