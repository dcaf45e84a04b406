package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

type InventoryRepository interface {
	Classifications(ctx context.Context) ([]domain.Classification, error)
	ClassificationByID(ctx context.Context, id uint) (*domain.Classification, error)
	VehiclesByClassification(ctx context.Context, classificationID uint) ([]domain.Vehicle, error)
	VehicleByID(ctx context.Context, id uint) (*domain.Vehicle, error)
}

type InventoryService interface {
	Classifications(ctx context.Context) ([]domain.Classification, error)
	// ByClassification returns the classification and its vehicles. It
	// fails with domain.ErrClassificationNotFound when there are none.
	ByClassification(ctx context.Context, classificationID uint) (*domain.Classification, []domain.Vehicle, error)
	Vehicle(ctx context.Context, id uint) (*domain.Vehicle, error)
}
