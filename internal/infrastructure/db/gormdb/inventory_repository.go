package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) ports.InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Classifications(ctx context.Context) ([]domain.Classification, error) {
	var out []domain.Classification
	if err := r.db.WithContext(ctx).Order("classification_name").Find(&out).Error; err != nil {
		return nil, translate(err, domain.ErrClassificationNotFound)
	}
	return out, nil
}

func (r *InventoryRepository) ClassificationByID(ctx context.Context, id uint) (*domain.Classification, error) {
	var c domain.Classification
	if err := r.db.WithContext(ctx).First(&c, "classification_id = ?", id).Error; err != nil {
		return nil, translate(err, domain.ErrClassificationNotFound)
	}
	return &c, nil
}

func (r *InventoryRepository) VehiclesByClassification(ctx context.Context, classificationID uint) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	err := r.db.WithContext(ctx).
		Where("classification_id = ?", classificationID).
		Order("inv_make, inv_model").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, domain.ErrClassificationNotFound)
	}
	return out, nil
}

func (r *InventoryRepository) VehicleByID(ctx context.Context, id uint) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).First(&v, "inv_id = ?", id).Error; err != nil {
		return nil, translate(err, domain.ErrVehicleNotFound)
	}
	return &v, nil
}
