package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

const reviewDetailColumns = "r.*, a.account_firstname, a.account_lastname, i.inv_year, i.inv_make, i.inv_model"

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ports.ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("review AS r").
		Select(reviewDetailColumns).
		Joins("JOIN account AS a ON a.account_id = r.account_id").
		Joins("JOIN inventory AS i ON i.inv_id = r.inv_id").
		Order("r.review_date DESC, r.review_id DESC")
}

// ByVehicle lists a vehicle's reviews, newest first.
func (r *ReviewRepository) ByVehicle(ctx context.Context, vehicleID uint) ([]domain.ReviewDetail, error) {
	var out []domain.ReviewDetail
	if err := r.details(ctx).Where("r.inv_id = ?", vehicleID).Scan(&out).Error; err != nil {
		return nil, translate(err, domain.ErrReviewNotFound)
	}
	return out, nil
}

// ByAccount lists the reviews an account wrote, newest first.
func (r *ReviewRepository) ByAccount(ctx context.Context, accountID uint) ([]domain.ReviewDetail, error) {
	var out []domain.ReviewDetail
	if err := r.details(ctx).Where("r.account_id = ?", accountID).Scan(&out).Error; err != nil {
		return nil, translate(err, domain.ErrReviewNotFound)
	}
	return out, nil
}

func (r *ReviewRepository) ByID(ctx context.Context, id uint) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, "review_id = ?", id).Error; err != nil {
		return nil, translate(err, domain.ErrReviewNotFound)
	}
	return &rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	created := *review
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, translate(err, domain.ErrReviewNotFound)
	}
	return &created, nil
}

func (r *ReviewRepository) Update(ctx context.Context, id uint, text string, rating int) error {
	res := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("review_id = ?", id).
		Updates(map[string]any{"review_text": text, "review_rating": rating})
	if res.Error != nil {
		return translate(res.Error, domain.ErrReviewNotFound)
	}
	if res.RowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}
