package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

type ReviewRepository interface {
	ByVehicle(ctx context.Context, vehicleID uint) ([]domain.ReviewDetail, error)
	ByAccount(ctx context.Context, accountID uint) ([]domain.ReviewDetail, error)
	ByID(ctx context.Context, id uint) (*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	Update(ctx context.Context, id uint, text string, rating int) error
}

type SubmitReviewInput struct {
	VehicleID uint
	AccountID uint
	Rating    int
	Text      string
}

type UpdateReviewInput struct {
	ReviewID  uint
	AccountID uint
	Rating    int
	Text      string
}

type ReviewService interface {
	ForVehicle(ctx context.Context, vehicleID uint) ([]domain.ReviewDetail, error)
	ForAccount(ctx context.Context, accountID uint) ([]domain.ReviewDetail, error)
	// Owned returns the review if accountID wrote it, domain.ErrForbidden
	// otherwise.
	Owned(ctx context.Context, reviewID, accountID uint) (*domain.Review, error)
	Submit(ctx context.Context, in SubmitReviewInput) (*domain.Review, error)
	Update(ctx context.Context, in UpdateReviewInput) (*domain.Review, error)
}
