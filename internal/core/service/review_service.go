package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// ReviewService handles customer reviews of inventory vehicles.
type ReviewService struct {
	reviews   ports.ReviewRepository
	inventory ports.InventoryRepository
	log       zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, inventory ports.InventoryRepository, log zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, inventory: inventory, log: log}
}

func (s *ReviewService) ForVehicle(ctx context.Context, vehicleID uint) ([]domain.ReviewDetail, error) {
	return s.reviews.ByVehicle(ctx, vehicleID)
}

func (s *ReviewService) ForAccount(ctx context.Context, accountID uint) ([]domain.ReviewDetail, error) {
	return s.reviews.ByAccount(ctx, accountID)
}

func (s *ReviewService) Owned(ctx context.Context, reviewID, accountID uint) (*domain.Review, error) {
	review, err := s.reviews.ByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.AccountID != accountID {
		return nil, domain.ErrForbidden
	}
	return review, nil
}

func (s *ReviewService) Submit(ctx context.Context, in ports.SubmitReviewInput) (*domain.Review, error) {
	if err := validRating(in.Rating); err != nil {
		return nil, err
	}
	if _, err := s.inventory.VehicleByID(ctx, in.VehicleID); err != nil {
		return nil, err
	}

	created, err := s.reviews.Create(ctx, &domain.Review{
		Text:      strings.TrimSpace(in.Text),
		Rating:    in.Rating,
		VehicleID: in.VehicleID,
		AccountID: in.AccountID,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("review_id", created.ID).
		Uint("inv_id", created.VehicleID).
		Uint("account_id", created.AccountID).
		Msg("review submitted")
	return created, nil
}

func (s *ReviewService) Update(ctx context.Context, in ports.UpdateReviewInput) (*domain.Review, error) {
	if err := validRating(in.Rating); err != nil {
		return nil, err
	}
	review, err := s.Owned(ctx, in.ReviewID, in.AccountID)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(in.Text)
	if err := s.reviews.Update(ctx, review.ID, text, in.Rating); err != nil {
		return nil, err
	}

	review.Text = text
	review.Rating = in.Rating
	return review, nil
}

func validRating(r int) error {
	if r < domain.MinReviewRating || r > domain.MaxReviewRating {
		return fmt.Errorf("rating %d out of range", r)
	}
	return nil
}
