package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

type stubInventoryRepo struct {
	classes  map[uint]*domain.Classification
	vehicles map[uint]*domain.Vehicle
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{
		classes: map[uint]*domain.Classification{
			1: {ID: 1, Name: "SUV"},
			2: {ID: 2, Name: "Truck"},
		},
		vehicles: map[uint]*domain.Vehicle{
			10: {ID: 10, Make: "Jeep", Model: "Wrangler", ClassificationID: 1},
		},
	}
}

func (r *stubInventoryRepo) Classifications(_ context.Context) ([]domain.Classification, error) {
	return []domain.Classification{*r.classes[1], *r.classes[2]}, nil
}

func (r *stubInventoryRepo) ClassificationByID(_ context.Context, id uint) (*domain.Classification, error) {
	if c, ok := r.classes[id]; ok {
		return c, nil
	}
	return nil, domain.ErrClassificationNotFound
}

func (r *stubInventoryRepo) VehiclesByClassification(_ context.Context, id uint) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	for _, v := range r.vehicles {
		if v.ClassificationID == id {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) VehicleByID(_ context.Context, id uint) (*domain.Vehicle, error) {
	if v, ok := r.vehicles[id]; ok {
		return v, nil
	}
	return nil, domain.ErrVehicleNotFound
}

type stubReviewRepo struct {
	reviews map[uint]*domain.Review
	nextID  uint
	err     error
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[uint]*domain.Review), nextID: 1}
}

func (r *stubReviewRepo) ByVehicle(_ context.Context, vehicleID uint) ([]domain.ReviewDetail, error) {
	var out []domain.ReviewDetail
	for _, rv := range r.reviews {
		if rv.VehicleID == vehicleID {
			out = append(out, domain.ReviewDetail{Review: *rv})
		}
	}
	return out, nil
}

func (r *stubReviewRepo) ByAccount(_ context.Context, accountID uint) ([]domain.ReviewDetail, error) {
	var out []domain.ReviewDetail
	for _, rv := range r.reviews {
		if rv.AccountID == accountID {
			out = append(out, domain.ReviewDetail{Review: *rv})
		}
	}
	return out, nil
}

func (r *stubReviewRepo) ByID(_ context.Context, id uint) (*domain.Review, error) {
	if rv, ok := r.reviews[id]; ok {
		clone := *rv
		return &clone, nil
	}
	return nil, domain.ErrReviewNotFound
}

func (r *stubReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if r.err != nil {
		return nil, r.err
	}
	stored := *review
	stored.ID = r.nextID
	r.nextID++
	r.reviews[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubReviewRepo) Update(_ context.Context, id uint, text string, rating int) error {
	if r.err != nil {
		return r.err
	}
	rv, ok := r.reviews[id]
	if !ok {
		return domain.ErrReviewNotFound
	}
	rv.Text, rv.Rating = text, rating
	return nil
}

func newReviewSvc() (*ReviewService, *stubReviewRepo) {
	repo := newStubReviewRepo()
	return NewReviewService(repo, newStubInventoryRepo(), zerolog.Nop()), repo
}

func TestReviewService_Submit(t *testing.T) {
	svc, repo := newReviewSvc()

	created, err := svc.Submit(context.Background(), ports.SubmitReviewInput{
		VehicleID: 10, AccountID: 3, Rating: 4, Text: "  Great off-road.  ",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if created.Text != "Great off-road." {
		t.Fatalf("expected trimmed text, got %q", created.Text)
	}
	if len(repo.reviews) != 1 {
		t.Fatalf("expected review stored")
	}
}

func TestReviewService_Submit_UnknownVehicle(t *testing.T) {
	svc, _ := newReviewSvc()

	_, err := svc.Submit(context.Background(), ports.SubmitReviewInput{VehicleID: 99, AccountID: 3, Rating: 4, Text: "Great off-road."})
	if !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestReviewService_Submit_RatingOutOfRange(t *testing.T) {
	svc, _ := newReviewSvc()

	for _, rating := range []int{0, 6} {
		if _, err := svc.Submit(context.Background(), ports.SubmitReviewInput{VehicleID: 10, AccountID: 3, Rating: rating, Text: "Great off-road."}); err == nil {
			t.Fatalf("rating %d: expected error", rating)
		}
	}
}

func TestReviewService_Update_OwnerOnly(t *testing.T) {
	svc, repo := newReviewSvc()
	created, _ := svc.Submit(context.Background(), ports.SubmitReviewInput{VehicleID: 10, AccountID: 3, Rating: 4, Text: "Great off-road."})

	_, err := svc.Update(context.Background(), ports.UpdateReviewInput{ReviewID: created.ID, AccountID: 4, Rating: 1, Text: "Hijacked review!"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(context.Background(), ports.UpdateReviewInput{ReviewID: created.ID, AccountID: 3, Rating: 5, Text: "Even better now."})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Rating != 5 || repo.reviews[created.ID].Text != "Even better now." {
		t.Fatalf("expected stored review updated, got %+v", repo.reviews[created.ID])
	}
}

func TestReviewService_Owned_NotFound(t *testing.T) {
	svc, _ := newReviewSvc()

	if _, err := svc.Owned(context.Background(), 42, 3); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}

func TestInventoryService_ByClassification(t *testing.T) {
	svc := NewInventoryService(newStubInventoryRepo())

	class, vehicles, err := svc.ByClassification(context.Background(), 1)
	if err != nil {
		t.Fatalf("ByClassification returned error: %v", err)
	}
	if class.Name != "SUV" || len(vehicles) != 1 {
		t.Fatalf("unexpected result: %+v %v", class, vehicles)
	}

	if _, _, err := svc.ByClassification(context.Background(), 2); !errors.Is(err, domain.ErrClassificationNotFound) {
		t.Fatalf("expected empty classification to be not found, got %v", err)
	}
	if _, _, err := svc.ByClassification(context.Background(), 9); !errors.Is(err, domain.ErrClassificationNotFound) {
		t.Fatalf("expected unknown classification to be not found, got %v", err)
	}
}
