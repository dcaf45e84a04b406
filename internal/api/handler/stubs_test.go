package handler

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/view"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

type stubAccountService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	getFn            func(ctx context.Context, id uint) (*domain.Account, error)
	updateProfileFn  func(ctx context.Context, in ports.UpdateProfileInput) (*ports.LoginResult, error)
	changePasswordFn func(ctx context.Context, id uint, password string) error
}

func (s *stubAccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) Get(ctx context.Context, id uint) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *stubAccountService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*ports.LoginResult, error) {
	return s.updateProfileFn(ctx, in)
}

func (s *stubAccountService) ChangePassword(ctx context.Context, id uint, password string) error {
	return s.changePasswordFn(ctx, id, password)
}

func (s *stubAccountService) EmailAvailable(context.Context, string, uint) (bool, error) {
	return true, nil
}

type stubInventoryService struct {
	byClassificationFn func(ctx context.Context, id uint) (*domain.Classification, []domain.Vehicle, error)
	vehicleFn          func(ctx context.Context, id uint) (*domain.Vehicle, error)
}

func (s *stubInventoryService) Classifications(context.Context) ([]domain.Classification, error) {
	return []domain.Classification{{ID: 1, Name: "SUV"}}, nil
}

func (s *stubInventoryService) ByClassification(ctx context.Context, id uint) (*domain.Classification, []domain.Vehicle, error) {
	return s.byClassificationFn(ctx, id)
}

func (s *stubInventoryService) Vehicle(ctx context.Context, id uint) (*domain.Vehicle, error) {
	return s.vehicleFn(ctx, id)
}

type stubReviewService struct {
	forVehicleFn func(ctx context.Context, vehicleID uint) ([]domain.ReviewDetail, error)
	forAccountFn func(ctx context.Context, accountID uint) ([]domain.ReviewDetail, error)
	ownedFn      func(ctx context.Context, reviewID, accountID uint) (*domain.Review, error)
	submitFn     func(ctx context.Context, in ports.SubmitReviewInput) (*domain.Review, error)
	updateFn     func(ctx context.Context, in ports.UpdateReviewInput) (*domain.Review, error)
}

func (s *stubReviewService) ForVehicle(ctx context.Context, vehicleID uint) ([]domain.ReviewDetail, error) {
	if s.forVehicleFn == nil {
		return nil, nil
	}
	return s.forVehicleFn(ctx, vehicleID)
}

func (s *stubReviewService) ForAccount(ctx context.Context, accountID uint) ([]domain.ReviewDetail, error) {
	if s.forAccountFn == nil {
		return nil, nil
	}
	return s.forAccountFn(ctx, accountID)
}

func (s *stubReviewService) Owned(ctx context.Context, reviewID, accountID uint) (*domain.Review, error) {
	return s.ownedFn(ctx, reviewID, accountID)
}

func (s *stubReviewService) Submit(ctx context.Context, in ports.SubmitReviewInput) (*domain.Review, error) {
	return s.submitFn(ctx, in)
}

func (s *stubReviewService) Update(ctx context.Context, in ports.UpdateReviewInput) (*domain.Review, error) {
	return s.updateFn(ctx, in)
}

type stubHistory struct {
	recentFn func(ctx context.Context, accountID uint, limit int) ([]domain.Activity, error)
}

func (s *stubHistory) Recent(ctx context.Context, accountID uint, limit int) ([]domain.Activity, error) {
	if s.recentFn == nil {
		return nil, nil
	}
	return s.recentFn(ctx, accountID, limit)
}

type recordingActivity struct {
	records []domain.Activity
}

func (r *recordingActivity) Record(a domain.Activity) {
	r.records = append(r.records, a)
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	renderer, err := view.NewRenderer(&stubInventoryService{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e := echo.New()
	e.Renderer = renderer
	return e
}

func newFormCtx(e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
