package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/api/view"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

const (
	vehicleMissingNotice = "Sorry, the vehicle associated with this review could not be found."
	reviewLoginNotice    = "You must be logged in to submit a review."
	submitFailedNotice   = "Sorry, the review submission failed."
	reviewUpdateFailed   = "Sorry, the review update failed."
	notOwnReviewNotice   = "You are not authorized to edit that review."
	reviewMissingNotice  = "Review not found."
)

// ReviewHandler serves review submission and editing.
type ReviewHandler struct {
	inventory ports.InventoryService
	reviews   ports.ReviewService
	validator *FormValidator
	log       zerolog.Logger
}

func NewReviewHandler(inventory ports.InventoryService, reviews ports.ReviewService, validator *FormValidator, log zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{inventory: inventory, reviews: reviews, validator: validator, log: log}
}

func (h *ReviewHandler) SubmitRules() echo.MiddlewareFunc {
	return Validate[reviewForm](h.validator, "review_submit", h.submitInvalid)
}

func (h *ReviewHandler) UpdateRules() echo.MiddlewareFunc {
	return Validate[reviewUpdateForm](h.validator, "review_update", h.updateInvalid)
}

// Submit handles POST /review/submit.
func (h *ReviewHandler) Submit(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	f := formFrom[*reviewForm](c)
	if f.AccountID != claims.AccountID {
		middleware.AddNotice(c, reviewLoginNotice)
		return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	}

	ctx := c.Request().Context()
	vehicle, err := h.inventory.Vehicle(ctx, f.VehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			middleware.AddNotice(c, vehicleMissingNotice)
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return fmt.Errorf("load vehicle %d: %w", f.VehicleID, err)
	}

	if _, err := h.reviews.Submit(ctx, ports.SubmitReviewInput{
		VehicleID: f.VehicleID,
		AccountID: claims.AccountID,
		Rating:    f.rating(),
		Text:      f.Text,
	}); err != nil {
		metrics.ReviewsTotal.WithLabelValues("submit", "error").Inc()
		h.log.Error().Err(err).Uint("inv_id", f.VehicleID).Msg("review submission failed")
		middleware.AddNotice(c, submitFailedNotice)
		return renderVehicle(c, h.inventory, h.reviews, http.StatusNotImplemented, f.VehicleID, &view.Page{Form: f})
	}

	metrics.ReviewsTotal.WithLabelValues("submit", "ok").Inc()
	middleware.AddNotice(c, fmt.Sprintf("Review submitted successfully for the %s.", vehicle.Title()))
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/inv/detail/%d", vehicle.ID))
}

// EditView handles GET /review/edit/:reviewId. Only the author may edit.
func (h *ReviewHandler) EditView(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, ok := pathID(c, "reviewId")
	if !ok {
		middleware.AddNotice(c, reviewMissingNotice)
		return c.Redirect(http.StatusSeeOther, accountHome)
	}

	review, err := h.reviews.Owned(c.Request().Context(), id, claims.AccountID)
	if err != nil {
		return h.ownershipFailure(c, err)
	}

	return c.Render(http.StatusOK, "review/edit", &view.Page{
		Title: "Edit Review",
		Form: &reviewUpdateForm{
			ReviewID: review.ID,
			Rating:   strconv.Itoa(review.Rating),
			Text:     review.Text,
		},
		Data: review,
	})
}

// Update handles POST /review/update.
func (h *ReviewHandler) Update(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	f := formFrom[*reviewUpdateForm](c)

	_, err = h.reviews.Update(c.Request().Context(), ports.UpdateReviewInput{
		ReviewID:  f.ReviewID,
		AccountID: claims.AccountID,
		Rating:    f.rating(),
		Text:      f.Text,
	})
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrReviewNotFound) {
			return h.ownershipFailure(c, err)
		}
		metrics.ReviewsTotal.WithLabelValues("update", "error").Inc()
		h.log.Error().Err(err).Uint("review_id", f.ReviewID).Msg("review update failed")
		middleware.AddNotice(c, reviewUpdateFailed)
		return c.Render(http.StatusNotImplemented, "review/edit", &view.Page{Title: "Edit Review", Form: f})
	}

	metrics.ReviewsTotal.WithLabelValues("update", "ok").Inc()
	middleware.AddNotice(c, "Review updated successfully.")
	return c.Redirect(http.StatusSeeOther, accountHome)
}

// submitInvalid re-renders the vehicle page with the submitted values. A
// review for an unknown vehicle has no page to return to.
func (h *ReviewHandler) submitInvalid(c echo.Context, f *reviewForm, errs domain.ValidationErrors) error {
	if f.VehicleID == 0 {
		middleware.AddNotice(c, vehicleMissingNotice)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	err := renderVehicle(c, h.inventory, h.reviews, http.StatusBadRequest, f.VehicleID, &view.Page{Form: f, Errors: errs})
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusNotFound {
		middleware.AddNotice(c, vehicleMissingNotice)
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return err
}

func (h *ReviewHandler) updateInvalid(c echo.Context, f *reviewUpdateForm, errs domain.ValidationErrors) error {
	return c.Render(http.StatusBadRequest, "review/edit", &view.Page{Title: "Edit Review", Form: f, Errors: errs})
}

func (h *ReviewHandler) ownershipFailure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		middleware.AddNotice(c, notOwnReviewNotice)
	case errors.Is(err, domain.ErrReviewNotFound):
		middleware.AddNotice(c, reviewMissingNotice)
	default:
		return fmt.Errorf("load review: %w", err)
	}
	return c.Redirect(http.StatusSeeOther, accountHome)
}
