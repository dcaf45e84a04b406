package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/api/view"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// LostPageMessage is shown for any inventory page that does not exist.
const LostPageMessage = "Sorry, we appear to have lost that page."

// InventoryHandler serves the home page and the /inv pages.
type InventoryHandler struct {
	inventory ports.InventoryService
	reviews   ports.ReviewService
}

func NewInventoryHandler(inventory ports.InventoryService, reviews ports.ReviewService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, reviews: reviews}
}

// detailData is the payload of the vehicle detail page.
type detailData struct {
	Vehicle *domain.Vehicle
	Reviews []domain.ReviewDetail
}

// Home handles GET /.
func (h *InventoryHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "index", &view.Page{Title: "Home"})
}

// ByClassification handles GET /inv/type/:classificationId. A classification
// without vehicles is reported as missing.
func (h *InventoryHandler) ByClassification(c echo.Context) error {
	id, ok := pathID(c, "classificationId")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, LostPageMessage)
	}

	class, vehicles, err := h.inventory.ByClassification(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrClassificationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, LostPageMessage)
		}
		return fmt.Errorf("list classification %d: %w", id, err)
	}

	return c.Render(http.StatusOK, "inventory/classification", &view.Page{
		Title: class.Name + " Vehicles",
		Data:  vehicles,
	})
}

// Detail handles GET /inv/detail/:invId.
func (h *InventoryHandler) Detail(c echo.Context) error {
	id, ok := pathID(c, "invId")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, LostPageMessage)
	}
	return renderVehicle(c, h.inventory, h.reviews, http.StatusOK, id, &view.Page{})
}

// Management handles GET /inv/. Mounted behind RequireRole(Admin, Employee).
func (h *InventoryHandler) Management(c echo.Context) error {
	return c.Render(http.StatusOK, "inventory/management", &view.Page{Title: "Vehicle Management"})
}

// renderVehicle renders the detail page of vehicleID into page, keeping any
// form values and errors already set on it.
func renderVehicle(c echo.Context, inventory ports.InventoryService, reviews ports.ReviewService, code int, vehicleID uint, page *view.Page) error {
	ctx := c.Request().Context()

	vehicle, err := inventory.Vehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, LostPageMessage)
		}
		return fmt.Errorf("load vehicle %d: %w", vehicleID, err)
	}

	list, err := reviews.ForVehicle(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("list vehicle reviews: %w", err)
	}

	page.Title = vehicle.Year + " " + vehicle.Title()
	page.Data = detailData{Vehicle: vehicle, Reviews: list}
	return c.Render(code, "inventory/detail", page)
}
