package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nee-commerce/backend/internal/models"
	"github.com/nee-commerce/backend/internal/usecase"
)

// syncNotFoundMessage is what shoppers see when a code or link resolves
// to nothing; kept stable because the frontend string-matches it.
const syncNotFoundMessage = "Product not found. Check the code or link and try again."

type Controller interface {
	Health(c echo.Context) error
	ListBusinesses(c echo.Context) error
	GetBusiness(c echo.Context) error
	SyncProduct(c echo.Context) error
	Checkout(c echo.Context) error
	ListOrders(c echo.Context) error
	CreateOrder(c echo.Context) error
	ConfirmPayment(c echo.Context) error
}

type controller struct {
	catalog usecase.CatalogUsecase
	sync    usecase.SyncUsecase
	orders  usecase.OrderUsecase
}

func NewController(
	catalog usecase.CatalogUsecase,
	sync usecase.SyncUsecase,
	orders usecase.OrderUsecase,
) Controller {
	return &controller{
		catalog: catalog,
		sync:    sync,
		orders:  orders,
	}
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *controller) ListBusinesses(c echo.Context) error {
	businesses, err := h.catalog.ListBusinesses(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, businesses)
}

func (h *controller) GetBusiness(c echo.Context) error {
	business, err := h.catalog.GetBusiness(c.Request().Context(), c.Param("slug"))
	if errors.Is(err, models.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "business not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, business)
}

// SyncProduct is the sync station endpoint. The identifier is a wildcard
// path segment because it may itself be a URL with slashes.
func (h *controller) SyncProduct(c echo.Context) error {
	identifier := c.Param("*")
	if identifier == "" {
		identifier = c.Param("identifier")
	}

	product, err := h.sync.Resolve(c.Request().Context(), identifier)
	if errors.Is(err, models.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, syncNotFoundMessage)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *controller) Checkout(c echo.Context) error {
	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.orders.Checkout(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Checkout failed: "+err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *controller) ListOrders(c echo.Context) error {
	orders, err := h.orders.ListOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *controller) CreateOrder(c echo.Context) error {
	var req models.OrderCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.RecordOrder(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save order")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "success",
		"message":  "Order recorded successfully",
		"order_id": order.ID,
	})
}

func (h *controller) ConfirmPayment(c echo.Context) error {
	reference := c.QueryParam("reference")
	if reference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing reference")
	}

	order, err := h.orders.ConfirmPayment(c.Request().Context(), reference)
	if errors.Is(err, models.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown payment reference")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
