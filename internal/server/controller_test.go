package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nee-commerce/backend/internal/models"
	pkgmdw "github.com/nee-commerce/backend/internal/server/middleware"
)

type fakeSync struct {
	product    *models.ResolvedProduct
	identifier string
}

func (f *fakeSync) Resolve(_ context.Context, identifier string) (*models.ResolvedProduct, error) {
	f.identifier = identifier
	if f.product == nil {
		return nil, models.ErrNotFound
	}
	return f.product, nil
}

type fakeCatalogUsecase struct {
	businesses []models.Business
}

func (f *fakeCatalogUsecase) ListBusinesses(_ context.Context) ([]models.Business, error) {
	return f.businesses, nil
}

func (f *fakeCatalogUsecase) GetBusiness(_ context.Context, slug string) (*models.Business, error) {
	for i := range f.businesses {
		if f.businesses[i].Slug == slug {
			return &f.businesses[i], nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeOrders struct {
	checkoutResp *models.CheckoutResponse
}

func (f *fakeOrders) Checkout(_ context.Context, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
	return f.checkoutResp, nil
}

func (f *fakeOrders) RecordOrder(_ context.Context, req models.OrderCreate) (*models.Order, error) {
	return &models.Order{ID: "ORD-1"}, nil
}

func (f *fakeOrders) ListOrders(_ context.Context) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeOrders) ConfirmPayment(_ context.Context, reference string) (*models.Order, error) {
	return nil, models.ErrNotFound
}

func newTestServer(sync *fakeSync, orders *fakeOrders) *echo.Echo {
	e := echo.New()
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = errorHandler()

	handler := NewController(&fakeCatalogUsecase{}, sync, orders)
	api := e.Group("/api/v1")
	api.GET("/sync/*", handler.SyncProduct)
	api.POST("/checkout", handler.Checkout)
	return e
}

func TestSyncEndpointPassesFullIdentifier(t *testing.T) {
	sync := &fakeSync{product: &models.ResolvedProduct{
		Product:      models.Product{Code: "HERB001", Name: "Slim Tea Detox", Price: 5000},
		BusinessName: "Apinke Herbs",
		BusinessSlug: "apinke-herbs",
	}}
	e := newTestServer(sync, &fakeOrders{})

	// Identifiers can be URLs; the wildcard must hand over the slashes.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/https://wa.me/p/24596434279999779/2348027550551", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://wa.me/p/24596434279999779/2348027550551", sync.identifier)

	var product models.ResolvedProduct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Equal(t, "HERB001", product.Code)
	assert.Equal(t, "Apinke Herbs", product.BusinessName)
}

func TestSyncEndpointNotFound(t *testing.T) {
	e := newTestServer(&fakeSync{}, &fakeOrders{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/ZZZZZ", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Check the code or link")
}

func TestCheckoutValidation(t *testing.T) {
	e := newTestServer(&fakeSync{}, &fakeOrders{checkoutResp: &models.CheckoutResponse{
		Status:  "success",
		OrderID: "ORD-1700000000",
		Total:   16000,
	}})

	// Missing items and a bad email must be rejected before the usecase.
	body := `{"customer_name":"John","customer_email":"not-an-email","customer_phone":"+234","items":[],"total_amount":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutSuccess(t *testing.T) {
	e := newTestServer(&fakeSync{}, &fakeOrders{checkoutResp: &models.CheckoutResponse{
		Status:  "success",
		OrderID: "ORD-1700000000",
		Total:   16000,
	}})

	body := `{
		"customer_name": "John Doe",
		"customer_email": "john@example.com",
		"customer_phone": "+2348123456789",
		"items": [{"code":"HERB001","name":"Slim Tea Detox","price":5000,"quantity":2,"business_name":"Apinke Herbs","business_slug":"apinke-herbs"}],
		"total_amount": 16000,
		"payment_method": "card"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ORD-1700000000", resp.OrderID)
}
