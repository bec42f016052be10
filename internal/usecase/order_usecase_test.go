package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nee-commerce/backend/internal/models"
	"github.com/nee-commerce/backend/internal/repo/paystack"
)

type fakeOrderRepo struct {
	orders []models.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = "ORD-1700000000"
	}
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			return &f.orders[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeOrderRepo) List(_ context.Context) ([]models.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			return nil
		}
	}
	return models.ErrNotFound
}

type fakeGateway struct {
	enabled  bool
	initErr  error
	verified string
	inits    []paystack.InitializeRequest
}

func (f *fakeGateway) Enabled() bool { return f.enabled }

func (f *fakeGateway) InitializeTransaction(_ context.Context, req paystack.InitializeRequest) (*paystack.Transaction, error) {
	f.inits = append(f.inits, req)
	if f.initErr != nil {
		return nil, f.initErr
	}
	return &paystack.Transaction{
		AuthorizationURL: "https://checkout.paystack.com/abc123",
		AccessCode:       "abc123",
		Reference:        req.Reference,
	}, nil
}

func (f *fakeGateway) VerifyTransaction(_ context.Context, reference string) (*paystack.Transaction, error) {
	return &paystack.Transaction{Reference: reference, Status: f.verified}, nil
}

type fakePublisher struct {
	published []string
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, order *models.Order) {
	f.published = append(f.published, order.ID)
}

func (f *fakePublisher) Close() error { return nil }

func checkoutFixture() models.CheckoutRequest {
	return models.CheckoutRequest{
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		CustomerPhone: "+2348123456789",
		Items: []models.CartItem{
			{Code: "HERB001", WhatsappID: "24596434279999779", Name: "Slim Tea Detox", Price: 5000, Quantity: 2, BusinessName: "Apinke Herbs", BusinessSlug: "apinke-herbs"},
			{Code: "HERB003", Name: "Natural Honey", Price: 6000, Quantity: 1, BusinessName: "Apinke Herbs", BusinessSlug: "apinke-herbs"},
		},
		TotalAmount:   16000,
		PaymentMethod: "card",
	}
}

func TestCheckoutWithoutGateway(t *testing.T) {
	repo := &fakeOrderRepo{}
	publisher := &fakePublisher{}
	orders := NewOrderUsecase(repo, NewSyncUsecase(fixtureCatalog(), &fakeScraper{}), &fakeGateway{}, publisher)

	resp, err := orders.Checkout(context.Background(), checkoutFixture())
	require.NoError(t, err)

	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, float64(16000), resp.Total)
	assert.Empty(t, resp.PaymentURL)

	require.Len(t, repo.orders, 1)
	order := repo.orders[0]
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.Equal(t, "card", order.PaymentMethod)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "HERB001", order.Items[0].ProductCode)
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.Equal(t, []string{order.ID}, publisher.published)
}

func TestCheckoutWithGateway(t *testing.T) {
	repo := &fakeOrderRepo{}
	gateway := &fakeGateway{enabled: true}
	orders := NewOrderUsecase(repo, NewSyncUsecase(fixtureCatalog(), &fakeScraper{}), gateway, &fakePublisher{})

	resp, err := orders.Checkout(context.Background(), checkoutFixture())
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.paystack.com/abc123", resp.PaymentURL)
	require.Len(t, gateway.inits, 1)
	assert.Equal(t, "john@example.com", gateway.inits[0].Email)
	assert.Equal(t, float64(16000), gateway.inits[0].AmountNaira)

	require.Len(t, repo.orders, 1)
	assert.Equal(t, models.OrderStatusPending, repo.orders[0].Status)
	assert.NotEmpty(t, repo.orders[0].PaymentRef)
}

func TestCheckoutDefaultsPaymentMethod(t *testing.T) {
	repo := &fakeOrderRepo{}
	orders := NewOrderUsecase(repo, NewSyncUsecase(fixtureCatalog(), &fakeScraper{}), &fakeGateway{}, &fakePublisher{})

	req := checkoutFixture()
	req.PaymentMethod = ""
	_, err := orders.Checkout(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "card", repo.orders[0].PaymentMethod)
}

func TestRecordOrderResolvesItems(t *testing.T) {
	repo := &fakeOrderRepo{}
	orders := NewOrderUsecase(repo, NewSyncUsecase(fixtureCatalog(), &fakeScraper{}), &fakeGateway{}, &fakePublisher{})

	order, err := orders.RecordOrder(context.Background(), models.OrderCreate{
		CustomerName:     "Ada",
		CustomerWhatsapp: "+2348027550551",
		Items: []models.OrderCreateItem{
			{Code: "HERB001", Quantity: 3},
			{Code: "NOPE99", Quantity: 1},
		},
		TotalAmount: 15000,
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Slim Tea Detox", order.Items[0].Name)
	assert.Equal(t, float64(5000), order.Items[0].Price)
	assert.Equal(t, "Apinke Herbs", order.Items[0].BusinessName)
	// Unknown codes stay as bare line items.
	assert.Equal(t, "NOPE99", order.Items[1].ProductCode)
	assert.Empty(t, order.Items[1].Name)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestConfirmPayment(t *testing.T) {
	repo := &fakeOrderRepo{orders: []models.Order{
		{ID: "ORD-1", PaymentRef: "ref-1", Status: models.OrderStatusPending},
	}}
	gateway := &fakeGateway{enabled: true, verified: "success"}
	orders := NewOrderUsecase(repo, NewSyncUsecase(fixtureCatalog(), &fakeScraper{}), gateway, &fakePublisher{})

	order, err := orders.ConfirmPayment(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.Equal(t, models.OrderStatusCompleted, repo.orders[0].Status)

	_, err = orders.ConfirmPayment(context.Background(), "ref-unknown")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestConfirmPaymentFailedTransaction(t *testing.T) {
	repo := &fakeOrderRepo{orders: []models.Order{
		{ID: "ORD-2", PaymentRef: "ref-2", Status: models.OrderStatusPending},
	}}
	gateway := &fakeGateway{enabled: true, verified: "failed"}
	orders := NewOrderUsecase(repo, NewSyncUsecase(fixtureCatalog(), &fakeScraper{}), gateway, &fakePublisher{})

	order, err := orders.ConfirmPayment(context.Background(), "ref-2")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFailed, order.Status)
}
