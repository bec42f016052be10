package usecase

import (
	"context"
	"errors"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/google/uuid"

	"github.com/nee-commerce/backend/internal/kafka"
	"github.com/nee-commerce/backend/internal/models"
	"github.com/nee-commerce/backend/internal/repo/mongodb"
	"github.com/nee-commerce/backend/internal/repo/paystack"
	"github.com/nee-commerce/backend/pkg/util"
)

type orderUsecase struct {
	orderRepo mongodb.OrderRepository
	sync      SyncUsecase
	gateway   paystack.Client
	events    kafka.OrderEventPublisher
}

func NewOrderUsecase(
	orderRepo mongodb.OrderRepository,
	sync SyncUsecase,
	gateway paystack.Client,
	events kafka.OrderEventPublisher,
) OrderUsecase {
	return &orderUsecase{
		orderRepo: orderRepo,
		sync:      sync,
		gateway:   gateway,
		events:    events,
	}
}

// Checkout persists the order and, for card payments with the gateway
// configured, initializes a Paystack transaction the customer completes
// on the authorization page. Gateway-less checkouts are recorded as
// completed immediately, matching the flat-file era behavior.
func (u *orderUsecase) Checkout(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
	method := req.PaymentMethod
	if method == "" {
		method = "card"
	}

	order := &models.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: method,
		Status:        models.OrderStatusCompleted,
		Items: util.ConvertList(req.Items, func(item models.CartItem) models.OrderItem {
			return models.OrderItem{
				ProductCode:  item.Code,
				WhatsappID:   item.WhatsappID,
				Name:         item.Name,
				Price:        item.Price,
				Quantity:     item.Quantity,
				BusinessName: item.BusinessName,
				BusinessSlug: item.BusinessSlug,
			}
		}),
	}

	var paymentURL string
	if method == "card" && u.gateway.Enabled() {
		reference := uuid.NewString()
		tx, err := u.gateway.InitializeTransaction(ctx, paystack.InitializeRequest{
			Email:       req.CustomerEmail,
			AmountNaira: req.TotalAmount,
			Reference:   reference,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize payment: %w", err)
		}
		order.PaymentRef = tx.Reference
		order.Status = models.OrderStatusPending
		paymentURL = tx.AuthorizationURL
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	u.events.PublishOrderCreated(ctx, order)

	return &models.CheckoutResponse{
		Status:     "success",
		Message:    "Order processed successfully",
		OrderID:    order.ID,
		Total:      order.TotalAmount,
		PaymentURL: paymentURL,
	}, nil
}

// RecordOrder stores a manual WhatsApp order. Item codes are resolved
// against the catalog so the ledger carries prices and business context;
// unknown codes are kept as bare line items rather than rejected.
func (u *orderUsecase) RecordOrder(ctx context.Context, req models.OrderCreate) (*models.Order, error) {
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		orderItem := models.OrderItem{
			ProductCode: item.Code,
			Quantity:    item.Quantity,
		}
		if product, err := u.sync.Resolve(ctx, item.Code); err == nil {
			orderItem.WhatsappID = product.WhatsappID
			orderItem.Name = product.Name
			orderItem.Price = product.Price
			orderItem.BusinessName = product.BusinessName
			orderItem.BusinessSlug = product.BusinessSlug
		} else if !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("resolve item %q: %w", item.Code, err)
		}
		items = append(items, orderItem)
	}

	order := &models.Order{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerWhatsapp,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: "whatsapp",
		Status:        models.OrderStatusPending,
		Items:         items,
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	u.events.PublishOrderCreated(ctx, order)
	return order, nil
}

func (u *orderUsecase) ListOrders(ctx context.Context) ([]models.Order, error) {
	return u.orderRepo.List(ctx)
}

// ConfirmPayment verifies a gateway reference and settles the matching
// order. Called from the payment callback.
func (u *orderUsecase) ConfirmPayment(ctx context.Context, reference string) (*models.Order, error) {
	orders, err := u.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var order *models.Order
	for i := range orders {
		if orders[i].PaymentRef == reference {
			order = &orders[i]
			break
		}
	}
	if order == nil {
		return nil, models.ErrNotFound
	}

	tx, err := u.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}

	status := models.OrderStatusFailed
	if tx.Status == "success" {
		status = models.OrderStatusCompleted
	}
	if err := u.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = status

	log.Infow(ctx, "payment confirmed", "order_id", order.ID, "status", status)
	return order, nil
}
