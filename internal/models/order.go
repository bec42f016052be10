package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

// Order is one entry in the order ledger. IDs follow the historical
// "ORD-<unix>" scheme so older ledger exports stay readable.
type Order struct {
	ID            string      `bson:"_id" json:"id"`
	CustomerName  string      `bson:"customer_name" json:"customer_name"`
	CustomerEmail string      `bson:"customer_email" json:"customer_email"`
	CustomerPhone string      `bson:"customer_phone" json:"customer_phone"`
	TotalAmount   float64     `bson:"total_amount" json:"total_amount"`
	PaymentMethod string      `bson:"payment_method" json:"payment_method"`
	PaymentRef    string      `bson:"payment_ref,omitempty" json:"payment_ref,omitempty"`
	Status        OrderStatus `bson:"status" json:"status"`
	Items         []OrderItem `bson:"items" json:"items"`
	CreatedAt     time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `bson:"updated_at" json:"updated_at"`
}

type OrderItem struct {
	ProductCode  string  `bson:"product_code" json:"code"`
	WhatsappID   string  `bson:"whatsapp_id,omitempty" json:"whatsapp_id,omitempty"`
	Name         string  `bson:"name" json:"name"`
	Price        float64 `bson:"price" json:"price"`
	Quantity     int     `bson:"quantity" json:"quantity"`
	BusinessName string  `bson:"business_name" json:"business_name"`
	BusinessSlug string  `bson:"business_slug,omitempty" json:"business_slug,omitempty"`
}

// CheckoutRequest is the payload submitted from the cart page.
type CheckoutRequest struct {
	CustomerName  string     `json:"customer_name" validate:"required"`
	CustomerEmail string     `json:"customer_email" validate:"required,email"`
	CustomerPhone string     `json:"customer_phone" validate:"required"`
	Items         []CartItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount   float64    `json:"total_amount" validate:"gt=0"`
	PaymentMethod string     `json:"payment_method"`
}

type CartItem struct {
	Code         string  `json:"code" validate:"required"`
	WhatsappID   string  `json:"whatsapp_id,omitempty"`
	Name         string  `json:"name" validate:"required"`
	Price        float64 `json:"price" validate:"gte=0"`
	Quantity     int     `json:"quantity" validate:"gte=1"`
	BusinessName string  `json:"business_name"`
	BusinessSlug string  `json:"business_slug"`
}

// CheckoutResponse is returned once the order is in the ledger. The
// payment URL is only set for card checkouts routed through the gateway.
type CheckoutResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	OrderID    string  `json:"order_id"`
	Total      float64 `json:"total"`
	PaymentURL string  `json:"payment_url,omitempty"`
}

// OrderCreate records a manual order placed over WhatsApp.
type OrderCreate struct {
	CustomerName     string            `json:"customer_name" validate:"required"`
	CustomerWhatsapp string            `json:"customer_whatsapp" validate:"required"`
	Items            []OrderCreateItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount      float64           `json:"total_amount" validate:"gte=0"`
}

type OrderCreateItem struct {
	Code     string `json:"code" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

// OrderEvent is the payload published to the order events topic.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	TotalAmount float64   `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
