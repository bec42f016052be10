// Package kafka publishes order lifecycle events for downstream
// analytics. Publishing is fire-and-forget from the checkout flow: a
// broker outage must never fail an order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/segmentio/kafka-go"

	"github.com/nee-commerce/backend/internal/config"
	"github.com/nee-commerce/backend/internal/models"
)

type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order)
	Close() error
}

type publisher struct {
	writer *kafka.Writer
}

// NewOrderEventPublisher returns a no-op publisher when no brokers are
// configured, so local development needs no Kafka.
func NewOrderEventPublisher(cfg *config.Config) OrderEventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		return &noopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 5 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return &publisher{writer: writer}
}

func (p *publisher) PublishOrderCreated(ctx context.Context, order *models.Order) {
	event := models.OrderEvent{
		Type:        "order.created",
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		Status:      string(order.Status),
		OccurredAt:  time.Now(),
	}

	if err := p.publish(ctx, order.ID, event); err != nil {
		log.Errorw(ctx, "publish order event failed", "order_id", order.ID, "error", err)
	}
}

func (p *publisher) publish(ctx context.Context, key string, event models.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (p *publisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderCreated(context.Context, *models.Order) {}
func (noopPublisher) Close() error                                       { return nil }
