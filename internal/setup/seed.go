// Package setup imports the flat-file catalog and order ledger this
// service ran on before Mongo, so existing deployments migrate in place.
package setup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/nee-commerce/backend/internal/models"
	"github.com/nee-commerce/backend/internal/repo/mongodb"
)

// SeedCatalog upserts every business from a catalog.json export. Slugs
// are ids, so re-running the seed is idempotent.
func SeedCatalog(ctx context.Context, businessRepo mongodb.BusinessRepository, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnw(ctx, "catalog file missing, nothing to seed", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	var businesses []models.Business
	if err := json.Unmarshal(data, &businesses); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	for i := range businesses {
		if err := businessRepo.Upsert(ctx, &businesses[i]); err != nil {
			return fmt.Errorf("upsert business %q: %w", businesses[i].Slug, err)
		}
	}

	log.Infow(ctx, "catalog seeded", "businesses", len(businesses))
	return nil
}

// SeedOrders imports an orders.json ledger. Orders already present (by
// id) are skipped rather than overwritten; the ledger is append-only.
func SeedOrders(ctx context.Context, orderRepo mongodb.OrderRepository, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnw(ctx, "orders file missing, nothing to seed", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read orders: %w", err)
	}

	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return fmt.Errorf("parse orders: %w", err)
	}

	var imported int
	for i := range orders {
		order := &orders[i]
		if _, err := orderRepo.GetByID(ctx, order.ID); err == nil {
			continue
		} else if !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("check order %q: %w", order.ID, err)
		}

		if order.CreatedAt.IsZero() {
			order.CreatedAt = time.Now()
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return fmt.Errorf("import order %q: %w", order.ID, err)
		}
		imported++
	}

	log.Infow(ctx, "orders seeded", "imported", imported, "total", len(orders))
	return nil
}
