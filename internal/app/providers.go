package app

import (
	"context"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"go.uber.org/fx"

	"github.com/nee-commerce/backend/internal/config"
	"github.com/nee-commerce/backend/internal/kafka"
	"github.com/nee-commerce/backend/internal/repo/mongodb"
	"github.com/nee-commerce/backend/internal/usecase"
)

func newMongoDB(lc fx.Lifecycle, cfg *config.Config) (*mongodb.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := mongodb.NewConnection(ctx, cfg.Database.URI, cfg.Database.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return db.Client.Ping(ctx, nil)
		},
		OnStop: func(ctx context.Context) error {
			return db.Close(ctx)
		},
	})

	return db, nil
}

func newBusinessRepository(db *mongodb.DB) mongodb.BusinessRepository {
	return mongodb.NewBusinessRepository(db)
}

func newOrderRepository(db *mongodb.DB) mongodb.OrderRepository {
	return mongodb.NewOrderRepository(db)
}

func newUserRepository(db *mongodb.DB) mongodb.UserRepository {
	return mongodb.NewUserRepository(db)
}

func newAuthTokenRepository(db *mongodb.DB) mongodb.AuthTokenRepository {
	return mongodb.NewAuthTokenRepository(db)
}

// newCatalogStore narrows the business repository to the read interface
// the sync resolver depends on.
func newCatalogStore(repo mongodb.BusinessRepository) usecase.CatalogStore {
	return repo
}

// StartTokenCleanup purges expired and revoked auth tokens hourly so the
// token collection does not grow without bound.
func StartTokenCleanup(lc fx.Lifecycle, tokenRepo mongodb.AuthTokenRepository) {
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(time.Hour)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
						if err := tokenRepo.DeleteExpiredTokens(ctx); err != nil {
							log.Warnw(ctx, "token cleanup failed", "error", err)
						}
						cancel()
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			close(done)
			return nil
		},
	})
}

func newOrderEventPublisher(lc fx.Lifecycle, cfg *config.Config) kafka.OrderEventPublisher {
	publisher := kafka.NewOrderEventPublisher(cfg)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})

	return publisher
}
