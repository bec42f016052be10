package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/nee-commerce/backend/internal/config"
	"github.com/nee-commerce/backend/internal/repo/paystack"
	"github.com/nee-commerce/backend/internal/repo/whatsapp"
	"github.com/nee-commerce/backend/internal/server"
	"github.com/nee-commerce/backend/internal/usecase"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newMongoDB,
			newBusinessRepository,
			newOrderRepository,
			newUserRepository,
			newAuthTokenRepository,
			newCatalogStore,
			newOrderEventPublisher,

			whatsapp.NewScraper,
			paystack.NewClient,

			usecase.NewSyncUsecase,
			usecase.NewCatalogUsecase,
			usecase.NewOrderUsecase,
			usecase.NewAuthUsecase,

			server.NewController,
			server.NewAuthController,
		),
		fx.Supply(conf),
		fx.Invoke(StartTokenCleanup),
		fx.Invoke(funcs...),
	)
}
