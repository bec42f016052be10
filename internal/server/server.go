package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carousell/ct-go/pkg/logger"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	echomdw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/nee-commerce/backend/internal/config"
	pkgmdw "github.com/nee-commerce/backend/internal/server/middleware"
	"github.com/nee-commerce/backend/internal/usecase"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
	authHandler AuthController,
	auth usecase.AuthUsecase,
) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = errorHandler()

	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(pkgmdw.LogRequestConfig{
		Logger: logger.MustNamed("http"),
		Enabled: func(c echo.Context) bool {
			uri := c.Request().RequestURI
			return uri != "/health" && uri != "/metrics"
		},
	}))
	e.Use(echomdw.CORS())
	e.Use(echomdw.RecoverWithConfig(echomdw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to Nee Commerce API"})
	})
	e.GET("/health", handler.Health)

	api := e.Group("/api/v1")
	api.GET("/businesses", handler.ListBusinesses)
	api.GET("/businesses/:slug", handler.GetBusiness)
	api.GET("/sync/*", handler.SyncProduct)
	api.POST("/checkout", handler.Checkout)
	api.GET("/payments/confirm", handler.ConfirmPayment)
	api.POST("/orders", handler.CreateOrder)
	api.GET("/orders", handler.ListOrders, pkgmdw.JWTAuth(auth), pkgmdw.AdminOnly())

	authAPI := api.Group("/auth")
	authAPI.POST("/signup", authHandler.Signup)
	authAPI.POST("/login", authHandler.Login)
	authAPI.GET("/me", authHandler.Me, pkgmdw.JWTAuth(auth))
	authAPI.POST("/logout", authHandler.Logout, pkgmdw.JWTAuth(auth))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow(ctx, "starting HTTP server", "addr", conf.Server.Addr)
				if err := e.Start(conf.Server.Addr); !errors.Is(err, http.ErrServerClosed) {
					log.Errorw(ctx, "HTTP server stopped", "error", err)
					sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func errorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		resp := &errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		}

		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
			resp.Code = httpErr.Code
			resp.Message = fmt.Sprint(httpErr.Message)
		case errors.Is(err, context.Canceled) && c.Request().Context().Err() == context.Canceled:
			resp.Code = 499
			resp.Message = "client closed request"
		}

		if err := c.JSON(resp.Code, resp); err != nil {
			log.Errorw(c.Request().Context(), "could not write error response", "code", resp.Code, "error", err)
		}
	}
}
