package usecase

import (
	"context"

	"github.com/nee-commerce/backend/internal/models"
)

// CatalogStore is the read surface the sync resolver needs. The mongo
// business repository satisfies it; tests use in-memory fixtures.
type CatalogStore interface {
	List(ctx context.Context) ([]models.Business, error)
}

type SyncUsecase interface {
	Resolve(ctx context.Context, identifier string) (*models.ResolvedProduct, error)
}

type CatalogUsecase interface {
	ListBusinesses(ctx context.Context) ([]models.Business, error)
	GetBusiness(ctx context.Context, slug string) (*models.Business, error)
}

type OrderUsecase interface {
	Checkout(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutResponse, error)
	RecordOrder(ctx context.Context, req models.OrderCreate) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ConfirmPayment(ctx context.Context, reference string) (*models.Order, error)
}

type AuthUsecase interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest, userAgent, ipAddress string) (*models.LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (*models.User, error)
	RevokeToken(ctx context.Context, token string) error
}
