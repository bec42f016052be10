package usecase

import (
	"context"

	"github.com/nee-commerce/backend/internal/models"
	"github.com/nee-commerce/backend/internal/repo/mongodb"
)

type catalogUsecase struct {
	businessRepo mongodb.BusinessRepository
}

func NewCatalogUsecase(businessRepo mongodb.BusinessRepository) CatalogUsecase {
	return &catalogUsecase{
		businessRepo: businessRepo,
	}
}

func (u *catalogUsecase) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	return u.businessRepo.List(ctx)
}

func (u *catalogUsecase) GetBusiness(ctx context.Context, slug string) (*models.Business, error) {
	return u.businessRepo.GetBySlug(ctx, slug)
}
