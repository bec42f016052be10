package usecase

import (
	"context"
	"fmt"
	"strings"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/nee-commerce/backend/internal/models"
	"github.com/nee-commerce/backend/internal/repo/whatsapp"
	"github.com/nee-commerce/backend/pkg/walink"
)

// Identifiers longer than this look like WhatsApp numeric ids rather
// than merchant codes, and are worth a scrape attempt on a catalog miss.
const minScrapeIDLength = 10

type syncUsecase struct {
	catalog CatalogStore
	scraper whatsapp.Scraper
}

func NewSyncUsecase(catalog CatalogStore, scraper whatsapp.Scraper) SyncUsecase {
	return &syncUsecase{
		catalog: catalog,
		scraper: scraper,
	}
}

// Resolve turns an identifier (sync code, WhatsApp id, or share link)
// into a product. Local catalog first; scraping is the fallback for
// link-shaped or id-shaped inputs the catalog does not know.
func (u *syncUsecase) Resolve(ctx context.Context, identifier string) (*models.ResolvedProduct, error) {
	cleanID := walink.ExtractProductID(identifier)
	code := strings.ToLower(strings.TrimSpace(identifier))

	businesses, err := u.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}

	// First match wins; duplicate codes across businesses resolve to
	// whichever business was inserted first.
	for i := range businesses {
		business := &businesses[i]
		for _, product := range business.Products {
			if strings.ToLower(product.Code) == code {
				return business.Resolve(product), nil
			}
			if product.WhatsappID != "" && product.WhatsappID == cleanID {
				return business.Resolve(product), nil
			}
		}
	}

	if walink.IsShareLink(identifier) {
		if product := u.scraper.Scrape(ctx, identifier); product != nil {
			return product, nil
		}
		log.Infow(ctx, "scrape yielded no product", "identifier", identifier)
		return nil, models.ErrNotFound
	}

	if len(cleanID) > minScrapeIDLength {
		if product := u.scraper.Scrape(ctx, "https://wa.me/p/"+cleanID); product != nil {
			return product, nil
		}
		log.Infow(ctx, "scrape yielded no product", "whatsapp_id", cleanID)
	}

	return nil, models.ErrNotFound
}
