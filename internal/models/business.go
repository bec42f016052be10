package models

// Business is a merchant storefront. Slugs double as document ids, a
// convention inherited from the JSON catalog this service grew out of.
type Business struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name" validate:"required"`
	Slug         string    `bson:"slug" json:"slug" validate:"required"`
	Category     string    `bson:"category" json:"category"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	WhatsappLink string    `bson:"whatsapp_link,omitempty" json:"whatsapp_link,omitempty"`
	HeroImage    string    `bson:"hero_image,omitempty" json:"hero_image,omitempty"`
	Logo         string    `bson:"logo,omitempty" json:"logo,omitempty"`
	Featured     bool      `bson:"featured" json:"featured"`
	OwnerID      string    `bson:"owner_id,omitempty" json:"owner_id,omitempty"`
	Products     []Product `bson:"products" json:"products"`
}

// Product is a single catalog entry owned by a business. Code is the
// business-assigned sync code; WhatsappID is the canonical id extracted
// from the merchant's WhatsApp catalog link.
type Product struct {
	Code        string  `bson:"code" json:"code" validate:"required"`
	WhatsappID  string  `bson:"whatsapp_id,omitempty" json:"whatsapp_id,omitempty"`
	Name        string  `bson:"name" json:"name" validate:"required"`
	Price       float64 `bson:"price" json:"price" validate:"gte=0"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Image       string  `bson:"image,omitempty" json:"image,omitempty"`
	Featured    bool    `bson:"featured" json:"featured"`
	AutoSynced  bool    `bson:"auto_synced,omitempty" json:"auto_synced,omitempty"`
}

// ResolvedProduct is a Product enriched with its owning business at read
// time. It is a projection assembled per request and never written back.
type ResolvedProduct struct {
	Product
	BusinessName string `json:"business_name"`
	BusinessSlug string `json:"business_slug"`
}

// Resolve copies p and attaches business context to it.
func (b *Business) Resolve(p Product) *ResolvedProduct {
	return &ResolvedProduct{
		Product:      p,
		BusinessName: b.Name,
		BusinessSlug: b.Slug,
	}
}
