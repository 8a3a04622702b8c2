package product

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// money fields marshal as JSON numbers, matching the public API shape
	decimal.MarshalJSONWithoutQuotes = true
}

// Product maps to the `products` table. Description and ImageURL are nullable
// in the schema, so they stay pointers here. Timestamps are kept for storage
// but are not part of the API shape.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    *string         `json:"image_url"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}
