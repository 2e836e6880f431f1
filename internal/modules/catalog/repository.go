package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository is read-only access to the catalog tables.
type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (Product, error)
	GetDiscount(ctx context.Context, code string) (decimal.Decimal, error)
	GetReturnPolicy(ctx context.Context, store string) (ReturnPolicy, error)
	ListStores(ctx context.Context) ([]string, error)
	GetShippingTerms(ctx context.Context) (ShippingTerms, error)
}
