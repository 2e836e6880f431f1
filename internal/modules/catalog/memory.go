package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// memoryRepo serves the seed tables from memory. It is never written after
// construction, so concurrent readers need no locking.
type memoryRepo struct {
	products []Product
	byID     map[string]int
	promos   map[string]decimal.Decimal
	policies map[string]ReturnPolicy
	stores   []string
	shipping ShippingTerms
}

// NewMemoryRepository builds a read-only repository from a decoded seed.
func NewMemoryRepository(seed *Seed) (Repository, error) {
	products, err := seed.products()
	if err != nil {
		return nil, err
	}
	promos, err := seed.promoCodes()
	if err != nil {
		return nil, err
	}
	shipping, err := seed.shippingTerms()
	if err != nil {
		return nil, err
	}

	r := &memoryRepo{
		products: products,
		byID:     make(map[string]int, len(products)),
		promos:   promos,
		policies: make(map[string]ReturnPolicy, len(seed.ReturnPolicies)),
		shipping: shipping,
	}
	for i, p := range products {
		r.byID[p.ID] = i
	}
	for _, p := range seed.ReturnPolicies {
		if _, dup := r.policies[p.Store]; dup {
			return nil, fmt.Errorf("return policy for %q: duplicate store", p.Store)
		}
		r.policies[p.Store] = p
		r.stores = append(r.stores, p.Store)
	}
	return r, nil
}

func (r *memoryRepo) ListProducts(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *memoryRepo) GetProductByID(ctx context.Context, id string) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	i, ok := r.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return r.products[i], nil
}

func (r *memoryRepo) GetDiscount(ctx context.Context, code string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	d, ok := r.promos[normalizeCode(code)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPromoCode, code)
	}
	return d, nil
}

func (r *memoryRepo) GetReturnPolicy(ctx context.Context, store string) (ReturnPolicy, error) {
	if err := ctx.Err(); err != nil {
		return ReturnPolicy{}, err
	}
	p, ok := r.policies[store]
	if !ok {
		return ReturnPolicy{}, fmt.Errorf("%w: %s", ErrPolicyNotFound, store)
	}
	return p, nil
}

func (r *memoryRepo) ListStores(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]string, len(r.stores))
	copy(out, r.stores)
	return out, nil
}

func (r *memoryRepo) GetShippingTerms(ctx context.Context) (ShippingTerms, error) {
	if err := ctx.Err(); err != nil {
		return ShippingTerms{}, err
	}
	return r.shipping, nil
}
