package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service defines the lookups the assistant can run against the catalog.
type Service interface {
	// SearchProducts returns products whose name contains f.Query, in catalog order.
	SearchProducts(ctx context.Context, f Filter) ([]Product, error)
	// MatchProducts returns products whose garment noun appears as a word of text.
	// f.Query is ignored; the remaining constraints still apply.
	MatchProducts(ctx context.Context, text string, f Filter) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	// EstimateShipping computes a delivery estimate. A nil target is always feasible.
	EstimateShipping(ctx context.Context, p Product, target *time.Time) (ShippingDetails, error)
	ApplyDiscount(ctx context.Context, price decimal.Decimal, code string) (decimal.Decimal, error)
	ComparePrices(ctx context.Context, name string) ([]PriceComparison, error)
	GetReturnPolicy(ctx context.Context, store string) (ReturnPolicy, error)
	ListStores(ctx context.Context) ([]string, error)
}

type service struct {
	repo   Repository
	clock  Clock
	rand   Rand
	logger zerolog.Logger
}

// NewService creates a catalog service. Clock and Rand drive shipping
// estimates and may be replaced for reproducible output.
func NewService(repo Repository, clock Clock, rnd Rand, logger zerolog.Logger) Service {
	if clock == nil {
		clock = SystemClock
	}
	if rnd == nil {
		rnd = NewRand(0)
	}
	return &service{
		repo:   repo,
		clock:  clock,
		rand:   rnd,
		logger: logger.With().Str("module", "catalog").Logger(),
	}
}

func (s *service) SearchProducts(ctx context.Context, f Filter) ([]Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(f.Query)
	var out []Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) && f.accepts(p) {
			out = append(out, p)
		}
	}
	s.logger.Debug().Str("query", f.Query).Int("results", len(out)).Msg("search products")
	return out, nil
}

func (s *service) MatchProducts(ctx context.Context, text string, f Filter) ([]Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	words := wordSet(text)
	var out []Product
	for _, p := range products {
		if mentions(words, garmentNoun(p.Name)) && f.accepts(p) {
			out = append(out, p)
		}
	}
	s.logger.Debug().Int("results", len(out)).Msg("match products")
	return out, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *service) EstimateShipping(ctx context.Context, p Product, target *time.Time) (ShippingDetails, error) {
	terms, err := s.repo.GetShippingTerms(ctx)
	if err != nil {
		return ShippingDetails{}, err
	}
	days := terms.MinDays + s.rand.IntN(terms.MaxDays-terms.MinDays+1)
	eta := s.clock.Now().AddDate(0, 0, days)

	details := ShippingDetails{
		Cost:              terms.BaseCost,
		EstimatedDelivery: eta,
		Feasible:          target == nil || !calendarDay(eta).After(calendarDay(target.In(eta.Location()))),
		Carrier:           terms.Carrier,
	}
	s.logger.Debug().Str("product_id", p.ID).Int("lead_days", days).Bool("feasible", details.Feasible).Msg("estimate shipping")
	return details, nil
}

func (s *service) ApplyDiscount(ctx context.Context, price decimal.Decimal, code string) (decimal.Decimal, error) {
	discount, err := s.repo.GetDiscount(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Mul(decimal.NewFromInt(1).Sub(discount)), nil
}

func (s *service) ComparePrices(ctx context.Context, name string) ([]PriceComparison, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(name)
	var out []PriceComparison
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, PriceComparison{Store: p.Store, Price: p.Price, InStock: p.InStock})
		}
	}
	return out, nil
}

func (s *service) GetReturnPolicy(ctx context.Context, store string) (ReturnPolicy, error) {
	return s.repo.GetReturnPolicy(ctx, store)
}

func (s *service) ListStores(ctx context.Context) ([]string, error) {
	return s.repo.ListStores(ctx)
}

// calendarDay drops the clock time so deliveries compare by date.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f Filter) accepts(p Product) bool {
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.Color != "" && !strings.EqualFold(f.Color, p.Color) {
		return false
	}
	if f.Size != "" && !strings.EqualFold(f.Size, p.Size) {
		return false
	}
	return true
}

// garmentNoun is the last word of a product name, e.g. "skirt" for
// "Floral A-Line Skirt".
func garmentNoun(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func wordSet(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), isWordBreak) {
		words[w] = true
	}
	return words
}

func isWordBreak(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-')
}

// mentions reports whether noun, or its singular/plural counterpart, is in words.
func mentions(words map[string]bool, noun string) bool {
	if noun == "" {
		return false
	}
	if words[noun] {
		return true
	}
	if strings.HasSuffix(noun, "s") && words[strings.TrimSuffix(noun, "s")] {
		return true
	}
	return words[noun+"s"] || words[noun+"es"]
}
