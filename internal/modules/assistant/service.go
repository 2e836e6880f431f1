package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/stylist/internal/modules/catalog"
)

const (
	// shippingWindowDays stands in for the weekday named in the query.
	shippingWindowDays = 5
	comparedProduct    = "Casual Denim Jacket"
	deliveryLayout     = "Monday, January 02"
)

// Service answers free-text shopping questions.
type Service interface {
	// ProcessQuery returns the reply text for a query. It never fails:
	// anything it cannot apply is left out of the reply.
	ProcessQuery(ctx context.Context, text string) string
	// Ask is ProcessQuery with an id and the list of sections that fired.
	Ask(ctx context.Context, req QueryRequest) (*Reply, error)
}

type service struct {
	catalog catalog.Service
	clock   catalog.Clock
	logger  zerolog.Logger
}

// NewService creates the query dispatcher on top of a catalog service.
func NewService(catalogService catalog.Service, clock catalog.Clock, logger zerolog.Logger) Service {
	if clock == nil {
		clock = catalog.SystemClock
	}
	return &service{
		catalog: catalogService,
		clock:   clock,
		logger:  logger.With().Str("module", "assistant").Logger(),
	}
}

func (s *service) ProcessQuery(ctx context.Context, text string) string {
	reply, _ := s.dispatch(ctx, text)
	return reply
}

func (s *service) Ask(ctx context.Context, req QueryRequest) (*Reply, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}
	id := uuid.New()
	text, sections := s.dispatch(ctx, req.Query)
	s.logger.Info().
		Str("reply_id", id.String()).
		Interface("sections", sections).
		Msg("query answered")
	if sections == nil {
		sections = []Section{}
	}
	return &Reply{ID: id, Query: req.Query, Text: text, Sections: sections}, nil
}

// dispatch runs every check whose keywords appear in the query and joins
// the rendered sections in a fixed order.
func (s *service) dispatch(ctx context.Context, text string) (string, []Section) {
	query := strings.ToLower(text)

	var (
		blocks   []string
		sections []Section
	)
	add := func(name Section, lines []string) {
		if len(lines) == 0 {
			return
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
		sections = append(sections, name)
	}

	if containsAny(query, "find", "search") {
		lines, found := s.searchSection(ctx, text, query)
		if !found {
			return notFoundReply, []Section{SectionSearch}
		}
		add(SectionSearch, lines)
	}
	if containsAny(query, "arrive by", "delivery") {
		add(SectionShipping, s.shippingSection(ctx, query))
	}
	if containsAny(query, "better deals", "compare") && strings.Contains(query, "jacket") {
		add(SectionComparison, s.comparisonSection(ctx))
	}
	if strings.Contains(query, "return") {
		add(SectionReturns, s.returnsSection(ctx, query))
	}

	if len(blocks) == 0 {
		return fallbackReply, nil
	}
	return strings.Join(blocks, "\n\n"), sections
}

func (s *service) searchSection(ctx context.Context, text, query string) ([]string, bool) {
	f := extractFields(text)
	products, err := s.catalog.MatchProducts(ctx, query, catalog.Filter{MaxPrice: f.maxPrice, Size: f.size})
	if err != nil {
		s.logger.Warn().Err(err).Msg("product search failed")
		return nil, false
	}
	if len(products) == 0 {
		return nil, false
	}

	lines := []string{"Here's what I found:"}
	for _, p := range products {
		line := fmt.Sprintf("- %s (%s) in size %s", p.Name, money(p.Price), p.Size)
		if p.InStock {
			line += " - In Stock"
			if f.promoCode != "" {
				line += "\n" + s.promoLine(ctx, p, f.promoCode)
			}
		}
		lines = append(lines, line)
	}
	return lines, true
}

func (s *service) promoLine(ctx context.Context, p catalog.Product, code string) string {
	discounted, err := s.catalog.ApplyDiscount(ctx, p.Price, code)
	if err != nil {
		if !errors.Is(err, catalog.ErrInvalidPromoCode) {
			s.logger.Warn().Err(err).Str("code", code).Msg("apply discount failed")
		}
		return fmt.Sprintf("  Promo code '%s' is invalid", code)
	}
	return fmt.Sprintf("  With promo code '%s': %s", code, money(discounted))
}

func (s *service) shippingSection(ctx context.Context, query string) []string {
	products, err := s.catalog.MatchProducts(ctx, query, catalog.Filter{})
	if err != nil {
		s.logger.Warn().Err(err).Msg("product search failed")
		return nil
	}
	target := s.clock.Now().AddDate(0, 0, shippingWindowDays)

	var lines []string
	for _, p := range products {
		est, err := s.catalog.EstimateShipping(ctx, p, &target)
		if err != nil {
			s.logger.Warn().Err(err).Str("product_id", p.ID).Msg("shipping estimate failed")
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			fmt.Sprintf("Shipping for %s:", p.Name),
			fmt.Sprintf("- Estimated delivery: %s", est.EstimatedDelivery.Format(deliveryLayout)),
			fmt.Sprintf("- Shipping cost: %s", money(est.Cost)),
			fmt.Sprintf("- Delivery by target date: %s", yesNo(est.Feasible)),
		)
	}
	return lines
}

func (s *service) comparisonSection(ctx context.Context) []string {
	offers, err := s.catalog.ComparePrices(ctx, comparedProduct)
	if err != nil {
		s.logger.Warn().Err(err).Msg("price comparison failed")
		return nil
	}
	if len(offers) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("Price comparison for %s:", comparedProduct)}
	for _, o := range offers {
		line := fmt.Sprintf("- %s: %s", o.Store, money(o.Price))
		if !o.InStock {
			line += " (out of stock)"
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *service) returnsSection(ctx context.Context, query string) []string {
	stores, err := s.catalog.ListStores(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("list stores failed")
		return nil
	}
	var store string
	for _, candidate := range stores {
		if strings.Contains(query, strings.ToLower(candidate)) {
			store = candidate
			break
		}
	}
	if store == "" {
		return nil
	}
	policy, err := s.catalog.GetReturnPolicy(ctx, store)
	if err != nil {
		return nil
	}
	return []string{
		fmt.Sprintf("Return Policy for %s:", store),
		fmt.Sprintf("- Duration: %d days", policy.DurationDays),
		fmt.Sprintf("- Free returns: %s", yesNo(policy.FreeReturns)),
		fmt.Sprintf("- Conditions: %s", policy.Conditions),
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
