package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed seed/catalog.yaml
var defaultSeed []byte

// Seed is the decoded catalog seed document.
type Seed struct {
	Products       []seedProduct     `yaml:"products"`
	PromoCodes     map[string]string `yaml:"promo_codes"`
	ReturnPolicies []ReturnPolicy    `yaml:"return_policies"`
	Shipping       seedShipping      `yaml:"shipping"`
}

type seedProduct struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Price   string `yaml:"price"`
	Color   string `yaml:"color"`
	Size    string `yaml:"size"`
	Store   string `yaml:"store"`
	InStock bool   `yaml:"in_stock"`
}

type seedShipping struct {
	BaseCost string `yaml:"base_cost"`
	MinDays  int    `yaml:"min_days"`
	MaxDays  int    `yaml:"max_days"`
	Carrier  string `yaml:"carrier"`
}

// DefaultSeed decodes the seed compiled into the binary.
func DefaultSeed() (*Seed, error) {
	return DecodeSeed(bytes.NewReader(defaultSeed))
}

// LoadSeed reads a seed document from path, falling back to the embedded
// seed when path is empty.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog seed: %w", err)
	}
	defer f.Close()
	return DecodeSeed(f)
}

// DecodeSeed parses a YAML seed document.
func DecodeSeed(r io.Reader) (*Seed, error) {
	var s Seed
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}
	return &s, nil
}

func (s *Seed) products() ([]Product, error) {
	products := make([]Product, 0, len(s.Products))
	seen := make(map[string]bool, len(s.Products))
	for _, p := range s.Products {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("product %q: id and name are required", p.ID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("product %q: duplicate id", p.ID)
		}
		seen[p.ID] = true
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("product %q: invalid price: %w", p.ID, err)
		}
		products = append(products, Product{
			ID:      p.ID,
			Name:    p.Name,
			Price:   price,
			Color:   p.Color,
			Size:    p.Size,
			Store:   p.Store,
			InStock: p.InStock,
		})
	}
	return products, nil
}

func (s *Seed) promoCodes() (map[string]decimal.Decimal, error) {
	codes := make(map[string]decimal.Decimal, len(s.PromoCodes))
	for code, raw := range s.PromoCodes {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("promo code %q: invalid discount: %w", code, err)
		}
		if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("promo code %q: discount %s outside [0,1]", code, raw)
		}
		key := normalizeCode(code)
		if _, dup := codes[key]; dup {
			return nil, fmt.Errorf("promo code %q: duplicate of %s", code, key)
		}
		codes[key] = d
	}
	return codes, nil
}

func (s *Seed) shippingTerms() (ShippingTerms, error) {
	cost, err := decimal.NewFromString(s.Shipping.BaseCost)
	if err != nil {
		return ShippingTerms{}, fmt.Errorf("shipping: invalid base_cost: %w", err)
	}
	if s.Shipping.MinDays < 0 || s.Shipping.MaxDays < s.Shipping.MinDays {
		return ShippingTerms{}, fmt.Errorf("shipping: invalid lead time range [%d,%d]", s.Shipping.MinDays, s.Shipping.MaxDays)
	}
	return ShippingTerms{
		BaseCost: cost,
		MinDays:  s.Shipping.MinDays,
		MaxDays:  s.Shipping.MaxDays,
		Carrier:  s.Shipping.Carrier,
	}, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
