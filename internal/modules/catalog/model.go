package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a listing in the assistant's mock catalog.
type Product struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Color   string          `json:"color"`
	Size    string          `json:"size"`
	Store   string          `json:"store"`
	InStock bool            `json:"in_stock"`
}

// ShippingDetails is the delivery estimate for a single product.
type ShippingDetails struct {
	Cost              decimal.Decimal `json:"cost"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	Feasible          bool            `json:"feasible"`
	Carrier           string          `json:"carrier"`
}

// ReturnPolicy describes how a store handles returns.
type ReturnPolicy struct {
	Store        string `json:"store" yaml:"store"`
	DurationDays int    `json:"duration_days" yaml:"duration_days"`
	FreeReturns  bool   `json:"free_returns" yaml:"free_returns"`
	Conditions   string `json:"conditions" yaml:"conditions"`
}

// PriceComparison is one store's offer for a product name.
type PriceComparison struct {
	Store   string          `json:"store"`
	Price   decimal.Decimal `json:"price"`
	InStock bool            `json:"in_stock"`
}

// Filter narrows a product search. Zero values mean "no constraint".
type Filter struct {
	Query    string
	MaxPrice *decimal.Decimal
	Color    string
	Size     string
}

// ShippingTerms are the carrier settings used for every estimate.
type ShippingTerms struct {
	BaseCost decimal.Decimal
	MinDays  int
	MaxDays  int
	Carrier  string
}
