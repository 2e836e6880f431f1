package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", h.searchProducts)
		r.Get("/products/{id}", h.getProduct)
		r.Get("/products/{id}/shipping", h.estimateShipping)
		r.Get("/compare", h.comparePrices)
		r.Post("/discount", h.applyDiscount)
		r.Get("/returns/{store}", h.getReturnPolicy)
	})
}

// DiscountRequest is the payload for pricing a promo code.
type DiscountRequest struct {
	Price decimal.Decimal `json:"price"`
	Code  string          `json:"code"`
}

// DiscountResponse carries the discounted price.
type DiscountResponse struct {
	Price           decimal.Decimal `json:"price"`
	Code            string          `json:"code"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filter{Query: q.Get("q"), Color: q.Get("color"), Size: q.Get("size")}
	if raw := q.Get("max_price"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "invalid max_price"})
			return
		}
		f.MaxPrice = &maxPrice
	}
	products, err := h.service.SearchProducts(r.Context(), f)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if products == nil {
		products = []Product{}
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) estimateShipping(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	var target *time.Time
	if raw := r.URL.Query().Get("target"); raw != "" {
		t, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "target must be YYYY-MM-DD"})
			return
		}
		target = &t
	}
	details, err := h.service.EstimateShipping(r.Context(), p, target)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, details)
}

func (h *Handler) comparePrices(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	offers, err := h.service.ComparePrices(r.Context(), name)
	if err != nil {
		respondError(w, err)
		return
	}
	if offers == nil {
		offers = []PriceComparison{}
	}
	respond(w, http.StatusOK, offers)
}

func (h *Handler) applyDiscount(w http.ResponseWriter, r *http.Request) {
	var req DiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.Code == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "code is required"})
		return
	}
	discounted, err := h.service.ApplyDiscount(r.Context(), req.Price, req.Code)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, DiscountResponse{
		Price:           req.Price,
		Code:            req.Code,
		DiscountedPrice: discounted.Round(2),
	})
}

func (h *Handler) getReturnPolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.service.GetReturnPolicy(r.Context(), chi.URLParam(r, "store"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, policy)
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrPolicyNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrInvalidPromoCode):
		code = http.StatusUnprocessableEntity
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
